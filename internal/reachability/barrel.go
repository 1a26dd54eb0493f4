package reachability

import (
	"github.com/reachscan/reachscan/domain"
	"github.com/reachscan/reachscan/internal/resolver"
)

const maxBarrelPasses = 5

// propagateBarrels implements spec.md §4.6's per-export usage propagation:
// a fixed-point loop (capped at 5 passes) that pushes consumption recorded
// against a barrel file's re-exported names back onto the original source
// file, so a barrel never masks its sources' dead exports.
func propagateBarrels(parsed map[string]*domain.ParseResult, usage domain.ExportUsageMap, res *resolver.Resolver) {
	for pass := 0; pass < maxBarrelPasses; pass++ {
		changed := false
		for path, pr := range parsed {
			byFile, ok := usage[path]
			if !ok {
				continue
			}
			directExports := directExportNames(pr)

			for _, exp := range pr.Exports {
				if exp.SourceModule == "" {
					continue
				}
				targets := res.Resolve(path, pr.Language, domain.Import{Module: exp.SourceModule, Type: domain.ImportESM})
				for _, target := range targets {
					if exp.Type == domain.ExportReexportAll {
						if propagateWildcard(byFile, directExports, target, usage) {
							changed = true
						}
						continue
					}
					if propagateNamed(byFile, exp.Name, target, usage) {
						changed = true
					}
				}
			}

			// __ALL__ usage against the barrel itself always propagates to
			// every re-exported source, regardless of export form.
			if allUsages, ok := byFile[domain.UsageAll]; ok {
				for _, exp := range pr.Exports {
					if exp.SourceModule == "" {
						continue
					}
					targets := res.Resolve(path, pr.Language, domain.Import{Module: exp.SourceModule, Type: domain.ImportESM})
					for _, target := range targets {
						for _, u := range allUsages {
							if recordIfNew(usage, target, domain.UsageAll, u.ImporterFile, u.ImportType) {
								changed = true
							}
						}
					}
				}
			}
		}
		if !changed {
			break
		}
	}
}

func directExportNames(pr *domain.ParseResult) map[string]bool {
	names := map[string]bool{}
	for _, exp := range pr.Exports {
		if exp.SourceModule == "" {
			names[exp.Name] = true
		}
	}
	return names
}

// propagateWildcard re-attributes every symbol consumed from the barrel
// that isn't one of the barrel's own direct exports, per `export * from`.
func propagateWildcard(byFile map[string][]domain.ExportUsage, directExports map[string]bool, target string, usage domain.ExportUsageMap) bool {
	changed := false
	for symbol, usages := range byFile {
		if symbol == domain.UsageAll || directExports[symbol] {
			continue
		}
		for _, u := range usages {
			if recordIfNew(usage, target, symbol, u.ImporterFile, u.ImportType) {
				changed = true
			}
		}
	}
	return changed
}

func propagateNamed(byFile map[string][]domain.ExportUsage, name, target string, usage domain.ExportUsageMap) bool {
	usages, ok := byFile[name]
	if !ok {
		return false
	}
	changed := false
	for _, u := range usages {
		if recordIfNew(usage, target, name, u.ImporterFile, u.ImportType) {
			changed = true
		}
	}
	return changed
}

// recordIfNew records the usage only if it isn't already present, so the
// fixed-point loop actually converges instead of growing forever.
func recordIfNew(usage domain.ExportUsageMap, target, symbol, importer string, typ domain.ImportType) bool {
	for _, u := range usage[target][symbol] {
		if u.ImporterFile == importer && u.ImportType == typ {
			return false
		}
	}
	usage.Record(target, symbol, importer, typ)
	return true
}
