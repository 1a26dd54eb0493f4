// Package reachability implements the breadth-first reachability walk of
// spec.md §4.6: starting from the entry-point set, it marks every file
// transitively reachable through imports, re-exports, and a handful of
// language-specific amplification rules that syntactic import analysis
// alone can't see (same-package visibility, proc-macro expansion,
// dynamic directory loaders).
package reachability

import (
	"github.com/reachscan/reachscan/domain"
	"github.com/reachscan/reachscan/internal/entrypoint"
	"github.com/reachscan/reachscan/internal/resolver"
)

// Walk runs the BFS over parsed and returns the reachable set plus the
// export-usage map built along the way.
func Walk(files []domain.File, parsed map[string]*domain.ParseResult, entries []domain.EntryPoint, res *resolver.Resolver) (domain.ReachableSet, domain.ExportUsageMap) {
	reachable := domain.NewReachableSet()
	usage := domain.NewExportUsageMap()

	var queue []string
	for _, e := range entries {
		if !reachable.Has(e.File) {
			reachable.Add(e.File)
			queue = append(queue, e.File)
		}
	}

	enqueue := func(path string) {
		if entrypoint.IsDeadNamed(path) {
			return
		}
		if !reachable.Has(path) {
			reachable.Add(path)
			queue = append(queue, path)
		}
	}

	amp := newAmplifier(files, parsed)

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		pr, ok := parsed[f]
		if !ok {
			continue
		}

		processImports(f, pr, res, enqueue, usage)
		processReexports(f, pr, res, enqueue, usage)
		amp.amplify(f, pr, enqueue)
	}

	propagateBarrels(parsed, usage, res)

	return reachable, usage
}

// processImports implements spec.md §4.6 step 1: resolve every import,
// enqueue unvisited targets, and record export usage keyed by specifier
// name or the appropriate sentinel.
func processImports(f string, pr *domain.ParseResult, res *resolver.Resolver, enqueue func(string), usage domain.ExportUsageMap) {
	for _, imp := range pr.Imports {
		if imp.IsGlob {
			for _, target := range expandGlobImport(f, imp, res) {
				enqueue(target)
				usage.Record(target, domain.UsageAll, f, imp.Type)
			}
			continue
		}

		targets := res.Resolve(f, pr.Language, imp)
		for _, target := range targets {
			enqueue(target)
			recordImportUsage(f, target, imp, usage)

			if pr.Language == domain.LanguagePython && imp.Type == domain.ImportFrom && imp.Symbol != "" {
				// `from X import Y`: also try X.Y as a submodule and mark
				// any __init__.py target __ALL__ (spec.md §4.6 step 1).
				if targetBase(target) == "__init__.py" {
					usage.Record(target, domain.UsageAll, f, imp.Type)
				}
			}
		}
	}
}

func recordImportUsage(f, target string, imp domain.Import, usage domain.ExportUsageMap) {
	if imp.SideEffect {
		usage.Record(target, domain.UsageSideEffect, f, imp.Type)
		return
	}
	if len(imp.Specifiers) == 0 && imp.Symbol == "" {
		// CJS `require(...)` and dynamic `import(...)` with no destructured
		// names, or any import form that bound no specific symbol.
		usage.Record(target, domain.UsageAll, f, imp.Type)
		return
	}
	if imp.Symbol != "" {
		usage.Record(target, imp.Symbol, f, imp.Type)
	}
	for _, spec := range imp.Specifiers {
		name := spec.Imported
		if name == "" {
			name = domain.UsageDefault
		}
		usage.Record(target, name, f, imp.Type)
	}
}

// processReexports implements spec.md §4.6 step 2.
func processReexports(f string, pr *domain.ParseResult, res *resolver.Resolver, enqueue func(string), usage domain.ExportUsageMap) {
	for _, exp := range pr.Exports {
		if exp.SourceModule == "" {
			continue
		}
		targets := res.Resolve(f, pr.Language, domain.Import{Module: exp.SourceModule, Type: domain.ImportESM})
		for _, target := range targets {
			enqueue(target)
			if exp.Type == domain.ExportReexportAll {
				usage.Record(target, domain.UsageAll, f, domain.ImportESM)
			} else {
				usage.Record(target, exp.Name, f, domain.ImportESM)
			}
		}
	}
}

func targetBase(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
