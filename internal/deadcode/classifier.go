// Package deadcode implements the dead classifier of spec.md §4.7: it
// partitions the discovered file set into reachable, fully dead, and
// partially dead, using the reachable set and export-usage map the
// reachability walk produced, then enriches fully-dead records with git
// history and an estimated removal cost.
package deadcode

import (
	"bytes"
	"sort"

	"github.com/reachscan/reachscan/domain"
)

var preserveMarkers = [][]byte{
	[]byte("DO NOT DELETE"),
	[]byte("DO NOT REMOVE"),
	[]byte("KEEP THIS FILE"),
	[]byte("@preserve"),
}

const preserveScanBytes = 2000

// Classify implements spec.md §4.7 end to end: it returns the lean records
// (DeadFiles/PartialFiles) plus the richer FullyDeadFiles/PartiallyDeadFiles
// spec.md §6 names separately, in their required sort order.
func Classify(root string, files []domain.File, parsed map[string]*domain.ParseResult, entries []domain.EntryPoint, reachable domain.ReachableSet, usage domain.ExportUsageMap, cfg *domain.EngineConfig) ([]domain.DeadFileRecord, []domain.PartialFileRecord, []domain.FullyDeadFile, []domain.PartiallyDeadFile) {
	entrySet := make(map[string]bool, len(entries))
	for _, e := range entries {
		entrySet[e.File] = true
	}

	var deadCandidates []domain.File
	var partial []domain.PartialFileRecord

	for _, f := range files {
		pr, ok := parsed[f.Path]
		if !ok {
			continue
		}

		if !reachable.Has(f.Path) {
			if entrySet[f.Path] || isPreserved(root, f.Path) {
				continue
			}
			deadCandidates = append(deadCandidates, f)
			continue
		}

		if rec, isPartial := classifyPartial(f, pr, usage); isPartial {
			partial = append(partial, rec)
		}
	}

	sort.Slice(deadCandidates, func(i, j int) bool { return deadCandidates[i].Size > deadCandidates[j].Size })
	sort.Slice(partial, func(i, j int) bool { return len(partial[i].DeadExports) > len(partial[j].DeadExports) })

	historian := newGitHistorian(root, cfg.DisableGitHistory)

	deadLean := make([]domain.DeadFileRecord, 0, len(deadCandidates))
	fullyDead := make([]domain.FullyDeadFile, 0, len(deadCandidates))
	for i, f := range deadCandidates {
		pr := parsed[f.Path]
		names := exportNames(pr)
		rec := domain.DeadFileRecord{
			Path:     f.Path,
			Language: f.Language,
			Size:     f.Size,
			Lines:    f.Lines,
			Exports:  names,
		}
		deadLean = append(deadLean, rec)

		fullyDead = append(fullyDead, domain.FullyDeadFile{
			DeadFileRecord: rec,
			Git:            historian.lookup(f.Path, i),
			Cost:           estimateCost(f, cfg),
			Recommendation: recommend(f),
		})
	}

	partiallyDead := make([]domain.PartiallyDeadFile, 0, len(partial))
	for _, p := range partial {
		partiallyDead = append(partiallyDead, domain.PartiallyDeadFile{PartialFileRecord: p})
	}

	return deadLean, partial, fullyDead, partiallyDead
}

// classifyPartial implements spec.md's partially-dead definition: reachable,
// has exports, at least one has no consumer and at least one does.
func classifyPartial(f domain.File, pr *domain.ParseResult, usage domain.ExportUsageMap) (domain.PartialFileRecord, bool) {
	if len(pr.Exports) == 0 {
		return domain.PartialFileRecord{}, false
	}
	if usage.HasGlobalSentinel(f.Path) {
		// a consumer imported everything (namespace import, require(), or
		// barrel export *) -- every export is conservatively considered live.
		return domain.PartialFileRecord{}, false
	}

	symbols := usage.Symbols(f.Path)
	var statuses []domain.ExportStatus
	var dead []string
	anyLive := false
	for _, exp := range pr.Exports {
		if exp.SourceModule != "" {
			continue
		}
		_, live := symbols[exp.Name]
		statuses = append(statuses, domain.ExportStatus{Name: exp.Name, Live: live})
		if live {
			anyLive = true
		} else {
			dead = append(dead, exp.Name)
		}
	}

	if len(dead) == 0 || !anyLive {
		return domain.PartialFileRecord{}, false
	}

	return domain.PartialFileRecord{
		Path:        f.Path,
		Language:    f.Language,
		Size:        f.Size,
		Lines:       f.Lines,
		Exports:     statuses,
		DeadExports: dead,
		Partial:     true,
	}, true
}

func exportNames(pr *domain.ParseResult) []string {
	names := make([]string, 0, len(pr.Exports))
	for _, exp := range pr.Exports {
		names = append(names, exp.Name)
	}
	return names
}

func isPreserved(root, relPath string) bool {
	head, err := readHead(root, relPath, preserveScanBytes)
	if err != nil {
		return false
	}
	for _, marker := range preserveMarkers {
		if bytes.Contains(head, marker) {
			return true
		}
	}
	return false
}
