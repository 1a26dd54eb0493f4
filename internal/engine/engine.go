// Package engine wires the staged pipeline spec.md §5 describes: discovery,
// parallel parse, config probing, entry detection, resolver construction,
// reachability walk, and classification, emitting ProgressEvents at each
// stage boundary the way the teacher's service layer drives its own
// multi-stage analyses.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/reachscan/reachscan/domain"
	"github.com/reachscan/reachscan/internal/configprobe"
	"github.com/reachscan/reachscan/internal/deadcode"
	"github.com/reachscan/reachscan/internal/entrypoint"
	"github.com/reachscan/reachscan/internal/fileset"
	"github.com/reachscan/reachscan/internal/langparse"
	"github.com/reachscan/reachscan/internal/reachability"
	"github.com/reachscan/reachscan/internal/resolver"
	"github.com/reachscan/reachscan/internal/workerpool"
)

// progressInterval is how often the parse stage reports progress within
// itself, beyond the per-stage boundary events (spec.md §5).
const progressInterval = 200

// Scan runs the full pipeline against root and returns the populated
// ScanResult. The only fatal error is a missing project path; every other
// failure is recorded in the result's Diagnostics and the scan continues
// (spec.md §7).
func Scan(ctx context.Context, root string, cfg *domain.EngineConfig, progress domain.ProgressFunc) (*domain.ScanResult, error) {
	start := time.Now()
	if cfg == nil {
		cfg = domain.DefaultEngineConfig()
	}
	report := func(phase, message string, current, total int) {
		if progress != nil {
			progress(domain.ProgressEvent{Phase: phase, Message: message, Current: current, Total: total})
		}
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, &domain.ErrProjectPathMissing{Path: root}
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}

	var diagnostics domain.Diagnostics

	report("discover", "scanning project tree", 0, 0)
	files, err := fileset.New(absRoot, cfg.Exclude).Discover(absRoot)
	if err != nil {
		diagnostics.Add(domain.ErrReadFailed, absRoot, err)
	}

	report("parse", "parsing files", 0, len(files))
	parsed, excludedGenerated := parseAll(ctx, absRoot, files, cfg, &diagnostics, report)

	report("configprobe", "probing build and bundler configs", 0, 0)
	probe := configprobe.Run(absRoot, cfg)

	report("entrypoints", "detecting entry points", 0, 0)
	entries := entrypoint.Detect(files, parsed, probe, cfg)

	report("resolve", "building import resolver", 0, 0)
	res := resolver.New(files, parsed, probe)

	report("reachability", "walking reachability graph", 0, 0)
	reachable, usage := reachability.Walk(files, parsed, entries, res)

	report("classify", "classifying dead and partial files", 0, 0)
	deadLean, partialLean, fullyDead, partiallyDead := deadcode.Classify(absRoot, files, parsed, entries, reachable, usage, cfg)

	result := buildResult(files, entries, reachable, deadLean, partialLean, fullyDead, partiallyDead, excludedGenerated, diagnostics)
	result.ElapsedSeconds = time.Since(start).Seconds()
	result.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	report("done", "scan complete", len(files), len(files))
	return result, nil
}

// parseAll runs the worker pool over every discovered file, applying the
// generated-pattern exclusion and the large-category chunking rule
// (spec.md §4.1/§5), and frees each ParseResult's retained source bytes
// once amplification-relevant metadata has been extracted.
func parseAll(ctx context.Context, root string, files []domain.File, cfg *domain.EngineConfig, diag *domain.Diagnostics, report func(phase, message string, current, total int)) (map[string]*domain.ParseResult, []string) {
	var excludedGenerated []string
	candidates := files
	if cfg.ExcludeGenerated && len(cfg.GeneratedPatterns) > 0 {
		candidates = nil
		for _, f := range files {
			if matchesAny(cfg.GeneratedPatterns, f.Path) {
				excludedGenerated = append(excludedGenerated, f.Path)
				continue
			}
			candidates = append(candidates, f)
		}
	}

	registry := langparse.NewRegistry()
	defer registry.Close()

	pool := workerpool.New(cfg.Workers)
	parsed := make(map[string]*domain.ParseResult, len(candidates))

	done := 0
	for _, chunk := range workerpool.Chunks(candidates) {
		jobs := make([]workerpool.Job[domain.File], 0, len(chunk))
		for _, f := range chunk {
			jobs = append(jobs, workerpool.Job[domain.File]{Path: f.Path, Item: f})
		}

		err := workerpool.Run(ctx, pool, jobs, func(_ context.Context, job workerpool.Job[domain.File]) (*domain.ParseResult, error) {
			absPath := filepath.Join(root, job.Item.Path)
			pr, err := registry.ParseFile(job.Item.Path, absPath)
			if err != nil {
				return nil, err
			}
			return pr, nil
		}, func(batch []*domain.ParseResult) {
			for _, pr := range batch {
				if pr == nil {
					continue
				}
				parsed[pr.Path] = pr
				pr.FreeContent()
			}
			done += len(batch)
			if done%progressInterval < len(batch) {
				report("parse", "parsing files", done, len(candidates))
			}
		})
		if err != nil {
			if agg, ok := err.(*workerpool.AggregatedError); ok {
				for _, jobErr := range agg.Errors {
					kind := domain.ErrParseFailed
					var pathErr *os.PathError
					if errors.As(jobErr.Err, &pathErr) {
						kind = domain.ErrReadFailed
					}
					diag.Add(kind, jobErr.Path, jobErr.Err)
				}
			}
		}
	}

	return parsed, excludedGenerated
}

func matchesAny(patterns []string, path string) bool {
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}

func buildResult(files []domain.File, entries []domain.EntryPoint, reachable domain.ReachableSet, deadLean []domain.DeadFileRecord, partialLean []domain.PartialFileRecord, fullyDead []domain.FullyDeadFile, partiallyDead []domain.PartiallyDeadFile, excludedGenerated []string, diag domain.Diagnostics) *domain.ScanResult {
	langCounts := map[domain.Language]int{}
	var totalDeadBytes int64
	for _, f := range files {
		langCounts[f.Language]++
	}
	for _, d := range deadLean {
		totalDeadBytes += d.Size
	}

	entryRecords := make([]domain.EntryPointRecord, 0, len(entries))
	for _, e := range entries {
		entryRecords = append(entryRecords, domain.EntryPointRecord{File: e.File, Reason: e.Reason, IsDynamic: e.IsDynamic})
	}
	sort.Slice(entryRecords, func(i, j int) bool { return entryRecords[i].File < entryRecords[j].File })

	total := len(files)
	deadRate := "0.00%"
	if total > 0 {
		deadRate = percent(float64(len(deadLean)) / float64(total))
	}

	return &domain.ScanResult{
		DeadFiles:          deadLean,
		PartialFiles:       partialLean,
		EntryPoints:        entryRecords,
		FullyDeadFiles:      fullyDead,
		PartiallyDeadFiles: partiallyDead,
		ExcludedGenerated:  excludedGenerated,
		Diagnostics:        diag,
		Summary: domain.Summary{
			TotalFiles:     total,
			EntryPoints:    len(entries),
			ReachableFiles: len(reachable),
			DeadFiles:      len(deadLean),
			PartialFiles:   len(partialLean),
			DeadRate:       deadRate,
			TotalDeadBytes: totalDeadBytes,
			Languages:      langCounts,
		},
		Version: "0.1.0",
	}
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}
