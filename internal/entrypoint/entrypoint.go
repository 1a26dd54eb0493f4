// Package entrypoint implements the "always-live" file detector of
// spec.md §4.4: a file is an entry point if any of its many independent
// signals fires, except for the path anti-pattern, which vetoes every
// other signal unconditionally.
package entrypoint

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/reachscan/reachscan/domain"
	"github.com/reachscan/reachscan/internal/configprobe"
)

// deadNamePattern is spec.md §4.4 rule 1: these paths never become entry
// points, full stop, regardless of any later match.
var deadNamePattern = regexp.MustCompile(`(?i)[/_-](dead|deprecated|legacy|old|unused)[-_][\w-]*`)

// IsDeadNamed reports whether path matches the anti-pattern veto. Shared
// with internal/reachability, whose same-package/same-namespace
// amplification rules must honour the same veto.
func IsDeadNamed(path string) bool {
	return deadNamePattern.MatchString(filepath.ToSlash(path))
}

// Detect combines every signal in spec.md §4.4 into the final entry-point
// set, keyed by file path so duplicate signals collapse into the
// highest-confidence reason.
func Detect(files []domain.File, parsed map[string]*domain.ParseResult, probe *configprobe.Result, cfg *domain.EngineConfig) []domain.EntryPoint {
	byPath := map[string]domain.EntryPoint{}
	add := func(ep domain.EntryPoint) {
		if IsDeadNamed(ep.File) {
			return
		}
		existing, ok := byPath[ep.File]
		if !ok || ep.Confidence > existing.Confidence {
			byPath[ep.File] = ep
		}
	}

	for _, f := range files {
		if matchConventionPattern(f.Path) {
			add(domain.EntryPoint{File: f.Path, Reason: "entry-point naming/path convention", Source: domain.EntryConvention, Confidence: 0.6})
		}
	}

	for _, c := range probe.Entries {
		if c.Path == "" {
			continue
		}
		add(domain.EntryPoint{File: c.Path, Reason: c.Reason, Source: domain.EntrySource(c.Source), Confidence: confidenceForSource(c.Source)})
	}

	for path, pr := range parsed {
		for _, decl := range pr.Declarations {
			for _, dec := range decl.Decorators {
				if matchesDIDecorator(dec, cfg) {
					add(domain.EntryPoint{File: path, Reason: "DI decorator/annotation: " + dec.Name, Source: domain.EntryDIAnnotation, Confidence: 0.85})
				}
			}
		}
		if pr.Metadata.IsSpringComponent {
			add(domain.EntryPoint{File: path, Reason: "spring stereotype annotation", Source: domain.EntryDIAnnotation, Confidence: 0.85})
		}
		if pr.Metadata.HasMainFunction || pr.Metadata.HasMainMethod || pr.Metadata.HasMainBlock || pr.Metadata.HasMainMethodCSharp {
			add(domain.EntryPoint{File: path, Reason: "main entry point", Source: domain.EntryConvention, Confidence: 0.95})
		}
		if pr.Metadata.IsCrateRoot {
			add(domain.EntryPoint{File: path, Reason: "rust crate root", Source: domain.EntryConvention, Confidence: 0.95})
		}
		if pr.Language == domain.LanguageRust {
			base := filepath.Base(path)
			dir := filepath.Dir(path)
			if (strings.HasPrefix(dir, "benches") || strings.Contains(filepath.ToSlash(dir), "/benches")) ||
				strings.Contains(filepath.ToSlash(dir), "/examples") || strings.Contains(filepath.ToSlash(dir), "/tests") ||
				base == "mod.rs" {
				add(domain.EntryPoint{File: path, Reason: "rust bench/example/integration-test convention", Source: domain.EntryConvention, Confidence: 0.8})
			}
		}
	}

	for _, pattern := range cfg.DynamicPatterns {
		for _, f := range files {
			if ok, _ := filepath.Match(pattern, f.Path); ok {
				add(domain.EntryPoint{File: f.Path, Reason: "user-supplied dynamic pattern", Source: domain.EntryConvention, IsDynamic: true, Confidence: 0.5})
			}
		}
	}

	add2 := htmlScriptEntries(files)
	for _, ep := range add2 {
		add(ep)
	}

	for _, ep := range diContainerEntries(files, parsed, cfg) {
		add(ep)
	}

	out := make([]domain.EntryPoint, 0, len(byPath))
	for _, ep := range byPath {
		out = append(out, ep)
	}
	return out
}

func confidenceForSource(source string) float64 {
	switch domain.EntrySource(source) {
	case domain.EntryPackageJSON, domain.EntryBundlerConfig:
		return 0.9
	case domain.EntryCIConfig, domain.EntryBuildSystem:
		return 0.7
	default:
		return 0.6
	}
}

func matchesDIDecorator(dec domain.Decorator, cfg *domain.EngineConfig) bool {
	for _, name := range cfg.DIDecorators {
		if dec.Name == name {
			if name != "Injectable" {
				return true
			}
			return decoratorHasInjectableScope(dec)
		}
	}
	return false
}

func decoratorHasInjectableScope(dec domain.Decorator) bool {
	if len(dec.Arguments) == 0 {
		return true
	}
	for _, arg := range dec.Arguments {
		if strings.Contains(arg, "providedIn") {
			return true
		}
	}
	return false
}
