package entrypoint

import (
	"os"
	"regexp"
	"strings"

	"github.com/reachscan/reachscan/domain"
)

// diContainerRefRe caches the regex built from a configured DI container
// pattern, extended to capture the class/service name it resolves.
var diContainerRefRe = map[string]*regexp.Regexp{}

func diContainerRefPattern(pattern string) *regexp.Regexp {
	if re, ok := diContainerRefRe[pattern]; ok {
		return re
	}
	var re *regexp.Regexp
	if strings.HasSuffix(pattern, "<") {
		re = regexp.MustCompile(pattern + `(\w+)`)
	} else {
		re = regexp.MustCompile(pattern + `\s*['"]?(\w+)`)
	}
	diContainerRefRe[pattern] = re
	return re
}

// diContainerEntries implements spec.md §4.4 rule 5: a class referenced by
// name through a DI container accessor (Container.get(X),
// container.resolve<T>(), services.AddScoped<T>, ...) is an entry point
// even when nothing in the codebase imports it directly, since the
// container wires it up at runtime.
func diContainerEntries(files []domain.File, parsed map[string]*domain.ParseResult, cfg *domain.EngineConfig) []domain.EntryPoint {
	if cfg == nil || len(cfg.DIContainerPatterns) == 0 {
		return nil
	}

	declaredBy := map[string][]string{}
	for path, pr := range parsed {
		for _, d := range pr.Declarations {
			if d.Exported && d.Name != "" {
				declaredBy[d.Name] = append(declaredBy[d.Name], path)
			}
		}
	}
	if len(declaredBy) == 0 {
		return nil
	}

	var out []domain.EntryPoint
	for _, f := range files {
		b, err := os.ReadFile(f.Path)
		if err != nil {
			continue
		}
		text := string(b)
		for _, pattern := range cfg.DIContainerPatterns {
			for _, m := range diContainerRefPattern(pattern).FindAllStringSubmatch(text, -1) {
				name := m[1]
				for _, declaringFile := range declaredBy[name] {
					if declaringFile == f.Path {
						continue
					}
					out = append(out, domain.EntryPoint{
						File:       declaringFile,
						Reason:     "DI container reference: " + name,
						Source:     domain.EntryDIAnnotation,
						Confidence: 0.75,
					})
				}
			}
		}
	}
	return out
}
