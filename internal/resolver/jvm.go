package resolver

import (
	"path/filepath"
	"strings"

	"github.com/reachscan/reachscan/domain"
)

// frameworkPackagePrefixes are known external packages that were never
// going to be in the project's own FQN map — spec.md §4.5 calls these
// out explicitly so the resolver doesn't fall through to the expensive
// class-name-suffix scan for every `java.util.List` import.
var frameworkPackagePrefixes = []string{
	"org.springframework.", "java.", "javax.", "jakarta.", "kotlin.", "kotlinx.",
	"com.google.", "com.fasterxml.", "org.apache.", "org.junit.", "org.slf4j.",
	"io.micronaut.", "io.quarkus.", "android.", "androidx.",
}

func isFrameworkPackage(fqn string) bool {
	for _, prefix := range frameworkPackagePrefixes {
		if strings.HasPrefix(fqn, prefix) {
			return true
		}
	}
	return false
}

// resolveJavaKotlin implements spec.md §4.5's Java/Kotlin rules: an
// indexed FQN map first, wildcard package resolution second, static
// imports third, known framework packages treated as external, and a
// last-resort class-name suffix match.
func (r *Resolver) resolveJavaKotlin(imp domain.Import) []string {
	module := imp.Module

	if imp.Type == domain.ImportStatic {
		if idx := strings.LastIndex(module, "."); idx > 0 {
			module = module[:idx]
		}
	}

	if strings.HasSuffix(module, ".*") {
		pkg := strings.TrimSuffix(module, ".*")
		var out []string
		for fqn, path := range r.JavaFQN {
			if strings.HasPrefix(fqn, pkg+".") && !strings.Contains(strings.TrimPrefix(fqn, pkg+"."), ".") {
				out = append(out, path)
			}
		}
		return out
	}

	if path, ok := r.JavaFQN[module]; ok {
		return []string{path}
	}

	if isFrameworkPackage(module) {
		return nil
	}

	if matches := r.resolveJavaSourceRootCandidates(strings.ReplaceAll(module, ".", "/")); len(matches) > 0 {
		return matches
	}

	className := module
	if idx := strings.LastIndex(module, "."); idx >= 0 {
		className = module[idx+1:]
	}
	if matches := r.Index.SuffixMatches(className + ".java"); len(matches) > 0 {
		return matches
	}
	if matches := r.Index.SuffixMatches(className + ".kt"); len(matches) > 0 {
		return matches
	}
	return nil
}

// resolveJavaSourceRootCandidates prepends each discovered Java/Kotlin
// source root as a prefix variant, mirroring the JS resolver's prefix
// list, for cases where the FQN index missed a file parsed with a
// partial package declaration.
func (r *Resolver) resolveJavaSourceRootCandidates(pkgPath string) []string {
	var out []string
	for _, root := range r.Probe.JavaSourceRoots {
		candidate := filepath.Join(root, filepath.FromSlash(pkgPath))
		if r.Index.Exists(candidate + ".java") {
			out = append(out, candidate+".java")
		}
		if r.Index.Exists(candidate + ".kt") {
			out = append(out, candidate+".kt")
		}
	}
	return out
}
