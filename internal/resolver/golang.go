package resolver

import (
	"path/filepath"
	"strings"

	"github.com/reachscan/reachscan/domain"
)

// resolveGo implements spec.md §4.5's Go rules: module-path stripping
// first, trailing-segment directory match second, last-segment match
// third. Returns every non-test .go file in the resolved directory
// (import resolution targets a package, not a single file).
func (r *Resolver) resolveGo(fromFile string, imp domain.Import) []string {
	module := imp.Module

	if r.GoModulePath != "" && strings.HasPrefix(module, r.GoModulePath) {
		rel := strings.TrimPrefix(module, r.GoModulePath)
		rel = strings.TrimPrefix(rel, "/")
		return r.goPackageFiles(rel)
	}

	segments := strings.Split(module, "/")
	for i := range segments {
		rel := filepath.Join(segments[i:]...)
		if files := r.goPackageFiles(rel); len(files) > 0 {
			return files
		}
	}

	if len(segments) > 0 {
		last := segments[len(segments)-1]
		if matches := r.Index.SuffixMatches(last + ".go"); len(matches) > 0 {
			return matches
		}
	}
	return nil
}

// goPackageFiles returns every non-test .go file directly within dir
// (spec.md §4.5's "non-test files in that exact directory only").
func (r *Resolver) goPackageFiles(dir string) []string {
	var out []string
	for _, p := range r.Index.FilesIn(dir) {
		if filepath.Ext(p) == ".go" && !strings.HasSuffix(p, "_test.go") {
			out = append(out, p)
		}
	}
	return out
}
