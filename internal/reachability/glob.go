package reachability

import (
	"path/filepath"
	"strings"

	"github.com/reachscan/reachscan/domain"
	"github.com/reachscan/reachscan/internal/resolver"
)

// expandGlobImport implements spec.md §4.6 step 4: a glob-typed import
// (webpack require.context, import.meta.glob, glob.sync, Python
// `from X import *`) treats its module string as a glob and returns
// every project file matching it.
func expandGlobImport(fromFile string, imp domain.Import, res *resolver.Resolver) []string {
	pattern := imp.Module
	if pattern == "" {
		return nil
	}

	base := filepath.Dir(fromFile)
	var full string
	switch {
	case strings.HasPrefix(pattern, "./") || strings.HasPrefix(pattern, "../"):
		full = filepath.Join(base, pattern)
	case strings.HasPrefix(pattern, "/"):
		full = strings.TrimPrefix(pattern, "/")
	default:
		full = filepath.Join(base, pattern)
	}

	var out []string
	for p := range res.Index.AllPaths() {
		if ok, _ := filepath.Match(full, p); ok {
			out = append(out, p)
			continue
		}
		// require.context(dir, recursive) style globs frequently arrive
		// without a file extension on the pattern; treat a directory
		// prefix match as sufficient when the glob carries no wildcard.
		if !strings.ContainsAny(pattern, "*?[") && strings.HasPrefix(filepath.ToSlash(p), filepath.ToSlash(full)) {
			out = append(out, p)
		}
	}
	return out
}
