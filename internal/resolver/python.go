package resolver

import (
	"path/filepath"
	"strings"

	"github.com/reachscan/reachscan/domain"
	"github.com/reachscan/reachscan/internal/langparse"
)

var pythonPrefixVariants = []string{"", "src/", "app/"}

// resolvePython implements spec.md §4.5's Python rules: absolute dotted
// paths try both the submodule and symbol-in-module interpretations;
// relative imports count leading dots to pick the base directory.
func (r *Resolver) resolvePython(fromFile string, imp domain.Import) []string {
	module := imp.Module

	if depth := langparse.RelativeImportDepth(module); depth > 0 {
		base := filepath.Dir(fromFile)
		for i := 1; i < depth; i++ {
			base = filepath.Dir(base)
		}
		rest := strings.TrimLeft(module, ".")
		return r.resolvePythonDotted(base, rest, imp.Symbol)
	}

	for _, prefix := range pythonPrefixVariants {
		if out := r.resolvePythonDotted(prefix, module, imp.Symbol); out != nil {
			return out
		}
	}
	return nil
}

func (r *Resolver) resolvePythonDotted(base, dotted, symbol string) []string {
	var out []string
	asPath := base

	if dotted == "" {
		if p := filepath.Join(base, "__init__.py"); r.Index.Exists(p) {
			out = append(out, p)
		}
	} else {
		parts := strings.Split(dotted, ".")
		asPath = filepath.Join(append([]string{base}, parts...)...)

		if p := asPath + ".py"; r.Index.Exists(p) {
			out = append(out, p)
		}
		if p := filepath.Join(asPath, "__init__.py"); r.Index.Exists(p) {
			out = append(out, p)
		}
	}

	// `from a.b import c` (or `from . import c`): c may itself be a
	// submodule a/b/c.py rather than a name defined inside a/b.
	if symbol != "" && symbol != "*" {
		if p := filepath.Join(asPath, symbol) + ".py"; r.Index.Exists(p) {
			out = append(out, p)
		}
	}
	return out
}
