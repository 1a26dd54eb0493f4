package resolver

import (
	"strings"

	"github.com/reachscan/reachscan/domain"
)

var csharpPrefixVariants = []string{"", "src/"}

// resolveCSharp implements spec.md §4.5's `using A.B` -> `A/B.cs` rule,
// with prefix variants for conventional src layouts.
func (r *Resolver) resolveCSharp(imp domain.Import) []string {
	path := strings.ReplaceAll(imp.Module, ".", "/")
	for _, prefix := range csharpPrefixVariants {
		candidate := prefix + path + ".cs"
		if r.Index.Exists(candidate) {
			return []string{candidate}
		}
	}
	return nil
}
