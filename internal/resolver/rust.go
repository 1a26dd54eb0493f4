package resolver

import (
	"path/filepath"
	"strings"

	"github.com/reachscan/reachscan/domain"
)

// resolveRust implements spec.md §4.5's Rust rule: `a::b::c` becomes
// `a/b/c.rs` or `a/b/c/mod.rs`, relative to the crate source root for a
// `crate::` path or to fromFile's own directory for a `self::` path.
// Actual `mod X;` declarations are handled by internal/reachability's
// amplification pass, which has the declaring file's directory in hand;
// this resolver covers `use` paths reaching across the crate.
func (r *Resolver) resolveRust(fromFile string, imp domain.Import) []string {
	module := imp.Module

	base := r.crateRoot(fromFile)
	switch {
	case strings.HasPrefix(module, "crate::"):
		module = strings.TrimPrefix(module, "crate::")
	case strings.HasPrefix(module, "self::"):
		module = strings.TrimPrefix(module, "self::")
		base = filepath.Dir(fromFile)
	}
	if module == "" || module == "super" {
		return nil
	}

	parts := strings.Split(module, "::")
	asPath := filepath.Join(base, filepath.Join(parts...))

	if p, ok := r.rustFileOrMod(asPath); ok {
		return []string{p}
	}
	return nil
}

// crateRoot walks up from fromFile looking for the directory containing
// lib.rs or main.rs, which is where `crate::` paths are rooted.
func (r *Resolver) crateRoot(fromFile string) string {
	dir := filepath.Dir(fromFile)
	for {
		if r.Index.Exists(filepath.Join(dir, "lib.rs")) || r.Index.Exists(filepath.Join(dir, "main.rs")) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == "." {
			break
		}
		dir = parent
	}
	return "src"
}

func (r *Resolver) rustFileOrMod(path string) (string, bool) {
	if r.Index.Exists(path + ".rs") {
		return path + ".rs", true
	}
	if r.Index.Exists(path + "/mod.rs") {
		return path + "/mod.rs", true
	}
	return "", false
}
