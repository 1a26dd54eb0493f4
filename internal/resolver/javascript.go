package resolver

import (
	"path/filepath"
	"strings"

	"github.com/reachscan/reachscan/domain"
)

var jsCandidateExtensions = []string{
	"", ".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".mts", ".cts", ".vue", ".svelte",
	".ios.ts", ".ios.tsx", ".ios.js", ".android.ts", ".android.tsx", ".android.js",
	".web.ts", ".web.tsx", ".web.js", ".native.ts", ".native.tsx", ".native.js",
	".macos.ts", ".macos.tsx", ".windows.ts", ".windows.tsx",
}

// resolveJS implements spec.md §4.5's JavaScript/TypeScript rules in
// order: relative/root-relative, path-alias, workspace-package,
// tsconfig baseUrl, then extension-candidate matching.
func (r *Resolver) resolveJS(fromFile string, imp domain.Import) []string {
	module := imp.Module
	if module == "" {
		return nil
	}

	if strings.HasPrefix(module, "./") || strings.HasPrefix(module, "../") {
		base := filepath.Join(filepath.Dir(fromFile), module)
		if p, ok := r.Index.TryExtensions(base, jsCandidateExtensions); ok {
			return []string{p}
		}
		return nil
	}
	if strings.HasPrefix(module, "/") {
		base := strings.TrimPrefix(module, "/")
		if p, ok := r.Index.TryExtensions(base, jsCandidateExtensions); ok {
			return []string{p}
		}
		return nil
	}

	if target, ok := r.resolveJSAlias(fromFile, module); ok {
		if p, ok := r.Index.TryExtensions(target, jsCandidateExtensions); ok {
			return []string{p}
		}
	}

	if paths := r.resolveWorkspacePackage(fromFile, module); len(paths) > 0 {
		return paths
	}

	for _, aliases := range r.Probe.PathAliases {
		if aliases.BaseURL == "" {
			continue
		}
		base := filepath.Join(filepath.Dir(fromFile), aliases.BaseURL, module)
		if p, ok := r.Index.TryExtensions(base, jsCandidateExtensions); ok {
			return []string{p}
		}
	}

	return nil
}

type aliasEntry struct {
	prefix  string
	targets []string
	dir     string
}

// resolveJSAlias finds the alias applicable to fromFile (global merged
// with the most-specific enclosing package's alias table) and rewrites
// module against it. Aliases are tried longest-first.
func (r *Resolver) resolveJSAlias(fromFile, module string) (string, bool) {
	var candidates []aliasEntry

	bestDirLen := -1
	var bestDir string
	for dir := range r.Probe.PathAliases {
		if strings.HasPrefix(filepath.ToSlash(fromFile), filepath.ToSlash(dir)) && len(dir) > bestDirLen {
			bestDirLen = len(dir)
			bestDir = dir
		}
	}

	for dir, aliases := range r.Probe.PathAliases {
		if dir != bestDir {
			continue
		}
		for pattern, targets := range aliases.Paths {
			candidates = append(candidates, aliasEntry{prefix: pattern, targets: targets, dir: dir})
		}
	}

	sortAliasesLongestFirst(candidates)

	for _, c := range candidates {
		prefix := strings.TrimSuffix(c.prefix, "*")
		if !strings.HasPrefix(module, prefix) {
			continue
		}
		rest := strings.TrimPrefix(module, prefix)
		for _, t := range c.targets {
			target := strings.TrimSuffix(t, "*") + rest
			return filepath.Join(c.dir, target), true
		}
	}
	return "", false
}

func sortAliasesLongestFirst(entries []aliasEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && len(entries[j].prefix) > len(entries[j-1].prefix); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

// resolveWorkspacePackage handles `import "@scope/pkg/sub/path"` against
// the workspace registry (spec.md §4.5 rule 3).
func (r *Resolver) resolveWorkspacePackage(fromFile, module string) []string {
	for _, pkg := range r.Probe.Workspaces {
		if pkg.Name == "" {
			continue
		}
		if module != pkg.Name && !strings.HasPrefix(module, pkg.Name+"/") {
			continue
		}
		subPath := strings.TrimPrefix(module, pkg.Name)
		subPath = strings.TrimPrefix(subPath, "/")

		if subPath == "" {
			for _, entry := range []string{pkg.Main, pkg.Module} {
				if entry == "" {
					continue
				}
				if p, ok := r.Index.TryExtensions(filepath.Join(pkg.Dir, entry), jsCandidateExtensions); ok {
					return []string{p}
				}
			}
			continue
		}

		if p, ok := r.Index.TryExtensions(filepath.Join(pkg.Dir, subPath), jsCandidateExtensions); ok {
			return []string{p}
		}
		if p, ok := r.Index.TryExtensions(filepath.Join(pkg.Dir, "src", subPath), jsCandidateExtensions); ok {
			return []string{p}
		}
	}
	return nil
}
