// Package configprobe implements the independent config readers of
// spec.md §4.3: each probe is keyed to a specific file (glob or exact
// name), tolerates syntax errors by returning empty results, and never
// executes the files it reads — only regex/text extraction of declared
// strings. The aggregated output feeds the entry-point detector
// (internal/entrypoint) and the import resolver (internal/resolver).
package configprobe

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/reachscan/reachscan/domain"
)

// EntryCandidate is one path discovered by a probe, with the reason a
// human would recognise (spec.md §4.4's confidence/reason pairing).
type EntryCandidate struct {
	Path   string
	Reason string
	Source string // matches domain.EntrySource values, kept as string to avoid an import cycle
}

// Result aggregates everything every probe contributed for one project
// scan (spec.md §4.3's "single aggregated entry-point list plus
// side-channel data").
type Result struct {
	Entries []EntryCandidate

	// Side-channel data consumed by internal/resolver.
	Workspaces       []WorkspacePackage
	PathAliases      map[string]TSConfigAliases // directory -> alias table
	GoModulePath     string
	JavaSourceRoots  []string
	ModuleFederation []ModuleFederationExposure
}

func newResult() *Result {
	return &Result{PathAliases: map[string]TSConfigAliases{}}
}

// Run executes every probe against root and returns the aggregated
// result. The entry-candidate probes are each wrapped in safe(), so a
// panic in one of them yields an empty result and the others still run;
// the module-federation, workspace, go.mod, Java source-root and tsconfig
// probes are called directly and are not wrapped.
func Run(root string, cfg *domain.EngineConfig) *Result {
	result := newResult()
	var mu sync.Mutex
	add := func(entries []EntryCandidate) {
		mu.Lock()
		result.Entries = append(result.Entries, entries...)
		mu.Unlock()
	}

	add(safe(func() []EntryCandidate {
		pkg, ok := parsePackageJSON(root)
		if !ok {
			return nil
		}
		out := append(packageEntryCandidates(root, pkg), npmScriptEntries(root, pkg)...)
		if raw, ok := readFileOrEmpty(filepath.Join(root, "package.json")); ok && cfg != nil {
			out = append(out, dynamicPackageFieldEntries(root, raw, cfg.DynamicPackageFields)...)
		}
		return out
	}))
	add(safe(func() []EntryCandidate { return probeWebpack(root) }))
	add(safe(func() []EntryCandidate { return probeViteFamily(root) }))
	add(safe(func() []EntryCandidate { return probeCI(root) }))
	add(safe(func() []EntryCandidate { return probeDocker(root) }))
	add(safe(func() []EntryCandidate { return probeServerless(root) }))
	add(safe(func() []EntryCandidate { return probeNextJS(root) }))
	add(safe(func() []EntryCandidate { return probeTestRunners(root) }))
	add(safe(func() []EntryCandidate { return probeNxAngular(root) }))
	add(safe(func() []EntryCandidate { return probeBuildSystems(root) }))
	add(safe(func() []EntryCandidate { return probeGruntGulp(root) }))
	add(safe(func() []EntryCandidate { return probeDenoWorkspace(root) }))

	mf, entries := probeModuleFederation(root)
	add(entries)
	result.ModuleFederation = mf

	workspaces, wsEntries := probeWorkspaces(root, cfg)
	add(wsEntries)
	result.Workspaces = workspaces

	result.GoModulePath = probeGoModule(root)
	result.JavaSourceRoots = probeJavaSourceRoots(root)

	for _, pkgDir := range workspaceDirs(workspaces, root) {
		aliases, entries := probeTSConfig(pkgDir)
		add(entries)
		if len(aliases.Paths) > 0 {
			result.PathAliases[pkgDir] = aliases
		}
	}
	rootAliases, rootEntries := probeTSConfig(root)
	add(rootEntries)
	if len(rootAliases.Paths) > 0 {
		result.PathAliases[root] = rootAliases
	}

	return relativize(result, root)
}

// relativize rewrites every absolute, root-joined path a probe produced
// into a project-relative, forward-slash path, matching the format
// domain.File.Path and internal/resolver.Index use throughout the rest of
// the pipeline.
func relativize(result *Result, root string) *Result {
	rel := func(p string) string {
		r, err := filepath.Rel(root, p)
		if err != nil {
			return filepath.ToSlash(p)
		}
		if r == "." {
			// The project root itself: internal/resolver's alias-dir prefix
			// match expects "" here so every relative file path matches.
			return ""
		}
		return filepath.ToSlash(r)
	}

	for i := range result.Entries {
		result.Entries[i].Path = rel(result.Entries[i].Path)
	}
	for i := range result.Workspaces {
		result.Workspaces[i].Dir = rel(result.Workspaces[i].Dir)
	}
	for i := range result.JavaSourceRoots {
		result.JavaSourceRoots[i] = rel(result.JavaSourceRoots[i])
	}
	for i := range result.ModuleFederation {
		result.ModuleFederation[i].Target = rel(result.ModuleFederation[i].Target)
		result.ModuleFederation[i].ConfigDir = rel(result.ModuleFederation[i].ConfigDir)
	}

	relAliases := make(map[string]TSConfigAliases, len(result.PathAliases))
	for dir, aliases := range result.PathAliases {
		relAliases[rel(dir)] = aliases
	}
	result.PathAliases = relAliases

	return result
}

// safe runs a probe, recovering any panic into an empty result —
// spec.md §4.3's "tolerates syntax errors and conservatively returns
// empty results on failure" extended to cover programmer error in the
// probe itself, since config files are adversarial input.
func safe(fn func() []EntryCandidate) []EntryCandidate {
	var out []EntryCandidate
	func() {
		defer func() { recover() }()
		out = fn()
	}()
	return out
}

func readFileOrEmpty(path string) ([]byte, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return b, true
}

// globAll expands patterns against root. filepath.Glob has no recursive
// "**" support, so any pattern containing "**" instead walks the tree
// and matches the remaining glob against each file found.
func globAll(root string, patterns ...string) []string {
	var out []string
	for _, pat := range patterns {
		if !strings.Contains(pat, "**") {
			matches, err := filepath.Glob(filepath.Join(root, pat))
			if err == nil {
				out = append(out, matches...)
			}
			continue
		}
		suffix := strings.TrimPrefix(pat, "**/")
		filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if suffix == "*" || suffix == "" {
				out = append(out, p)
				return nil
			}
			if ok, _ := filepath.Match(suffix, filepath.Base(p)); ok {
				out = append(out, p)
			}
			return nil
		})
	}
	return out
}

var regexCacheMu sync.Mutex
var regexCache = map[string]*regexp.Regexp{}

func compiled(pattern string) *regexp.Regexp {
	regexCacheMu.Lock()
	defer regexCacheMu.Unlock()
	if re, ok := regexCache[pattern]; ok {
		return re
	}
	re := regexp.MustCompile(pattern)
	regexCache[pattern] = re
	return re
}

func extractAll(text, pattern string, group int) []string {
	matches := compiled(pattern).FindAllStringSubmatch(text, -1)
	var out []string
	for _, m := range matches {
		if len(m) > group {
			out = append(out, m[group])
		}
	}
	return out
}
