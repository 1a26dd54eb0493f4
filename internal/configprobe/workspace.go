package configprobe

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reachscan/reachscan/domain"
)

// WorkspacePackage is one member of the workspace registry (spec.md
// §4.3's "workspace package registry"), carrying enough of its own
// package.json to drive the resolver's workspace-match rule (spec.md
// §4.5 rule 3).
type WorkspacePackage struct {
	Name    string
	Dir     string
	Main    string
	Module  string
	Types   string
	Exports json.RawMessage
}

// isAbandonedPackage implements spec.md §4.4 rule 2: a nested workspace
// package's main/module/source/types file is only an entry point when
// the package is depended on by another workspace member, has an
// internal workspace dependency of its own, or is a framework app.
// Lacking all three (and not hosting its own non-JS build manifest), the
// package is "abandoned" and its main/module/types/exports/bin fields
// suppress entry-point status entirely — nothing in the workspace, and
// no framework convention, will ever load it.
func isAbandonedPackage(pkg *packageJSON, dir string, packagesByName map[string]bool, dependedOn map[string]bool) bool {
	if pkg.Name != "" && dependedOn[pkg.Name] {
		return false
	}
	for dep := range pkg.Dependencies {
		if packagesByName[dep] {
			return false
		}
	}
	for dep := range pkg.DevDependencies {
		if packagesByName[dep] {
			return false
		}
	}
	if isFrameworkApp(pkg, dir) {
		return false
	}
	if hasOwnBuildManifest(dir) {
		return false
	}
	return true
}

// isFrameworkApp recognizes an Ember/Angular/Vue-style app: it has no
// depender and no internal workspace deps, but is still launched by its
// own tooling off a start/dev/build script or a framework config file.
func isFrameworkApp(pkg *packageJSON, dir string) bool {
	for _, script := range []string{"start", "dev", "build", "serve"} {
		if pkg.Scripts[script] != "" {
			return true
		}
	}
	for _, marker := range []string{"ember-cli-build.js", "angular.json", "vue.config.js", "nuxt.config.ts", "nuxt.config.js"} {
		if len(globAll(dir, marker)) > 0 {
			return true
		}
	}
	return false
}

// hasOwnBuildManifest recognizes a workspace directory that actually
// hosts a non-JS project (e.g. a Go module vendored inside a JS
// monorepo) with its own build graph, which this probe's npm-centric
// rules can't see is alive.
func hasOwnBuildManifest(dir string) bool {
	for _, marker := range []string{"go.mod", "Cargo.toml", "pom.xml", "build.gradle", "build.gradle.kts"} {
		if len(globAll(dir, marker)) > 0 {
			return true
		}
	}
	return len(globAll(dir, "*.csproj")) > 0
}

// probeWorkspaces reads npm/yarn `workspaces`, pnpm-workspace.yaml
// `packages`, Lerna `packages`, and Rush `projects[].projectFolder`,
// glob-expanding each into concrete package directories (spec.md §4.3).
func probeWorkspaces(root string, cfg *domain.EngineConfig) ([]WorkspacePackage, []EntryCandidate) {
	var globs []string

	if pkg, ok := parsePackageJSON(root); ok {
		globs = append(globs, decodeWorkspaceGlobs(pkg.Workspaces)...)
	}
	if b, ok := readFileOrEmpty(filepath.Join(root, "pnpm-workspace.yaml")); ok {
		var pnpm struct {
			Packages []string `yaml:"packages"`
		}
		if yaml.Unmarshal(b, &pnpm) == nil {
			globs = append(globs, pnpm.Packages...)
		}
	}
	if b, ok := readFileOrEmpty(filepath.Join(root, "lerna.json")); ok {
		var lerna struct {
			Packages []string `json:"packages"`
		}
		if json.Unmarshal(b, &lerna) == nil {
			globs = append(globs, lerna.Packages...)
		}
	}
	if b, ok := readFileOrEmpty(filepath.Join(root, "rush.json")); ok {
		var rush struct {
			Projects []struct {
				ProjectFolder string `json:"projectFolder"`
			} `json:"projects"`
		}
		if json.Unmarshal(b, &rush) == nil {
			for _, p := range rush.Projects {
				globs = append(globs, p.ProjectFolder)
			}
		}
	}

	if len(globs) == 0 {
		return nil, nil
	}

	var packages []WorkspacePackage
	pkgsByDir := map[string]*packageJSON{}
	seen := map[string]bool{}
	for _, g := range globs {
		for _, dir := range expandWorkspaceGlob(root, g) {
			if seen[dir] {
				continue
			}
			pkg, ok := parsePackageJSON(dir)
			if !ok {
				continue
			}
			seen[dir] = true
			pkgsByDir[dir] = pkg
			packages = append(packages, WorkspacePackage{
				Name: pkg.Name, Dir: dir, Main: pkg.Main, Module: pkg.Module, Types: pkg.Types, Exports: pkg.Exports,
			})
		}
	}

	packagesByName := map[string]bool{}
	for _, p := range packages {
		if p.Name != "" {
			packagesByName[p.Name] = true
		}
	}
	dependedOn := map[string]bool{}
	for _, pkg := range pkgsByDir {
		for dep := range pkg.Dependencies {
			dependedOn[dep] = true
		}
		for dep := range pkg.DevDependencies {
			dependedOn[dep] = true
		}
	}

	var entries []EntryCandidate
	for dir, pkg := range pkgsByDir {
		if isAbandonedPackage(pkg, dir, packagesByName, dependedOn) {
			continue
		}
		entries = append(entries, packageEntryCandidates(dir, pkg)...)
		entries = append(entries, npmScriptEntries(dir, pkg)...)
		if cfg != nil {
			if raw, ok := readFileOrEmpty(filepath.Join(dir, "package.json")); ok {
				entries = append(entries, dynamicPackageFieldEntries(dir, raw, cfg.DynamicPackageFields)...)
			}
		}
	}
	return packages, entries
}

func decodeWorkspaceGlobs(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var asList []string
	if json.Unmarshal(raw, &asList) == nil {
		return asList
	}
	var asObj struct {
		Packages []string `json:"packages"`
	}
	if json.Unmarshal(raw, &asObj) == nil {
		return asObj.Packages
	}
	return nil
}

// expandWorkspaceGlob expands `packages/*`-style workspace globs into
// directories. Only the bare `**` pattern is limited to directories that
// contain a package.json; any other pattern returns every path it
// matches, with no package.json check.
func expandWorkspaceGlob(root, pattern string) []string {
	pattern = strings.TrimSuffix(pattern, "/")
	if pattern == "**" {
		var out []string
		for _, f := range globAll(root, "**/package.json") {
			out = append(out, filepath.Dir(f))
		}
		return out
	}
	matches, err := filepath.Glob(filepath.Join(root, pattern))
	if err != nil {
		return nil
	}
	var out []string
	for _, m := range matches {
		out = append(out, m)
	}
	return out
}

// workspaceDirs returns every workspace package directory (root is not
// included; Run probes the root tsconfig.json separately), used to probe
// each package's own tsconfig.json.
func workspaceDirs(packages []WorkspacePackage, root string) []string {
	var out []string
	for _, p := range packages {
		out = append(out, p.Dir)
	}
	return out
}
