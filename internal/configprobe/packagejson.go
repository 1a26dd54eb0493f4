package configprobe

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// packageJSON is the subset of package.json fields every probe needs.
// Unknown fields are ignored by encoding/json, so a future field doesn't
// need this struct to change.
type packageJSON struct {
	Name            string            `json:"name"`
	Main            string            `json:"main"`
	Module          string            `json:"module"`
	Types           string            `json:"types"`
	Bin             json.RawMessage   `json:"bin"`
	Source          string            `json:"source"`
	Exports         json.RawMessage   `json:"exports"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Workspaces      json.RawMessage   `json:"workspaces"`
}

func parsePackageJSON(dir string) (*packageJSON, bool) {
	b, ok := readFileOrEmpty(filepath.Join(dir, "package.json"))
	if !ok {
		return nil, false
	}
	var pkg packageJSON
	if err := json.Unmarshal(b, &pkg); err != nil {
		return nil, false
	}
	return &pkg, true
}

// buildDirToSrc maps a `main`/`exports` path that points into a build
// output directory back to its source-equivalent (spec.md §4.4 rule 6).
func buildDirToSrc(relPath string) (string, bool) {
	buildDirs := []string{"dist/commonjs/", "dist/esm/", "dist/", "lib/", "build/", "out/"}
	clean := strings.TrimPrefix(relPath, "./")
	for _, bd := range buildDirs {
		if strings.HasPrefix(clean, bd) {
			rest := strings.TrimPrefix(clean, bd)
			rest = stripJSExt(rest)
			return "src/" + rest, true
		}
	}
	return "", false
}

func stripJSExt(p string) string {
	for _, ext := range []string{".d.ts", ".mjs", ".cjs", ".js", ".jsx", ".ts", ".tsx"} {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	return p
}

// exportsTargets walks a parsed `exports` field (string, map, or nested
// conditional map) and yields every target string it contains, including
// every condition of a conditional export (spec.md §4.4 rule 19).
func exportsTargets(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return []string{asString}
	}
	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asMap); err == nil {
		var out []string
		for _, v := range asMap {
			out = append(out, exportsTargets(v)...)
		}
		return out
	}
	return nil
}

// packageEntryCandidates implements spec.md §4.4 rule 6 for a single
// package.json: main/module/bin/exports/source/types fields, each mapped
// to its source-equivalent when it points into a build directory.
func packageEntryCandidates(dir string, pkg *packageJSON) []EntryCandidate {
	var out []EntryCandidate
	add := func(rel, reason string) {
		if rel == "" {
			return
		}
		if src, ok := buildDirToSrc(rel); ok {
			out = append(out, EntryCandidate{Path: filepath.Join(dir, src), Reason: reason + " (src-equivalent of " + rel + ")", Source: "packageJson"})
			// A package whose main points to a build dir treats every
			// src/* file as live.
			for _, f := range globAll(filepath.Join(dir, "src"), "**/*") {
				out = append(out, EntryCandidate{Path: f, Reason: "published package src directory", Source: "packageJson"})
			}
			return
		}
		out = append(out, EntryCandidate{Path: filepath.Join(dir, rel), Reason: reason, Source: "packageJson"})
	}

	add(pkg.Main, "package.json main")
	add(pkg.Module, "package.json module")
	add(pkg.Types, "package.json types")
	add(pkg.Source, "package.json source")
	for _, t := range exportsTargets(pkg.Exports) {
		add(t, "package.json exports")
	}

	var binStr string
	if err := json.Unmarshal(pkg.Bin, &binStr); err == nil {
		add(binStr, "package.json bin")
	} else {
		var binMap map[string]string
		if err := json.Unmarshal(pkg.Bin, &binMap); err == nil {
			for _, v := range binMap {
				add(v, "package.json bin")
			}
		}
	}

	return out
}

// dynamicPackageFieldEntries implements spec.md §4.4 rule 14: package.json
// fields like `plugins`/`nodes`/`credentials` name modules that are
// loaded dynamically by name rather than imported, so any string value
// found recursively under one of fields is treated the same way
// main/exports are — mapped back to its source-equivalent when it
// points into a build directory.
func dynamicPackageFieldEntries(dir string, raw []byte, fields []string) []EntryCandidate {
	if len(fields) == 0 {
		return nil
	}
	var top map[string]json.RawMessage
	if json.Unmarshal(raw, &top) != nil {
		return nil
	}
	wanted := map[string]bool{}
	for _, f := range fields {
		wanted[f] = true
	}

	var out []EntryCandidate
	var walk func(json.RawMessage, bool)
	walk = func(v json.RawMessage, collecting bool) {
		var s string
		if json.Unmarshal(v, &s) == nil {
			if collecting && s != "" {
				rel := s
				if src, ok := buildDirToSrc(rel); ok {
					out = append(out, EntryCandidate{Path: filepath.Join(dir, src), Reason: "dynamic package field (src-equivalent of " + rel + ")", Source: "packageJson"})
				} else {
					out = append(out, EntryCandidate{Path: filepath.Join(dir, strings.TrimPrefix(rel, "./")), Reason: "dynamic package field", Source: "packageJson"})
				}
			}
			return
		}
		var list []json.RawMessage
		if json.Unmarshal(v, &list) == nil {
			for _, item := range list {
				walk(item, collecting)
			}
			return
		}
		var obj map[string]json.RawMessage
		if json.Unmarshal(v, &obj) == nil {
			for key, item := range obj {
				walk(item, collecting || wanted[key])
			}
		}
	}
	for key, v := range top {
		walk(v, wanted[key])
	}
	return out
}

// npmScriptEntries regex-extracts node/tsx/ts-node invocations and
// test-runner glob arguments from package.json scripts (spec.md §4.4
// rule 8).
func npmScriptEntries(dir string, pkg *packageJSON) []EntryCandidate {
	var out []EntryCandidate
	runnerRe := `(?:node|npx\s+(?:tsx|ts-node)|tsx|ts-node)\s+([\w./-]+\.[jt]sx?)`
	for _, script := range pkg.Scripts {
		for _, m := range extractAll(script, runnerRe, 1) {
			out = append(out, EntryCandidate{Path: filepath.Join(dir, m), Reason: "referenced by npm script", Source: "packageJson"})
		}
		for _, m := range extractAll(script, `(['"][\w./*-]+\.(?:test|spec|cy)\.[jt]sx?['"])`, 1) {
			out = append(out, EntryCandidate{Path: filepath.Join(dir, strings.Trim(m, `'"`)), Reason: "referenced by npm script (test glob)", Source: "packageJson"})
		}
	}
	return out
}
