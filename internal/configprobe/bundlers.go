package configprobe

import (
	"path/filepath"
	"strings"
)

// ModuleFederationExposure is one `exposes` entry from a webpack Module
// Federation config (spec.md §4.3's webpack probe).
type ModuleFederationExposure struct {
	ExposedAs string
	Target    string
	ConfigDir string
}

// probeWebpack extracts `entry` values (string and object form) from
// webpack.config.* and the webpack.{dev,prod,common}.js variants
// (spec.md §4.3). The `mode` setting is not read.
func probeWebpack(root string) []EntryCandidate {
	var out []EntryCandidate
	files := globAll(root, "webpack.config.js", "webpack.config.mjs", "webpack.config.ts", "webpack.config.cjs",
		"webpack.dev.js", "webpack.prod.js", "webpack.common.js")
	for _, f := range files {
		b, ok := readFileOrEmpty(f)
		if !ok {
			continue
		}
		text := string(b)
		dir := filepath.Dir(f)
		for _, m := range extractAll(text, `entry\s*:\s*['"]([^'"]+)['"]`, 1) {
			out = append(out, EntryCandidate{Path: filepath.Join(dir, m), Reason: "webpack entry", Source: "bundlerConfig"})
		}
		for _, m := range extractAll(text, `['"]?\w+['"]?\s*:\s*['"]([^'"]+)['"]`, 1) {
			if looksLikeModulePath(m) {
				out = append(out, EntryCandidate{Path: filepath.Join(dir, m), Reason: "webpack entry (object form)", Source: "bundlerConfig"})
			}
		}
		for _, m := range extractAll(text, `['"]([^'"]+\.[jt]sx?)['"]\s*,`, 1) {
			out = append(out, EntryCandidate{Path: filepath.Join(dir, m), Reason: "webpack entry (array form)", Source: "bundlerConfig"})
		}
	}
	return out
}

func looksLikeModulePath(s string) bool {
	return strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") || strings.HasPrefix(s, "/")
}

// probeModuleFederation scans the root plus every first-level
// subdirectory with its own webpack config for `exposes`/`remotes`
// (spec.md §4.3's "separate Module Federation pass").
func probeModuleFederation(root string) ([]ModuleFederationExposure, []EntryCandidate) {
	var exposures []ModuleFederationExposure
	var entries []EntryCandidate

	dirs := []string{root}
	subEntries, _ := filepath.Glob(filepath.Join(root, "*"))
	for _, d := range subEntries {
		if hasWebpackConfig(d) {
			dirs = append(dirs, d)
		}
	}

	for _, dir := range dirs {
		for _, f := range globAll(dir, "webpack.config.js", "webpack.config.ts", "webpack.config.mjs") {
			b, ok := readFileOrEmpty(f)
			if !ok {
				continue
			}
			text := string(b)
			exposesBlock := extractBlock(text, "exposes")
			for _, m := range compiled(`['"]\.?/?([\w./-]+)['"]\s*:\s*['"]([^'"]+)['"]`).FindAllStringSubmatch(exposesBlock, -1) {
				exposedAs, target := m[1], m[2]
				for _, ext := range []string{".ts", ".tsx", ".js", ".jsx"} {
					entries = append(entries, EntryCandidate{Path: filepath.Join(dir, target+ext), Reason: "module federation exposes " + exposedAs, Source: "bundlerConfig"})
				}
				exposures = append(exposures, ModuleFederationExposure{ExposedAs: exposedAs, Target: target, ConfigDir: dir})
			}
		}
	}
	return exposures, entries
}

func hasWebpackConfig(dir string) bool {
	return len(globAll(dir, "webpack.config.js", "webpack.config.ts", "webpack.config.mjs")) > 0
}

// extractBlock returns the substring of text between a `key:` marker and
// its matching closing brace, a best-effort (not a real parser) way to
// isolate a nested object without executing the file.
func extractBlock(text, key string) string {
	idx := strings.Index(text, key)
	if idx < 0 {
		return ""
	}
	rest := text[idx:]
	start := strings.Index(rest, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(rest); i++ {
		switch rest[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return rest[start : i+1]
			}
		}
	}
	return rest[start:]
}

// probeViteFamily extracts entry strings for Vite/Rollup/esbuild/Parcel
// from package.json and vite.config.* (spec.md §4.3).
func probeViteFamily(root string) []EntryCandidate {
	var out []EntryCandidate

	pkg, ok := parsePackageJSON(root)
	if ok {
		if pkg.Source != "" {
			out = append(out, EntryCandidate{Path: filepath.Join(root, pkg.Source), Reason: "parcel source field", Source: "bundlerConfig"})
		}
	}

	for _, f := range globAll(root, "vite.config.js", "vite.config.ts", "rollup.config.js", "rollup.config.mjs", "esbuild.config.js", "esbuild.config.mjs") {
		b, ok := readFileOrEmpty(f)
		if !ok {
			continue
		}
		text := string(b)
		dir := filepath.Dir(f)
		for _, m := range extractAll(text, `(?:input|entry)\s*:\s*['"]([^'"]+)['"]`, 1) {
			out = append(out, EntryCandidate{Path: filepath.Join(dir, m), Reason: "vite/rollup entry", Source: "bundlerConfig"})
		}
		for _, m := range extractAll(text, `entryPoints\s*:\s*\[([^\]]*)\]`, 1) {
			for _, ep := range strings.Split(m, ",") {
				ep = strings.Trim(strings.TrimSpace(ep), `'"`)
				if ep != "" {
					out = append(out, EntryCandidate{Path: filepath.Join(dir, ep), Reason: "esbuild entryPoints", Source: "bundlerConfig"})
				}
			}
		}
	}
	out = append(out, probeViteAliasTargets(root)...)
	return out
}

// probeViteAliasTargets implements spec.md §4.4 rule 11: a vite.config's
// `resolve.alias` replacement target is the file actually served for the
// aliased import, so it is live even when nothing imports it by its real
// path.
func probeViteAliasTargets(root string) []EntryCandidate {
	var out []EntryCandidate
	for _, f := range globAll(root, "vite.config.js", "vite.config.ts", "vite.config.mjs", "vitest.config.js", "vitest.config.ts") {
		b, ok := readFileOrEmpty(f)
		if !ok {
			continue
		}
		dir := filepath.Dir(f)
		aliasBlock := extractBlock(string(b), "alias")
		for _, m := range extractAll(aliasBlock, `replacement\s*:\s*[\w.]*\(\s*__dirname\s*,\s*['"]([^'"]+)['"]`, 1) {
			out = append(out, EntryCandidate{Path: filepath.Join(dir, m), Reason: "vite resolve.alias replacement target", Source: "bundlerConfig"})
		}
		for _, m := range extractAll(aliasBlock, `['"][^'"]+['"]\s*:\s*['"](\.[^'"]+)['"]`, 1) {
			out = append(out, EntryCandidate{Path: filepath.Join(dir, m), Reason: "vite resolve.alias replacement target", Source: "bundlerConfig"})
		}
	}
	return out
}
