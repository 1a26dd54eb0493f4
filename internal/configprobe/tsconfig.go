package configprobe

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// TSConfigAliases is the resolved alias->targets map plus baseUrl for one
// directory's tsconfig.json (spec.md §4.3). Each package's alias map
// overrides the global map for files within its directory (spec.md
// §4.5 rule 2's "most-specific-package" lookup).
type TSConfigAliases struct {
	Paths   map[string][]string
	BaseURL string
}

type tsconfigFile struct {
	Extends         string          `json:"extends"`
	CompilerOptions json.RawMessage `json:"compilerOptions"`
	Files           []string        `json:"files"`
	Include         []string        `json:"include"`
}

type tsCompilerOptions struct {
	BaseURL string              `json:"baseUrl"`
	Paths   map[string][]string `json:"paths"`
}

// probeTSConfig parses dir/tsconfig.json, following `extends` chains
// (relative, node-module, absolute) and recording `files`/`include` as
// entry candidates (spec.md §4.3, §4.4 rule 10).
func probeTSConfig(dir string) (TSConfigAliases, []EntryCandidate) {
	result := TSConfigAliases{Paths: map[string][]string{}}
	path := filepath.Join(dir, "tsconfig.json")
	cfg, ok := loadTSConfigChain(path, 0)
	if !ok {
		return result, nil
	}

	var opts tsCompilerOptions
	if len(cfg.CompilerOptions) > 0 {
		json.Unmarshal(cfg.CompilerOptions, &opts)
	}
	result.BaseURL = opts.BaseURL
	result.Paths = opts.Paths

	var entries []EntryCandidate
	for _, f := range cfg.Files {
		entries = append(entries, EntryCandidate{Path: filepath.Join(dir, f), Reason: "tsconfig files", Source: "bundlerConfig"})
	}
	for _, pat := range cfg.Include {
		for _, f := range globAll(dir, pat) {
			entries = append(entries, EntryCandidate{Path: f, Reason: "tsconfig include", Source: "bundlerConfig"})
		}
	}
	return result, entries
}

// loadTSConfigChain reads a tsconfig.json (stripping line comments so
// comment-like substrings inside JSON strings survive) and recursively
// merges every tsconfig it extends, child values winning.
func loadTSConfigChain(path string, depth int) (tsconfigFile, bool) {
	if depth > 10 {
		return tsconfigFile{}, false
	}
	raw, ok := readFileOrEmpty(path)
	if !ok {
		return tsconfigFile{}, false
	}

	var cfg tsconfigFile
	if err := json.Unmarshal(stripJSONLineComments(raw), &cfg); err != nil {
		return tsconfigFile{}, false
	}
	if cfg.Extends == "" {
		return cfg, true
	}

	parentPath := resolveTSConfigExtends(filepath.Dir(path), cfg.Extends)
	parent, ok := loadTSConfigChain(parentPath, depth+1)
	if !ok {
		return cfg, true
	}
	return mergeTSConfig(parent, cfg), true
}

func resolveTSConfigExtends(dir, extends string) string {
	if strings.HasPrefix(extends, ".") || strings.HasPrefix(extends, "/") {
		p := extends
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, extends)
		}
		if !strings.HasSuffix(p, ".json") {
			p += ".json"
		}
		return p
	}
	// node-module form, e.g. "@tsconfig/node18/tsconfig.json"
	return filepath.Join(dir, "node_modules", extends)
}

func mergeTSConfig(parent, child tsconfigFile) tsconfigFile {
	merged := parent
	var parentOpts, childOpts tsCompilerOptions
	json.Unmarshal(parent.CompilerOptions, &parentOpts)
	json.Unmarshal(child.CompilerOptions, &childOpts)

	if childOpts.BaseURL != "" {
		parentOpts.BaseURL = childOpts.BaseURL
	}
	if len(childOpts.Paths) > 0 {
		if parentOpts.Paths == nil {
			parentOpts.Paths = map[string][]string{}
		}
		for k, v := range childOpts.Paths {
			parentOpts.Paths[k] = v
		}
	}
	merged.CompilerOptions, _ = json.Marshal(parentOpts)

	if len(child.Files) > 0 {
		merged.Files = child.Files
	}
	if len(child.Include) > 0 {
		merged.Include = child.Include
	}
	return merged
}

// stripJSONLineComments removes `//` line comments while leaving
// `//`-like substrings inside string literals untouched, so tsconfig's
// JSONC dialect can be fed to encoding/json.
func stripJSONLineComments(src []byte) []byte {
	out := make([]byte, 0, len(src))
	inString := false
	escaped := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		if c == '/' && i+1 < len(src) && src[i+1] == '/' {
			for i < len(src) && src[i] != '\n' {
				i++
			}
			out = append(out, '\n')
			continue
		}
		out = append(out, c)
	}
	return out
}
