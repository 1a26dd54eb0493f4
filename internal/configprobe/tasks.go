package configprobe

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// probeGruntGulp implements spec.md §4.4 rule 12: a Gruntfile/Gulpfile
// `concat` task lists its sources as plain glob strings, each of which is
// bundled into the task's output and so counts as live even though
// nothing imports it.
func probeGruntGulp(root string) []EntryCandidate {
	var out []EntryCandidate
	for _, f := range globAll(root, "Gruntfile.js", "gruntfile.js", "gulpfile.js", "gulpfile.babel.js") {
		b, ok := readFileOrEmpty(f)
		if !ok {
			continue
		}
		text := string(b)
		dir := filepath.Dir(f)
		concatBlock := extractBlock(text, "concat")
		for _, m := range extractAll(concatBlock, `src\s*:\s*\[([^\]]*)\]`, 1) {
			for _, src := range strings.Split(m, ",") {
				src = strings.Trim(strings.TrimSpace(src), `'"`)
				if src == "" {
					continue
				}
				for _, expanded := range globAll(dir, src) {
					out = append(out, EntryCandidate{Path: expanded, Reason: "grunt/gulp concat source", Source: "bundlerConfig"})
				}
			}
		}
	}
	return out
}

// probeDenoWorkspace implements spec.md §4.4 rule 17: each Deno
// workspace member's conventional mod.ts/main.ts, plus every file named
// in that member's own deno.json `exports` map.
func probeDenoWorkspace(root string) []EntryCandidate {
	b, ok := readFileOrEmpty(filepath.Join(root, "deno.json"))
	if !ok {
		b, ok = readFileOrEmpty(filepath.Join(root, "deno.jsonc"))
	}
	if !ok {
		return nil
	}
	var cfg struct {
		Workspace []string `json:"workspace"`
	}
	if json.Unmarshal(stripJSONLineComments(b), &cfg) != nil {
		return nil
	}

	var out []EntryCandidate
	for _, member := range cfg.Workspace {
		dir := filepath.Join(root, member)
		out = append(out, denoMemberEntries(dir)...)
	}
	return out
}

func denoMemberEntries(dir string) []EntryCandidate {
	var out []EntryCandidate
	for _, f := range globAll(dir, "mod.ts", "main.ts") {
		out = append(out, EntryCandidate{Path: f, Reason: "deno workspace member root", Source: "buildSystem"})
	}

	b, ok := readFileOrEmpty(filepath.Join(dir, "deno.json"))
	if !ok {
		b, ok = readFileOrEmpty(filepath.Join(dir, "deno.jsonc"))
	}
	if !ok {
		return out
	}
	var memberCfg struct {
		Exports json.RawMessage `json:"exports"`
	}
	if json.Unmarshal(stripJSONLineComments(b), &memberCfg) != nil {
		return out
	}
	for _, target := range exportsTargets(memberCfg.Exports) {
		out = append(out, EntryCandidate{Path: filepath.Join(dir, target), Reason: "deno.json exports map", Source: "buildSystem"})
	}
	return out
}
