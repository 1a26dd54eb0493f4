package configprobe

import (
	"path/filepath"
)

// probeCI scans GitHub Actions workflows, GitLab CI, and Jenkinsfiles for
// `run:` lines that invoke node, tsx, ts-node or `npx tsx`/`npx ts-node`
// on a .js/.ts script path, and returns those paths. npm-script
// references (`npm run x`) are not extracted, and Jenkinsfile steps only
// match when written in the same `run:` form.
func probeCI(root string) []EntryCandidate {
	var out []EntryCandidate

	for _, f := range globAll(root, ".github/workflows/*.yml", ".github/workflows/*.yaml") {
		out = append(out, extractCIRunCommands(f, "github actions workflow")...)
	}
	for _, f := range globAll(root, ".gitlab-ci.yml") {
		out = append(out, extractCIRunCommands(f, "gitlab ci")...)
	}
	for _, f := range globAll(root, "Jenkinsfile") {
		out = append(out, extractCIRunCommands(f, "jenkinsfile")...)
	}
	return out
}

func extractCIRunCommands(path, label string) []EntryCandidate {
	b, ok := readFileOrEmpty(path)
	if !ok {
		return nil
	}
	text := string(b)
	dir := filepath.Dir(path)
	var out []EntryCandidate

	for _, m := range extractAll(text, `run:\s*.*?(?:node|npx\s+(?:tsx|ts-node)|tsx|ts-node)\s+([\w./-]+\.[jt]sx?)`, 1) {
		out = append(out, EntryCandidate{Path: filepath.Join(dir, m), Reason: label + " run command", Source: "ciConfig"})
	}
	return out
}

// probeDocker extracts ENTRYPOINT/CMD (exec and shell form) and
// docker-compose command entries (spec.md §4.3).
func probeDocker(root string) []EntryCandidate {
	var out []EntryCandidate

	for _, f := range globAll(root, "Dockerfile", "Dockerfile.*", "**/Dockerfile") {
		b, ok := readFileOrEmpty(f)
		if !ok {
			continue
		}
		text := string(b)
		dir := filepath.Dir(f)
		for _, m := range extractAll(text, `(?:ENTRYPOINT|CMD)\s*\[.*?['"]([\w./-]+\.[jt]sx?)['"]`, 1) {
			out = append(out, EntryCandidate{Path: filepath.Join(dir, m), Reason: "docker ENTRYPOINT/CMD (exec form)", Source: "ciConfig"})
		}
		for _, m := range extractAll(text, `CMD\s+node\s+([\w./-]+\.[jt]sx?)`, 1) {
			out = append(out, EntryCandidate{Path: filepath.Join(dir, m), Reason: "docker CMD (shell form)", Source: "ciConfig"})
		}
	}

	for _, f := range globAll(root, "docker-compose.yml", "docker-compose.yaml") {
		b, ok := readFileOrEmpty(f)
		if !ok {
			continue
		}
		text := string(b)
		dir := filepath.Dir(f)
		for _, m := range extractAll(text, `command:\s*.*?node\s+([\w./-]+\.[jt]sx?)`, 1) {
			out = append(out, EntryCandidate{Path: filepath.Join(dir, m), Reason: "docker-compose command", Source: "ciConfig"})
		}
	}
	return out
}

// probeServerless maps every `handler: X.Y` in serverless.yml to
// candidate entry files X.{js,ts,mjs} (spec.md §4.3).
func probeServerless(root string) []EntryCandidate {
	var out []EntryCandidate
	for _, f := range globAll(root, "serverless.yml", "serverless.yaml") {
		b, ok := readFileOrEmpty(f)
		if !ok {
			continue
		}
		text := string(b)
		dir := filepath.Dir(f)
		for _, m := range extractAll(text, `handler:\s*([\w./-]+)\.\w+`, 1) {
			for _, ext := range []string{".js", ".ts", ".mjs"} {
				out = append(out, EntryCandidate{Path: filepath.Join(dir, m+ext), Reason: "serverless handler", Source: "ciConfig"})
			}
		}
	}
	return dedupeEntries(out)
}

func dedupeEntries(in []EntryCandidate) []EntryCandidate {
	seen := map[string]bool{}
	var out []EntryCandidate
	for _, c := range in {
		key := c.Path + "|" + c.Reason
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
