package entrypoint

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/reachscan/reachscan/domain"
)

var scriptSrcPattern = regexp.MustCompile(`<script[^>]+src=["']([^"']+)["']`)

// htmlScriptEntries resolves every `<script src="X">` reference with path
// semantics appropriate to the HTML file's location (spec.md §4.4 rule 7).
// Root-absolute paths are treated as relative to the HTML file's
// containing directory, matching Vite's dev-server convention.
func htmlScriptEntries(files []domain.File) []domain.EntryPoint {
	var out []domain.EntryPoint
	for _, f := range files {
		if filepath.Ext(f.Path) != ".html" {
			continue
		}
		b, err := os.ReadFile(f.Path)
		if err != nil {
			continue
		}
		dir := filepath.Dir(f.Path)
		for _, m := range scriptSrcPattern.FindAllStringSubmatch(string(b), -1) {
			src := m[1]
			if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "//") {
				continue
			}
			rel := strings.TrimPrefix(src, "/")
			out = append(out, domain.EntryPoint{File: filepath.Join(dir, rel), Reason: "referenced by <script src> in " + f.Path, Source: domain.EntryHTML, Confidence: 0.85})
		}
	}
	return out
}
