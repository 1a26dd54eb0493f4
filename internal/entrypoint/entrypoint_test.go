package entrypoint

import (
	"testing"

	"github.com/reachscan/reachscan/domain"
	"github.com/reachscan/reachscan/internal/configprobe"
)

func TestIsDeadNamed(t *testing.T) {
	cases := map[string]bool{
		"src/legacy-api/handler.ts": true,
		"src/deprecated_util.py":    true,
		"src/old_routes/routes.go":  true,
		"src/unused_helpers.rs":     true,
		"src/handler.ts":            false,
		"src/routes.go":             false,
	}
	for path, want := range cases {
		if got := IsDeadNamed(path); got != want {
			t.Errorf("IsDeadNamed(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestDetectConventionPatterns(t *testing.T) {
	files := []domain.File{
		{Path: "src/index.ts", Language: domain.LanguageJavaScript},
		{Path: "src/util.ts", Language: domain.LanguageJavaScript},
	}
	parsed := map[string]*domain.ParseResult{
		"src/index.ts": domain.NewParseResult("src/index.ts", domain.LanguageJavaScript),
		"src/util.ts":  domain.NewParseResult("src/util.ts", domain.LanguageJavaScript),
	}
	probe := &configprobe.Result{PathAliases: map[string]configprobe.TSConfigAliases{}}
	cfg := domain.DefaultEngineConfig()

	entries := Detect(files, parsed, probe, cfg)
	found := false
	for _, e := range entries {
		if e.File == "src/index.ts" {
			found = true
		}
		if e.File == "src/util.ts" {
			t.Errorf("src/util.ts should not be detected as an entry point")
		}
	}
	if !found {
		t.Error("expected src/index.ts to be detected via convention pattern")
	}
}

func TestDetectVetoesDeadNamedPath(t *testing.T) {
	files := []domain.File{{Path: "src/legacy-ui/index.ts", Language: domain.LanguageJavaScript}}
	parsed := map[string]*domain.ParseResult{
		"src/legacy-ui/index.ts": domain.NewParseResult("src/legacy-ui/index.ts", domain.LanguageJavaScript),
	}
	probe := &configprobe.Result{
		Entries: []configprobe.EntryCandidate{{Path: "src/legacy-ui/index.ts", Reason: "package.json main", Source: "packageJson"}},
	}
	cfg := domain.DefaultEngineConfig()

	entries := Detect(files, parsed, probe, cfg)
	for _, e := range entries {
		if e.File == "src/legacy-ui/index.ts" {
			t.Error("dead-named path should be vetoed even with a high-confidence probe signal")
		}
	}
}

func TestDetectDynamicPatterns(t *testing.T) {
	files := []domain.File{{Path: "plugins/custom.ts", Language: domain.LanguageJavaScript}}
	parsed := map[string]*domain.ParseResult{
		"plugins/custom.ts": domain.NewParseResult("plugins/custom.ts", domain.LanguageJavaScript),
	}
	probe := &configprobe.Result{}
	cfg := domain.DefaultEngineConfig()
	cfg.DynamicPatterns = []string{"plugins/*.ts"}

	entries := Detect(files, parsed, probe, cfg)
	if len(entries) != 1 || entries[0].File != "plugins/custom.ts" || !entries[0].IsDynamic {
		t.Errorf("expected one dynamic entry for plugins/custom.ts, got %+v", entries)
	}
}
