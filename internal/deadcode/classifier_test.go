package deadcode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reachscan/reachscan/domain"
)

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestClassifyFullyDead(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "src/main.ts", "export function x(){}\n")
	writeTestFile(t, root, "src/unused.ts", "export const y = 1\n")

	files := []domain.File{
		{Path: "src/main.ts", Size: 22, Lines: 1, Language: domain.LanguageJavaScript},
		{Path: "src/unused.ts", Size: 18, Lines: 1, Language: domain.LanguageJavaScript},
	}
	parsed := map[string]*domain.ParseResult{
		"src/main.ts":   domain.NewParseResult("src/main.ts", domain.LanguageJavaScript),
		"src/unused.ts": domain.NewParseResult("src/unused.ts", domain.LanguageJavaScript),
	}
	parsed["src/unused.ts"].Exports = []domain.Export{{Name: "y", Type: domain.ExportVariable}}

	entries := []domain.EntryPoint{{File: "src/main.ts"}}
	reachable := domain.NewReachableSet()
	reachable.Add("src/main.ts")
	usage := domain.NewExportUsageMap()

	cfg := domain.DefaultEngineConfig()
	cfg.DisableGitHistory = true

	dead, partial, fullyDead, _ := Classify(root, files, parsed, entries, reachable, usage, cfg)

	if len(dead) != 1 || dead[0].Path != "src/unused.ts" {
		t.Fatalf("expected src/unused.ts dead, got %+v", dead)
	}
	if len(partial) != 0 {
		t.Fatalf("expected no partially-dead files, got %+v", partial)
	}
	if len(fullyDead) != 1 || fullyDead[0].Git.Available {
		t.Fatalf("expected git history disabled for fullyDead[0], got %+v", fullyDead)
	}
}

func TestClassifyPreserveMarkerSkipsFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "src/main.ts", "export function x(){}\n")
	writeTestFile(t, root, "src/keep.ts", "// DO NOT DELETE: used by external script\nexport const z = 1\n")

	files := []domain.File{
		{Path: "src/main.ts", Language: domain.LanguageJavaScript},
		{Path: "src/keep.ts", Language: domain.LanguageJavaScript},
	}
	parsed := map[string]*domain.ParseResult{
		"src/main.ts": domain.NewParseResult("src/main.ts", domain.LanguageJavaScript),
		"src/keep.ts": domain.NewParseResult("src/keep.ts", domain.LanguageJavaScript),
	}

	entries := []domain.EntryPoint{{File: "src/main.ts"}}
	reachable := domain.NewReachableSet()
	reachable.Add("src/main.ts")
	usage := domain.NewExportUsageMap()

	cfg := domain.DefaultEngineConfig()
	cfg.DisableGitHistory = true

	dead, _, _, _ := Classify(root, files, parsed, entries, reachable, usage, cfg)
	for _, d := range dead {
		if d.Path == "src/keep.ts" {
			t.Error("src/keep.ts carries a DO NOT DELETE marker and should be skipped")
		}
	}
}

func TestClassifyPartiallyDead(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "src/b.ts", "export const b = 1\nexport const c = 2\n")

	files := []domain.File{{Path: "src/b.ts", Language: domain.LanguageJavaScript}}
	pr := domain.NewParseResult("src/b.ts", domain.LanguageJavaScript)
	pr.Exports = []domain.Export{
		{Name: "b", Type: domain.ExportVariable},
		{Name: "c", Type: domain.ExportVariable},
	}
	parsed := map[string]*domain.ParseResult{"src/b.ts": pr}

	reachable := domain.NewReachableSet()
	reachable.Add("src/b.ts")
	usage := domain.NewExportUsageMap()
	usage.Record("src/b.ts", "b", "src/main.ts", domain.ImportESM)

	cfg := domain.DefaultEngineConfig()
	cfg.DisableGitHistory = true

	_, partial, _, _ := Classify(root, files, parsed, nil, reachable, usage, cfg)
	if len(partial) != 1 || partial[0].Path != "src/b.ts" {
		t.Fatalf("expected src/b.ts partially dead, got %+v", partial)
	}
	if len(partial[0].DeadExports) != 1 || partial[0].DeadExports[0] != "c" {
		t.Errorf("expected dead export 'c', got %+v", partial[0].DeadExports)
	}
}
