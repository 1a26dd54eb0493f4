package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/reachscan/reachscan/domain"
)

func writeEngineFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanEndToEndFindsDeadFile(t *testing.T) {
	root := t.TempDir()
	writeEngineFile(t, root, "package.json", `{"name":"demo","main":"src/index.js"}`)
	writeEngineFile(t, root, "src/index.js", "const { helper } = require('./util');\nhelper();\n")
	writeEngineFile(t, root, "src/util.js", "module.exports.helper = function() {};\n")
	writeEngineFile(t, root, "src/orphan.js", "module.exports.unused = function() {};\n")

	cfg := domain.DefaultEngineConfig()
	cfg.DisableGitHistory = true

	var phases []string
	result, err := Scan(context.Background(), root, cfg, func(ev domain.ProgressEvent) {
		phases = append(phases, ev.Phase)
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(phases) == 0 {
		t.Error("expected progress events to be reported")
	}

	if result.Summary.TotalFiles < 3 {
		t.Fatalf("expected at least 3 files discovered, got %d", result.Summary.TotalFiles)
	}

	foundOrphan := false
	for _, d := range result.DeadFiles {
		if d.Path == "src/orphan.js" {
			foundOrphan = true
		}
	}
	if !foundOrphan {
		t.Errorf("expected src/orphan.js classified dead, got %+v", result.DeadFiles)
	}

	for _, d := range result.DeadFiles {
		if d.Path == "src/util.js" {
			t.Error("expected src/util.js to be reachable from src/index.js, not dead")
		}
	}
}

func TestScanMonorepoWorkspaceDeprecatedExportDead(t *testing.T) {
	root := t.TempDir()
	writeEngineFile(t, root, "package.json", `{"name":"root","workspaces":["packages/*"]}`)
	writeEngineFile(t, root, "packages/ui/package.json", `{"name":"@w/ui","main":"src/index.ts"}`)
	writeEngineFile(t, root, "packages/ui/src/index.ts", "export function Button() {}\nexport function Deprecated() {}\n")
	writeEngineFile(t, root, "packages/app/package.json", `{"name":"@w/app","main":"src/index.ts","dependencies":{"@w/ui":"workspace:*"}}`)
	writeEngineFile(t, root, "packages/app/src/index.ts", "import { Button } from '@w/ui';\nButton();\n")

	cfg := domain.DefaultEngineConfig()
	cfg.DisableGitHistory = true

	result, err := Scan(context.Background(), root, cfg, nil)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	for _, d := range result.DeadFiles {
		if d.Path == "packages/ui/src/index.ts" || d.Path == "packages/app/src/index.ts" {
			t.Errorf("expected both workspace package entries live, %q classified fully dead", d.Path)
		}
	}

	foundDeprecated := false
	for _, p := range result.PartialFiles {
		if p.Path != "packages/ui/src/index.ts" {
			continue
		}
		for _, e := range p.Exports {
			if e.Name == "Deprecated" && !e.Live {
				foundDeprecated = true
			}
		}
	}
	if !foundDeprecated {
		t.Errorf("expected Deprecated flagged as a dead export of packages/ui/src/index.ts, got %+v", result.PartialFiles)
	}
}

func TestScanMissingRootReturnsError(t *testing.T) {
	_, err := Scan(context.Background(), "/does/not/exist/at/all", nil, nil)
	if err == nil {
		t.Fatal("expected an error for a missing project path")
	}
}
