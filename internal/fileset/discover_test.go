package fileset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reachscan/reachscan/domain"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverExcludesDefaultCatalogue(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.go", "package main\n")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {}\n")
	writeFile(t, root, "dist/bundle.js", "//\n")
	writeFile(t, root, "vendor/lib/thing.go", "package lib\n")

	d := New(root, nil)
	files, err := d.Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	paths := map[string]bool{}
	for _, f := range files {
		paths[f.Path] = true
	}
	if !paths["src/main.go"] {
		t.Error("expected src/main.go to survive discovery")
	}
	for _, excluded := range []string{"node_modules/pkg/index.js", "dist/bundle.js", "vendor/lib/thing.go"} {
		if paths[excluded] {
			t.Errorf("expected %s to be excluded by default catalogue", excluded)
		}
	}
}

func TestDiscoverUserExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/keep.go", "package src\n")
	writeFile(t, root, "scripts/gen.go", "package scripts\n")

	d := New(root, []string{"scripts/**"})
	files, err := d.Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	for _, f := range files {
		if f.Path == "scripts/gen.go" {
			t.Error("expected scripts/gen.go excluded by user-supplied pattern")
		}
	}
}

func TestDiscoverTagsLanguage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "import os\n")
	writeFile(t, root, "app.rs", "fn main() {}\n")

	d := New(root, nil)
	files, err := d.Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	langs := map[string]domain.Language{}
	for _, f := range files {
		langs[f.Path] = f.Language
	}
	if langs["app.py"] != domain.LanguagePython {
		t.Errorf("app.py language = %v, want Python", langs["app.py"])
	}
	if langs["app.rs"] != domain.LanguageRust {
		t.Errorf("app.rs language = %v, want Rust", langs["app.rs"])
	}
}

func TestDiscoverSubmodulePathsExcluded(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitmodules", "[submodule \"vendor/thirdparty\"]\n\tpath = vendor/thirdparty\n\turl = https://example.com/thirdparty.git\n")
	writeFile(t, root, "vendor/thirdparty/file.go", "package thirdparty\n")
	writeFile(t, root, "src/app.go", "package app\n")

	d := New(root, nil)
	files, err := d.Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	for _, f := range files {
		if f.Path == "vendor/thirdparty/file.go" {
			t.Error("expected submodule path excluded per .gitmodules")
		}
	}
}
