package resolver

import (
	"testing"

	"github.com/reachscan/reachscan/domain"
	"github.com/reachscan/reachscan/internal/configprobe"
)

func newTestResolver(files []string, probe *configprobe.Result) *Resolver {
	var domainFiles []domain.File
	for _, f := range files {
		domainFiles = append(domainFiles, domain.File{Path: f})
	}
	if probe == nil {
		probe = &configprobe.Result{PathAliases: map[string]configprobe.TSConfigAliases{}}
	}
	return New(domainFiles, map[string]*domain.ParseResult{}, probe)
}

func TestResolveJSRelative(t *testing.T) {
	r := newTestResolver([]string{"src/main.ts", "src/util.ts"}, nil)
	got := r.resolveJS("src/main.ts", domain.Import{Module: "./util"})
	if len(got) != 1 || got[0] != "src/util.ts" {
		t.Errorf("resolveJS relative = %v, want [src/util.ts]", got)
	}
}

func TestResolveJSIndexFallback(t *testing.T) {
	r := newTestResolver([]string{"src/main.ts", "src/lib/index.ts"}, nil)
	got := r.resolveJS("src/main.ts", domain.Import{Module: "./lib"})
	if len(got) != 1 || got[0] != "src/lib/index.ts" {
		t.Errorf("resolveJS directory-index = %v, want [src/lib/index.ts]", got)
	}
}

func TestResolveJSAlias(t *testing.T) {
	probe := &configprobe.Result{
		PathAliases: map[string]configprobe.TSConfigAliases{
			"": {Paths: map[string][]string{"@app/*": {"src/*"}}},
		},
	}
	r := newTestResolver([]string{"src/main.ts", "src/widgets/button.ts"}, probe)
	got := r.resolveJS("src/main.ts", domain.Import{Module: "@app/widgets/button"})
	if len(got) != 1 || got[0] != "src/widgets/button.ts" {
		t.Errorf("resolveJS alias = %v, want [src/widgets/button.ts]", got)
	}
}

func TestResolveWorkspacePackage(t *testing.T) {
	probe := &configprobe.Result{
		PathAliases: map[string]configprobe.TSConfigAliases{},
		Workspaces: []configprobe.WorkspacePackage{
			{Name: "@w/ui", Dir: "packages/ui", Main: "src/index.ts"},
		},
	}
	r := newTestResolver([]string{"packages/app/src/index.ts", "packages/ui/src/index.ts"}, probe)
	got := r.resolveJS("packages/app/src/index.ts", domain.Import{Module: "@w/ui"})
	if len(got) != 1 || got[0] != "packages/ui/src/index.ts" {
		t.Errorf("resolveJS workspace = %v, want [packages/ui/src/index.ts]", got)
	}
}

func TestResolvePythonRelative(t *testing.T) {
	r := newTestResolver([]string{"pkg/__init__.py", "pkg/main.py", "pkg/util.py"}, nil)
	got := r.resolvePython("pkg/main.py", domain.Import{Module: ".", Type: domain.ImportFrom, Symbol: "util"})
	found := false
	for _, p := range got {
		if p == "pkg/util.py" {
			found = true
		}
	}
	if !found {
		t.Errorf("resolvePython relative = %v, want to include pkg/util.py", got)
	}
}

func TestResolveGoModulePath(t *testing.T) {
	probe := &configprobe.Result{PathAliases: map[string]configprobe.TSConfigAliases{}, GoModulePath: "github.com/example/proj"}
	r := newTestResolver([]string{"internal/widget/widget.go"}, probe)
	got := r.resolveGo("main.go", domain.Import{Module: "github.com/example/proj/internal/widget"})
	if len(got) != 1 || got[0] != "internal/widget/widget.go" {
		t.Errorf("resolveGo = %v, want [internal/widget/widget.go]", got)
	}
}

func TestResolveRustModule(t *testing.T) {
	r := newTestResolver([]string{"src/lib.rs", "src/util.rs"}, nil)
	got := r.resolveRust("src/lib.rs", domain.Import{Module: "crate::util"})
	if len(got) != 1 || got[0] != "src/util.rs" {
		t.Errorf("resolveRust = %v, want [src/util.rs]", got)
	}
}

func TestResolveCSharpNamespace(t *testing.T) {
	r := newTestResolver([]string{"src/App/Services.cs"}, nil)
	got := r.resolveCSharp(domain.Import{Module: "App.Services"})
	if len(got) != 1 || got[0] != "src/App/Services.cs" {
		t.Errorf("resolveCSharp = %v, want [src/App/Services.cs]", got)
	}
}

func TestIndexFilesIn(t *testing.T) {
	idx := NewIndex([]domain.File{{Path: "a/x.go"}, {Path: "a/y.go"}, {Path: "b/z.go"}})
	got := idx.FilesIn("a")
	if len(got) != 2 {
		t.Errorf("FilesIn(a) = %v, want 2 entries", got)
	}
}
