package reachability

import (
	"testing"

	"github.com/reachscan/reachscan/domain"
	"github.com/reachscan/reachscan/internal/configprobe"
	"github.com/reachscan/reachscan/internal/resolver"
)

func newWalkerFixture(files []domain.File, parsed map[string]*domain.ParseResult) *resolver.Resolver {
	probe := &configprobe.Result{PathAliases: map[string]configprobe.TSConfigAliases{}}
	return resolver.New(files, parsed, probe)
}

func TestWalkBasicImportChain(t *testing.T) {
	files := []domain.File{{Path: "src/main.ts"}, {Path: "src/util.ts"}, {Path: "src/unused.ts"}}

	main := domain.NewParseResult("src/main.ts", domain.LanguageJavaScript)
	main.Imports = []domain.Import{{
		Module: "./util", Type: domain.ImportESM,
		Specifiers: []domain.ImportSpecifier{{Imported: "helper", Local: "helper"}},
	}}

	util := domain.NewParseResult("src/util.ts", domain.LanguageJavaScript)
	util.Exports = []domain.Export{{Name: "helper", Type: domain.ExportFunction}}

	unused := domain.NewParseResult("src/unused.ts", domain.LanguageJavaScript)

	parsed := map[string]*domain.ParseResult{
		"src/main.ts":   main,
		"src/util.ts":   util,
		"src/unused.ts": unused,
	}

	res := newWalkerFixture(files, parsed)
	entries := []domain.EntryPoint{{File: "src/main.ts", Reason: "test"}}

	reachable, usage := Walk(files, parsed, entries, res)

	if !reachable.Has("src/util.ts") {
		t.Error("expected src/util.ts to be reachable through the import")
	}
	if reachable.Has("src/unused.ts") {
		t.Error("expected src/unused.ts to stay unreachable")
	}
	symbols := usage.Symbols("src/util.ts")
	if _, ok := symbols["helper"]; !ok {
		t.Errorf("expected helper usage recorded on src/util.ts, got %+v", symbols)
	}
}

func TestWalkBarrelPropagation(t *testing.T) {
	files := []domain.File{{Path: "src/main.ts"}, {Path: "src/index.ts"}, {Path: "src/a.ts"}}

	main := domain.NewParseResult("src/main.ts", domain.LanguageJavaScript)
	main.Imports = []domain.Import{{
		Module: "./index", Type: domain.ImportESM,
		Specifiers: []domain.ImportSpecifier{{Imported: "a", Local: "a"}},
	}}

	barrel := domain.NewParseResult("src/index.ts", domain.LanguageJavaScript)
	barrel.Exports = []domain.Export{{Name: "a", Type: domain.ExportReexport, SourceModule: "./a"}}

	a := domain.NewParseResult("src/a.ts", domain.LanguageJavaScript)
	a.Exports = []domain.Export{{Name: "a", Type: domain.ExportVariable}}

	parsed := map[string]*domain.ParseResult{
		"src/main.ts":  main,
		"src/index.ts": barrel,
		"src/a.ts":     a,
	}

	res := newWalkerFixture(files, parsed)
	entries := []domain.EntryPoint{{File: "src/main.ts", Reason: "test"}}

	_, usage := Walk(files, parsed, entries, res)

	symbols := usage.Symbols("src/a.ts")
	found := false
	for _, u := range symbols["a"] {
		if u.ImporterFile == "src/main.ts" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected barrel propagation to attribute src/main.ts's usage of 'a' back to src/a.ts, got %+v", symbols)
	}
}

func TestExpandGlobImport(t *testing.T) {
	files := []domain.File{{Path: "src/main.ts"}, {Path: "src/plugins/a.ts"}, {Path: "src/plugins/b.ts"}}
	res := newWalkerFixture(files, map[string]*domain.ParseResult{})

	targets := expandGlobImport("src/main.ts", domain.Import{Module: "./plugins/*.ts", IsGlob: true}, res)
	if len(targets) != 2 {
		t.Errorf("expandGlobImport = %v, want 2 matches", targets)
	}
}
