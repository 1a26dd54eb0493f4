package langparse

import (
	"testing"

	"github.com/reachscan/reachscan/domain"
)

func TestJSParseNamedImportAndExport(t *testing.T) {
	src := `import { helper } from './util';
export function run() { return helper(); }
`
	p := NewJSParser()
	defer p.Close()

	result, err := p.Parse("src/main.js", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(result.Imports) != 1 || result.Imports[0].Module != "./util" {
		t.Fatalf("expected one import of './util', got %+v", result.Imports)
	}
	if result.Imports[0].Type != domain.ImportESM {
		t.Errorf("expected ImportESM, got %v", result.Imports[0].Type)
	}

	foundRun := false
	for _, e := range result.Exports {
		if e.Name == "run" && e.Type == domain.ExportFunction {
			foundRun = true
		}
	}
	if !foundRun {
		t.Errorf("expected exported function 'run', got %+v", result.Exports)
	}
}

func TestJSParseRequireCall(t *testing.T) {
	src := `const fs = require('fs');
module.exports.read = function() { return fs.readFileSync; };
`
	p := NewJSParser()
	defer p.Close()

	result, err := p.Parse("src/legacy.js", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	foundFS := false
	for _, imp := range result.Imports {
		if imp.Module == "fs" && imp.Type == domain.ImportCommonJS {
			foundFS = true
		}
	}
	if !foundFS {
		t.Errorf("expected require('fs') import, got %+v", result.Imports)
	}

	foundRead := false
	for _, e := range result.Exports {
		if e.Name == "read" {
			foundRead = true
		}
	}
	if !foundRead {
		t.Errorf("expected exports.read export, got %+v", result.Exports)
	}
}

func TestJSParseBarrelReexport(t *testing.T) {
	src := `export * from './widgets';
export { Button } from './button';
`
	p := NewJSParser()
	defer p.Close()

	result, err := p.Parse("src/index.ts", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var sawStar, sawNamed bool
	for _, e := range result.Exports {
		if e.Type == domain.ExportReexportAll && e.SourceModule == "./widgets" {
			sawStar = true
		}
		if e.Name == "Button" && e.Type == domain.ExportReexport && e.SourceModule == "./button" {
			sawNamed = true
		}
	}
	if !sawStar {
		t.Errorf("expected export * from './widgets', got %+v", result.Exports)
	}
	if !sawNamed {
		t.Errorf("expected re-exported Button from './button', got %+v", result.Exports)
	}
}

func TestJSParseVueSFCExtractsScriptBlock(t *testing.T) {
	src := `<template><div>{{ msg }}</div></template>
<script>
import { ref } from 'vue';
export default { setup() { return { msg: ref('hi') }; } };
</script>
`
	p := NewJSParser()
	defer p.Close()

	result, err := p.Parse("src/App.vue", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !result.Metadata.IsVueOrSvelte {
		t.Error("expected IsVueOrSvelte metadata set")
	}
	foundVue := false
	for _, imp := range result.Imports {
		if imp.Module == "vue" {
			foundVue = true
		}
	}
	if !foundVue {
		t.Errorf("expected import from 'vue' inside <script> block, got %+v", result.Imports)
	}
}
