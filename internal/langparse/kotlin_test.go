package langparse

import (
	"testing"

	"github.com/reachscan/reachscan/domain"
)

func TestKotlinParsePackageImportAndMain(t *testing.T) {
	src := `package com.example.app

import kotlinx.coroutines.launch

@Component
class Widget

fun main() {
}
`
	p := NewKotlinParser()
	defer p.Close()

	result, err := p.Parse("com/example/app/Widget.kt", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if result.Metadata.JavaPackageName != "com.example.app" {
		t.Errorf("JavaPackageName = %q, want com.example.app", result.Metadata.JavaPackageName)
	}

	foundImport := false
	for _, imp := range result.Imports {
		if imp.Module == "kotlinx.coroutines.launch" {
			foundImport = true
		}
	}
	if !foundImport {
		t.Errorf("expected kotlinx.coroutines.launch import, got %+v", result.Imports)
	}

	if !result.Metadata.IsSpringComponent {
		t.Error("expected IsSpringComponent true due to @Component annotation")
	}
	if !result.Metadata.HasMainMethod {
		t.Error("expected HasMainMethod true")
	}

	foundWidget := false
	for _, e := range result.Exports {
		if e.Name == "Widget" && e.Type == domain.ExportClass {
			foundWidget = true
		}
	}
	if !foundWidget {
		t.Errorf("expected Widget exported as class, got %+v", result.Exports)
	}
}
