package langparse

import (
	"testing"

	"github.com/reachscan/reachscan/domain"
)

func TestGoParsePackageImportsAndExports(t *testing.T) {
	src := `package widgets

import (
	"fmt"
	"strings"
)

const MaxWidgets = 10

func NewWidget() *Widget {
	return &Widget{}
}

type Widget struct{}

func (w *Widget) String() string {
	return fmt.Sprint(strings.ToUpper("widget"))
}
`
	p := NewGoParser()
	defer p.Close()

	result, err := p.Parse("widgets/widget.go", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if result.Metadata.GoPackageName != "widgets" {
		t.Errorf("GoPackageName = %q, want widgets", result.Metadata.GoPackageName)
	}
	if result.Metadata.IsMainPackage {
		t.Error("expected IsMainPackage false for package widgets")
	}

	var sawFmt, sawStrings bool
	for _, imp := range result.Imports {
		if imp.Module == "fmt" {
			sawFmt = true
		}
		if imp.Module == "strings" {
			sawStrings = true
		}
	}
	if !sawFmt || !sawStrings {
		t.Errorf("expected fmt and strings imports, got %+v", result.Imports)
	}

	var sawNewWidget, sawWidgetType, sawMaxWidgets, sawStringMethod bool
	for _, e := range result.Exports {
		switch e.Name {
		case "NewWidget":
			sawNewWidget = e.Type == domain.ExportFunction
		case "Widget":
			sawWidgetType = e.Type == domain.ExportClass
		case "MaxWidgets":
			sawMaxWidgets = e.Type == domain.ExportVariable
		case "String":
			sawStringMethod = e.Type == domain.ExportFunction
		}
	}
	if !sawNewWidget {
		t.Error("expected NewWidget exported as function")
	}
	if !sawWidgetType {
		t.Error("expected Widget exported as class (type)")
	}
	if !sawMaxWidgets {
		t.Error("expected MaxWidgets exported as variable")
	}
	if !sawStringMethod {
		t.Error("expected String method exported")
	}
}

func TestGoParseMainPackageDetectsEntryFunction(t *testing.T) {
	src := `package main

func main() {
	println("hi")
}
`
	p := NewGoParser()
	defer p.Close()

	result, err := p.Parse("cmd/app/main.go", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !result.Metadata.IsMainPackage {
		t.Error("expected IsMainPackage true")
	}
	if !result.Metadata.HasMainFunction {
		t.Error("expected HasMainFunction true")
	}
}

func TestGoParseTestFileMetadata(t *testing.T) {
	p := NewGoParser()
	defer p.Close()

	result, err := p.Parse("widgets/widget_test.go", []byte("package widgets\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !result.Metadata.IsTestFile {
		t.Error("expected IsTestFile true for _test.go suffix")
	}
}
