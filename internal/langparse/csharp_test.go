package langparse

import (
	"testing"

	"github.com/reachscan/reachscan/domain"
)

func TestCSharpParseNamespaceUsingAndAttribute(t *testing.T) {
	src := `namespace Example.Api;

using System;
using static System.Math;

[ApiController]
public class WidgetController
{
    public static void Main(string[] args) {}
}
`
	p := NewCSharpParser()
	defer p.Close()

	result, err := p.Parse("Example/Api/WidgetController.cs", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if result.Metadata.CSharpNamespace != "Example.Api" {
		t.Errorf("CSharpNamespace = %q, want Example.Api", result.Metadata.CSharpNamespace)
	}

	var sawSystem, sawStatic bool
	for _, imp := range result.Imports {
		if imp.Module == "System" && imp.Type == domain.ImportNormal {
			sawSystem = true
		}
		if imp.Type == domain.ImportStatic {
			sawStatic = true
		}
	}
	if !sawSystem {
		t.Errorf("expected using System, got %+v", result.Imports)
	}
	if !sawStatic {
		t.Errorf("expected a static using directive, got %+v", result.Imports)
	}

	if !result.Metadata.HasMainMethodCSharp {
		t.Error("expected HasMainMethodCSharp true")
	}

	foundClass := false
	for _, d := range result.Declarations {
		if d.Name == "WidgetController" {
			foundClass = true
			foundAttr := false
			for _, dec := range d.Decorators {
				if dec.Name == "ApiController" {
					foundAttr = true
				}
			}
			if !foundAttr {
				t.Errorf("expected ApiController attribute captured, got %+v", d.Decorators)
			}
		}
	}
	if !foundClass {
		t.Errorf("expected WidgetController declaration, got %+v", result.Declarations)
	}
}

func TestCSharpTopLevelStatementsDetected(t *testing.T) {
	src := `Console.WriteLine("hello");
`
	p := NewCSharpParser()
	defer p.Close()

	result, err := p.Parse("Program.cs", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !result.Metadata.HasTopLevelStatements {
		t.Error("expected HasTopLevelStatements true for top-level Main-less Program.cs")
	}
	if !result.Metadata.HasMainMethodCSharp {
		t.Error("expected top-level statements to imply an implicit Main")
	}
}
