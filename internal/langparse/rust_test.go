package langparse

import (
	"testing"

	"github.com/reachscan/reachscan/domain"
)

func TestRustParseUseDeclarationsAndModDecl(t *testing.T) {
	src := `use std::collections::HashMap;
use crate::util::{helper, other as o};

mod sub;

pub fn run() {}

fn main() {}
`
	p := NewRustParser()
	defer p.Close()

	result, err := p.Parse("src/lib.rs", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !result.Metadata.IsCrateRoot {
		t.Error("expected IsCrateRoot true for lib.rs")
	}

	var sawHashMap, sawHelper, sawAliased bool
	for _, imp := range result.Imports {
		switch imp.Module {
		case "std::collections::HashMap":
			sawHashMap = true
		case "crate::util::helper":
			sawHelper = true
		case "crate::util::other":
			if imp.Symbol == "o" {
				sawAliased = true
			}
		}
	}
	if !sawHashMap {
		t.Errorf("expected std::collections::HashMap import, got %+v", result.Imports)
	}
	if !sawHelper {
		t.Errorf("expected crate::util::helper import, got %+v", result.Imports)
	}
	if !sawAliased {
		t.Errorf("expected crate::util::other aliased as o, got %+v", result.Imports)
	}

	foundSub := false
	for _, m := range result.Metadata.RustModDecls {
		if m.Name == "sub" {
			foundSub = true
		}
	}
	if !foundSub {
		t.Errorf("expected mod sub; declaration recorded, got %+v", result.Metadata.RustModDecls)
	}

	foundRun := false
	for _, e := range result.Exports {
		if e.Name == "run" && e.Type == domain.ExportFunction {
			foundRun = true
		}
	}
	if !foundRun {
		t.Errorf("expected pub fn run exported, got %+v", result.Exports)
	}

	if !result.Metadata.HasMainMethod {
		t.Error("expected HasMainMethod true")
	}
}

func TestRustParsePathAttributeOverridesModDecl(t *testing.T) {
	src := `#[path = "custom_dir/thing.rs"]
mod thing;
`
	p := NewRustParser()
	defer p.Close()

	result, err := p.Parse("src/lib.rs", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	found := false
	for _, m := range result.Metadata.RustModDecls {
		if m.Name == "thing" && m.PathOverride == "custom_dir/thing.rs" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected mod thing with path override, got %+v", result.Metadata.RustModDecls)
	}
}
