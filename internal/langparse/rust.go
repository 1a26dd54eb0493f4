package langparse

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/reachscan/reachscan/domain"
)

// RustParser extracts `use` items and `mod` declarations from Rust source
// (spec.md §4.2). Proc-macro expansion is explicitly out of reach for a
// syntactic parse; the reachability walker re-reads files carrying
// `#[proc_macro]`-shaped attributes instead of this parser guessing at
// generated code (spec.md §4.6).
type RustParser struct {
	parser *sitter.Parser
}

// NewRustParser constructs a RustParser.
func NewRustParser() *RustParser {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	return &RustParser{parser: p}
}

// Close releases the tree-sitter parser.
func (p *RustParser) Close() { p.parser.Close() }

// Parse implements Parser.
func (p *RustParser) Parse(path string, source []byte) (*domain.ParseResult, error) {
	result := domain.NewParseResult(path, domain.LanguageRust)

	base := filepath.Base(path)
	result.Metadata.IsCrateRoot = base == "main.rs" || base == "lib.rs"

	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil || tree.RootNode() == nil {
		return result, err
	}
	defer tree.Close()

	root := tree.RootNode()
	var pendingPathAttr string

	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "attribute_item":
			if p := rustPathAttrValue(n, source); p != "" {
				pendingPathAttr = p
				continue
			}
		case "use_declaration":
			handleRustUse(n, source, result)
		case "mod_item":
			handleRustMod(n, source, result, pendingPathAttr)
		case "function_item":
			handleRustItemDecl(n, source, result)
			nameNode := n.ChildByFieldName("name")
			if nameNode != nil && nameNode.Content(source) == "main" {
				result.Metadata.HasMainMethod = true
			}
		case "struct_item", "enum_item", "trait_item", "const_item", "static_item":
			handleRustItemDecl(n, source, result)
		}
		pendingPathAttr = ""
	}

	result.SetContent(source)
	return result, nil
}

// rustPathAttrValue returns the string literal value of a `#[path = "..."]`
// attribute, or "" if this attribute isn't a path override.
func rustPathAttrValue(n *sitter.Node, source []byte) string {
	text := n.Content(source)
	if !strings.Contains(text, "path") || !strings.Contains(text, "=") {
		return ""
	}
	idx := strings.Index(text, "\"")
	if idx < 0 {
		return ""
	}
	rest := text[idx+1:]
	end := strings.Index(rest, "\"")
	if end < 0 {
		return ""
	}
	return rest[:end]
}

func handleRustMod(n *sitter.Node, source []byte, result *domain.ParseResult, pathOverride string) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := strings.TrimPrefix(nameNode.Content(source), "r#")
	body := n.ChildByFieldName("body")

	decl := domain.RustModDecl{Name: name, PathOverride: pathOverride, Line: int(n.StartPoint().Row) + 1}
	result.Metadata.RustModDecls = append(result.Metadata.RustModDecls, decl)

	if body == nil {
		// `mod foo;` — file-backed module, counts as a declaration but not
		// yet a resolvable export; the resolver maps it to foo.rs/foo/mod.rs.
		result.Declarations = append(result.Declarations, domain.Declaration{Kind: "module", Name: name, Exported: true, Line: decl.Line})
		return
	}

	// `mod foo { ... }` — inline module; walk its body for nested pub items.
	for i := 0; i < int(body.NamedChildCount()); i++ {
		walkRustItem(body.NamedChild(i), source, result)
	}
}

func walkRustItem(n *sitter.Node, source []byte, result *domain.ParseResult) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "use_declaration":
		handleRustUse(n, source, result)
	case "function_item", "struct_item", "enum_item", "trait_item", "const_item", "static_item":
		handleRustItemDecl(n, source, result)
	case "mod_item":
		handleRustMod(n, source, result, "")
	}
}

func handleRustItemDecl(n *sitter.Node, source []byte, result *domain.ParseResult) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(source)
	exported := isRustPublic(n, source)
	decl := domain.Declaration{Kind: "function", Name: name, Exported: exported, Line: int(n.StartPoint().Row) + 1}
	result.Declarations = append(result.Declarations, decl)
	if exported {
		result.Exports = append(result.Exports, domain.Export{Name: name, Type: domain.ExportFunction, Line: decl.Line})
	}
}

func isRustPublic(n *sitter.Node, source []byte) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "visibility_modifier" {
			return true
		}
		if c.Type() != "line_comment" && c.Type() != "attribute_item" {
			break
		}
	}
	return false
}

func handleRustUse(n *sitter.Node, source []byte, result *domain.ParseResult) {
	argNode := n.NamedChild(0)
	if argNode == nil {
		return
	}
	collectRustUseTree(argNode, source, "", int(n.StartPoint().Row)+1, result)
}

// collectRustUseTree flattens `use a::b::{c, d as e, f::*}` into individual
// Import entries, one per leaf path.
func collectRustUseTree(n *sitter.Node, source []byte, prefix string, line int, result *domain.ParseResult) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "scoped_identifier":
		pathNode := n.ChildByFieldName("path")
		nameNode := n.ChildByFieldName("name")
		full := n.Content(source)
		if pathNode != nil && nameNode != nil {
			full = joinRustPath(prefix, n.Content(source))
		} else {
			full = joinRustPath(prefix, full)
		}
		result.Imports = append(result.Imports, domain.Import{Module: full, Type: domain.ImportNormal, Line: line})
	case "identifier", "crate", "self", "super":
		result.Imports = append(result.Imports, domain.Import{Module: joinRustPath(prefix, n.Content(source)), Type: domain.ImportNormal, Line: line})
	case "use_as_clause":
		pathNode := n.NamedChild(0)
		aliasNode := n.ChildByFieldName("alias")
		if pathNode == nil {
			return
		}
		full := joinRustPath(prefix, pathNode.Content(source))
		alias := ""
		if aliasNode != nil {
			alias = aliasNode.Content(source)
		}
		result.Imports = append(result.Imports, domain.Import{Module: full, Type: domain.ImportNormal, Symbol: alias, Line: line})
	case "use_list":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			collectRustUseTree(n.NamedChild(i), source, prefix, line, result)
		}
	case "scoped_use_list":
		pathNode := n.ChildByFieldName("path")
		listNode := n.ChildByFieldName("list")
		newPrefix := prefix
		if pathNode != nil {
			newPrefix = joinRustPath(prefix, pathNode.Content(source))
		}
		collectRustUseTree(listNode, source, newPrefix, line, result)
	case "use_wildcard":
		base := ""
		if c := n.NamedChild(0); c != nil {
			base = c.Content(source)
		}
		result.Imports = append(result.Imports, domain.Import{Module: joinRustPath(prefix, base), Type: domain.ImportNormal, IsGlob: true, Line: line})
	default:
		result.Imports = append(result.Imports, domain.Import{Module: joinRustPath(prefix, n.Content(source)), Type: domain.ImportNormal, Line: line})
	}
}

func joinRustPath(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	if suffix == "" {
		return prefix
	}
	return prefix + "::" + suffix
}
