package langparse

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/reachscan/reachscan/domain"
)

// CSharpParser extracts namespace, using directives, type declarations,
// attributes, and Main-method detection from C# source (spec.md §4.2).
type CSharpParser struct {
	parser *sitter.Parser
}

// NewCSharpParser constructs a CSharpParser.
func NewCSharpParser() *CSharpParser {
	p := sitter.NewParser()
	p.SetLanguage(csharp.GetLanguage())
	return &CSharpParser{parser: p}
}

// Close releases the tree-sitter parser.
func (p *CSharpParser) Close() { p.parser.Close() }

// Parse implements Parser.
func (p *CSharpParser) Parse(path string, source []byte) (*domain.ParseResult, error) {
	result := domain.NewParseResult(path, domain.LanguageCSharp)

	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil || tree.RootNode() == nil {
		return result, err
	}
	defer tree.Close()

	root := tree.RootNode()
	walkCSharp(root, source, result)

	// Top-level statements (C# 9+): no namespace/type declaration but the
	// file has executable statement-shaped top-level nodes.
	if result.Metadata.CSharpNamespace == "" && len(result.Declarations) == 0 {
		for i := 0; i < int(root.NamedChildCount()); i++ {
			if isCSharpStatementShaped(root.NamedChild(i).Type()) {
				result.Metadata.HasTopLevelStatements = true
				result.Metadata.HasMainMethodCSharp = true
				break
			}
		}
	}

	result.SetContent(source)
	return result, nil
}

func isCSharpStatementShaped(nodeType string) bool {
	switch nodeType {
	case "expression_statement", "local_declaration_statement", "if_statement",
		"for_statement", "foreach_statement", "while_statement", "try_statement":
		return true
	}
	return false
}

func walkCSharp(n *sitter.Node, source []byte, result *domain.ParseResult) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "namespace_declaration", "file_scoped_namespace_declaration":
		nameNode := n.ChildByFieldName("name")
		if nameNode != nil {
			result.Metadata.CSharpNamespace = nameNode.Content(source)
		}
	case "using_directive":
		handleUsingDirective(n, source, result)
	case "class_declaration", "struct_declaration", "interface_declaration", "record_declaration":
		handleCSharpType(n, source, result)
	case "method_declaration":
		nameNode := n.ChildByFieldName("name")
		if nameNode != nil && nameNode.Content(source) == "Main" {
			result.Metadata.HasMainMethodCSharp = true
		}
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		walkCSharp(n.NamedChild(i), source, result)
	}
}

func handleUsingDirective(n *sitter.Node, source []byte, result *domain.ParseResult) {
	text := n.Content(source)
	isStatic := strings.Contains(text, "static ")

	var nameNode *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "qualified_name", "identifier":
			nameNode = c
		case "name_equals":
			// aliasing: `using Foo = Bar.Baz;` — keep resolving the RHS.
		}
	}
	if nameNode == nil {
		return
	}
	typ := domain.ImportNormal
	if isStatic {
		typ = domain.ImportStatic
	}
	result.Imports = append(result.Imports, domain.Import{Module: nameNode.Content(source), Type: typ, Line: int(n.StartPoint().Row) + 1})
}

func handleCSharpType(n *sitter.Node, source []byte, result *domain.ParseResult) {
	nameNode := n.ChildByFieldName("name")
	name := ""
	if nameNode != nil {
		name = nameNode.Content(source)
	}
	decs := collectCSharpAttributes(n, source)
	decl := domain.Declaration{Kind: "class", Name: name, Exported: true, Decorators: decs, Line: int(n.StartPoint().Row) + 1}
	result.Declarations = append(result.Declarations, decl)
	result.Exports = append(result.Exports, domain.Export{Name: name, Type: domain.ExportClass, Line: decl.Line})
}

// collectCSharpAttributes reads `attribute_lists` preceding the
// declaration for `[ApiController]` / `[Attribute(args)]` style attributes
// (spec.md §4.2).
func collectCSharpAttributes(n *sitter.Node, source []byte) []domain.Decorator {
	var out []domain.Decorator
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "attribute_list" {
			continue
		}
		for j := 0; j < int(c.NamedChildCount()); j++ {
			attr := c.NamedChild(j)
			if attr.Type() != "attribute" {
				continue
			}
			nameNode := attr.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			dec := domain.Decorator{Name: nameNode.Content(source), Line: int(attr.StartPoint().Row) + 1}
			args := attr.ChildByFieldName("arg_list")
			if args != nil {
				for k := 0; k < int(args.NamedChildCount()); k++ {
					dec.Arguments = append(dec.Arguments, args.NamedChild(k).Content(source))
				}
			}
			out = append(out, dec)
		}
	}
	return out
}
