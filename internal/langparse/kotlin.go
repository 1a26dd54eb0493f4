package langparse

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"

	"github.com/reachscan/reachscan/domain"
)

// KotlinParser extracts package, imports, and annotated top-level
// declarations from Kotlin source (spec.md §4.2).
type KotlinParser struct {
	parser *sitter.Parser
}

// NewKotlinParser constructs a KotlinParser.
func NewKotlinParser() *KotlinParser {
	p := sitter.NewParser()
	p.SetLanguage(kotlin.GetLanguage())
	return &KotlinParser{parser: p}
}

// Close releases the tree-sitter parser.
func (p *KotlinParser) Close() { p.parser.Close() }

// Parse implements Parser.
func (p *KotlinParser) Parse(path string, source []byte) (*domain.ParseResult, error) {
	result := domain.NewParseResult(path, domain.LanguageKotlin)

	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil || tree.RootNode() == nil {
		return result, err
	}
	defer tree.Close()

	walkKotlin(tree.RootNode(), source, result)

	result.SetContent(source)
	return result, nil
}

func walkKotlin(n *sitter.Node, source []byte, result *domain.ParseResult) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "package_header":
		if id := lastNamedChild(n); id != nil {
			result.Metadata.JavaPackageName = id.Content(source)
		}
	case "import_header":
		if id := n.NamedChild(0); id != nil {
			module := id.Content(source)
			result.Imports = append(result.Imports, domain.Import{Module: module, Type: domain.ImportNormal, Line: int(n.StartPoint().Row) + 1})
		}
	case "class_declaration", "object_declaration":
		handleKotlinType(n, source, result)
	case "function_declaration":
		nameNode := n.ChildByFieldName("name")
		if nameNode != nil && nameNode.Content(source) == "main" {
			result.Metadata.HasMainMethod = true
		}
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		walkKotlin(n.NamedChild(i), source, result)
	}
}

func handleKotlinType(n *sitter.Node, source []byte, result *domain.ParseResult) {
	nameNode := n.ChildByFieldName("name")
	name := ""
	if nameNode != nil {
		name = nameNode.Content(source)
	}
	decs := collectKotlinAnnotations(n, source)
	decl := domain.Declaration{Kind: "class", Name: name, Exported: true, Decorators: decs, Line: int(n.StartPoint().Row) + 1}
	result.Declarations = append(result.Declarations, decl)
	result.Exports = append(result.Exports, domain.Export{Name: name, Type: domain.ExportClass, Line: decl.Line})

	for _, d := range decs {
		if springStereotypes[d.Name] {
			result.Metadata.IsSpringComponent = true
		}
	}
}

// collectKotlinAnnotations reads preceding `modifiers` siblings for
// annotation nodes; tree-sitter-kotlin attaches them as a `modifiers`
// field on the declaration, mirroring Java's shape closely enough to
// reuse the same Decorator extraction idea.
func collectKotlinAnnotations(n *sitter.Node, source []byte) []domain.Decorator {
	var out []domain.Decorator
	modifiers := n.ChildByFieldName("modifiers")
	if modifiers == nil {
		return out
	}
	for i := 0; i < int(modifiers.NamedChildCount()); i++ {
		c := modifiers.NamedChild(i)
		if c.Type() != "annotation" {
			continue
		}
		nameNode := c.NamedChild(0)
		if nameNode == nil {
			continue
		}
		dec := domain.Decorator{Name: nameNode.Content(source), Line: int(c.StartPoint().Row) + 1}
		for j := 1; j < int(c.NamedChildCount()); j++ {
			dec.Arguments = append(dec.Arguments, c.NamedChild(j).Content(source))
		}
		out = append(out, dec)
	}
	return out
}
