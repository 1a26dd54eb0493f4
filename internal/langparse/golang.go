package langparse

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/reachscan/reachscan/domain"
)

// GoParser extracts package name, imports, and top-level declarations from
// Go source (spec.md §4.2).
type GoParser struct {
	parser *sitter.Parser
}

// NewGoParser constructs a GoParser.
func NewGoParser() *GoParser {
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	return &GoParser{parser: p}
}

// Close releases the tree-sitter parser.
func (p *GoParser) Close() { p.parser.Close() }

// Parse implements Parser.
func (p *GoParser) Parse(path string, source []byte) (*domain.ParseResult, error) {
	result := domain.NewParseResult(path, domain.LanguageGo)
	result.Metadata.IsTestFile = strings.HasSuffix(path, "_test.go")

	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil || tree.RootNode() == nil {
		return result, err
	}
	defer tree.Close()

	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "package_clause":
			if id := n.NamedChild(0); id != nil {
				result.Metadata.GoPackageName = id.Content(source)
				result.Metadata.IsMainPackage = id.Content(source) == "main"
			}
		case "import_declaration":
			collectGoImports(n, source, result)
		case "function_declaration":
			nameNode := n.ChildByFieldName("name")
			name := nameNode.Content(source)
			decl := domain.Declaration{Kind: "function", Name: name, Exported: isGoExported(name), Line: int(n.StartPoint().Row) + 1}
			result.Declarations = append(result.Declarations, decl)
			if name == "main" && result.Metadata.IsMainPackage {
				result.Metadata.HasMainFunction = true
			}
			if name == "init" {
				result.Metadata.HasInitFunction = true
			}
			if isGoExported(name) {
				result.Exports = append(result.Exports, domain.Export{Name: name, Type: domain.ExportFunction, Line: decl.Line})
			}
		case "method_declaration":
			nameNode := n.ChildByFieldName("name")
			if nameNode != nil {
				name := nameNode.Content(source)
				if isGoExported(name) {
					result.Exports = append(result.Exports, domain.Export{Name: name, Type: domain.ExportFunction, Line: int(n.StartPoint().Row) + 1})
				}
			}
		case "type_declaration":
			for j := 0; j < int(n.NamedChildCount()); j++ {
				spec := n.NamedChild(j)
				if spec.Type() != "type_spec" {
					continue
				}
				nameNode := spec.ChildByFieldName("name")
				if nameNode == nil {
					continue
				}
				name := nameNode.Content(source)
				decl := domain.Declaration{Kind: "class", Name: name, Exported: isGoExported(name), Line: int(spec.StartPoint().Row) + 1}
				result.Declarations = append(result.Declarations, decl)
				if isGoExported(name) {
					result.Exports = append(result.Exports, domain.Export{Name: name, Type: domain.ExportClass, Line: decl.Line})
				}
			}
		case "const_declaration", "var_declaration":
			collectGoTopLevelBindings(n, source, result)
		}
	}

	result.SetContent(source)
	return result, nil
}

func collectGoImports(n *sitter.Node, source []byte, result *domain.ParseResult) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		switch spec.Type() {
		case "import_spec":
			addGoImportSpec(spec, source, result)
		case "import_spec_list":
			for j := 0; j < int(spec.NamedChildCount()); j++ {
				addGoImportSpec(spec.NamedChild(j), source, result)
			}
		}
	}
}

func addGoImportSpec(spec *sitter.Node, source []byte, result *domain.ParseResult) {
	if spec == nil || spec.Type() != "import_spec" {
		return
	}
	pathNode := spec.ChildByFieldName("path")
	if pathNode == nil {
		return
	}
	path := stripQuotes(pathNode.Content(source))
	result.Imports = append(result.Imports, domain.Import{Module: path, Type: domain.ImportNormal, Line: int(spec.StartPoint().Row) + 1})
}

func collectGoTopLevelBindings(n *sitter.Node, source []byte, result *domain.ParseResult) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if spec.Type() != "const_spec" && spec.Type() != "var_spec" {
			continue
		}
		nameList := spec.ChildByFieldName("name")
		if nameList == nil {
			continue
		}
		name := nameList.Content(source)
		if isGoExported(name) {
			result.Exports = append(result.Exports, domain.Export{Name: name, Type: domain.ExportVariable, Line: int(spec.StartPoint().Row) + 1})
		}
	}
}

func isGoExported(name string) bool {
	if name == "" {
		return false
	}
	r := name[0]
	return r >= 'A' && r <= 'Z'
}
