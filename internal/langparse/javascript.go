package langparse

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/reachscan/reachscan/domain"
)

// JSParser parses JavaScript/TypeScript/JSX/TSX and, by extracting their
// <script> block first, Vue and Svelte single-file components
// (spec.md §4.2). It holds two tree-sitter parsers the way
// internal/parser.Parser exposes NewParser()/NewTypeScriptParser(), since
// the javascript grammar alone does not support TS type syntax or
// decorators.
type JSParser struct {
	js *sitter.Parser
	ts *sitter.Parser
}

// NewJSParser constructs both underlying tree-sitter parsers up front.
func NewJSParser() *JSParser {
	js := sitter.NewParser()
	js.SetLanguage(javascript.GetLanguage())

	ts := sitter.NewParser()
	ts.SetLanguage(tsx.GetLanguage())

	return &JSParser{js: js, ts: ts}
}

// Close releases both tree-sitter parsers.
func (p *JSParser) Close() {
	p.js.Close()
	p.ts.Close()
}

var globCallees = map[string]bool{
	"glob.sync": true, "globSync": true, "require.context": true,
}

// Parse implements Parser.
func (p *JSParser) Parse(path string, source []byte) (*domain.ParseResult, error) {
	result := domain.NewParseResult(path, domain.LanguageJavaScript)

	lineOffset := 0
	isSFC := strings.HasSuffix(path, ".vue") || strings.HasSuffix(path, ".svelte")
	if isSFC {
		result.Metadata.IsVueOrSvelte = true
		script, offset, ok := extractSFCScript(source)
		if !ok {
			// Empty-script SFC yields a valid empty result (spec.md §4.2).
			return result, nil
		}
		source = script
		lineOffset = offset
		result.Metadata.ScriptLineOffset = lineOffset
	}

	useTS := isTypeScriptPath(path) || isSFC
	sp := p.js
	if useTS {
		sp = p.ts
	}

	tree, err := sp.ParseCtx(context.Background(), nil, source)
	if tree == nil || tree.RootNode() == nil {
		// Parse failure: fall back to a regex-based pass (spec.md §7).
		regexFallback(result, source, lineOffset)
		return result, err
	}
	defer tree.Close()

	root := tree.RootNode()
	w := &jsWalker{src: source, result: result, lineOffset: lineOffset}
	w.walk(root)

	if len(result.Imports) == 0 && len(result.Exports) == 0 && !w.sawAnyImportLike {
		// Grammar produced a tree but nothing recognisable was extracted;
		// still attempt the regex fallback to catch require()/import()
		// forms the walker's node-type matching might have missed.
		regexFallback(result, source, lineOffset)
	}

	result.SetContent(source)
	return result, nil
}

func isTypeScriptPath(path string) bool {
	for _, ext := range []string{".ts", ".tsx", ".mts", ".cts"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

type jsWalker struct {
	src              []byte
	result           *domain.ParseResult
	lineOffset       int
	pendingDecorators []domain.Decorator
	sawAnyImportLike bool
}

func (w *jsWalker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(w.src)
}

func (w *jsWalker) line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1 + w.lineOffset
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '\'' || s[0] == '"' || s[0] == '`') && s[len(s)-1] == s[0] {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func (w *jsWalker) walk(n *sitter.Node) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "import_statement":
		w.handleImport(n)
		w.sawAnyImportLike = true
	case "export_statement":
		w.handleExport(n)
	case "decorator":
		w.pendingDecorators = append(w.pendingDecorators, w.buildDecorator(n))
		return // don't descend into decorator args as declarations
	case "function_declaration", "generator_function_declaration":
		w.handleFunctionDecl(n)
	case "class_declaration":
		w.handleClassDecl(n)
	case "call_expression":
		w.handleCallExpression(n)
	case "expression_statement":
		// module.exports = ... / exports.X = ...
		w.handleModuleExportsAssignment(n)
	}

	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		w.walk(n.NamedChild(i))
	}

	// decorators only attach to the declaration immediately following them
	if n.Type() != "decorator" {
		switch n.Type() {
		case "class_declaration", "function_declaration", "method_definition":
			w.pendingDecorators = nil
		}
	}
}

func (w *jsWalker) buildDecorator(n *sitter.Node) domain.Decorator {
	d := domain.Decorator{Line: w.line(n)}
	// decorator: "@" (identifier | call_expression)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "identifier", "member_expression":
			d.Name = w.text(c)
		case "call_expression":
			fn := c.ChildByFieldName("function")
			d.Name = w.text(fn)
			args := c.ChildByFieldName("arguments")
			if args != nil {
				for j := 0; j < int(args.NamedChildCount()); j++ {
					d.Arguments = append(d.Arguments, w.text(args.NamedChild(j)))
				}
			}
		}
	}
	return d
}

func (w *jsWalker) handleImport(n *sitter.Node) {
	srcNode := n.ChildByFieldName("source")
	module := stripQuotes(w.text(srcNode))
	imp := domain.Import{Module: module, Type: domain.ImportESM, Line: w.line(n)}

	clause := n.NamedChild(0)
	hasSpecifiers := false
	if clause != nil && clause.Type() == "import_clause" {
		hasSpecifiers = true
		for i := 0; i < int(clause.NamedChildCount()); i++ {
			c := clause.NamedChild(i)
			switch c.Type() {
			case "identifier": // default import
				imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{Imported: "default", Local: w.text(c)})
			case "namespace_import":
				local := w.text(c)
				local = strings.TrimPrefix(strings.TrimSpace(local), "* as ")
				imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{Imported: "*", Local: strings.TrimSpace(local)})
			case "named_imports":
				for j := 0; j < int(c.NamedChildCount()); j++ {
					spec := c.NamedChild(j)
					if spec.Type() != "import_specifier" {
						continue
					}
					nameNode := spec.ChildByFieldName("name")
					aliasNode := spec.ChildByFieldName("alias")
					imported := w.text(nameNode)
					local := imported
					if aliasNode != nil {
						local = w.text(aliasNode)
					}
					isType := strings.Contains(w.text(spec), "type ")
					imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{Imported: imported, Local: local, IsType: isType})
				}
			}
		}
	}

	if strings.Contains(w.text(n), "import type") {
		imp.IsTypeOnly = true
	}
	if !hasSpecifiers {
		imp.SideEffect = true
	}

	w.result.Imports = append(w.result.Imports, imp)
}

func (w *jsWalker) handleExport(n *sitter.Node) {
	text := w.text(n)
	source := ""
	if srcNode := n.ChildByFieldName("source"); srcNode != nil {
		source = stripQuotes(w.text(srcNode))
	}

	if strings.Contains(text, "export *") {
		exportType := domain.ExportReexportAll
		name := "*"
		w.result.Exports = append(w.result.Exports, domain.Export{Name: name, Type: exportType, SourceModule: source, Line: w.line(n)})
		return
	}

	if strings.Contains(text, "export default") {
		w.result.Exports = append(w.result.Exports, domain.Export{Name: "default", Type: domain.ExportDefault, Line: w.line(n)})
		return
	}

	// named exports: export { a, b as c } [from '...']
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "export_clause" {
			continue
		}
		for j := 0; j < int(c.NamedChildCount()); j++ {
			spec := c.NamedChild(j)
			if spec.Type() != "export_specifier" {
				continue
			}
			nameNode := spec.ChildByFieldName("name")
			aliasNode := spec.ChildByFieldName("alias")
			exported := w.text(nameNode)
			if aliasNode != nil {
				exported = w.text(aliasNode)
			}
			typ := domain.ExportVariable
			if source != "" {
				typ = domain.ExportReexport
			}
			w.result.Exports = append(w.result.Exports, domain.Export{Name: exported, Type: typ, SourceModule: source, Line: w.line(n)})
		}
	}

	// export function/class/const declarations
	if decl := n.ChildByFieldName("declaration"); decl != nil {
		w.handleExportedDeclaration(decl, n)
	}
}

func (w *jsWalker) handleExportedDeclaration(decl, exportNode *sitter.Node) {
	switch decl.Type() {
	case "function_declaration", "generator_function_declaration", "class_declaration":
		nameNode := decl.ChildByFieldName("name")
		typ := domain.ExportFunction
		if decl.Type() == "class_declaration" {
			typ = domain.ExportClass
		}
		w.result.Exports = append(w.result.Exports, domain.Export{Name: w.text(nameNode), Type: typ, Line: w.line(exportNode)})
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < int(decl.NamedChildCount()); i++ {
			d := decl.NamedChild(i)
			if d.Type() != "variable_declarator" {
				continue
			}
			nameNode := d.ChildByFieldName("name")
			w.result.Exports = append(w.result.Exports, domain.Export{Name: w.text(nameNode), Type: domain.ExportVariable, Line: w.line(exportNode)})
		}
	case "interface_declaration", "type_alias_declaration":
		nameNode := decl.ChildByFieldName("name")
		w.result.Exports = append(w.result.Exports, domain.Export{Name: w.text(nameNode), Type: domain.ExportType_, Line: w.line(exportNode)})
	case "enum_declaration":
		nameNode := decl.ChildByFieldName("name")
		w.result.Exports = append(w.result.Exports, domain.Export{Name: w.text(nameNode), Type: domain.ExportEnum, Line: w.line(exportNode)})
	}
}

func (w *jsWalker) handleFunctionDecl(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	decl := domain.Declaration{Kind: "function", Name: w.text(nameNode), Line: w.line(n), Decorators: w.pendingDecorators}
	w.pendingDecorators = nil
	w.result.Declarations = append(w.result.Declarations, decl)
}

func (w *jsWalker) handleClassDecl(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	decl := domain.Declaration{Kind: "class", Name: w.text(nameNode), Line: w.line(n), Decorators: w.pendingDecorators}
	w.pendingDecorators = nil
	w.result.Declarations = append(w.result.Declarations, decl)
}

func (w *jsWalker) handleCallExpression(n *sitter.Node) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return
	}
	callee := w.text(fn)
	args := n.ChildByFieldName("arguments")

	switch {
	case callee == "require":
		if args != nil && args.NamedChildCount() > 0 {
			mod := stripQuotes(w.text(args.NamedChild(0)))
			w.result.Imports = append(w.result.Imports, domain.Import{Module: mod, Type: domain.ImportCommonJS, Line: w.line(n)})
		}
		w.sawAnyImportLike = true
	case fn.Type() == "import":
		if args != nil && args.NamedChildCount() > 0 {
			mod := stripQuotes(w.text(args.NamedChild(0)))
			w.result.Imports = append(w.result.Imports, domain.Import{Module: mod, Type: domain.ImportDynamic, Line: w.line(n)})
		}
		w.sawAnyImportLike = true
	case globCallees[callee]:
		if args != nil && args.NamedChildCount() > 0 {
			mod := stripQuotes(w.text(args.NamedChild(0)))
			typ := domain.ImportGlobSync
			if callee == "require.context" {
				typ = domain.ImportRequireContext
			}
			w.result.Imports = append(w.result.Imports, domain.Import{Module: mod, Type: typ, Line: w.line(n), IsGlob: true})
		}
	case strings.HasSuffix(callee, "import.meta.glob"):
		if args != nil && args.NamedChildCount() > 0 {
			mod := stripQuotes(w.text(args.NamedChild(0)))
			w.result.Imports = append(w.result.Imports, domain.Import{Module: mod, Type: domain.ImportMetaGlob, Line: w.line(n), IsGlob: true})
		}
	}
}

func (w *jsWalker) handleModuleExportsAssignment(n *sitter.Node) {
	text := w.text(n)
	if !strings.HasPrefix(strings.TrimSpace(text), "module.exports") && !strings.HasPrefix(strings.TrimSpace(text), "exports.") {
		return
	}
	assign := n.NamedChild(0)
	if assign == nil || assign.Type() != "assignment_expression" {
		return
	}
	left := assign.ChildByFieldName("left")
	leftText := w.text(left)
	switch {
	case strings.HasPrefix(leftText, "module.exports."):
		name := strings.TrimPrefix(leftText, "module.exports.")
		w.result.Exports = append(w.result.Exports, domain.Export{Name: name, Type: domain.ExportVariable, Line: w.line(n)})
	case leftText == "module.exports":
		w.result.Exports = append(w.result.Exports, domain.Export{Name: "default", Type: domain.ExportDefault, Line: w.line(n)})
	case strings.HasPrefix(leftText, "exports."):
		name := strings.TrimPrefix(leftText, "exports.")
		w.result.Exports = append(w.result.Exports, domain.Export{Name: name, Type: domain.ExportVariable, Line: w.line(n)})
	}
}

// extractSFCScript pulls the first <script> block out of a Vue/Svelte SFC
// and returns the script source plus the 0-based line offset of its first
// line within the original file (spec.md §4.2).
func extractSFCScript(source []byte) ([]byte, int, bool) {
	s := string(source)
	openIdx := strings.Index(s, "<script")
	if openIdx < 0 {
		return nil, 0, false
	}
	tagEnd := strings.Index(s[openIdx:], ">")
	if tagEnd < 0 {
		return nil, 0, false
	}
	contentStart := openIdx + tagEnd + 1
	closeIdx := strings.Index(s[contentStart:], "</script>")
	if closeIdx < 0 {
		return nil, 0, false
	}
	script := s[contentStart : contentStart+closeIdx]
	if strings.TrimSpace(script) == "" {
		return nil, 0, false
	}
	offset := strings.Count(s[:contentStart], "\n")
	return []byte(script), offset, true
}

// regexFallback is invoked when the tree-sitter parse fails outright
// (spec.md §7: "Parse failure ... the parser falls back to a regex-based
// pass (JS)"). It scans line-by-line for the same import/require/dynamic
// import forms the AST walker recognises.
func regexFallback(result *domain.ParseResult, source []byte, lineOffset int) {
	lines := strings.Split(string(source), "\n")
	for i, line := range lines {
		ln := lineOffset + i + 1
		if m := matchFirst(line, `from\s+['"]([^'"]+)['"]`); m != "" {
			result.Imports = append(result.Imports, domain.Import{Module: m, Type: domain.ImportESM, Line: ln})
		}
		if m := matchFirst(line, `require\(\s*['"]([^'"]+)['"]\s*\)`); m != "" {
			result.Imports = append(result.Imports, domain.Import{Module: m, Type: domain.ImportCommonJS, Line: ln})
		}
		if m := matchFirst(line, `import\(\s*['"]([^'"]+)['"]\s*\)`); m != "" {
			result.Imports = append(result.Imports, domain.Import{Module: m, Type: domain.ImportDynamic, Line: ln})
		}
	}
}
