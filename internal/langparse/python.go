package langparse

import (
	"strings"

	"github.com/reachscan/reachscan/domain"
)

// PythonParser is the line-oriented Python parser spec.md §4.2 calls for
// explicitly, rather than a full grammar-based parse.
type PythonParser struct{}

// NewPythonParser constructs a PythonParser. Stateless: kept as a type for
// symmetry with the tree-sitter-backed parsers in Registry.
func NewPythonParser() *PythonParser { return &PythonParser{} }

var (
	reImportPlain   = `^\s*import\s+([\w\.]+)(?:\s+as\s+(\w+))?`
	reFromImport    = `^\s*from\s+(\.*[\w\.]*)\s+import\s+(.+)`
	reDecorator     = `^\s*@([\w\.]+)(\(.*)?`
	reDefOrClass    = `^\s*(?:async\s+)?(def|class)\s+(\w+)\s*[\(:]`
	reDunderAllItem = `['"]([\w]+)['"]`
)

// Parse implements Parser.
func (p *PythonParser) Parse(path string, source []byte) (*domain.ParseResult, error) {
	result := domain.NewParseResult(path, domain.LanguagePython)
	lines := strings.Split(string(source), "\n")

	var pendingDecorators []domain.Decorator
	var continuation strings.Builder
	inContinuation := false
	contStartLine := 0

	flushContinuation := func() {
		if !inContinuation {
			return
		}
		handleFromImport(result, continuation.String(), contStartLine)
		continuation.Reset()
		inContinuation = false
	}

	for i, raw := range lines {
		lineNo := i + 1
		line := raw

		if inContinuation {
			continuation.WriteString(" ")
			continuation.WriteString(strings.TrimSpace(line))
			if strings.Contains(line, ")") {
				flushContinuation()
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.Contains(trimmed, `if __name__`) && (strings.Contains(trimmed, `"__main__"`) || strings.Contains(trimmed, `'__main__'`)) {
			result.Metadata.HasMainBlock = true
		}

		if m := matchFirst(line, reImportPlain); m != "" {
			module := m
			imp := domain.Import{Module: module, Type: domain.ImportNormal, Line: lineNo}
			result.Imports = append(result.Imports, imp)
			classifyPythonFramework(result, module)
			continue
		}

		if fromMod, rest, ok := matchFromImport(line); ok {
			if strings.Contains(line, "(") && !strings.Contains(line, ")") {
				inContinuation = true
				contStartLine = lineNo
				continuation.WriteString("from " + fromMod + " import " + rest)
				continue
			}
			handleFromImportParts(result, fromMod, rest, lineNo)
			continue
		}

		if m := matchFirst(line, reDecorator); m != "" {
			dec := domain.Decorator{Name: m, Line: lineNo}
			if argStr := matchFirst(line, `\((.*)\)`); argStr != "" {
				dec.Arguments = splitArgs(argStr)
			}
			pendingDecorators = append(pendingDecorators, dec)
			if m == "task" || m == "shared_task" || strings.HasPrefix(m, "celery.") {
				result.Metadata.IsCelery = true
			}
			if isFastAPIRouteDecorator(m) {
				result.Metadata.IsFastAPI = true
			}
			continue
		}

		if groups := matchDefOrClass(line); groups != nil {
			kind, name := groups[0], groups[1]
			exported := !strings.HasPrefix(name, "_")
			decl := domain.Declaration{Kind: kind, Name: name, Exported: exported, Decorators: pendingDecorators, Line: lineNo}
			result.Declarations = append(result.Declarations, decl)
			if exported {
				typ := domain.ExportFunction
				if kind == "class" {
					typ = domain.ExportClass
				}
				result.Exports = append(result.Exports, domain.Export{Name: name, Type: typ, Line: lineNo})
			}
			pendingDecorators = nil
			continue
		}

		if strings.Contains(trimmed, "__all__") && strings.Contains(trimmed, "=") {
			names := matchAll(trimmed, reDunderAllItem)
			if len(names) > 0 {
				result.Metadata.DunderAll = append(result.Metadata.DunderAll, names...)
				result.Metadata.HasDunderAll = true
			}
		}

		for _, base := range []string{"models.Model", "View", "ViewSet", "ModelAdmin", "forms.Form", "Form"} {
			if strings.Contains(trimmed, "class ") && strings.Contains(trimmed, base) {
				result.Metadata.IsDjango = true
			}
		}
	}
	flushContinuation()

	result.SetContent(source)
	return result, nil
}

func matchFromImport(line string) (module, rest string, ok bool) {
	full := compiled(reFromImport).FindStringSubmatch(line)
	if len(full) < 3 {
		return "", "", false
	}
	return full[1], full[2], true
}

// handleFromImportParts processes `from X import a, b as c, *`.
func handleFromImportParts(result *domain.ParseResult, fromMod, rest string, line int) {
	rest = strings.TrimRight(strings.TrimSpace(rest), ")")
	rest = strings.TrimLeft(rest, "(")
	rest = strings.TrimSuffix(rest, "\\")

	if strings.TrimSpace(rest) == "*" {
		result.Imports = append(result.Imports, domain.Import{Module: fromMod, Type: domain.ImportFrom, Symbol: "*", IsGlob: true, Line: line})
		return
	}

	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name := part
		if idx := strings.Index(part, " as "); idx >= 0 {
			name = strings.TrimSpace(part[:idx])
		}
		result.Imports = append(result.Imports, domain.Import{Module: fromMod, Type: domain.ImportFrom, Symbol: name, Line: line})
	}
	classifyPythonFramework(result, fromMod)
}

// handleFromImport processes a reassembled multi-line parenthesised import.
func handleFromImport(result *domain.ParseResult, joined string, line int) {
	joined = strings.TrimPrefix(joined, "from ")
	parts := strings.SplitN(joined, " import ", 2)
	if len(parts) != 2 {
		return
	}
	handleFromImportParts(result, strings.TrimSpace(parts[0]), parts[1], line)
}

func matchDefOrClass(line string) []string {
	full := compiled(reDefOrClass).FindStringSubmatch(line)
	if len(full) < 3 {
		return nil
	}
	return []string{full[1], full[2]}
}

func splitArgs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isFastAPIRouteDecorator(name string) bool {
	for _, suffix := range []string{".get", ".post", ".put", ".delete", ".patch", ".router"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func classifyPythonFramework(result *domain.ParseResult, module string) {
	if strings.HasPrefix(module, "celery") {
		result.Metadata.IsCelery = true
	}
	if strings.HasPrefix(module, "fastapi") {
		result.Metadata.IsFastAPI = true
	}
	if strings.HasPrefix(module, "django") {
		result.Metadata.IsDjango = true
	}
}

// RelativeImportDepth counts the leading dots of a python relative import
// module string, used by internal/resolver to pick the base directory
// (spec.md §4.2/§4.5).
func RelativeImportDepth(module string) int {
	n := 0
	for n < len(module) && module[n] == '.' {
		n++
	}
	return n
}
