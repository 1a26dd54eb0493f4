package domain

// ImportType tags the syntactic form an import was written in. spec.md §3
// enumerates these per language family; the set below is the union across
// all of them so a single Import struct serves every parser.
type ImportType string

const (
	ImportESM            ImportType = "esm"
	ImportCommonJS       ImportType = "commonjs"
	ImportDynamic        ImportType = "dynamic-import"
	ImportRequireContext ImportType = "require-context"
	ImportGlobSync       ImportType = "glob-sync"
	ImportMetaGlob       ImportType = "import-meta-glob"
	ImportFrom           ImportType = "from"   // python: from X import Y
	ImportStatic         ImportType = "static"// java static import
	ImportNormal         ImportType = "normal" // catch-all (use, using, go import)
	ImportGlob           ImportType = "glob"
)

// ImportSpecifier is one bound name pulled in by an ESM-style import.
type ImportSpecifier struct {
	Imported string `json:"imported"` // name in the source module, "*" for namespace, "default" for default
	Local    string `json:"local"`    // local binding name
	IsType   bool   `json:"is_type,omitempty"`
}

// Import is a single import statement, normalised across languages.
type Import struct {
	Module      string            `json:"module"` // module string exactly as written
	Type        ImportType        `json:"type"`
	Specifiers  []ImportSpecifier `json:"specifiers,omitempty"`
	Symbol      string            `json:"symbol,omitempty"` // python "from X import Y": Y
	Line        int               `json:"line"`
	IsGlob      bool              `json:"is_glob,omitempty"`
	IsTypeOnly  bool              `json:"is_type_only,omitempty"`
	SideEffect  bool              `json:"side_effect,omitempty"` // import './x' with no bound names
}

// ExportType tags what kind of thing an export declares or re-exports.
type ExportType string

const (
	ExportFunction    ExportType = "function"
	ExportClass       ExportType = "class"
	ExportVariable    ExportType = "variable"
	ExportType_       ExportType = "type"
	ExportEnum        ExportType = "enum"
	ExportReexport    ExportType = "reexport"
	ExportReexportAll ExportType = "reexport-all"
	ExportDefault     ExportType = "default"
)

// Export is a single export statement, normalised across languages.
type Export struct {
	Name         string     `json:"name"` // "*" for reexport-all, "default" for default export
	Type         ExportType `json:"type"`
	SourceModule string     `json:"source_module,omitempty"` // set for re-exports
	Line         int        `json:"line"`
	EndLine      int        `json:"end_line,omitempty"`
}

// Decorator is a class/function-level annotation or decorator, captured with
// its call arguments so entry-point detection can inspect them (e.g.
// @Injectable({ providedIn: 'root' })).
type Decorator struct {
	Name      string   `json:"name"`
	Arguments []string `json:"arguments,omitempty"`
	Line      int      `json:"line"`
}

// Declaration is a top-level function or class/interface/record declaration.
type Declaration struct {
	Kind       string      `json:"kind"` // "function" | "class" | "interface" | "record" | "object"
	Name       string      `json:"name"`
	Exported   bool        `json:"exported"`
	Decorators []Decorator `json:"decorators,omitempty"`
	Line       int         `json:"line"`
}

// Metadata carries the language-specific flags spec.md §3 names. Every
// parser fills this in full (zero values where not applicable) so that
// downstream stages never need a type switch on language.
type Metadata struct {
	// Go
	GoPackageName      string `json:"go_package_name,omitempty"`
	IsMainPackage      bool   `json:"is_main_package,omitempty"`
	HasMainFunction    bool   `json:"has_main_function,omitempty"`
	HasInitFunction    bool   `json:"has_init_function,omitempty"`
	IsTestFile         bool   `json:"is_test_file,omitempty"`

	// Python
	HasMainBlock bool     `json:"has_main_block,omitempty"`
	IsCelery     bool     `json:"is_celery,omitempty"`
	IsDjango     bool     `json:"is_django,omitempty"`
	IsFastAPI    bool     `json:"is_fastapi,omitempty"`
	DunderAll    []string `json:"dunder_all,omitempty"`
	HasDunderAll bool     `json:"has_dunder_all,omitempty"`

	// Java / Kotlin
	JavaPackageName string `json:"java_package_name,omitempty"`
	HasMainMethod   bool   `json:"has_main_method,omitempty"`
	IsSpringComponent bool `json:"is_spring_component,omitempty"`

	// C#
	CSharpNamespace      string `json:"csharp_namespace,omitempty"`
	HasTopLevelStatements bool  `json:"has_top_level_statements,omitempty"`
	HasMainMethodCSharp  bool   `json:"has_main_method_csharp,omitempty"`

	// Rust
	RustModDecls    []RustModDecl `json:"rust_mod_decls,omitempty"`
	IsCrateRoot     bool          `json:"is_crate_root,omitempty"`

	// JS/TS
	JSXRuntime  bool `json:"jsx_runtime,omitempty"`
	IsVueOrSvelte bool `json:"is_vue_or_svelte,omitempty"`
	ScriptLineOffset int `json:"script_line_offset,omitempty"`
}

// RustModDecl is a single `mod X;` declaration, with its optional
// #[path = "..."] override (spec.md §4.2, §4.6).
type RustModDecl struct {
	Name       string `json:"name"`
	PathOverride string `json:"path_override,omitempty"`
	Line       int    `json:"line"`
}

// ParseResult is the uniform output of every language parser (spec.md §3).
// Parser failures yield a zero-value ParseResult, never a hard error; the
// caller records the failure separately in Diagnostics.
type ParseResult struct {
	Path         string        `json:"path"`
	Language     Language      `json:"language"`
	Imports      []Import      `json:"imports"`
	Exports      []Export      `json:"exports"`
	Declarations []Declaration `json:"declarations"`
	Metadata     Metadata      `json:"metadata"`

	// content is retained only until the worker pool's memory-discipline
	// pass zeroes it (spec.md §5); later stages that need source text
	// (Rust proc-macro re-reads, Vue/Svelte script extraction, directory
	// auto-loader detection) re-read the file from disk instead.
	content []byte
}

// SetContent stores source bytes for later language-amplification passes.
func (p *ParseResult) SetContent(b []byte) { p.content = b }

// Content returns the retained source bytes, or nil once freed.
func (p *ParseResult) Content() []byte { return p.content }

// FreeContent drops the retained source bytes, bounding peak memory
// (spec.md §5's "memory discipline" requirement).
func (p *ParseResult) FreeContent() { p.content = nil }

// NewParseResult returns an empty, fully-initialised ParseResult so every
// parser can fill it in without nil-slice surprises downstream.
func NewParseResult(path string, lang Language) *ParseResult {
	return &ParseResult{
		Path:         path,
		Language:     lang,
		Imports:      []Import{},
		Exports:      []Export{},
		Declarations: []Declaration{},
	}
}
