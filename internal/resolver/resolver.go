// Package resolver implements the import resolver of spec.md §4.5: for a
// given (fromFile, importString) pair, produce zero or more concrete
// project file paths. Every language-specific lookup rule lives behind
// the shared Index's suffix/stem lookup so none of the resolvers fall
// back to an O(n) scan of the project tree.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/reachscan/reachscan/domain"
	"github.com/reachscan/reachscan/internal/configprobe"
)

// Index is the O(1) file lookup structure shared by every resolver
// (spec.md §4.5's "common candidate-match helper").
type Index struct {
	exists   map[string]bool     // normalised full path -> present
	bySuffix map[string][]string // trailing path segment -> full paths sharing it
	byStem   map[string][]string // extension-less stem -> full paths sharing it
	byDir    map[string][]string // containing directory -> full paths directly within it
}

// NewIndex builds the lookup structure from the discovered file list.
func NewIndex(files []domain.File) *Index {
	idx := &Index{
		exists:   make(map[string]bool, len(files)),
		bySuffix: map[string][]string{},
		byStem:   map[string][]string{},
		byDir:    map[string][]string{},
	}
	for _, f := range files {
		p := filepath.ToSlash(f.Path)
		idx.exists[p] = true
		base := filepath.Base(p)
		idx.bySuffix[base] = append(idx.bySuffix[base], p)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		idx.byStem[stem] = append(idx.byStem[stem], p)
		dir := filepath.ToSlash(filepath.Dir(p))
		idx.byDir[dir] = append(idx.byDir[dir], p)
	}
	return idx
}

// FilesIn returns every indexed file directly within dir (no recursion).
func (idx *Index) FilesIn(dir string) []string {
	return idx.byDir[filepath.ToSlash(dir)]
}

// AllPaths returns every indexed file path, for the glob-import
// expansion in internal/reachability, which has no narrower starting
// point than "every file in the project".
func (idx *Index) AllPaths() map[string]bool {
	return idx.exists
}

// Exists reports whether path is a real project file.
func (idx *Index) Exists(path string) bool {
	return idx.exists[filepath.ToSlash(filepath.Clean(path))]
}

// TryExtensions returns the first of base+ext (for ext in exts, "" tried
// first) that exists in the project, preferring bare base and an
// index.* fallback for directory-style imports (spec.md §4.5 rule 5).
func (idx *Index) TryExtensions(base string, exts []string) (string, bool) {
	clean := filepath.ToSlash(filepath.Clean(base))
	for _, ext := range exts {
		candidate := clean + ext
		if idx.Exists(candidate) {
			return candidate, true
		}
	}
	for _, ext := range exts {
		candidate := filepath.ToSlash(filepath.Join(clean, "index"+ext))
		if idx.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// SuffixMatches returns every indexed file whose trailing path segment
// equals name — the last-resort class-name-only fallback various
// resolvers use (spec.md §4.5's Java/Kotlin and Go rules).
func (idx *Index) SuffixMatches(name string) []string {
	return idx.bySuffix[name]
}

// StemMatches returns every indexed file whose extension-less filename
// equals stem.
func (idx *Index) StemMatches(stem string) []string {
	return idx.byStem[stem]
}

// Resolver dispatches (fromFile, import) to the right language-specific
// lookup and holds every side channel spec.md §4.5 needs: workspace
// registry, path-alias tables, baseUrls, the Go module path, and the
// Java/Kotlin fully-qualified-name index.
type Resolver struct {
	Index        *Index
	Probe        *configprobe.Result
	GoModulePath string
	JavaFQN      map[string]string // "pkg.Class" -> file path, built once at scan time
}

// New constructs a Resolver and builds the FQN index for Java/Kotlin.
func New(files []domain.File, parsed map[string]*domain.ParseResult, probe *configprobe.Result) *Resolver {
	r := &Resolver{
		Index:        NewIndex(files),
		Probe:        probe,
		GoModulePath: probe.GoModulePath,
		JavaFQN:      map[string]string{},
	}
	for path, pr := range parsed {
		if pr.Language != domain.LanguageJava && pr.Language != domain.LanguageKotlin {
			continue
		}
		pkg := pr.Metadata.JavaPackageName
		for _, decl := range pr.Declarations {
			if decl.Kind != "class" {
				continue
			}
			fqn := decl.Name
			if pkg != "" {
				fqn = pkg + "." + decl.Name
			}
			r.JavaFQN[fqn] = path
		}
	}
	return r
}

// Resolve implements the full per-language dispatch of spec.md §4.5.
// Returns nil when the import points outside the project.
func (r *Resolver) Resolve(fromFile string, lang domain.Language, imp domain.Import) []string {
	switch lang {
	case domain.LanguageJavaScript, domain.LanguageOther:
		return r.resolveJS(fromFile, imp)
	case domain.LanguagePython:
		return r.resolvePython(fromFile, imp)
	case domain.LanguageJava, domain.LanguageKotlin:
		return r.resolveJavaKotlin(imp)
	case domain.LanguageGo:
		return r.resolveGo(fromFile, imp)
	case domain.LanguageRust:
		return r.resolveRust(fromFile, imp)
	case domain.LanguageCSharp:
		return r.resolveCSharp(imp)
	default:
		return nil
	}
}
