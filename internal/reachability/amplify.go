package reachability

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/reachscan/reachscan/domain"
	"github.com/reachscan/reachscan/internal/entrypoint"
)

// amplifier implements spec.md §4.6 step 3: the language-specific rules
// that widen reachability past what syntactic imports alone capture.
type amplifier struct {
	byDir          map[string][]string // directory -> file paths directly within it
	byPackage      map[string][]string // "lang\x00packageOrNamespace" -> file paths
	csharpFileRefs map[string][]string // C# file -> files referencing its class/extension-method names
}

func newAmplifier(files []domain.File, parsed map[string]*domain.ParseResult) *amplifier {
	a := &amplifier{byDir: map[string][]string{}, byPackage: map[string][]string{}}
	for _, f := range files {
		dir := filepath.ToSlash(filepath.Dir(f.Path))
		a.byDir[dir] = append(a.byDir[dir], f.Path)
	}
	for path, pr := range parsed {
		switch pr.Language {
		case domain.LanguageJava, domain.LanguageKotlin:
			if pr.Metadata.JavaPackageName != "" {
				key := "jvm\x00" + pr.Metadata.JavaPackageName
				a.byPackage[key] = append(a.byPackage[key], path)
			}
		case domain.LanguageCSharp:
			if pr.Metadata.CSharpNamespace != "" {
				key := "cs\x00" + pr.Metadata.CSharpNamespace
				a.byPackage[key] = append(a.byPackage[key], path)
			}
		}
	}
	a.csharpFileRefs = buildCSharpFileRefs(parsed)
	return a
}

// buildCSharpFileRefs implements spec.md §4.6's "C# class/extension-method
// references" rule: a file that mentions another file's declared class
// name anywhere in its source text is considered to reference it, since
// C# has no per-file import statement to resolve against.
func buildCSharpFileRefs(parsed map[string]*domain.ParseResult) map[string][]string {
	classFiles := map[string][]string{}
	var csFiles []string
	for path, pr := range parsed {
		if pr.Language != domain.LanguageCSharp {
			continue
		}
		csFiles = append(csFiles, path)
		for _, d := range pr.Declarations {
			if d.Kind == "class" && d.Name != "" {
				classFiles[d.Name] = append(classFiles[d.Name], path)
			}
		}
	}
	if len(csFiles) == 0 || len(classFiles) == 0 {
		return nil
	}

	wordRe := map[string]*regexp.Regexp{}
	reFor := func(name string) *regexp.Regexp {
		if re, ok := wordRe[name]; ok {
			return re
		}
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		wordRe[name] = re
		return re
	}

	refs := map[string][]string{}
	for _, path := range csFiles {
		b, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		text := string(b)
		seen := map[string]bool{}
		for name, declaringFiles := range classFiles {
			if !reFor(name).MatchString(text) {
				continue
			}
			for _, target := range declaringFiles {
				if target == path || seen[target] {
					continue
				}
				seen[target] = true
				refs[path] = append(refs[path], target)
			}
		}
	}
	return refs
}

func (a *amplifier) amplify(f string, pr *domain.ParseResult, enqueue func(string)) {
	switch pr.Language {
	case domain.LanguageGo:
		a.sameDirSiblings(f, ".go", []string{"_test.go"}, enqueue)
	case domain.LanguageJava:
		a.samePackageSiblings("jvm\x00"+pr.Metadata.JavaPackageName, enqueue)
	case domain.LanguageKotlin:
		a.samePackageSiblings("jvm\x00"+pr.Metadata.JavaPackageName, enqueue)
	case domain.LanguageCSharp:
		a.sameNamespaceSiblings("cs\x00"+pr.Metadata.CSharpNamespace, enqueue)
		for _, ref := range a.csharpFileRefs[f] {
			enqueue(ref)
		}
	case domain.LanguageRust:
		a.rustModDecls(f, pr, enqueue)
		a.rustProcMacros(f, enqueue)
	case domain.LanguagePython:
		a.pythonLazyLoader(f, pr, enqueue)
	case domain.LanguageJavaScript:
		a.directoryAutoLoader(f, enqueue)
	}
}

func (a *amplifier) sameDirSiblings(f, ext string, excludeSuffixes []string, enqueue func(string)) {
	dir := filepath.ToSlash(filepath.Dir(f))
	for _, sibling := range a.byDir[dir] {
		if sibling == f || filepath.Ext(sibling) != ext {
			continue
		}
		excluded := false
		for _, suffix := range excludeSuffixes {
			if strings.HasSuffix(sibling, suffix) {
				excluded = true
				break
			}
		}
		if !excluded && !entrypoint.IsDeadNamed(sibling) {
			enqueue(sibling)
		}
	}
}

func (a *amplifier) samePackageSiblings(key string, enqueue func(string)) {
	for _, p := range a.byPackage[key] {
		if !entrypoint.IsDeadNamed(p) {
			enqueue(p)
		}
	}
}

// sameNamespaceSiblings implements spec.md §4.6's "namespaces with
// 2-200 members" cap: a namespace with just one file has no siblings to
// widen to, and one with more than 200 is almost certainly a catch-all
// namespace where this amplification would make everything reachable.
func (a *amplifier) sameNamespaceSiblings(key string, enqueue func(string)) {
	members := a.byPackage[key]
	if len(members) < 2 || len(members) > 200 {
		return
	}
	for _, p := range members {
		enqueue(p)
	}
}

var rustAutomodDir = regexp.MustCompile(`automod::dir!\(\s*"([^"]+)"`)
var rustIncludeDir = regexp.MustCompile(`(?:declare_group_from_fs|declare_lint_group|include_dir|auto_mod)!\(\s*"([^"]+)"`)
var rustIncludeFile = regexp.MustCompile(`include!\(\s*"([^"]+)"\s*\)`)

func (a *amplifier) rustModDecls(f string, pr *domain.ParseResult, enqueue func(string)) {
	dir := filepath.Dir(f)
	base := filepath.Base(f)
	isOwner := base != "mod.rs" && base != "lib.rs" && base != "main.rs"

	for _, mod := range pr.Metadata.RustModDecls {
		name := strings.TrimPrefix(mod.Name, "r#")
		if mod.PathOverride != "" {
			enqueue(filepath.Join(dir, mod.PathOverride))
			continue
		}
		if p := filepath.Join(dir, name+".rs"); true {
			enqueue(p)
		}
		enqueue(filepath.Join(dir, name, "mod.rs"))

		if isOwner {
			// Rust 2018: Y.rs can own a sibling Y/ directory.
			stem := strings.TrimSuffix(base, ".rs")
			enqueue(filepath.Join(dir, stem, name+".rs"))
		}
	}
}

func (a *amplifier) rustProcMacros(f string, enqueue func(string)) {
	b, err := os.ReadFile(f)
	if err != nil {
		return
	}
	text := string(b)
	dir := filepath.Dir(f)

	for _, m := range rustAutomodDir.FindAllStringSubmatch(text, -1) {
		a.allRsInDir(filepath.Join(dir, m[1]), enqueue)
	}
	for _, m := range rustIncludeDir.FindAllStringSubmatch(text, -1) {
		a.allRsInDir(filepath.Join(dir, m[1]), enqueue)
	}
	for _, m := range rustIncludeFile.FindAllStringSubmatch(text, -1) {
		enqueue(filepath.Join(dir, m[1]))
	}
}

func (a *amplifier) allRsInDir(dir string, enqueue func(string)) {
	for _, p := range a.byDir[filepath.ToSlash(dir)] {
		if filepath.Ext(p) == ".rs" {
			enqueue(p)
		}
	}
}

var pythonGetattr = regexp.MustCompile(`def\s+__getattr__\s*\(`)
var pythonImportlibCall = regexp.MustCompile(`importlib\.import_module\(\s*['"]([\w.]+)['"]`)

func (a *amplifier) pythonLazyLoader(f string, pr *domain.ParseResult, enqueue func(string)) {
	if filepath.Base(f) != "__init__.py" {
		a.pythonImportlibStrings(f, enqueue)
		return
	}
	b, err := os.ReadFile(f)
	if err != nil {
		return
	}
	text := string(b)
	if !pythonGetattr.MatchString(text) {
		a.pythonImportlibStrings(f, enqueue)
		return
	}

	dir := filepath.ToSlash(filepath.Dir(f))
	for _, sibling := range a.byDir[dir] {
		if sibling != f && filepath.Ext(sibling) == ".py" {
			enqueue(sibling)
		}
	}
	// sub-package __init__.py files
	for candidateDir := range a.byDir {
		if filepath.Dir(candidateDir) == dir {
			for _, p := range a.byDir[candidateDir] {
				if filepath.Base(p) == "__init__.py" {
					enqueue(p)
				}
			}
		}
	}
	a.pythonImportlibStrings(f, enqueue)
}

func (a *amplifier) pythonImportlibStrings(f string, enqueue func(string)) {
	b, err := os.ReadFile(f)
	if err != nil {
		return
	}
	for _, m := range pythonImportlibCall.FindAllStringSubmatch(string(b), -1) {
		parts := strings.Split(m[1], ".")
		candidate := filepath.Join(parts...) + ".py"
		enqueue(candidate)
		enqueue(filepath.Join(filepath.Join(parts...), "__init__.py"))
	}
}

var jsAutoLoaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`requireDirectory\(\s*__dirname`),
	regexp.MustCompile(`readdirSync\(\s*__dirname`),
	regexp.MustCompile(`glob\.sync\(`),
	regexp.MustCompile(`globSync\(`),
}

// directoryAutoLoader implements spec.md §4.6's directory-scanning
// auto-loader rule: an index file whose source matches one of the known
// scan-the-directory idioms makes every sibling file reachable.
func (a *amplifier) directoryAutoLoader(f string, enqueue func(string)) {
	b, err := os.ReadFile(f)
	if err != nil {
		return
	}
	text := string(b)
	matched := false
	for _, re := range jsAutoLoaderPatterns {
		if re.MatchString(text) {
			matched = true
			break
		}
	}
	if !matched {
		return
	}
	dir := filepath.ToSlash(filepath.Dir(f))
	for _, sibling := range a.byDir[dir] {
		if sibling != f {
			enqueue(sibling)
		}
	}
}
