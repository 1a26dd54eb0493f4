package configprobe

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// probeBuildSystems covers the non-JS build-graph manifests of spec.md
// §4.3: Gradle, Maven, Bazel, Buck, Pants, Go workspaces, .NET solutions,
// and Cargo workspaces. Each manifest names a module/package/project
// directory rather than a source file directly, so every probe expands
// its directory hits into the real files inside before returning them.
func probeBuildSystems(root string) []EntryCandidate {
	var out []EntryCandidate
	out = append(out, probeGradle(root)...)
	out = append(out, probeMaven(root)...)
	out = append(out, probeGoWorkspace(root)...)
	out = append(out, probeBazel(root)...)
	out = append(out, probeBuck(root)...)
	out = append(out, probePants(root)...)
	out = append(out, probeDotNetSolution(root)...)
	out = append(out, probeCargoWorkspace(root)...)
	out = append(out, probePyprojectSrc(root)...)
	return out
}

func probeGradle(root string) []EntryCandidate {
	var out []EntryCandidate
	for _, f := range globAll(root, "settings.gradle", "settings.gradle.kts") {
		b, ok := readFileOrEmpty(f)
		if !ok {
			continue
		}
		text := string(b)
		dir := filepath.Dir(f)
		for _, m := range extractAll(text, `include\w*\s*\(?\s*['"]:?([\w./:-]+)['"]`, 1) {
			moduleDir := filepath.Join(dir, strings.ReplaceAll(m, ":", "/"))
			out = append(out, filesInDirRecursive(moduleDir, "gradle include")...)
		}
	}
	return out
}

func probeMaven(root string) []EntryCandidate {
	var out []EntryCandidate
	for _, f := range globAll(root, "pom.xml") {
		b, ok := readFileOrEmpty(f)
		if !ok {
			continue
		}
		dir := filepath.Dir(f)
		for _, m := range extractAll(string(b), `<module>([\w./-]+)</module>`, 1) {
			out = append(out, filesInDirRecursive(filepath.Join(dir, m), "maven module")...)
		}
	}
	return out
}

func probeBazel(root string) []EntryCandidate {
	var out []EntryCandidate
	if len(globAll(root, "WORKSPACE", "WORKSPACE.bazel")) == 0 {
		return nil
	}
	for _, f := range globAll(root, "**/BUILD", "**/BUILD.bazel") {
		out = append(out, filesInDir(filepath.Dir(f), "bazel BUILD package")...)
	}
	return out
}

func probeBuck(root string) []EntryCandidate {
	var out []EntryCandidate
	if len(globAll(root, ".buckconfig")) == 0 {
		return nil
	}
	for _, f := range globAll(root, "**/BUCK") {
		out = append(out, filesInDir(filepath.Dir(f), "buck BUCK package")...)
	}
	return out
}

// filesInDir returns every non-directory file directly inside dir (not
// recursive) as entry candidates, used by build-graph probes whose
// manifest names a package/project directory rather than a source file
// directly — a glob target like a Bazel BUILD package has to be expanded
// to the files it actually contains before it can match a
// domain.File.Path.
func filesInDir(dir, reason string) []EntryCandidate {
	var out []EntryCandidate
	for _, f := range globAll(dir, "*") {
		if info, err := os.Stat(f); err != nil || info.IsDir() {
			continue
		}
		out = append(out, EntryCandidate{Path: f, Reason: reason, Source: "buildSystem"})
	}
	return out
}

// filesInDirRecursive returns every file anywhere under dir (recursive)
// as entry candidates, used by build-graph probes whose manifest names a
// whole module/source-root directory rather than a source file directly.
func filesInDirRecursive(dir, reason string) []EntryCandidate {
	var out []EntryCandidate
	for _, f := range globAll(dir, "**/*") {
		out = append(out, EntryCandidate{Path: f, Reason: reason, Source: "buildSystem"})
	}
	return out
}

func probePants(root string) []EntryCandidate {
	var out []EntryCandidate
	b, ok := readFileOrEmpty(filepath.Join(root, "pants.toml"))
	if !ok {
		return nil
	}
	for _, m := range extractAll(string(b), `root_patterns\s*=\s*\[([^\]]*)\]`, 1) {
		for _, pattern := range strings.Split(m, ",") {
			pattern = strings.Trim(strings.TrimSpace(pattern), `'"/`)
			if pattern != "" {
				out = append(out, filesInDirRecursive(filepath.Join(root, pattern), "pants source root")...)
			}
		}
	}
	return out
}

// probeGoModule returns the module path declared in the project's
// go.mod, used by internal/resolver's Go import-path resolution (spec.md
// §4.5).
func probeGoModule(root string) string {
	b, ok := readFileOrEmpty(filepath.Join(root, "go.mod"))
	if !ok {
		return ""
	}
	m := extractAll(string(b), `(?m)^module\s+(\S+)`, 1)
	if len(m) == 0 {
		return ""
	}
	return m[0]
}

// probeGoWorkspace returns every file under each directory named by a
// go.work `use` directive (single-line or parenthesised block form),
// contributing to the aggregated entry list the way other workspace
// manifests do.
func probeGoWorkspace(root string) []EntryCandidate {
	b, ok := readFileOrEmpty(filepath.Join(root, "go.work"))
	if !ok {
		return nil
	}
	text := string(b)
	var dirs []string
	for _, block := range extractAll(text, `(?s)use\s*\(([^)]*)\)`, 1) {
		dirs = append(dirs, strings.Fields(block)...)
	}
	dirs = append(dirs, extractAll(text, `(?m)^use\s+([^\s(]+)`, 1)...)
	var out []EntryCandidate
	for _, m := range dirs {
		m = strings.Trim(m, `'"`)
		out = append(out, filesInDirRecursive(filepath.Join(root, m), "go.work use directive")...)
	}
	return out
}

// probeJavaSourceRoots returns conventional Java/Kotlin source roots
// (Maven/Gradle layout), used as prefix variants when building the
// fully-qualified-name index (spec.md §4.5).
func probeJavaSourceRoots(root string) []string {
	var out []string
	for _, candidate := range []string{"src/main/java", "src/main/kotlin", "src/test/java", "src/test/kotlin"} {
		if dirs := globAll(root, "**/"+candidate); len(dirs) > 0 {
			out = append(out, dirs...)
		}
	}
	return out
}

func probeDotNetSolution(root string) []EntryCandidate {
	var out []EntryCandidate
	for _, f := range globAll(root, "*.sln") {
		b, ok := readFileOrEmpty(f)
		if !ok {
			continue
		}
		dir := filepath.Dir(f)
		for _, m := range extractAll(string(b), `"([\w./\\-]+\.csproj)"`, 1) {
			out = append(out, EntryCandidate{Path: filepath.Join(dir, strings.ReplaceAll(m, "\\", "/")), Reason: ".sln project reference", Source: "buildSystem"})
		}
	}
	out = append(out, probeDotNetProjectGraph(root)...)
	return out
}

var csprojReferenceRe = regexp.MustCompile(`<ProjectReference\s+Include="([^"]+)"`)

// probeDotNetProjectGraph implements spec.md §4.4 rule 16: every .csproj
// transitively referenced from a project containing Program.cs/Startup.cs
// contributes all its .cs files as entries; with no "app" project in the
// solution at all, every .csproj project's files are treated as live.
func probeDotNetProjectGraph(root string) []EntryCandidate {
	projects := globAll(root, "**/*.csproj")
	if len(projects) == 0 {
		return nil
	}

	refs := map[string][]string{}
	var appProjects []string
	for _, proj := range projects {
		dir := filepath.Dir(proj)
		if len(globAll(dir, "Program.cs")) > 0 || len(globAll(dir, "Startup.cs")) > 0 {
			appProjects = append(appProjects, proj)
		}

		b, ok := readFileOrEmpty(proj)
		if !ok {
			continue
		}
		for _, m := range csprojReferenceRe.FindAllStringSubmatch(string(b), -1) {
			target := filepath.Clean(filepath.Join(dir, strings.ReplaceAll(m[1], "\\", "/")))
			refs[proj] = append(refs[proj], target)
		}
	}

	var roots []string
	reason := "csharp project graph (transitively referenced from app project)"
	if len(appProjects) > 0 {
		roots = appProjects
	} else {
		roots = projects
		reason = "csharp project graph (no app project, every project treated as live)"
	}

	reached := map[string]bool{}
	var queue []string
	queue = append(queue, roots...)
	for len(queue) > 0 {
		proj := queue[0]
		queue = queue[1:]
		if reached[proj] {
			continue
		}
		reached[proj] = true
		queue = append(queue, refs[proj]...)
	}

	var out []EntryCandidate
	for proj := range reached {
		for _, f := range globAll(filepath.Dir(proj), "**/*.cs") {
			out = append(out, EntryCandidate{Path: f, Reason: reason, Source: "buildSystem"})
		}
	}
	return out
}

// firstTOMLArray returns the `[...]` array value bound to key in a TOML
// document (e.g. `members = ["a", "b"]`), as opposed to extractBlock's
// `{...}` object extraction used for the JS-style bundler configs.
func firstTOMLArray(text, key string) string {
	m := compiled(regexp.QuoteMeta(key) + `\s*=\s*\[([^\]]*)\]`).FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func probeCargoWorkspace(root string) []EntryCandidate {
	b, ok := readFileOrEmpty(filepath.Join(root, "Cargo.toml"))
	if !ok {
		return nil
	}
	text := string(b)
	block := firstTOMLArray(text, "members")
	excludeBlock := firstTOMLArray(text, "exclude")
	excluded := map[string]bool{}
	for _, m := range extractAll(excludeBlock, `['"]([\w./-]+)['"]`, 1) {
		excluded[m] = true
	}

	var out []EntryCandidate
	for _, m := range extractAll(block, `['"]([\w./*-]+)['"]`, 1) {
		if excluded[m] {
			continue
		}
		for _, dir := range expandWorkspaceGlob(root, m) {
			for _, crateRoot := range []string{"src/main.rs", "src/lib.rs"} {
				if f := filepath.Join(dir, crateRoot); len(globAll(dir, crateRoot)) > 0 {
					out = append(out, EntryCandidate{Path: f, Reason: "cargo workspace member crate root", Source: "buildSystem"})
				}
			}
		}
	}
	return out
}

func probePyprojectSrc(root string) []EntryCandidate {
	b, ok := readFileOrEmpty(filepath.Join(root, "pyproject.toml"))
	if !ok {
		return nil
	}
	if !strings.Contains(string(b), "src") {
		return nil
	}
	var out []EntryCandidate
	for _, dir := range globAll(filepath.Join(root, "src"), "*") {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if f := filepath.Join(dir, "__init__.py"); len(globAll(dir, "__init__.py")) > 0 {
			out = append(out, EntryCandidate{Path: f, Reason: "pyproject.toml src layout package root", Source: "buildSystem"})
		}
	}
	return out
}
