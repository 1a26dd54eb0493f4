package configprobe

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeProbeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPackageJSONMainEntry(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "package.json", `{"name":"pkg","main":"src/index.js"}`)

	pkg, ok := parsePackageJSON(root)
	if !ok {
		t.Fatal("expected package.json to parse")
	}
	candidates := packageEntryCandidates(root, pkg)
	found := false
	for _, c := range candidates {
		if c.Path == filepath.Join(root, "src/index.js") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected main entry candidate, got %+v", candidates)
	}
}

func TestPackageJSONBuildDirRemapsToSrc(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "package.json", `{"name":"pkg","main":"dist/index.js"}`)
	writeProbeFile(t, root, "src/index.ts", "export {}")
	writeProbeFile(t, root, "src/helper.ts", "export {}")

	pkg, _ := parsePackageJSON(root)
	candidates := packageEntryCandidates(root, pkg)

	sawSrcIndex := false
	sawSrcHelper := false
	for _, c := range candidates {
		if c.Path == filepath.Join(root, "src/index.ts") {
			sawSrcIndex = true
		}
		if c.Path == filepath.Join(root, "src/helper.ts") {
			sawSrcHelper = true
		}
	}
	if !sawSrcIndex || !sawSrcHelper {
		t.Errorf("expected dist main to pull in every src/* file, got %+v", candidates)
	}
}

func TestProbeTSConfigAliases(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "tsconfig.json", `{
		"compilerOptions": { "baseUrl": ".", "paths": { "@app/*": ["src/*"] } }
	}`)

	aliases, _ := probeTSConfig(root)
	if aliases.BaseURL != "." {
		t.Errorf("expected baseUrl '.', got %q", aliases.BaseURL)
	}
	if targets, ok := aliases.Paths["@app/*"]; !ok || len(targets) != 1 || targets[0] != "src/*" {
		t.Errorf("expected @app/* -> [src/*], got %+v", aliases.Paths)
	}
}

func TestProbeTSConfigExtends(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "base.json", `{"compilerOptions": {"baseUrl": "."}}`)
	writeProbeFile(t, root, "tsconfig.json", `{
		"extends": "./base.json",
		"compilerOptions": { "paths": { "@app/*": ["src/*"] } }
	}`)

	aliases, _ := probeTSConfig(root)
	if aliases.BaseURL != "." {
		t.Errorf("expected inherited baseUrl '.', got %q", aliases.BaseURL)
	}
	if _, ok := aliases.Paths["@app/*"]; !ok {
		t.Errorf("expected child paths to merge in, got %+v", aliases.Paths)
	}
}

func TestStripJSONLineCommentsPreservesStrings(t *testing.T) {
	src := []byte(`{"a": "http://example.com", "b": 1 // trailing comment
}`)
	stripped := stripJSONLineComments(src)
	if !bytes.Contains(stripped, []byte(`"http://example.com"`)) {
		t.Errorf("expected URL inside string literal to survive, got %s", stripped)
	}
	if bytes.Contains(stripped, []byte("trailing comment")) {
		t.Errorf("expected line comment to be stripped, got %s", stripped)
	}
}

func TestProbeGoModule(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "go.mod", "module github.com/example/proj\n\ngo 1.24\n")

	modulePath := probeGoModule(root)
	if modulePath != "github.com/example/proj" {
		t.Errorf("probeGoModule = %q, want github.com/example/proj", modulePath)
	}
}

func TestRunProbesRootPackageJSONWithoutWorkspaces(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "package.json", `{"name":"demo","main":"src/index.js"}`)
	writeProbeFile(t, root, "src/index.js", "module.exports = {}\n")

	result := Run(root, nil)

	found := false
	for _, c := range result.Entries {
		if c.Path == "src/index.js" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected root package.json main entry as a relative path, got %+v", result.Entries)
	}
}

func TestRunRelativizesAllPaths(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "package.json", `{"name":"root","workspaces":["packages/*"]}`)
	writeProbeFile(t, root, "packages/ui/package.json", `{"name":"@w/ui","main":"src/index.ts"}`)
	writeProbeFile(t, root, "packages/ui/src/index.ts", "export {}")
	writeProbeFile(t, root, "tsconfig.json", `{
		"compilerOptions": { "baseUrl": ".", "paths": { "@app/*": ["src/*"] } }
	}`)

	result := Run(root, nil)

	for _, c := range result.Entries {
		if filepath.IsAbs(c.Path) {
			t.Errorf("expected relative entry path, got %q", c.Path)
		}
	}
	for _, w := range result.Workspaces {
		if filepath.IsAbs(w.Dir) || w.Dir != "packages/ui" {
			t.Errorf("expected workspace dir 'packages/ui', got %q", w.Dir)
		}
	}
	for dir := range result.PathAliases {
		if filepath.IsAbs(dir) {
			t.Errorf("expected relative alias dir, got %q", dir)
		}
	}
	if _, ok := result.PathAliases[""]; !ok {
		t.Errorf("expected root tsconfig aliases keyed by empty string, got %+v", result.PathAliases)
	}
}

func TestProbeWorkspacesNpm(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "package.json", `{"name":"root","workspaces":["packages/*"]}`)
	writeProbeFile(t, root, "packages/ui/package.json", `{"name":"@w/ui","main":"src/index.ts"}`)

	pkgs, entries := probeWorkspaces(root, nil)
	_ = entries
	found := false
	for _, p := range pkgs {
		if p.Name == "@w/ui" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected @w/ui workspace package discovered, got %+v", pkgs)
	}
}

func TestProbeDotNetProjectGraphFollowsAppProject(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "App/App.csproj", `<Project><ItemGroup><ProjectReference Include="..\Lib\Lib.csproj" /></ItemGroup></Project>`)
	writeProbeFile(t, root, "App/Program.cs", "class Program { static void Main() {} }")
	writeProbeFile(t, root, "Lib/Lib.csproj", `<Project></Project>`)
	writeProbeFile(t, root, "Lib/Widget.cs", "class Widget {}")
	writeProbeFile(t, root, "Orphan/Orphan.csproj", `<Project></Project>`)
	writeProbeFile(t, root, "Orphan/Stray.cs", "class Stray {}")

	candidates := probeDotNetProjectGraph(root)
	var paths []string
	for _, c := range candidates {
		paths = append(paths, c.Path)
	}

	wantLive := []string{filepath.Join(root, "App/Program.cs"), filepath.Join(root, "Lib/Widget.cs")}
	for _, w := range wantLive {
		found := false
		for _, p := range paths {
			if p == w {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s reachable from app project, got %+v", w, paths)
		}
	}
	for _, p := range paths {
		if p == filepath.Join(root, "Orphan/Stray.cs") {
			t.Errorf("did not expect orphan project file reached, got %+v", paths)
		}
	}
}

func TestProbeDotNetProjectGraphNoAppProjectTreatsAllLive(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "Lib/Lib.csproj", `<Project></Project>`)
	writeProbeFile(t, root, "Lib/Widget.cs", "class Widget {}")

	candidates := probeDotNetProjectGraph(root)
	found := false
	for _, c := range candidates {
		if c.Path == filepath.Join(root, "Lib/Widget.cs") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected every .cs file live when no app project exists, got %+v", candidates)
	}
}

func TestProbeBazelExpandsPackageToFiles(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "WORKSPACE", "")
	writeProbeFile(t, root, "pkg/BUILD", `go_library(name = "pkg")`)
	writeProbeFile(t, root, "pkg/lib.go", "package pkg")

	candidates := probeBazel(root)
	found := false
	for _, c := range candidates {
		if c.Path == filepath.Join(root, "pkg/lib.go") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected bazel BUILD package expanded to its files, got %+v", candidates)
	}
}

func TestProbeCargoWorkspaceEmitsCrateRoots(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "Cargo.toml", "[workspace]\nmembers = [\"crates/foo\"]\n")
	writeProbeFile(t, root, "crates/foo/src/main.rs", "fn main() {}")

	candidates := probeCargoWorkspace(root)
	found := false
	for _, c := range candidates {
		if c.Path == filepath.Join(root, "crates/foo/src/main.rs") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected cargo workspace member crate root, got %+v", candidates)
	}
}

func TestIsAbandonedPackageSuppressesOrphanWorkspaceMember(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "package.json", `{"name":"root","workspaces":["packages/*"]}`)
	writeProbeFile(t, root, "packages/ui/package.json", `{"name":"@w/ui","main":"src/index.ts"}`)
	writeProbeFile(t, root, "packages/app/package.json", `{"name":"@w/app","main":"src/index.ts","dependencies":{"@w/ui":"*"}}`)
	writeProbeFile(t, root, "packages/orphan/package.json", `{"name":"@w/orphan","main":"src/index.ts"}`)

	_, entries := probeWorkspaces(root, nil)
	for _, e := range entries {
		if filepath.Dir(e.Path) == filepath.Join(root, "packages/orphan") {
			t.Errorf("expected abandoned package @w/orphan suppressed, got %+v", entries)
		}
	}

	foundUI := false
	for _, e := range entries {
		if e.Path == filepath.Join(root, "packages/ui/src/index.ts") {
			foundUI = true
		}
	}
	if !foundUI {
		t.Errorf("expected depended-on package @w/ui kept, got %+v", entries)
	}
}

func TestDynamicPackageFieldEntriesWalksRecursively(t *testing.T) {
	raw := []byte(`{"plugins": {"auth": {"credentials": "./dist/authCreds.js"}}}`)
	candidates := dynamicPackageFieldEntries("/proj", raw, []string{"plugins", "credentials"})
	found := false
	for _, c := range candidates {
		if c.Path == filepath.Join("/proj", "src/authCreds") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected nested dynamic field value mapped to src-equivalent, got %+v", candidates)
	}
}

func TestProbeGruntGulpExpandsConcatSources(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "Gruntfile.js", `module.exports = function(grunt) {
		grunt.initConfig({
			concat: { dist: { src: ['js/a.js', 'js/b.js'], dest: 'build/out.js' } }
		});
	};`)
	writeProbeFile(t, root, "js/a.js", "")
	writeProbeFile(t, root, "js/b.js", "")

	candidates := probeGruntGulp(root)
	seen := map[string]bool{}
	for _, c := range candidates {
		seen[c.Path] = true
	}
	if !seen[filepath.Join(root, "js/a.js")] || !seen[filepath.Join(root, "js/b.js")] {
		t.Errorf("expected concat sources glob-expanded, got %+v", candidates)
	}
}

func TestProbeDenoWorkspaceEmitsMemberRootsAndExports(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "deno.json", `{"workspace": ["pkgs/core"]}`)
	writeProbeFile(t, root, "pkgs/core/mod.ts", "export {}")
	writeProbeFile(t, root, "pkgs/core/deno.json", `{"exports": "./mod.ts"}`)

	candidates := probeDenoWorkspace(root)
	found := false
	for _, c := range candidates {
		if c.Path == filepath.Join(root, "pkgs/core/mod.ts") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected deno workspace member mod.ts, got %+v", candidates)
	}
}

func TestProbeViteAliasTargets(t *testing.T) {
	root := t.TempDir()
	writeProbeFile(t, root, "vite.config.ts", `import { defineConfig } from 'vite'
export default defineConfig({
	resolve: {
		alias: {
			'@shim': './shims/browser.ts'
		}
	}
})`)
	writeProbeFile(t, root, "shims/browser.ts", "export {}")

	candidates := probeViteAliasTargets(root)
	found := false
	for _, c := range candidates {
		if c.Path == filepath.Join(root, "shims/browser.ts") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected vite alias replacement target, got %+v", candidates)
	}
}
