package configprobe

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// probeNextJS detects a Next.js project and enumerates its page/app-router
// conventions (spec.md §4.3).
func probeNextJS(root string) []EntryCandidate {
	pkg, hasPkg := parsePackageJSON(root)
	hasConfig := len(globAll(root, "next.config.js", "next.config.mjs", "next.config.ts")) > 0
	hasDep := hasPkg && (pkg.Dependencies["next"] != "" || pkg.DevDependencies["next"] != "")
	if !hasConfig && !hasDep {
		return nil
	}

	var out []EntryCandidate
	for _, dir := range []string{"pages", "src/pages", "app", "src/app"} {
		base := filepath.Join(root, dir)
		isAppRouter := strings.HasSuffix(dir, "app")
		for _, f := range globAll(base, "**/*") {
			name := filepath.Base(f)
			if isAppRouter {
				if isNextAppRouterFile(name) || strings.Contains(filepath.ToSlash(f), "/api/") {
					out = append(out, EntryCandidate{Path: f, Reason: "next.js app router convention", Source: "convention"})
				}
				continue
			}
			out = append(out, EntryCandidate{Path: f, Reason: "next.js pages router convention", Source: "convention"})
		}
	}
	return out
}

func isNextAppRouterFile(name string) bool {
	for _, conv := range []string{"page", "layout", "route", "loading", "error", "not-found", "template"} {
		for _, ext := range []string{".js", ".ts", ".jsx", ".tsx"} {
			if name == conv+ext {
				return true
			}
		}
	}
	return false
}

// probeTestRunners emits the conventional Cypress spec globs plus
// cypress/support files when a cypress.config.{js,ts} exists, and the
// conventional Jest spec globs when a jest.config.{js,ts,mjs} exists
// (spec.md §4.3). The config files' contents are not read, so custom
// spec patterns and setup files named in them are not picked up.
func probeTestRunners(root string) []EntryCandidate {
	var out []EntryCandidate

	cypressDefault := []string{"cypress/e2e/**/*.cy.js", "cypress/e2e/**/*.cy.ts", "cypress/e2e/**/*.cy.jsx", "cypress/e2e/**/*.cy.tsx"}
	jestDefault := []string{"**/*.test.js", "**/*.test.ts", "**/*.spec.js", "**/*.spec.ts"}

	foundCypressConfig := len(globAll(root, "cypress.config.js", "cypress.config.ts")) > 0
	if foundCypressConfig {
		for _, f := range globAll(root, cypressDefault...) {
			out = append(out, EntryCandidate{Path: f, Reason: "cypress spec (default glob)", Source: "convention"})
		}
		for _, f := range globAll(root, "cypress/support/*.js", "cypress/support/*.ts") {
			out = append(out, EntryCandidate{Path: f, Reason: "cypress support file", Source: "convention"})
		}
	}

	foundJestConfig := len(globAll(root, "jest.config.js", "jest.config.ts", "jest.config.mjs")) > 0
	if foundJestConfig {
		for _, f := range globAll(root, jestDefault...) {
			out = append(out, EntryCandidate{Path: f, Reason: "jest spec (default glob)", Source: "convention"})
		}
	}
	return out
}

// probeNxAngular reads Nx project.json (application projects only) and
// angular.json build targets (spec.md §4.3).
func probeNxAngular(root string) []EntryCandidate {
	var out []EntryCandidate

	for _, f := range globAll(root, "**/project.json") {
		b, ok := readFileOrEmpty(f)
		if !ok {
			continue
		}
		var proj struct {
			ProjectType string `json:"projectType"`
			Targets     map[string]struct {
				Options struct {
					Main    string `json:"main"`
					Browser string `json:"browser"`
					Server  string `json:"server"`
				} `json:"options"`
			} `json:"targets"`
		}
		if err := json.Unmarshal(b, &proj); err != nil || proj.ProjectType != "application" {
			continue
		}
		dir := filepath.Dir(f)
		for name, target := range proj.Targets {
			if target.Options.Main != "" {
				out = append(out, EntryCandidate{Path: filepath.Join(dir, target.Options.Main), Reason: "nx " + name + ".options.main", Source: "buildSystem"})
			}
			if target.Options.Browser != "" {
				out = append(out, EntryCandidate{Path: filepath.Join(dir, target.Options.Browser), Reason: "nx " + name + ".options.browser", Source: "buildSystem"})
			}
			if target.Options.Server != "" {
				out = append(out, EntryCandidate{Path: filepath.Join(dir, target.Options.Server), Reason: "nx " + name + ".options.server", Source: "buildSystem"})
			}
		}
	}

	if b, ok := readFileOrEmpty(filepath.Join(root, "angular.json")); ok {
		var ng struct {
			Projects map[string]struct {
				Architect map[string]struct {
					Options struct {
						Main             string            `json:"main"`
						FileReplacements []json.RawMessage `json:"fileReplacements"`
					} `json:"options"`
				} `json:"architect"`
			} `json:"projects"`
		}
		if err := json.Unmarshal(b, &ng); err == nil {
			for pname, proj := range ng.Projects {
				for tname, target := range proj.Architect {
					if target.Options.Main != "" {
						out = append(out, EntryCandidate{Path: filepath.Join(root, target.Options.Main), Reason: "angular " + pname + "." + tname + ".main", Source: "buildSystem"})
					}
				}
			}
		}
	}
	return out
}
