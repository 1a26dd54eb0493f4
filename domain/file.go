package domain

import "time"

// Language is the closed enum of language families this engine understands.
// spec.md §4.1 assigns every discovered file one of these tags by extension.
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguagePython     Language = "python"
	LanguageJava       Language = "java"
	LanguageKotlin     Language = "kotlin"
	LanguageCSharp     Language = "csharp"
	LanguageGo         Language = "go"
	LanguageRust       Language = "rust"
	LanguageCSS        Language = "css"
	LanguageAsset      Language = "asset"
	LanguageOther      Language = "other"
)

// File is a single discovered source file.
type File struct {
	Path         string    `json:"path"` // project-relative, slash-separated
	Size         int64     `json:"size"`
	Lines        int       `json:"lines"`
	Language     Language  `json:"language"`
	ModifiedTime time.Time `json:"modified_time"`
}

// SourceLocation identifies a span within a file's source text.
type SourceLocation struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col,omitempty"`
	EndLine   int `json:"end_line,omitempty"`
	EndCol    int `json:"end_col,omitempty"`
}
