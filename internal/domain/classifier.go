// Package domain implements the comment-generation pipeline.
package domain

import (
	"path/filepath"
	"sort"
	"strings"

	m "github.com/glossdev/gloss/internal/model"
)

// languages is the static table of supported languages with their comment
// syntax. Ruby's =begin/=end form is deliberately omitted: it is rarely
// produced by models and is only valid at column zero, so only the line
// form is matched.
var languages = []m.LanguageProfile{
	{ID: "python", Name: "Python", Extensions: []string{".py"}, LineComment: "#"},
	{ID: "javascript", Name: "JavaScript", Extensions: []string{".js", ".jsx"}, LineComment: "//", BlockStart: "/*", BlockEnd: "*/"},
	{ID: "typescript", Name: "TypeScript", Extensions: []string{".ts", ".tsx"}, LineComment: "//", BlockStart: "/*", BlockEnd: "*/"},
	{ID: "java", Name: "Java", Extensions: []string{".java"}, LineComment: "//", BlockStart: "/*", BlockEnd: "*/"},
	{ID: "cpp", Name: "C++", Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh"}, LineComment: "//", BlockStart: "/*", BlockEnd: "*/"},
	{ID: "c", Name: "C", Extensions: []string{".c", ".h"}, LineComment: "//", BlockStart: "/*", BlockEnd: "*/"},
	{ID: "csharp", Name: "C#", Extensions: []string{".cs"}, LineComment: "//", BlockStart: "/*", BlockEnd: "*/"},
	{ID: "go", Name: "Go", Extensions: []string{".go"}, LineComment: "//", BlockStart: "/*", BlockEnd: "*/"},
	{ID: "ruby", Name: "Ruby", Extensions: []string{".rb"}, LineComment: "#"},
	{ID: "php", Name: "PHP", Extensions: []string{".php"}, LineComment: "//", BlockStart: "/*", BlockEnd: "*/"},
	{ID: "swift", Name: "Swift", Extensions: []string{".swift"}, LineComment: "//", BlockStart: "/*", BlockEnd: "*/"},
	{ID: "kotlin", Name: "Kotlin", Extensions: []string{".kt", ".kts"}, LineComment: "//", BlockStart: "/*", BlockEnd: "*/"},
	{ID: "rust", Name: "Rust", Extensions: []string{".rs"}, LineComment: "//", BlockStart: "/*", BlockEnd: "*/"},
	{ID: "shell", Name: "Shell", Extensions: []string{".sh", ".bash"}, LineComment: "#"},
}

// Classifier maps file extensions to language profiles.
type Classifier struct {
	byExt map[string]m.LanguageProfile
}

// NewClassifier builds the extension lookup from the static table.
func NewClassifier() *Classifier {
	byExt := make(map[string]m.LanguageProfile)

	for _, lang := range languages {
		for _, ext := range lang.Extensions {
			byExt[ext] = lang
		}
	}

	return &Classifier{byExt: byExt}
}

// Classify looks up the language profile for path by extension. The second
// return value is false for unsupported extensions; callers skip such files
// rather than failing.
func (c *Classifier) Classify(path m.Path) (m.LanguageProfile, bool) {
	ext := strings.ToLower(filepath.Ext(string(path)))

	profile, ok := c.byExt[ext]

	return profile, ok
}

// Profiles returns the full language table sorted by ID.
func (c *Classifier) Profiles() []m.LanguageProfile {
	out := make([]m.LanguageProfile, len(languages))
	copy(out, languages)

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}
