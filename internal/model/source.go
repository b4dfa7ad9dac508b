// Package model defines the data structures for the commenting pipeline.
package model

// Path represents a file system path.
type Path string

// LanguageID identifies a supported programming language.
type LanguageID string

// LanguageProfile describes how comments are written in a language.
// BlockStart/BlockEnd are empty for languages without block comments.
type LanguageProfile struct {
	ID          LanguageID
	Name        string // human-readable name, used in prompts
	Extensions  []string
	LineComment string
	BlockStart  string
	BlockEnd    string
}

// Source represents a source file queued for commenting. It is immutable
// after discovery reads it.
type Source struct {
	Origin   Path
	Language LanguageProfile
	Raw      []byte
	Size     int64
}
