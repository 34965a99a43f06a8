package parser

import "context"

// ExtractedText is a translatable string extracted from a source file.
type ExtractedText struct {
	// ID is the text unit id, stable for a given file and configuration.
	ID string
	// Text is the decoded source string with inline markup restored.
	Text string
	// Name is the key path, or the value of a matching id rule.
	Name string
	// File is the source file path.
	File string
	// Notes are the translator notes collected for the string.
	Notes []string
	// Metadata holds generic metadata keyed by the path it came from.
	Metadata map[string]string
	// Context holds additional context (mime type, sub-document, parent key).
	Context map[string]string
}

// Parser is the interface for all file format parsers.
type Parser interface {
	// CanParse returns true if this parser handles the given file extension.
	CanParse(ext string) bool
	// Parse extracts translatable strings from a file.
	Parse(ctx context.Context, filePath string) (*ParseResult, error)
	// Reconstruct rebuilds the file with translated strings, keyed by
	// source text.
	Reconstruct(result *ParseResult, translations map[string]string) ([]byte, error)
}
