// Package export writes extracted strings as TSV or JSON for translators.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"js-translator/internal/parser"
)

// Row is one exported string.
type Row struct {
	File   string   `json:"file"`
	ID     string   `json:"id"`
	Name   string   `json:"name,omitempty"`
	Source string   `json:"source"`
	Target string   `json:"target,omitempty"`
	Notes  []string `json:"notes,omitempty"`
}

// Rows converts parse results into rows, filling targets from translations
// keyed by source text.
func Rows(results []*parser.ParseResult, translations map[string]string) []Row {
	var rows []Row
	for _, r := range results {
		for _, et := range r.Texts {
			rows = append(rows, Row{
				File:   r.FilePath,
				ID:     et.ID,
				Name:   et.Name,
				Source: et.Text,
				Target: translations[et.Text],
				Notes:  et.Notes,
			})
		}
	}
	return rows
}

// WriteTSV writes rows with a header line.
func WriteTSV(w io.Writer, rows []Row) error {
	if _, err := fmt.Fprintln(w, "file\tid\tname\tsource\ttarget\tnotes"); err != nil {
		return fmt.Errorf("write TSV header: %w", err)
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			EscapeTSV(r.File),
			r.ID,
			EscapeTSV(r.Name),
			EscapeTSV(r.Source),
			EscapeTSV(r.Target),
			EscapeTSV(strings.Join(r.Notes, " | ")),
		)
		if err != nil {
			return fmt.Errorf("write TSV row: %w", err)
		}
	}
	return nil
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// EscapeTSV replaces tabs and newlines in a string for TSV safety.
func EscapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
