package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"js-translator/internal/event"
	"js-translator/internal/jsfilter"
	"js-translator/internal/skeleton"
	"js-translator/internal/translation"
)

// ParseResult holds parsing output for a single file.
type ParseResult struct {
	// FilePath is the path of the parsed file.
	FilePath string
	// FileType is the detected type (js, json).
	FileType string
	// Texts are the extracted translatable strings in document order.
	Texts []ExtractedText
	// Events preserve the document for reconstruction.
	Events []event.Event
}

// JSParser extracts strings from JavaScript and JSON files.
type JSParser struct {
	filter *jsfilter.Filter
}

func NewJSParser(f *jsfilter.Filter) *JSParser { return &JSParser{filter: f} }

func (p *JSParser) CanParse(ext string) bool {
	return ext == ".js" || ext == ".json"
}

func (p *JSParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read js file: %w", err)
	}
	return p.ParseSource(ctx, filePath, string(data))
}

// ParseSource parses src as if it had been read from filePath.
func (p *JSParser) ParseSource(ctx context.Context, filePath, src string) (*ParseResult, error) {
	events, err := p.filter.Extract(ctx, filePath, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}

	result := &ParseResult{
		FilePath: filePath,
		FileType: strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), "."),
		Events:   events,
	}

	var subDocs []*event.Document
	for _, ev := range events {
		switch ev.Type {
		case event.StartSubDocument:
			subDocs = append(subDocs, ev.Document)
		case event.EndSubDocument:
			subDocs = subDocs[:len(subDocs)-1]
		case event.TextUnitEvent:
			result.Texts = append(result.Texts, extractedText(filePath, ev.Unit, subDocs))
		}
	}

	log.Debug().Str("file", filePath).Int("texts", len(result.Texts)).Msg("Parsed file")
	return result, nil
}

func extractedText(filePath string, u *event.TextUnit, subDocs []*event.Document) ExtractedText {
	ctx := map[string]string{
		"file": filePath,
		"mime": u.MimeType,
	}
	if n := len(subDocs); n > 0 {
		ctx["subdocument"] = subDocs[n-1].ID
		ctx["parent_key"] = subDocs[n-1].ParentName
	}

	var meta map[string]string
	if len(u.Metadata) > 0 {
		meta = make(map[string]string, len(u.Metadata))
		for _, m := range u.Metadata {
			meta[m.Name] = m.Value
		}
	}

	return ExtractedText{
		ID:       u.ID,
		Text:     u.Source.Plain(),
		Name:     u.Name,
		File:     filePath,
		Notes:    u.NoteTexts(),
		Metadata: meta,
		Context:  ctx,
	}
}

func (p *JSParser) Reconstruct(result *ParseResult, translations map[string]string) ([]byte, error) {
	return p.ReconstructFunc(result, translation.FromMap(translations))
}

// ReconstructFunc rebuilds the file with targets supplied per text unit.
func (p *JSParser) ReconstructFunc(result *ParseResult, fn skeleton.TargetFunc) ([]byte, error) {
	out, err := skeleton.Render(result.Events, p.filter.Encoder(), skeleton.WithTargets(fn))
	if err != nil {
		return nil, fmt.Errorf("reconstruct %s: %w", result.FilePath, err)
	}
	return []byte(out), nil
}
