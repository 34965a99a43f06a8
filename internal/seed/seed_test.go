package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"js-translator/internal/jsfilter"
	"js-translator/internal/parser"
	"js-translator/internal/textutil"
)

func parseSource(t *testing.T, src string) *parser.ParseResult {
	t.Helper()
	f, err := jsfilter.New(jsfilter.DefaultParameters())
	require.NoError(t, err)
	result, err := parser.NewJSParser(f).ParseSource(context.Background(), "locales/menu.json", src)
	require.NoError(t, err)
	return result
}

func TestMatchPairs(t *testing.T) {
	src := parseSource(t, `{"menu": {"open": "Open", "close": "Close"}, "error": "Failed", "same": "OK"}`)
	dst := parseSource(t, `{"menu": {"open": "Öffnen", "close": "Schließen"}, "error": "Fehler", "same": "OK"}`)

	entries := MatchPairs(src, dst)
	require.Len(t, entries, 3)

	assert.Equal(t, SeedEntry{
		SourceText:     "Open",
		TranslatedText: "Öffnen",
		File:           "locales/menu.json",
		Key:            "open",
		EntityType:     "ui",
		Hash:           textutil.Hash("Open"),
	}, entries[0])
	assert.Equal(t, "Schließen", entries[1].TranslatedText)
	assert.Equal(t, "error", entries[2].EntityType)
}

func TestMatchPairsSkipsMissingKeys(t *testing.T) {
	src := parseSource(t, `{"a": "One", "b": "Two"}`)
	dst := parseSource(t, `{"a": "Eins"}`)

	entries := MatchPairs(src, dst)
	require.Len(t, entries, 1)
	assert.Equal(t, "Eins", entries[0].TranslatedText)
}

func TestDetectEntityType(t *testing.T) {
	tests := []struct {
		file, key, want string
	}{
		{"strings.json", "save_button", "ui"},
		{"errors.js", "notFound", "error"},
		{"dialogs.json", "x", "dialog"},
		{"strings.json", "x", "general"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectEntityType(tt.file, tt.key), tt.file+" "+tt.key)
	}
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTSV(&buf, []SeedEntry{{SourceText: "a\tb", TranslatedText: "c", File: "f.json", Key: "k", EntityType: "ui"}})
	require.NoError(t, err)
	assert.Equal(t, "source_text\ttranslated_text\tfile\tkey\tentity_type\na\\tb\tc\tf.json\tk\tui\n", buf.String())
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))

	var out []SeedEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Empty(t, out)
}

func TestBuildTranslationMap(t *testing.T) {
	m := BuildTranslationMap([]SeedEntry{{SourceText: "Open", TranslatedText: "Öffnen"}})
	assert.Equal(t, map[string]string{"Open": "Öffnen"}, m)
}

func TestSeedParams(t *testing.T) {
	p := seedParams(SeedEntry{Hash: "h", SourceText: "s", TranslatedText: "t", Key: "k"})
	assert.Equal(t, "h", p["hash"])
	assert.Equal(t, "k", p["key"])
}
