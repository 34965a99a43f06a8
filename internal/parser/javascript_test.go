package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"js-translator/internal/event"
	"js-translator/internal/jsfilter"
	"js-translator/internal/subfilter"
)

func newParser(t *testing.T, p jsfilter.Parameters) *JSParser {
	t.Helper()
	f, err := subfilter.NewFilter(p)
	require.NoError(t, err)
	return NewJSParser(f)
}

func TestCanParse(t *testing.T) {
	p := newParser(t, jsfilter.DefaultParameters())
	assert.True(t, p.CanParse(".js"))
	assert.True(t, p.CanParse(".json"))
	assert.False(t, p.CanParse(".lua"))
}

func TestParseAndReconstruct(t *testing.T) {
	params := jsfilter.DefaultParameters()
	params.NoteRules = "comment"
	params.IDRules = "id"
	p := newParser(t, params)

	src := "{\n  \"id\": \"greeting\",\n  \"comment\": \"shown on start\",\n  \"text\": \"Hello\",\n  \"count\": 2\n}\n"
	path := filepath.Join(t.TempDir(), "strings.json")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	result, err := p.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "json", result.FileType)
	require.Len(t, result.Texts, 1)

	et := result.Texts[0]
	assert.Equal(t, "tu1", et.ID)
	assert.Equal(t, "Hello", et.Text)
	assert.Equal(t, "greeting", et.Name)
	assert.Equal(t, []string{"shown on start"}, et.Notes)
	assert.Equal(t, jsfilter.MimeType, et.Context["mime"])

	out, err := p.Reconstruct(result, nil)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))

	out, err = p.Reconstruct(result, map[string]string{"Hello": "Hallo"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"text": "Hallo"`)
}

func TestParseSourceRecordsSubDocuments(t *testing.T) {
	params := jsfilter.DefaultParameters()
	params.Subfilter = "properties"
	params.SubfilterRules = "props"
	p := newParser(t, params)

	result, err := p.ParseSource(context.Background(), "app.js",
		`var cfg = {"props": "title=Hi\nbody=There", "plain": "x"};`)
	require.NoError(t, err)
	assert.Equal(t, "js", result.FileType)
	require.Len(t, result.Texts, 3)

	assert.Equal(t, "title", result.Texts[0].Name)
	assert.Equal(t, "sf1", result.Texts[0].Context["subdocument"])
	assert.Equal(t, "props", result.Texts[0].Context["parent_key"])
	assert.Equal(t, "plain", result.Texts[2].Name)
	assert.Empty(t, result.Texts[2].Context["subdocument"])
}

func TestParseErrors(t *testing.T) {
	p := newParser(t, jsfilter.DefaultParameters())
	_, err := p.ParseSource(context.Background(), "bad.json", `{"a": [}`)
	assert.ErrorIs(t, err, jsfilter.ErrUnbalanced)

	_, err = p.Parse(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReconstructKeepsCodes(t *testing.T) {
	params := jsfilter.DefaultParameters()
	params.UseCodeFinder = true
	p := newParser(t, params)

	result, err := p.ParseSource(context.Background(), "a.json", `{"k": "<b>Bold<\/b> \"text\""}`)
	require.NoError(t, err)
	require.Len(t, result.Texts, 1)
	assert.Equal(t, `<b>Bold<\/b> "text"`, result.Texts[0].Text)

	out, err := p.Reconstruct(result, map[string]string{`<b>Bold<\/b> "text"`: `<b>Fett<\/b> "Text"`})
	require.NoError(t, err)
	assert.Equal(t, `{"k": "<b>Fett<\/b> \"Text\""}`, string(out))
}

func TestReconstructFunc(t *testing.T) {
	p := newParser(t, jsfilter.DefaultParameters())
	result, err := p.ParseSource(context.Background(), "a.js", `x = {'a': 'one', 'b': 'two'};`)
	require.NoError(t, err)

	out, err := p.ReconstructFunc(result, func(u *event.TextUnit) (string, bool) {
		if u.Name != "b" {
			return "", false
		}
		return "it's", true
	})
	require.NoError(t, err)
	assert.Equal(t, `x = {'a': 'one', 'b': 'it\'s'};`, string(out))
}
