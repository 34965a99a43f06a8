package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"js-translator/internal/parser"
)

func sample() []Row {
	results := []*parser.ParseResult{{
		FilePath: "a.json",
		Texts: []parser.ExtractedText{
			{ID: "tu1", Name: "title", Text: "Two\nlines", Notes: []string{"n1", "n2"}},
			{ID: "tu2", Text: "<b>x</b>"},
		},
	}}
	return Rows(results, map[string]string{"<b>x</b>": "<b>y</b>"})
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, sample()))

	want := "file\tid\tname\tsource\ttarget\tnotes\n" +
		"a.json\ttu1\ttitle\tTwo\\nlines\t\tn1 | n2\n" +
		"a.json\ttu2\t\t<b>x</b>\t<b>y</b>\t\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample()))
	assert.Contains(t, buf.String(), `"source": "<b>x</b>"`)
	assert.Contains(t, buf.String(), `"target": "<b>y</b>"`)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestEscapeTSV(t *testing.T) {
	assert.Equal(t, `a\tb\\n\r`, EscapeTSV("a\tb\\n\r"))
}
