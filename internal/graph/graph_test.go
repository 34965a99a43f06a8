package graph

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"js-translator/internal/jsfilter"
	"js-translator/internal/parser"
	"js-translator/internal/subfilter"
)

func parse(t *testing.T, p jsfilter.Parameters, src string) *parser.ParseResult {
	t.Helper()
	f, err := subfilter.NewFilter(p)
	require.NoError(t, err)
	result, err := parser.NewJSParser(f).ParseSource(context.Background(), "app/strings.json", src)
	require.NoError(t, err)
	return result
}

func TestDocumentStatements(t *testing.T) {
	p := jsfilter.DefaultParameters()
	p.NoteRules = "desc"
	p.GenericMetaRules = "max"
	result := parse(t, p, `{"a": {"desc": "Shown on the button", "max": "12", "text": "OK"}, "b": "Cancel"}`)

	stmts := DocumentStatements(result)
	require.Len(t, stmts, 3)

	assert.Equal(t, mergeDocumentCypher, stmts[0].Cypher)
	assert.Equal(t, "json", stmts[0].Params["type"])

	assert.Equal(t, mergeUnitCypher, stmts[1].Cypher)
	assert.Equal(t, "OK", stmts[1].Params["source"])
	assert.Equal(t, rootID, stmts[1].Params["parent"])
	assert.Equal(t, []string{"Shown on the button"}, stmts[1].Params["notes"])
	assert.Equal(t, []string{"max"}, stmts[1].Params["metaNames"])
	assert.Equal(t, []string{"12"}, stmts[1].Params["metaValues"])

	assert.Equal(t, "Cancel", stmts[2].Params["source"])
	assert.Equal(t, []string{}, stmts[2].Params["notes"])
	assert.Equal(t, []string{}, stmts[2].Params["metaNames"])
}

func TestDocumentStatementsSubDocument(t *testing.T) {
	p := jsfilter.DefaultParameters()
	p.Subfilter = "text"
	p.SubfilterRules = "help"
	result := parse(t, p, `{"help": "line one\nline two", "title": "Help"}`)

	stmts := DocumentStatements(result)
	require.Len(t, stmts, 5)

	sub := stmts[1]
	assert.Equal(t, mergeSubDocumentCypher, sub.Cypher)
	assert.Equal(t, "sf1", sub.Params["id"])
	assert.Equal(t, "help", sub.Params["key"])

	assert.Equal(t, "sf1", stmts[2].Params["parent"])
	assert.Equal(t, "line one", stmts[2].Params["source"])
	assert.Equal(t, "sf1", stmts[3].Params["parent"])
	assert.Equal(t, rootID, stmts[4].Params["parent"])
	assert.Equal(t, "Help", stmts[4].Params["source"])
}

func TestUnitFromRecord(t *testing.T) {
	record := &neo4j.Record{
		Keys:   []string{"file", "id", "name", "source", "sub", "notes"},
		Values: []any{"a.json", "tu1", "menu.open", "Open", "", []any{"verb"}},
	}
	assert.Equal(t, UnitResult{
		File:   "a.json",
		ID:     "tu1",
		Name:   "menu.open",
		Source: "Open",
		Notes:  []string{"verb"},
	}, unitFromRecord(record))
}
