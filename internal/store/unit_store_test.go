package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"js-translator/internal/parser"
	"js-translator/internal/textutil"
)

func sampleResult() *parser.ParseResult {
	return &parser.ParseResult{
		FilePath: "app/strings.json",
		FileType: "json",
		Texts: []parser.ExtractedText{
			{ID: "tu1", Text: "Hello", Name: "greeting", Notes: []string{"start screen"}},
			{ID: "sf1_tu1", Text: "Line", Metadata: map[string]string{"kind": "help"},
				Context: map[string]string{"subdocument": "sf1"}},
		},
	}
}

func TestMigrate(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, Migrate(context.Background(), db))
	assert.Len(t, db.execs, len(schema))
	assert.Contains(t, db.execs[1], "text_units")
}

func TestUnitsFromResult(t *testing.T) {
	units := UnitsFromResult(sampleResult())
	require.Len(t, units, 2)

	assert.Equal(t, "greeting", units[0].Name)
	assert.Equal(t, textutil.Hash("Hello"), units[0].Hash)
	assert.Equal(t, map[string]string{}, units[0].Metadata)
	assert.Equal(t, []string{}, units[1].Notes)
	assert.Equal(t, "sf1", units[1].SubDocument)
}

func TestSaveResultBatchesReplacement(t *testing.T) {
	db := &fakeDB{}
	n, err := NewUnitStore(db).SaveResult(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, db.batches, 1)
	queued := db.batches[0].QueuedQueries
	require.Len(t, queued, 3)
	assert.Contains(t, queued[0].SQL, "DELETE FROM text_units")
	assert.Equal(t, []any{"app/strings.json"}, queued[0].Arguments)
	assert.Equal(t, "tu1", queued[1].Arguments[1])
}

func TestSaveResultReportsErrors(t *testing.T) {
	db := &fakeDB{batchErr: errors.New("constraint")}
	_, err := NewUnitStore(db).SaveResult(context.Background(), sampleResult())
	assert.ErrorContains(t, err, "constraint")
}
