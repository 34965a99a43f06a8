package jsfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPriority(t *testing.T) {
	p := DefaultParameters()
	p.IDRules = "key"
	p.NoteRules = "key|note"
	p.GenericMetaRules = "key|note|meta"
	r, err := CompileRules(p)
	require.NoError(t, err)

	assert.Equal(t, IDValue, r.Classify("key", true))
	assert.Equal(t, NoteValue, r.Classify("note", true))
	assert.Equal(t, MetaValue, r.Classify("meta", true))
	assert.Equal(t, Extract, r.Classify("other", true))
	assert.Equal(t, Extract, r.Classify("", false))
}

func TestClassifyWithoutPathSkipsRules(t *testing.T) {
	p := DefaultParameters()
	p.IDRules = ".*"
	p.ExtractionRules = "nothing"
	r, err := CompileRules(p)
	require.NoError(t, err)

	assert.Equal(t, Extract, r.Classify("", false))
	assert.Equal(t, IDValue, r.Classify("", true))
}

func TestRulesAreAnchored(t *testing.T) {
	p := DefaultParameters()
	p.IDRules = "id"
	p.Exceptions = "id"
	r, err := CompileRules(p)
	require.NoError(t, err)

	assert.Equal(t, IDValue, r.Classify("id", true))
	assert.Equal(t, Structural, r.Classify("myid", true), "exceptions match anywhere")
	assert.Equal(t, Extract, r.Classify("other", true))
}

func TestSubfilterRule(t *testing.T) {
	r, err := CompileRules(DefaultParameters())
	require.NoError(t, err)
	assert.True(t, r.Subfilter("anything", true))
	assert.True(t, r.Subfilter("", false))

	p := DefaultParameters()
	p.SubfilterRules = "html"
	r, err = CompileRules(p)
	require.NoError(t, err)
	assert.True(t, r.Subfilter("html", true))
	assert.False(t, r.Subfilter("html2", true))
	assert.False(t, r.Subfilter("", false))
}
