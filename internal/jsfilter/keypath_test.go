package jsfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathWithoutFullKeyPath(t *testing.T) {
	b := newPathBuilder(false, true)

	p, ok := b.path("k", true)
	assert.Equal(t, "k", p)
	assert.True(t, ok)

	_, ok = b.path("", false)
	assert.False(t, ok)

	b.enterObject("", false)
	b.enterList("items", true)
	b.element()
	p, ok = b.path("", false)
	assert.Equal(t, "items", p)
	assert.True(t, ok)

	b.enterList("", false)
	b.element()
	_, ok = b.path("", false)
	assert.False(t, ok, "an unnamed list lends no key")
}

func TestPathWithFullKeyPath(t *testing.T) {
	b := newPathBuilder(true, false)
	b.enterObject("", false)
	b.enterObject("outer", true)
	b.enterList("list", true)
	b.element()
	b.element()

	p, ok := b.path("", false)
	assert.True(t, ok)
	assert.Equal(t, "outer/list/array:1", p)

	b.enterObject("", false)
	p, _ = b.path("leaf", true)
	assert.Equal(t, "outer/list/leaf", p)
}

func TestPathIndexesCountEveryElement(t *testing.T) {
	b := newPathBuilder(true, true)
	b.enterList("", false)
	b.enterObject("", false)
	require.NoError(t, b.exit(KeyObject))
	b.enterList("", false)
	require.NoError(t, b.exit(KeyList))
	b.element()

	p, _ := b.path("", false)
	assert.Equal(t, "/array:2", p)
}

func TestExitChecksNesting(t *testing.T) {
	b := newPathBuilder(false, true)
	assert.ErrorIs(t, b.exit(KeyObject), ErrUnbalanced)

	b.enterObject("", false)
	assert.ErrorIs(t, b.exit(KeyList), ErrUnbalanced)
	assert.NoError(t, b.exit(KeyObject))
	assert.Equal(t, 0, b.depth())
}
