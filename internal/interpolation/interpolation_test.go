package interpolation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	got := Split("Hello ${user.name}, you have %d new {0}%%")
	want := []Piece{
		{Text: "Hello "},
		{Text: "${user.name}", Var: true},
		{Text: ", you have "},
		{Text: "%d", Var: true},
		{Text: " new "},
		{Text: "{0}", Var: true},
		{Text: "%%", Var: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitPlain(t *testing.T) {
	assert.Equal(t, []Piece{{Text: "no placeholders"}}, Split("no placeholders"))
	assert.Nil(t, Split(""))
}

func TestSplitMustache(t *testing.T) {
	got := Split("{{ count }} items")
	assert.Equal(t, []Piece{{Text: "{{ count }}", Var: true}, {Text: " items"}}, got)
}

func TestMissing(t *testing.T) {
	assert.Empty(t, Missing("%s of %s", "%s von %s"))
	assert.Equal(t, []string{"{1}"}, Missing("{0} and {1}", "{0} und"))
}
