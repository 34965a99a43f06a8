package jsfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		unknown []rune
	}{
		{`plain`, "plain", nil},
		{`line1\nline2\t!`, "line1\nline2\t!", nil},
		{`\b\f\r`, "\b\f\r", nil},
		{`a\\b\"c\/d`, `a\b"c/d`, nil},
		{`\q`, `\q`, []rune{'q'}},
		{`\u00e9\x`, `\u00e9\x`, []rune{'u', 'x'}},
		{`end\`, `end\`, []rune{'\\'}},
	}

	for _, tt := range tests {
		got, unknown := Unescape(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.unknown, unknown, tt.in)
	}
}

func TestDecodeNeverFails(t *testing.T) {
	assert.Equal(t, `a\qb`, Decode(`a\qb`))
}
