package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenExpectation struct {
	Kind  Kind
	Text  string
	Value string
	Type  ValueType
}

func expectations(tokens []Token) []tokenExpectation {
	out := make([]tokenExpectation, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tokenExpectation{tok.Kind, tok.Text, tok.Value, tok.Type})
	}
	return out
}

func TestTokenizeObject(t *testing.T) {
	tokens, err := Tokenize(`{"a": 'x', b: [1, true, null, sym]}`)
	require.NoError(t, err)

	want := []tokenExpectation{
		{ObjectStart, "{", "{", Default},
		{Key, `"a"`, "a", DoubleQuoted},
		{Separator, ":", ":", Default},
		{Whitespace, " ", " ", Default},
		{Value, "'x'", "x", SingleQuoted},
		{Separator, ",", ",", Default},
		{Whitespace, " ", " ", Default},
		{Key, "b", "b", Default},
		{Separator, ":", ":", Default},
		{Whitespace, " ", " ", Default},
		{ListStart, "[", "[", Default},
		{Value, "1", "1", Number},
		{Separator, ",", ",", Default},
		{Whitespace, " ", " ", Default},
		{Value, "true", "true", Boolean},
		{Separator, ",", ",", Default},
		{Whitespace, " ", " ", Default},
		{Value, "null", "null", Null},
		{Separator, ",", ",", Default},
		{Whitespace, " ", " ", Default},
		{Value, "sym", "sym", Symbol},
		{ListEnd, "]", "]", Default},
		{ObjectEnd, "}", "}", Default},
		{EOF, "", "", Default},
	}
	if diff := cmp.Diff(want, expectations(tokens)); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeIsContiguous(t *testing.T) {
	inputs := []string{
		`{"a":"b"}`,
		"var data = {\n  // comment\n  'k': \"v\\\"q\", /* block */ n: -1.5e3,\n  list: [ 'x', 0x1F ]\n};\n",
		"\uFEFF[\"x\",\t\"y\"]",
		`{"nested": {"deep": [[1], {"k": "v"}]}}`,
		"",
	}
	for _, input := range inputs {
		tokens, err := Tokenize(input)
		require.NoError(t, err, input)

		var sb strings.Builder
		prevEnd := 0
		for _, tok := range tokens {
			assert.Equal(t, prevEnd, tok.Start, "gap before %q", tok.Text)
			prevEnd = tok.End
			sb.WriteString(tok.Text)
		}
		assert.Equal(t, input, sb.String())
		assert.Equal(t, EOF, tokens[len(tokens)-1].Kind)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"integer", "42"},
		{"negative", "-7"},
		{"fraction", "3.25"},
		{"leading_dot", ".5"},
		{"exponent", "1e10"},
		{"signed_exponent", "-2.5E-3"},
		{"hex", "0xFF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize("[" + tt.input + "]")
			require.NoError(t, err)
			require.Len(t, tokens, 4)
			assert.Equal(t, Value, tokens[1].Kind)
			assert.Equal(t, Number, tokens[1].Type)
			assert.Equal(t, tt.input, tokens[1].Text)
		})
	}
}

func TestKeyDetectionFollowsContext(t *testing.T) {
	tokens, err := Tokenize(`{"a":{"b":"c"},"d":["e",{"f":"g"}],"h":"i"}`)
	require.NoError(t, err)

	var keys, values []string
	for _, tok := range tokens {
		switch tok.Kind {
		case Key:
			keys = append(keys, tok.Value)
		case Value:
			values = append(values, tok.Value)
		}
	}
	assert.Equal(t, []string{"a", "b", "d", "f", "h"}, keys)
	assert.Equal(t, []string{"c", "e", "g", "i"}, values)
}

func TestStringEscapesAreKeptRaw(t *testing.T) {
	tokens, err := Tokenize(`["a\"b\\", 'it\'s']`)
	require.NoError(t, err)
	assert.Equal(t, `a\"b\\`, tokens[1].Value)
	assert.Equal(t, `it\'s`, tokens[4].Value)
}

func TestComments(t *testing.T) {
	tokens, err := Tokenize("// line\n/* block\nspans */{}")
	require.NoError(t, err)
	assert.Equal(t, Comment, tokens[0].Kind)
	assert.Equal(t, "// line", tokens[0].Text)
	assert.Equal(t, Whitespace, tokens[1].Kind)
	assert.Equal(t, Comment, tokens[2].Kind)
	assert.Equal(t, "/* block\nspans */", tokens[2].Text)
	assert.Equal(t, ObjectStart, tokens[3].Kind)
	assert.Equal(t, 3, tokens[3].Line)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"unterminated_string", `{"a": "b}`, "unterminated string"},
		{"newline_in_string", "[\"a\nb\"]", "unterminated string"},
		{"unterminated_comment", "{ /* open", "unterminated comment"},
		{"bad_number", "[12ab]", "invalid number"},
		{"template_literal", "[`x`]", "unsupported character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))
			assert.Contains(t, err.Error(), tt.msg)

			var lexErr *Error
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, 1, lexErr.Line)
		})
	}
}

func TestEOFIsRepeated(t *testing.T) {
	l := New("1")
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, Value, tok.Kind)
	for i := 0; i < 2; i++ {
		tok, err = l.Next()
		require.NoError(t, err)
		assert.Equal(t, EOF, tok.Kind)
	}
}

func TestValueTypeQuote(t *testing.T) {
	assert.Equal(t, "'", SingleQuoted.Quote())
	assert.Equal(t, `"`, DoubleQuoted.Quote())
	assert.Equal(t, "", Number.Quote())
	assert.True(t, DoubleQuoted.IsString())
	assert.False(t, Symbol.IsString())
}
