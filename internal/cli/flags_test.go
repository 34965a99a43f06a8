package cli

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"js-translator/internal/jsfilter"
)

func TestFilterFlagsOverrideOnlyChanged(t *testing.T) {
	var f filterFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"--full-key-path", "--note-rules", "desc|comment", "--escape-slashes=false"}))

	p := jsfilter.DefaultParameters()
	p.IDRules = "id"
	f.apply(fs, &p)

	assert.True(t, p.UseFullKeyPath)
	assert.False(t, p.EscapeForwardSlashes)
	assert.Equal(t, "desc|comment", p.NoteRules)
	assert.Equal(t, "id", p.IDRules)
	assert.True(t, p.ExtractAllPairs)
}

func TestFilterFlagsCodeRules(t *testing.T) {
	var f filterFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"--code-finder", "--code-rules", `\{\d+\}`}))

	p := jsfilter.DefaultParameters()
	f.apply(fs, &p)

	assert.True(t, p.UseCodeFinder)
	assert.Equal(t, []string{`\{\d+\}`}, p.CodeFinderRules)
}
