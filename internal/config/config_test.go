package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"js-translator/internal/codefinder"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8, cfg.WorkerCount)
	assert.True(t, cfg.Filter.ExtractAllPairs)
	assert.True(t, cfg.Filter.UseKeyAsName)
	assert.True(t, cfg.Filter.EscapeForwardSlashes)
	assert.False(t, cfg.Filter.UseFullKeyPath)
	assert.Equal(t, []string{codefinder.DefaultRule}, cfg.Filter.CodeFinderRules)
}

func TestLoadFilterFromEnv(t *testing.T) {
	t.Setenv("WORKER_COUNT", "3")
	t.Setenv("JS_USE_FULL_KEY_PATH", "true")
	t.Setenv("JS_ESCAPE_FORWARD_SLASHES", "0")
	t.Setenv("JS_EXTRACT_ALL_PAIRS", "maybe")
	t.Setenv("JS_ID_RULES", "meta/id")
	t.Setenv("JS_SUBFILTER", "text")
	t.Setenv("JS_CODE_FINDER_RULES", `\{\d+\};;%s`)

	cfg := Load()
	assert.Equal(t, 3, cfg.WorkerCount)
	assert.True(t, cfg.Filter.UseFullKeyPath)
	assert.False(t, cfg.Filter.EscapeForwardSlashes)
	assert.True(t, cfg.Filter.ExtractAllPairs, "invalid booleans keep the default")
	assert.Equal(t, "meta/id", cfg.Filter.IDRules)
	assert.Equal(t, "text", cfg.Filter.Subfilter)
	assert.Equal(t, []string{`\{\d+\}`, "%s"}, cfg.Filter.CodeFinderRules)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "x")
	assert.Equal(t, 7, getEnvInt("TEST_INT", 7))
	t.Setenv("TEST_INT", "12")
	assert.Equal(t, 12, getEnvInt("TEST_INT", 7))
}
