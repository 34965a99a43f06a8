package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"js-translator/internal/jsfilter"
)

// ruleListSeparator separates entries of JS_CODE_FINDER_RULES.
const ruleListSeparator = ";;"

type Config struct {
	DatabaseURL   string
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	WorkerCount   int
	BatchSize     int
	LogLevel      string
	Filter        jsfilter.Parameters
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "postgres://localhost:5432/js_translator?sslmode=disable"),
		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "password"),
		WorkerCount:   getEnvInt("WORKER_COUNT", 8),
		BatchSize:     getEnvInt("BATCH_SIZE", 100),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Filter:        loadFilter(),
	}
}

// loadFilter reads the JS_* variables over the filter defaults.
func loadFilter() jsfilter.Parameters {
	p := jsfilter.DefaultParameters()

	p.ExtractStandalone = getEnvBool("JS_EXTRACT_STANDALONE", p.ExtractStandalone)
	p.ExtractAllPairs = getEnvBool("JS_EXTRACT_ALL_PAIRS", p.ExtractAllPairs)
	p.UseKeyAsName = getEnvBool("JS_USE_KEY_AS_NAME", p.UseKeyAsName)
	p.UseFullKeyPath = getEnvBool("JS_USE_FULL_KEY_PATH", p.UseFullKeyPath)
	p.UseLeadingSlashOnKeyPath = getEnvBool("JS_USE_LEADING_SLASH", p.UseLeadingSlashOnKeyPath)
	p.UseCodeFinder = getEnvBool("JS_USE_CODE_FINDER", p.UseCodeFinder)
	p.EscapeForwardSlashes = getEnvBool("JS_ESCAPE_FORWARD_SLASHES", p.EscapeForwardSlashes)

	p.Exceptions = getEnv("JS_EXCEPTIONS", p.Exceptions)
	p.IDRules = getEnv("JS_ID_RULES", p.IDRules)
	p.NoteRules = getEnv("JS_NOTE_RULES", p.NoteRules)
	p.GenericMetaRules = getEnv("JS_GENERIC_META_RULES", p.GenericMetaRules)
	p.ExtractionRules = getEnv("JS_EXTRACTION_RULES", p.ExtractionRules)
	p.SubfilterRules = getEnv("JS_SUBFILTER_RULES", p.SubfilterRules)
	p.Subfilter = getEnv("JS_SUBFILTER", p.Subfilter)

	if v := getEnv("JS_CODE_FINDER_RULES", ""); v != "" {
		p.CodeFinderRules = strings.Split(v, ruleListSeparator)
	}
	return p
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Ignoring invalid boolean")
		return fallback
	}
	return b
}
