package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"js-translator/internal/store"
	"js-translator/internal/textutil"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

const (
	getSQL    = `SELECT translated FROM translation_cache WHERE hash = $1`
	upsertSQL = `
		INSERT INTO translation_cache (hash, source, translated)
		VALUES ($1, $2, $3)
		ON CONFLICT (hash) DO UPDATE
		SET translated = EXCLUDED.translated, updated_at = now()`
	listSQL = `SELECT hash, translated FROM translation_cache`
)

// TranslationCache provides in-memory + PostgreSQL-backed caching for translations.
type TranslationCache struct {
	db     store.DB
	mu     sync.RWMutex
	memory map[string]string // hash → translated text
}

// NewTranslationCache creates a new cache backed by PostgreSQL.
func NewTranslationCache(db store.DB) *TranslationCache {
	return &TranslationCache{
		db:     db,
		memory: make(map[string]string),
	}
}

// Get retrieves a cached translation. Returns empty string and false if not found.
func (c *TranslationCache) Get(ctx context.Context, sourceText string) (string, bool) {
	hash := textutil.Hash(sourceText)

	// Check in-memory cache first.
	c.mu.RLock()
	if v, ok := c.memory[hash]; ok {
		c.mu.RUnlock()
		return v, true
	}
	c.mu.RUnlock()

	var translated string
	if err := c.db.QueryRow(ctx, getSQL, hash).Scan(&translated); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Warn().Err(err).Str("hash", hash).Msg("Cache lookup failed")
		}
		return "", false
	}

	// Populate in-memory cache.
	c.mu.Lock()
	c.memory[hash] = translated
	c.mu.Unlock()

	return translated, true
}

// Set stores a translation in both in-memory and PostgreSQL cache.
func (c *TranslationCache) Set(ctx context.Context, sourceText, translated string) error {
	hash := textutil.Hash(sourceText)

	c.mu.Lock()
	c.memory[hash] = translated
	c.mu.Unlock()

	if _, err := c.db.Exec(ctx, upsertSQL, hash, sourceText, translated); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// SetBatch stores multiple translations in one round trip.
func (c *TranslationCache) SetBatch(ctx context.Context, pairs map[string]string) error {
	batch := &pgx.Batch{}

	c.mu.Lock()
	for source, translated := range pairs {
		hash := textutil.Hash(source)
		c.memory[hash] = translated
		batch.Queue(upsertSQL, hash, source, translated)
	}
	c.mu.Unlock()

	br := c.db.SendBatch(ctx, batch)
	defer br.Close()
	for range batch.Len() {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("cache set batch: %w", err)
		}
	}
	return nil
}

// Preload loads all cached translations into memory.
func (c *TranslationCache) Preload(ctx context.Context) error {
	rows, err := c.db.Query(ctx, listSQL)
	if err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}

	type row struct {
		Hash       string
		Translated string
	}
	all, err := pgx.CollectRows(rows, pgx.RowToStructByPos[row])
	if err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range all {
		c.memory[r.Hash] = r.Translated
	}

	log.Info().Int("count", len(all)).Msg("Preloaded translation cache")
	return nil
}

// Translations returns the cached translations of the given source texts.
func (c *TranslationCache) Translations(ctx context.Context, sources []string) map[string]string {
	out := make(map[string]string)
	for _, s := range sources {
		if t, ok := c.Get(ctx, s); ok {
			out[s] = t
		}
	}
	return out
}
