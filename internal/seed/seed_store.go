package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"js-translator/internal/export"
	"js-translator/internal/store"
)

const upsertSeedSQL = `
	INSERT INTO seed_translations (hash, source_text, translated_text, file, key_path, entity_type)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (hash) DO UPDATE
	SET translated_text = EXCLUDED.translated_text, file = EXCLUDED.file,
	    key_path = EXCLUDED.key_path, entity_type = EXCLUDED.entity_type`

const selectSeedSQL = `
	SELECT hash, source_text, translated_text, file, key_path, entity_type
	FROM seed_translations`

// SeedStore handles persistence of seed translation pairs in PostgreSQL and file export.
type SeedStore struct {
	db store.DB
}

// NewSeedStore creates a new seed store.
func NewSeedStore(db store.DB) *SeedStore {
	return &SeedStore{db: db}
}

// Upsert inserts or updates seed entries, deduplicating by hash.
func (ss *SeedStore) Upsert(ctx context.Context, entries []SeedEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(upsertSeedSQL, e.Hash, e.SourceText, e.TranslatedText, e.File, e.Key, e.EntityType)
	}

	br := ss.db.SendBatch(ctx, batch)
	defer br.Close()

	affected := 0
	for range batch.Len() {
		tag, err := br.Exec()
		if err != nil {
			return affected, fmt.Errorf("upsert seed entry: %w", err)
		}
		affected += int(tag.RowsAffected())
	}

	log.Info().Int("upserted", affected).Msg("Upserted seed entries")
	return affected, nil
}

// GetAll retrieves all seed entries from the store.
func (ss *SeedStore) GetAll(ctx context.Context) ([]SeedEntry, error) {
	return ss.query(ctx, selectSeedSQL+` ORDER BY file, key_path`)
}

// GetByEntityType retrieves seed entries filtered by entity type.
func (ss *SeedStore) GetByEntityType(ctx context.Context, entityType string) ([]SeedEntry, error) {
	return ss.query(ctx, selectSeedSQL+` WHERE entity_type = $1 ORDER BY file, key_path`, entityType)
}

func (ss *SeedStore) query(ctx context.Context, sql string, args ...any) ([]SeedEntry, error) {
	rows, err := ss.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query seed entries: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[SeedEntry])
	if err != nil {
		return nil, fmt.Errorf("scan seed entries: %w", err)
	}
	return entries, nil
}

// WriteTSV writes entries with a header line.
func WriteTSV(w io.Writer, entries []SeedEntry) error {
	if _, err := fmt.Fprintln(w, "source_text\ttranslated_text\tfile\tkey\tentity_type"); err != nil {
		return fmt.Errorf("write TSV header: %w", err)
	}
	for _, e := range entries {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			export.EscapeTSV(e.SourceText),
			export.EscapeTSV(e.TranslatedText),
			export.EscapeTSV(e.File),
			export.EscapeTSV(e.Key),
			e.EntityType,
		)
		if err != nil {
			return fmt.Errorf("write TSV row: %w", err)
		}
	}
	return nil
}

// WriteJSON writes entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []SeedEntry) error {
	if entries == nil {
		entries = []SeedEntry{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// BuildTranslationMap returns a map of source_text → translated_text.
func BuildTranslationMap(entries []SeedEntry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.SourceText] = e.TranslatedText
	}
	return m
}
