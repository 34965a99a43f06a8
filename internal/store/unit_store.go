package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"js-translator/internal/parser"
	"js-translator/internal/textutil"
)

// Unit is one stored text unit.
type Unit struct {
	File        string            `db:"file"`
	UnitID      string            `db:"unit_id"`
	Name        string            `db:"name"`
	Source      string            `db:"source"`
	Hash        string            `db:"hash"`
	Notes       []string          `db:"notes"`
	Metadata    map[string]string `db:"metadata"`
	SubDocument string            `db:"sub_document"`
}

const upsertUnitSQL = `
	INSERT INTO text_units (file, unit_id, name, source, hash, notes, metadata, sub_document)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (file, unit_id) DO UPDATE
	SET name = EXCLUDED.name, source = EXCLUDED.source, hash = EXCLUDED.hash,
	    notes = EXCLUDED.notes, metadata = EXCLUDED.metadata, sub_document = EXCLUDED.sub_document`

const selectUnitsSQL = `
	SELECT file, unit_id, name, source, hash, notes, metadata, sub_document
	FROM text_units`

// UnitStore keeps the text units of parsed files.
type UnitStore struct {
	db DB
}

// NewUnitStore creates a unit store.
func NewUnitStore(db DB) *UnitStore {
	return &UnitStore{db: db}
}

// UnitsFromResult converts a parse result into rows.
func UnitsFromResult(result *parser.ParseResult) []Unit {
	units := make([]Unit, 0, len(result.Texts))
	for _, et := range result.Texts {
		notes := et.Notes
		if notes == nil {
			notes = []string{}
		}
		meta := et.Metadata
		if meta == nil {
			meta = map[string]string{}
		}
		units = append(units, Unit{
			File:        result.FilePath,
			UnitID:      et.ID,
			Name:        et.Name,
			Source:      et.Text,
			Hash:        textutil.Hash(et.Text),
			Notes:       notes,
			Metadata:    meta,
			SubDocument: et.Context["subdocument"],
		})
	}
	return units
}

// SaveResult replaces the stored units of result's file.
func (s *UnitStore) SaveResult(ctx context.Context, result *parser.ParseResult) (int, error) {
	units := UnitsFromResult(result)

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM text_units WHERE file = $1`, result.FilePath)
	for _, u := range units {
		batch.Queue(upsertUnitSQL, u.File, u.UnitID, u.Name, u.Source, u.Hash, u.Notes, u.Metadata, u.SubDocument)
	}

	br := s.db.SendBatch(ctx, batch)
	for range batch.Len() {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return 0, fmt.Errorf("save units of %s: %w", result.FilePath, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}

	log.Debug().Str("file", result.FilePath).Int("units", len(units)).Msg("Stored text units")
	return len(units), nil
}

// FindByName returns the units with the given name across all files.
func (s *UnitStore) FindByName(ctx context.Context, name string) ([]Unit, error) {
	return s.query(ctx, selectUnitsSQL+` WHERE name = $1 ORDER BY file, unit_id`, name)
}

// ListFile returns the stored units of one file.
func (s *UnitStore) ListFile(ctx context.Context, file string) ([]Unit, error) {
	return s.query(ctx, selectUnitsSQL+` WHERE file = $1 ORDER BY unit_id`, file)
}

func (s *UnitStore) query(ctx context.Context, sql string, args ...any) ([]Unit, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}
	units, err := pgx.CollectRows(rows, pgx.RowToStructByName[Unit])
	if err != nil {
		return nil, fmt.Errorf("scan units: %w", err)
	}
	return units, nil
}
