package seed

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// GraphSeeder creates and updates Neo4j nodes for seed translation entries.
type GraphSeeder struct {
	driver neo4j.DriverWithContext
}

// NewGraphSeeder creates a new graph seeder.
func NewGraphSeeder(driver neo4j.DriverWithContext) *GraphSeeder {
	return &GraphSeeder{driver: driver}
}

// EnsureSchema creates constraints for seed nodes.
func (gs *GraphSeeder) EnsureSchema(ctx context.Context) error {
	session := gs.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.Run(ctx,
		"CREATE CONSTRAINT IF NOT EXISTS FOR (s:SeedTranslation) REQUIRE s.hash IS UNIQUE",
		nil,
	)
	if err != nil {
		return fmt.Errorf("create seed constraint: %w", err)
	}

	log.Info().Msg("Graph seed schema ensured")
	return nil
}

const upsertSeedCypher = `
	MERGE (s:SeedTranslation {hash: $hash})
	SET s.source_text = $source,
	    s.translated_text = $translated,
	    s.file = $file,
	    s.key_path = $key,
	    s.entity_type = $entity_type
	WITH s
	MATCH (u:TextUnit {hash: $hash})
	MERGE (s)-[:TRANSLATES]->(u)`

// seedParams returns the parameters of upsertSeedCypher for e.
func seedParams(e SeedEntry) map[string]any {
	return map[string]any{
		"hash":        e.Hash,
		"source":      e.SourceText,
		"translated":  e.TranslatedText,
		"file":        e.File,
		"key":         e.Key,
		"entity_type": e.EntityType,
	}
}

// UpsertSeedNodes creates or updates SeedTranslation nodes and links them to
// the text units that share their source text.
func (gs *GraphSeeder) UpsertSeedNodes(ctx context.Context, entries []SeedEntry) error {
	session := gs.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	failed := 0
	for _, e := range entries {
		if _, err := session.Run(ctx, upsertSeedCypher, seedParams(e)); err != nil {
			log.Warn().Err(err).Str("hash", e.Hash).Msg("Failed to upsert seed node")
			failed++
		}
	}

	log.Info().Int("entries", len(entries)).Int("failed", failed).Msg("Upserted seed nodes in graph")
	return nil
}

// FindSeedTranslations returns the seed translations linked to units with
// the given name.
func (gs *GraphSeeder) FindSeedTranslations(ctx context.Context, name string) (map[string]string, error) {
	session := gs.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (s:SeedTranslation)-[:TRANSLATES]->(u:TextUnit {name: $name})
		RETURN DISTINCT s.source_text AS source, s.translated_text AS translated
	`, map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("find seed translations: %w", err)
	}

	pairs := make(map[string]string)
	for result.Next(ctx) {
		record := result.Record()
		source, _ := record.Get("source")
		translated, _ := record.Get("translated")
		pairs[fmt.Sprintf("%v", source)] = fmt.Sprintf("%v", translated)
	}

	return pairs, nil
}
