// Package graph mirrors parsed documents into Neo4j: documents embed
// sub-documents, both contain text units, and units carry their notes.
package graph

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"

	"js-translator/internal/event"
	"js-translator/internal/parser"
	"js-translator/internal/textutil"
)

// Statement is one Cypher statement with its parameters.
type Statement struct {
	Cypher string
	Params map[string]any
}

// GraphBuilder writes parse results into the Neo4j graph.
type GraphBuilder struct {
	driver neo4j.DriverWithContext
}

// NewGraphBuilder creates a new graph builder.
func NewGraphBuilder(driver neo4j.DriverWithContext) *GraphBuilder {
	return &GraphBuilder{driver: driver}
}

// EnsureSchema creates constraints and indexes on the Neo4j database.
func (gb *GraphBuilder) EnsureSchema(ctx context.Context) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (d:Document) REQUIRE d.path IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (u:TextUnit) REQUIRE (u.file, u.id) IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (n:Note) REQUIRE n.text IS UNIQUE",
		"CREATE INDEX IF NOT EXISTS FOR (u:TextUnit) ON (u.name)",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// AddDocument replaces the graph of one parsed file in a single transaction.
func (gb *GraphBuilder) AddDocument(ctx context.Context, result *parser.ParseResult) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	stmts := DocumentStatements(result)
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, s := range stmts {
			if _, err := tx.Run(ctx, s.Cypher, s.Params); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("add document %s: %w", result.FilePath, err)
	}

	log.Debug().Str("file", result.FilePath).Int("statements", len(stmts)).Msg("Wrote document graph")
	return nil
}

const (
	mergeDocumentCypher = `
		MERGE (d:Document {path: $file})
		SET d.type = $type, d.id = $id
		WITH d
		OPTIONAL MATCH (d)-[:CONTAINS|EMBEDS*1..]->(old)
		DETACH DELETE old`

	mergeSubDocumentCypher = `
		MATCH (p {path: $file, id: $parent})
		MERGE (s:SubDocument {file: $file, id: $id})
		SET s.key = $key, s.mime = $mime, s.path = $file
		MERGE (p)-[:EMBEDS]->(s)`

	mergeUnitCypher = `
		MATCH (p {path: $file, id: $parent})
		MERGE (u:TextUnit {file: $file, id: $id})
		SET u.name = $name, u.source = $source, u.hash = $hash,
		    u.meta_names = $metaNames, u.meta_values = $metaValues
		MERGE (p)-[:CONTAINS]->(u)
		WITH u
		UNWIND $notes AS note
		MERGE (n:Note {text: note})
		MERGE (u)-[:HAS_NOTE]->(n)`
)

// DocumentStatements returns the statements that write result. Documents
// and sub-documents share the id property so units can match their parent
// the same way.
func DocumentStatements(result *parser.ParseResult) []Statement {
	file := result.FilePath
	stmts := []Statement{
		{Cypher: mergeDocumentCypher, Params: map[string]any{"file": file, "type": result.FileType, "id": rootID}},
	}

	parents := []string{rootID}
	texts := result.Texts
	for _, ev := range result.Events {
		switch ev.Type {
		case event.StartSubDocument:
			stmts = append(stmts, Statement{Cypher: mergeSubDocumentCypher, Params: map[string]any{
				"file":   file,
				"parent": parents[len(parents)-1],
				"id":     ev.ID,
				"key":    ev.Document.ParentName,
				"mime":   ev.Document.MimeType,
			}})
			parents = append(parents, ev.ID)
		case event.EndSubDocument:
			parents = parents[:len(parents)-1]
		case event.TextUnitEvent:
			if len(texts) == 0 {
				continue
			}
			et := texts[0]
			texts = texts[1:]
			notes := et.Notes
			if notes == nil {
				notes = []string{}
			}
			metaNames := slices.Sorted(maps.Keys(et.Metadata))
			metaValues := make([]string, 0, len(metaNames))
			for _, n := range metaNames {
				metaValues = append(metaValues, et.Metadata[n])
			}
			stmts = append(stmts, Statement{Cypher: mergeUnitCypher, Params: map[string]any{
				"file":       file,
				"parent":     parents[len(parents)-1],
				"id":         et.ID,
				"name":       et.Name,
				"source":     et.Text,
				"hash":       textutil.Hash(et.Text),
				"notes":      notes,
				"metaNames":  append([]string{}, metaNames...),
				"metaValues": metaValues,
			}})
		}
	}
	return stmts
}

// rootID is the id property of Document nodes.
const rootID = ""
