package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// UnitResult is a text unit found in the graph.
type UnitResult struct {
	File        string
	ID          string
	Name        string
	Source      string
	SubDocument string
	Notes       []string
}

// GraphQuerier queries the Neo4j graph for translation context.
type GraphQuerier struct {
	driver neo4j.DriverWithContext
}

// NewGraphQuerier creates a new graph querier.
func NewGraphQuerier(driver neo4j.DriverWithContext) *GraphQuerier {
	return &GraphQuerier{driver: driver}
}

const unitReturn = `
	OPTIONAL MATCH (s:SubDocument)-[:CONTAINS]->(u)
	OPTIONAL MATCH (u)-[:HAS_NOTE]->(n:Note)
	RETURN u.file AS file, u.id AS id, u.name AS name, u.source AS source,
	       coalesce(s.id, '') AS sub, collect(n.text) AS notes
	ORDER BY file, id`

// FindByName returns every unit with the given name, across files.
func (gq *GraphQuerier) FindByName(ctx context.Context, name string) ([]UnitResult, error) {
	return gq.units(ctx, `MATCH (u:TextUnit {name: $name})`+unitReturn, map[string]any{"name": name})
}

// FindBySource returns every unit whose source text equals text.
func (gq *GraphQuerier) FindBySource(ctx context.Context, text string) ([]UnitResult, error) {
	return gq.units(ctx, `MATCH (u:TextUnit {source: $text})`+unitReturn, map[string]any{"text": text})
}

func (gq *GraphQuerier) units(ctx context.Context, cypher string, params map[string]any) ([]UnitResult, error) {
	session := gq.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}

	var units []UnitResult
	for result.Next(ctx) {
		units = append(units, unitFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read units: %w", err)
	}

	log.Debug().Int("units", len(units)).Msg("Graph query complete")
	return units, nil
}

func unitFromRecord(record *neo4j.Record) UnitResult {
	u := UnitResult{
		File:        recordString(record, "file"),
		ID:          recordString(record, "id"),
		Name:        recordString(record, "name"),
		Source:      recordString(record, "source"),
		SubDocument: recordString(record, "sub"),
	}
	notes, _ := record.Get("notes")
	if list, ok := notes.([]any); ok {
		for _, n := range list {
			if s, ok := n.(string); ok {
				u.Notes = append(u.Notes, s)
			}
		}
	}
	return u
}

func recordString(record *neo4j.Record, key string) string {
	v, _ := record.Get(key)
	s, _ := v.(string)
	return s
}
