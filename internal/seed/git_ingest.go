package seed

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"js-translator/internal/parser"
	"js-translator/internal/textutil"
)

// SeedEntry represents a source→translated pair recovered from two revisions
// of the same file.
type SeedEntry struct {
	SourceText     string `json:"source_text" db:"source_text"`
	TranslatedText string `json:"translated_text" db:"translated_text"`
	File           string `json:"file" db:"file"`
	Key            string `json:"key,omitempty" db:"key_path"`
	EntityType     string `json:"entity_type,omitempty" db:"entity_type"`
	Hash           string `json:"hash" db:"hash"`
}

// GitIngestor extracts translation pairs by parsing both sides of a Git diff.
type GitIngestor struct {
	parser *parser.JSParser
}

// NewGitIngestor creates a new Git ingestor.
func NewGitIngestor(p *parser.JSParser) *GitIngestor {
	return &GitIngestor{parser: p}
}

// IngestFromGit extracts seed translation pairs by diffing two git refs for a given folder.
func (gi *GitIngestor) IngestFromGit(ctx context.Context, repoRoot, commitBase, commitTarget, folder string) ([]SeedEntry, error) {
	files, err := gi.getChangedFiles(ctx, repoRoot, commitBase, commitTarget, folder)
	if err != nil {
		return nil, fmt.Errorf("get changed files: %w", err)
	}

	log.Info().Int("files", len(files)).Msg("Found changed files in Git diff")

	var allEntries []SeedEntry

	for _, file := range files {
		if !gi.parser.CanParse(strings.ToLower(filepath.Ext(file))) {
			continue
		}

		entries, err := gi.extractPairs(ctx, repoRoot, commitBase, commitTarget, file)
		if err != nil {
			log.Warn().Err(err).Str("file", file).Msg("Failed to extract pairs from diff")
			continue
		}

		allEntries = append(allEntries, entries...)
		log.Debug().Str("file", file).Int("pairs", len(entries)).Msg("Extracted translation pairs")
	}

	log.Info().Int("total_pairs", len(allEntries)).Msg("Git diff ingestion complete")
	return allEntries, nil
}

// getChangedFiles retrieves the list of changed files between two commits in a folder.
func (gi *GitIngestor) getChangedFiles(ctx context.Context, repoRoot, commitBase, commitTarget, folder string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--name-only", commitBase, commitTarget, "--", folder)
	cmd.Dir = repoRoot

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff --name-only: %w", err)
	}

	var files []string
	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			files = append(files, line)
		}
	}

	return files, nil
}

func (gi *GitIngestor) show(ctx context.Context, repoRoot, rev, file string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "show", rev+":"+file)
	cmd.Dir = repoRoot

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git show %s:%s: %w", rev, file, err)
	}
	return string(output), nil
}

// extractPairs parses the file at both revisions and pairs their text units.
func (gi *GitIngestor) extractPairs(ctx context.Context, repoRoot, commitBase, commitTarget, file string) ([]SeedEntry, error) {
	before, err := gi.show(ctx, repoRoot, commitBase, file)
	if err != nil {
		return nil, err
	}
	after, err := gi.show(ctx, repoRoot, commitTarget, file)
	if err != nil {
		return nil, err
	}

	src, err := gi.parser.ParseSource(ctx, file, before)
	if err != nil {
		return nil, err
	}
	dst, err := gi.parser.ParseSource(ctx, file, after)
	if err != nil {
		return nil, err
	}
	return MatchPairs(src, dst), nil
}

// pairKey identifies a unit across revisions: its name when it has one,
// its id otherwise.
func pairKey(et parser.ExtractedText) string {
	if et.Name != "" {
		return "name:" + et.Name
	}
	return "id:" + et.ID
}

// MatchPairs pairs the units of two parses of the same file whose text
// changed. Units are matched by name, or by id when unnamed.
func MatchPairs(src, dst *parser.ParseResult) []SeedEntry {
	translated := make(map[string]string, len(dst.Texts))
	for _, et := range dst.Texts {
		translated[pairKey(et)] = et.Text
	}

	var entries []SeedEntry
	for _, et := range src.Texts {
		dstText, ok := translated[pairKey(et)]
		if !ok || dstText == et.Text || textutil.IsBlank(et.Text) || textutil.IsBlank(dstText) {
			continue
		}
		key := et.Name
		if key == "" {
			key = et.ID
		}
		entries = append(entries, SeedEntry{
			SourceText:     et.Text,
			TranslatedText: dstText,
			File:           src.FilePath,
			Key:            key,
			EntityType:     detectEntityType(src.FilePath, key),
			Hash:           textutil.Hash(et.Text),
		})
	}
	return entries
}

// entityPatterns maps file name and key patterns to entity types.
var entityPatterns = []struct{ pattern, entityType string }{
	{"error", "error"}, {"warn", "error"},
	{"button", "ui"}, {"label", "ui"}, {"menu", "ui"}, {"title", "ui"},
	{"tooltip", "ui"}, {"placeholder", "ui"},
	{"dialog", "dialog"}, {"message", "dialog"}, {"prompt", "dialog"},
	{"help", "help"}, {"description", "help"}, {"desc", "help"},
}

// detectEntityType infers entity type from the file name and key path.
func detectEntityType(file, key string) string {
	fileLower := strings.ToLower(filepath.Base(file))
	keyLower := strings.ToLower(key)

	for _, p := range entityPatterns {
		if strings.Contains(keyLower, p.pattern) {
			return p.entityType
		}
	}
	for _, p := range entityPatterns {
		if strings.Contains(fileLower, p.pattern) {
			return p.entityType
		}
	}
	return "general"
}
