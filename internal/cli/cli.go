package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"js-translator/internal/cache"
	"js-translator/internal/config"
	"js-translator/internal/diff"
	"js-translator/internal/export"
	"js-translator/internal/filewalker"
	"js-translator/internal/graph"
	"js-translator/internal/parser"
	"js-translator/internal/seed"
	"js-translator/internal/skeleton"
	"js-translator/internal/store"
	"js-translator/internal/subfilter"
	"js-translator/internal/translation"
	"js-translator/internal/worker"
)

// app carries the configuration shared by all commands.
type app struct {
	cfg     *config.Config
	filters filterFlags
	verbose bool
}

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "js-translator",
		Short: "Extract and reinsert translatable strings in JavaScript and JSON files",
		Long: `Extracts translatable strings from JSON documents and JavaScript object literals,
keeps everything else as a skeleton, and writes translated copies that differ
from the input only inside the translated strings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	a.filters.register(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log every extracted value")

	rootCmd.AddCommand(a.extractCmd())
	rootCmd.AddCommand(a.translateCmd())
	rootCmd.AddCommand(a.roundtripCmd())
	rootCmd.AddCommand(a.ingestCmd())
	rootCmd.AddCommand(a.ingestSeedGitCmd())
	rootCmd.AddCommand(a.lookupCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the environment and applies the command line over it.
func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Load()
	a.filters.apply(cmd.Flags(), &a.cfg.Filter)

	level, err := zerolog.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", a.cfg.LogLevel, err)
	}
	if a.verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

// newParser builds the file parser from the effective filter settings.
func (a *app) newParser() (*parser.JSParser, error) {
	f, err := subfilter.NewFilter(a.cfg.Filter)
	if err != nil {
		return nil, fmt.Errorf("configure filter: %w", err)
	}
	return parser.NewJSParser(f), nil
}

// parseDir walks dir and parses every supported file with the worker pool.
func (a *app) parseDir(ctx context.Context, p *parser.JSParser, dir string) ([]*parser.ParseResult, error) {
	w := filewalker.NewWalker(p)
	entries, err := w.Walk(dir)
	if err != nil {
		return nil, fmt.Errorf("walk input directory: %w", err)
	}

	log.Info().Int("files", len(entries)).Msg("Parsing files")

	parsePool := worker.NewPool[filewalker.FileEntry, *parser.ParseResult](a.cfg.WorkerCount, w.ParseFile).
		OnProgress(func(done, total int) {
			log.Debug().Int("done", done).Int("total", total).Msg("Parse progress")
		})

	var results []*parser.ParseResult
	failed := 0
	for _, pr := range parsePool.Execute(ctx, entries) {
		if pr.Err != nil {
			log.Error().Err(pr.Err).Str("file", pr.Input.Path).Msg("Parse failed")
			failed++
			continue
		}
		if pr.Result == nil {
			continue
		}
		results = append(results, pr.Result)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info().Int("parsed", len(results)).Int("failed", failed).Msg("Parsed files")
	return results, nil
}

func (a *app) extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <directory>",
		Short: "List the translatable strings of every .js and .json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("export")
			output, _ := cmd.Flags().GetString("output")
			return a.runExtract(args[0], format, output)
		},
	}

	cmd.Flags().String("export", "tsv", "Export format: tsv or json")
	cmd.Flags().String("output", "", "Output file (default stdout)")

	return cmd
}

func (a *app) runExtract(dir, format, output string) error {
	ctx, cancel := setupContext()
	defer cancel()

	p, err := a.newParser()
	if err != nil {
		return err
	}
	results, err := a.parseDir(ctx, p, dir)
	if err != nil {
		return err
	}
	rows := export.Rows(results, nil)

	return writeOutput(output, func(w io.Writer) error {
		switch format {
		case "json":
			return export.WriteJSON(w, rows)
		case "tsv":
			return export.WriteTSV(w, rows)
		default:
			return fmt.Errorf("unknown export format %q", format)
		}
	})
}

func (a *app) translateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <input-dir> <output-dir>",
		Short: "Write translated copies using cached and seeded translations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pseudo, _ := cmd.Flags().GetBool("pseudo")
			return a.runTranslate(args[0], args[1], pseudo)
		},
	}

	cmd.Flags().Bool("pseudo", false, "Pseudo-translate instead of using the database")

	return cmd
}

func (a *app) runTranslate(inputDir, outputDir string, pseudo bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	p, err := a.newParser()
	if err != nil {
		return err
	}
	results, err := a.parseDir(ctx, p, inputDir)
	if err != nil {
		return err
	}

	targets := translation.Pseudo()
	if !pseudo {
		pgPool, err := connectPostgres(ctx, a.cfg)
		if err != nil {
			return err
		}
		defer pgPool.Close()

		translations, err := loadTranslations(ctx, pgPool, results)
		if err != nil {
			return err
		}
		targets = translation.FromMap(translations)
	}

	inputAbs, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input directory: %w", err)
	}
	outputAbs, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}

	written := 0
	for _, result := range results {
		if err := writeTranslated(p, result, targets, inputAbs, outputAbs); err != nil {
			log.Error().Err(err).Str("file", result.FilePath).Msg("Translate failed")
			continue
		}
		written++
	}

	log.Info().
		Int("files", written).
		Str("output", outputDir).
		Bool("pseudo", pseudo).
		Msg("Translation complete")

	return nil
}

// loadTranslations collects the cached translations of every extracted
// string, with seed translations filling the gaps.
func loadTranslations(ctx context.Context, db store.DB, results []*parser.ParseResult) (map[string]string, error) {
	seedStore := seed.NewSeedStore(db)
	seeds, err := seedStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seeds: %w", err)
	}
	translations := seed.BuildTranslationMap(seeds)

	translationCache := cache.NewTranslationCache(db)
	if err := translationCache.Preload(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to preload cache")
	}

	var sources []string
	for _, r := range results {
		for _, et := range r.Texts {
			sources = append(sources, et.Text)
		}
	}
	for source, translated := range translationCache.Translations(ctx, sources) {
		translations[source] = translated
	}

	log.Info().Int("seeds", len(seeds)).Int("translations", len(translations)).Msg("Loaded translations")
	return translations, nil
}

func writeTranslated(p *parser.JSParser, result *parser.ParseResult, targets skeleton.TargetFunc, inputAbs, outputAbs string) error {
	out, err := p.ReconstructFunc(result, targets)
	if err != nil {
		return err
	}

	relPath, err := filepath.Rel(inputAbs, result.FilePath)
	if err != nil {
		return fmt.Errorf("compute relative path: %w", err)
	}
	outPath := filepath.Join(outputAbs, relPath)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	log.Debug().Str("input", result.FilePath).Str("output", outPath).Msg("File translated")
	return nil
}

func (a *app) roundtripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roundtrip <file>",
		Short: "Check that a file is rebuilt byte for byte from its extraction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pseudo, _ := cmd.Flags().GetBool("pseudo")
			return a.runRoundtrip(cmd.OutOrStdout(), args[0], pseudo)
		},
	}

	cmd.Flags().Bool("pseudo", false, "Show the pseudo-translated output as a diff")

	return cmd
}

func (a *app) runRoundtrip(out io.Writer, file string, pseudo bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	p, err := a.newParser()
	if err != nil {
		return err
	}

	original, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	result, err := p.ParseSource(ctx, file, string(original))
	if err != nil {
		return err
	}

	var targets skeleton.TargetFunc
	if pseudo {
		targets = translation.Pseudo()
	}
	rebuilt, err := p.ReconstructFunc(result, targets)
	if err != nil {
		return err
	}

	d, err := diff.Unified(file, file+" (rebuilt)", string(original), string(rebuilt), diff.DefaultContext)
	if err != nil {
		return err
	}
	if d == "" {
		log.Info().Str("file", file).Int("texts", len(result.Texts)).Msg("Round trip is exact")
		return nil
	}
	if _, err := io.WriteString(out, d); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	if pseudo {
		return nil
	}
	return fmt.Errorf("round trip of %s differs from the input", file)
}

func (a *app) ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <directory>",
		Short: "Store extracted strings in PostgreSQL and the document graph in Neo4j",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runIngest(args[0])
		},
	}
}

func (a *app) runIngest(inputDir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	p, err := a.newParser()
	if err != nil {
		return err
	}

	pgPool, neo4jDriver, err := initDependencies(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()
	defer neo4jDriver.Close(ctx)

	graphBuilder := graph.NewGraphBuilder(neo4jDriver)
	if err := graphBuilder.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure graph schema: %w", err)
	}

	results, err := a.parseDir(ctx, p, inputDir)
	if err != nil {
		return err
	}

	unitStore := store.NewUnitStore(pgPool)
	savePool := worker.NewPool[*parser.ParseResult, int](a.cfg.WorkerCount,
		func(ctx context.Context, result *parser.ParseResult) (int, error) {
			n, err := unitStore.SaveResult(ctx, result)
			if err != nil {
				return 0, err
			}
			if err := graphBuilder.AddDocument(ctx, result); err != nil {
				return n, err
			}
			return n, nil
		},
	)

	units, failed := 0, 0
	for _, task := range savePool.Execute(ctx, results) {
		if task.Err != nil {
			failed++
			continue
		}
		units += task.Result
	}

	log.Info().
		Int("files", len(results)).
		Int("units", units).
		Int("failed", failed).
		Msg("Ingestion complete")

	return nil
}

func (a *app) ingestSeedGitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest-seed-git <commit_base> <commit_target> <folder>",
		Short: "Extract a seed corpus from translations committed to Git",
		Long: `Parses every changed .js and .json file at both commits and pairs the
strings whose text changed: the base commit holds the source, the target commit
its manual translation. Pairs are stored, linked in the graph, added to the
translation cache and exported.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, _ := cmd.Flags().GetString("export")
			exportPath, _ := cmd.Flags().GetString("output")
			return a.runIngestSeedGit(args[0], args[1], args[2], exportFormat, exportPath)
		},
	}

	cmd.Flags().String("export", "tsv", "Export format: tsv or json")
	cmd.Flags().String("output", "seed_corpus", "Output path for seed corpus (without extension)")

	return cmd
}

func (a *app) runIngestSeedGit(commitBase, commitTarget, folder, exportFormat, exportPath string) error {
	ctx, cancel := setupContext()
	defer cancel()

	p, err := a.newParser()
	if err != nil {
		return err
	}

	pgPool, neo4jDriver, err := initDependencies(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()
	defer neo4jDriver.Close(ctx)

	repoRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	log.Info().
		Str("base", commitBase).
		Str("target", commitTarget).
		Str("folder", folder).
		Msg("Starting seed ingestion from Git")

	entries, err := seed.NewGitIngestor(p).IngestFromGit(ctx, repoRoot, commitBase, commitTarget, folder)
	if err != nil {
		return fmt.Errorf("git ingestion: %w", err)
	}
	if len(entries) == 0 {
		log.Warn().Msg("No translation pairs found in Git diff")
		return nil
	}

	seedStore := seed.NewSeedStore(pgPool)
	upserted, err := seedStore.Upsert(ctx, entries)
	if err != nil {
		return fmt.Errorf("upsert seed entries: %w", err)
	}

	graphSeeder := seed.NewGraphSeeder(neo4jDriver)
	if err := graphSeeder.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure graph seed schema: %w", err)
	}
	if err := graphSeeder.UpsertSeedNodes(ctx, entries); err != nil {
		return fmt.Errorf("upsert seed graph nodes: %w", err)
	}

	translationCache := cache.NewTranslationCache(pgPool)
	for _, batch := range worker.Batch(entries, a.cfg.BatchSize) {
		if err := translationCache.SetBatch(ctx, seed.BuildTranslationMap(batch)); err != nil {
			log.Warn().Err(err).Int("size", len(batch)).Msg("Failed to cache seed translations")
		}
	}

	all, err := seedStore.GetAll(ctx)
	if err != nil {
		return err
	}
	switch exportFormat {
	case "json":
		err = writeOutput(exportPath+".json", func(w io.Writer) error { return seed.WriteJSON(w, all) })
	default:
		err = writeOutput(exportPath+".tsv", func(w io.Writer) error { return seed.WriteTSV(w, all) })
	}
	if err != nil {
		return fmt.Errorf("export seed corpus: %w", err)
	}

	log.Info().
		Int("pairs", len(entries)).
		Int("stored", upserted).
		Str("format", exportFormat).
		Msg("Seed ingestion complete")

	return nil
}

func (a *app) lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Find stored strings by text unit name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useGraph, _ := cmd.Flags().GetBool("graph")
			return a.runLookup(cmd.OutOrStdout(), args[0], useGraph)
		},
	}

	cmd.Flags().Bool("graph", false, "Query Neo4j, including notes and seed translations")

	return cmd
}

func (a *app) runLookup(out io.Writer, name string, useGraph bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	var rows []export.Row
	if useGraph {
		driver, err := connectNeo4j(ctx, a.cfg)
		if err != nil {
			return err
		}
		defer driver.Close(ctx)

		units, err := graph.NewGraphQuerier(driver).FindByName(ctx, name)
		if err != nil {
			return err
		}
		seeds, err := seed.NewGraphSeeder(driver).FindSeedTranslations(ctx, name)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load seed translations")
		}
		for _, u := range units {
			rows = append(rows, export.Row{File: u.File, ID: u.ID, Name: u.Name, Source: u.Source, Target: seeds[u.Source], Notes: u.Notes})
		}
	} else {
		pgPool, err := connectPostgres(ctx, a.cfg)
		if err != nil {
			return err
		}
		defer pgPool.Close()

		units, err := store.NewUnitStore(pgPool).FindByName(ctx, name)
		if err != nil {
			return err
		}
		for _, u := range units {
			rows = append(rows, export.Row{File: u.File, ID: u.UnitID, Name: u.Name, Source: u.Source, Notes: u.Notes})
		}
	}

	if len(rows) == 0 {
		log.Warn().Str("name", name).Msg("No text units found")
		return nil
	}
	return export.WriteTSV(out, rows)
}

// writeOutput runs write against path, or stdout when path is empty.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("Wrote output")
	return nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pgPool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := store.Migrate(ctx, pgPool); err != nil {
		pgPool.Close()
		return nil, err
	}
	log.Info().Msg("Connected to PostgreSQL")
	return pgPool, nil
}

func connectNeo4j(ctx context.Context, cfg *config.Config) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")
	return driver, nil
}

// initDependencies connects both databases and runs migrations.
func initDependencies(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, neo4j.DriverWithContext, error) {
	pgPool, err := connectPostgres(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	driver, err := connectNeo4j(ctx, cfg)
	if err != nil {
		pgPool.Close()
		return nil, nil, err
	}
	return pgPool, driver, nil
}
