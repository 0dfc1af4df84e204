package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"fwexport/internal/config"
	"fwexport/internal/export"
	"fwexport/internal/filmweb"
	"fwexport/internal/imdb"
	"fwexport/internal/linker"
	"fwexport/internal/pipeline"
	"fwexport/internal/review"
)

// sessionClients is how many equivalent HTTP sessions each pool
// holds; workers share them round-robin to reuse cookies and
// connection state.
const sessionClients = 3

func run(cmd *cobra.Command, _ []string) error {
	// A .env next to the binary may carry the cookie values.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Run.LogLevel),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runExport(ctx, cfg, logger)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	// Flags take precedence over the file, environment fills the rest.
	if flagUsername != "" {
		cfg.Auth.Username = flagUsername
	}
	if flagToken != "" {
		cfg.Auth.Token = flagToken
	}
	if flagSession != "" {
		cfg.Auth.Session = flagSession
	}
	if flagJWT != "" {
		cfg.Auth.JWT = flagJWT
	}
	if flagWorkers != 0 {
		cfg.Run.Workers = flagWorkers
	}
	if flagQuiet {
		cfg.Run.Quiet = true
	}
	if flagCache != "" {
		cfg.Cache.Path = flagCache
	}
	if flagOut != "" {
		cfg.Export.Dir = flagOut
	}
	if cfg.Auth.Token == "" {
		cfg.Auth.Token = os.Getenv("FWEXPORT_TOKEN")
	}
	if cfg.Auth.Session == "" {
		cfg.Auth.Session = os.Getenv("FWEXPORT_SESSION")
	}
	if cfg.Auth.JWT == "" {
		cfg.Auth.JWT = os.Getenv("FWEXPORT_JWT")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runExport(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	creds := filmweb.Credentials{
		Token:   cfg.Auth.Token,
		Session: cfg.Auth.Session,
		JWT:     cfg.Auth.JWT,
	}

	fetchers := make([]pipeline.PageFetcher, sessionClients)
	var primary *filmweb.Client
	for i := range fetchers {
		c := filmweb.New(creds, filmweb.WithLogger(logger))
		fetchers[i] = c
		if i == 0 {
			primary = c
		}
	}

	searcher, closeCache, err := buildSearcher(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	username := cfg.Auth.Username
	if username == "" {
		username, err = primary.Username(ctx)
		if err != nil {
			return fmt.Errorf("resolve username: %w", err)
		}
		logger.Info("resolved username from settings page", "username", username)
	}

	counts, err := primary.Counts(ctx, username)
	if err != nil {
		return fmt.Errorf("fetch profile counts: %w", err)
	}

	plans := []pipeline.Plan{
		{Category: filmweb.Films, Pages: filmweb.PageCount(counts.Films)},
		{Category: filmweb.Serials, Pages: filmweb.PageCount(counts.Serials)},
		{Category: filmweb.WantToSee, Pages: filmweb.PageCount(counts.WantToSee)},
	}

	pipe := pipeline.New(
		pipeline.NewPool(fetchers),
		linker.New(searcher, logger),
		cfg.Run.Workers,
		logger,
	)

	results, stats, err := pipe.Run(ctx, username, plans)
	if err != nil {
		return err
	}

	session := &review.Session{
		In:          os.Stdin,
		Out:         os.Stdout,
		AutoDecline: !isatty.IsTerminal(os.Stdin.Fd()),
		Log:         logger,
	}
	if err := session.Confirm(results); err != nil {
		return err
	}

	files, err := export.Create(cfg.Export.Dir)
	if err != nil {
		return err
	}

	for i := range results {
		if results[i].Match.Status != linker.StatusConfirmed {
			continue
		}
		if err := files.Write(&results[i]); err != nil {
			files.Close()
			return err
		}
		if !cfg.Run.Quiet {
			fmt.Printf("[+] %s -> tt%s (%s)\n",
				results[i].Title.Name, results[i].Match.Candidate.ID, results[i].Match.Candidate.Title)
		}
	}

	// The writers are buffered; a short write only surfaces here.
	if err := files.Close(); err != nil {
		return fmt.Errorf("finalize export files: %w", err)
	}

	printSummary(os.Stdout, results, stats, files)
	return nil
}

// buildSearcher assembles the stage-B lookup backend: a pool of IMDb
// clients behind an optional sqlite cache.
func buildSearcher(cfg *config.Config, logger *slog.Logger) (imdb.Searcher, func(), error) {
	backends := make([]imdb.Searcher, sessionClients)
	for i := range backends {
		backends[i] = imdb.New(imdb.WithLogger(logger))
	}
	var searcher imdb.Searcher = imdb.NewRoundRobin(backends...)

	if cfg.Cache.Path == "" {
		return searcher, func() {}, nil
	}

	db, err := sql.Open("sqlite", cfg.Cache.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open lookup cache: %w", err)
	}
	cache, err := imdb.NewCache(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Debug("lookup cache enabled", "path", cfg.Cache.Path)
	return imdb.NewCachedSearcher(searcher, cache, logger), func() { db.Close() }, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
