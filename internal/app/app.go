// Package app wires configuration, storage, generators and the optional
// LLM provider into one value the CLI commands share.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/verbiz/internal/config"
	"github.com/abhisek/verbiz/internal/llm"
	"github.com/abhisek/verbiz/internal/random"
	"github.com/abhisek/verbiz/internal/rounds"
	"github.com/abhisek/verbiz/internal/sentences"
	"github.com/abhisek/verbiz/internal/sentences/author"
	"github.com/abhisek/verbiz/internal/session"
	"github.com/abhisek/verbiz/internal/store"
	"github.com/abhisek/verbiz/internal/verbs"
)

// SourceBuiltin tags sentences seeded from the embedded data set.
const SourceBuiltin = "builtin"

// Options override configuration from command-line flags.
type Options struct {
	ConfigPath string
	DBPath     string
	Seed       uint64 // 0 keeps the configured seed
}

// App holds the shared services.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *store.Store

	// Provider is nil when no LLM provider is configured.
	Provider llm.Provider
}

// New loads configuration, opens the store and seeds it with the built-in
// verbs and sentences on first use.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.DBPath != "" {
		cfg.Store.Path = opts.DBPath
	}
	if opts.Seed != 0 {
		cfg.Game.Seed = opts.Seed
	}
	logger := NewLogger(cfg.Log)

	path, err := store.DefaultDBPath(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(path, store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	a := &App{Config: cfg, Logger: logger, Store: st}
	if err := a.seed(ctx); err != nil {
		st.Close()
		return nil, err
	}

	a.Provider, err = llm.NewProvider(ctx, cfg.LLM.ProviderConfig(), st.EventRepo(), logger)
	switch {
	case errors.Is(err, llm.ErrDisabled):
		logger.Debug("llm provider disabled")
	case err != nil:
		logger.Warn("llm provider unavailable", "error", err)
	}
	return a, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// seed loads the embedded data sets into an empty store.
func (a *App) seed(ctx context.Context) error {
	if n, err := a.Store.VerbRepo().Count(ctx); err != nil {
		return err
	} else if n == 0 {
		c, err := verbs.Builtin()
		if err != nil {
			return err
		}
		n, err = a.Store.VerbRepo().Upsert(ctx, c.All()...)
		if err != nil {
			return fmt.Errorf("seed verbs: %w", err)
		}
		a.Logger.Debug("seeded verbs", "count", n)
	}

	if n, err := a.Store.SentenceRepo().Count(ctx); err != nil {
		return err
	} else if n == 0 {
		ts, err := sentences.Builtin()
		if err != nil {
			return err
		}
		if _, err := a.Store.SentenceRepo().Add(ctx, SourceBuiltin, ts...); err != nil {
			return fmt.Errorf("seed sentences: %w", err)
		}
		a.Logger.Debug("seeded sentences", "count", len(ts))
	}
	return nil
}

// Registry builds a generator registry over the stored verbs. The seed
// from configuration makes batches reproducible.
func (a *App) Registry(ctx context.Context) (*rounds.Registry, error) {
	coll, err := a.Store.VerbRepo().Collection(ctx)
	if err != nil {
		return nil, err
	}

	src := random.NewTime()
	if a.Config.Game.Seed != 0 {
		src = random.New(a.Config.Game.Seed)
	}
	cfg := rounds.DefaultConfig()
	cfg.MaxTries = a.Config.Game.MaxTries
	cfg.Source = src
	cfg.Logger = a.Logger

	return rounds.NewRegistry(rounds.Deps{
		Verbs:     coll,
		Sentences: a.Store.SentenceRepo(),
	}, cfg), nil
}

// NewSession starts a session that records its round in the store.
func (a *App) NewSession(batch *rounds.Batch) (*session.Session, error) {
	return session.New(batch,
		session.WithEvents(a.Store.EventRepo()),
		session.WithLogger(a.Logger),
	)
}

// ErrNoProvider is returned by Author when LLM features are unavailable.
var ErrNoProvider = errors.New("no LLM provider configured; set VERBIZ_LLM_PROVIDER and its API key")

// Author returns a sentence author bound to the configured provider.
func (a *App) Author() (*author.Author, error) {
	if a.Provider == nil {
		return nil, ErrNoProvider
	}
	return author.New(a.Provider, author.DefaultConfig()), nil
}
