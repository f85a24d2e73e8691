package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/verbiz/internal/config"
	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/rounds"
	"github.com/abhisek/verbiz/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	for _, env := range []string{
		"VERBIZ_CONFIG", "VERBIZ_DB", "VERBIZ_LLM_PROVIDER", "VERBIZ_LOG_LEVEL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	t.Chdir(t.TempDir())

	a, err := New(context.Background(), Options{
		DBPath: filepath.Join(t.TempDir(), "verbiz.db"),
		Seed:   7,
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNew_SeedsBuiltinData(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	n, err := a.Store.VerbRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = a.Store.SentenceRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	assert.Nil(t, a.Provider)
	assert.Equal(t, uint64(7), a.Config.Game.Seed)
}

func TestNew_SeedsOnlyOnce(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.seed(ctx))
	n, err := a.Store.VerbRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestRegistry_GeneratesAndRecords(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	reg, err := a.Registry(ctx)
	require.NoError(t, err)
	assert.Contains(t, reg.Modes(), rounds.Sentence)

	batch, err := reg.Generate(ctx, rounds.FillGrid, rounds.Request{
		Verbs:  []string{"parler", "finir"},
		Tenses: []conjugation.Tense{conjugation.Present},
		Steps:  2,
	})
	require.NoError(t, err)
	require.Equal(t, 2, batch.Len())

	s, err := a.NewSession(batch)
	require.NoError(t, err)
	for !s.Done() {
		_, err := s.Submit(ctx, s.Current().Expected()...)
		require.NoError(t, err)
	}

	evs, err := a.Store.EventRepo().QueryRounds(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "fill-grid", evs[0].Mode)
	assert.Equal(t, 200, evs[0].Score)
	assert.Equal(t, 2, evs[0].CorrectSteps)
}

func TestAuthor_RequiresProvider(t *testing.T) {
	a := newTestApp(t)
	_, err := a.Author()
	assert.True(t, errors.Is(err, ErrNoProvider))
}

func TestNewLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := newLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	l.Info("hidden")
	l.Warn("shown", "k", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Same(t, l, slog.Default())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		" WARN": slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}
