package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/sentences"
)

var sentenceSelectColumns = []string{"id", "text", "verbs", "tenses"}

type sentenceRepo struct {
	db *sql.DB
}

func (r *sentenceRepo) Add(ctx context.Context, source string, ts ...sentences.Template) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	n := 0
	for _, t := range ts {
		if err := t.Validate(); err != nil {
			return 0, fmt.Errorf("sentence %q: %w", t.Text, err)
		}
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		vb, err := json.Marshal(t.Verbs)
		if err != nil {
			return 0, fmt.Errorf("encode verbs: %w", err)
		}
		tb, err := json.Marshal(tensesToStrings(t.Tenses))
		if err != nil {
			return 0, fmt.Errorf("encode tenses: %w", err)
		}
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(tableSentences).
			Columns("id", "text", "verbs", "tenses", "source", "created_at").
			Values(id, t.Text, string(vb), string(tb), source, now).
			OnConflict(entsql.ConflictColumns("text"), entsql.DoNothing()).
			Query()
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert sentence: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil {
			n += int(affected)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// ByTenses returns templates whose tense list overlaps tenses, in random
// order. No tenses means any template.
func (r *sentenceRepo) ByTenses(ctx context.Context, tenses []conjugation.Tense, limit int) ([]sentences.Template, error) {
	if limit <= 0 {
		limit = sentences.DefaultLimit
	}
	sel := entsql.Dialect(dialect.SQLite).
		Select(sentenceSelectColumns...).
		From(entsql.Table(tableSentences))
	if len(tenses) > 0 {
		args := make([]any, len(tenses))
		for i, t := range tenses {
			args[i] = string(t)
		}
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(tenses)), ", ")
		sel.Where(entsql.ExprP(
			"EXISTS (SELECT 1 FROM json_each(`sentences`.`tenses`) WHERE json_each.value IN ("+marks+"))",
			args...,
		))
	}
	query, args := sel.OrderExpr(entsql.Expr("RANDOM()")).Limit(limit).Query()
	return r.query(ctx, query, args)
}

func (r *sentenceRepo) List(ctx context.Context, limit int) ([]sentences.Template, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(sentenceSelectColumns...).
		From(entsql.Table(tableSentences)).
		OrderBy("created_at", "text")
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *sentenceRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, tableSentences)
}

func (r *sentenceRepo) query(ctx context.Context, query string, args []any) ([]sentences.Template, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sentences: %w", err)
	}
	defer rows.Close()

	var out []sentences.Template
	for rows.Next() {
		var (
			t          sentences.Template
			vb, tb     string
			tenseNames []string
		)
		if err := rows.Scan(&t.ID, &t.Text, &vb, &tb); err != nil {
			return nil, fmt.Errorf("scan sentence: %w", err)
		}
		if err := json.Unmarshal([]byte(vb), &t.Verbs); err != nil {
			return nil, fmt.Errorf("decode verbs of %s: %w", t.ID, err)
		}
		if err := json.Unmarshal([]byte(tb), &tenseNames); err != nil {
			return nil, fmt.Errorf("decode tenses of %s: %w", t.ID, err)
		}
		for _, name := range tenseNames {
			t.Tenses = append(t.Tenses, conjugation.Tense(name))
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
