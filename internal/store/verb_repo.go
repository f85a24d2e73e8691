package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/verbs"
)

var verbSelectColumns = []string{
	"id", "infinitive", "past_participle", "present_participle", "auxiliary",
	"pronominal_form", "translation", "category", "difficulty", "conjugations",
}

type verbRepo struct {
	db *sql.DB
}

func (r *verbRepo) Upsert(ctx context.Context, vs ...*verbs.Verb) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	n := 0
	seen := make(map[string]struct{}, len(vs))
	for _, v := range vs {
		if v == nil {
			continue
		}
		key := verbs.Key(v.Infinitive)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		var conj sql.NullString
		if v.Conjugations != nil {
			b, err := json.Marshal(v.Conjugations)
			if err != nil {
				return 0, fmt.Errorf("encode conjugations of %q: %w", v.Infinitive, err)
			}
			conj = sql.NullString{String: string(b), Valid: true}
		}
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(tableVerbs).
			Columns("infinitive", "infinitive_key", "past_participle", "present_participle", "auxiliary",
				"pronominal_form", "translation", "category", "difficulty", "conjugations", "updated_at").
			Values(v.Infinitive, key, v.PastParticiple, v.PresentParticiple, v.Auxiliary,
				v.PronominalForm, v.Translation, v.Category, v.Difficulty, conj, now).
			OnConflict(
				entsql.ConflictColumns("infinitive_key"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("upsert verb %q: %w", v.Infinitive, err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

func (r *verbRepo) All(ctx context.Context) ([]*verbs.Verb, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(verbSelectColumns...).
		From(entsql.Table(tableVerbs)).
		OrderBy("id").
		Query()
	return r.query(ctx, query, args)
}

func (r *verbRepo) Collection(ctx context.Context) (*verbs.Collection, error) {
	vs, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	return verbs.NewCollection(vs), nil
}

func (r *verbRepo) ByInfinitive(ctx context.Context, infinitive string) (*verbs.Verb, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(verbSelectColumns...).
		From(entsql.Table(tableVerbs)).
		Where(entsql.EQ("infinitive_key", verbs.Key(infinitive))).
		Limit(1).
		Query()
	vs, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(vs) == 0 {
		return nil, nil
	}
	return vs[0], nil
}

func (r *verbRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, tableVerbs)
}

func (r *verbRepo) query(ctx context.Context, query string, args []any) ([]*verbs.Verb, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query verbs: %w", err)
	}
	defer rows.Close()

	var out []*verbs.Verb
	for rows.Next() {
		var (
			v    verbs.Verb
			conj sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.Infinitive, &v.PastParticiple, &v.PresentParticiple, &v.Auxiliary,
			&v.PronominalForm, &v.Translation, &v.Category, &v.Difficulty, &conj); err != nil {
			return nil, fmt.Errorf("scan verb: %w", err)
		}
		if conj.Valid && conj.String != "null" {
			tbl := conjugation.NewTable()
			if err := json.Unmarshal([]byte(conj.String), tbl); err != nil {
				return nil, fmt.Errorf("decode conjugations of %q: %w", v.Infinitive, err)
			}
			v.Conjugations = tbl
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func count(ctx context.Context, db *sql.DB, table string) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(table)).
		Query()
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
