package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db, now: time.Now}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Replicas share one database; only the lock holder migrates.
	const lockID = 582914377

	var acquired bool
	err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired)
	if err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	if !acquired {
		time.Sleep(2 * time.Second)
		return nil
	}
	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS words (
			id UUID PRIMARY KEY,
			word TEXT NOT NULL,
			meaning TEXT NOT NULL,
			language TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			follow_ups JSONB NOT NULL DEFAULT '[]'::jsonb
		);`,
		`CREATE INDEX IF NOT EXISTS idx_words_language_created ON words(language, created_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

const postgresColumns = `id, word, meaning, language, created_at, follow_ups`

func (s *PostgresStore) insert(ctx context.Context, ex execer, w Word) error {
	fus, err := encodeFollowUps(w.FollowUps)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx,
		`INSERT INTO words(`+postgresColumns+`) VALUES($1,$2,$3,$4,$5,$6::jsonb)`,
		w.ID, w.Word, w.Meaning, w.Language, w.CreatedAt, fus)
	return err
}

func scanPostgresWord(row rowScanner) (Word, error) {
	var (
		w   Word
		fus []byte
	)
	if err := row.Scan(&w.ID, &w.Word, &w.Meaning, &w.Language, &w.CreatedAt, &fus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Word{}, ErrWordNotFound
		}
		return Word{}, err
	}
	w.CreatedAt = w.CreatedAt.UTC()
	decoded, err := decodeFollowUps(fus)
	if err != nil {
		return Word{}, err
	}
	w.FollowUps = decoded
	return w, nil
}

func (s *PostgresStore) AddWord(ctx context.Context, w Word) (Word, error) {
	w = prepare(w, s.now())
	if err := s.insert(ctx, s.db, w); err != nil {
		return Word{}, fmt.Errorf("failed to add word %q: %w", w.Word, err)
	}
	return w, nil
}

func (s *PostgresStore) GetWord(ctx context.Context, id uuid.UUID) (Word, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postgresColumns+` FROM words WHERE id=$1`, id)
	return scanPostgresWord(row)
}

func (s *PostgresStore) ListWords(ctx context.Context, f ListFilter) ([]Word, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+postgresColumns+` FROM words
		WHERE ($1::text = '' OR language = $1)
		  AND ($2::text = '' OR word ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC, id
		LIMIT NULLIF($3::int, 0)`,
		f.Language, escapeLike(f.Search), f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPostgres(rows)
}

func collectPostgres(rows *sql.Rows) ([]Word, error) {
	out := []Word{}
	for rows.Next() {
		w, err := scanPostgresWord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteWords(ctx context.Context, ids ...uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE id = ANY($1::uuid[])`, pq.Array(strs))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *PostgresStore) AppendFollowUp(ctx context.Context, id uuid.UUID, fu FollowUp) (Word, error) {
	entry, err := encodeFollowUps([]FollowUp{fu})
	if err != nil {
		return Word{}, err
	}
	row := s.db.QueryRowContext(ctx, `
		UPDATE words SET follow_ups = follow_ups || $1::jsonb
		WHERE id = $2
		RETURNING `+postgresColumns, entry, id)
	return scanPostgresWord(row)
}

func (s *PostgresStore) Export(ctx context.Context) ([]Word, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postgresColumns+` FROM words ORDER BY created_at ASC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPostgres(rows)
}

func (s *PostgresStore) Import(ctx context.Context, words []Word) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return err
	}
	now := s.now()
	for _, w := range words {
		if err := s.insert(ctx, tx, prepare(w, now)); err != nil {
			return fmt.Errorf("failed to import word %q: %w", w.Word, err)
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
