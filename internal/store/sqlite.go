package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const memoryDSN = ":memory:"

// SQLiteStore keeps the library in a local SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens (or creates) the database at path. ":memory:" gives a
// private in-memory database.
func NewSQLite(path string) (*SQLiteStore, error) {
	dsn := memoryDSN
	if path != memoryDSN {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create db directory %s: %w", dir, err)
			}
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db at %s: %w", path, err)
	}
	if path == memoryDSN {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db at %s: %w", path, err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS words (
			id TEXT PRIMARY KEY,
			word TEXT NOT NULL,
			meaning TEXT NOT NULL,
			language TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			follow_ups TEXT NOT NULL DEFAULT '[]'
		);
		CREATE INDEX IF NOT EXISTS idx_words_language_created ON words(language, created_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate words table: %w", err)
	}
	return nil
}

const sqliteColumns = `id, word, meaning, language, created_at, follow_ups`

func (s *SQLiteStore) insert(ctx context.Context, ex execer, w Word) error {
	fus, err := encodeFollowUps(w.FollowUps)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `INSERT INTO words(`+sqliteColumns+`) VALUES(?,?,?,?,?,?)`,
		w.ID.String(), w.Word, w.Meaning, w.Language, w.CreatedAt.UnixMilli(), fus)
	return err
}

func scanSQLiteWord(row rowScanner) (Word, error) {
	var (
		w         Word
		createdMs int64
		fus       string
	)
	if err := row.Scan(&w.ID, &w.Word, &w.Meaning, &w.Language, &createdMs, &fus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Word{}, ErrWordNotFound
		}
		return Word{}, err
	}
	w.CreatedAt = time.UnixMilli(createdMs).UTC()
	decoded, err := decodeFollowUps([]byte(fus))
	if err != nil {
		return Word{}, err
	}
	w.FollowUps = decoded
	return w, nil
}

func (s *SQLiteStore) AddWord(ctx context.Context, w Word) (Word, error) {
	w = prepare(w, s.now())
	if err := s.insert(ctx, s.db, w); err != nil {
		return Word{}, fmt.Errorf("failed to add word %q: %w", w.Word, err)
	}
	return w, nil
}

func (s *SQLiteStore) GetWord(ctx context.Context, id uuid.UUID) (Word, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sqliteColumns+` FROM words WHERE id=?`, id.String())
	return scanSQLiteWord(row)
}

func (s *SQLiteStore) ListWords(ctx context.Context, f ListFilter) ([]Word, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sqliteColumns+` FROM words
		WHERE (?1 = '' OR language = ?1)
		  AND (?2 = '' OR word LIKE '%' || ?2 || '%' ESCAPE '\')
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?3`,
		f.Language, escapeLike(f.Search), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSQLite(rows)
}

func collectSQLite(rows *sql.Rows) ([]Word, error) {
	out := []Word{}
	for rows.Next() {
		w, err := scanSQLiteWord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteWords(ctx context.Context, ids ...uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	res, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) AppendFollowUp(ctx context.Context, id uuid.UUID, fu FollowUp) (Word, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Word{}, err
	}
	defer tx.Rollback()

	w, err := scanSQLiteWord(tx.QueryRowContext(ctx, `SELECT `+sqliteColumns+` FROM words WHERE id=?`, id.String()))
	if err != nil {
		return Word{}, err
	}
	w.FollowUps = append(w.FollowUps, fu)
	encoded, err := encodeFollowUps(w.FollowUps)
	if err != nil {
		return Word{}, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE words SET follow_ups=? WHERE id=?`, encoded, id.String()); err != nil {
		return Word{}, err
	}
	if err := tx.Commit(); err != nil {
		return Word{}, err
	}
	return w, nil
}

func (s *SQLiteStore) Export(ctx context.Context) ([]Word, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sqliteColumns+` FROM words ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSQLite(rows)
}

func (s *SQLiteStore) Import(ctx context.Context, words []Word) error {
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

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
