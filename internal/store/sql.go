package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func encodeFollowUps(fus []FollowUp) (string, error) {
	if fus == nil {
		fus = []FollowUp{}
	}
	data, err := json.Marshal(fus)
	if err != nil {
		return "", fmt.Errorf("encode follow-ups: %w", err)
	}
	return string(data), nil
}

func decodeFollowUps(data []byte) ([]FollowUp, error) {
	fus := []FollowUp{}
	if len(data) == 0 {
		return fus, nil
	}
	if err := json.Unmarshal(data, &fus); err != nil {
		return nil, fmt.Errorf("decode follow-ups: %w", err)
	}
	return fus, nil
}

// escapeLike escapes LIKE wildcards so a search matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
