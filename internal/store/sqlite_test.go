package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	exerciseStore(t, func(t *testing.T) Store {
		s, err := NewSQLite(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestSQLiteStorePersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "library.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	saved, err := s.AddWord(ctx, Word{Word: "Hund", Meaning: "dog", Language: "de"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetWord(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}
