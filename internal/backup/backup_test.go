package backup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"snapwort/internal/store"
)

func newTestService(t *testing.T, transports ...Transport) (*Service, *store.SQLiteStore) {
	t.Helper()
	st, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := NewService(st, slog.New(slog.NewTextHandler(io.Discard, nil)), transports...)
	svc.backoff = time.Millisecond
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC) }
	return svc, st
}

func TestBackupWritesSnapshot(t *testing.T) {
	ctx := context.Background()
	tr := &MockTransport{TransportName: "mem"}
	svc, st := newTestService(t, tr)

	saved, err := st.AddWord(ctx, store.Word{Word: "Apfel", Meaning: "apple", Language: "de"})
	require.NoError(t, err)

	var written []byte
	tr.On("Put", mock.Anything, "alice", mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(2).([]byte)
	}).Return(nil).Once()

	snap, err := svc.Backup(ctx, "mem", " alice ")
	require.NoError(t, err)
	assert.Equal(t, []store.Word{saved}, snap.Library)
	assert.Equal(t, time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC), snap.LastBackup)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(written, &decoded))
	assert.Equal(t, snap, decoded)
	tr.AssertExpectations(t)
}

func TestBackupRetriesTransientFailures(t *testing.T) {
	tr := &MockTransport{TransportName: "mem"}
	svc, _ := newTestService(t, tr)

	tr.On("Put", mock.Anything, "bob", mock.Anything).Return(errors.New("connection reset")).Twice()
	tr.On("Put", mock.Anything, "bob", mock.Anything).Return(nil).Once()

	_, err := svc.Backup(context.Background(), "mem", "bob")
	require.NoError(t, err)
	tr.AssertNumberOfCalls(t, "Put", 3)
}

func TestBackupGivesUpAfterThreeAttempts(t *testing.T) {
	tr := &MockTransport{TransportName: "mem"}
	svc, _ := newTestService(t, tr)

	down := errors.New("down")
	tr.On("Put", mock.Anything, "bob", mock.Anything).Return(down)

	_, err := svc.Backup(context.Background(), "mem", "bob")
	require.ErrorIs(t, err, down)
	tr.AssertNumberOfCalls(t, "Put", 3)
}

func TestBackupRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t, &MockTransport{TransportName: "mem"})

	tests := []struct {
		name      string
		transport string
		user      string
		wantErr   error
	}{
		{"blank user", "mem", "  ", ErrUserRequired},
		{"unknown transport", "s3", "alice", ErrUnknownTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Backup(context.Background(), tt.transport, tt.user)
			assert.ErrorIs(t, err, tt.wantErr)
			_, err = svc.Restore(context.Background(), tt.transport, tt.user)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRestoreReplacesLibrary(t *testing.T) {
	ctx := context.Background()
	tr := &MockTransport{TransportName: "mem"}
	svc, st := newTestService(t, tr)

	_, err := st.AddWord(ctx, store.Word{Word: "old", Meaning: "stale", Language: "en"})
	require.NoError(t, err)

	backed := store.Word{Word: "Katze", Meaning: "cat", Language: "de",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		FollowUps: []store.FollowUp{{Question: "Plural?", Answer: "Katzen"}}}
	data, err := json.Marshal(Snapshot{Library: []store.Word{backed}})
	require.NoError(t, err)
	tr.On("Get", mock.Anything, "carol").Return(data, nil).Once()

	snap, err := svc.Restore(ctx, "mem", "carol")
	require.NoError(t, err)
	assert.Len(t, snap.Library, 1)

	words, err := st.Export(ctx)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "Katze", words[0].Word)
	assert.Equal(t, backed.FollowUps, words[0].FollowUps)
}

func TestRestoreMissingSnapshotKeepsLibrary(t *testing.T) {
	ctx := context.Background()
	tr := &MockTransport{TransportName: "mem"}
	svc, st := newTestService(t, tr)

	_, err := st.AddWord(ctx, store.Word{Word: "keep", Meaning: "stay", Language: "en"})
	require.NoError(t, err)
	tr.On("Get", mock.Anything, "dave").Return(nil, ErrNotFound).Once()

	_, err = svc.Restore(ctx, "mem", "dave")
	require.ErrorIs(t, err, ErrNotFound)

	words, err := st.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, words, 1)
}

func TestTransportsSorted(t *testing.T) {
	svc, _ := newTestService(t,
		&MockTransport{TransportName: "redis"},
		nil,
		&MockTransport{TransportName: "nats"},
	)
	assert.Equal(t, []string{"nats", "redis"}, svc.Transports())
}
