package backup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data map[string][]byte
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.data[key] = value.([]byte)
	return redis.NewStatusResult("OK", nil)
}

func TestRedisTransport(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedis{data: map[string][]byte{}}
	tr := NewRedisTransport(fake)

	_, err := tr.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, tr.Put(ctx, "alice", []byte(`{"library":[]}`)))
	assert.Contains(t, fake.data, "backups:alice")

	got, err := tr.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, `{"library":[]}`, string(got))
	assert.Equal(t, "redis", tr.Name())
}

type fakeEntry struct {
	nats.KeyValueEntry
	value []byte
}

func (e fakeEntry) Value() []byte { return e.value }

type fakeKV struct {
	data map[string][]byte
	err  error
}

func (f *fakeKV) Put(key string, value []byte) (uint64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.data[key] = value
	return uint64(len(f.data)), nil
}

func (f *fakeKV) Get(key string) (nats.KeyValueEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.data[key]
	if !ok {
		return nil, nats.ErrKeyNotFound
	}
	return fakeEntry{value: v}, nil
}

func TestNATSTransport(t *testing.T) {
	ctx := context.Background()
	kv := &fakeKV{data: map[string][]byte{}}
	tr := &NATSTransport{kv: kv}

	_, err := tr.Get(ctx, "Jürgen Müller")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, tr.Put(ctx, "Jürgen Müller", []byte("snap")))
	for key := range kv.data {
		assert.Regexp(t, `^[A-Za-z0-9_-]+$`, key)
	}

	got, err := tr.Get(ctx, "Jürgen Müller")
	require.NoError(t, err)
	assert.Equal(t, "snap", string(got))
}

func TestNATSTransportPassesErrors(t *testing.T) {
	boom := errors.New("no responders")
	tr := &NATSTransport{kv: &fakeKV{err: boom}}

	_, err := tr.Get(context.Background(), "alice")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, tr.Put(context.Background(), "alice", nil), boom)
}
