package backup

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

// keyValue is the part of nats.KeyValue the transport needs.
type keyValue interface {
	Put(key string, value []byte) (uint64, error)
	Get(key string) (nats.KeyValueEntry, error)
}

// NATSTransport stores snapshots in a JetStream key-value bucket.
type NATSTransport struct {
	kv keyValue
}

// NewNATSTransport binds to bucket, creating it when missing.
func NewNATSTransport(nc *nats.Conn, bucket string) (*NATSTransport, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      bucket,
			Description: "snapwort library snapshots",
			History:     5,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("bind bucket %s: %w", bucket, err)
	}
	return &NATSTransport{kv: kv}, nil
}

func (t *NATSTransport) Name() string { return "nats" }

// KV keys only allow a restricted alphabet, so user names are encoded.
func natsKey(user string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(user))
}

func (t *NATSTransport) Put(_ context.Context, user string, data []byte) error {
	_, err := t.kv.Put(natsKey(user), data)
	return err
}

func (t *NATSTransport) Get(_ context.Context, user string) ([]byte, error) {
	entry, err := t.kv.Get(natsKey(user))
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry.Value(), nil
}
