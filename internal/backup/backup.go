package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"snapwort/internal/retry"
	"snapwort/internal/store"
)

var (
	ErrNotFound         = errors.New("backup not found")
	ErrUnknownTransport = errors.New("unknown backup transport")
	ErrUserRequired     = errors.New("backup user required")
)

const (
	putAttempts = 3
	putBackoff  = 200 * time.Millisecond
)

// Snapshot is the stored copy of one user's library.
type Snapshot struct {
	Library    []store.Word `json:"library"`
	LastBackup time.Time    `json:"lastBackup"`
}

// Transport moves encoded snapshots to and from a remote location.
type Transport interface {
	Name() string
	Put(ctx context.Context, user string, data []byte) error
	// Get returns ErrNotFound when the user has no snapshot.
	Get(ctx context.Context, user string) ([]byte, error)
}

// Service exports the library to a transport and restores it back.
type Service struct {
	store      store.Store
	log        *slog.Logger
	transports map[string]Transport
	now        func() time.Time
	backoff    time.Duration
}

func NewService(st store.Store, log *slog.Logger, transports ...Transport) *Service {
	s := &Service{
		store:      st,
		log:        log,
		transports: make(map[string]Transport, len(transports)),
		now:        time.Now,
		backoff:    putBackoff,
	}
	for _, t := range transports {
		if t != nil {
			s.transports[t.Name()] = t
		}
	}
	return s
}

// Transports lists the configured transport names, sorted.
func (s *Service) Transports() []string {
	names := make([]string, 0, len(s.transports))
	for name := range s.transports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Service) transport(name string) (Transport, error) {
	t, ok := s.transports[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, name)
	}
	return t, nil
}

// Backup writes the current library for user through the named transport.
func (s *Service) Backup(ctx context.Context, transport, user string) (Snapshot, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return Snapshot{}, ErrUserRequired
	}
	t, err := s.transport(transport)
	if err != nil {
		return Snapshot{}, err
	}

	words, err := s.store.Export(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("export library: %w", err)
	}
	snap := Snapshot{Library: words, LastBackup: s.now().UTC().Truncate(time.Millisecond)}
	data, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}

	attempt := 0
	err = retry.Do(ctx, putAttempts, s.backoff, func(ctx context.Context) error {
		attempt++
		if err := t.Put(ctx, user, data); err != nil {
			s.log.Warn("backup write failed", "transport", transport, "user", user, "attempt", attempt, "err", err)
			return err
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("backup to %s: %w", transport, err)
	}
	s.log.Info("library backed up", "transport", transport, "user", user, "words", len(words))
	return snap, nil
}

// Restore replaces the library with the user's latest snapshot.
func (s *Service) Restore(ctx context.Context, transport, user string) (Snapshot, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return Snapshot{}, ErrUserRequired
	}
	t, err := s.transport(transport)
	if err != nil {
		return Snapshot{}, err
	}

	data, err := t.Get(ctx, user)
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Library == nil {
		snap.Library = []store.Word{}
	}
	if err := s.store.Import(ctx, snap.Library); err != nil {
		return Snapshot{}, fmt.Errorf("import library: %w", err)
	}
	s.log.Info("library restored", "transport", transport, "user", user, "words", len(snap.Library))
	return snap, nil
}
