package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrWordNotFound = errors.New("word not found")

// FollowUp is one follow-up question asked about a saved word.
type FollowUp struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Word is a saved library entry.
type Word struct {
	ID        uuid.UUID  `json:"id"`
	Word      string     `json:"word"`
	Meaning   string     `json:"meaning"`
	Language  string     `json:"language"`
	CreatedAt time.Time  `json:"createdAt"`
	FollowUps []FollowUp `json:"followUpHistory"`
}

// ListFilter narrows ListWords. Zero values match everything.
type ListFilter struct {
	Language string
	Search   string // case-insensitive substring of Word
	Limit    int
}

// Store defines the word library contract.
type Store interface {
	AddWord(ctx context.Context, w Word) (Word, error)
	GetWord(ctx context.Context, id uuid.UUID) (Word, error)
	// ListWords returns matching entries, newest first.
	ListWords(ctx context.Context, f ListFilter) ([]Word, error)
	// DeleteWords removes the given entries and reports how many existed.
	DeleteWords(ctx context.Context, ids ...uuid.UUID) (int, error)
	AppendFollowUp(ctx context.Context, id uuid.UUID, fu FollowUp) (Word, error)
	// Export returns the whole library, oldest first.
	Export(ctx context.Context) ([]Word, error)
	// Import atomically replaces the whole library.
	Import(ctx context.Context, words []Word) error
	Close() error
}

// prepare fills the generated fields of a new entry.
func prepare(w Word, now time.Time) Word {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.CreatedAt = w.CreatedAt.UTC().Truncate(time.Millisecond)
	if w.FollowUps == nil {
		w.FollowUps = []FollowUp{}
	}
	return w
}
