package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) AddWord(ctx context.Context, w Word) (Word, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(Word), args.Error(1)
}

func (m *MockStore) GetWord(ctx context.Context, id uuid.UUID) (Word, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Word), args.Error(1)
}

func (m *MockStore) ListWords(ctx context.Context, f ListFilter) ([]Word, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Word), args.Error(1)
}

func (m *MockStore) DeleteWords(ctx context.Context, ids ...uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) AppendFollowUp(ctx context.Context, id uuid.UUID, fu FollowUp) (Word, error) {
	args := m.Called(ctx, id, fu)
	return args.Get(0).(Word), args.Error(1)
}

func (m *MockStore) Export(ctx context.Context) ([]Word, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Word), args.Error(1)
}

func (m *MockStore) Import(ctx context.Context, words []Word) error {
	args := m.Called(ctx, words)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
