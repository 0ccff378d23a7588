package orchestrator

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAssistant is a mock implementation of Assistant using testify/mock.
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) Lookup(ctx context.Context, q Query) (StructuredAnswer, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(StructuredAnswer), args.Error(1)
}

func (m *MockAssistant) FollowUp(ctx context.Context, q FollowUpQuery) (FollowUpAnswer, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(FollowUpAnswer), args.Error(1)
}
