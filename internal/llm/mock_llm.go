package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client using testify/mock.
type MockClient struct {
	mock.Mock
	ModelName string
}

func (m *MockClient) Generate(ctx context.Context, messages []Message, opts Options) (string, error) {
	args := m.Called(ctx, messages, opts)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Model() string {
	return m.ModelName
}
