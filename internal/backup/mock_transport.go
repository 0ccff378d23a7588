package backup

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTransport struct {
	mock.Mock
	TransportName string
}

func (m *MockTransport) Name() string {
	return m.TransportName
}

func (m *MockTransport) Put(ctx context.Context, user string, data []byte) error {
	args := m.Called(ctx, user, data)
	return args.Error(0)
}

func (m *MockTransport) Get(ctx context.Context, user string) ([]byte, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
