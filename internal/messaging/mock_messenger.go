package messaging

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMessenger is a mock implementation of the Messenger interface
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendChat(ctx context.Context, account, text string) error {
	args := m.Called(ctx, account, text)
	return args.Error(0)
}

func (m *MockMessenger) SendTransient(ctx context.Context, account, text string) error {
	args := m.Called(ctx, account, text)
	return args.Error(0)
}
