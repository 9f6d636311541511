package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wortflash/internal/gateway"
)

// MockCompleter is a mock implementation of gateway.Completer
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, messages []gateway.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}
