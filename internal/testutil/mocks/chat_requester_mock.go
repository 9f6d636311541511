package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wortflash/internal/models"
)

// MockChatRequester is a mock implementation of chat.Requester
type MockChatRequester struct {
	mock.Mock
}

func (m *MockChatRequester) SendChatMessage(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	args := m.Called(ctx, message, history)
	return args.String(0), args.Error(1)
}
