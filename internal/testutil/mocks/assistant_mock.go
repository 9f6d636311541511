package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wortflash/internal/models"
)

// MockAssistant is a mock implementation of assistant.Service
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) LookupWord(ctx context.Context, word string) (models.WordData, error) {
	args := m.Called(ctx, word)
	return args.Get(0).(models.WordData), args.Error(1)
}

func (m *MockAssistant) GenerateQuestions(ctx context.Context, word models.WordContext) (models.QuestionList, error) {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.QuestionList), args.Error(1)
}

func (m *MockAssistant) Reply(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	args := m.Called(ctx, message, history)
	return args.String(0), args.Error(1)
}
