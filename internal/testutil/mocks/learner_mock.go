package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wortflash/internal/models"
)

// MockLearner is a mock implementation of cli.Learner
type MockLearner struct {
	mock.Mock
}

func (m *MockLearner) LookupWord(ctx context.Context, word string) (models.WordData, error) {
	args := m.Called(ctx, word)
	return args.Get(0).(models.WordData), args.Error(1)
}

func (m *MockLearner) GeneratePracticeQuestions(ctx context.Context, word models.WordData) ([]models.Question, error) {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}
