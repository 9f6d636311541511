package services

import (
	"context"
	"sync"

	"github.com/vytor/wortflash/internal/logger"
	"github.com/vytor/wortflash/internal/models"
	"github.com/vytor/wortflash/internal/repository"
)

// DailyChatLimit is the number of chat messages allowed per calendar day.
const DailyChatLimit = 5

// ChatQuotaService tracks the daily chat allowance.
type ChatQuotaService interface {
	GetChatUsage(ctx context.Context) models.ChatUsage
	IncrementChatUsage(ctx context.Context) models.ChatUsage
	CanSendChatMessage(ctx context.Context) bool
	RemainingChatMessages(ctx context.Context) int
}

type chatQuotaService struct {
	mu    sync.Mutex
	repo  repository.KeyValueRepository
	clock Clock
	limit int
}

// NewChatQuotaService creates a new ChatQuotaService
func NewChatQuotaService(repo repository.KeyValueRepository, clock Clock) ChatQuotaService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &chatQuotaService{repo: repo, clock: clock, limit: DailyChatLimit}
}

// GetChatUsage returns today's usage. A record from another day reads as zero;
// the stale record is left in place until the next increment.
func (s *chatQuotaService) GetChatUsage(ctx context.Context) models.ChatUsage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx)
}

func (s *chatQuotaService) current(ctx context.Context) models.ChatUsage {
	today := Today(s.clock.Now())

	var usage models.ChatUsage
	if !loadJSON(ctx, s.repo, repository.ChatUsageKey, &usage) {
		return models.ChatUsage{Date: today}
	}
	if !IsSameDay(usage.Date, s.clock.Now()) {
		logger.FromContext(ctx).WithPrefix("quota").Debug("usage from %s is stale, resetting for %s", usage.Date, today)
		return models.ChatUsage{Date: today}
	}
	if usage.Count < 0 {
		usage.Count = 0
	}
	return usage
}

// IncrementChatUsage charges one message against today's allowance.
func (s *chatQuotaService) IncrementChatUsage(ctx context.Context) models.ChatUsage {
	s.mu.Lock()
	defer s.mu.Unlock()

	usage := s.current(ctx)
	usage.Count++
	logger.FromContext(ctx).WithPrefix("quota").Info("chat usage %d/%d for %s", usage.Count, s.limit, usage.Date)

	saveJSON(ctx, s.repo, repository.ChatUsageKey, usage)
	return usage
}

func (s *chatQuotaService) CanSendChatMessage(ctx context.Context) bool {
	return s.GetChatUsage(ctx).Count < s.limit
}

func (s *chatQuotaService) RemainingChatMessages(ctx context.Context) int {
	remaining := s.limit - s.GetChatUsage(ctx).Count
	if remaining < 0 {
		return 0
	}
	return remaining
}
