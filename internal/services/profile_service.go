package services

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/wortflash/internal/logger"
	"github.com/vytor/wortflash/internal/models"
	"github.com/vytor/wortflash/internal/repository"
)

// ProfileService keeps the learner's practice history and derived stats.
type ProfileService interface {
	GetProfile(ctx context.Context) models.UserProfile
	RecordPracticeResult(ctx context.Context, result models.PracticeResult) models.UserProfile
}

type profileService struct {
	mu    sync.Mutex
	repo  repository.KeyValueRepository
	clock Clock
}

// NewProfileService creates a new ProfileService
func NewProfileService(repo repository.KeyValueRepository, clock Clock) ProfileService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &profileService{repo: repo, clock: clock}
}

func (s *profileService) GetProfile(ctx context.Context) models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *profileService) load(ctx context.Context) models.UserProfile {
	profile := models.NewUserProfile()
	if !loadJSON(ctx, s.repo, repository.ProfileKey, &profile) {
		return models.NewUserProfile()
	}
	if profile.PracticeHistory == nil {
		profile.PracticeHistory = []models.PracticeResult{}
	}
	return profile
}

// RecordPracticeResult appends result and recomputes the aggregates over the
// whole history. Calling it twice for one session counts the session twice.
func (s *profileService) RecordPracticeResult(ctx context.Context, result models.PracticeResult) models.UserProfile {
	log := logger.FromContext(ctx).WithPrefix("profile")

	s.mu.Lock()
	defer s.mu.Unlock()

	if result.Date == "" {
		result.Date = s.clock.Now().Format(time.RFC3339)
	}

	profile := s.load(ctx)
	profile.PracticeHistory = append(profile.PracticeHistory, result)
	profile.Recompute()

	log.Info("recorded practice: word=%s score=%d/%d total=%d avg=%.2f",
		result.Word, result.Score, result.TotalQuestions, profile.TotalPractices, profile.AverageScore)

	saveJSON(ctx, s.repo, repository.ProfileKey, profile)
	return profile
}
