package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wortflash/internal/models"
	"github.com/vytor/wortflash/internal/repository"
	"github.com/vytor/wortflash/internal/repository/memory"
	"github.com/vytor/wortflash/internal/services"
	"github.com/vytor/wortflash/internal/testutil"
	"github.com/vytor/wortflash/internal/testutil/mocks"
)

var march1 = time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)

func TestProfileService_EmptyStoreGivesZeroProfile(t *testing.T) {
	svc := services.NewProfileService(memory.NewKeyValueRepository(), testutil.NewClock(march1))

	p := svc.GetProfile(context.Background())
	assert.Equal(t, 0, p.TotalPractices)
	assert.Equal(t, 0.0, p.AverageScore)
	assert.NotNil(t, p.PracticeHistory)
	assert.Empty(t, p.PracticeHistory)
}

func TestProfileService_RecordUpdatesAverage(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewKeyValueRepository()
	svc := services.NewProfileService(repo, testutil.NewClock(march1))

	p := svc.RecordPracticeResult(ctx, models.PracticeResult{Word: "Buch", Score: 7, TotalQuestions: 10})
	assert.Equal(t, 1, p.TotalPractices)
	assert.InDelta(t, 7.0, p.AverageScore, 1e-9)
	assert.Equal(t, march1.Format(time.RFC3339), p.PracticeHistory[0].Date)

	p = svc.RecordPracticeResult(ctx, models.PracticeResult{Word: "Hund", Score: 10, TotalQuestions: 10})
	assert.Equal(t, 2, p.TotalPractices)
	assert.InDelta(t, 8.5, p.AverageScore, 1e-9)

	// A fresh service over the same store sees the persisted profile.
	reloaded := services.NewProfileService(repo, testutil.NewClock(march1)).GetProfile(ctx)
	assert.Equal(t, p, reloaded)
}

func TestProfileService_ZeroQuestionResultCountsAsZero(t *testing.T) {
	ctx := context.Background()
	svc := services.NewProfileService(memory.NewKeyValueRepository(), testutil.NewClock(march1))

	svc.RecordPracticeResult(ctx, models.PracticeResult{Word: "Buch", Score: 10, TotalQuestions: 10})
	p := svc.RecordPracticeResult(ctx, models.PracticeResult{Word: "leer", Score: 0, TotalQuestions: 0})

	assert.Equal(t, 2, p.TotalPractices)
	assert.InDelta(t, 5.0, p.AverageScore, 1e-9)
}

func TestProfileService_RecordingTwiceCountsTwice(t *testing.T) {
	ctx := context.Background()
	svc := services.NewProfileService(memory.NewKeyValueRepository(), testutil.NewClock(march1))

	r := models.PracticeResult{Date: "2026-03-01T09:30:00Z", Word: "Buch", Score: 3, TotalQuestions: 10}
	svc.RecordPracticeResult(ctx, r)
	p := svc.RecordPracticeResult(ctx, r)

	assert.Equal(t, 2, p.TotalPractices)
	assert.Len(t, p.PracticeHistory, 2)
}

func TestProfileService_MalformedRecordFallsBack(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewKeyValueRepository()
	require.NoError(t, repo.Set(ctx, repository.ProfileKey, []byte(`{not json`)))

	svc := services.NewProfileService(repo, testutil.NewClock(march1))
	assert.Equal(t, models.NewUserProfile(), svc.GetProfile(ctx))

	p := svc.RecordPracticeResult(ctx, models.PracticeResult{Word: "Buch", Score: 5, TotalQuestions: 10})
	assert.Equal(t, 1, p.TotalPractices)
}

func TestProfileService_StoreFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockKeyValueRepository)
	repo.On("Get", mock.Anything, repository.ProfileKey).Return(nil, false, errors.New("disk gone"))
	repo.On("Set", mock.Anything, repository.ProfileKey, mock.Anything).Return(errors.New("read-only"))

	svc := services.NewProfileService(repo, testutil.NewClock(march1))

	assert.Equal(t, models.NewUserProfile(), svc.GetProfile(ctx))
	p := svc.RecordPracticeResult(ctx, models.PracticeResult{Word: "Buch", Score: 4, TotalQuestions: 5})
	assert.Equal(t, 1, p.TotalPractices)
	assert.InDelta(t, 8.0, p.AverageScore, 1e-9)

	repo.AssertExpectations(t)
}
