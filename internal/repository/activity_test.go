package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Kavi981/Nxt-Round/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedActivities(t *testing.T, repo ActivityRepository, userID uint, actions ...string) {
	t.Helper()
	targetID := uint(1)
	for _, action := range actions {
		err := repo.Create(context.Background(), &models.Activity{
			UserID:   userID,
			Action:   action,
			Target:   models.TargetQuestion,
			TargetID: &targetID,
		})
		require.NoError(t, err)
	}
}

func TestActivityListFilters(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	asha := createTestUser(t, db, "Asha", "asha@example.com")
	ben := createTestUser(t, db, "Ben", "ben@example.com")
	repo := NewActivityRepository(db)

	seedActivities(t, repo, asha.ID, models.ActionPostQuestion, models.ActionBookmarkQuestion)
	seedActivities(t, repo, ben.ID, models.ActionPostQuestion)

	got, total, err := repo.List(context.Background(), ActivityFilter{UserID: asha.ID}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 2)
	assert.Equal(t, "Asha", got[0].User.Name)

	got, total, err = repo.List(context.Background(), ActivityFilter{Action: models.ActionPostQuestion}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 2)
}

func TestActivityAggregates(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	asha := createTestUser(t, db, "Asha", "asha@example.com")
	ben := createTestUser(t, db, "Ben", "ben@example.com")
	repo := NewActivityRepository(db)

	seedActivities(t, repo, asha.ID, models.ActionPostQuestion, models.ActionPostQuestion, models.ActionLogin)
	seedActivities(t, repo, ben.ID, models.ActionLogin)

	since := time.Now().AddDate(0, 0, -7)

	byAction, err := repo.CountByAction(context.Background(), since)
	require.NoError(t, err)
	counts := map[string]int64{}
	for _, c := range byAction {
		counts[c.Key] = c.Count
	}
	assert.Equal(t, int64(2), counts[models.ActionPostQuestion])
	assert.Equal(t, int64(2), counts[models.ActionLogin])

	daily, err := repo.DailyActivity(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, int64(4), daily[0].Count)

	top, err := repo.TopUsers(context.Background(), since, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Asha", top[0].Name)
	assert.Equal(t, int64(3), top[0].Count)
}
