package service

import (
	"context"
	"time"

	"github.com/Kavi981/Nxt-Round/internal/middleware"
	"github.com/Kavi981/Nxt-Round/internal/models"
	"github.com/Kavi981/Nxt-Round/internal/repository"
)

// ActivityService records and queries the append-only activity log.
type ActivityService struct {
	activityRepo repository.ActivityRepository
}

// RecordActivityInput describes one tracked action.
type RecordActivityInput struct {
	UserID    uint
	Action    string
	Target    string
	TargetID  *uint
	Details   string
	IPAddress string
	UserAgent string
}

// ActivityPage is one page of the activity log.
type ActivityPage struct {
	Activities  []models.Activity `json:"activities"`
	Total       int64             `json:"total"`
	TotalPages  int               `json:"total_pages"`
	CurrentPage int               `json:"current_page"`
}

// ActivityStats is the admin activity breakdown.
type ActivityStats struct {
	ByAction []models.ActionCount `json:"by_action"`
	ByTarget []models.ActionCount `json:"by_target"`
	Daily    []models.GrowthPoint `json:"daily"`
	TopUsers []models.ActiveUser  `json:"top_users"`
}

// NewActivityService returns a new ActivityService.
func NewActivityService(activityRepo repository.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// Record writes one log entry. It is best-effort: failures are logged and
// swallowed so activity tracking can never fail the request it rides on.
func (s *ActivityService) Record(ctx context.Context, in RecordActivityInput) {
	if !models.ValidActivityAction(in.Action) || !models.ValidActivityTarget(in.Target) {
		middleware.Logger.WarnContext(ctx, "dropping activity with unknown action or target",
			"action", in.Action, "target", in.Target)
		return
	}
	err := s.activityRepo.Create(ctx, &models.Activity{
		UserID:    in.UserID,
		Action:    in.Action,
		Target:    in.Target,
		TargetID:  in.TargetID,
		Details:   in.Details,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	})
	if err != nil {
		middleware.Logger.WarnContext(ctx, "failed to record activity",
			"action", in.Action, "error", err)
	}
}

// List returns one page of the activity log, newest first.
func (s *ActivityService) List(ctx context.Context, f repository.ActivityFilter, page, limit int) (*ActivityPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	activities, total, err := s.activityRepo.List(ctx, f, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &ActivityPage{
		Activities:  activities,
		Total:       total,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
	}, nil
}

// Stats returns the activity breakdown over the last 30 days.
func (s *ActivityService) Stats(ctx context.Context) (*ActivityStats, error) {
	since := time.Now().AddDate(0, 0, -30)

	byAction, err := s.activityRepo.CountByAction(ctx, since)
	if err != nil {
		return nil, err
	}
	byTarget, err := s.activityRepo.CountByTarget(ctx, since)
	if err != nil {
		return nil, err
	}
	daily, err := s.activityRepo.DailyActivity(ctx, since)
	if err != nil {
		return nil, err
	}
	topUsers, err := s.activityRepo.TopUsers(ctx, since, 10)
	if err != nil {
		return nil, err
	}
	return &ActivityStats{
		ByAction: byAction,
		ByTarget: byTarget,
		Daily:    daily,
		TopUsers: topUsers,
	}, nil
}
