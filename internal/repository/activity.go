package repository

import (
	"context"
	"time"

	"github.com/Kavi981/Nxt-Round/internal/models"

	"gorm.io/gorm"
)

// ActivityFilter narrows activity log listings.
type ActivityFilter struct {
	UserID uint
	Action string
	Target string
}

// ActivityRepository defines persistence operations for the append-only
// activity log. There is no update or delete: entries are immutable.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	List(ctx context.Context, f ActivityFilter, limit, offset int) ([]models.Activity, int64, error)
	CountByAction(ctx context.Context, since time.Time) ([]models.ActionCount, error)
	CountByTarget(ctx context.Context, since time.Time) ([]models.ActionCount, error)
	DailyActivity(ctx context.Context, since time.Time) ([]models.GrowthPoint, error)
	TopUsers(ctx context.Context, since time.Time, n int) ([]models.ActiveUser, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository returns a new ActivityRepository implementation.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *activityRepository) List(ctx context.Context, f ActivityFilter, limit, offset int) ([]models.Activity, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Activity{})
	if f.UserID != 0 {
		base = base.Where("user_id = ?", f.UserID)
	}
	if f.Action != "" {
		base = base.Where("action = ?", f.Action)
	}
	if f.Target != "" {
		base = base.Where("target = ?", f.Target)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var activities []models.Activity
	err := base.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&activities).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return activities, total, nil
}

func (r *activityRepository) groupCount(ctx context.Context, column string, since time.Time) ([]models.ActionCount, error) {
	var rows []models.ActionCount
	err := r.db.WithContext(ctx).Model(&models.Activity{}).
		Select(column+" AS key, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group(column).
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

func (r *activityRepository) CountByAction(ctx context.Context, since time.Time) ([]models.ActionCount, error) {
	return r.groupCount(ctx, "action", since)
}

func (r *activityRepository) CountByTarget(ctx context.Context, since time.Time) ([]models.ActionCount, error) {
	return r.groupCount(ctx, "target", since)
}

func (r *activityRepository) DailyActivity(ctx context.Context, since time.Time) ([]models.GrowthPoint, error) {
	return growthSeries(r.db.WithContext(ctx).Model(&models.Activity{}), since)
}

func (r *activityRepository) TopUsers(ctx context.Context, since time.Time, n int) ([]models.ActiveUser, error) {
	var users []models.ActiveUser
	err := r.db.WithContext(ctx).Model(&models.Activity{}).
		Select("users.name, users.email, COUNT(*) AS count").
		Joins("JOIN users ON users.id = activities.user_id").
		Where("activities.created_at >= ?", since).
		Group("users.id, users.name, users.email").
		Order("count DESC").
		Limit(n).
		Scan(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
