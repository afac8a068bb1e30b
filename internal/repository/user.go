// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Kavi981/Nxt-Round/internal/cache"
	"github.com/Kavi981/Nxt-Round/internal/models"

	"gorm.io/gorm"
)

// UserFilter narrows admin user listings.
type UserFilter struct {
	Search string // matched against name and email, case-insensitive
	Role   string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f UserFilter, limit, offset int) ([]models.User, int64, error)
	ToggleBookmark(ctx context.Context, userID, questionID uint) (bool, error)
	BookmarkIDs(ctx context.Context, userID uint, limit, offset int) ([]uint, int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	GrowthSince(ctx context.Context, since time.Time) ([]models.GrowthPoint, error)
	ActivityByRole(ctx context.Context, since time.Time) ([]models.RoleActivity, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the user together with their questions, keeping each
// affected company's question_count in step. Bookmarks pointing at the
// removed questions are left behind on purpose (weak references).
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		type companyCount struct {
			CompanyID uint
			N         int64
		}
		var counts []companyCount
		if err := tx.Model(&models.Question{}).
			Select("company_id, COUNT(*) AS n").
			Where("author_id = ?", id).
			Group("company_id").
			Scan(&counts).Error; err != nil {
			return err
		}

		for _, cc := range counts {
			if err := tx.Model(&models.Company{}).
				Where("id = ?", cc.CompanyID).
				UpdateColumn("question_count", gorm.Expr("question_count - ?", cc.N)).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("author_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	// The cascade moved company counters; cached directory pages are stale.
	cache.InvalidateCompanyLists(ctx)
	return nil
}

func (r *userRepository) List(ctx context.Context, f UserFilter, limit, offset int) ([]models.User, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.User{})
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		base = base.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", like, like)
	}
	if f.Role != "" {
		base = base.Where("role = ?", f.Role)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	err := base.
		Select("users.*, (SELECT COUNT(*) FROM questions WHERE questions.author_id = users.id AND questions.deleted_at IS NULL) AS question_count").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

// ToggleBookmark flips the bookmark state and reports the new state.
func (r *userRepository) ToggleBookmark(ctx context.Context, userID, questionID uint) (bool, error) {
	var bookmarked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND question_id = ?", userID, questionID).
			Delete(&models.Bookmark{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			bookmarked = false
			return nil
		}
		bookmarked = true
		return tx.Create(&models.Bookmark{UserID: userID, QuestionID: questionID}).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return bookmarked, nil
}

func (r *userRepository) BookmarkIDs(ctx context.Context, userID uint, limit, offset int) ([]uint, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return ids, total, nil
}

func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *userRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("created_at >= ?", since).
		Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *userRepository) GrowthSince(ctx context.Context, since time.Time) ([]models.GrowthPoint, error) {
	return growthSeries(r.db.WithContext(ctx).Model(&models.User{}), since)
}

func (r *userRepository) ActivityByRole(ctx context.Context, since time.Time) ([]models.RoleActivity, error) {
	var rows []models.RoleActivity
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("role, COUNT(*) AS count, SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END) AS recent", since).
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}
