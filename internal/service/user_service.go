package service

import (
	"context"
	"strings"
	"time"

	"github.com/Kavi981/Nxt-Round/internal/models"
	"github.com/Kavi981/Nxt-Round/internal/repository"
	"github.com/Kavi981/Nxt-Round/internal/validation"
)

// UserService carries the business rules around profiles, bookmarks and
// admin user management.
type UserService struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
}

// UpdateProfileInput is the self-service profile update payload.
type UpdateProfileInput struct {
	UserID uint
	Name   *string
	Avatar *string
}

// Profile is a user plus recent bookmark previews.
type Profile struct {
	User      *models.User       `json:"user"`
	Bookmarks []*models.Question `json:"bookmarks"`
}

// UserAdminDetail is the admin drill-down for one user.
type UserAdminDetail struct {
	User          *models.User       `json:"user"`
	Questions     []*models.Question `json:"questions"`
	QuestionCount int64              `json:"question_count"`
	BookmarkCount int64              `json:"bookmark_count"`
}

// UserPage is one page of an admin user listing.
type UserPage struct {
	Users       []models.User `json:"users"`
	Total       int64         `json:"total"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, questionRepo repository.QuestionRepository) *UserService {
	return &UserService{userRepo: userRepo, questionRepo: questionRepo}
}

// GetProfile returns the user with their most recent bookmark previews.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids, _, err := s.userRepo.BookmarkIDs(ctx, userID, 5, 0)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.questionRepo.GetByIDs(ctx, ids, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Bookmarks: bookmarks}, nil
}

// UpdateProfile changes the caller's name and avatar. Email and role are
// not self-serviceable.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if !validation.NonEmpty(*in.Name) {
			return nil, models.NewValidationError("Name is required")
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Avatar != nil {
		if !validation.WebURL(*in.Avatar) {
			return nil, models.NewValidationError("Avatar must be a valid URL")
		}
		user.Avatar = *in.Avatar
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// MyQuestions returns one page of the caller's own questions.
func (s *UserService) MyQuestions(ctx context.Context, userID uint, page, limit int) (*QuestionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	questions, total, err := s.questionRepo.GetByAuthor(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &QuestionPage{
		Questions:   questions,
		Total:       total,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
	}, nil
}

// ToggleBookmark flips the caller's bookmark on a question and reports the
// new state. The question must exist; bookmarks are not cleaned up when a
// question is later deleted, so stale rows are tolerated on read.
func (s *UserService) ToggleBookmark(ctx context.Context, userID, questionID uint) (bool, error) {
	if _, err := s.questionRepo.GetByID(ctx, questionID, 0); err != nil {
		return false, err
	}
	return s.userRepo.ToggleBookmark(ctx, userID, questionID)
}

// Bookmarks returns one page of the caller's bookmarked questions, newest
// bookmark first. Questions deleted since bookmarking are skipped.
func (s *UserService) Bookmarks(ctx context.Context, userID uint, page, limit int) (*QuestionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	ids, total, err := s.userRepo.BookmarkIDs(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.GetByIDs(ctx, ids, userID)
	if err != nil {
		return nil, err
	}
	return &QuestionPage{
		Questions:   questions,
		Total:       total,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
	}, nil
}

// ListUsers is the admin listing with per-user question counts.
func (s *UserService) ListUsers(ctx context.Context, f repository.UserFilter, page, limit int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	users, total, err := s.userRepo.List(ctx, f, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &UserPage{
		Users:       users,
		Total:       total,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
	}, nil
}

// AdminDetail assembles the admin drill-down: the user, their recent
// questions and contribution counts.
func (s *UserService) AdminDetail(ctx context.Context, userID uint) (*UserAdminDetail, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	questions, questionCount, err := s.questionRepo.GetByAuthor(ctx, userID, 10, 0)
	if err != nil {
		return nil, err
	}
	_, bookmarkCount, err := s.userRepo.BookmarkIDs(ctx, userID, 1, 0)
	if err != nil {
		return nil, err
	}
	return &UserAdminDetail{
		User:          user,
		Questions:     questions,
		QuestionCount: questionCount,
		BookmarkCount: bookmarkCount,
	}, nil
}

// ChangeRole sets a user's role (admin only at the handler layer). An admin
// cannot demote themselves; that always leaves at least one admin.
func (s *UserService) ChangeRole(ctx context.Context, actorID, userID uint, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, models.NewValidationError("Role must be student or admin")
	}
	if actorID == userID && role != models.RoleAdmin {
		return nil, models.NewValidationError("Cannot demote your own account")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user along with their questions; company counters
// are decremented in the same transaction. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID uint) error {
	if actorID == userID {
		return models.NewValidationError("Cannot delete your own account")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// FindOrCreateFromGoogle resolves an OAuth identity to a local account,
// creating one on first sign-in. Accounts created before OAuth linking (by
// the createadmin command) are matched by email and linked.
func (s *UserService) FindOrCreateFromGoogle(ctx context.Context, googleID, name, email, avatar string) (*models.User, bool, error) {
	if googleID == "" || email == "" {
		return nil, false, models.NewValidationError("Incomplete Google profile")
	}
	user, err := s.userRepo.GetByGoogleID(ctx, googleID)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		// Keep name and avatar fresh from the provider.
		if (name != "" && user.Name != name) || user.Avatar != avatar {
			user.Name = name
			user.Avatar = avatar
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, false, err
			}
		}
		return user, false, nil
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		user.GoogleID = &googleID
		user.Avatar = avatar
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, false, err
		}
		return user, false, nil
	}

	user = &models.User{
		GoogleID: &googleID,
		Name:     name,
		Email:    email,
		Avatar:   avatar,
		Role:     models.RoleStudent,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// SignupWindow is how far back "active users" looks; the metric counts
// signups, not logins.
const SignupWindow = 30 * 24 * time.Hour
