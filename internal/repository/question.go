package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Kavi981/Nxt-Round/internal/cache"
	"github.com/Kavi981/Nxt-Round/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionFilter narrows question listings.
type QuestionFilter struct {
	CompanyID  uint
	Role       string // substring, case-insensitive
	RoundType  string
	Difficulty string
	Search     string // case-insensitive over title, content and tags
	SortBy     string
	SortOrder  string
}

// VoteCounts is the public tally of a question's votes.
type VoteCounts struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}

// QuestionRepository defines persistence operations for questions, their
// votes and their view tracking.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Question, error)
	GetByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Question, int64, error)
	List(ctx context.Context, f QuestionFilter, limit, offset int, currentUserID uint) ([]*models.Question, int64, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	SetVote(ctx context.Context, questionID, userID uint, value int) error
	CountVotes(ctx context.Context, questionID uint) (VoteCounts, error)
	RecordView(ctx context.Context, questionID, viewerID uint) (bool, error)
	CountAll(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	CountByCompanySince(ctx context.Context, companyID uint, since time.Time) (int64, error)
	GrowthSince(ctx context.Context, since time.Time) ([]models.GrowthPoint, error)
	GrowthByCompany(ctx context.Context, companyID uint) ([]models.GrowthPoint, error)
	TopContributors(ctx context.Context, companyID uint, n int) ([]models.ContributorStat, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository returns a new QuestionRepository implementation.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// sortColumns whitelists sortBy query values against real columns.
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"views":      "views",
	"title":      "title",
	"difficulty": "difficulty",
}

// applyQuestionDetails adds subqueries to fetch vote counts and the current
// user's vote/bookmark state in a single query.
func (r *questionRepository) applyQuestionDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "questions.*, " +
		"(SELECT COUNT(*) FROM votes WHERE votes.question_id = questions.id AND votes.value = 1) AS upvote_count, " +
		"(SELECT COUNT(*) FROM votes WHERE votes.question_id = questions.id AND votes.value = -1) AS downvote_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", COALESCE((SELECT value FROM votes WHERE votes.question_id = questions.id AND votes.user_id = ?), 0) AS user_vote"+
			", EXISTS(SELECT 1 FROM bookmarks WHERE bookmarks.question_id = questions.id AND bookmarks.user_id = ?) AS bookmarked",
			currentUserID, currentUserID)
	}

	return db.Select(selectQuery + ", 0 AS user_vote, FALSE AS bookmarked")
}

// Create persists the question and increments the company's question_count in
// the same transaction, so the counter cannot drift from the true count.
func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Company{}).
			Where("id = ?", question.CompanyID).
			UpdateColumn("question_count", gorm.Expr("question_count + 1"))
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Company", question.CompanyID)
		}
		if err := tx.Create(question).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	// The directory orders by question_count, so cached pages are stale now.
	cache.InvalidateCompany(ctx, question.CompanyID)
	cache.InvalidateCompanyLists(ctx)
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Question, error) {
	var question models.Question
	err := r.applyQuestionDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Company").
		Preload("Author").
		First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Question", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &question, nil
}

// GetByIDs fetches the given questions preserving the order of ids.
// Missing (deleted) questions are silently skipped.
func (r *questionRepository) GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var questions []*models.Question
	err := r.applyQuestionDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Company").
		Preload("Author").
		Where("questions.id IN ?", ids).
		Find(&questions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	byID := make(map[uint]*models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]*models.Question, 0, len(questions))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

func (r *questionRepository) GetByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Question, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Question{}).
		Where("author_id = ?", authorID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var questions []*models.Question
	err := r.applyQuestionDetails(r.db.WithContext(ctx), authorID).
		Preload("Company").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return questions, total, nil
}

func (r *questionRepository) applyFilter(base *gorm.DB, f QuestionFilter) *gorm.DB {
	if f.CompanyID != 0 {
		base = base.Where("company_id = ?", f.CompanyID)
	}
	if f.Role != "" {
		base = base.Where("LOWER(questions.role) LIKE ?", "%"+strings.ToLower(f.Role)+"%")
	}
	if f.RoundType != "" {
		base = base.Where("round_type = ?", f.RoundType)
	}
	if f.Difficulty != "" {
		base = base.Where("difficulty = ?", f.Difficulty)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		base = base.Where("(LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?)", like, like, like)
	}
	return base
}

func (r *questionRepository) List(ctx context.Context, f QuestionFilter, limit, offset int, currentUserID uint) ([]*models.Question, int64, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Question{}), f).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		direction = "ASC"
	}

	var questions []*models.Question
	err := r.applyFilter(r.applyQuestionDetails(r.db.WithContext(ctx), currentUserID), f).
		Preload("Company").
		Preload("Author").
		Order(column + " " + direction).
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return questions, total, nil
}

func (r *questionRepository) Update(ctx context.Context, question *models.Question) error {
	if err := r.db.WithContext(ctx).Save(question).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the question and decrements its company's question_count in
// the same transaction.
func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	var companyID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Question", id)
			}
			return models.NewInternalError(err)
		}
		companyID = question.CompanyID
		if err := tx.Delete(&models.Question{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Model(&models.Company{}).
			Where("id = ?", question.CompanyID).
			UpdateColumn("question_count", gorm.Expr("question_count - 1")).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateCompany(ctx, companyID)
	cache.InvalidateCompanyLists(ctx)
	return nil
}

// SetVote applies the remove-then-add voting algorithm: the user's existing
// vote row is dropped unconditionally, then a new row is inserted unless
// value is 0 (retraction). Every call is last-write-wins for this user.
func (r *questionRepository) SetVote(ctx context.Context, questionID, userID uint, value int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND question_id = ?", userID, questionID).
			Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if value == 0 {
			return nil
		}
		return tx.Create(&models.Vote{
			UserID:     userID,
			QuestionID: questionID,
			Value:      value,
		}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *questionRepository) CountVotes(ctx context.Context, questionID uint) (VoteCounts, error) {
	var counts VoteCounts
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Select("COALESCE(SUM(CASE WHEN value = 1 THEN 1 ELSE 0 END), 0) AS upvotes, "+
			"COALESCE(SUM(CASE WHEN value = -1 THEN 1 ELSE 0 END), 0) AS downvotes").
		Where("question_id = ?", questionID).
		Scan(&counts).Error
	if err != nil {
		return VoteCounts{}, models.NewInternalError(err)
	}
	return counts, nil
}

// RecordView counts a read of the question and reports whether the view total
// moved. Authenticated viewers are counted at most once, tracked through the
// viewer set; anonymous reads increment on every call. The asymmetry is
// inherited behavior, kept on purpose.
func (r *questionRepository) RecordView(ctx context.Context, questionID, viewerID uint) (bool, error) {
	bump := func(tx *gorm.DB) error {
		return tx.Model(&models.Question{}).
			Where("id = ?", questionID).
			UpdateColumn("views", gorm.Expr("views + 1")).Error
	}

	if viewerID == 0 {
		if err := bump(r.db.WithContext(ctx)); err != nil {
			return false, models.NewInternalError(err)
		}
		return true, nil
	}

	counted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.QuestionViewer{UserID: viewerID, QuestionID: questionID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already counted for this viewer.
			return nil
		}
		counted = true
		return bump(tx)
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return counted, nil
}

func (r *questionRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Question{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *questionRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Question{}).
		Where("created_at >= ?", since).
		Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *questionRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Question{}).
		Where("author_id = ?", authorID).
		Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *questionRepository) CountByCompanySince(ctx context.Context, companyID uint, since time.Time) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Question{}).
		Where("company_id = ? AND created_at >= ?", companyID, since).
		Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *questionRepository) GrowthSince(ctx context.Context, since time.Time) ([]models.GrowthPoint, error) {
	return growthSeries(r.db.WithContext(ctx).Model(&models.Question{}), since)
}

func (r *questionRepository) GrowthByCompany(ctx context.Context, companyID uint) ([]models.GrowthPoint, error) {
	q := r.db.WithContext(ctx).Model(&models.Question{}).
		Where("company_id = ?", companyID)
	return growthSeries(q, time.Time{})
}

func (r *questionRepository) TopContributors(ctx context.Context, companyID uint, n int) ([]models.ContributorStat, error) {
	var contributors []models.ContributorStat
	err := r.db.WithContext(ctx).Model(&models.Question{}).
		Select("users.name, users.email, COUNT(*) AS question_count").
		Joins("JOIN users ON users.id = questions.author_id").
		Where("questions.company_id = ?", companyID).
		Group("users.id, users.name, users.email").
		Order("question_count DESC").
		Limit(n).
		Scan(&contributors).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return contributors, nil
}
