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

// CompanyFilter narrows company listings.
type CompanyFilter struct {
	Search   string // case-insensitive name match
	Industry string
}

// CompanyRepository defines persistence operations for companies.
type CompanyRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Company, error)
	GetByName(ctx context.Context, name string) (*models.Company, error)
	Create(ctx context.Context, company *models.Company) error
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f CompanyFilter, limit, offset int) ([]models.Company, int64, error)
	ListWithStats(ctx context.Context, f CompanyFilter, limit, offset int) ([]models.Company, int64, error)
	CountAll(ctx context.Context) (int64, error)
	TopByQuestions(ctx context.Context, n int) ([]models.CompanyRank, error)
	RankAllByQuestions(ctx context.Context) ([]models.CompanyRank, error)
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository returns a new CompanyRepository implementation.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	key := cache.CompanyKey(id)

	err := cache.Aside(ctx, key, &company, cache.CompanyTTL, func() error {
		if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Company", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) GetByName(ctx context.Context, name string) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &company, nil
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCompanyLists(ctx)
	return nil
}

func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	if err := r.db.WithContext(ctx).Save(company).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCompany(ctx, company.ID)
	cache.InvalidateCompanyLists(ctx)
	return nil
}

func (r *companyRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Company{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Company", id)
	}
	cache.InvalidateCompany(ctx, id)
	cache.InvalidateCompanyLists(ctx)
	return nil
}

func (r *companyRepository) applyFilter(base *gorm.DB, f CompanyFilter) *gorm.DB {
	if f.Search != "" {
		base = base.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if f.Industry != "" {
		base = base.Where("industry = ?", f.Industry)
	}
	return base
}

// companyPage is the cached shape of one public directory page.
type companyPage struct {
	Companies []models.Company `json:"companies"`
	Total     int64            `json:"total"`
}

// List returns companies ordered the way the public directory shows them:
// busiest first, then alphabetically. Pages without an industry filter are
// served cache-aside; mutations invalidate the whole namespace.
func (r *companyRepository) List(ctx context.Context, f CompanyFilter, limit, offset int) ([]models.Company, int64, error) {
	fetch := func(page *companyPage) error {
		base := r.applyFilter(r.db.WithContext(ctx).Model(&models.Company{}), f)

		if err := base.Count(&page.Total).Error; err != nil {
			return models.NewInternalError(err)
		}
		err := base.
			Order("question_count DESC, name ASC").
			Limit(limit).
			Offset(offset).
			Find(&page.Companies).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	var page companyPage
	if f.Industry != "" {
		if err := fetch(&page); err != nil {
			return nil, 0, err
		}
		return page.Companies, page.Total, nil
	}

	key := cache.CompanyListKey(limit, offset, strings.ToLower(f.Search))
	err := cache.Aside(ctx, key, &page, cache.CompanyListTTL, func() error {
		return fetch(&page)
	})
	if err != nil {
		return nil, 0, err
	}
	return page.Companies, page.Total, nil
}

// ListWithStats is the admin listing: newest first, with a live total and a
// 7-day question count computed per company.
func (r *companyRepository) ListWithStats(ctx context.Context, f CompanyFilter, limit, offset int) ([]models.Company, int64, error) {
	base := r.applyFilter(r.db.WithContext(ctx).Model(&models.Company{}), f)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	weekAgo := time.Now().Add(-7 * 24 * time.Hour)
	var companies []models.Company
	err := base.
		Select("companies.*, "+
			"(SELECT COUNT(*) FROM questions WHERE questions.company_id = companies.id AND questions.deleted_at IS NULL AND questions.created_at >= ?) AS recent_questions",
			weekAgo).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&companies).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return companies, total, nil
}

func (r *companyRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Company{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *companyRepository) rankByQuestions(ctx context.Context, limit int) ([]models.CompanyRank, error) {
	q := r.db.WithContext(ctx).Model(&models.Company{}).
		Select("companies.id, companies.name, companies.industry, " +
			"(SELECT COUNT(*) FROM questions WHERE questions.company_id = companies.id AND questions.deleted_at IS NULL) AS question_count").
		Order("question_count DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var ranks []models.CompanyRank
	if err := q.Scan(&ranks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ranks, nil
}

// TopByQuestions ranks companies by a live question count rather than the
// denormalized counter, so the dashboard never reflects counter drift.
func (r *companyRepository) TopByQuestions(ctx context.Context, n int) ([]models.CompanyRank, error) {
	return r.rankByQuestions(ctx, n)
}

func (r *companyRepository) RankAllByQuestions(ctx context.Context) ([]models.CompanyRank, error) {
	return r.rankByQuestions(ctx, 0)
}
