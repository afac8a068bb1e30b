package service

import (
	"context"
	"strings"

	"github.com/Kavi981/Nxt-Round/internal/models"
	"github.com/Kavi981/Nxt-Round/internal/repository"
	"github.com/Kavi981/Nxt-Round/internal/validation"
)

// CompanyService carries the business rules around companies.
type CompanyService struct {
	companyRepo  repository.CompanyRepository
	questionRepo repository.QuestionRepository
}

// CompanyInput is the payload for creating or updating a company.
type CompanyInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
	Size        string `json:"size"`
}

// CompanyPage is one page of a company listing.
type CompanyPage struct {
	Companies   []models.Company `json:"companies"`
	Total       int64            `json:"total"`
	TotalPages  int              `json:"total_pages"`
	CurrentPage int              `json:"current_page"`
}

// CompanyAdminDetail is the admin drill-down for one company.
type CompanyAdminDetail struct {
	Company         *models.Company          `json:"company"`
	Questions       []*models.Question       `json:"questions"`
	Growth          []models.GrowthPoint     `json:"growth"`
	TopContributors []models.ContributorStat `json:"top_contributors"`
}

// NewCompanyService returns a new CompanyService.
func NewCompanyService(companyRepo repository.CompanyRepository, questionRepo repository.QuestionRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, questionRepo: questionRepo}
}

func (s *CompanyService) validateInput(in *CompanyInput) error {
	if !validation.NonEmpty(in.Name) {
		return models.NewValidationError("Company name is required")
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Size == "" {
		in.Size = models.CompanySizeMedium
	}
	if !models.ValidCompanySize(in.Size) {
		return models.NewValidationError("Invalid company size")
	}
	if !validation.WebURL(in.Website) {
		return models.NewValidationError("Website must be a valid URL")
	}
	return nil
}

// CreateCompany validates and persists a new company. Names are unique
// case-insensitively.
func (s *CompanyService) CreateCompany(ctx context.Context, in CompanyInput) (*models.Company, error) {
	if err := s.validateInput(&in); err != nil {
		return nil, err
	}
	existing, err := s.companyRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Company already exists")
	}

	company := &models.Company{
		Name:        in.Name,
		Description: in.Description,
		Logo:        in.Logo,
		Website:     in.Website,
		Industry:    in.Industry,
		Size:        in.Size,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany fetches one company by ID.
func (s *CompanyService) GetCompany(ctx context.Context, id uint) (*models.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

// ListCompanies returns one page of companies, most questions first.
func (s *CompanyService) ListCompanies(ctx context.Context, f repository.CompanyFilter, page, limit int) (*CompanyPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	companies, total, err := s.companyRepo.List(ctx, f, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &CompanyPage{
		Companies:   companies,
		Total:       total,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
	}, nil
}

// ListCompaniesAdmin is the admin listing with 7-day recent-question counts.
func (s *CompanyService) ListCompaniesAdmin(ctx context.Context, f repository.CompanyFilter, page, limit int) (*CompanyPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	companies, total, err := s.companyRepo.ListWithStats(ctx, f, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &CompanyPage{
		Companies:   companies,
		Total:       total,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
	}, nil
}

// UpdateCompany applies a full update to an existing company.
func (s *CompanyService) UpdateCompany(ctx context.Context, id uint, in CompanyInput) (*models.Company, error) {
	if err := s.validateInput(&in); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Renaming onto another company's name is rejected.
	if !strings.EqualFold(company.Name, in.Name) {
		existing, err := s.companyRepo.GetByName(ctx, in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewValidationError("Company already exists")
		}
	}

	company.Name = in.Name
	company.Description = in.Description
	company.Logo = in.Logo
	company.Website = in.Website
	company.Industry = in.Industry
	company.Size = in.Size
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// DeleteCompany removes a company. Its questions keep their rows; the
// admin is expected to reassign or delete them separately.
func (s *CompanyService) DeleteCompany(ctx context.Context, id uint) error {
	return s.companyRepo.Delete(ctx, id)
}

// AdminDetail assembles the admin drill-down: the company, its latest
// questions, a 30-day growth series and the top five contributors.
func (s *CompanyService) AdminDetail(ctx context.Context, companyID uint) (*CompanyAdminDetail, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	questions, _, err := s.questionRepo.List(ctx, repository.QuestionFilter{CompanyID: companyID}, 20, 0, 0)
	if err != nil {
		return nil, err
	}
	growth, err := s.questionRepo.GrowthByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	contributors, err := s.questionRepo.TopContributors(ctx, companyID, 5)
	if err != nil {
		return nil, err
	}
	return &CompanyAdminDetail{
		Company:         company,
		Questions:       questions,
		Growth:          growth,
		TopContributors: contributors,
	}, nil
}
