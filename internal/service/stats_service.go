package service

import (
	"context"
	"time"

	"github.com/Kavi981/Nxt-Round/internal/cache"
	"github.com/Kavi981/Nxt-Round/internal/models"
	"github.com/Kavi981/Nxt-Round/internal/repository"
)

// StatsService aggregates platform-wide numbers for the public landing
// stats and the admin dashboard.
type StatsService struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	companyRepo  repository.CompanyRepository
}

// PlatformStats is the public counters block.
type PlatformStats struct {
	Questions int64 `json:"questions"`
	Companies int64 `json:"companies"`
	Users     int64 `json:"users"`
}

// OverviewStats is the admin dashboard summary. ActiveUsers counts signups
// in the last 30 days, not logins.
type OverviewStats struct {
	Totals          PlatformStats        `json:"totals"`
	RecentQuestions int64                `json:"recent_questions"`
	RecentUsers     int64                `json:"recent_users"`
	ActiveUsers     int64                `json:"active_users"`
	TopCompanies    []models.CompanyRank `json:"top_companies"`
}

// AnalyticsStats is the admin time-series view over a 7, 30 or 90 day
// period.
type AnalyticsStats struct {
	PeriodDays     int                   `json:"period_days"`
	QuestionGrowth []models.GrowthPoint  `json:"question_growth"`
	UserGrowth     []models.GrowthPoint  `json:"user_growth"`
	Companies      []models.CompanyRank  `json:"companies"`
	UsersByRole    []models.RoleActivity `json:"users_by_role"`
}

// NewStatsService returns a new StatsService.
func NewStatsService(userRepo repository.UserRepository, questionRepo repository.QuestionRepository, companyRepo repository.CompanyRepository) *StatsService {
	return &StatsService{userRepo: userRepo, questionRepo: questionRepo, companyRepo: companyRepo}
}

func (s *StatsService) totals(ctx context.Context) (PlatformStats, error) {
	var stats PlatformStats
	var err error
	if stats.Questions, err = s.questionRepo.CountAll(ctx); err != nil {
		return stats, err
	}
	if stats.Companies, err = s.companyRepo.CountAll(ctx); err != nil {
		return stats, err
	}
	if stats.Users, err = s.userRepo.CountAll(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}

// Platform returns the public counters, cache-aside with a short TTL.
func (s *StatsService) Platform(ctx context.Context) (PlatformStats, error) {
	var stats PlatformStats
	err := cache.Aside(ctx, cache.PlatformStatsKey, &stats, cache.PlatformStatsTTL, func() error {
		var fetchErr error
		stats, fetchErr = s.totals(ctx)
		return fetchErr
	})
	return stats, err
}

// Overview returns the admin dashboard summary.
func (s *StatsService) Overview(ctx context.Context) (*OverviewStats, error) {
	totals, err := s.totals(ctx)
	if err != nil {
		return nil, err
	}
	weekAgo := time.Now().AddDate(0, 0, -7)

	recentQuestions, err := s.questionRepo.CountSince(ctx, weekAgo)
	if err != nil {
		return nil, err
	}
	recentUsers, err := s.userRepo.CountSince(ctx, weekAgo)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.userRepo.CountSince(ctx, time.Now().Add(-SignupWindow))
	if err != nil {
		return nil, err
	}
	topCompanies, err := s.companyRepo.TopByQuestions(ctx, 5)
	if err != nil {
		return nil, err
	}
	return &OverviewStats{
		Totals:          totals,
		RecentQuestions: recentQuestions,
		RecentUsers:     recentUsers,
		ActiveUsers:     activeUsers,
		TopCompanies:    topCompanies,
	}, nil
}

// Analytics returns growth series over the requested period. Periods other
// than 7, 30 or 90 days fall back to 30.
func (s *StatsService) Analytics(ctx context.Context, periodDays int) (*AnalyticsStats, error) {
	switch periodDays {
	case 7, 30, 90:
	default:
		periodDays = 30
	}
	since := time.Now().AddDate(0, 0, -periodDays)

	questionGrowth, err := s.questionRepo.GrowthSince(ctx, since)
	if err != nil {
		return nil, err
	}
	userGrowth, err := s.userRepo.GrowthSince(ctx, since)
	if err != nil {
		return nil, err
	}
	companies, err := s.companyRepo.RankAllByQuestions(ctx)
	if err != nil {
		return nil, err
	}
	usersByRole, err := s.userRepo.ActivityByRole(ctx, since)
	if err != nil {
		return nil, err
	}
	return &AnalyticsStats{
		PeriodDays:     periodDays,
		QuestionGrowth: questionGrowth,
		UserGrowth:     userGrowth,
		Companies:      companies,
		UsersByRole:    usersByRole,
	}, nil
}
