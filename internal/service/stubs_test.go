package service

import (
	"context"
	"time"

	"github.com/Kavi981/Nxt-Round/internal/models"
	"github.com/Kavi981/Nxt-Round/internal/repository"
)

// questionRepoStub is a stub for repository.QuestionRepository.
type questionRepoStub struct {
	createFn              func(context.Context, *models.Question) error
	getByIDFn             func(context.Context, uint, uint) (*models.Question, error)
	getByIDsFn            func(context.Context, []uint, uint) ([]*models.Question, error)
	getByAuthorFn         func(context.Context, uint, int, int) ([]*models.Question, int64, error)
	listFn                func(context.Context, repository.QuestionFilter, int, int, uint) ([]*models.Question, int64, error)
	updateFn              func(context.Context, *models.Question) error
	deleteFn              func(context.Context, uint) error
	setVoteFn             func(context.Context, uint, uint, int) error
	countVotesFn          func(context.Context, uint) (repository.VoteCounts, error)
	recordViewFn          func(context.Context, uint, uint) (bool, error)
	countAllFn            func(context.Context) (int64, error)
	countSinceFn          func(context.Context, time.Time) (int64, error)
	countByAuthorFn       func(context.Context, uint) (int64, error)
	countByCompanySinceFn func(context.Context, uint, time.Time) (int64, error)
	growthSinceFn         func(context.Context, time.Time) ([]models.GrowthPoint, error)
	growthByCompanyFn     func(context.Context, uint) ([]models.GrowthPoint, error)
	topContributorsFn     func(context.Context, uint, int) ([]models.ContributorStat, error)
}

func (s *questionRepoStub) Create(ctx context.Context, q *models.Question) error {
	return s.createFn(ctx, q)
}
func (s *questionRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Question, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *questionRepoStub) GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Question, error) {
	return s.getByIDsFn(ctx, ids, currentUserID)
}
func (s *questionRepoStub) GetByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Question, int64, error) {
	return s.getByAuthorFn(ctx, authorID, limit, offset)
}
func (s *questionRepoStub) List(ctx context.Context, f repository.QuestionFilter, limit, offset int, currentUserID uint) ([]*models.Question, int64, error) {
	return s.listFn(ctx, f, limit, offset, currentUserID)
}
func (s *questionRepoStub) Update(ctx context.Context, q *models.Question) error {
	return s.updateFn(ctx, q)
}
func (s *questionRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *questionRepoStub) SetVote(ctx context.Context, questionID, userID uint, value int) error {
	return s.setVoteFn(ctx, questionID, userID, value)
}
func (s *questionRepoStub) CountVotes(ctx context.Context, questionID uint) (repository.VoteCounts, error) {
	return s.countVotesFn(ctx, questionID)
}
func (s *questionRepoStub) RecordView(ctx context.Context, questionID, viewerID uint) (bool, error) {
	return s.recordViewFn(ctx, questionID, viewerID)
}
func (s *questionRepoStub) CountAll(ctx context.Context) (int64, error) { return s.countAllFn(ctx) }
func (s *questionRepoStub) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countSinceFn(ctx, since)
}
func (s *questionRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}
func (s *questionRepoStub) CountByCompanySince(ctx context.Context, companyID uint, since time.Time) (int64, error) {
	return s.countByCompanySinceFn(ctx, companyID, since)
}
func (s *questionRepoStub) GrowthSince(ctx context.Context, since time.Time) ([]models.GrowthPoint, error) {
	return s.growthSinceFn(ctx, since)
}
func (s *questionRepoStub) GrowthByCompany(ctx context.Context, companyID uint) ([]models.GrowthPoint, error) {
	return s.growthByCompanyFn(ctx, companyID)
}
func (s *questionRepoStub) TopContributors(ctx context.Context, companyID uint, n int) ([]models.ContributorStat, error) {
	return s.topContributorsFn(ctx, companyID, n)
}

func noopQuestionRepo() *questionRepoStub {
	return &questionRepoStub{
		createFn: func(_ context.Context, _ *models.Question) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Question, error) {
			return &models.Question{ID: id}, nil
		},
		getByIDsFn: func(_ context.Context, _ []uint, _ uint) ([]*models.Question, error) { return nil, nil },
		getByAuthorFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Question, int64, error) {
			return nil, 0, nil
		},
		listFn: func(_ context.Context, _ repository.QuestionFilter, _, _ int, _ uint) ([]*models.Question, int64, error) {
			return nil, 0, nil
		},
		updateFn:    func(_ context.Context, _ *models.Question) error { return nil },
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
		setVoteFn:   func(_ context.Context, _, _ uint, _ int) error { return nil },
		countVotesFn: func(_ context.Context, _ uint) (repository.VoteCounts, error) {
			return repository.VoteCounts{}, nil
		},
		recordViewFn:          func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countAllFn:            func(_ context.Context) (int64, error) { return 0, nil },
		countSinceFn:          func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
		countByAuthorFn:       func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countByCompanySinceFn: func(_ context.Context, _ uint, _ time.Time) (int64, error) { return 0, nil },
		growthSinceFn:         func(_ context.Context, _ time.Time) ([]models.GrowthPoint, error) { return nil, nil },
		growthByCompanyFn:     func(_ context.Context, _ uint) ([]models.GrowthPoint, error) { return nil, nil },
		topContributorsFn: func(_ context.Context, _ uint, _ int) ([]models.ContributorStat, error) {
			return nil, nil
		},
	}
}

// companyRepoStub is a stub for repository.CompanyRepository.
type companyRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.Company, error)
	getByNameFn     func(context.Context, string) (*models.Company, error)
	createFn        func(context.Context, *models.Company) error
	updateFn        func(context.Context, *models.Company) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, repository.CompanyFilter, int, int) ([]models.Company, int64, error)
	listWithStatsFn func(context.Context, repository.CompanyFilter, int, int) ([]models.Company, int64, error)
	countAllFn      func(context.Context) (int64, error)
	topFn           func(context.Context, int) ([]models.CompanyRank, error)
	rankAllFn       func(context.Context) ([]models.CompanyRank, error)
}

func (s *companyRepoStub) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	return s.getByIDFn(ctx, id)
}
func (s *companyRepoStub) GetByName(ctx context.Context, name string) (*models.Company, error) {
	return s.getByNameFn(ctx, name)
}
func (s *companyRepoStub) Create(ctx context.Context, c *models.Company) error {
	return s.createFn(ctx, c)
}
func (s *companyRepoStub) Update(ctx context.Context, c *models.Company) error {
	return s.updateFn(ctx, c)
}
func (s *companyRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *companyRepoStub) List(ctx context.Context, f repository.CompanyFilter, limit, offset int) ([]models.Company, int64, error) {
	return s.listFn(ctx, f, limit, offset)
}
func (s *companyRepoStub) ListWithStats(ctx context.Context, f repository.CompanyFilter, limit, offset int) ([]models.Company, int64, error) {
	return s.listWithStatsFn(ctx, f, limit, offset)
}
func (s *companyRepoStub) CountAll(ctx context.Context) (int64, error) { return s.countAllFn(ctx) }
func (s *companyRepoStub) TopByQuestions(ctx context.Context, n int) ([]models.CompanyRank, error) {
	return s.topFn(ctx, n)
}
func (s *companyRepoStub) RankAllByQuestions(ctx context.Context) ([]models.CompanyRank, error) {
	return s.rankAllFn(ctx)
}

func noopCompanyRepo() *companyRepoStub {
	return &companyRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Company, error) {
			return &models.Company{ID: id}, nil
		},
		getByNameFn: func(_ context.Context, _ string) (*models.Company, error) { return nil, nil },
		createFn:    func(_ context.Context, _ *models.Company) error { return nil },
		updateFn:    func(_ context.Context, _ *models.Company) error { return nil },
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ repository.CompanyFilter, _, _ int) ([]models.Company, int64, error) {
			return nil, 0, nil
		},
		listWithStatsFn: func(_ context.Context, _ repository.CompanyFilter, _, _ int) ([]models.Company, int64, error) {
			return nil, 0, nil
		},
		countAllFn: func(_ context.Context) (int64, error) { return 0, nil },
		topFn:      func(_ context.Context, _ int) ([]models.CompanyRank, error) { return nil, nil },
		rankAllFn:  func(_ context.Context) ([]models.CompanyRank, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByGoogleIDFn  func(context.Context, string) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	updateFn         func(context.Context, *models.User) error
	deleteFn         func(context.Context, uint) error
	listFn           func(context.Context, repository.UserFilter, int, int) ([]models.User, int64, error)
	toggleBookmarkFn func(context.Context, uint, uint) (bool, error)
	bookmarkIDsFn    func(context.Context, uint, int, int) ([]uint, int64, error)
	countAllFn       func(context.Context) (int64, error)
	countSinceFn     func(context.Context, time.Time) (int64, error)
	growthSinceFn    func(context.Context, time.Time) ([]models.GrowthPoint, error)
	activityByRoleFn func(context.Context, time.Time) ([]models.RoleActivity, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return s.getByGoogleIDFn(ctx, googleID)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *userRepoStub) List(ctx context.Context, f repository.UserFilter, limit, offset int) ([]models.User, int64, error) {
	return s.listFn(ctx, f, limit, offset)
}
func (s *userRepoStub) ToggleBookmark(ctx context.Context, userID, questionID uint) (bool, error) {
	return s.toggleBookmarkFn(ctx, userID, questionID)
}
func (s *userRepoStub) BookmarkIDs(ctx context.Context, userID uint, limit, offset int) ([]uint, int64, error) {
	return s.bookmarkIDsFn(ctx, userID, limit, offset)
}
func (s *userRepoStub) CountAll(ctx context.Context) (int64, error) { return s.countAllFn(ctx) }
func (s *userRepoStub) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countSinceFn(ctx, since)
}
func (s *userRepoStub) GrowthSince(ctx context.Context, since time.Time) ([]models.GrowthPoint, error) {
	return s.growthSinceFn(ctx, since)
}
func (s *userRepoStub) ActivityByRole(ctx context.Context, since time.Time) ([]models.RoleActivity, error) {
	return s.activityByRoleFn(ctx, since)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByGoogleIDFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ repository.UserFilter, _, _ int) ([]models.User, int64, error) {
			return nil, 0, nil
		},
		toggleBookmarkFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		bookmarkIDsFn:    func(_ context.Context, _ uint, _, _ int) ([]uint, int64, error) { return nil, 0, nil },
		countAllFn:       func(_ context.Context) (int64, error) { return 0, nil },
		countSinceFn:     func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
		growthSinceFn:    func(_ context.Context, _ time.Time) ([]models.GrowthPoint, error) { return nil, nil },
		activityByRoleFn: func(_ context.Context, _ time.Time) ([]models.RoleActivity, error) { return nil, nil },
	}
}

// activityRepoStub is a stub for repository.ActivityRepository.
type activityRepoStub struct {
	createFn        func(context.Context, *models.Activity) error
	listFn          func(context.Context, repository.ActivityFilter, int, int) ([]models.Activity, int64, error)
	countByActionFn func(context.Context, time.Time) ([]models.ActionCount, error)
	countByTargetFn func(context.Context, time.Time) ([]models.ActionCount, error)
	dailyActivityFn func(context.Context, time.Time) ([]models.GrowthPoint, error)
	topUsersFn      func(context.Context, time.Time, int) ([]models.ActiveUser, error)
}

func (s *activityRepoStub) Create(ctx context.Context, a *models.Activity) error {
	return s.createFn(ctx, a)
}
func (s *activityRepoStub) List(ctx context.Context, f repository.ActivityFilter, limit, offset int) ([]models.Activity, int64, error) {
	return s.listFn(ctx, f, limit, offset)
}
func (s *activityRepoStub) CountByAction(ctx context.Context, since time.Time) ([]models.ActionCount, error) {
	return s.countByActionFn(ctx, since)
}
func (s *activityRepoStub) CountByTarget(ctx context.Context, since time.Time) ([]models.ActionCount, error) {
	return s.countByTargetFn(ctx, since)
}
func (s *activityRepoStub) DailyActivity(ctx context.Context, since time.Time) ([]models.GrowthPoint, error) {
	return s.dailyActivityFn(ctx, since)
}
func (s *activityRepoStub) TopUsers(ctx context.Context, since time.Time, n int) ([]models.ActiveUser, error) {
	return s.topUsersFn(ctx, since, n)
}

func noopActivityRepo() *activityRepoStub {
	return &activityRepoStub{
		createFn: func(_ context.Context, _ *models.Activity) error { return nil },
		listFn: func(_ context.Context, _ repository.ActivityFilter, _, _ int) ([]models.Activity, int64, error) {
			return nil, 0, nil
		},
		countByActionFn: func(_ context.Context, _ time.Time) ([]models.ActionCount, error) { return nil, nil },
		countByTargetFn: func(_ context.Context, _ time.Time) ([]models.ActionCount, error) { return nil, nil },
		dailyActivityFn: func(_ context.Context, _ time.Time) ([]models.GrowthPoint, error) { return nil, nil },
		topUsersFn:      func(_ context.Context, _ time.Time, _ int) ([]models.ActiveUser, error) { return nil, nil },
	}
}
