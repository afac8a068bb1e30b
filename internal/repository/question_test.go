package repository

import (
	"context"
	"testing"

	"github.com/Kavi981/Nxt-Round/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuestionIncrementsCompanyCount(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	author := createTestUser(t, db, "Asha", "asha@example.com")
	company := createTestCompany(t, db, "Google")

	createTestQuestion(t, db, author, company, "Reverse a linked list")

	var reloaded models.Company
	require.NoError(t, db.First(&reloaded, company.ID).Error)
	assert.Equal(t, 1, reloaded.QuestionCount)
}

func TestCreateQuestionUnknownCompany(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	author := createTestUser(t, db, "Asha", "asha@example.com")
	repo := NewQuestionRepository(db)

	err := repo.Create(context.Background(), &models.Question{
		Title:     "Orphan",
		Content:   "no company",
		CompanyID: 999,
		Role:      "SDE",
		RoundType: models.RoundCoding,
		AuthorID:  author.ID,
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	// Nothing was persisted.
	var n int64
	require.NoError(t, db.Model(&models.Question{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestDeleteQuestionDecrementsCompanyCount(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	author := createTestUser(t, db, "Asha", "asha@example.com")
	company := createTestCompany(t, db, "Google")
	question := createTestQuestion(t, db, author, company, "Design a URL shortener")
	repo := NewQuestionRepository(db)

	require.NoError(t, repo.Delete(context.Background(), question.ID))

	var reloaded models.Company
	require.NoError(t, db.First(&reloaded, company.ID).Error)
	assert.Equal(t, 0, reloaded.QuestionCount)

	_, err := repo.GetByID(context.Background(), question.ID, 0)
	require.Error(t, err)
}

func TestSetVoteMutualExclusivity(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	author := createTestUser(t, db, "Asha", "asha@example.com")
	voter := createTestUser(t, db, "Ben", "ben@example.com")
	company := createTestCompany(t, db, "Google")
	question := createTestQuestion(t, db, author, company, "Two sum")
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SetVote(ctx, question.ID, voter.ID, models.VoteUp))
	require.NoError(t, repo.SetVote(ctx, question.ID, voter.ID, models.VoteDown))

	counts, err := repo.CountVotes(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Upvotes)
	assert.Equal(t, int64(1), counts.Downvotes)

	// Voting the same way twice keeps a single membership.
	require.NoError(t, repo.SetVote(ctx, question.ID, voter.ID, models.VoteDown))
	counts, err = repo.CountVotes(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Downvotes)
}

func TestSetVoteRetraction(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	author := createTestUser(t, db, "Asha", "asha@example.com")
	a := createTestUser(t, db, "A", "a@example.com")
	b := createTestUser(t, db, "B", "b@example.com")
	company := createTestCompany(t, db, "Google")
	question := createTestQuestion(t, db, author, company, "LRU cache")
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SetVote(ctx, question.ID, a.ID, models.VoteUp))
	require.NoError(t, repo.SetVote(ctx, question.ID, b.ID, models.VoteUp))
	require.NoError(t, repo.SetVote(ctx, question.ID, a.ID, 0))

	counts, err := repo.CountVotes(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Upvotes)

	// The remaining vote belongs to B.
	got, err := repo.GetByID(ctx, question.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VoteUp, got.UserVote)

	got, err = repo.GetByID(ctx, question.ID, a.ID)
	require.NoError(t, err)
	assert.Zero(t, got.UserVote)
}

func TestRecordViewAuthenticatedAtMostOnce(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	author := createTestUser(t, db, "Asha", "asha@example.com")
	viewer := createTestUser(t, db, "Ben", "ben@example.com")
	company := createTestCompany(t, db, "Google")
	question := createTestQuestion(t, db, author, company, "Merge intervals")
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	counted, err := repo.RecordView(ctx, question.ID, viewer.ID)
	require.NoError(t, err)
	assert.True(t, counted)

	counted, err = repo.RecordView(ctx, question.ID, viewer.ID)
	require.NoError(t, err)
	assert.False(t, counted)

	counted, err = repo.RecordView(ctx, question.ID, viewer.ID)
	require.NoError(t, err)
	assert.False(t, counted)

	got, err := repo.GetByID(ctx, question.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)
}

func TestRecordViewAnonymousEveryTime(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	author := createTestUser(t, db, "Asha", "asha@example.com")
	company := createTestCompany(t, db, "Google")
	question := createTestQuestion(t, db, author, company, "Detect a cycle")
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		counted, err := repo.RecordView(ctx, question.ID, 0)
		require.NoError(t, err)
		assert.True(t, counted)
	}

	got, err := repo.GetByID(ctx, question.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Views)
}

func TestListQuestionsFiltersAndSearch(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	author := createTestUser(t, db, "Asha", "asha@example.com")
	google := createTestCompany(t, db, "Google")
	stripe := createTestCompany(t, db, "Stripe")
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	q1 := &models.Question{
		Title: "Reverse a linked list", Content: "iterative and recursive",
		CompanyID: google.ID, Role: "SDE", RoundType: models.RoundCoding,
		Difficulty: models.DifficultyEasy, AuthorID: author.ID,
		Tags: []string{"linked-list", "pointers"},
	}
	q2 := &models.Question{
		Title: "Design a payments ledger", Content: "double entry bookkeeping",
		CompanyID: stripe.ID, Role: "Backend Engineer", RoundType: models.RoundSystemDesign,
		Difficulty: models.DifficultyHard, AuthorID: author.ID,
	}
	require.NoError(t, repo.Create(ctx, q1))
	require.NoError(t, repo.Create(ctx, q2))

	// Filter by company.
	got, total, err := repo.List(ctx, QuestionFilter{CompanyID: stripe.ID}, 10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, q2.ID, got[0].ID)

	// Role substring is case-insensitive.
	got, _, err = repo.List(ctx, QuestionFilter{Role: "backend"}, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, q2.ID, got[0].ID)

	// Search hits tags as well as title/content.
	got, _, err = repo.List(ctx, QuestionFilter{Search: "pointers"}, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, q1.ID, got[0].ID)

	// Unknown sort keys fall back to newest-first.
	got, _, err = repo.List(ctx, QuestionFilter{SortBy: "evil; DROP TABLE"}, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, q2.ID, got[0].ID)
}

func TestTopContributors(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	prolific := createTestUser(t, db, "Prolific", "prolific@example.com")
	casual := createTestUser(t, db, "Casual", "casual@example.com")
	company := createTestCompany(t, db, "Google")

	for i := 0; i < 3; i++ {
		createTestQuestion(t, db, prolific, company, "Question "+string(rune('A'+i)))
	}
	createTestQuestion(t, db, casual, company, "Question Z")

	repo := NewQuestionRepository(db)
	contributors, err := repo.TopContributors(context.Background(), company.ID, 5)
	require.NoError(t, err)
	require.Len(t, contributors, 2)
	assert.Equal(t, "Prolific", contributors[0].Name)
	assert.Equal(t, int64(3), contributors[0].QuestionCount)
}
