package repository

import (
	"context"
	"testing"

	"github.com/Kavi981/Nxt-Round/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyGetByNameCaseInsensitive(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	createTestCompany(t, db, "Google")
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	got, err := repo.GetByName(ctx, "gOOgle")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Google", got.Name)

	got, err = repo.GetByName(ctx, "Netflix")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCompanyDeleteMissing(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCompanyRepository(db)

	err := repo.Delete(context.Background(), 42)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCompanyListOrdering(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	author := createTestUser(t, db, "Asha", "asha@example.com")
	amazon := createTestCompany(t, db, "Amazon")
	stripe := createTestCompany(t, db, "Stripe")
	createTestCompany(t, db, "Zebra Labs")
	createTestQuestion(t, db, author, stripe, "Idempotency keys")

	repo := NewCompanyRepository(db)
	got, total, err := repo.List(context.Background(), CompanyFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, got, 3)

	// Most questions first, then alphabetical.
	assert.Equal(t, stripe.ID, got[0].ID)
	assert.Equal(t, amazon.ID, got[1].ID)
	assert.Equal(t, 1, got[0].QuestionCount)
}

func TestCompanyListSearch(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	createTestCompany(t, db, "Goldman Sachs")
	createTestCompany(t, db, "Stripe")

	repo := NewCompanyRepository(db)
	got, total, err := repo.List(context.Background(), CompanyFilter{Search: "gold"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, "Goldman Sachs", got[0].Name)
}

func TestTopByQuestionsUsesLiveCounts(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	author := createTestUser(t, db, "Asha", "asha@example.com")
	google := createTestCompany(t, db, "Google")
	stripe := createTestCompany(t, db, "Stripe")
	createTestQuestion(t, db, author, google, "A")
	createTestQuestion(t, db, author, google, "B")
	createTestQuestion(t, db, author, stripe, "C")

	repo := NewCompanyRepository(db)
	ranks, err := repo.TopByQuestions(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, ranks, 2)
	assert.Equal(t, "Google", ranks[0].Name)
	assert.Equal(t, int64(2), ranks[0].QuestionCount)
	assert.Equal(t, "Stripe", ranks[1].Name)
}
