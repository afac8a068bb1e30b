package service

import (
	"context"
	"testing"

	"github.com/Kavi981/Nxt-Round/internal/models"
	"github.com/Kavi981/Nxt-Round/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateInput() CreateQuestionInput {
	return CreateQuestionInput{
		AuthorID:  1,
		Title:     "Reverse a linked list",
		Content:   "Asked in the first coding round.",
		CompanyID: 2,
		Role:      "SDE",
		RoundType: models.RoundCoding,
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	t.Parallel()

	svc := NewQuestionService(noopQuestionRepo(), noopCompanyRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateQuestionInput)
	}{
		{"missing title", func(in *CreateQuestionInput) { in.Title = "  " }},
		{"missing content", func(in *CreateQuestionInput) { in.Content = "" }},
		{"missing company", func(in *CreateQuestionInput) { in.CompanyID = 0 }},
		{"missing role", func(in *CreateQuestionInput) { in.Role = "" }},
		{"bad round type", func(in *CreateQuestionInput) { in.RoundType = "Trivia" }},
		{"bad difficulty", func(in *CreateQuestionInput) { in.Difficulty = "Impossible" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)
			_, err := svc.CreateQuestion(ctx, in)
			require.Error(t, err)
			appErr, ok := err.(*models.AppError)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestCreateQuestionDefaultsAndTags(t *testing.T) {
	t.Parallel()

	var created *models.Question
	repo := noopQuestionRepo()
	repo.createFn = func(_ context.Context, q *models.Question) error {
		q.ID = 42
		created = q
		return nil
	}

	svc := NewQuestionService(repo, noopCompanyRepo())
	in := validCreateInput()
	in.Tags = []string{" dp ", "", "graphs"}

	_, err := svc.CreateQuestion(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.DifficultyMedium, created.Difficulty)
	assert.Equal(t, []string{"dp", "graphs"}, created.Tags)
}

func TestGetQuestionReflectsCountedView(t *testing.T) {
	t.Parallel()

	repo := noopQuestionRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Question, error) {
		return &models.Question{ID: id, Views: 7}, nil
	}
	repo.recordViewFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }

	svc := NewQuestionService(repo, noopCompanyRepo())
	got, err := svc.GetQuestion(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Views)

	// A repeat view by the same user is not counted.
	repo.recordViewFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
	got, err = svc.GetQuestion(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Views)
}

func TestUpdateQuestionPermissions(t *testing.T) {
	t.Parallel()

	repo := noopQuestionRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Question, error) {
		return &models.Question{ID: id, AuthorID: 1, Title: "orig", Content: "orig"}, nil
	}
	svc := NewQuestionService(repo, noopCompanyRepo())
	ctx := context.Background()

	_, err := svc.UpdateQuestion(ctx, UpdateQuestionInput{UserID: 2, QuestionID: 5})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	// Admins can edit anyone's question.
	_, err = svc.UpdateQuestion(ctx, UpdateQuestionInput{UserID: 2, IsAdmin: true, QuestionID: 5})
	require.NoError(t, err)

	// Owners can edit their own.
	_, err = svc.UpdateQuestion(ctx, UpdateQuestionInput{UserID: 1, QuestionID: 5})
	require.NoError(t, err)
}

func TestUpdateQuestionClearsAnswer(t *testing.T) {
	t.Parallel()

	var saved *models.Question
	repo := noopQuestionRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Question, error) {
		return &models.Question{ID: id, AuthorID: 1, Title: "t", Content: "c", Answer: "old answer"}, nil
	}
	repo.updateFn = func(_ context.Context, q *models.Question) error {
		saved = q
		return nil
	}

	svc := NewQuestionService(repo, noopCompanyRepo())
	empty := ""
	_, err := svc.UpdateQuestion(context.Background(), UpdateQuestionInput{
		UserID: 1, QuestionID: 5, Answer: &empty,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Empty(t, saved.Answer)
}

func TestDeleteQuestionPermissions(t *testing.T) {
	t.Parallel()

	deleted := false
	repo := noopQuestionRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Question, error) {
		return &models.Question{ID: id, AuthorID: 1}, nil
	}
	repo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	svc := NewQuestionService(repo, noopCompanyRepo())
	ctx := context.Background()

	err := svc.DeleteQuestion(ctx, 5, 2, false)
	require.Error(t, err)
	assert.False(t, deleted)

	require.NoError(t, svc.DeleteQuestion(ctx, 5, 2, true))
	assert.True(t, deleted)
}

func TestVoteTypeMapping(t *testing.T) {
	t.Parallel()

	var gotValue int
	repo := noopQuestionRepo()
	repo.setVoteFn = func(_ context.Context, _, _ uint, value int) error {
		gotValue = value
		return nil
	}
	repo.countVotesFn = func(_ context.Context, _ uint) (repository.VoteCounts, error) {
		return repository.VoteCounts{Upvotes: 3, Downvotes: 1}, nil
	}
	svc := NewQuestionService(repo, noopCompanyRepo())
	ctx := context.Background()

	counts, err := svc.Vote(ctx, 5, 9, VoteTypeUp)
	require.NoError(t, err)
	assert.Equal(t, models.VoteUp, gotValue)
	assert.Equal(t, int64(3), counts.Upvotes)

	_, err = svc.Vote(ctx, 5, 9, VoteTypeDown)
	require.NoError(t, err)
	assert.Equal(t, models.VoteDown, gotValue)

	_, err = svc.Vote(ctx, 5, 9, VoteTypeRetract)
	require.NoError(t, err)
	assert.Zero(t, gotValue)

	_, err = svc.Vote(ctx, 5, 9, "sideways")
	require.Error(t, err)
}

func TestListQuestionsPaging(t *testing.T) {
	t.Parallel()

	var gotLimit, gotOffset int
	repo := noopQuestionRepo()
	repo.listFn = func(_ context.Context, _ repository.QuestionFilter, limit, offset int, _ uint) ([]*models.Question, int64, error) {
		gotLimit, gotOffset = limit, offset
		return []*models.Question{{ID: 1}}, 25, nil
	}
	svc := NewQuestionService(repo, noopCompanyRepo())

	page, err := svc.ListQuestions(context.Background(), ListQuestionsInput{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, 20, gotOffset)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.CurrentPage)

	// Out-of-range paging inputs fall back to defaults.
	_, err = svc.ListQuestions(context.Background(), ListQuestionsInput{Page: -1, Limit: 9999})
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, 0, gotOffset)
}
