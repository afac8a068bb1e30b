package service

import (
	"context"
	"strings"

	"github.com/Kavi981/Nxt-Round/internal/models"
	"github.com/Kavi981/Nxt-Round/internal/observability"
	"github.com/Kavi981/Nxt-Round/internal/repository"
	"github.com/Kavi981/Nxt-Round/internal/validation"
)

// QuestionService carries the business rules around questions, voting and
// view tracking.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	companyRepo  repository.CompanyRepository
}

// CreateQuestionInput is the payload for posting a question.
type CreateQuestionInput struct {
	AuthorID   uint
	Title      string
	Content    string
	Answer     string
	CompanyID  uint
	Role       string
	RoundType  string
	Difficulty string
	Tags       []string
}

// UpdateQuestionInput is a partial update; nil fields are left untouched.
// Answer is a pointer so an explicit empty string clears the stored answer.
type UpdateQuestionInput struct {
	UserID     uint
	IsAdmin    bool
	QuestionID uint
	Title      *string
	Content    *string
	Answer     *string
	Difficulty *string
	Tags       *[]string
}

// ListQuestionsInput mirrors the listing query parameters.
type ListQuestionsInput struct {
	Filter        repository.QuestionFilter
	Page          int
	Limit         int
	CurrentUserID uint
}

// QuestionPage is one page of a question listing.
type QuestionPage struct {
	Questions   []*models.Question `json:"questions"`
	Total       int64              `json:"total"`
	TotalPages  int                `json:"total_pages"`
	CurrentPage int                `json:"current_page"`
}

// Vote type strings accepted on the wire.
const (
	VoteTypeUp      = "upvote"
	VoteTypeDown    = "downvote"
	VoteTypeRetract = ""
)

const (
	maxTitleLen   = 300
	maxContentLen = 50000
	maxTags       = 10
)

// NewQuestionService returns a new QuestionService.
func NewQuestionService(questionRepo repository.QuestionRepository, companyRepo repository.CompanyRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, companyRepo: companyRepo}
}

func normalizeTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// CreateQuestion validates and persists a new question. The company counter
// increment happens inside the repository transaction.
func (s *QuestionService) CreateQuestion(ctx context.Context, in CreateQuestionInput) (*models.Question, error) {
	if !validation.NonEmpty(in.Title) {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if !validation.NonEmpty(in.Content) {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	if in.CompanyID == 0 {
		return nil, models.NewValidationError("Company is required")
	}
	if !validation.NonEmpty(in.Role) {
		return nil, models.NewValidationError("Role is required")
	}
	if !models.ValidRoundType(in.RoundType) {
		return nil, models.NewValidationError("Invalid round type")
	}
	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if !models.ValidDifficulty(difficulty) {
		return nil, models.NewValidationError("Invalid difficulty")
	}
	tags := normalizeTags(in.Tags)
	if len(tags) > maxTags {
		return nil, models.NewValidationError("Too many tags (max 10)")
	}

	question := &models.Question{
		Title:      strings.TrimSpace(in.Title),
		Content:    in.Content,
		Answer:     in.Answer,
		CompanyID:  in.CompanyID,
		Role:       strings.TrimSpace(in.Role),
		RoundType:  in.RoundType,
		Difficulty: difficulty,
		Tags:       tags,
		AuthorID:   in.AuthorID,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	observability.QuestionsCreated.Inc()
	return s.questionRepo.GetByID(ctx, question.ID, in.AuthorID)
}

// GetQuestion fetches a question and records the view. Authenticated viewers
// count at most once; anonymous reads count every time.
func (s *QuestionService) GetQuestion(ctx context.Context, id uint, currentUserID uint) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	counted, err := s.questionRepo.RecordView(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if counted {
		question.Views++
		viewer := "anonymous"
		if currentUserID != 0 {
			viewer = "authenticated"
		}
		observability.ViewsRecorded.WithLabelValues(viewer).Inc()
	}
	return question, nil
}

// ListQuestions returns one page of questions matching the filter.
func (s *QuestionService) ListQuestions(ctx context.Context, in ListQuestionsInput) (*QuestionPage, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	questions, total, err := s.questionRepo.List(ctx, in.Filter, limit, offset, in.CurrentUserID)
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

// UpdateQuestion applies a partial update. Only the author or an admin may
// edit; company and author are immutable after creation.
func (s *QuestionService) UpdateQuestion(ctx context.Context, in UpdateQuestionInput) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, in.QuestionID, in.UserID)
	if err != nil {
		return nil, err
	}
	if question.AuthorID != in.UserID && !in.IsAdmin {
		return nil, models.NewForbiddenError("Not authorized to update this question")
	}

	if in.Title != nil {
		if !validation.NonEmpty(*in.Title) {
			return nil, models.NewValidationError("Title is required")
		}
		if len(*in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		question.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		if !validation.NonEmpty(*in.Content) {
			return nil, models.NewValidationError("Content is required")
		}
		if len(*in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		question.Content = *in.Content
	}
	if in.Answer != nil {
		question.Answer = *in.Answer
	}
	if in.Difficulty != nil {
		if !models.ValidDifficulty(*in.Difficulty) {
			return nil, models.NewValidationError("Invalid difficulty")
		}
		question.Difficulty = *in.Difficulty
	}
	if in.Tags != nil {
		tags := normalizeTags(*in.Tags)
		if len(tags) > maxTags {
			return nil, models.NewValidationError("Too many tags (max 10)")
		}
		question.Tags = tags
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	return s.questionRepo.GetByID(ctx, question.ID, in.UserID)
}

// DeleteQuestion removes a question (author or admin only); the company's
// question_count decrement rides the same transaction.
func (s *QuestionService) DeleteQuestion(ctx context.Context, questionID, userID uint, isAdmin bool) error {
	question, err := s.questionRepo.GetByID(ctx, questionID, 0)
	if err != nil {
		return err
	}
	if question.AuthorID != userID && !isAdmin {
		return models.NewForbiddenError("Not authorized to delete this question")
	}
	return s.questionRepo.Delete(ctx, questionID)
}

// Vote applies remove-then-add vote semantics: any existing vote by the user
// is dropped, then the new one (if any) is recorded. Returns the new tallies.
func (s *QuestionService) Vote(ctx context.Context, questionID, userID uint, voteType string) (repository.VoteCounts, error) {
	var value int
	switch voteType {
	case VoteTypeUp:
		value = models.VoteUp
	case VoteTypeDown:
		value = models.VoteDown
	case VoteTypeRetract:
		value = 0
	default:
		return repository.VoteCounts{}, models.NewValidationError("Invalid vote type")
	}

	if _, err := s.questionRepo.GetByID(ctx, questionID, 0); err != nil {
		return repository.VoteCounts{}, err
	}
	if err := s.questionRepo.SetVote(ctx, questionID, userID, value); err != nil {
		return repository.VoteCounts{}, err
	}
	label := voteType
	if label == VoteTypeRetract {
		label = "retract"
	}
	observability.VotesCast.WithLabelValues(label).Inc()
	return s.questionRepo.CountVotes(ctx, questionID)
}
