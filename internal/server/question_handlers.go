package server

import (
	"github.com/Kavi981/Nxt-Round/internal/models"
	"github.com/Kavi981/Nxt-Round/internal/repository"
	"github.com/Kavi981/Nxt-Round/internal/service"

	"github.com/gofiber/fiber/v2"
)

// createQuestionRequest is the POST /api/questions payload.
type createQuestionRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Answer     string   `json:"answer"`
	CompanyID  uint     `json:"company_id"`
	Role       string   `json:"role"`
	RoundType  string   `json:"round_type"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
}

// updateQuestionRequest is the PUT /api/questions/:id payload. Pointer
// fields distinguish "not sent" from "sent empty".
type updateQuestionRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Answer     *string   `json:"answer"`
	Difficulty *string   `json:"difficulty"`
	Tags       *[]string `json:"tags"`
}

// voteRequest is the POST /api/questions/:id/vote payload.
type voteRequest struct {
	VoteType string `json:"vote_type"`
}

// GetQuestions handles GET /api/questions
func (s *Server) GetQuestions(c *fiber.Ctx) error {
	currentUserID, _ := s.optionalUserID(c)
	p := parsePagination(c, 10)

	filter := repository.QuestionFilter{
		CompanyID:  uint(c.QueryInt("company", 0)),
		Role:       c.Query("role"),
		RoundType:  c.Query("roundType"),
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	}

	page, err := s.questionService.ListQuestions(c.UserContext(), service.ListQuestionsInput{
		Filter:        filter,
		Page:          p.Page,
		Limit:         p.Limit,
		CurrentUserID: currentUserID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetQuestion handles GET /api/questions/:id
func (s *Server) GetQuestion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	question, err := s.questionService.GetQuestion(c.UserContext(), id, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(question)
}

// CreateQuestion handles POST /api/questions
func (s *Server) CreateQuestion(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req createQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	question, err := s.questionService.CreateQuestion(c.UserContext(), service.CreateQuestionInput{
		AuthorID:   userID,
		Title:      req.Title,
		Content:    req.Content,
		Answer:     req.Answer,
		CompanyID:  req.CompanyID,
		Role:       req.Role,
		RoundType:  req.RoundType,
		Difficulty: req.Difficulty,
		Tags:       req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.trackActivity(c, userID, models.ActionPostQuestion, models.TargetQuestion,
		question.ID, question.Title)

	return c.Status(fiber.StatusCreated).JSON(question)
}

// UpdateQuestion handles PUT /api/questions/:id
func (s *Server) UpdateQuestion(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	admin, err := s.isAdminByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	question, err := s.questionService.UpdateQuestion(c.UserContext(), service.UpdateQuestionInput{
		UserID:     userID,
		IsAdmin:    admin,
		QuestionID: id,
		Title:      req.Title,
		Content:    req.Content,
		Answer:     req.Answer,
		Difficulty: req.Difficulty,
		Tags:       req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.trackActivity(c, userID, models.ActionEditQuestion, models.TargetQuestion,
		question.ID, question.Title)

	return c.JSON(question)
}

// DeleteQuestion handles DELETE /api/questions/:id
func (s *Server) DeleteQuestion(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	admin, err := s.isAdminByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.questionService.DeleteQuestion(c.UserContext(), id, userID, admin); err != nil {
		return respondServiceError(c, err)
	}

	s.trackActivity(c, userID, models.ActionDeleteQuestion, models.TargetQuestion, id, "")

	return c.JSON(fiber.Map{"message": "Question deleted"})
}

// VoteQuestion handles POST /api/questions/:id/vote
func (s *Server) VoteQuestion(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req voteRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	counts, err := s.questionService.Vote(c.UserContext(), id, userID, req.VoteType)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(counts)
}
