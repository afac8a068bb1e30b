package server

import (
	"github.com/Kavi981/Nxt-Round/internal/models"
	"github.com/Kavi981/Nxt-Round/internal/repository"
	"github.com/Kavi981/Nxt-Round/internal/service"

	"github.com/gofiber/fiber/v2"
)

// updateProfileRequest is the PUT /api/users/profile payload.
type updateProfileRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// changeRoleRequest is the PUT /api/users/admin/:userId/role payload.
type changeRoleRequest struct {
	Role string `json:"role"`
}

// GetProfile handles GET /api/users/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/users/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID: userID,
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetMyQuestions handles GET /api/users/questions
func (s *Server) GetMyQuestions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 10)

	page, err := s.userService.MyQuestions(c.UserContext(), userID, p.Page, p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// ToggleBookmark handles POST /api/users/bookmark/:questionId
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	questionID, err := s.parseID(c, "questionId")
	if err != nil {
		return nil
	}

	bookmarked, err := s.userService.ToggleBookmark(c.UserContext(), userID, questionID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if bookmarked {
		s.trackActivity(c, userID, models.ActionBookmarkQuestion, models.TargetQuestion, questionID, "")
	}

	return c.JSON(fiber.Map{"is_bookmarked": bookmarked})
}

// GetBookmarks handles GET /api/users/bookmarks
func (s *Server) GetBookmarks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 10)

	page, err := s.userService.Bookmarks(c.UserContext(), userID, p.Page, p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetUsersAdmin handles GET /api/users/admin/all
func (s *Server) GetUsersAdmin(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	filter := repository.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}

	page, err := s.userService.ListUsers(c.UserContext(), filter, p.Page, p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetUserAdminDetail handles GET /api/users/admin/:userId
func (s *Server) GetUserAdminDetail(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	detail, err := s.userService.AdminDetail(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

// ChangeUserRole handles PUT /api/users/admin/:userId/role
func (s *Server) ChangeUserRole(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req changeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.ChangeRole(c.UserContext(), actorID, userID, req.Role)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.trackActivity(c, actorID, models.ActionAdminApprove, models.TargetUser, userID, req.Role)

	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/admin/:userId
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.UserContext(), actorID, userID); err != nil {
		return respondServiceError(c, err)
	}

	s.trackActivity(c, actorID, models.ActionAdminDelete, models.TargetUser, userID, "")

	return c.JSON(fiber.Map{"message": "User deleted"})
}
