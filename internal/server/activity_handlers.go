package server

import (
	"github.com/Kavi981/Nxt-Round/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetRecentActivities handles GET /api/activities/admin/recent
func (s *Server) GetRecentActivities(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	filter := repository.ActivityFilter{
		Action: c.Query("action"),
		Target: c.Query("target"),
	}

	page, err := s.activityService.List(c.UserContext(), filter, p.Page, p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetActivityStats handles GET /api/activities/admin/stats
func (s *Server) GetActivityStats(c *fiber.Ctx) error {
	stats, err := s.activityService.Stats(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// GetUserActivities handles GET /api/activities/admin/user/:userId
func (s *Server) GetUserActivities(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	page, err := s.activityService.List(c.UserContext(), repository.ActivityFilter{UserID: userID}, p.Page, p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}
