package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetPlatformStats handles GET /api/stats
func (s *Server) GetPlatformStats(c *fiber.Ctx) error {
	stats, err := s.statsService.Platform(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// GetStatsOverview handles GET /api/stats/overview
func (s *Server) GetStatsOverview(c *fiber.Ctx) error {
	overview, err := s.statsService.Overview(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(overview)
}

// GetStatsAnalytics handles GET /api/stats/analytics
func (s *Server) GetStatsAnalytics(c *fiber.Ctx) error {
	period := c.QueryInt("period", 30)

	analytics, err := s.statsService.Analytics(c.UserContext(), period)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(analytics)
}
