package server

import (
	"github.com/Kavi981/Nxt-Round/internal/models"
	"github.com/Kavi981/Nxt-Round/internal/repository"
	"github.com/Kavi981/Nxt-Round/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCompanies handles GET /api/companies
func (s *Server) GetCompanies(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	filter := repository.CompanyFilter{
		Search:   c.Query("search"),
		Industry: c.Query("industry"),
	}

	page, err := s.companyService.ListCompanies(c.UserContext(), filter, p.Page, p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetCompany handles GET /api/companies/:id
func (s *Server) GetCompany(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	company, err := s.companyService.GetCompany(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(company)
}

// CreateCompany handles POST /api/companies
func (s *Server) CreateCompany(c *fiber.Ctx) error {
	var req service.CompanyInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	company, err := s.companyService.CreateCompany(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// UpdateCompany handles PUT /api/companies/:id
func (s *Server) UpdateCompany(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.CompanyInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	company, err := s.companyService.UpdateCompany(c.UserContext(), id, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(company)
}

// DeleteCompany handles DELETE /api/companies/:id
func (s *Server) DeleteCompany(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.companyService.DeleteCompany(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}

	s.trackActivity(c, userID, models.ActionAdminDelete, models.TargetCompany, id, "")

	return c.JSON(fiber.Map{"message": "Company deleted"})
}

// GetCompaniesAdmin handles GET /api/companies/admin/all
func (s *Server) GetCompaniesAdmin(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	filter := repository.CompanyFilter{Search: c.Query("search")}

	page, err := s.companyService.ListCompaniesAdmin(c.UserContext(), filter, p.Page, p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetCompanyAdminDetail handles GET /api/companies/admin/:companyId
func (s *Server) GetCompanyAdminDetail(c *fiber.Ctx) error {
	companyID, err := s.parseID(c, "companyId")
	if err != nil {
		return nil
	}

	detail, err := s.companyService.AdminDetail(c.UserContext(), companyID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}
