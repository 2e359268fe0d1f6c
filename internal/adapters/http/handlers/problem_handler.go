package handlers

import (
	"errors"

	"orgpulse-survey/internal/adapters/http/middleware"
	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/core/domain"
	"orgpulse-survey/internal/pkg/pagination"
	"orgpulse-survey/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProblemHandler handles workplace problem report endpoints
type ProblemHandler struct {
	problemRepo repositories.ProblemRepository
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(problemRepo repositories.ProblemRepository) *ProblemHandler {
	return &ProblemHandler{problemRepo: problemRepo}
}

// ProblemRequest represents a problem report request body
type ProblemRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create files a new problem report
// @Summary Report problem
// @Description File a workplace problem report
// @Tags Problems
// @Accept json
// @Produce json
// @Param body body ProblemRequest true "Problem data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /problems [post]
func (h *ProblemHandler) Create(c *fiber.Ctx) error {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req ProblemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	problem := &models.Problem{
		UserID:  session.ID,
		Title:   req.Title,
		Content: req.Content,
		Status:  models.ProblemStatusOpen,
	}

	if err := h.problemRepo.Create(c.Context(), problem); err != nil {
		return response.InternalServerError(c, "Failed to create problem report")
	}

	return response.Created(c, "Problem reported successfully", fiber.Map{
		"problem": problem,
	})
}

// My lists the caller's problem reports
// @Summary My problem reports
// @Description List the caller's problem reports
// @Tags Problems
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /problems/my [get]
func (h *ProblemHandler) My(c *fiber.Ctx) error {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	params := pagination.GetParams(c)

	problems, total, err := h.problemRepo.ListByUser(c.Context(), session.ID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list problem reports")
	}

	return response.Success(c, "Problems retrieved successfully", pagination.NewResponse(problems, params, total))
}

// List lists all problem reports
// @Summary List problems
// @Description List all problem reports (admin)
// @Tags Problems
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /problems [get]
func (h *ProblemHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	problems, total, err := h.problemRepo.ListAll(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list problem reports")
	}

	return response.Success(c, "Problems retrieved successfully", pagination.NewResponse(problems, params, total))
}

// Resolve marks a problem report as resolved
// @Summary Resolve problem
// @Description Mark a problem report as resolved (admin)
// @Tags Problems
// @Accept json
// @Produce json
// @Param id path int true "Problem ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /problems/{id}/resolve [put]
func (h *ProblemHandler) Resolve(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid problem ID")
	}

	if err := h.problemRepo.UpdateStatus(c.Context(), id, models.ProblemStatusResolved); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Problem not found")
		}
		return response.InternalServerError(c, "Failed to resolve problem")
	}

	return response.Success(c, "Problem resolved", nil)
}
