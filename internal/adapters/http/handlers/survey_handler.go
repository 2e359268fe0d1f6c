package handlers

import (
	"errors"

	"orgpulse-survey/internal/adapters/http/middleware"
	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/core/domain"
	"orgpulse-survey/internal/core/services"
	"orgpulse-survey/internal/pkg/pagination"
	"orgpulse-survey/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SurveyHandler handles survey configuration and response endpoints
type SurveyHandler struct {
	surveyService *services.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveyService *services.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// List lists surveys with pagination
// @Summary List surveys
// @Description List all surveys (admin)
// @Tags Surveys
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /surveys [get]
func (h *SurveyHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	surveys, total, err := h.surveyService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list surveys")
	}

	return response.Success(c, "Surveys retrieved successfully", pagination.NewResponse(surveys, params, total))
}

// ListActive lists surveys currently accepting responses
// @Summary List open surveys
// @Description List surveys currently accepting responses
// @Tags Surveys
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /surveys/active [get]
func (h *SurveyHandler) ListActive(c *fiber.Ctx) error {
	surveys, err := h.surveyService.ListActive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list surveys")
	}

	return response.Success(c, "Surveys retrieved successfully", fiber.Map{
		"surveys": surveys,
	})
}

// Get gets a survey by ID
// @Summary Get survey
// @Description Get a survey by ID
// @Tags Surveys
// @Accept json
// @Produce json
// @Param id path int true "Survey ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /surveys/{id} [get]
func (h *SurveyHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid survey ID")
	}

	survey, err := h.surveyService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Survey not found")
		}
		return response.InternalServerError(c, "Failed to get survey")
	}

	return response.Success(c, "Survey retrieved successfully", fiber.Map{
		"survey": survey,
	})
}

// Create creates a new survey
// @Summary Create survey
// @Description Create a new survey (admin)
// @Tags Surveys
// @Accept json
// @Produce json
// @Param body body services.SurveyInput true "Survey data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /surveys [post]
func (h *SurveyHandler) Create(c *fiber.Ctx) error {
	var input services.SurveyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	survey, err := h.surveyService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid survey data")
		}
		return response.InternalServerError(c, "Failed to create survey")
	}

	return response.Created(c, "Survey created successfully", fiber.Map{
		"survey": survey,
	})
}

// Update updates a survey
// @Summary Update survey
// @Description Update a survey (admin)
// @Tags Surveys
// @Accept json
// @Produce json
// @Param id path int true "Survey ID"
// @Param body body services.SurveyInput true "Survey data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /surveys/{id} [put]
func (h *SurveyHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid survey ID")
	}

	var input services.SurveyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	survey, err := h.surveyService.Update(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid survey data")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Survey not found")
		default:
			return response.InternalServerError(c, "Failed to update survey")
		}
	}

	return response.Success(c, "Survey updated successfully", fiber.Map{
		"survey": survey,
	})
}

// Delete deletes a survey
// @Summary Delete survey
// @Description Delete a survey (admin)
// @Tags Surveys
// @Accept json
// @Produce json
// @Param id path int true "Survey ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /surveys/{id} [delete]
func (h *SurveyHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid survey ID")
	}

	if err := h.surveyService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Survey not found")
		}
		return response.InternalServerError(c, "Failed to delete survey")
	}

	return response.Success(c, "Survey deleted successfully", nil)
}

// Submit records the caller's response to a survey
// @Summary Submit survey response
// @Description Submit per-category scores for an open survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Param id path int true "Survey ID"
// @Param body body services.SubmitInput true "Category scores"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /surveys/{id}/responses [post]
func (h *SurveyHandler) Submit(c *fiber.Ctx) error {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid survey ID")
	}

	var input services.SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.surveyService.Submit(c.Context(), session.ID, id, &input); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Survey not found")
		case errors.Is(err, domain.ErrSurveyClosed):
			return response.BadRequest(c, "Survey is not open for responses")
		case errors.Is(err, domain.ErrInvalidScores):
			return response.BadRequest(c, "Category scores are invalid for this survey type")
		default:
			return response.InternalServerError(c, "Failed to submit response")
		}
	}

	return response.Success(c, "Response recorded", nil)
}

// MySummary returns the caller's summary row for a survey
// @Summary My survey summary
// @Description Get the caller's summary row for a survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Param id path int true "Survey ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /surveys/{id}/summary [get]
func (h *SurveyHandler) MySummary(c *fiber.Ctx) error {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid survey ID")
	}

	survey, err := h.surveyService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Survey not found")
		}
		return response.InternalServerError(c, "Failed to get survey")
	}

	var summary interface{}
	if survey.SurveyType == models.SurveyTypeGrowth {
		summary, err = h.surveyService.MyGrowthSummary(c.Context(), session.ID, id)
	} else {
		summary, err = h.surveyService.MyOrganizationalSummary(c.Context(), session.ID, id)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "No response recorded for this survey")
		}
		return response.InternalServerError(c, "Failed to get summary")
	}

	return response.Success(c, "Summary retrieved successfully", fiber.Map{
		"summary": summary,
	})
}
