package handlers

import (
	"strconv"

	"orgpulse-survey/internal/adapters/http/middleware"
	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/core/services"
	"orgpulse-survey/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler handles aggregation and dashboard endpoints
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// scopeFrom builds the row-visibility scope for the caller. The
// for_organization query flag widens a non-admin's view to all rows;
// it has no effect for admins.
func scopeFrom(c *fiber.Ctx, session *middleware.AuthenticatedUser) services.Scope {
	return services.Scope{
		UserID:          session.ID,
		IsAdmin:         session.IsAdmin(),
		ForOrganization: c.QueryBool("for_organization"),
	}
}

// surveyIDQuery parses the optional survey_id query parameter
func surveyIDQuery(c *fiber.Ctx) *uint {
	raw := c.Query("survey_id")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(id)
	return &v
}

// Organizational returns organizational category averages
// @Summary Organizational averages
// @Description Per-category and total averages over organizational summaries visible to the caller
// @Tags Stats
// @Accept json
// @Produce json
// @Param survey_id query int false "Restrict to one survey"
// @Param for_organization query bool false "Widen non-admin view to all rows"
// @Success 200 {object} response.Response
// @Router /stats/organizational [get]
func (h *StatsHandler) Organizational(c *fiber.Ctx) error {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	result, err := h.statsService.GetOrganizationalAverages(c.Context(), scopeFrom(c, session), surveyIDQuery(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", result)
}

// Growth returns growth category averages
// @Summary Growth averages
// @Description Per-category and total averages over growth summaries visible to the caller
// @Tags Stats
// @Accept json
// @Produce json
// @Param survey_id query int false "Restrict to one survey"
// @Param for_organization query bool false "Widen non-admin view to all rows"
// @Success 200 {object} response.Response
// @Router /stats/growth [get]
func (h *StatsHandler) Growth(c *fiber.Ctx) error {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	result, err := h.statsService.GetGrowthAverages(c.Context(), scopeFrom(c, session), surveyIDQuery(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", result)
}

// Managers returns organizational averages restricted to manager grades
// @Summary Manager averages
// @Description Organizational averages for users in manager-grade jobs
// @Tags Stats
// @Accept json
// @Produce json
// @Param survey_id query int false "Restrict to one survey"
// @Success 200 {object} response.Response
// @Router /stats/managers [get]
func (h *StatsHandler) Managers(c *fiber.Ctx) error {
	result, err := h.statsService.GetManagerAverages(c.Context(), surveyIDQuery(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", result)
}

// Departments returns the per-department breakdown
// @Summary Department breakdown
// @Description Average total score grouped by department; departments without responses are omitted
// @Tags Stats
// @Accept json
// @Produce json
// @Param type query string false "Survey type (organizational|growth)"
// @Param survey_id query int false "Restrict to one survey"
// @Success 200 {object} response.Response
// @Router /stats/departments [get]
func (h *StatsHandler) Departments(c *fiber.Ctx) error {
	surveyType := c.Query("type", models.SurveyTypeOrganizational)

	results, err := h.statsService.GetDepartmentBreakdown(c.Context(), surveyType, surveyIDQuery(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", fiber.Map{
		"departments": results,
	})
}

// Participation returns the responder ratio for a survey
// @Summary Survey participation
// @Description Distinct responders over eligible users for a survey
// @Tags Stats
// @Accept json
// @Produce json
// @Param id path int true "Survey ID"
// @Param type query string false "Survey type (organizational|growth)"
// @Success 200 {object} response.Response
// @Router /stats/participation/{id} [get]
func (h *StatsHandler) Participation(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid survey ID")
	}

	surveyType := c.Query("type", models.SurveyTypeOrganizational)

	result, err := h.statsService.GetParticipation(c.Context(), id, surveyType)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", result)
}

// Overview returns admin dashboard headline counts
// @Summary Admin overview
// @Description Headline counts for the admin dashboard
// @Tags Stats
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /stats/overview [get]
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	result, err := h.statsService.GetAdminOverview(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", result)
}
