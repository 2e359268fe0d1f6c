package handlers

import (
	"errors"
	"time"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/core/domain"
	"orgpulse-survey/internal/pkg/cache"
	"orgpulse-survey/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	jobsCacheKey        = "jobs:list"
	departmentsCacheKey = "departments:list"
	masterCacheTTL      = 10 * time.Minute
)

// MasterHandler handles master data (jobs, departments) endpoints.
// List reads go through the TTL cache; every mutation invalidates the
// corresponding list key.
type MasterHandler struct {
	jobRepo  repositories.JobRepository
	deptRepo repositories.DepartmentRepository
	cache    *cache.Cache
}

// NewMasterHandler creates a new master data handler
func NewMasterHandler(jobRepo repositories.JobRepository, deptRepo repositories.DepartmentRepository, c *cache.Cache) *MasterHandler {
	return &MasterHandler{
		jobRepo:  jobRepo,
		deptRepo: deptRepo,
		cache:    c,
	}
}

// JobRequest represents a job create/update request body
type JobRequest struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// DepartmentRequest represents a department create/update request body
type DepartmentRequest struct {
	Name string `json:"name"`
}

// ListJobs lists all jobs
// @Summary List jobs
// @Description List all jobs, cached for ten minutes
// @Tags Master
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /master/jobs [get]
func (h *MasterHandler) ListJobs(c *fiber.Ctx) error {
	if cached, ok := h.cache.Get(jobsCacheKey); ok {
		return response.Success(c, "Jobs retrieved successfully", fiber.Map{
			"jobs": cached,
		})
	}

	jobs, err := h.jobRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list jobs")
	}

	h.cache.Set(jobsCacheKey, jobs, masterCacheTTL)

	return response.Success(c, "Jobs retrieved successfully", fiber.Map{
		"jobs": jobs,
	})
}

// CreateJob creates a new job
// @Summary Create job
// @Description Create a new job (admin)
// @Tags Master
// @Accept json
// @Produce json
// @Param body body JobRequest true "Job data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /master/jobs [post]
func (h *MasterHandler) CreateJob(c *fiber.Ctx) error {
	var req JobRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" || req.Code <= 0 {
		return response.BadRequest(c, "Job code and name are required")
	}

	job := &models.Job{
		Code: req.Code,
		Name: req.Name,
	}

	if err := h.jobRepo.Create(c.Context(), job); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.Conflict(c, "Job code already exists")
		}
		return response.InternalServerError(c, "Failed to create job")
	}

	h.cache.Delete(jobsCacheKey)

	return response.Created(c, "Job created successfully", fiber.Map{
		"job": job,
	})
}

// UpdateJob updates a job
// @Summary Update job
// @Description Update a job (admin)
// @Tags Master
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param body body JobRequest true "Job data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /master/jobs/{id} [put]
func (h *MasterHandler) UpdateJob(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid job ID")
	}

	var req JobRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	job, err := h.jobRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to get job")
	}

	if req.Code > 0 {
		job.Code = req.Code
	}
	if req.Name != "" {
		job.Name = req.Name
	}

	if err := h.jobRepo.Update(c.Context(), job); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.Conflict(c, "Job code already exists")
		}
		return response.InternalServerError(c, "Failed to update job")
	}

	h.cache.Delete(jobsCacheKey)

	return response.Success(c, "Job updated successfully", fiber.Map{
		"job": job,
	})
}

// DeleteJob deletes a job
// @Summary Delete job
// @Description Delete a job (admin)
// @Tags Master
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /master/jobs/{id} [delete]
func (h *MasterHandler) DeleteJob(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid job ID")
	}

	if err := h.jobRepo.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to delete job")
	}

	h.cache.Delete(jobsCacheKey)

	return response.Success(c, "Job deleted successfully", nil)
}

// ListDepartments lists all departments
// @Summary List departments
// @Description List all departments, cached for ten minutes
// @Tags Master
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /master/departments [get]
func (h *MasterHandler) ListDepartments(c *fiber.Ctx) error {
	if cached, ok := h.cache.Get(departmentsCacheKey); ok {
		return response.Success(c, "Departments retrieved successfully", fiber.Map{
			"departments": cached,
		})
	}

	departments, err := h.deptRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list departments")
	}

	h.cache.Set(departmentsCacheKey, departments, masterCacheTTL)

	return response.Success(c, "Departments retrieved successfully", fiber.Map{
		"departments": departments,
	})
}

// CreateDepartment creates a new department
// @Summary Create department
// @Description Create a new department (admin)
// @Tags Master
// @Accept json
// @Produce json
// @Param body body DepartmentRequest true "Department data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /master/departments [post]
func (h *MasterHandler) CreateDepartment(c *fiber.Ctx) error {
	var req DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Department name is required")
	}

	dept := &models.Department{Name: req.Name}

	if err := h.deptRepo.Create(c.Context(), dept); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.Conflict(c, "Department already exists")
		}
		return response.InternalServerError(c, "Failed to create department")
	}

	h.cache.Delete(departmentsCacheKey)

	return response.Created(c, "Department created successfully", fiber.Map{
		"department": dept,
	})
}

// UpdateDepartment updates a department
// @Summary Update department
// @Description Update a department (admin)
// @Tags Master
// @Accept json
// @Produce json
// @Param id path int true "Department ID"
// @Param body body DepartmentRequest true "Department data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /master/departments/{id} [put]
func (h *MasterHandler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	var req DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Department name is required")
	}

	dept, err := h.deptRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Department not found")
		}
		return response.InternalServerError(c, "Failed to get department")
	}

	dept.Name = req.Name

	if err := h.deptRepo.Update(c.Context(), dept); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.Conflict(c, "Department already exists")
		}
		return response.InternalServerError(c, "Failed to update department")
	}

	h.cache.Delete(departmentsCacheKey)

	return response.Success(c, "Department updated successfully", fiber.Map{
		"department": dept,
	})
}

// DeleteDepartment deletes a department
// @Summary Delete department
// @Description Delete a department (admin)
// @Tags Master
// @Accept json
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /master/departments/{id} [delete]
func (h *MasterHandler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	if err := h.deptRepo.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Department not found")
		}
		return response.InternalServerError(c, "Failed to delete department")
	}

	h.cache.Delete(departmentsCacheKey)

	return response.Success(c, "Department deleted successfully", nil)
}
