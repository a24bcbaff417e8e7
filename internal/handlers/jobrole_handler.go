package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talakunchi/exam-portal-service/internal/services"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

type JobRoleHandler struct {
	BaseHandler
	jobRoleService services.JobRoleService
}

func NewJobRoleHandler(jobRoleService services.JobRoleService, logger utils.Logger) *JobRoleHandler {
	return &JobRoleHandler{
		BaseHandler:    NewBaseHandler(logger),
		jobRoleService: jobRoleService,
	}
}

func (h *JobRoleHandler) CreateJobRole(c *gin.Context) {
	var req services.CreateJobRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	jobRole, err := h.jobRoleService.CreateJobRole(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Job role created", jobRole)
}

func (h *JobRoleHandler) GetJobRole(c *gin.Context) {
	jobRole, err := h.jobRoleService.GetJobRole(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Job role", jobRole)
}

func (h *JobRoleHandler) ListJobRoles(c *gin.Context) {
	jobRoles, err := h.jobRoleService.ListJobRoles(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Job roles", jobRoles)
}

func (h *JobRoleHandler) UpdateJobRole(c *gin.Context) {
	var req services.UpdateJobRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	jobRole, err := h.jobRoleService.UpdateJobRole(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Job role updated", jobRole)
}
