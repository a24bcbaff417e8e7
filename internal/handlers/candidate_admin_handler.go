package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"github.com/talakunchi/exam-portal-service/internal/services"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// CandidateAdminHandler serves the admin side of candidate management:
// bulk registration, roster import and listing.
type CandidateAdminHandler struct {
	BaseHandler
	registrationService services.RegistrationService
}

func NewCandidateAdminHandler(registrationService services.RegistrationService, logger utils.Logger) *CandidateAdminHandler {
	return &CandidateAdminHandler{
		BaseHandler:         NewBaseHandler(logger),
		registrationService: registrationService,
	}
}

func (h *CandidateAdminHandler) RegisterCandidates(c *gin.Context) {
	var req services.RegisterCandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	report, err := h.registrationService.RegisterCandidates(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Candidates registered", report)
}

// ImportRoster accepts a multipart upload with an .xlsx file under the
// "roster" field and the target exam id under "exam_id".
func (h *CandidateAdminHandler) ImportRoster(c *gin.Context) {
	examID := c.PostForm("exam_id")
	if examID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "exam_id is required"})
		return
	}

	fileHeader, err := c.FormFile("roster")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "roster file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to open roster file", err)
		return
	}
	defer file.Close()

	h.LogRequest(c, "Importing candidate roster", "exam_id", examID, "filename", fileHeader.Filename)

	report, err := h.registrationService.ImportRoster(c.Request.Context(), examID, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Roster imported", report)
}

func (h *CandidateAdminHandler) ListCandidates(c *gin.Context) {
	filters := repositories.CandidateFilters{
		Search: c.Query("search"),
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filters.Offset = offset
	}

	candidates, total, err := h.registrationService.ListCandidates(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Candidates", gin.H{
		"candidates": candidates,
		"total":      total,
	})
}

func (h *CandidateAdminHandler) GetCandidate(c *gin.Context) {
	candidate, err := h.registrationService.GetCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Candidate", candidate)
}

func (h *CandidateAdminHandler) UpdateCandidate(c *gin.Context) {
	var req services.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	candidate, err := h.registrationService.UpdateCandidate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Candidate updated", candidate)
}
