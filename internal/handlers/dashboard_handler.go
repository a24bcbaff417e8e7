package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talakunchi/exam-portal-service/internal/services"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) QuickAccess(c *gin.Context) {
	stats, err := h.dashboardService.QuickAccess(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quick access", stats)
}

func (h *DashboardHandler) RegistrationSeries(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	series, err := h.dashboardService.RegistrationSeries(c.Request.Context(), months)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Registration series", series)
}

func (h *DashboardHandler) ExamParticipation(c *gin.Context) {
	participation, err := h.dashboardService.ExamParticipation(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Exam participation", participation)
}
