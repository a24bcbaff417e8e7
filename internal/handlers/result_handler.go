package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talakunchi/exam-portal-service/internal/services"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService, logger utils.Logger) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
	}
}

func (h *ResultHandler) PublishResult(c *gin.Context) {
	examID := c.Param("exam_id")
	h.LogRequest(c, "Publishing exam result", "exam_id", examID)

	result, err := h.resultService.PublishResult(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Result published", result)
}

func (h *ResultHandler) GetRecentExams(c *gin.Context) {
	exams, err := h.resultService.GetRecentExams(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Recent exams", exams)
}

func (h *ResultHandler) GetPublishedResults(c *gin.Context) {
	results, err := h.resultService.GetPublishedResults(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Published results", results)
}

func (h *ResultHandler) GetPaperSetNames(c *gin.Context) {
	names, err := h.resultService.GetPaperSetNames(c.Request.Context(), c.Param("exam_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Paper sets", names)
}

func (h *ResultHandler) GetResultsByExam(c *gin.Context) {
	req := services.ResultsByExamRequest{
		ExamID:        c.Param("exam_id"),
		PaperSetID:    c.Query("paper_set_id"),
		CandidateName: c.Query("candidate_name"),
	}

	rows, err := h.resultService.GetResultsByExam(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Exam results", rows)
}

func (h *ResultHandler) GetScoreCard(c *gin.Context) {
	scoreCard, err := h.resultService.GetScoreCard(c.Request.Context(), c.Param("exam_id"), c.Param("candidate_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Score card", scoreCard)
}
