package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talakunchi/exam-portal-service/internal/services"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

type ExamHandler struct {
	BaseHandler
	examService services.ExamService
}

func NewExamHandler(examService services.ExamService, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler: NewBaseHandler(logger),
		examService: examService,
	}
}

func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req services.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	exam, err := h.examService.CreateExam(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Exam created", exam)
}

func (h *ExamHandler) GetExam(c *gin.Context) {
	exam, err := h.examService.GetExam(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Exam", exam)
}

func (h *ExamHandler) ListExams(c *gin.Context) {
	if jobRoleID := c.Query("job_role_id"); jobRoleID != "" {
		exams, err := h.examService.GetExamsByJobRole(c.Request.Context(), jobRoleID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		h.RespondWithSuccess(c, http.StatusOK, "Exams", exams)
		return
	}

	exams, err := h.examService.ListExams(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Exams", exams)
}

func (h *ExamHandler) UpdateExam(c *gin.Context) {
	var req services.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	exam, err := h.examService.UpdateExam(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Exam updated", exam)
}

func (h *ExamHandler) DeleteExam(c *gin.Context) {
	if err := h.examService.DeleteExam(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Exam deleted", nil)
}

func (h *ExamHandler) AddPaperSet(c *gin.Context) {
	var req services.PaperSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	exam, err := h.examService.AddPaperSet(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Paper set added", exam)
}

func (h *ExamHandler) ListPaperSets(c *gin.Context) {
	paperSets, err := h.examService.GetPaperSets(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Paper sets", paperSets)
}

func (h *ExamHandler) GetPaperSet(c *gin.Context) {
	paperSet, err := h.examService.GetPaperSet(c.Request.Context(), c.Param("id"), c.Param("set_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Paper set", paperSet)
}

func (h *ExamHandler) UpdatePaperSet(c *gin.Context) {
	var req services.PaperSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	exam, err := h.examService.UpdatePaperSet(c.Request.Context(), c.Param("id"), c.Param("set_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Paper set updated", exam)
}

func (h *ExamHandler) DeletePaperSet(c *gin.Context) {
	exam, err := h.examService.DeletePaperSet(c.Request.Context(), c.Param("id"), c.Param("set_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Paper set deleted", exam)
}

func (h *ExamHandler) AddQuestion(c *gin.Context) {
	var req services.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	exam, err := h.examService.AddQuestion(c.Request.Context(),
		c.Param("id"), c.Param("set_id"), c.Param("section_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Question added", exam)
}

func (h *ExamHandler) UpdateQuestion(c *gin.Context) {
	var req services.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	exam, err := h.examService.UpdateQuestion(c.Request.Context(),
		c.Param("id"), c.Param("set_id"), c.Param("section_id"), c.Param("question_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Question updated", exam)
}

func (h *ExamHandler) DeleteQuestion(c *gin.Context) {
	exam, err := h.examService.DeleteQuestion(c.Request.Context(),
		c.Param("id"), c.Param("set_id"), c.Param("section_id"), c.Param("question_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Question deleted", exam)
}
