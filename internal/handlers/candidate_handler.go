package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talakunchi/exam-portal-service/internal/services"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// CandidateHandler serves the candidate-facing endpoints: login, exam
// overview, paper delivery and answer submission.
type CandidateHandler struct {
	BaseHandler
	candidateService services.CandidateService
	scoringService   services.ScoringService
	tokens           *utils.TokenManager
}

func NewCandidateHandler(
	candidateService services.CandidateService,
	scoringService services.ScoringService,
	tokens *utils.TokenManager,
	logger utils.Logger,
) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:      NewBaseHandler(logger),
		candidateService: candidateService,
		scoringService:   scoringService,
		tokens:           tokens,
	}
}

func (h *CandidateHandler) Login(c *gin.Context) {
	var req services.CandidateLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	session, err := h.candidateService.Login(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	setSessionCookie(c, candidateCookieName, session.Token, int(h.tokens.TTL().Seconds()))
	h.RespondWithSuccess(c, http.StatusOK, "Login successful", session.Candidate)
}

func (h *CandidateHandler) Logout(c *gin.Context) {
	clearSessionCookie(c, candidateCookieName)
	h.RespondWithSuccess(c, http.StatusOK, "Logged out", nil)
}

func (h *CandidateHandler) GetExamOverview(c *gin.Context) {
	candidateID := c.GetString("user_id")

	overviews, err := h.candidateService.GetExamOverview(c.Request.Context(), candidateID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Assigned exams", overviews)
}

func (h *CandidateHandler) GetPaperSet(c *gin.Context) {
	candidateID := c.GetString("user_id")
	examID := c.Param("exam_id")

	h.LogRequest(c, "Delivering paper set", "candidate_id", candidateID, "exam_id", examID)

	paperSet, err := h.candidateService.GetAssignedPaperSet(c.Request.Context(), candidateID, examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Paper set", paperSet)
}

func (h *CandidateHandler) GetScoreCard(c *gin.Context) {
	candidateID := c.GetString("user_id")
	examID := c.Param("exam_id")

	scoreCard, err := h.candidateService.GetScoreCard(c.Request.Context(), candidateID, examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Score card", scoreCard)
}

func (h *CandidateHandler) SubmitAnswer(c *gin.Context) {
	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	// The session owns the submission, whatever the body says.
	req.CandidateID = c.GetString("user_id")
	req.ExamID = c.Param("exam_id")

	result, err := h.scoringService.SubmitAnswer(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Answer recorded", result)
}
