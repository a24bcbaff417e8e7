package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talakunchi/exam-portal-service/internal/services"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

type HandlerManager struct {
	candidateHandler      *CandidateHandler
	adminAuthHandler      *AdminAuthHandler
	jobRoleHandler        *JobRoleHandler
	examHandler           *ExamHandler
	candidateAdminHandler *CandidateAdminHandler
	resultHandler         *ResultHandler
	dashboardHandler      *DashboardHandler
	tokens                *utils.TokenManager
}

func NewHandlerManager(manager *services.Manager, tokens *utils.TokenManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		candidateHandler:      NewCandidateHandler(manager.Candidate, manager.Scoring, tokens, logger),
		adminAuthHandler:      NewAdminAuthHandler(manager.Auth, tokens, logger),
		jobRoleHandler:        NewJobRoleHandler(manager.JobRole, logger),
		examHandler:           NewExamHandler(manager.Exam, logger),
		candidateAdminHandler: NewCandidateAdminHandler(manager.Registration, logger),
		resultHandler:         NewResultHandler(manager.Result, logger),
		dashboardHandler:      NewDashboardHandler(manager.Dashboard, logger),
		tokens:                tokens,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "exam-portal-service",
		})
	})

	v1 := router.Group("/api/v1")

	// Candidate-facing routes
	candidate := v1.Group("/candidate")
	{
		candidate.POST("/login", hm.candidateHandler.Login)

		authed := candidate.Group("")
		authed.Use(AuthMiddleware(hm.tokens, utils.RoleCandidate))
		{
			authed.POST("/logout", hm.candidateHandler.Logout)
			authed.GET("/exams", hm.candidateHandler.GetExamOverview)
			authed.GET("/exams/:exam_id/paper-set", hm.candidateHandler.GetPaperSet)
			authed.POST("/exams/:exam_id/answers", hm.candidateHandler.SubmitAnswer)
			authed.GET("/exams/:exam_id/scorecard", hm.candidateHandler.GetScoreCard)
		}
	}

	admin := v1.Group("/admin")
	{
		// Auth routes stay open; everything else needs an admin session.
		auth := admin.Group("/auth")
		{
			auth.POST("/register", hm.adminAuthHandler.Register)
			auth.POST("/login", hm.adminAuthHandler.Login)
			auth.POST("/verify-otp", hm.adminAuthHandler.VerifyOTP)
			auth.POST("/resend-otp", hm.adminAuthHandler.ResendOTP)
			auth.POST("/logout", hm.adminAuthHandler.Logout)
		}

		authed := admin.Group("")
		authed.Use(AuthMiddleware(hm.tokens, utils.RoleAdmin))
		{
			jobRoles := authed.Group("/jobrole")
			{
				jobRoles.POST("", hm.jobRoleHandler.CreateJobRole)
				jobRoles.GET("", hm.jobRoleHandler.ListJobRoles)
				jobRoles.GET("/:id", hm.jobRoleHandler.GetJobRole)
				jobRoles.PUT("/:id", hm.jobRoleHandler.UpdateJobRole)
			}

			exams := authed.Group("/exam")
			{
				exams.POST("", hm.examHandler.CreateExam)
				exams.GET("", hm.examHandler.ListExams)
				exams.GET("/:id", hm.examHandler.GetExam)
				exams.PUT("/:id", hm.examHandler.UpdateExam)
				exams.DELETE("/:id", hm.examHandler.DeleteExam)

				exams.POST("/:id/paper-sets", hm.examHandler.AddPaperSet)
				exams.GET("/:id/paper-sets", hm.examHandler.ListPaperSets)
				exams.GET("/:id/paper-sets/:set_id", hm.examHandler.GetPaperSet)
				exams.PUT("/:id/paper-sets/:set_id", hm.examHandler.UpdatePaperSet)
				exams.DELETE("/:id/paper-sets/:set_id", hm.examHandler.DeletePaperSet)

				exams.POST("/:id/paper-sets/:set_id/sections/:section_id/questions", hm.examHandler.AddQuestion)
				exams.PUT("/:id/paper-sets/:set_id/sections/:section_id/questions/:question_id", hm.examHandler.UpdateQuestion)
				exams.DELETE("/:id/paper-sets/:set_id/sections/:section_id/questions/:question_id", hm.examHandler.DeleteQuestion)
			}

			candidates := authed.Group("/candidate")
			{
				candidates.POST("/register", hm.candidateAdminHandler.RegisterCandidates)
				candidates.POST("/import", hm.candidateAdminHandler.ImportRoster)
				candidates.GET("", hm.candidateAdminHandler.ListCandidates)
				candidates.GET("/:id", hm.candidateAdminHandler.GetCandidate)
				candidates.PUT("/:id", hm.candidateAdminHandler.UpdateCandidate)
			}

			results := authed.Group("/result")
			{
				results.POST("/:exam_id/publish", hm.resultHandler.PublishResult)
				results.GET("/recent", hm.resultHandler.GetRecentExams)
				results.GET("/published", hm.resultHandler.GetPublishedResults)
				results.GET("/:exam_id/paper-sets", hm.resultHandler.GetPaperSetNames)
				results.GET("/:exam_id", hm.resultHandler.GetResultsByExam)
				results.GET("/:exam_id/candidates/:candidate_id", hm.resultHandler.GetScoreCard)
			}

			dashboard := authed.Group("/dashboard")
			{
				dashboard.GET("/quick-access", hm.dashboardHandler.QuickAccess)
				dashboard.GET("/registrations", hm.dashboardHandler.RegistrationSeries)
				dashboard.GET("/participation", hm.dashboardHandler.ExamParticipation)
			}
		}
	}
}
