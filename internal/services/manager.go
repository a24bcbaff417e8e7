package services

import (
	"github.com/talakunchi/exam-portal-service/internal/cache"
	"github.com/talakunchi/exam-portal-service/internal/events"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// Manager bundles every service behind one constructor so the handlers and
// main wiring stay short.
type Manager struct {
	JobRole      JobRoleService
	Exam         ExamService
	Registration RegistrationService
	Candidate    CandidateService
	Scoring      ScoringService
	Result       ResultService
	Auth         AuthService
	Dashboard    DashboardService
}

func NewManager(
	repo repositories.Repository,
	publisher events.EventPublisher,
	otpStore cache.OTPStore,
	tokens *utils.TokenManager,
	logger utils.Logger,
	validator *utils.Validator,
) *Manager {
	notifier := NewEventNotifier(publisher, logger)

	return &Manager{
		JobRole:      NewJobRoleService(repo, logger, validator),
		Exam:         NewExamService(repo, logger, validator),
		Registration: NewRegistrationService(repo, notifier, logger, validator),
		Candidate:    NewCandidateService(repo, tokens, logger, validator),
		Scoring:      NewScoringService(repo, logger, validator),
		Result:       NewResultService(repo, notifier, logger, validator),
		Auth:         NewAuthService(repo, otpStore, notifier, tokens, logger, validator),
		Dashboard:    NewDashboardService(repo, logger),
	}
}
