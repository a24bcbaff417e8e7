package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// CandidateService covers the candidate-facing flow: logging in, seeing the
// assigned exams, and fetching the paper set when the exam starts.
type CandidateService interface {
	Login(ctx context.Context, req CandidateLoginRequest) (*CandidateSession, error)
	GetExamOverview(ctx context.Context, candidateID string) ([]ExamOverview, error)
	GetAssignedPaperSet(ctx context.Context, candidateID, examID string) (*AssignedPaperSet, error)
	GetScoreCard(ctx context.Context, candidateID, examID string) (*ScoreCard, error)
}

type CandidateLoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

type CandidateSession struct {
	Token     string            `json:"-"`
	Candidate *models.Candidate `json:"candidate"`
}

// ExamOverview is the candidate's view of one assigned exam, without any
// paper content.
type ExamOverview struct {
	ExamID          string            `json:"exam_id"`
	Title           string            `json:"title"`
	JobRoleTitle    string            `json:"job_role_title"`
	Duration        int               `json:"duration"`
	ExamDateAndTime string            `json:"exam_date_and_time"`
	ResultPublished bool              `json:"result_published"`
	Result          models.ExamResult `json:"result,omitempty"`
	Score           int               `json:"score"`
	TotalMarks      int               `json:"total_marks"`
}

// AssignedPaperSet is the paper delivered to the candidate. Correct answers
// are stripped before it leaves the service.
type AssignedPaperSet struct {
	ExamID     string         `json:"exam_id"`
	ExamTitle  string         `json:"exam_title"`
	Duration   int            `json:"duration"`
	PaperSetID string         `json:"paper_set_id"`
	Title      string         `json:"title"`
	Sections   []PaperSection `json:"sections"`
	TotalMarks int            `json:"total_marks"`
}

type PaperSection struct {
	SectionID string          `json:"section_id"`
	Title     string          `json:"title"`
	Questions []PaperQuestion `json:"questions"`
}

type PaperQuestion struct {
	QuestionID string   `json:"question_id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Marks      int      `json:"marks"`
}

type candidateService struct {
	repo      repositories.Repository
	tokens    *utils.TokenManager
	logger    utils.Logger
	validator *utils.Validator
}

func NewCandidateService(repo repositories.Repository, tokens *utils.TokenManager, logger utils.Logger, validator *utils.Validator) CandidateService {
	return &candidateService{
		repo:      repo,
		tokens:    tokens,
		logger:    logger,
		validator: validator,
	}
}

func (s *candidateService) Login(ctx context.Context, req CandidateLoginRequest) (*CandidateSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	candidate, err := s.repo.Candidate().GetByUsername(ctx, req.Username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	if !candidate.Enabled {
		return nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(candidate.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(candidate.ID, candidate.FullName, candidate.Email, utils.RoleCandidate)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Candidate logged in", "candidate_id", candidate.ID)
	return &CandidateSession{Token: token, Candidate: candidate}, nil
}

func (s *candidateService) GetExamOverview(ctx context.Context, candidateID string) ([]ExamOverview, error) {
	candidate, err := s.repo.Candidate().GetByID(ctx, candidateID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	overviews := make([]ExamOverview, 0, len(candidate.AssignedExams))
	for i := range candidate.AssignedExams {
		assigned := &candidate.AssignedExams[i]

		exam, err := s.repo.Exam().GetByID(ctx, assigned.ExamID)
		if err != nil {
			s.logger.Warn("Skipping unresolvable exam in overview",
				"candidate_id", candidate.ID,
				"exam_id", assigned.ExamID,
				"error", err)
			continue
		}

		overview := ExamOverview{
			ExamID:          exam.ID,
			Title:           exam.Title,
			Duration:        exam.Duration,
			ExamDateAndTime: exam.ExamDateAndTime.Format("2006-01-02T15:04:05Z07:00"),
			ResultPublished: exam.ResultPublished,
		}
		if jobRole, err := s.repo.JobRole().GetByID(ctx, exam.JobRoleID); err == nil {
			overview.JobRoleTitle = jobRole.Title
		}
		// Scores and outcomes stay hidden until the result goes out.
		if exam.ResultPublished {
			overview.Result = assigned.Result
			overview.Score = assigned.Score
			overview.TotalMarks = assigned.TotalMarks
		}
		overviews = append(overviews, overview)
	}
	return overviews, nil
}

// GetAssignedPaperSet hands the candidate their paper and marks attendance.
// Attendance is recorded at most once; refetching the paper never adds a
// duplicate entry or rewrites the exam row.
func (s *candidateService) GetAssignedPaperSet(ctx context.Context, candidateID, examID string) (*AssignedPaperSet, error) {
	candidate, err := s.repo.Candidate().GetByID(ctx, candidateID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	assigned := candidate.AssignedExamFor(examID)
	if assigned == nil {
		return nil, ErrAssignedExamNotFound
	}

	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	paperSet := exam.PaperSetByID(assigned.PaperSetID)
	if paperSet == nil {
		return nil, ErrPaperSetNotFound
	}

	if exam.MarkAttended(candidate.ID) {
		if err := s.repo.Exam().Update(ctx, exam); err != nil {
			return nil, fmt.Errorf("failed to record attendance: %w", err)
		}
	}

	response := &AssignedPaperSet{
		ExamID:     exam.ID,
		ExamTitle:  exam.Title,
		Duration:   exam.Duration,
		PaperSetID: paperSet.ID,
		Title:      paperSet.Title,
		TotalMarks: paperSet.TotalMarks(),
	}
	for _, section := range paperSet.Sections {
		paperSection := PaperSection{
			SectionID: section.ID,
			Title:     section.Title,
		}
		for _, question := range section.Questions {
			paperSection.Questions = append(paperSection.Questions, PaperQuestion{
				QuestionID: question.ID,
				Text:       question.Text,
				Options:    question.Options,
				Marks:      question.Marks,
			})
		}
		response.Sections = append(response.Sections, paperSection)
	}
	return response, nil
}

// GetScoreCard is the candidate's own section-wise breakdown. It stays
// unavailable until the exam's result goes out.
func (s *candidateService) GetScoreCard(ctx context.Context, candidateID, examID string) (*ScoreCard, error) {
	candidate, err := s.repo.Candidate().GetByID(ctx, candidateID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	if candidate.AssignedExamFor(examID) == nil {
		return nil, ErrAssignedExamNotFound
	}

	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	if !exam.ResultPublished {
		return nil, ErrResultNotPublished
	}
	return buildScoreCard(exam, candidate)
}
