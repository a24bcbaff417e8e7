package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/talakunchi/exam-portal-service/internal/events"
	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// recentExamWindow is how far back a finished exam still counts as recent
// on the publish screen.
const recentExamWindow = 48 * time.Hour

// ResultService publishes exam results and serves the admin result views.
type ResultService interface {
	PublishResult(ctx context.Context, examID string) (*PublishResultResponse, error)
	GetRecentExams(ctx context.Context) ([]RecentExam, error)
	GetPublishedResults(ctx context.Context) ([]PublishedExamSummary, error)
	GetPaperSetNames(ctx context.Context, examID string) ([]PaperSetName, error)
	GetResultsByExam(ctx context.Context, req ResultsByExamRequest) ([]CandidateResultRow, error)
	GetScoreCard(ctx context.Context, examID, candidateID string) (*ScoreCard, error)
}

type PublishResultResponse struct {
	ExamID         string `json:"exam_id"`
	FirstPublish   bool   `json:"first_publish"`
	Classified     int    `json:"classified"`
	SkippedMissing int    `json:"skipped_missing"`
}

type RecentExam struct {
	ExamID          string    `json:"exam_id"`
	Title           string    `json:"title"`
	JobRoleTitle    string    `json:"job_role_title"`
	ExamDateAndTime time.Time `json:"exam_date_and_time"`
	ResultPublished bool      `json:"result_published"`
}

type PublishedExamSummary struct {
	ExamID          string    `json:"exam_id"`
	Title           string    `json:"title"`
	JobRoleTitle    string    `json:"job_role_title"`
	ExamDateAndTime time.Time `json:"exam_date_and_time"`
	AssignedCount   int       `json:"assigned_count"`
	AttendedCount   int       `json:"attended_count"`
}

type PaperSetName struct {
	PaperSetID string `json:"paper_set_id"`
	Title      string `json:"title"`
}

type ResultsByExamRequest struct {
	ExamID        string `json:"exam_id" validate:"required,notblank"`
	PaperSetID    string `json:"paper_set_id"`
	CandidateName string `json:"candidate_name"`
}

type CandidateResultRow struct {
	CandidateID string `json:"candidate_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PaperSetID  string `json:"paper_set_id"`
	Score       int    `json:"score"`
	TotalMarks  int    `json:"total_marks"`
	Result      string `json:"result"`
}

type ScoreCard struct {
	CandidateID   string                 `json:"candidate_id"`
	FullName      string                 `json:"full_name"`
	ExamID        string                 `json:"exam_id"`
	ExamTitle     string                 `json:"exam_title"`
	PaperSetID    string                 `json:"paper_set_id"`
	Score         int                    `json:"score"`
	TotalMarks    int                    `json:"total_marks"`
	Result        string                 `json:"result"`
	SectionScores []*models.SectionScore `json:"section_scores"`
}

type resultService struct {
	repo      repositories.Repository
	notifier  Notifier
	logger    utils.Logger
	validator *utils.Validator
}

func NewResultService(repo repositories.Repository, notifier Notifier, logger utils.Logger, validator *utils.Validator) ResultService {
	return &resultService{
		repo:      repo,
		notifier:  notifier,
		logger:    logger,
		validator: validator,
	}
}

// PublishResult classifies every assigned candidate of the exam and, on the
// first publication only, emits a notification event. Re-publishing
// reclassifies so late submissions are reflected, but never re-notifies.
func (s *resultService) PublishResult(ctx context.Context, examID string) (*PublishResultResponse, error) {
	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	jobRole, err := s.repo.JobRole().GetByID(ctx, exam.JobRoleID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrJobRoleNotFound
		}
		return nil, fmt.Errorf("failed to get job role: %w", err)
	}

	firstPublish := !exam.ResultPublished
	exam.ResultPublished = true
	if err := s.repo.Exam().Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to mark result published: %w", err)
	}

	classified := 0
	skipped := 0
	recipients := make([]events.ResultRecipient, 0, len(exam.AssignedCandidates))

	for _, candidateID := range exam.AssignedCandidates {
		candidate, err := s.repo.Candidate().GetByID(ctx, candidateID)
		if err != nil {
			s.logger.Warn("Skipping unresolvable candidate during publish",
				"exam_id", exam.ID,
				"candidate_id", candidateID,
				"error", err)
			skipped++
			continue
		}

		assigned := candidate.AssignedExamFor(exam.ID)
		if assigned == nil {
			s.logger.Warn("Candidate has no assignment record for exam",
				"exam_id", exam.ID,
				"candidate_id", candidateID)
			skipped++
			continue
		}

		assigned.Result = classify(exam, candidate.ID, assigned.Score)

		if err := s.repo.Candidate().Update(ctx, candidate); err != nil {
			s.logger.Error("Failed to persist candidate classification",
				"exam_id", exam.ID,
				"candidate_id", candidateID,
				"error", err)
			continue
		}

		classified++
		recipients = append(recipients, events.ResultRecipient{
			CandidateID: candidate.ID,
			FullName:    candidate.FullName,
			Email:       candidate.Email,
			Result:      string(assigned.Result),
			Score:       assigned.Score,
			TotalMarks:  assigned.TotalMarks,
		})
	}

	if firstPublish {
		if err := s.notifier.NotifyResultPublished(ctx, exam, jobRole, recipients); err != nil {
			s.logger.Error("Failed to send result notification",
				"exam_id", exam.ID,
				"error", err)
		}
	}

	s.logger.Info("Result published",
		"exam_id", exam.ID,
		"first_publish", firstPublish,
		"classified", classified,
		"skipped", skipped)

	return &PublishResultResponse{
		ExamID:         exam.ID,
		FirstPublish:   firstPublish,
		Classified:     classified,
		SkippedMissing: skipped,
	}, nil
}

// classify applies the three-way outcome. The passing boundary is
// inclusive: a score equal to MinPassingMarks passes.
func classify(exam *models.Exam, candidateID string, score int) models.ExamResult {
	if !exam.HasAttended(candidateID) {
		return models.ResultNotAppeared
	}
	if score < exam.MinPassingMarks {
		return models.ResultFailed
	}
	return models.ResultPassed
}

func (s *resultService) GetRecentExams(ctx context.Context) ([]RecentExam, error) {
	exams, err := s.repo.Exam().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	now := time.Now()
	recent := make([]RecentExam, 0)
	for _, exam := range exams {
		end := exam.EndTime()
		if end.After(now) || now.Sub(end) > recentExamWindow {
			continue
		}
		title, err := s.jobRoleTitle(ctx, exam.JobRoleID)
		if err != nil {
			s.logger.Warn("Failed to resolve job role for recent exam",
				"exam_id", exam.ID, "error", err)
		}
		recent = append(recent, RecentExam{
			ExamID:          exam.ID,
			Title:           exam.Title,
			JobRoleTitle:    title,
			ExamDateAndTime: exam.ExamDateAndTime,
			ResultPublished: exam.ResultPublished,
		})
	}
	return recent, nil
}

func (s *resultService) GetPublishedResults(ctx context.Context) ([]PublishedExamSummary, error) {
	exams, err := s.repo.Exam().GetPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published exams: %w", err)
	}

	summaries := make([]PublishedExamSummary, 0, len(exams))
	for _, exam := range exams {
		title, err := s.jobRoleTitle(ctx, exam.JobRoleID)
		if err != nil {
			s.logger.Warn("Failed to resolve job role for published exam",
				"exam_id", exam.ID, "error", err)
		}
		summaries = append(summaries, PublishedExamSummary{
			ExamID:          exam.ID,
			Title:           exam.Title,
			JobRoleTitle:    title,
			ExamDateAndTime: exam.ExamDateAndTime,
			AssignedCount:   len(exam.AssignedCandidates),
			AttendedCount:   len(exam.AttendedBy),
		})
	}
	return summaries, nil
}

func (s *resultService) GetPaperSetNames(ctx context.Context, examID string) ([]PaperSetName, error) {
	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	names := make([]PaperSetName, 0, len(exam.PaperSets))
	for _, ps := range exam.PaperSets {
		names = append(names, PaperSetName{PaperSetID: ps.ID, Title: ps.Title})
	}
	return names, nil
}

func (s *resultService) GetResultsByExam(ctx context.Context, req ResultsByExamRequest) ([]CandidateResultRow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	exam, err := s.repo.Exam().GetByID(ctx, req.ExamID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	nameFilter := strings.ToLower(strings.TrimSpace(req.CandidateName))
	rows := make([]CandidateResultRow, 0, len(exam.AssignedCandidates))

	for _, candidateID := range exam.AssignedCandidates {
		candidate, err := s.repo.Candidate().GetByID(ctx, candidateID)
		if err != nil {
			s.logger.Warn("Skipping unresolvable candidate in result listing",
				"exam_id", exam.ID,
				"candidate_id", candidateID,
				"error", err)
			continue
		}

		assigned := candidate.AssignedExamFor(exam.ID)
		if assigned == nil {
			continue
		}
		if req.PaperSetID != "" && assigned.PaperSetID != req.PaperSetID {
			continue
		}
		if nameFilter != "" && !strings.Contains(strings.ToLower(candidate.FullName), nameFilter) {
			continue
		}

		rows = append(rows, CandidateResultRow{
			CandidateID: candidate.ID,
			FullName:    candidate.FullName,
			Email:       candidate.Email,
			PaperSetID:  assigned.PaperSetID,
			Score:       assigned.Score,
			TotalMarks:  assigned.TotalMarks,
			Result:      string(assigned.Result),
		})
	}
	return rows, nil
}

func (s *resultService) GetScoreCard(ctx context.Context, examID, candidateID string) (*ScoreCard, error) {
	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	candidate, err := s.repo.Candidate().GetByID(ctx, candidateID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	return buildScoreCard(exam, candidate)
}

// buildScoreCard flattens a candidate's assignment record into the response
// shape, sections ordered by title.
func buildScoreCard(exam *models.Exam, candidate *models.Candidate) (*ScoreCard, error) {
	assigned := candidate.AssignedExamFor(exam.ID)
	if assigned == nil {
		return nil, ErrAssignedExamNotFound
	}

	sections := make([]*models.SectionScore, 0, len(assigned.SectionScores))
	for _, sectionScore := range assigned.SectionScores {
		sections = append(sections, sectionScore)
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].SectionTitle < sections[j].SectionTitle
	})

	return &ScoreCard{
		CandidateID:   candidate.ID,
		FullName:      candidate.FullName,
		ExamID:        exam.ID,
		ExamTitle:     exam.Title,
		PaperSetID:    assigned.PaperSetID,
		Score:         assigned.Score,
		TotalMarks:    assigned.TotalMarks,
		Result:        string(assigned.Result),
		SectionScores: sections,
	}, nil
}

func (s *resultService) jobRoleTitle(ctx context.Context, jobRoleID string) (string, error) {
	jobRole, err := s.repo.JobRole().GetByID(ctx, jobRoleID)
	if err != nil {
		return "", err
	}
	return jobRole.Title, nil
}
