package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// RegistrationService enrolls candidates for an exam, either from a request
// body or from an uploaded spreadsheet roster.
type RegistrationService interface {
	RegisterCandidates(ctx context.Context, req RegisterCandidatesRequest) (*RegistrationReport, error)
	ImportRoster(ctx context.Context, examID string, roster io.Reader) (*RegistrationReport, error)
	UpdateCandidate(ctx context.Context, candidateID string, req UpdateCandidateRequest) (*models.Candidate, error)
	ListCandidates(ctx context.Context, filters repositories.CandidateFilters) ([]*models.Candidate, int64, error)
	GetCandidate(ctx context.Context, candidateID string) (*models.Candidate, error)
}

type RegisterCandidatesRequest struct {
	ExamID     string           `json:"exam_id" validate:"required,notblank"`
	Candidates []CandidateEntry `json:"candidates" validate:"required,min=1,dive"`
}

type CandidateEntry struct {
	FullName string `json:"full_name" validate:"required,notblank,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Contact  string `json:"contact" validate:"max=20"`
}

type UpdateCandidateRequest struct {
	FullName string `json:"full_name" validate:"required,notblank,max=200"`
	Contact  string `json:"contact" validate:"max=20"`
	Enabled  bool   `json:"enabled"`
}

// RegistrationReport tells the admin which entries were enrolled and which
// were skipped as duplicates.
type RegistrationReport struct {
	ExamID     string   `json:"exam_id"`
	Registered int      `json:"registered"`
	Skipped    []string `json:"skipped_emails"`
}

type registrationService struct {
	repo      repositories.Repository
	notifier  Notifier
	logger    utils.Logger
	validator *utils.Validator
}

func NewRegistrationService(repo repositories.Repository, notifier Notifier, logger utils.Logger, validator *utils.Validator) RegistrationService {
	return &registrationService{
		repo:      repo,
		notifier:  notifier,
		logger:    logger,
		validator: validator,
	}
}

func (s *registrationService) RegisterCandidates(ctx context.Context, req RegisterCandidatesRequest) (*RegistrationReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	return s.register(ctx, req.ExamID, req.Candidates)
}

// ImportRoster reads candidates from the first sheet of an .xlsx upload.
// Expected columns: full name, email, contact. A header row is detected by
// a missing '@' in the email column and skipped.
func (s *registrationService) ImportRoster(ctx context.Context, examID string, roster io.Reader) (*RegistrationReport, error) {
	file, err := excelize.OpenReader(roster)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("roster file has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read roster rows: %w", err)
	}

	entries := make([]CandidateEntry, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		entry := CandidateEntry{
			FullName: strings.TrimSpace(row[0]),
			Email:    strings.TrimSpace(row[1]),
		}
		if len(row) > 2 {
			entry.Contact = strings.TrimSpace(row[2])
		}
		if entry.FullName == "" || !strings.Contains(entry.Email, "@") {
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("roster file has no usable rows")
	}
	return s.register(ctx, examID, entries)
}

func (s *registrationService) register(ctx context.Context, examID string, entries []CandidateEntry) (*RegistrationReport, error) {
	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	if len(exam.PaperSets) == 0 {
		return nil, ErrNoPaperSets
	}

	jobRole, err := s.repo.JobRole().GetByID(ctx, exam.JobRoleID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrJobRoleNotFound
		}
		return nil, fmt.Errorf("failed to get job role: %w", err)
	}

	emails := make([]string, 0, len(entries))
	for _, entry := range entries {
		emails = append(emails, strings.ToLower(entry.Email))
	}
	existing, err := s.repo.Candidate().GetByEmails(ctx, emails)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing candidates: %w", err)
	}
	taken := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		taken[strings.ToLower(c.Email)] = struct{}{}
	}

	report := &RegistrationReport{ExamID: exam.ID, Skipped: make([]string, 0)}

	for _, entry := range entries {
		email := strings.ToLower(entry.Email)
		if _, dup := taken[email]; dup {
			report.Skipped = append(report.Skipped, entry.Email)
			continue
		}
		taken[email] = struct{}{}

		candidate, password, err := s.enroll(ctx, exam, jobRole, entry, email)
		if err != nil {
			s.logger.Error("Failed to enroll candidate",
				"exam_id", exam.ID,
				"email", entry.Email,
				"error", err)
			report.Skipped = append(report.Skipped, entry.Email)
			continue
		}
		report.Registered++

		if err := s.notifier.NotifyCredentialsIssued(ctx, candidate, password, exam); err != nil {
			s.logger.Error("Failed to send credential notification",
				"candidate_id", candidate.ID,
				"error", err)
		}
	}

	if err := s.repo.Exam().Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to update exam assignments: %w", err)
	}
	if err := s.repo.JobRole().Update(ctx, jobRole); err != nil {
		return nil, fmt.Errorf("failed to update job role candidates: %w", err)
	}

	s.logger.Info("Candidate registration completed",
		"exam_id", exam.ID,
		"registered", report.Registered,
		"skipped", len(report.Skipped))
	return report, nil
}

func (s *registrationService) enroll(ctx context.Context, exam *models.Exam, jobRole *models.JobRole, entry CandidateEntry, email string) (*models.Candidate, string, error) {
	username, err := utils.GenerateUsername(entry.FullName)
	if err != nil {
		return nil, "", err
	}
	password, err := utils.GeneratePassword(email)
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	paperSet, err := pickPaperSet(exam)
	if err != nil {
		return nil, "", err
	}

	candidate := &models.Candidate{
		ID:         uuid.NewString(),
		FullName:   entry.FullName,
		Email:      email,
		Contact:    entry.Contact,
		Username:   username,
		Password:   string(hash),
		Enabled:    true,
		JobRoleIDs: datatypes.JSONSlice[string]{jobRole.ID},
		AssignedExams: datatypes.JSONSlice[models.AssignedExam]{{
			ExamID:     exam.ID,
			PaperSetID: paperSet.ID,
			Result:     models.ResultNotAppeared,
		}},
	}

	if err := s.repo.Candidate().Create(ctx, candidate); err != nil {
		return nil, "", fmt.Errorf("failed to create candidate: %w", err)
	}

	exam.AssignedCandidates = append(exam.AssignedCandidates, candidate.ID)
	jobRole.CandidateIDs = append(jobRole.CandidateIDs, candidate.ID)
	return candidate, password, nil
}

// pickPaperSet assigns one of the exam's paper sets uniformly at random.
func pickPaperSet(exam *models.Exam) (*models.PaperSet, error) {
	if len(exam.PaperSets) == 0 {
		return nil, ErrNoPaperSets
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(exam.PaperSets))))
	if err != nil {
		return nil, fmt.Errorf("failed to pick paper set: %w", err)
	}
	return &exam.PaperSets[n.Int64()], nil
}

func (s *registrationService) UpdateCandidate(ctx context.Context, candidateID string, req UpdateCandidateRequest) (*models.Candidate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	candidate, err := s.repo.Candidate().GetByID(ctx, candidateID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	candidate.FullName = req.FullName
	candidate.Contact = req.Contact
	candidate.Enabled = req.Enabled

	if err := s.repo.Candidate().Update(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to update candidate: %w", err)
	}
	return candidate, nil
}

func (s *registrationService) ListCandidates(ctx context.Context, filters repositories.CandidateFilters) ([]*models.Candidate, int64, error) {
	candidates, total, err := s.repo.Candidate().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, total, nil
}

func (s *registrationService) GetCandidate(ctx context.Context, candidateID string) (*models.Candidate, error) {
	candidate, err := s.repo.Candidate().GetByID(ctx, candidateID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}
