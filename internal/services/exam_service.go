package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// ExamService manages exams and the paper set hierarchy nested inside them.
type ExamService interface {
	CreateExam(ctx context.Context, req CreateExamRequest) (*models.Exam, error)
	GetExam(ctx context.Context, id string) (*models.Exam, error)
	ListExams(ctx context.Context) ([]*models.Exam, error)
	GetExamsByJobRole(ctx context.Context, jobRoleID string) ([]*models.Exam, error)
	UpdateExam(ctx context.Context, id string, req UpdateExamRequest) (*models.Exam, error)
	DeleteExam(ctx context.Context, id string) error

	AddPaperSet(ctx context.Context, examID string, req PaperSetRequest) (*models.Exam, error)
	GetPaperSets(ctx context.Context, examID string) ([]models.PaperSet, error)
	GetPaperSet(ctx context.Context, examID, paperSetID string) (*models.PaperSet, error)
	UpdatePaperSet(ctx context.Context, examID, paperSetID string, req PaperSetRequest) (*models.Exam, error)
	DeletePaperSet(ctx context.Context, examID, paperSetID string) (*models.Exam, error)

	AddQuestion(ctx context.Context, examID, paperSetID, sectionID string, req QuestionRequest) (*models.Exam, error)
	UpdateQuestion(ctx context.Context, examID, paperSetID, sectionID, questionID string, req QuestionRequest) (*models.Exam, error)
	DeleteQuestion(ctx context.Context, examID, paperSetID, sectionID, questionID string) (*models.Exam, error)
}

type CreateExamRequest struct {
	Title           string            `json:"title" validate:"required,notblank,max=200"`
	JobRoleID       string            `json:"job_role_id" validate:"required,notblank"`
	Duration        int               `json:"duration" validate:"required,gt=0"`
	MinPassingMarks int               `json:"min_passing_marks" validate:"gte=0"`
	ExamDateAndTime time.Time         `json:"exam_date_and_time" validate:"required"`
	PaperSets       []PaperSetRequest `json:"paper_sets" validate:"dive"`
}

type UpdateExamRequest struct {
	Title           string    `json:"title" validate:"required,notblank,max=200"`
	Duration        int       `json:"duration" validate:"required,gt=0"`
	MinPassingMarks int       `json:"min_passing_marks" validate:"gte=0"`
	ExamDateAndTime time.Time `json:"exam_date_and_time" validate:"required"`
}

type PaperSetRequest struct {
	Title    string           `json:"title" validate:"required,notblank,max=200"`
	Sections []SectionRequest `json:"sections" validate:"dive"`
}

type SectionRequest struct {
	Title     string            `json:"title" validate:"required,notblank,max=200"`
	Questions []QuestionRequest `json:"questions" validate:"dive"`
}

type QuestionRequest struct {
	Text          string   `json:"text" validate:"required,notblank"`
	Options       []string `json:"options" validate:"required,min=2"`
	Marks         int      `json:"marks" validate:"required,gt=0"`
	CorrectAnswer string   `json:"correct_answer" validate:"required,notblank"`
}

type examService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
}

func NewExamService(repo repositories.Repository, logger utils.Logger, validator *utils.Validator) ExamService {
	return &examService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *examService) CreateExam(ctx context.Context, req CreateExamRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	jobRole, err := s.repo.JobRole().GetByID(ctx, req.JobRoleID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrJobRoleNotFound
		}
		return nil, fmt.Errorf("failed to get job role: %w", err)
	}

	exists, err := s.repo.Exam().ExistsByTitleAndJobRole(ctx, req.Title, jobRole.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check exam title: %w", err)
	}
	if exists {
		return nil, ErrExamAlreadyExists
	}

	exam := &models.Exam{
		ID:              uuid.NewString(),
		Title:           req.Title,
		JobRoleID:       jobRole.ID,
		Duration:        req.Duration,
		MinPassingMarks: req.MinPassingMarks,
		ExamDateAndTime: req.ExamDateAndTime,
	}
	for _, ps := range req.PaperSets {
		exam.PaperSets = append(exam.PaperSets, buildPaperSet(ps))
	}

	if err := s.repo.Exam().Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to create exam: %w", err)
	}

	jobRole.ExamIDs = append(jobRole.ExamIDs, exam.ID)
	if err := s.repo.JobRole().Update(ctx, jobRole); err != nil {
		return nil, fmt.Errorf("failed to link exam to job role: %w", err)
	}

	s.logger.Info("Exam created",
		"exam_id", exam.ID,
		"title", exam.Title,
		"job_role_id", jobRole.ID,
		"paper_sets", len(exam.PaperSets))
	return exam, nil
}

func (s *examService) GetExam(ctx context.Context, id string) (*models.Exam, error) {
	return s.loadExam(ctx, id)
}

func (s *examService) ListExams(ctx context.Context) ([]*models.Exam, error) {
	exams, err := s.repo.Exam().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	return exams, nil
}

func (s *examService) GetExamsByJobRole(ctx context.Context, jobRoleID string) ([]*models.Exam, error) {
	if _, err := s.repo.JobRole().GetByID(ctx, jobRoleID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrJobRoleNotFound
		}
		return nil, fmt.Errorf("failed to get job role: %w", err)
	}

	exams, err := s.repo.Exam().GetByJobRole(ctx, jobRoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams by job role: %w", err)
	}
	return exams, nil
}

func (s *examService) UpdateExam(ctx context.Context, id string, req UpdateExamRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	exam, err := s.loadExam(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != exam.Title {
		exists, err := s.repo.Exam().ExistsByTitleAndJobRole(ctx, req.Title, exam.JobRoleID)
		if err != nil {
			return nil, fmt.Errorf("failed to check exam title: %w", err)
		}
		if exists {
			return nil, ErrExamAlreadyExists
		}
	}

	exam.Title = req.Title
	exam.Duration = req.Duration
	exam.MinPassingMarks = req.MinPassingMarks
	exam.ExamDateAndTime = req.ExamDateAndTime

	if err := s.repo.Exam().Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to update exam: %w", err)
	}
	return exam, nil
}

func (s *examService) DeleteExam(ctx context.Context, id string) error {
	if _, err := s.loadExam(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Exam().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}
	s.logger.Info("Exam deleted", "exam_id", id)
	return nil
}

func (s *examService) AddPaperSet(ctx context.Context, examID string, req PaperSetRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	exam, err := s.loadExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	if exam.PaperSetByTitle(req.Title) != nil {
		return nil, ErrPaperSetAlreadyExists
	}

	exam.PaperSets = append(exam.PaperSets, buildPaperSet(req))
	if err := s.repo.Exam().Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to add paper set: %w", err)
	}
	return exam, nil
}

func (s *examService) GetPaperSets(ctx context.Context, examID string) ([]models.PaperSet, error) {
	exam, err := s.loadExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	return exam.PaperSets, nil
}

func (s *examService) GetPaperSet(ctx context.Context, examID, paperSetID string) (*models.PaperSet, error) {
	exam, err := s.loadExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	paperSet := exam.PaperSetByID(paperSetID)
	if paperSet == nil {
		return nil, ErrPaperSetNotFound
	}
	return paperSet, nil
}

func (s *examService) UpdatePaperSet(ctx context.Context, examID, paperSetID string, req PaperSetRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	exam, err := s.loadExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	paperSet := exam.PaperSetByID(paperSetID)
	if paperSet == nil {
		return nil, ErrPaperSetNotFound
	}

	if existing := exam.PaperSetByTitle(req.Title); existing != nil && existing.ID != paperSetID {
		return nil, ErrPaperSetAlreadyExists
	}

	replacement := buildPaperSet(req)
	replacement.ID = paperSet.ID
	*paperSet = replacement

	if err := s.repo.Exam().Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to update paper set: %w", err)
	}
	return exam, nil
}

func (s *examService) DeletePaperSet(ctx context.Context, examID, paperSetID string) (*models.Exam, error) {
	exam, err := s.loadExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range exam.PaperSets {
		if exam.PaperSets[i].ID == paperSetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrPaperSetNotFound
	}

	exam.PaperSets = append(exam.PaperSets[:idx], exam.PaperSets[idx+1:]...)
	if err := s.repo.Exam().Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to delete paper set: %w", err)
	}
	return exam, nil
}

func (s *examService) AddQuestion(ctx context.Context, examID, paperSetID, sectionID string, req QuestionRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	exam, section, err := s.loadSection(ctx, examID, paperSetID, sectionID)
	if err != nil {
		return nil, err
	}

	section.Questions = append(section.Questions, models.Question{
		ID:            uuid.NewString(),
		Text:          req.Text,
		Options:       req.Options,
		Marks:         req.Marks,
		CorrectAnswer: req.CorrectAnswer,
	})

	if err := s.repo.Exam().Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to add question: %w", err)
	}
	return exam, nil
}

func (s *examService) UpdateQuestion(ctx context.Context, examID, paperSetID, sectionID, questionID string, req QuestionRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	exam, section, err := s.loadSection(ctx, examID, paperSetID, sectionID)
	if err != nil {
		return nil, err
	}

	question := section.QuestionByID(questionID)
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	question.Text = req.Text
	question.Options = req.Options
	question.Marks = req.Marks
	question.CorrectAnswer = req.CorrectAnswer

	if err := s.repo.Exam().Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return exam, nil
}

func (s *examService) DeleteQuestion(ctx context.Context, examID, paperSetID, sectionID, questionID string) (*models.Exam, error) {
	exam, section, err := s.loadSection(ctx, examID, paperSetID, sectionID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range section.Questions {
		if section.Questions[i].ID == questionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrQuestionNotFound
	}

	section.Questions = append(section.Questions[:idx], section.Questions[idx+1:]...)
	if err := s.repo.Exam().Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to delete question: %w", err)
	}
	return exam, nil
}

func (s *examService) loadExam(ctx context.Context, id string) (*models.Exam, error) {
	exam, err := s.repo.Exam().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	return exam, nil
}

func (s *examService) loadSection(ctx context.Context, examID, paperSetID, sectionID string) (*models.Exam, *models.Section, error) {
	exam, err := s.loadExam(ctx, examID)
	if err != nil {
		return nil, nil, err
	}
	paperSet := exam.PaperSetByID(paperSetID)
	if paperSet == nil {
		return nil, nil, ErrPaperSetNotFound
	}
	section := paperSet.SectionByID(sectionID)
	if section == nil {
		return nil, nil, ErrSectionNotFound
	}
	return exam, section, nil
}

// buildPaperSet assigns fresh identifiers down the whole hierarchy.
func buildPaperSet(req PaperSetRequest) models.PaperSet {
	paperSet := models.PaperSet{
		ID:    uuid.NewString(),
		Title: req.Title,
	}
	for _, sec := range req.Sections {
		section := models.Section{
			ID:    uuid.NewString(),
			Title: sec.Title,
		}
		for _, q := range sec.Questions {
			section.Questions = append(section.Questions, models.Question{
				ID:            uuid.NewString(),
				Text:          q.Text,
				Options:       q.Options,
				Marks:         q.Marks,
				CorrectAnswer: q.CorrectAnswer,
			})
		}
		paperSet.Sections = append(paperSet.Sections, section)
	}
	return paperSet
}
