package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// ScoringService records candidate answers and keeps the per-exam score
// documents consistent under resubmission.
type ScoringService interface {
	SubmitAnswer(ctx context.Context, req SubmitAnswerRequest) (*SubmitAnswerResponse, error)
}

// SubmitAnswerRequest identifies one answered question inside the paper
// hierarchy.
type SubmitAnswerRequest struct {
	CandidateID    string `json:"candidate_id" validate:"required,notblank"`
	ExamID         string `json:"exam_id" validate:"required,notblank"`
	PaperSetID     string `json:"paper_set_id" validate:"required,notblank"`
	SectionID      string `json:"section_id" validate:"required,notblank"`
	QuestionID     string `json:"question_id" validate:"required,notblank"`
	SelectedOption string `json:"selected_option" validate:"required,notblank"`
}

// SubmitAnswerResponse reports the running totals after the answer was
// applied.
type SubmitAnswerResponse struct {
	Correct       bool `json:"correct"`
	ObtainedMarks int  `json:"obtained_marks"`
	Score         int  `json:"score"`
	TotalMarks    int  `json:"total_marks"`
}

type scoringService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator

	// candidateLocks serializes the read-modify-write cycle per candidate
	// so concurrent submissions cannot drop each other's updates.
	candidateLocks sync.Map
}

func NewScoringService(repo repositories.Repository, logger utils.Logger, validator *utils.Validator) ScoringService {
	return &scoringService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *scoringService) lockCandidate(candidateID string) *sync.Mutex {
	mu, _ := s.candidateLocks.LoadOrStore(candidateID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *scoringService) SubmitAnswer(ctx context.Context, req SubmitAnswerRequest) (*SubmitAnswerResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	mu := s.lockCandidate(req.CandidateID)
	mu.Lock()
	defer mu.Unlock()

	candidate, err := s.repo.Candidate().GetByID(ctx, req.CandidateID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	exam, err := s.repo.Exam().GetByID(ctx, req.ExamID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	paperSet := exam.PaperSetByID(req.PaperSetID)
	if paperSet == nil {
		return nil, ErrPaperSetNotFound
	}

	section := paperSet.SectionByID(req.SectionID)
	if section == nil {
		return nil, ErrSectionNotFound
	}

	question := section.QuestionByID(req.QuestionID)
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	assigned := candidate.AssignedExamFor(req.ExamID)
	if assigned == nil {
		return nil, ErrAssignedExamNotFound
	}

	if exam.ResultPublished {
		s.logger.Warn("Answer submitted after result publication",
			"candidate_id", candidate.ID,
			"exam_id", exam.ID,
			"question_id", question.ID)
	}

	isCorrect := question.CorrectAnswer == req.SelectedOption
	obtained := 0
	if isCorrect {
		obtained = question.Marks
	}

	s.applyAnswer(assigned, section, question, req.SelectedOption, isCorrect, obtained)
	assigned.RecalculateTotals()

	if err := s.repo.Candidate().Update(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to save candidate score: %w", err)
	}

	s.logger.Info("Answer recorded",
		"candidate_id", candidate.ID,
		"exam_id", exam.ID,
		"question_id", question.ID,
		"correct", isCorrect,
		"score", assigned.Score)

	return &SubmitAnswerResponse{
		Correct:       isCorrect,
		ObtainedMarks: obtained,
		Score:         assigned.Score,
		TotalMarks:    assigned.TotalMarks,
	}, nil
}

// applyAnswer mutates the section and question records for one submission.
// A question's marks enter the section's TotalMarks exactly once, on the
// first submission for that question; resubmissions only adjust
// ObtainedMarks when correctness flips.
func (s *scoringService) applyAnswer(assigned *models.AssignedExam, section *models.Section, question *models.Question, selected string, isCorrect bool, obtained int) {
	if assigned.SectionScores == nil {
		assigned.SectionScores = make(map[string]*models.SectionScore)
	}

	sectionScore, ok := assigned.SectionScores[section.ID]
	if !ok {
		assigned.SectionScores[section.ID] = &models.SectionScore{
			SectionID:    section.ID,
			SectionTitle: section.Title,
			Questions: map[string]*models.QuestionRecord{
				question.ID: newQuestionRecord(question, selected, obtained),
			},
			ObtainedMarks: obtained,
			TotalMarks:    question.Marks,
		}
		return
	}

	if sectionScore.Questions == nil {
		sectionScore.Questions = make(map[string]*models.QuestionRecord)
	}

	record, ok := sectionScore.Questions[question.ID]
	if !ok {
		sectionScore.Questions[question.ID] = newQuestionRecord(question, selected, obtained)
		sectionScore.TotalMarks += question.Marks
		if isCorrect {
			sectionScore.ObtainedMarks += question.Marks
		}
		return
	}

	wasCorrect := record.Correct()
	if wasCorrect != isCorrect {
		if isCorrect {
			sectionScore.ObtainedMarks += question.Marks
		} else {
			sectionScore.ObtainedMarks -= question.Marks
		}
	}

	record.QuestionText = question.Text
	record.CorrectAnswer = question.CorrectAnswer
	record.SelectedAnswer = selected
	record.ObtainedMarks = obtained
	record.Attended = true
}

func newQuestionRecord(question *models.Question, selected string, obtained int) *models.QuestionRecord {
	return &models.QuestionRecord{
		QuestionID:     question.ID,
		QuestionText:   question.Text,
		Attended:       true,
		SelectedAnswer: selected,
		CorrectAnswer:  question.CorrectAnswer,
		TotalMarks:     question.Marks,
		ObtainedMarks:  obtained,
	}
}
