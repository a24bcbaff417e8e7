package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExamResult string

const (
	ResultNotAppeared ExamResult = "Not Appeared"
	ResultPassed      ExamResult = "Passed"
	ResultFailed      ExamResult = "Failed"
)

// QuestionRecord is the candidate's graded attempt at one question. It is
// created on first submission and overwritten in place on resubmission.
type QuestionRecord struct {
	QuestionID     string `json:"question_id"`
	QuestionText   string `json:"question_text"`
	Attended       bool   `json:"attended"`
	SelectedAnswer string `json:"selected_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	TotalMarks     int    `json:"total_marks"`
	ObtainedMarks  int    `json:"obtained_marks"`
}

// Correct reports whether the stored selected answer matches the stored
// correct answer. Used to derive previous correctness when re-grading.
func (q *QuestionRecord) Correct() bool {
	return q.SelectedAnswer == q.CorrectAnswer
}

// SectionScore accumulates a candidate's marks for one section. Question
// records are keyed by question id so resubmissions re-grade in place rather
// than appending duplicates.
type SectionScore struct {
	SectionID     string                     `json:"section_id"`
	SectionTitle  string                     `json:"section_title"`
	Questions     map[string]*QuestionRecord `json:"questions"`
	ObtainedMarks int                        `json:"obtained_marks"`
	TotalMarks    int                        `json:"total_marks"`
}

// AssignedExam links a candidate to one exam, its assigned paper set, and
// their evolving score. Section scores are keyed by section id.
type AssignedExam struct {
	ExamID        string                   `json:"exam_id"`
	PaperSetID    string                   `json:"paper_set_id"`
	Result        ExamResult               `json:"result"`
	Score         int                      `json:"score"`
	TotalMarks    int                      `json:"total_marks"`
	SectionScores map[string]*SectionScore `json:"section_scores"`
}

// RecalculateTotals re-sums Score and TotalMarks from every section score.
// A full re-sum keeps the aggregate self-correcting regardless of how the
// section-level values were adjusted.
func (ae *AssignedExam) RecalculateTotals() {
	score, total := 0, 0
	for _, sec := range ae.SectionScores {
		score += sec.ObtainedMarks
		total += sec.TotalMarks
	}
	ae.Score = score
	ae.TotalMarks = total
}

type Candidate struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	FullName string `json:"fullname" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Contact  string `json:"contact" gorm:"size:20" validate:"required"`
	Username string `json:"username" gorm:"uniqueIndex;not null;size:100"`
	Password string `json:"-" gorm:"not null;size:255"`
	Enabled  bool   `json:"enabled" gorm:"default:true"`

	JobRoleIDs    datatypes.JSONSlice[string]       `json:"jobrole_ids" gorm:"type:jsonb"`
	AssignedExams datatypes.JSONSlice[AssignedExam] `json:"assigned_exams" gorm:"type:jsonb"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// AssignedExamFor returns a pointer into the candidate's assigned-exam list
// so scoring mutates the stored record, or nil when the candidate has no
// assignment for the exam.
func (c *Candidate) AssignedExamFor(examID string) *AssignedExam {
	for i := range c.AssignedExams {
		if c.AssignedExams[i].ExamID == examID {
			return &c.AssignedExams[i]
		}
	}
	return nil
}
