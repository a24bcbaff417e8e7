package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is the authoritative question-bank entry. It lives embedded in its
// section; the correct answer is an opaque string matched exactly (case
// sensitive) against a candidate's selected option.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	Marks         int      `json:"marks" validate:"required,min=1"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
}

type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions" validate:"dive"`
}

// QuestionByID returns a pointer into the section's question list so callers
// can mutate the entry in place.
func (s *Section) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// PaperSet is one complete variant of an exam's question set, assigned
// per-candidate to vary content.
type PaperSet struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections" validate:"dive"`
}

func (p *PaperSet) SectionByID(id string) *Section {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return &p.Sections[i]
		}
	}
	return nil
}

// TotalQuestions and TotalMarks summarize the paper set for admin listings.
func (p *PaperSet) TotalQuestions() int {
	n := 0
	for i := range p.Sections {
		n += len(p.Sections[i].Questions)
	}
	return n
}

func (p *PaperSet) TotalMarks() int {
	sum := 0
	for i := range p.Sections {
		for j := range p.Sections[i].Questions {
			sum += p.Sections[i].Questions[j].Marks
		}
	}
	return sum
}

type Exam struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	Title           string    `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	JobRoleID       string    `json:"job_role_id" gorm:"not null;size:36;index" validate:"required"`
	Duration        int       `json:"duration" validate:"required,min=5,max=300"` // minutes
	MinPassingMarks int       `json:"min_passing_marks" validate:"required,min=1"`
	ExamDateAndTime time.Time `json:"exam_date_and_time" validate:"required"`

	// The nested question bank and candidate reference sets are stored as
	// JSONB documents on the exam row; the whole row is saved on mutation.
	PaperSets          datatypes.JSONSlice[PaperSet] `json:"paper_sets" gorm:"type:jsonb"`
	AssignedCandidates datatypes.JSONSlice[string]   `json:"assigned_candidates" gorm:"type:jsonb"`
	AttendedBy         datatypes.JSONSlice[string]   `json:"attended_by" gorm:"type:jsonb"`

	// Monotonic false -> true; never reverts.
	ResultPublished bool `json:"result_published" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Exam) TableName() string {
	return "exams"
}

func (e *Exam) PaperSetByID(id string) *PaperSet {
	for i := range e.PaperSets {
		if e.PaperSets[i].ID == id {
			return &e.PaperSets[i]
		}
	}
	return nil
}

func (e *Exam) PaperSetByTitle(title string) *PaperSet {
	for i := range e.PaperSets {
		if e.PaperSets[i].Title == title {
			return &e.PaperSets[i]
		}
	}
	return nil
}

func (e *Exam) HasAttended(candidateID string) bool {
	for _, id := range e.AttendedBy {
		if id == candidateID {
			return true
		}
	}
	return false
}

// MarkAttended records the candidate in the attended set with at-most-once
// insertion. Returns true when the set actually changed.
func (e *Exam) MarkAttended(candidateID string) bool {
	if e.HasAttended(candidateID) {
		return false
	}
	e.AttendedBy = append(e.AttendedBy, candidateID)
	return true
}

// EndTime is the scheduled start plus the exam duration.
func (e *Exam) EndTime() time.Time {
	return e.ExamDateAndTime.Add(time.Duration(e.Duration) * time.Minute)
}
