package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talakunchi/exam-portal-service/internal/utils"
)

func newExamFixture(t *testing.T) (*fakeRepository, ExamService) {
	t.Helper()
	repo := newFakeRepository()
	require.NoError(t, repo.JobRole().Create(context.Background(), fixtureJobRole()))
	svc := NewExamService(repo, utils.NopLogger(), testValidator(t))
	return repo, svc
}

func createExamReq() CreateExamRequest {
	return CreateExamRequest{
		Title:           "Backend Engineer Screening",
		JobRoleID:       "role-1",
		Duration:        90,
		MinPassingMarks: 40,
		ExamDateAndTime: time.Now().Add(48 * time.Hour),
		PaperSets: []PaperSetRequest{{
			Title: "Set A",
			Sections: []SectionRequest{{
				Title: "Aptitude",
				Questions: []QuestionRequest{{
					Text:          "2+2?",
					Options:       []string{"3", "4"},
					Marks:         10,
					CorrectAnswer: "4",
				}},
			}},
		}},
	}
}

func TestCreateExam_AssignsIDsAndLinksJobRole(t *testing.T) {
	repo, svc := newExamFixture(t)
	ctx := context.Background()

	exam, err := svc.CreateExam(ctx, createExamReq())
	require.NoError(t, err)
	assert.NotEmpty(t, exam.ID)
	require.Len(t, exam.PaperSets, 1)
	assert.NotEmpty(t, exam.PaperSets[0].ID)
	require.Len(t, exam.PaperSets[0].Sections, 1)
	assert.NotEmpty(t, exam.PaperSets[0].Sections[0].ID)
	assert.NotEmpty(t, exam.PaperSets[0].Sections[0].Questions[0].ID)

	jobRole, err := repo.JobRole().GetByID(ctx, "role-1")
	require.NoError(t, err)
	assert.Contains(t, []string(jobRole.ExamIDs), exam.ID)
}

func TestCreateExam_DuplicateTitlePerJobRole(t *testing.T) {
	_, svc := newExamFixture(t)
	ctx := context.Background()

	_, err := svc.CreateExam(ctx, createExamReq())
	require.NoError(t, err)

	_, err = svc.CreateExam(ctx, createExamReq())
	assert.ErrorIs(t, err, ErrExamAlreadyExists)
}

func TestCreateExam_UnknownJobRole(t *testing.T) {
	_, svc := newExamFixture(t)

	req := createExamReq()
	req.JobRoleID = "nope"
	_, err := svc.CreateExam(context.Background(), req)
	assert.ErrorIs(t, err, ErrJobRoleNotFound)
}

func TestPaperSetLifecycle(t *testing.T) {
	_, svc := newExamFixture(t)
	ctx := context.Background()

	exam, err := svc.CreateExam(ctx, createExamReq())
	require.NoError(t, err)

	// Duplicate titles within an exam are rejected.
	_, err = svc.AddPaperSet(ctx, exam.ID, PaperSetRequest{Title: "Set A"})
	assert.ErrorIs(t, err, ErrPaperSetAlreadyExists)

	exam, err = svc.AddPaperSet(ctx, exam.ID, PaperSetRequest{Title: "Set B"})
	require.NoError(t, err)
	require.Len(t, exam.PaperSets, 2)

	setB := exam.PaperSetByTitle("Set B")
	require.NotNil(t, setB)

	exam, err = svc.UpdatePaperSet(ctx, exam.ID, setB.ID, PaperSetRequest{
		Title: "Set B v2",
		Sections: []SectionRequest{{
			Title: "Coding",
			Questions: []QuestionRequest{{
				Text:          "Big-O of binary search?",
				Options:       []string{"O(n)", "O(log n)"},
				Marks:         20,
				CorrectAnswer: "O(log n)",
			}},
		}},
	})
	require.NoError(t, err)
	updated := exam.PaperSetByID(setB.ID)
	require.NotNil(t, updated)
	assert.Equal(t, "Set B v2", updated.Title)
	assert.Equal(t, 20, updated.TotalMarks())

	exam, err = svc.DeletePaperSet(ctx, exam.ID, setB.ID)
	require.NoError(t, err)
	assert.Len(t, exam.PaperSets, 1)
	assert.Nil(t, exam.PaperSetByID(setB.ID))
}

func TestQuestionLifecycle(t *testing.T) {
	_, svc := newExamFixture(t)
	ctx := context.Background()

	exam, err := svc.CreateExam(ctx, createExamReq())
	require.NoError(t, err)
	setID := exam.PaperSets[0].ID
	sectionID := exam.PaperSets[0].Sections[0].ID

	exam, err = svc.AddQuestion(ctx, exam.ID, setID, sectionID, QuestionRequest{
		Text:          "Capital of France?",
		Options:       []string{"Paris", "Lyon"},
		Marks:         5,
		CorrectAnswer: "Paris",
	})
	require.NoError(t, err)
	section := exam.PaperSetByID(setID).SectionByID(sectionID)
	require.Len(t, section.Questions, 2)
	questionID := section.Questions[1].ID

	exam, err = svc.UpdateQuestion(ctx, exam.ID, setID, sectionID, questionID, QuestionRequest{
		Text:          "Capital of France?",
		Options:       []string{"Paris", "Lyon", "Nice"},
		Marks:         8,
		CorrectAnswer: "Paris",
	})
	require.NoError(t, err)
	question := exam.PaperSetByID(setID).SectionByID(sectionID).QuestionByID(questionID)
	require.NotNil(t, question)
	assert.Equal(t, 8, question.Marks)
	assert.Len(t, question.Options, 3)

	exam, err = svc.DeleteQuestion(ctx, exam.ID, setID, sectionID, questionID)
	require.NoError(t, err)
	assert.Len(t, exam.PaperSetByID(setID).SectionByID(sectionID).Questions, 1)

	_, err = svc.DeleteQuestion(ctx, exam.ID, setID, sectionID, questionID)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
