package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talakunchi/exam-portal-service/internal/events"
	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

func newResultFixture(t *testing.T) (*fakeRepository, *events.MockEventPublisher, ResultService) {
	t.Helper()
	repo := newFakeRepository()
	ctx := context.Background()
	require.NoError(t, repo.JobRole().Create(ctx, fixtureJobRole()))
	require.NoError(t, repo.Exam().Create(ctx, fixtureExam()))
	require.NoError(t, repo.Candidate().Create(ctx, fixtureCandidate()))

	publisher := events.NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	notifier := NewEventNotifier(publisher, utils.NopLogger())
	svc := NewResultService(repo, notifier, utils.NopLogger(), testValidator(t))
	return repo, publisher, svc
}

func setScore(t *testing.T, repo *fakeRepository, candidateID, examID string, score int, attended bool) {
	t.Helper()
	ctx := context.Background()

	candidate, err := repo.Candidate().GetByID(ctx, candidateID)
	require.NoError(t, err)
	assigned := candidate.AssignedExamFor(examID)
	require.NotNil(t, assigned)
	assigned.Score = score
	require.NoError(t, repo.Candidate().Update(ctx, candidate))

	if attended {
		exam, err := repo.Exam().GetByID(ctx, examID)
		require.NoError(t, err)
		exam.MarkAttended(candidateID)
		require.NoError(t, repo.Exam().Update(ctx, exam))
	}
}

func TestPublishResult_Classification(t *testing.T) {
	cases := []struct {
		name     string
		score    int
		attended bool
		want     models.ExamResult
	}{
		{"not appeared", 80, false, models.ResultNotAppeared},
		{"below bar", 49, true, models.ResultFailed},
		{"exactly at bar", 50, true, models.ResultPassed},
		{"above bar", 51, true, models.ResultPassed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, _, svc := newResultFixture(t)
			ctx := context.Background()
			setScore(t, repo, "cand-1", "exam-1", tc.score, tc.attended)

			resp, err := svc.PublishResult(ctx, "exam-1")
			require.NoError(t, err)
			assert.True(t, resp.FirstPublish)
			assert.Equal(t, 1, resp.Classified)

			candidate, err := repo.Candidate().GetByID(ctx, "cand-1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, candidate.AssignedExamFor("exam-1").Result)

			exam, err := repo.Exam().GetByID(ctx, "exam-1")
			require.NoError(t, err)
			assert.True(t, exam.ResultPublished)
		})
	}
}

func TestPublishResult_NotifiesOnlyOnFirstPublish(t *testing.T) {
	repo, publisher, svc := newResultFixture(t)
	ctx := context.Background()
	setScore(t, repo, "cand-1", "exam-1", 60, true)

	resp, err := svc.PublishResult(ctx, "exam-1")
	require.NoError(t, err)
	assert.True(t, resp.FirstPublish)
	require.Len(t, publisher.GetPublishedEvents(), 1)
	assert.Equal(t, events.EventResultPublished, publisher.GetPublishedEvents()[0].Type)

	resp, err = svc.PublishResult(ctx, "exam-1")
	require.NoError(t, err)
	assert.False(t, resp.FirstPublish)
	assert.Len(t, publisher.GetPublishedEvents(), 1, "second publish must not notify again")
}

func TestPublishResult_RepublishReclassifies(t *testing.T) {
	repo, _, svc := newResultFixture(t)
	ctx := context.Background()
	setScore(t, repo, "cand-1", "exam-1", 40, true)

	_, err := svc.PublishResult(ctx, "exam-1")
	require.NoError(t, err)
	candidate, _ := repo.Candidate().GetByID(ctx, "cand-1")
	assert.Equal(t, models.ResultFailed, candidate.AssignedExamFor("exam-1").Result)

	// A late regrade bumps the score; republishing picks it up.
	setScore(t, repo, "cand-1", "exam-1", 70, true)
	_, err = svc.PublishResult(ctx, "exam-1")
	require.NoError(t, err)
	candidate, _ = repo.Candidate().GetByID(ctx, "cand-1")
	assert.Equal(t, models.ResultPassed, candidate.AssignedExamFor("exam-1").Result)
}

func TestPublishResult_SkipsMissingCandidates(t *testing.T) {
	repo, _, svc := newResultFixture(t)
	ctx := context.Background()
	setScore(t, repo, "cand-1", "exam-1", 60, true)

	exam, err := repo.Exam().GetByID(ctx, "exam-1")
	require.NoError(t, err)
	exam.AssignedCandidates = append(exam.AssignedCandidates, "ghost")
	require.NoError(t, repo.Exam().Update(ctx, exam))

	resp, err := svc.PublishResult(ctx, "exam-1")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Classified)
	assert.Equal(t, 1, resp.SkippedMissing)
}

func TestPublishResult_UnknownExam(t *testing.T) {
	_, _, svc := newResultFixture(t)
	_, err := svc.PublishResult(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrExamNotFound)
}

func TestGetResultsByExam_Filters(t *testing.T) {
	repo, _, svc := newResultFixture(t)
	ctx := context.Background()

	second := fixtureCandidate()
	second.ID = "cand-2"
	second.FullName = "Ravi Kumar"
	second.Email = "ravi@example.com"
	second.Username = "ravi"
	second.AssignedExams[0].PaperSetID = "set-other"
	require.NoError(t, repo.Candidate().Create(ctx, second))

	exam, err := repo.Exam().GetByID(ctx, "exam-1")
	require.NoError(t, err)
	exam.AssignedCandidates = append(exam.AssignedCandidates, "cand-2")
	require.NoError(t, repo.Exam().Update(ctx, exam))

	rows, err := svc.GetResultsByExam(ctx, ResultsByExamRequest{ExamID: "exam-1"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.GetResultsByExam(ctx, ResultsByExamRequest{ExamID: "exam-1", PaperSetID: "set-1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "cand-1", rows[0].CandidateID)

	rows, err = svc.GetResultsByExam(ctx, ResultsByExamRequest{ExamID: "exam-1", CandidateName: "ravi"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ravi Kumar", rows[0].FullName)
}

func TestGetScoreCard(t *testing.T) {
	repo, _, svc := newResultFixture(t)
	ctx := context.Background()

	candidate, err := repo.Candidate().GetByID(ctx, "cand-1")
	require.NoError(t, err)
	assigned := candidate.AssignedExamFor("exam-1")
	assigned.SectionScores = map[string]*models.SectionScore{
		"sec-1": {
			SectionID:     "sec-1",
			SectionTitle:  "Aptitude",
			ObtainedMarks: 30,
			TotalMarks:    55,
		},
	}
	assigned.RecalculateTotals()
	require.NoError(t, repo.Candidate().Update(ctx, candidate))

	card, err := svc.GetScoreCard(ctx, "exam-1", "cand-1")
	require.NoError(t, err)
	assert.Equal(t, 30, card.Score)
	assert.Equal(t, 55, card.TotalMarks)
	require.Len(t, card.SectionScores, 1)
	assert.Equal(t, "Aptitude", card.SectionScores[0].SectionTitle)
}

func TestGetRecentExams_WindowsOnEndTime(t *testing.T) {
	repo, _, svc := newResultFixture(t)
	ctx := context.Background()

	old := fixtureExam()
	old.ID = "exam-old"
	old.Title = "Old Screening"
	old.ExamDateAndTime = time.Now().Add(-30 * 24 * time.Hour)
	require.NoError(t, repo.Exam().Create(ctx, old))

	upcoming := fixtureExam()
	upcoming.ID = "exam-future"
	upcoming.Title = "Future Screening"
	upcoming.ExamDateAndTime = time.Now().Add(24 * time.Hour)
	require.NoError(t, repo.Exam().Create(ctx, upcoming))

	recent, err := svc.GetRecentExams(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "exam-1", recent[0].ExamID)
}
