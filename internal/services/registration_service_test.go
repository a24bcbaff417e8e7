package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/talakunchi/exam-portal-service/internal/events"
	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

func newRegistrationFixture(t *testing.T) (*fakeRepository, *events.MockEventPublisher, RegistrationService) {
	t.Helper()
	repo := newFakeRepository()
	ctx := context.Background()
	require.NoError(t, repo.JobRole().Create(ctx, fixtureJobRole()))

	exam := fixtureExam()
	exam.AssignedCandidates = nil
	require.NoError(t, repo.Exam().Create(ctx, exam))

	publisher := events.NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	notifier := NewEventNotifier(publisher, utils.NopLogger())
	svc := NewRegistrationService(repo, notifier, utils.NopLogger(), testValidator(t))
	return repo, publisher, svc
}

func TestRegisterCandidates_EnrollsAndNotifies(t *testing.T) {
	repo, publisher, svc := newRegistrationFixture(t)
	ctx := context.Background()

	report, err := svc.RegisterCandidates(ctx, RegisterCandidatesRequest{
		ExamID: "exam-1",
		Candidates: []CandidateEntry{
			{FullName: "Asha Verma", Email: "asha.verma@example.com", Contact: "9876543210"},
			{FullName: "Ravi Kumar", Email: "ravi.kumar@example.com"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Registered)
	assert.Empty(t, report.Skipped)

	exam, err := repo.Exam().GetByID(ctx, "exam-1")
	require.NoError(t, err)
	assert.Len(t, exam.AssignedCandidates, 2)

	jobRole, err := repo.JobRole().GetByID(ctx, "role-1")
	require.NoError(t, err)
	assert.Len(t, jobRole.CandidateIDs, 2)

	candidates, err := repo.Candidate().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	for _, candidate := range candidates {
		assert.True(t, candidate.Enabled)
		assert.NotEmpty(t, candidate.Username)
		require.Len(t, candidate.AssignedExams, 1)
		assert.Equal(t, "exam-1", candidate.AssignedExams[0].ExamID)
		assert.Equal(t, models.ResultNotAppeared, candidate.AssignedExams[0].Result)
		assert.Equal(t, "set-1", candidate.AssignedExams[0].PaperSetID)
	}

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	for _, event := range published {
		assert.Equal(t, events.EventCandidateRegistered, event.Type)
	}
}

func TestRegisterCandidates_CredentialsWork(t *testing.T) {
	repo, publisher, svc := newRegistrationFixture(t)
	ctx := context.Background()

	_, err := svc.RegisterCandidates(ctx, RegisterCandidatesRequest{
		ExamID: "exam-1",
		Candidates: []CandidateEntry{
			{FullName: "Asha Verma", Email: "asha.verma@example.com"},
		},
	})
	require.NoError(t, err)

	payload, ok := publisher.GetPublishedEvents()[0].Data.(events.CandidateRegisteredEvent)
	require.True(t, ok)

	candidate, err := repo.Candidate().GetByUsername(ctx, payload.Username)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(candidate.Password), []byte(payload.Password)))
}

func TestRegisterCandidates_DuplicatesSkipped(t *testing.T) {
	repo, _, svc := newRegistrationFixture(t)
	ctx := context.Background()

	existing := fixtureCandidate()
	existing.Email = "asha.verma@example.com"
	require.NoError(t, repo.Candidate().Create(ctx, existing))

	report, err := svc.RegisterCandidates(ctx, RegisterCandidatesRequest{
		ExamID: "exam-1",
		Candidates: []CandidateEntry{
			{FullName: "Asha Verma", Email: "Asha.Verma@example.com"},
			{FullName: "Ravi Kumar", Email: "ravi.kumar@example.com"},
			{FullName: "Ravi Again", Email: "ravi.kumar@example.com"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Registered)
	assert.Len(t, report.Skipped, 2)
}

func TestRegisterCandidates_NoPaperSets(t *testing.T) {
	repo, _, svc := newRegistrationFixture(t)
	ctx := context.Background()

	exam, err := repo.Exam().GetByID(ctx, "exam-1")
	require.NoError(t, err)
	exam.PaperSets = nil
	require.NoError(t, repo.Exam().Update(ctx, exam))

	_, err = svc.RegisterCandidates(ctx, RegisterCandidatesRequest{
		ExamID:     "exam-1",
		Candidates: []CandidateEntry{{FullName: "Asha Verma", Email: "asha@example.com"}},
	})
	assert.ErrorIs(t, err, ErrNoPaperSets)
}

func TestRegisterCandidates_UnknownExam(t *testing.T) {
	_, _, svc := newRegistrationFixture(t)

	_, err := svc.RegisterCandidates(context.Background(), RegisterCandidatesRequest{
		ExamID:     "nope",
		Candidates: []CandidateEntry{{FullName: "Asha Verma", Email: "asha@example.com"}},
	})
	assert.ErrorIs(t, err, ErrExamNotFound)
}
