package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/talakunchi/exam-portal-service/internal/cache"
	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

var errOTPMissing = cache.ErrOTPNotFound

// fakeRepository is an in-memory Repository for service tests. Reads return
// deep copies so a failed write can never leak partial mutations back into
// the store, matching what a real database guarantees.
type fakeRepository struct {
	jobRoles   map[string]*models.JobRole
	exams      map[string]*models.Exam
	candidates map[string]*models.Candidate
	admins     map[string]*models.Admin

	candidateUpdateErr error
	examUpdateErr      error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		jobRoles:   make(map[string]*models.JobRole),
		exams:      make(map[string]*models.Exam),
		candidates: make(map[string]*models.Candidate),
		admins:     make(map[string]*models.Admin),
	}
}

func (f *fakeRepository) JobRole() repositories.JobRoleRepository     { return &fakeJobRoles{f} }
func (f *fakeRepository) Exam() repositories.ExamRepository           { return &fakeExams{f} }
func (f *fakeRepository) Candidate() repositories.CandidateRepository { return &fakeCandidates{f} }
func (f *fakeRepository) Admin() repositories.AdminRepository         { return &fakeAdmins{f} }
func (f *fakeRepository) Ping(ctx context.Context) error              { return nil }
func (f *fakeRepository) Close() error                                { return nil }

func clone[T any](t *T) *T {
	raw, err := json.Marshal(t)
	if err != nil {
		panic(err)
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		panic(err)
	}
	return out
}

// Password fields carry json:"-" and would be lost by the JSON round trip.

func cloneCandidate(c *models.Candidate) *models.Candidate {
	out := clone(c)
	out.Password = c.Password
	return out
}

func cloneAdmin(a *models.Admin) *models.Admin {
	out := clone(a)
	out.Password = a.Password
	return out
}

type fakeJobRoles struct{ f *fakeRepository }

func (r *fakeJobRoles) Create(ctx context.Context, jobRole *models.JobRole) error {
	r.f.jobRoles[jobRole.ID] = clone(jobRole)
	return nil
}

func (r *fakeJobRoles) GetByID(ctx context.Context, id string) (*models.JobRole, error) {
	jobRole, ok := r.f.jobRoles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clone(jobRole), nil
}

func (r *fakeJobRoles) Update(ctx context.Context, jobRole *models.JobRole) error {
	r.f.jobRoles[jobRole.ID] = clone(jobRole)
	return nil
}

func (r *fakeJobRoles) List(ctx context.Context) ([]*models.JobRole, error) {
	out := make([]*models.JobRole, 0, len(r.f.jobRoles))
	for _, jr := range r.f.jobRoles {
		out = append(out, clone(jr))
	}
	return out, nil
}

func (r *fakeJobRoles) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	for _, jr := range r.f.jobRoles {
		if jr.Title == title {
			return true, nil
		}
	}
	return false, nil
}

type fakeExams struct{ f *fakeRepository }

func (r *fakeExams) Create(ctx context.Context, exam *models.Exam) error {
	r.f.exams[exam.ID] = clone(exam)
	return nil
}

func (r *fakeExams) GetByID(ctx context.Context, id string) (*models.Exam, error) {
	exam, ok := r.f.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clone(exam), nil
}

func (r *fakeExams) Update(ctx context.Context, exam *models.Exam) error {
	if r.f.examUpdateErr != nil {
		return r.f.examUpdateErr
	}
	r.f.exams[exam.ID] = clone(exam)
	return nil
}

func (r *fakeExams) Delete(ctx context.Context, id string) error {
	delete(r.f.exams, id)
	return nil
}

func (r *fakeExams) List(ctx context.Context) ([]*models.Exam, error) {
	out := make([]*models.Exam, 0, len(r.f.exams))
	for _, e := range r.f.exams {
		out = append(out, clone(e))
	}
	return out, nil
}

func (r *fakeExams) GetByIDs(ctx context.Context, ids []string) ([]*models.Exam, error) {
	out := make([]*models.Exam, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.f.exams[id]; ok {
			out = append(out, clone(e))
		}
	}
	return out, nil
}

func (r *fakeExams) GetByJobRole(ctx context.Context, jobRoleID string) ([]*models.Exam, error) {
	out := make([]*models.Exam, 0)
	for _, e := range r.f.exams {
		if e.JobRoleID == jobRoleID {
			out = append(out, clone(e))
		}
	}
	return out, nil
}

func (r *fakeExams) GetScheduledBetween(ctx context.Context, from, to time.Time) ([]*models.Exam, error) {
	out := make([]*models.Exam, 0)
	for _, e := range r.f.exams {
		if !e.ExamDateAndTime.Before(from) && !e.ExamDateAndTime.After(to) {
			out = append(out, clone(e))
		}
	}
	return out, nil
}

func (r *fakeExams) GetPublished(ctx context.Context) ([]*models.Exam, error) {
	out := make([]*models.Exam, 0)
	for _, e := range r.f.exams {
		if e.ResultPublished {
			out = append(out, clone(e))
		}
	}
	return out, nil
}

func (r *fakeExams) ExistsByTitleAndJobRole(ctx context.Context, title, jobRoleID string) (bool, error) {
	for _, e := range r.f.exams {
		if e.Title == title && e.JobRoleID == jobRoleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeExams) Count(ctx context.Context) (int64, error) {
	return int64(len(r.f.exams)), nil
}

type fakeCandidates struct{ f *fakeRepository }

func (r *fakeCandidates) Create(ctx context.Context, candidate *models.Candidate) error {
	r.f.candidates[candidate.ID] = cloneCandidate(candidate)
	return nil
}

func (r *fakeCandidates) CreateBatch(ctx context.Context, candidates []*models.Candidate) error {
	for _, c := range candidates {
		r.f.candidates[c.ID] = cloneCandidate(c)
	}
	return nil
}

func (r *fakeCandidates) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	candidate, ok := r.f.candidates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneCandidate(candidate), nil
}

func (r *fakeCandidates) GetByUsername(ctx context.Context, username string) (*models.Candidate, error) {
	for _, c := range r.f.candidates {
		if c.Username == username {
			return cloneCandidate(c), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCandidates) Update(ctx context.Context, candidate *models.Candidate) error {
	if r.f.candidateUpdateErr != nil {
		return r.f.candidateUpdateErr
	}
	r.f.candidates[candidate.ID] = cloneCandidate(candidate)
	return nil
}

func (r *fakeCandidates) List(ctx context.Context, filters repositories.CandidateFilters) ([]*models.Candidate, int64, error) {
	out, _ := r.ListAll(ctx)
	return out, int64(len(out)), nil
}

func (r *fakeCandidates) ListAll(ctx context.Context) ([]*models.Candidate, error) {
	out := make([]*models.Candidate, 0, len(r.f.candidates))
	for _, c := range r.f.candidates {
		out = append(out, cloneCandidate(c))
	}
	return out, nil
}

func (r *fakeCandidates) GetByEmails(ctx context.Context, emails []string) ([]*models.Candidate, error) {
	out := make([]*models.Candidate, 0)
	for _, email := range emails {
		for _, c := range r.f.candidates {
			if c.Email == email {
				out = append(out, cloneCandidate(c))
			}
		}
	}
	return out, nil
}

func (r *fakeCandidates) Count(ctx context.Context) (int64, error) {
	return int64(len(r.f.candidates)), nil
}

type fakeAdmins struct{ f *fakeRepository }

func (r *fakeAdmins) Create(ctx context.Context, admin *models.Admin) error {
	r.f.admins[admin.ID] = cloneAdmin(admin)
	return nil
}

func (r *fakeAdmins) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	admin, ok := r.f.admins[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneAdmin(admin), nil
}

func (r *fakeAdmins) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	for _, a := range r.f.admins {
		if a.Username == username {
			return cloneAdmin(a), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAdmins) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, a := range r.f.admins {
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// fakeOTPStore keeps codes in a map, ignoring TTL.
type fakeOTPStore struct {
	codes map[string]string
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: make(map[string]string)}
}

func (s *fakeOTPStore) Put(ctx context.Context, adminID, code string, ttl time.Duration) error {
	s.codes[adminID] = code
	return nil
}

func (s *fakeOTPStore) Get(ctx context.Context, adminID string) (string, error) {
	code, ok := s.codes[adminID]
	if !ok {
		return "", errOTPMissing
	}
	return code, nil
}

func (s *fakeOTPStore) Delete(ctx context.Context, adminID string) error {
	delete(s.codes, adminID)
	return nil
}

func testValidator(t *testing.T) *utils.Validator {
	t.Helper()
	v, err := utils.NewValidator()
	require.NoError(t, err)
	return v
}

// Fixture builders shared across the service tests.

func fixtureExam() *models.Exam {
	return &models.Exam{
		ID:              "exam-1",
		Title:           "Backend Engineer Screening",
		JobRoleID:       "role-1",
		Duration:        60,
		MinPassingMarks: 50,
		ExamDateAndTime: time.Now().Add(-2 * time.Hour),
		PaperSets: datatypes.JSONSlice[models.PaperSet]{{
			ID:    "set-1",
			Title: "Set A",
			Sections: []models.Section{
				{
					ID:    "sec-1",
					Title: "Aptitude",
					Questions: []models.Question{
						{ID: "q-1", Text: "2+2?", Options: []string{"3", "4"}, Marks: 30, CorrectAnswer: "4"},
						{ID: "q-2", Text: "Capital of France?", Options: []string{"Paris", "Lyon"}, Marks: 25, CorrectAnswer: "Paris"},
					},
				},
				{
					ID:    "sec-2",
					Title: "Coding",
					Questions: []models.Question{
						{ID: "q-3", Text: "Big-O of binary search?", Options: []string{"O(n)", "O(log n)"}, Marks: 45, CorrectAnswer: "O(log n)"},
					},
				},
			},
		}},
		AssignedCandidates: datatypes.JSONSlice[string]{"cand-1"},
	}
}

func fixtureCandidate() *models.Candidate {
	return &models.Candidate{
		ID:       "cand-1",
		FullName: "Asha Verma",
		Email:    "asha.verma@example.com",
		Username: "asha@verma",
		Enabled:  true,
		AssignedExams: datatypes.JSONSlice[models.AssignedExam]{{
			ExamID:     "exam-1",
			PaperSetID: "set-1",
			Result:     models.ResultNotAppeared,
		}},
	}
}

func fixtureJobRole() *models.JobRole {
	return &models.JobRole{
		ID:    "role-1",
		Title: "Backend Engineer",
	}
}
