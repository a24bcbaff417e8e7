package repositories

import (
	"context"

	"github.com/talakunchi/exam-portal-service/internal/models"
)

// CandidateRepository persists whole Candidate aggregates; the assigned-exam
// scoring documents travel with the row, so Update is a whole-record save.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	CreateBatch(ctx context.Context, candidates []*models.Candidate) error
	GetByID(ctx context.Context, id string) (*models.Candidate, error)
	GetByUsername(ctx context.Context, username string) (*models.Candidate, error)
	Update(ctx context.Context, candidate *models.Candidate) error

	List(ctx context.Context, filters CandidateFilters) ([]*models.Candidate, int64, error)
	ListAll(ctx context.Context) ([]*models.Candidate, error)
	GetByEmails(ctx context.Context, emails []string) ([]*models.Candidate, error)
	Count(ctx context.Context) (int64, error)
}
