package repositories

import (
	"context"
	"time"

	"github.com/talakunchi/exam-portal-service/internal/models"
)

// ExamRepository persists whole Exam aggregates; paper sets and candidate
// reference sets travel with the row.
type ExamRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, id string) (*models.Exam, error)
	Update(ctx context.Context, exam *models.Exam) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context) ([]*models.Exam, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Exam, error)
	GetByJobRole(ctx context.Context, jobRoleID string) ([]*models.Exam, error)
	GetScheduledBetween(ctx context.Context, from, to time.Time) ([]*models.Exam, error)
	GetPublished(ctx context.Context) ([]*models.Exam, error)
	ExistsByTitleAndJobRole(ctx context.Context, title, jobRoleID string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
