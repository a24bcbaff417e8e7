package repositories

import (
	"context"

	"github.com/talakunchi/exam-portal-service/internal/models"
)

type JobRoleRepository interface {
	Create(ctx context.Context, jobRole *models.JobRole) error
	GetByID(ctx context.Context, id string) (*models.JobRole, error)
	Update(ctx context.Context, jobRole *models.JobRole) error

	List(ctx context.Context) ([]*models.JobRole, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
}
