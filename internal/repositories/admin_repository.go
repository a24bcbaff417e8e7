package repositories

import (
	"context"

	"github.com/talakunchi/exam-portal-service/internal/models"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
