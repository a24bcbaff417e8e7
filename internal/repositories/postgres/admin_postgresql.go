package postgres

import (
	"context"

	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type AdminPostgreSQL struct {
	db *gorm.DB
}

func NewAdminPostgreSQL(db *gorm.DB) repositories.AdminRepository {
	return &AdminPostgreSQL{db: db}
}

func (a *AdminPostgreSQL) Create(ctx context.Context, admin *models.Admin) error {
	return a.db.WithContext(ctx).Create(admin).Error
}

func (a *AdminPostgreSQL) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	var admin models.Admin
	if err := a.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *AdminPostgreSQL) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := a.db.WithContext(ctx).First(&admin, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *AdminPostgreSQL) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	if err := a.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
