package postgres

import (
	"context"

	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type JobRolePostgreSQL struct {
	db *gorm.DB
}

func NewJobRolePostgreSQL(db *gorm.DB) repositories.JobRoleRepository {
	return &JobRolePostgreSQL{db: db}
}

func (j *JobRolePostgreSQL) Create(ctx context.Context, jobRole *models.JobRole) error {
	return j.db.WithContext(ctx).Create(jobRole).Error
}

func (j *JobRolePostgreSQL) GetByID(ctx context.Context, id string) (*models.JobRole, error) {
	var jobRole models.JobRole
	if err := j.db.WithContext(ctx).First(&jobRole, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &jobRole, nil
}

func (j *JobRolePostgreSQL) Update(ctx context.Context, jobRole *models.JobRole) error {
	return j.db.WithContext(ctx).Save(jobRole).Error
}

func (j *JobRolePostgreSQL) List(ctx context.Context) ([]*models.JobRole, error) {
	var jobRoles []*models.JobRole
	if err := j.db.WithContext(ctx).Order("created_at desc").Find(&jobRoles).Error; err != nil {
		return nil, err
	}
	return jobRoles, nil
}

func (j *JobRolePostgreSQL) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := j.db.WithContext(ctx).
		Model(&models.JobRole{}).
		Where("title = ?", title).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
