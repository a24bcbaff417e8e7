package postgres

import (
	"context"

	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type CandidatePostgreSQL struct {
	db *gorm.DB
}

func NewCandidatePostgreSQL(db *gorm.DB) repositories.CandidateRepository {
	return &CandidatePostgreSQL{db: db}
}

func (c *CandidatePostgreSQL) Create(ctx context.Context, candidate *models.Candidate) error {
	return c.db.WithContext(ctx).Create(candidate).Error
}

func (c *CandidatePostgreSQL) CreateBatch(ctx context.Context, candidates []*models.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	return c.db.WithContext(ctx).Create(candidates).Error
}

func (c *CandidatePostgreSQL) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.db.WithContext(ctx).First(&candidate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (c *CandidatePostgreSQL) GetByUsername(ctx context.Context, username string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.db.WithContext(ctx).First(&candidate, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

// Update saves the whole candidate row, scoring documents included.
func (c *CandidatePostgreSQL) Update(ctx context.Context, candidate *models.Candidate) error {
	return c.db.WithContext(ctx).Save(candidate).Error
}

func (c *CandidatePostgreSQL) List(ctx context.Context, filters repositories.CandidateFilters) ([]*models.Candidate, int64, error) {
	var candidates []*models.Candidate
	var total int64

	query := c.db.WithContext(ctx).Model(&models.Candidate{})
	if filters.Search != "" {
		query = query.Where("full_name ILIKE ?", "%"+filters.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("created_at desc").Find(&candidates).Error; err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}

func (c *CandidatePostgreSQL) ListAll(ctx context.Context) ([]*models.Candidate, error) {
	var candidates []*models.Candidate
	if err := c.db.WithContext(ctx).Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (c *CandidatePostgreSQL) GetByEmails(ctx context.Context, emails []string) ([]*models.Candidate, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	var candidates []*models.Candidate
	if err := c.db.WithContext(ctx).Where("email IN ?", emails).Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (c *CandidatePostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&models.Candidate{}).Count(&count).Error
	return count, err
}
