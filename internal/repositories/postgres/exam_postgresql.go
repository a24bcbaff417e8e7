package postgres

import (
	"context"
	"time"

	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type ExamPostgreSQL struct {
	db *gorm.DB
}

func NewExamPostgreSQL(db *gorm.DB) repositories.ExamRepository {
	return &ExamPostgreSQL{db: db}
}

func (e *ExamPostgreSQL) Create(ctx context.Context, exam *models.Exam) error {
	return e.db.WithContext(ctx).Create(exam).Error
}

func (e *ExamPostgreSQL) GetByID(ctx context.Context, id string) (*models.Exam, error) {
	var exam models.Exam
	if err := e.db.WithContext(ctx).First(&exam, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (e *ExamPostgreSQL) Update(ctx context.Context, exam *models.Exam) error {
	return e.db.WithContext(ctx).Save(exam).Error
}

func (e *ExamPostgreSQL) Delete(ctx context.Context, id string) error {
	return e.db.WithContext(ctx).Delete(&models.Exam{}, "id = ?", id).Error
}

func (e *ExamPostgreSQL) List(ctx context.Context) ([]*models.Exam, error) {
	var exams []*models.Exam
	if err := e.db.WithContext(ctx).Order("exam_date_and_time desc").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (e *ExamPostgreSQL) GetByIDs(ctx context.Context, ids []string) ([]*models.Exam, error) {
	var exams []*models.Exam
	if err := e.db.WithContext(ctx).Where("id IN ?", ids).Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (e *ExamPostgreSQL) GetByJobRole(ctx context.Context, jobRoleID string) ([]*models.Exam, error) {
	var exams []*models.Exam
	if err := e.db.WithContext(ctx).
		Where("job_role_id = ?", jobRoleID).
		Order("exam_date_and_time desc").
		Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (e *ExamPostgreSQL) GetScheduledBetween(ctx context.Context, from, to time.Time) ([]*models.Exam, error) {
	var exams []*models.Exam
	if err := e.db.WithContext(ctx).
		Where("exam_date_and_time >= ? AND exam_date_and_time <= ?", from, to).
		Order("exam_date_and_time desc").
		Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (e *ExamPostgreSQL) GetPublished(ctx context.Context) ([]*models.Exam, error) {
	var exams []*models.Exam
	if err := e.db.WithContext(ctx).
		Where("result_published = ?", true).
		Order("exam_date_and_time desc").
		Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (e *ExamPostgreSQL) ExistsByTitleAndJobRole(ctx context.Context, title, jobRoleID string) (bool, error) {
	var count int64
	if err := e.db.WithContext(ctx).
		Model(&models.Exam{}).
		Where("title = ? AND job_role_id = ?", title, jobRoleID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (e *ExamPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := e.db.WithContext(ctx).Model(&models.Exam{}).Count(&count).Error
	return count, err
}
