package postgres

import (
	"context"

	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db        *gorm.DB
	jobRole   repositories.JobRoleRepository
	exam      repositories.ExamRepository
	candidate repositories.CandidateRepository
	admin     repositories.AdminRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:        db,
		jobRole:   NewJobRolePostgreSQL(db),
		exam:      NewExamPostgreSQL(db),
		candidate: NewCandidatePostgreSQL(db),
		admin:     NewAdminPostgreSQL(db),
	}
}

func (r *repository) JobRole() repositories.JobRoleRepository     { return r.jobRole }
func (r *repository) Exam() repositories.ExamRepository           { return r.exam }
func (r *repository) Candidate() repositories.CandidateRepository { return r.candidate }
func (r *repository) Admin() repositories.AdminRepository         { return r.admin }

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
