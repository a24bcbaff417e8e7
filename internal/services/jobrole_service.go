package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// JobRoleService manages the job roles candidates are hired against.
type JobRoleService interface {
	CreateJobRole(ctx context.Context, req CreateJobRoleRequest) (*models.JobRole, error)
	GetJobRole(ctx context.Context, id string) (*models.JobRole, error)
	ListJobRoles(ctx context.Context) ([]*models.JobRole, error)
	UpdateJobRole(ctx context.Context, id string, req UpdateJobRoleRequest) (*models.JobRole, error)
}

type CreateJobRoleRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type UpdateJobRoleRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type jobRoleService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
}

func NewJobRoleService(repo repositories.Repository, logger utils.Logger, validator *utils.Validator) JobRoleService {
	return &jobRoleService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *jobRoleService) CreateJobRole(ctx context.Context, req CreateJobRoleRequest) (*models.JobRole, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.JobRole().ExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to check job role title: %w", err)
	}
	if exists {
		return nil, ErrJobRoleAlreadyExists
	}

	jobRole := &models.JobRole{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
	}

	if err := s.repo.JobRole().Create(ctx, jobRole); err != nil {
		return nil, fmt.Errorf("failed to create job role: %w", err)
	}

	s.logger.Info("Job role created", "job_role_id", jobRole.ID, "title", jobRole.Title)
	return jobRole, nil
}

func (s *jobRoleService) GetJobRole(ctx context.Context, id string) (*models.JobRole, error) {
	jobRole, err := s.repo.JobRole().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrJobRoleNotFound
		}
		return nil, fmt.Errorf("failed to get job role: %w", err)
	}
	return jobRole, nil
}

func (s *jobRoleService) ListJobRoles(ctx context.Context) ([]*models.JobRole, error) {
	jobRoles, err := s.repo.JobRole().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list job roles: %w", err)
	}
	return jobRoles, nil
}

func (s *jobRoleService) UpdateJobRole(ctx context.Context, id string, req UpdateJobRoleRequest) (*models.JobRole, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	jobRole, err := s.repo.JobRole().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrJobRoleNotFound
		}
		return nil, fmt.Errorf("failed to get job role: %w", err)
	}

	if req.Title != jobRole.Title {
		exists, err := s.repo.JobRole().ExistsByTitle(ctx, req.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to check job role title: %w", err)
		}
		if exists {
			return nil, ErrJobRoleAlreadyExists
		}
	}

	jobRole.Title = req.Title
	jobRole.Description = req.Description

	if err := s.repo.JobRole().Update(ctx, jobRole); err != nil {
		return nil, fmt.Errorf("failed to update job role: %w", err)
	}
	return jobRole, nil
}
