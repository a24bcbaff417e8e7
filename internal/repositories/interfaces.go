package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository aggregates all per-entity repositories behind one handle.
type Repository interface {
	JobRole() JobRoleRepository
	Exam() ExamRepository
	Candidate() CandidateRepository
	Admin() AdminRepository

	Ping(ctx context.Context) error
	Close() error
}

// ===== SHARED FILTER STRUCTS =====

type CandidateFilters struct {
	Search string `json:"search"` // case-insensitive match on full name
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// IsNotFoundError checks if error represents a missing record.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
