package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobRole struct {
	ID          string `json:"id" gorm:"primaryKey;size:36"`
	Title       string `json:"title" gorm:"uniqueIndex;not null;size:200" validate:"required,min=1,max=200"`
	Description string `json:"description" gorm:"type:text" validate:"required,max=1000"`

	// References kept as id sets; the referenced aggregates own their own rows.
	ExamIDs      datatypes.JSONSlice[string] `json:"exam_ids" gorm:"type:jsonb"`
	CandidateIDs datatypes.JSONSlice[string] `json:"candidate_ids" gorm:"type:jsonb"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (JobRole) TableName() string {
	return "job_roles"
}
