package models

import (
	"time"

	"gorm.io/gorm"
)

type Admin struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	AdminName string `json:"admin_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email     string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Username  string `json:"username" gorm:"uniqueIndex;not null;size:100" validate:"required,min=3,max=100"`
	Password  string `json:"-" gorm:"not null;size:255"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Admin) TableName() string {
	return "admins"
}
