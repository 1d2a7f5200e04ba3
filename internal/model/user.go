package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Username  string         `json:"username" gorm:"not null;uniqueIndex"` // used as the login identifier
	Password  string         `json:"-" gorm:"not null"`                    // bcrypt hash, never serialized
	Name      string         `json:"name" gorm:"not null"`
	StudentID *string        `json:"studentId,omitempty"`
	Mobile    *string        `json:"mobile,omitempty"`
	Role      string         `json:"role" gorm:"not null;default:'user'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
