package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	FullName     string         `json:"full_name" gorm:"not null"`
	Email        string         `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"not null;default:'student'"` // "student", "admin"
	CenterID     *uint          `json:"center_id,omitempty" gorm:"index"`
	Center       *Center        `json:"center,omitempty" gorm:"foreignKey:CenterID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin reports whether the user holds the privileged role used for
// result visibility and test management.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
