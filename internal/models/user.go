package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type User struct {
	gorm.Model
	Name         string   `gorm:"size:100;not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`

	// non-admin accounts stay locked out until an admin approves them
	IsApproved bool `gorm:"not null;default:false" json:"isApproved"`
}
