package models

import "gorm.io/gorm"

type StakeholderRole string

const (
	StakeholderDeveloper StakeholderRole = "Developer"
	StakeholderClient    StakeholderRole = "Client"
	StakeholderInvestor  StakeholderRole = "Investor"
	StakeholderMarketer  StakeholderRole = "Marketer"
)

// ValidStakeholderRole reports whether role is one of the closed role set.
func ValidStakeholderRole(role StakeholderRole) bool {
	switch role {
	case StakeholderDeveloper, StakeholderClient, StakeholderInvestor, StakeholderMarketer:
		return true
	}
	return false
}

type Stakeholder struct {
	gorm.Model
	Name             string          `gorm:"size:255;not null" json:"name"`
	Email            string          `gorm:"size:255" json:"email"`
	Role             StakeholderRole `gorm:"type:varchar(20);not null" json:"role"`
	Share            int             `gorm:"not null" json:"share"` // percentage points, 0–100
	Responsibilities string          `gorm:"type:text" json:"responsibilities"`
	IsActive         bool            `gorm:"not null;default:true" json:"isActive"`

	ProjectID uint    `gorm:"index;not null" json:"projectId"`
	Project   Project `json:"-"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `json:"-"`
}
