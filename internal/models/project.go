package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Value       float64 `gorm:"not null" json:"value"`
	Completion  int     `gorm:"not null;default:0" json:"completion"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `json:"-"`

	Stakeholders []Stakeholder `gorm:"foreignKey:ProjectID" json:"stakeholders,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:ProjectID" json:"-"`
}
