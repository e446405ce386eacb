package models

import (
	"time"

	"gorm.io/gorm"
)

type TransactionType string

// The only transaction kind today. Income is carried on Project.Value,
// not as transaction rows.
const TypeExpense TransactionType = "expense"

type Transaction struct {
	gorm.Model
	Amount      float64         `gorm:"not null" json:"amount"`
	Date        time.Time       `json:"date"`
	Category    string          `gorm:"size:100" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Type        TransactionType `gorm:"type:varchar(20);not null" json:"type"`

	ProjectID uint    `gorm:"index;not null" json:"projectId"`
	Project   Project `json:"-"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `json:"-"`
}
