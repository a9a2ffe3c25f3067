package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment is the registration record a user fills in before buying a
// ticket. A user has at most one.
type Enrollment struct {
	gorm.Model
	UserID   uint      `json:"user_id" gorm:"uniqueIndex"`
	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Name     string    `json:"name"`
	CPF      string    `json:"cpf" gorm:"uniqueIndex"`
	Phone    string    `json:"phone"`
	Birthday time.Time `json:"birthday"`
}
