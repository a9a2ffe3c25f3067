package models

import (
	"gorm.io/gorm"
)

// User is created on first Discord login. Its enrollment, if any, is
// filled in by the registration flow.
type User struct {
	gorm.Model
	DiscordID  string `gorm:"uniqueIndex"`
	Username   string
	Email      string
	Avatar     string
	Enrollment *Enrollment `gorm:"foreignKey:UserID"`
}
