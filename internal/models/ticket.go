package models

import (
	"gorm.io/gorm"
)

type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED"
	TicketStatusPaid     TicketStatus = "PAID"
)

type TicketType struct {
	gorm.Model
	Name          string `json:"name"`
	Price         int    `json:"price"`
	IsRemote      bool   `json:"is_remote"`
	IncludesHotel bool   `json:"includes_hotel"`
}

type Ticket struct {
	gorm.Model
	EnrollmentID uint         `json:"enrollment_id" gorm:"index"`
	Enrollment   Enrollment   `json:"-" gorm:"foreignKey:EnrollmentID"`
	TicketTypeID uint         `json:"ticket_type_id"`
	TicketType   TicketType   `json:"ticket_type" gorm:"foreignKey:TicketTypeID"`
	Status       TicketStatus `json:"status" gorm:"type:varchar(16);default:RESERVED"`
}
