package models

import (
	"gorm.io/gorm"
)

// Customer is created by the booking form and referenced by bookings. Records
// are never deleted, only edited through the booking edit flow.
type Customer struct {
	gorm.Model

	FullName string `json:"full_name" gorm:"column:full_name;size:255"`
	Email    string `json:"email" gorm:"size:255"`
	Phone    string `json:"phone" gorm:"size:32"`
}
