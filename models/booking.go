package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking lifecycle states. The only transition is NEW -> DEL.
const (
	BookingStateNew     = "NEW"
	BookingStateDeleted = "DEL"
)

// Booking reserves one Room for one Customer over a date range.
//
// It deliberately does not use gorm.DeletedAt: cancellation is an explicit
// state column so cancelled bookings stay visible in listings and search
// while being excluded from availability and guest-movement aggregates.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	Code       string         `json:"code" gorm:"uniqueIndex;size:16"`
	State      string         `json:"state" gorm:"size:8;default:NEW;index"`
	RoomID     uint           `json:"room_id" gorm:"column:room_id;index"`
	CustomerID uint           `json:"customer_id" gorm:"column:customer_id;index"`
	CheckIn    datatypes.Date `json:"check_in" gorm:"column:check_in"`
	CheckOut   datatypes.Date `json:"check_out" gorm:"column:check_out"`
	Nights     int            `json:"nights"`
	Total      float64        `json:"total"`

	Room     Room     `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Customer Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
}
