package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomType is static reference data: a category of rooms sharing a nightly
// price and a guest capacity.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `json:"name" gorm:"uniqueIndex;size:64"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	MaxGuests   uint    `json:"max_guests" gorm:"column:max_guests"`

	CreatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
