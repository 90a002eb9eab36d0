package models

import (
	"gorm.io/gorm"
)

// Room is static reference data; every room belongs to exactly one RoomType.
type Room struct {
	gorm.Model

	Name       string `json:"name" gorm:"uniqueIndex;type:varchar(50)"`
	RoomTypeID uint   `json:"room_type_id" gorm:"column:room_type_id;index"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}
