package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pms-backend/models"
)

// RoomSearch is a parsed availability request.
type RoomSearch struct {
	Stay   StayRange
	Guests uint
}

// RoomQuote is a room annotated with the computed price of a stay.
type RoomQuote struct {
	Room   models.Room `json:"room"`
	Nights int         `json:"nights"`
	Total  float64     `json:"total"`
}

// RoomTypeAvailability is the per-type count of free rooms for a stay.
type RoomTypeAvailability struct {
	RoomTypeID uint    `json:"room_type_id"`
	Name       string  `json:"name"`
	MaxGuests  uint    `json:"max_guests"`
	Price      float64 `json:"price"`
	Available  int64   `json:"available"`
}

// RoomService answers availability questions over the room inventory.
type RoomService struct {
	DB     *gorm.DB
	Policy OverlapPolicy
}

func NewRoomService(db *gorm.DB, policy OverlapPolicy) *RoomService {
	return &RoomService{DB: db, Policy: policy}
}

// Available lists rooms whose type fits the requested guest count and that
// have no active booking overlapping the stay, ordered by capacity then name,
// each annotated with the stay total.
func (s *RoomService) Available(q RoomSearch) ([]RoomQuote, error) {
	sub := conflictingRoomIDs(s.DB, s.Policy, q.Stay)

	var rooms []models.Room
	err := s.DB.
		Preload("RoomType").
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Where("room_types.max_guests >= ?", q.Guests).
		Where("rooms.id NOT IN (?)", sub).
		Order("room_types.max_guests, rooms.name").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query available rooms: %w", err)
	}

	nights := q.Stay.Nights()
	out := make([]RoomQuote, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, RoomQuote{
			Room:   room,
			Nights: nights,
			Total:  StayTotal(nights, room.RoomType.Price),
		})
	}
	return out, nil
}

// AvailableByType counts free rooms per room type for the stay, ordered by
// capacity.
func (s *RoomService) AvailableByType(q RoomSearch) ([]RoomTypeAvailability, error) {
	sub := conflictingRoomIDs(s.DB, s.Policy, q.Stay)

	var out []RoomTypeAvailability
	err := s.DB.Model(&models.Room{}).
		Select("room_types.id AS room_type_id, room_types.name AS name, room_types.max_guests AS max_guests, room_types.price AS price, COUNT(rooms.id) AS available").
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Where("room_types.max_guests >= ?", q.Guests).
		Where("rooms.id NOT IN (?)", sub).
		Group("room_types.id, room_types.name, room_types.max_guests, room_types.price").
		Order("room_types.max_guests").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count available rooms by type: %w", err)
	}
	return out, nil
}

// Quote prices a stay in the given room without reserving anything. Used by
// the booking confirmation form.
func (s *RoomService) Quote(roomID uint, stay StayRange) (RoomQuote, error) {
	var room models.Room
	if err := s.DB.Preload("RoomType").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoomQuote{}, ErrRoomNotFound
		}
		return RoomQuote{}, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}

	nights := stay.Nights()
	return RoomQuote{
		Room:   room,
		Nights: nights,
		Total:  StayTotal(nights, room.RoomType.Price),
	}, nil
}
