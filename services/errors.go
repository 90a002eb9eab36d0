package services

import "errors"

// Sentinel errors controllers map to response codes.
var (
	ErrRoomNotFound    = errors.New("room_not_found")
	ErrBookingNotFound = errors.New("booking_not_found")
	ErrRoomUnavailable = errors.New("room_unavailable")
)
