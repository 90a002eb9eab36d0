package services

import (
	"errors"
	"fmt"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pms-backend/models"
	"pms-backend/utils"
)

const codeRetries = 5

// mysqlDuplicateEntry is the MySQL error number for unique key violations.
const mysqlDuplicateEntry = 1062

// BookingService owns the booking lifecycle: listing, search, creation,
// customer edit and cancellation.
type BookingService struct {
	DB     *gorm.DB
	Policy OverlapPolicy
}

func NewBookingService(db *gorm.DB, policy OverlapPolicy) *BookingService {
	return &BookingService{DB: db, Policy: policy}
}

// List returns every booking, cancelled ones included, newest first.
func (s *BookingService) List() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Preload("Customer").
		Preload("Room.RoomType").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// escapeLike escapes LIKE metacharacters so filter text matches literally
// instead of acting as wildcards.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

// Search returns bookings whose code or customer name contains filter,
// case-insensitive, newest first.
func (s *BookingService) Search(filter string) ([]models.Booking, error) {
	q := "%" + escapeLike(strings.ToLower(strings.TrimSpace(filter))) + "%"

	var bookings []models.Booking
	err := s.DB.
		Preload("Customer").
		Preload("Room.RoomType").
		Joins("JOIN customers ON customers.id = bookings.customer_id").
		Where("LOWER(bookings.code) LIKE ? OR LOWER(customers.full_name) LIKE ?", q, q).
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}
	return bookings, nil
}

// Get loads one booking with its customer and room.
func (s *BookingService) Get(id uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.
		Preload("Customer").
		Preload("Room.RoomType").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to load booking %d: %w", id, err)
	}
	return booking, nil
}

// Create validates the form, then inserts the customer and the booking in one
// transaction. The room row is locked for the duration so the availability
// check and the insert are atomic: two concurrent requests for overlapping
// dates on the same room cannot both pass the check.
//
// A non-nil FieldErrors means the form failed validation and nothing was
// persisted.
func (s *BookingService) Create(roomID uint, in BookingRequest) (*models.Booking, FieldErrors, error) {
	stay, fields := ValidateBookingRequest(in)
	if fields.Any() {
		return nil, fields, nil
	}

	var created *models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to lock room %d: %w", roomID, err)
		}

		var roomType models.RoomType
		if err := tx.First(&roomType, room.RoomTypeID).Error; err != nil {
			return fmt.Errorf("failed to load room type %d: %w", room.RoomTypeID, err)
		}

		var conflicts int64
		if err := conflictingRoomIDs(tx, s.Policy, stay).
			Where("room_id = ?", room.ID).
			Count(&conflicts).Error; err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}
		if conflicts > 0 {
			return ErrRoomUnavailable
		}

		customer := models.Customer{
			FullName: in.Customer.FullName,
			Email:    in.Customer.Email,
			Phone:    in.Customer.Phone,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}

		nights := stay.Nights()
		booking := models.Booking{
			State:      models.BookingStateNew,
			RoomID:     room.ID,
			CustomerID: customer.ID,
			CheckIn:    datatypes.Date(stay.CheckIn),
			CheckOut:   datatypes.Date(stay.CheckOut),
			Nights:     nights,
			Total:      StayTotal(nights, roomType.Price),
		}

		// retry on reference code collisions, uniqueness is enforced by the index
		for attempt := 0; attempt < codeRetries; attempt++ {
			booking.Code = utils.NewBookingCode()
			err := tx.Create(&booking).Error
			if err == nil {
				created = &booking
				return nil
			}
			var myErr *mysql.MySQLError
			if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
				booking.ID = 0
				continue
			}
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return fmt.Errorf("booking code collision persisted after %d attempts", codeRetries)
	})
	if err != nil {
		return nil, nil, err
	}
	return created, nil, nil
}

// UpdateCustomer applies the edit form. Only the linked customer's fields
// change; the booking's room, dates and total are immutable after creation.
func (s *BookingService) UpdateCustomer(bookingID uint, in CustomerInput) (FieldErrors, error) {
	if fields := ValidateCustomer(in); fields.Any() {
		return fields, nil
	}

	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}

	err := s.DB.Model(&models.Customer{}).
		Where("id = ?", booking.CustomerID).
		Updates(map[string]interface{}{
			"full_name": in.FullName,
			"email":     in.Email,
			"phone":     in.Phone,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update customer %d: %w", booking.CustomerID, err)
	}
	return nil, nil
}

// Cancel marks the booking deleted. Cancelling an already cancelled booking
// is a no-op.
func (s *BookingService) Cancel(id uint) error {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to load booking %d: %w", id, err)
	}

	err := s.DB.Model(&models.Booking{}).
		Where("id = ?", id).
		Update("state", models.BookingStateDeleted).Error
	if err != nil {
		return fmt.Errorf("failed to cancel booking %d: %w", id, err)
	}
	return nil
}
