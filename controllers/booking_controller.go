// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pms-backend/models"
	"pms-backend/services"
	"pms-backend/utils"
)

// HomePath is where POST flows and parameterless searches land, the booking
// listing.
const HomePath = "/api/bookings"

// BookingAdmin is the slice of the booking service the controller needs; an
// interface so tests can substitute a stub.
type BookingAdmin interface {
	List() ([]models.Booking, error)
	Search(filter string) ([]models.Booking, error)
	Get(id uint) (models.Booking, error)
	Create(roomID uint, in services.BookingRequest) (*models.Booking, services.FieldErrors, error)
	UpdateCustomer(bookingID uint, in services.CustomerInput) (services.FieldErrors, error)
	Cancel(id uint) error
}

type BookingController struct {
	Bookings BookingAdmin
}

func NewBookingController(svc BookingAdmin) *BookingController {
	return &BookingController{Bookings: svc}
}

// parseID reads the :id path param. On failure it has already written the
// response.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidId",
				"message": "id must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(id), true
}

func respondBookingNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": gin.H{
			"code":    "error.bookingNotFound",
			"message": "booking not found",
		},
	})
}

func respondValidationFailed(c *gin.Context, fields services.FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error": gin.H{
			"code":    "error.validation",
			"message": "form has invalid fields",
		},
		"fields": fields,
	})
}

// GetBookings renders the home listing: every booking, newest first.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.Bookings.List()
	if err != nil {
		log.Printf("GetBookings: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// SearchBookings filters the listing by booking code or customer name.
// Requests without a filter parameter go back to the home listing.
func (ctrl *BookingController) SearchBookings(c *gin.Context) {
	filter, ok := c.GetQuery("filter")
	if !ok {
		c.Redirect(http.StatusFound, HomePath)
		return
	}

	bookings, err := ctrl.Bookings.Search(filter)
	if err != nil {
		log.Printf("SearchBookings %q: %v", filter, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to search bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"filter":   filter,
		"bookings": bookings,
	})
}

// CreateBooking handles the booking form POST for a room. Validation failures
// come back as 422 with per-field messages instead of a silent redirect.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	roomID, ok := parseID(c)
	if !ok {
		return
	}

	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidPayload",
				"message": "malformed booking payload",
				"details": err.Error(),
			},
		})
		return
	}

	booking, fields, err := ctrl.Bookings.Create(roomID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": gin.H{"code": "error.roomNotFound", "message": "room not found"},
			})
		case errors.Is(err, services.ErrRoomUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": gin.H{
					"code":    "error.roomUnavailable",
					"message": "room is no longer available for those dates",
				},
			})
		default:
			log.Printf("CreateBooking room %d: %v", roomID, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		}
		return
	}
	if fields.Any() {
		respondValidationFailed(c, fields)
		return
	}

	c.Header("Location", HomePath)
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GetDeleteConfirmation returns the booking so the client can render the
// cancellation confirmation.
func (ctrl *BookingController) GetDeleteConfirmation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := ctrl.Bookings.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			respondBookingNotFound(c)
			return
		}
		log.Printf("GetDeleteConfirmation %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// DeleteBooking soft-deletes: the booking keeps its row with state DEL.
// Repeating the call changes nothing.
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.Bookings.Cancel(id); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			respondBookingNotFound(c)
			return
		}
		log.Printf("DeleteBooking %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking")
		return
	}
	c.Redirect(http.StatusSeeOther, HomePath)
}

// GetEditForm returns the booking with its customer so the client can
// pre-fill both forms. Only the customer part is editable.
func (ctrl *BookingController) GetEditForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := ctrl.Bookings.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			respondBookingNotFound(c)
			return
		}
		log.Printf("GetEditForm %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"booking": booking,
		"customer": services.CustomerInput{
			FullName: booking.Customer.FullName,
			Email:    booking.Customer.Email,
			Phone:    booking.Customer.Phone,
		},
	})
}

// EditBooking persists customer changes for a booking. Validation failures
// come back as 422 rather than an empty response.
func (ctrl *BookingController) EditBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in services.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidPayload",
				"message": "malformed customer payload",
				"details": err.Error(),
			},
		})
		return
	}

	fields, err := ctrl.Bookings.UpdateCustomer(id, in)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			respondBookingNotFound(c)
			return
		}
		log.Printf("EditBooking %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to update customer")
		return
	}
	if fields.Any() {
		respondValidationFailed(c, fields)
		return
	}
	c.Redirect(http.StatusSeeOther, HomePath)
}
