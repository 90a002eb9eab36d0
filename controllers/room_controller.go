package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pms-backend/services"
	"pms-backend/utils"
)

// RoomSearcher is the availability surface of the room service.
type RoomSearcher interface {
	Available(q services.RoomSearch) ([]services.RoomQuote, error)
	AvailableByType(q services.RoomSearch) ([]services.RoomTypeAvailability, error)
	Quote(roomID uint, stay services.StayRange) (services.RoomQuote, error)
}

type RoomController struct {
	Rooms RoomSearcher
}

func NewRoomController(svc RoomSearcher) *RoomController {
	return &RoomController{Rooms: svc}
}

type roomSearchPayload struct {
	CheckIn  string `json:"checkin" form:"checkin"`
	CheckOut string `json:"checkout" form:"checkout"`
	Guests   uint   `json:"guests" form:"guests"`
}

func respondInvalidDates(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{
			"code":    "error.invalidDates",
			"message": "dates must be formatted as " + services.DateLayout,
		},
	})
}

func respondEmptyStay(c *gin.Context) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error": gin.H{
			"code":    "error.emptyStay",
			"message": "check-out must be after check-in",
		},
	})
}

// GetSearchForm describes the availability search form.
func (ctrl *RoomController) GetSearchForm(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"fields":      []string{"checkin", "checkout", "guests"},
		"date_format": services.DateLayout,
	})
}

// SearchRooms answers the availability form POST with individually priced
// rooms plus per-type counts. Requests missing any parameter go back to the
// home listing instead of failing.
func (ctrl *RoomController) SearchRooms(c *gin.Context) {
	var p roomSearchPayload
	if err := c.ShouldBind(&p); err != nil || p.CheckIn == "" || p.CheckOut == "" || p.Guests == 0 {
		c.Redirect(http.StatusSeeOther, HomePath)
		return
	}

	stay, err := services.ParseStayRange(p.CheckIn, p.CheckOut)
	if err != nil {
		respondInvalidDates(c)
		return
	}
	if !stay.Valid() {
		respondEmptyStay(c)
		return
	}

	q := services.RoomSearch{Stay: stay, Guests: p.Guests}
	rooms, err := ctrl.Rooms.Available(q)
	if err != nil {
		log.Printf("SearchRooms: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to search rooms")
		return
	}
	byType, err := ctrl.Rooms.AvailableByType(q)
	if err != nil {
		log.Printf("SearchRooms by type: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to search rooms")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"checkin":    p.CheckIn,
		"checkout":   p.CheckOut,
		"guests":     p.Guests,
		"nights":     stay.Nights(),
		"rooms":      rooms,
		"room_types": byType,
	})
}

// GetBookingForm returns the confirmation payload for a room and stay with
// the computed total the create form will carry.
func (ctrl *RoomController) GetBookingForm(c *gin.Context) {
	roomID, ok := parseID(c)
	if !ok {
		return
	}

	stay, err := services.ParseStayRange(c.Query("checkin"), c.Query("checkout"))
	if err != nil {
		respondInvalidDates(c)
		return
	}
	if !stay.Valid() {
		respondEmptyStay(c)
		return
	}

	quote, err := ctrl.Rooms.Quote(roomID, stay)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": gin.H{"code": "error.roomNotFound", "message": "room not found"},
			})
			return
		}
		log.Printf("GetBookingForm room %d: %v", roomID, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to build booking form")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"room":     quote.Room,
		"checkin":  stay.CheckIn.Format(services.DateLayout),
		"checkout": stay.CheckOut.Format(services.DateLayout),
		"nights":   quote.Nights,
		"total":    quote.Total,
	})
}
