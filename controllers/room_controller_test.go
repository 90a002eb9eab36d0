package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"pms-backend/controllers"
	"pms-backend/models"
	"pms-backend/routes"
	"pms-backend/services"
)

type mockRooms struct {
	lastSearch *services.RoomSearch
	quotes     map[uint]services.RoomQuote
}

func newMockRooms() *mockRooms {
	return &mockRooms{quotes: map[uint]services.RoomQuote{}}
}

func (m *mockRooms) Available(q services.RoomSearch) ([]services.RoomQuote, error) {
	m.lastSearch = &q
	nights := q.Stay.Nights()
	return []services.RoomQuote{
		{
			Room:   models.Room{Name: "101", RoomType: models.RoomType{Name: "Standard", Price: 100, MaxGuests: 2}},
			Nights: nights,
			Total:  services.StayTotal(nights, 100),
		},
	}, nil
}

func (m *mockRooms) AvailableByType(q services.RoomSearch) ([]services.RoomTypeAvailability, error) {
	return []services.RoomTypeAvailability{
		{RoomTypeID: 1, Name: "Standard", MaxGuests: 2, Price: 100, Available: 1},
	}, nil
}

func (m *mockRooms) Quote(roomID uint, stay services.StayRange) (services.RoomQuote, error) {
	quote, ok := m.quotes[roomID]
	if !ok {
		return services.RoomQuote{}, services.ErrRoomNotFound
	}
	quote.Nights = stay.Nights()
	quote.Total = services.StayTotal(quote.Nights, quote.Room.RoomType.Price)
	return quote, nil
}

type stubBookings struct{}

func (stubBookings) List() ([]models.Booking, error)              { return nil, nil }
func (stubBookings) Search(string) ([]models.Booking, error)      { return nil, nil }
func (stubBookings) Get(uint) (models.Booking, error)             { return models.Booking{}, nil }
func (stubBookings) Cancel(uint) error                            { return nil }
func (stubBookings) Create(uint, services.BookingRequest) (*models.Booking, services.FieldErrors, error) {
	return nil, nil, nil
}
func (stubBookings) UpdateCustomer(uint, services.CustomerInput) (services.FieldErrors, error) {
	return nil, nil
}

type recordingDashboard struct {
	received *time.Time
	stats    services.DashboardStats
}

func (d *recordingDashboard) Stats(today time.Time) (services.DashboardStats, error) {
	d.received = &today
	return d.stats, nil
}

func newRoomTestRouter(rooms *mockRooms, dash *recordingDashboard) *gin.Engine {
	if dash == nil {
		dash = &recordingDashboard{}
	}
	return routes.SetupRouter(
		controllers.NewBookingController(stubBookings{}),
		controllers.NewRoomController(rooms),
		controllers.NewDashboardController(dash),
	)
}

func TestGetSearchForm(t *testing.T) {
	router := newRoomTestRouter(newMockRooms(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms/search", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Data struct {
			Fields     []string `json:"fields"`
			DateFormat string   `json:"date_format"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Data.DateFormat != services.DateLayout {
		t.Errorf("date_format = %q, want %q", resp.Data.DateFormat, services.DateLayout)
	}
}

func TestSearchRoomsMissingParamsRedirectsHome(t *testing.T) {
	router := newRoomTestRouter(newMockRooms(), nil)

	body, _ := json.Marshal(map[string]any{"checkin": "2024-01-12"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/rooms/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != controllers.HomePath {
		t.Errorf("Location = %q, want %q", loc, controllers.HomePath)
	}
}

func TestSearchRoomsReturnsRoomsAndTypeCounts(t *testing.T) {
	rooms := newMockRooms()
	router := newRoomTestRouter(rooms, nil)

	body, _ := json.Marshal(map[string]any{
		"checkin":  "2024-01-12",
		"checkout": "2024-01-14",
		"guests":   2,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/rooms/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Nights    int                               `json:"nights"`
			Rooms     []services.RoomQuote              `json:"rooms"`
			RoomTypes []services.RoomTypeAvailability   `json:"room_types"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Data.Nights != 2 {
		t.Errorf("nights = %d, want 2", resp.Data.Nights)
	}
	if len(resp.Data.Rooms) != 1 || resp.Data.Rooms[0].Total != 200 {
		t.Errorf("rooms = %+v, want one room at total 200", resp.Data.Rooms)
	}
	if len(resp.Data.RoomTypes) != 1 || resp.Data.RoomTypes[0].Available != 1 {
		t.Errorf("room_types = %+v, want one type with 1 available", resp.Data.RoomTypes)
	}
	if rooms.lastSearch == nil || rooms.lastSearch.Guests != 2 {
		t.Errorf("service did not receive the search: %+v", rooms.lastSearch)
	}
}

func TestSearchRoomsRejectsEmptyStay(t *testing.T) {
	router := newRoomTestRouter(newMockRooms(), nil)

	body, _ := json.Marshal(map[string]any{
		"checkin":  "2024-01-14",
		"checkout": "2024-01-12",
		"guests":   2,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/rooms/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestGetBookingFormComputesTotal(t *testing.T) {
	rooms := newMockRooms()
	rooms.quotes[1] = services.RoomQuote{
		Room: models.Room{Name: "101", RoomType: models.RoomType{Name: "Standard", Price: 100, MaxGuests: 2}},
	}
	router := newRoomTestRouter(rooms, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms/1/book?checkin=2024-01-10&checkout=2024-01-13", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Nights int     `json:"nights"`
			Total  float64 `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	// 3 nights at 100
	if resp.Data.Nights != 3 || resp.Data.Total != 300 {
		t.Errorf("nights=%d total=%v, want 3/300", resp.Data.Nights, resp.Data.Total)
	}
}

func TestGetBookingFormUnknownRoom(t *testing.T) {
	router := newRoomTestRouter(newMockRooms(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms/42/book?checkin=2024-01-10&checkout=2024-01-13", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetBookingFormBadDates(t *testing.T) {
	router := newRoomTestRouter(newMockRooms(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms/1/book?checkin=bogus&checkout=2024-01-13", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
