package services

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pms-backend/models"
)

// DashboardStats are the daily operations numbers. NewBooks counts every
// booking created that day, cancelled ones included; the other three exclude
// cancelled bookings.
type DashboardStats struct {
	Date            string  `json:"date"`
	NewBooks        int64   `json:"new_books"`
	IncomingGuests  int64   `json:"incoming_guests"`
	OutcomingGuests int64   `json:"outcoming_guests"`
	Invoiced        float64 `json:"invoiced"`
}

// DayWindow is the reference day the dashboard aggregates over: the half-open
// [Start, End) timestamp range plus the calendar day for date-column
// comparisons. Its predicate methods are the single definition of which
// bookings each aggregate counts; Stats runs the same rules in SQL.
type DayWindow struct {
	Start time.Time
	End   time.Time
	Day   string
}

// WindowFor builds the window for the calendar day containing today.
func WindowFor(today time.Time) DayWindow {
	start, end := DayRange(today)
	return DayWindow{Start: start, End: end, Day: start.Format(DateLayout)}
}

func (w DayWindow) createdInside(b models.Booking) bool {
	return !b.CreatedAt.Before(w.Start) && b.CreatedAt.Before(w.End)
}

// NewBook reports whether the booking counts toward new_books: created
// inside the day, cancelled ones included.
func (w DayWindow) NewBook(b models.Booking) bool {
	return w.createdInside(b)
}

// Incoming reports whether the booking counts toward incoming_guests:
// checking in on the day and not cancelled.
func (w DayWindow) Incoming(b models.Booking) bool {
	return b.State != models.BookingStateDeleted &&
		time.Time(b.CheckIn).Format(DateLayout) == w.Day
}

// Outcoming reports whether the booking counts toward outcoming_guests:
// checking out on the day and not cancelled.
func (w DayWindow) Outcoming(b models.Booking) bool {
	return b.State != models.BookingStateDeleted &&
		time.Time(b.CheckOut).Format(DateLayout) == w.Day
}

// Invoiced returns the amount the booking contributes to the day's invoiced
// sum: its total when created inside the day and not cancelled, zero
// otherwise.
func (w DayWindow) Invoiced(b models.Booking) float64 {
	if b.State == models.BookingStateDeleted || !w.createdInside(b) {
		return 0
	}
	return b.Total
}

// Tally folds the predicates over a booking list. It is the in-memory
// equivalent of Stats and pins the per-aggregate state rules.
func (w DayWindow) Tally(bookings []models.Booking) DashboardStats {
	stats := DashboardStats{Date: w.Day}
	for _, b := range bookings {
		if w.NewBook(b) {
			stats.NewBooks++
		}
		if w.Incoming(b) {
			stats.IncomingGuests++
		}
		if w.Outcoming(b) {
			stats.OutcomingGuests++
		}
		stats.Invoiced += w.Invoiced(b)
	}
	return stats
}

// DashboardService recomputes the daily aggregates on every request; there is
// no caching or incremental maintenance.
type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// Stats aggregates activity for the given reference date. The date is an
// explicit parameter so reports can be produced for any day and tests don't
// depend on the wall clock.
func (s *DashboardService) Stats(today time.Time) (DashboardStats, error) {
	w := WindowFor(today)

	stats := DashboardStats{Date: w.Day}

	if err := s.DB.Model(&models.Booking{}).
		Where("created_at >= ? AND created_at < ?", w.Start, w.End).
		Count(&stats.NewBooks).Error; err != nil {
		return stats, fmt.Errorf("failed to count new bookings: %w", err)
	}

	if err := s.DB.Model(&models.Booking{}).
		Where("check_in = ?", w.Day).
		Where("state <> ?", models.BookingStateDeleted).
		Count(&stats.IncomingGuests).Error; err != nil {
		return stats, fmt.Errorf("failed to count incoming guests: %w", err)
	}

	if err := s.DB.Model(&models.Booking{}).
		Where("check_out = ?", w.Day).
		Where("state <> ?", models.BookingStateDeleted).
		Count(&stats.OutcomingGuests).Error; err != nil {
		return stats, fmt.Errorf("failed to count outcoming guests: %w", err)
	}

	var invoiced sql.NullFloat64
	if err := s.DB.Model(&models.Booking{}).
		Select("SUM(total)").
		Where("created_at >= ? AND created_at < ?", w.Start, w.End).
		Where("state <> ?", models.BookingStateDeleted).
		Scan(&invoiced).Error; err != nil {
		return stats, fmt.Errorf("failed to sum invoiced amount: %w", err)
	}
	if invoiced.Valid {
		stats.Invoiced = invoiced.Float64
	}

	return stats, nil
}
