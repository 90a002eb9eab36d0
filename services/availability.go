package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"pms-backend/models"
)

// DateLayout is the wire format for check-in/check-out/date parameters.
const DateLayout = "2006-01-02"

// OverlapPolicy decides how stay boundaries are compared when checking
// whether two date ranges conflict on the same room.
type OverlapPolicy string

const (
	// OverlapInclusive treats a stay checking out on another stay's check-in
	// day as conflicting: existing.check_in <= requested.check_out AND
	// existing.check_out >= requested.check_in.
	OverlapInclusive OverlapPolicy = "inclusive"

	// OverlapExclusive allows back-to-back stays that share a boundary day.
	OverlapExclusive OverlapPolicy = "exclusive"
)

// ParseOverlapPolicy maps the OVERLAP_POLICY env value to a policy,
// defaulting to inclusive.
func ParseOverlapPolicy(raw string) OverlapPolicy {
	if strings.EqualFold(strings.TrimSpace(raw), string(OverlapExclusive)) {
		return OverlapExclusive
	}
	return OverlapInclusive
}

// StayRange is a parsed check-in/check-out pair.
type StayRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// ParseStayRange parses checkin/checkout strings in DateLayout.
func ParseStayRange(checkin, checkout string) (StayRange, error) {
	ci, err := time.Parse(DateLayout, checkin)
	if err != nil {
		return StayRange{}, fmt.Errorf("invalid checkin format: %w", err)
	}
	co, err := time.Parse(DateLayout, checkout)
	if err != nil {
		return StayRange{}, fmt.Errorf("invalid checkout format: %w", err)
	}
	return StayRange{CheckIn: ci, CheckOut: co}, nil
}

// Nights is the integer day difference checkout - checkin, the billing unit.
func (r StayRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Valid reports a positive-length stay.
func (r StayRange) Valid() bool {
	return r.CheckOut.After(r.CheckIn)
}

// Conflicts reports whether an existing stay collides with the requested one
// under the policy.
func (p OverlapPolicy) Conflicts(existing, requested StayRange) bool {
	if p == OverlapExclusive {
		return existing.CheckIn.Before(requested.CheckOut) && existing.CheckOut.After(requested.CheckIn)
	}
	return !existing.CheckIn.After(requested.CheckOut) && !existing.CheckOut.Before(requested.CheckIn)
}

// sqlOperators returns the comparison operators the policy uses against the
// requested check-out and check-in respectively.
func (p OverlapPolicy) sqlOperators() (string, string) {
	if p == OverlapExclusive {
		return "<", ">"
	}
	return "<=", ">="
}

// conflictingRoomIDs builds the subquery selecting room ids that have an
// active booking overlapping the requested range.
func conflictingRoomIDs(db *gorm.DB, p OverlapPolicy, r StayRange) *gorm.DB {
	ciOp, coOp := p.sqlOperators()
	return db.Model(&models.Booking{}).
		Select("room_id").
		Where("state = ?", models.BookingStateNew).
		Where(fmt.Sprintf("check_in %s ? AND check_out %s ?", ciOp, coOp),
			r.CheckOut.Format(DateLayout), r.CheckIn.Format(DateLayout))
}

// StayTotal is the amount invoiced for a stay: nights times the nightly price.
func StayTotal(nights int, price float64) float64 {
	return float64(nights) * price
}

// DayRange returns the inclusive start and exclusive end of the calendar day
// containing t, in t's location.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
