package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewBookingCode returns a short searchable reference like BK-9F2C41AB.
// Uniqueness is enforced by the database index; callers retry on collision.
func NewBookingCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK-" + strings.ToUpper(raw[:8])
}
