package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report errors under the json field names the forms actually use
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CustomerInput carries the customer form fields shared by booking creation
// and booking edit.
type CustomerInput struct {
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=5,max=32"`
}

// BookingRequest is the create-booking form: the stay dates plus the customer
// fields. The room comes from the URL and the total is always computed server
// side.
type BookingRequest struct {
	CheckIn  string        `json:"checkin"`
	CheckOut string        `json:"checkout"`
	Customer CustomerInput `json:"customer"`
}

// FieldErrors maps form field names to problems. A nil/empty map means the
// input validated; handlers render it distinctly from success instead of
// silently redirecting.
type FieldErrors map[string]string

func (fe FieldErrors) Any() bool { return len(fe) > 0 }

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "invalid value"
	}
}

// ValidateCustomer checks the customer form fields.
func ValidateCustomer(in CustomerInput) FieldErrors {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	out := FieldErrors{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fieldMessage(fe)
		}
		return out
	}
	out["form"] = err.Error()
	return out
}

// ValidateBookingRequest checks dates and customer fields together and
// returns the parsed stay on success.
func ValidateBookingRequest(in BookingRequest) (StayRange, FieldErrors) {
	fields := ValidateCustomer(in.Customer)
	if fields == nil {
		fields = FieldErrors{}
	}

	var stay StayRange
	if in.CheckIn == "" {
		fields["checkin"] = "this field is required"
	}
	if in.CheckOut == "" {
		fields["checkout"] = "this field is required"
	}
	if in.CheckIn != "" && in.CheckOut != "" {
		parsed, err := ParseStayRange(in.CheckIn, in.CheckOut)
		if err != nil {
			fields["checkin"] = "dates must be formatted as " + DateLayout
		} else if !parsed.Valid() {
			fields["checkout"] = "check-out must be after check-in"
		} else {
			stay = parsed
		}
	}

	if fields.Any() {
		return StayRange{}, fields
	}
	return stay, nil
}
