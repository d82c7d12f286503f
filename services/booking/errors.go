package booking

import (
	"errors"
	"fmt"
)

// Error kinds. Test with errors.Is.
var (
	ErrInvalidWindow           = errors.New("invalid time window")
	ErrCollaboratorUnavailable = errors.New("calendar unavailable")
	ErrBookingConflict         = errors.New("booking conflict")
	ErrDoctorNotFound          = errors.New("doctor not found")
)

// BookingError carries one of the error kinds plus the underlying cause.
type BookingError struct {
	Code    string
	Message string
	Kind    error
	Cause   error
}

func (e *BookingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func NewInvalidWindowError(msg string) error {
	return &BookingError{Code: "invalidWindow", Message: msg, Kind: ErrInvalidWindow}
}

// NewUnavailableError covers transport failures and timeouts alike.
func NewUnavailableError(msg string, cause error) error {
	return &BookingError{Code: "collaboratorUnavailable", Message: msg, Kind: ErrCollaboratorUnavailable, Cause: cause}
}

func NewConflictError(msg string, cause error) error {
	return &BookingError{Code: "bookingConflict", Message: msg, Kind: ErrBookingConflict, Cause: cause}
}

func NewDoctorNotFoundError(msg string, cause error) error {
	return &BookingError{Code: "doctorNotFound", Message: msg, Kind: ErrDoctorNotFound, Cause: cause}
}
