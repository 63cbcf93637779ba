package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// CanTransition reports whether an administrator may move a booking from s to next.
// Cancelled and completed are terminal.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return PaymentStatus(s), true
	default:
		return "", false
	}
}

type Booking struct {
	ID               string        `json:"id"`
	TripID           string        `json:"trip_id"`
	BookingDate      time.Time     `json:"booking_date"`
	ConfirmationCode string        `json:"confirmation_code"`
	Status           BookingStatus `json:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	Participants     int           `json:"participants"`
	TotalPrice       float64       `json:"total_price"`
	IncludesZinzino  bool          `json:"includes_zinzino"`
	GuestEmail       string        `json:"guest_email"`
	GuestName        string        `json:"guest_name"`
	GuestPhone       string        `json:"guest_phone,omitempty"`
	SpecialRequests  string        `json:"special_requests,omitempty"`
}

// BookingRequest is the guest-facing booking form.
type BookingRequest struct {
	TripID          string `json:"trip_id" validate:"required"`
	Participants    int    `json:"participants" validate:"required,min=1"`
	GuestEmail      string `json:"guest_email" validate:"required"`
	GuestName       string `json:"guest_name" validate:"required"`
	GuestPhone      string `json:"guest_phone"`
	IncludesZinzino bool   `json:"includes_zinzino"`
	SpecialRequests string `json:"special_requests"`
}

type BookingFilter struct {
	Status *BookingStatus
	TripID string
}

func (f BookingFilter) Matches(b *Booking) bool {
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.TripID != "" && b.TripID != f.TripID {
		return false
	}
	return true
}

// BookingPatch is the administrative status update.
type BookingPatch struct {
	Status        *BookingStatus `json:"status,omitempty"`
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty"`
}

// BookingConfirmation is what a guest sees when looking up their code.
type BookingConfirmation struct {
	Booking     Booking `json:"booking"`
	TripTitle   string  `json:"trip_title"`
	Destination string  `json:"destination"`
	StartDate   Date    `json:"start_date"`
	EndDate     Date    `json:"end_date"`
}
