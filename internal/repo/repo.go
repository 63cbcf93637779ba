// Package repo declares the storage contracts for trips and bookings.
// The memory and postgres subpackages implement them.
package repo

import (
	"context"

	"github.com/diagnosis/sophies-tours/internal/domain"
)

type TripRepo interface {
	Get(ctx context.Context, id string) (domain.Trip, error)
	// List returns matching trips in insertion order.
	List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)
	Create(ctx context.Context, t domain.Trip) (domain.Trip, error)
	// Update runs mutate against the stored record atomically and persists the
	// result unless mutate returns an error.
	Update(ctx context.Context, id string, mutate func(*domain.Trip) error) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
	// ReserveSeats is the atomic check-and-increment used at booking time.
	// It fails with domain.ErrConflict when the trip is not active or lacks n seats,
	// and flips the trip to full when the last seat is taken.
	ReserveSeats(ctx context.Context, id string, n int) (domain.Trip, error)
	ReleaseSeats(ctx context.Context, id string, n int) (domain.Trip, error)
}

type BookingRepo interface {
	// Create fails with domain.ErrDuplicateCode if the confirmation code is taken.
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)
	Get(ctx context.Context, id string) (domain.Booking, error)
	GetByCode(ctx context.Context, code string) (domain.Booking, error)
	// List returns matching bookings in insertion order.
	List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error)
	Update(ctx context.Context, id string, mutate func(*domain.Booking) error) (domain.Booking, error)
}
