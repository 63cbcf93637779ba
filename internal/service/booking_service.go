package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diagnosis/sophies-tours/internal/domain"
	"github.com/diagnosis/sophies-tours/internal/repo"
	"github.com/diagnosis/sophies-tours/internal/utils"
	"github.com/diagnosis/sophies-tours/pkg/events"
	"github.com/diagnosis/sophies-tours/pkg/logger"
	"github.com/diagnosis/sophies-tours/pkg/metrics"
)

const maxCodeAttempts = 5

// Notifier receives admitted bookings. It must not block the caller.
type Notifier interface {
	Dispatch(ctx context.Context, b domain.Booking, tripTitle string)
}

type BookingService interface {
	Submit(ctx context.Context, req domain.BookingRequest) (domain.Booking, error)
	List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error)
	GetConfirmation(ctx context.Context, code string) (domain.BookingConfirmation, error)
	UpdateStatus(ctx context.Context, id string, patch domain.BookingPatch) (domain.Booking, error)
}

type bookingService struct {
	trips    repo.TripRepo
	bookings repo.BookingRepo
	notifier Notifier
	eventBus events.Publisher
	newCode  CodeGenerator
	now      func() time.Time
}

func NewBookingService(
	trips repo.TripRepo,
	bookings repo.BookingRepo,
	notifier Notifier,
	eventBus events.Publisher,
	newCode CodeGenerator,
) BookingService {
	if newCode == nil {
		newCode = NewConfirmationCode
	}
	return &bookingService{
		trips:    trips,
		bookings: bookings,
		notifier: notifier,
		eventBus: eventBus,
		newCode:  newCode,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit admits a booking: the stored record is pending/pending and the
// trip's seats are already taken when it returns.
func (s *bookingService) Submit(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	b, err := s.submit(ctx, req)
	if err != nil {
		metrics.BookingsSubmitted.WithLabelValues(outcome(err)).Inc()
		return domain.Booking{}, err
	}
	metrics.BookingsSubmitted.WithLabelValues("admitted").Inc()
	metrics.SeatsReserved.Add(float64(b.Participants))
	return b, nil
}

func (s *bookingService) submit(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	req.TripID = strings.TrimSpace(req.TripID)
	req.GuestName = utils.NormalizeString(req.GuestName)
	req.GuestEmail = utils.NormalizeEmail(req.GuestEmail)
	req.GuestPhone = utils.NormalizeString(req.GuestPhone)
	req.SpecialRequests = utils.NormalizeString(req.SpecialRequests)

	if err := validateStruct(req); err != nil {
		return domain.Booking{}, err
	}
	if !utils.IsValidEmail(req.GuestEmail) {
		return domain.Booking{}, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}

	trip, err := s.trips.Get(ctx, req.TripID)
	if err != nil {
		if isNotFound(err) {
			return domain.Booking{}, fmt.Errorf("%w: trip not found", domain.ErrValidation)
		}
		return domain.Booking{}, fmt.Errorf("load trip: %w", err)
	}
	if req.IncludesZinzino && !trip.IncludesZinzino {
		return domain.Booking{}, fmt.Errorf("%w: trip does not offer the Zinzino program", domain.ErrValidation)
	}

	reserved, err := s.trips.ReserveSeats(ctx, trip.ID, req.Participants)
	if err != nil {
		if isNotFound(err) {
			return domain.Booking{}, fmt.Errorf("%w: trip not found", domain.ErrValidation)
		}
		return domain.Booking{}, err
	}

	total, err := ComputeTotal(reserved, req.Participants, req.IncludesZinzino)
	if err != nil {
		s.release(ctx, trip.ID, req.Participants)
		return domain.Booking{}, err
	}

	draft := domain.Booking{
		TripID:          trip.ID,
		BookingDate:     s.now(),
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentPending,
		Participants:    req.Participants,
		TotalPrice:      total,
		IncludesZinzino: req.IncludesZinzino,
		GuestEmail:      req.GuestEmail,
		GuestName:       req.GuestName,
		GuestPhone:      req.GuestPhone,
		SpecialRequests: req.SpecialRequests,
	}

	stored, err := s.store(ctx, draft)
	if err != nil {
		s.release(ctx, trip.ID, req.Participants)
		return domain.Booking{}, err
	}

	logger.InfoContext(ctx, "Booking admitted",
		"booking_id", stored.ID,
		"trip_id", stored.TripID,
		"confirmation_code", stored.ConfirmationCode,
		"participants", stored.Participants,
		"total_price", stored.TotalPrice,
	)

	ev := events.BookingCreatedEvent{
		BookingID:        stored.ID,
		TripID:           stored.TripID,
		ConfirmationCode: stored.ConfirmationCode,
		Participants:     stored.Participants,
		TotalPrice:       stored.TotalPrice,
		IncludesZinzino:  stored.IncludesZinzino,
		CreatedAt:        stored.BookingDate,
	}
	if err := s.eventBus.Publish(ctx, events.BookingCreated, ev); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", stored.ID)
	}

	if s.notifier != nil {
		s.notifier.Dispatch(ctx, stored, trip.Title)
	}
	return stored, nil
}

// store mints a code and retries on collision.
func (s *bookingService) store(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return domain.Booking{}, fmt.Errorf("generate confirmation code: %w", err)
		}
		b.ConfirmationCode = code

		stored, err := s.bookings.Create(ctx, b)
		if err == nil {
			return stored, nil
		}
		if !errors.Is(err, domain.ErrDuplicateCode) {
			return domain.Booking{}, fmt.Errorf("store booking: %w", err)
		}
		metrics.CodeCollisions.Inc()
		logger.WarnContext(ctx, "Confirmation code collision", "attempt", attempt)
	}
	return domain.Booking{}, fmt.Errorf("no unique confirmation code after %d attempts", maxCodeAttempts)
}

func (s *bookingService) release(ctx context.Context, tripID string, n int) {
	if _, err := s.trips.ReleaseSeats(ctx, tripID, n); err != nil {
		logger.ErrorContext(ctx, "Failed to release seats", "error", err, "trip_id", tripID, "participants", n)
	}
}

func (s *bookingService) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	return s.bookings.List(ctx, f)
}

func (s *bookingService) GetConfirmation(ctx context.Context, code string) (domain.BookingConfirmation, error) {
	code = utils.NormalizeCode(code)
	if code == "" {
		return domain.BookingConfirmation{}, fmt.Errorf("%w: confirmation code is required", domain.ErrValidation)
	}
	b, err := s.bookings.GetByCode(ctx, code)
	if err != nil {
		return domain.BookingConfirmation{}, err
	}

	out := domain.BookingConfirmation{Booking: b}
	trip, err := s.trips.Get(ctx, b.TripID)
	switch {
	case err == nil:
		out.TripTitle = trip.Title
		out.Destination = trip.Destination
		out.StartDate = trip.StartDate
		out.EndDate = trip.EndDate
	case isNotFound(err):
		// the trip was removed after booking; the booking still stands
	default:
		return domain.BookingConfirmation{}, fmt.Errorf("load trip: %w", err)
	}
	return out, nil
}

// UpdateStatus applies an administrative transition. Cancelling returns the
// seats to the trip.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, patch domain.BookingPatch) (domain.Booking, error) {
	if patch.Status == nil && patch.PaymentStatus == nil {
		return domain.Booking{}, fmt.Errorf("%w: status or payment_status is required", domain.ErrValidation)
	}
	if patch.Status != nil {
		if _, ok := domain.ParseBookingStatus(string(*patch.Status)); !ok {
			return domain.Booking{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *patch.Status)
		}
	}
	if patch.PaymentStatus != nil {
		if _, ok := domain.ParsePaymentStatus(string(*patch.PaymentStatus)); !ok {
			return domain.Booking{}, fmt.Errorf("%w: unknown payment_status %q", domain.ErrValidation, *patch.PaymentStatus)
		}
	}

	var (
		prev    domain.BookingStatus
		changes []string
	)
	updated, err := s.bookings.Update(ctx, id, func(b *domain.Booking) error {
		prev = b.Status
		changes = changes[:0]
		if patch.Status != nil && *patch.Status != b.Status {
			if !b.Status.CanTransition(*patch.Status) {
				return fmt.Errorf("%w: cannot move booking from %s to %s", domain.ErrConflict, b.Status, *patch.Status)
			}
			b.Status = *patch.Status
			changes = append(changes, "status")
		}
		if patch.PaymentStatus != nil && *patch.PaymentStatus != b.PaymentStatus {
			b.PaymentStatus = *patch.PaymentStatus
			changes = append(changes, "payment_status")
		}
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	if len(changes) == 0 {
		return updated, nil
	}

	if updated.Status == domain.BookingCancelled && prev != domain.BookingCancelled {
		if _, err := s.trips.ReleaseSeats(ctx, updated.TripID, updated.Participants); err != nil && !isNotFound(err) {
			logger.ErrorContext(ctx, "Failed to release seats", "error", err, "booking_id", updated.ID)
		}
	}

	ev := events.BookingUpdatedEvent{
		BookingID:     updated.ID,
		Status:        string(updated.Status),
		PaymentStatus: string(updated.PaymentStatus),
		Changes:       changes,
		UpdatedAt:     s.now(),
	}
	if err := s.eventBus.Publish(ctx, events.BookingUpdated, ev); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking updated event", "error", err, "booking_id", updated.ID)
	}
	logger.InfoContext(ctx, "Booking updated", "booking_id", updated.ID, "from", prev, "status", updated.Status, "payment_status", updated.PaymentStatus)
	return updated, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
