package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diagnosis/sophies-tours/internal/domain"
	"github.com/diagnosis/sophies-tours/internal/repo"
	"github.com/diagnosis/sophies-tours/pkg/events"
	"github.com/diagnosis/sophies-tours/pkg/logger"
)

type TripService interface {
	Get(ctx context.Context, id string) (domain.Trip, error)
	List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)
	Create(ctx context.Context, t domain.Trip) (domain.Trip, error)
	Update(ctx context.Context, id string, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
}

type tripService struct {
	trips    repo.TripRepo
	eventBus events.Publisher
}

func NewTripService(trips repo.TripRepo, eventBus events.Publisher) TripService {
	return &tripService{trips: trips, eventBus: eventBus}
}

func (s *tripService) Get(ctx context.Context, id string) (domain.Trip, error) {
	return s.trips.Get(ctx, id)
}

func (s *tripService) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	return s.trips.List(ctx, f)
}

func (s *tripService) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	t.Title = strings.TrimSpace(t.Title)
	t.Destination = strings.TrimSpace(t.Destination)
	if err := validateStruct(t); err != nil {
		return domain.Trip{}, err
	}
	if t.Status == "" {
		t.Status = domain.TripActive
	}
	if err := checkTrip(t); err != nil {
		return domain.Trip{}, err
	}
	t.ID = ""

	created, err := s.trips.Create(ctx, t)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("create trip: %w", err)
	}
	s.publish(ctx, events.TripCreated, created)
	logger.InfoContext(ctx, "Trip created", "trip_id", created.ID, "title", created.Title)
	return created, nil
}

// Update merges the patch and rejects the result if the record would become
// inconsistent.
func (s *tripService) Update(ctx context.Context, id string, patch domain.TripPatch) (domain.Trip, error) {
	updated, err := s.trips.Update(ctx, id, func(t *domain.Trip) error {
		patch.Apply(t)
		if err := validateStruct(*t); err != nil {
			return err
		}
		return checkTrip(*t)
	})
	if err != nil {
		return domain.Trip{}, err
	}
	s.publish(ctx, events.TripUpdated, updated)
	return updated, nil
}

func (s *tripService) Delete(ctx context.Context, id string) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.TripDeleted, domain.Trip{ID: id})
	logger.InfoContext(ctx, "Trip deleted", "trip_id", id)
	return nil
}

func (s *tripService) publish(ctx context.Context, subject string, t domain.Trip) {
	ev := events.TripEvent{TripID: t.ID, Status: string(t.Status), Timestamp: time.Now().UTC()}
	if err := s.eventBus.Publish(ctx, subject, ev); err != nil {
		logger.ErrorContext(ctx, "Failed to publish trip event", "error", err, "subject", subject, "trip_id", t.ID)
	}
}

func checkTrip(t domain.Trip) error {
	if _, ok := domain.ParseTripStatus(string(t.Status)); !ok {
		return fmt.Errorf("%w: status must be one of active, full, cancelled", domain.ErrValidation)
	}
	if t.MaxParticipants < 0 || t.CurrentParticipants < 0 {
		return fmt.Errorf("%w: participant counts cannot be negative", domain.ErrValidation)
	}
	if t.CurrentParticipants > t.MaxParticipants {
		return fmt.Errorf("%w: current_participants exceeds max_participants", domain.ErrValidation)
	}
	if t.ZinzinoPrice != nil && *t.ZinzinoPrice < 0 {
		return fmt.Errorf("%w: zinzino_price cannot be negative", domain.ErrValidation)
	}
	if !t.StartDate.IsZero() && !t.EndDate.IsZero() && t.EndDate.Before(t.StartDate.Time) {
		return fmt.Errorf("%w: end_date is before start_date", domain.ErrValidation)
	}
	return nil
}

func isNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
