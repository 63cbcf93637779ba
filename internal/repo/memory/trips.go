// Package memory is the process-local store used when no database is configured.
// Every store serialises writers behind a single mutex.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/sophies-tours/internal/domain"
	"github.com/diagnosis/sophies-tours/internal/repo"
)

type TripStore struct {
	mu    sync.RWMutex
	order []string
	trips map[string]*domain.Trip
	now   func() time.Time
}

func NewTripStore(seed ...domain.Trip) *TripStore {
	s := &TripStore{
		trips: make(map[string]*domain.Trip, len(seed)),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, t := range seed {
		t := cloneTrip(t)
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		s.order = append(s.order, t.ID)
		s.trips[t.ID] = &t
	}
	return s
}

func (s *TripStore) Get(_ context.Context, id string) (domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trips[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("trip %q: %w", id, domain.ErrNotFound)
	}
	return cloneTrip(*t), nil
}

func (s *TripStore) List(_ context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Trip, 0, len(s.order))
	for _, id := range s.order {
		t := s.trips[id]
		if f.Matches(t) {
			out = append(out, cloneTrip(*t))
		}
	}
	return out, nil
}

func (s *TripStore) Create(_ context.Context, t domain.Trip) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t = cloneTrip(t)
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if _, exists := s.trips[t.ID]; exists {
		return domain.Trip{}, fmt.Errorf("trip %q already exists: %w", t.ID, domain.ErrConflict)
	}
	now := s.now()
	t.CreatedAt, t.UpdatedAt = now, now
	s.order = append(s.order, t.ID)
	s.trips[t.ID] = &t
	return cloneTrip(t), nil
}

func (s *TripStore) Update(_ context.Context, id string, mutate func(*domain.Trip) error) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.trips[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("trip %q: %w", id, domain.ErrNotFound)
	}
	next := cloneTrip(*cur)
	if err := mutate(&next); err != nil {
		return domain.Trip{}, err
	}
	next.ID = cur.ID
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = s.now()
	s.trips[id] = &next
	return cloneTrip(next), nil
}

func (s *TripStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[id]; !ok {
		return fmt.Errorf("trip %q: %w", id, domain.ErrNotFound)
	}
	delete(s.trips, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *TripStore) ReserveSeats(_ context.Context, id string, n int) (domain.Trip, error) {
	if n <= 0 {
		return domain.Trip{}, fmt.Errorf("%w: participants must be positive", domain.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("trip %q: %w", id, domain.ErrNotFound)
	}
	if t.Status != domain.TripActive {
		return domain.Trip{}, fmt.Errorf("%w: trip is %s", domain.ErrConflict, t.Status)
	}
	if left := t.SeatsLeft(); n > left {
		return domain.Trip{}, fmt.Errorf("%w: only %d seats left", domain.ErrConflict, left)
	}
	t.CurrentParticipants += n
	if t.CurrentParticipants >= t.MaxParticipants {
		t.Status = domain.TripFull
	}
	t.UpdatedAt = s.now()
	return cloneTrip(*t), nil
}

func (s *TripStore) ReleaseSeats(_ context.Context, id string, n int) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("trip %q: %w", id, domain.ErrNotFound)
	}
	t.CurrentParticipants -= n
	if t.CurrentParticipants < 0 {
		t.CurrentParticipants = 0
	}
	if t.Status == domain.TripFull && t.CurrentParticipants < t.MaxParticipants {
		t.Status = domain.TripActive
	}
	t.UpdatedAt = s.now()
	return cloneTrip(*t), nil
}

func cloneTrip(t domain.Trip) domain.Trip {
	t.Highlights = append([]string(nil), t.Highlights...)
	t.Included = append([]string(nil), t.Included...)
	t.Excluded = append([]string(nil), t.Excluded...)
	if t.ZinzinoPrice != nil {
		v := *t.ZinzinoPrice
		t.ZinzinoPrice = &v
	}
	return t
}

var _ repo.TripRepo = (*TripStore)(nil)
