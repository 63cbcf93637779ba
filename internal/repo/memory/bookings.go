package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/diagnosis/sophies-tours/internal/domain"
	"github.com/diagnosis/sophies-tours/internal/repo"
)

type BookingStore struct {
	mu       sync.RWMutex
	order    []string
	bookings map[string]*domain.Booking
	codes    map[string]string // confirmation code -> booking id
}

func NewBookingStore() *BookingStore {
	return &BookingStore{
		bookings: make(map[string]*domain.Booking),
		codes:    make(map[string]string),
	}
}

func (s *BookingStore) Create(_ context.Context, b domain.Booking) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.codes[b.ConfirmationCode]; taken {
		return domain.Booking{}, fmt.Errorf("code %s: %w", b.ConfirmationCode, domain.ErrDuplicateCode)
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	s.order = append(s.order, b.ID)
	s.bookings[b.ID] = &b
	s.codes[b.ConfirmationCode] = b.ID
	return b, nil
}

func (s *BookingStore) Get(_ context.Context, id string) (domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return domain.Booking{}, fmt.Errorf("booking %q: %w", id, domain.ErrNotFound)
	}
	return *b, nil
}

func (s *BookingStore) GetByCode(_ context.Context, code string) (domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codes[code]
	if !ok {
		return domain.Booking{}, fmt.Errorf("code %s: %w", code, domain.ErrNotFound)
	}
	return *s.bookings[id], nil
}

func (s *BookingStore) List(_ context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Booking, 0, len(s.order))
	for _, id := range s.order {
		if b := s.bookings[id]; f.Matches(b) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *BookingStore) Update(_ context.Context, id string, mutate func(*domain.Booking) error) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.bookings[id]
	if !ok {
		return domain.Booking{}, fmt.Errorf("booking %q: %w", id, domain.ErrNotFound)
	}
	next := *cur
	if err := mutate(&next); err != nil {
		return domain.Booking{}, err
	}
	// identity fields are immutable
	next.ID, next.ConfirmationCode, next.TripID = cur.ID, cur.ConfirmationCode, cur.TripID
	s.bookings[id] = &next
	return next, nil
}

var _ repo.BookingRepo = (*BookingStore)(nil)
