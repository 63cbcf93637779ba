package service

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/sophies-tours/internal/domain"
	"github.com/diagnosis/sophies-tours/internal/repo/memory"
)

type fakeBus struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (f *fakeBus) Publish(_ context.Context, subject string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = append(f.subjects, subject)
	return f.err
}

func (f *fakeBus) Close() error { return nil }

type fakeNotifier struct {
	mu    sync.Mutex
	calls []domain.Booking
	title string
}

func (f *fakeNotifier) Dispatch(_ context.Context, b domain.Booking, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, b)
	f.title = title
}

var testParams = &argon2id.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func ptr[T any](v T) *T { return &v }

type fixture struct {
	trips    *memory.TripStore
	bookings *memory.BookingStore
	bus      *fakeBus
	notifier *fakeNotifier
	svc      BookingService
}

func newFixture(t *testing.T, gen CodeGenerator, seed ...domain.Trip) *fixture {
	t.Helper()
	if len(seed) == 0 {
		seed = memory.SeedTrips()
	}
	f := &fixture{
		trips:    memory.NewTripStore(seed...),
		bookings: memory.NewBookingStore(),
		bus:      &fakeBus{},
		notifier: &fakeNotifier{},
	}
	f.svc = NewBookingService(f.trips, f.bookings, f.notifier, f.bus, gen)
	return f
}

func validRequest() domain.BookingRequest {
	return domain.BookingRequest{
		TripID:       "1",
		Participants: 2,
		GuestEmail:   "jane@example.com",
		GuestName:    "Jane Doe",
	}
}

func TestComputeTotal(t *testing.T) {
	surcharge := 700.0
	trip := domain.Trip{Price: 3500, IncludesZinzino: true, ZinzinoPrice: &surcharge}

	for n := 1; n <= 12; n++ {
		plain, err := ComputeTotal(trip, n, false)
		require.NoError(t, err)
		assert.Equal(t, trip.Price*float64(n), plain)

		addon, err := ComputeTotal(trip, n, true)
		require.NoError(t, err)
		assert.Equal(t, (trip.Price+surcharge)*float64(n), addon)
	}

	_, err := ComputeTotal(trip, 0, false)
	assert.ErrorIs(t, err, domain.ErrValidation)

	noAddon := domain.Trip{Price: 0.1}
	total, err := ComputeTotal(noAddon, 3, true)
	require.NoError(t, err)
	assert.Equal(t, 0.3, total)
}

func TestNewConfirmationCode(t *testing.T) {
	shape := regexp.MustCompile(`^[0-9A-F]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := NewConfirmationCode()
		require.NoError(t, err)
		assert.Regexp(t, shape, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 190)
}

func TestSubmit_ExampleScenario(t *testing.T) {
	trip := domain.Trip{
		ID: "t1", Title: "Serengeti", Destination: "Tanzania", Price: 3500, DurationDays: 7,
		MaxParticipants: 12, CurrentParticipants: 8, Status: domain.TripActive,
	}
	f := newFixture(t, nil, trip)

	req := validRequest()
	req.TripID = "t1"
	b, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 7000.0, b.TotalPrice)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Regexp(t, `^[0-9A-F]{8}$`, b.ConfirmationCode)

	listed, err := f.svc.List(context.Background(), domain.BookingFilter{TripID: "t1"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, b.ConfirmationCode, listed[0].ConfirmationCode)

	stored, _ := f.trips.Get(context.Background(), "t1")
	assert.Equal(t, 10, stored.CurrentParticipants)

	assert.Equal(t, []string{"booking.created"}, f.bus.subjects)
	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, "Serengeti", f.notifier.title)
}

func TestSubmit_WithAddon(t *testing.T) {
	f := newFixture(t, nil)
	req := validRequest()
	req.IncludesZinzino = true

	b, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 8400.0, b.TotalPrice)
	assert.True(t, b.IncludesZinzino)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	cases := map[string]func(*domain.BookingRequest){
		"missing email":     func(r *domain.BookingRequest) { r.GuestEmail = "" },
		"bad email":         func(r *domain.BookingRequest) { r.GuestEmail = "not-an-email" },
		"missing name":      func(r *domain.BookingRequest) { r.GuestName = "   " },
		"missing trip":      func(r *domain.BookingRequest) { r.TripID = "" },
		"zero participants": func(r *domain.BookingRequest) { r.Participants = 0 },
		"negative":          func(r *domain.BookingRequest) { r.Participants = -2 },
		"unknown trip":      func(r *domain.BookingRequest) { r.TripID = "nope" },
		"addon not offered": func(r *domain.BookingRequest) { r.TripID = "6"; r.IncludesZinzino = true },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, nil)
			req := validRequest()
			mutate(&req)

			_, err := f.svc.Submit(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)

			all, _ := f.bookings.List(context.Background(), domain.BookingFilter{})
			assert.Empty(t, all, "nothing stored")
			assert.Empty(t, f.notifier.calls)
		})
	}
}

func TestSubmit_MissingEmailMessage(t *testing.T) {
	f := newFixture(t, nil)
	req := validRequest()
	req.GuestEmail = ""
	_, err := f.svc.Submit(context.Background(), req)
	assert.EqualError(t, err, "validation error: missing required fields: guest_email")
}

func TestSubmit_CapacityConflict(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	full := validRequest()
	full.TripID = "3"
	_, err := f.svc.Submit(ctx, full)
	assert.ErrorIs(t, err, domain.ErrConflict)

	tooMany := validRequest()
	tooMany.Participants = 5
	_, err = f.svc.Submit(ctx, tooMany)
	assert.ErrorIs(t, err, domain.ErrConflict)

	exact := validRequest()
	exact.Participants = 4
	_, err = f.svc.Submit(ctx, exact)
	require.NoError(t, err)

	trip, _ := f.trips.Get(ctx, "1")
	assert.Equal(t, domain.TripFull, trip.Status)
}

func TestSubmit_RetriesCodeCollisions(t *testing.T) {
	codes := []string{"AAAAAAAA", "AAAAAAAA", "BBBBBBBB"}
	i := 0
	gen := func() (string, error) {
		c := codes[i]
		i++
		return c, nil
	}
	f := newFixture(t, gen)
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "AAAAAAAA", first.ConfirmationCode)

	second, err := f.svc.Submit(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "BBBBBBBB", second.ConfirmationCode)
}

func TestSubmit_ReleasesSeatsWhenCodesExhausted(t *testing.T) {
	f := newFixture(t, func() (string, error) { return "AAAAAAAA", nil })
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, validRequest())
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, validRequest())
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrValidation))

	trip, _ := f.trips.Get(ctx, "1")
	assert.Equal(t, 10, trip.CurrentParticipants, "second reservation rolled back")
}

func TestSubmit_EventFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, nil)
	f.bus.err = errors.New("nats down")

	_, err := f.svc.Submit(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestGetConfirmation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b, err := f.svc.Submit(ctx, validRequest())
	require.NoError(t, err)

	got, err := f.svc.GetConfirmation(ctx, " "+b.ConfirmationCode+" ")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.Booking.ID)
	assert.Equal(t, "Serengeti Safari Adventure", got.TripTitle)
	assert.Equal(t, "2024-06-15", got.StartDate.String())

	_, err = f.svc.GetConfirmation(ctx, "FFFFFFFF")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.GetConfirmation(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b, err := f.svc.Submit(ctx, validRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, b.ID, domain.BookingPatch{Status: ptr(domain.BookingCompleted)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	up, err := f.svc.UpdateStatus(ctx, b.ID, domain.BookingPatch{
		Status:        ptr(domain.BookingConfirmed),
		PaymentStatus: ptr(domain.PaymentPaid),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, up.Status)
	assert.Equal(t, domain.PaymentPaid, up.PaymentStatus)

	up, err = f.svc.UpdateStatus(ctx, b.ID, domain.BookingPatch{Status: ptr(domain.BookingCancelled)})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, up.Status)

	trip, _ := f.trips.Get(ctx, "1")
	assert.Equal(t, 8, trip.CurrentParticipants, "cancel returns seats")

	_, err = f.svc.UpdateStatus(ctx, b.ID, domain.BookingPatch{Status: ptr(domain.BookingConfirmed)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.svc.UpdateStatus(ctx, b.ID, domain.BookingPatch{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.svc.UpdateStatus(ctx, b.ID, domain.BookingPatch{Status: ptr(domain.BookingStatus("lost"))})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.svc.UpdateStatus(ctx, "missing", domain.BookingPatch{PaymentStatus: ptr(domain.PaymentRefunded)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, []string{"booking.created", "booking.updated", "booking.updated"}, f.bus.subjects)
}

func TestTripService(t *testing.T) {
	bus := &fakeBus{}
	svc := NewTripService(memory.NewTripStore(memory.SeedTrips()...), bus)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.Trip{Title: "Namib"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	created, err := svc.Create(ctx, domain.Trip{Title: "Namib", Destination: "Namibia", Price: 2000, DurationDays: 5, MaxParticipants: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.TripActive, created.Status)
	assert.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Namib", got.Title)

	_, err = svc.Get(ctx, "never-inserted")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	up, err := svc.Update(ctx, created.ID, domain.TripPatch{Price: ptr(2100.0), Title: ptr("Namib Dunes")})
	require.NoError(t, err)
	assert.Equal(t, 2100.0, up.Price)
	assert.Equal(t, "Namib Dunes", up.Title)
	assert.True(t, up.UpdatedAt.After(created.UpdatedAt) || up.UpdatedAt.Equal(created.UpdatedAt))

	_, err = svc.Update(ctx, created.ID, domain.TripPatch{CurrentParticipants: ptr(11)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Update(ctx, created.ID, domain.TripPatch{Status: ptr(domain.TripStatus("sold"))})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Update(ctx, created.ID, domain.TripPatch{Price: ptr(0.0)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Update(ctx, "never-inserted", domain.TripPatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrNotFound)

	assert.Equal(t, []string{"trip.created", "trip.updated", "trip.deleted"}, bus.subjects)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := argon2id.CreateHash("password", testParams)
	require.NoError(t, err)
	svc := NewAuthService(newGuard(), "admin@sophies-tours.com", hash)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "Admin@Sophies-Tours.com", "password")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	claims, err := svc.Validate(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@sophies-tours.com", claims.Email)
	assert.True(t, claims.IsAdmin)

	_, err = svc.Login(ctx, "admin@sophies-tours.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.Login(ctx, "someone@else.com", "password")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Validate("garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
