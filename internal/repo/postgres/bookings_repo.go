package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/sophies-tours/internal/domain"
	"github.com/diagnosis/sophies-tours/internal/repo"
)

type BookingRepoImpl struct{ pool *pgxpool.Pool }

func NewBookingRepo(pool *pgxpool.Pool) *BookingRepoImpl { return &BookingRepoImpl{pool: pool} }

const bookingCols = `id, trip_id, booking_date, confirmation_code,
status, payment_status, participants, total_price, includes_zinzino,
guest_email, guest_name, guest_phone, special_requests`

func scanBooking(s scanner) (domain.Booking, error) {
	var b domain.Booking
	err := s.Scan(
		&b.ID, &b.TripID, &b.BookingDate, &b.ConfirmationCode,
		&b.Status, &b.PaymentStatus, &b.Participants, &b.TotalPrice, &b.IncludesZinzino,
		&b.GuestEmail, &b.GuestName, &b.GuestPhone, &b.SpecialRequests,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *BookingRepoImpl) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	const q = `INSERT INTO bookings (
    id, trip_id, booking_date, confirmation_code,
    status, payment_status, participants, total_price, includes_zinzino,
    guest_email, guest_name, guest_phone, special_requests
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
  RETURNING ` + bookingCols

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	created, err := scanBooking(r.pool.QueryRow(ctx, q,
		b.ID, b.TripID, b.BookingDate, b.ConfirmationCode,
		b.Status, b.PaymentStatus, b.Participants, b.TotalPrice, b.IncludesZinzino,
		b.GuestEmail, b.GuestName, b.GuestPhone, b.SpecialRequests,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Booking{}, fmt.Errorf("code %s: %w", b.ConfirmationCode, domain.ErrDuplicateCode)
		}
		return domain.Booking{}, err
	}
	return created, nil
}

func (r *BookingRepoImpl) Get(ctx context.Context, id string) (domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	b, err := scanBooking(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("booking %q: %w", id, err)
	}
	return b, nil
}

func (r *BookingRepoImpl) GetByCode(ctx context.Context, code string) (domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE confirmation_code=$1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	b, err := scanBooking(r.pool.QueryRow(ctx, q, code))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("code %s: %w", code, err)
	}
	return b, nil
}

func (r *BookingRepoImpl) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.TripID != "" {
		args = append(args, f.TripID)
		where = append(where, fmt.Sprintf("trip_id = $%d", len(args)))
	}
	q := `SELECT ` + bookingCols + ` FROM bookings`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY seq`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bs := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bs = append(bs, b)
	}
	return bs, rows.Err()
}

func (r *BookingRepoImpl) Update(ctx context.Context, id string, mutate func(*domain.Booking) error) (domain.Booking, error) {
	const sel = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1 FOR UPDATE`
	const upd = `UPDATE bookings SET status=$2, payment_status=$3 WHERE id=$1 RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Booking{}, err
	}
	defer tx.Rollback(ctx)

	b, err := scanBooking(tx.QueryRow(ctx, sel, id))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("booking %q: %w", id, err)
	}
	if err := mutate(&b); err != nil {
		return domain.Booking{}, err
	}
	updated, err := scanBooking(tx.QueryRow(ctx, upd, id, b.Status, b.PaymentStatus))
	if err != nil {
		return domain.Booking{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Booking{}, err
	}
	return updated, nil
}

var _ repo.BookingRepo = (*BookingRepoImpl)(nil)
