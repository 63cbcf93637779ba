package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/sophies-tours/internal/domain"
	"github.com/diagnosis/sophies-tours/internal/repo"
)

type TripRepoImpl struct{ pool *pgxpool.Pool }

func NewTripRepo(pool *pgxpool.Pool) *TripRepoImpl { return &TripRepoImpl{pool: pool} }

const tripCols = `id, title, destination, description,
price, duration_days, max_participants, current_participants,
start_date, end_date, includes_zinzino, zinzino_price, image_url,
highlights, included, excluded, status, created_at, updated_at`

const queryTimeout = 3 * time.Second

type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		start, end pgtype.Date
	)
	err := s.Scan(
		&t.ID, &t.Title, &t.Destination, &t.Description,
		&t.Price, &t.DurationDays, &t.MaxParticipants, &t.CurrentParticipants,
		&start, &end, &t.IncludesZinzino, &t.ZinzinoPrice, &t.ImageURL,
		&t.Highlights, &t.Included, &t.Excluded, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	if start.Valid {
		t.StartDate = domain.Date{Time: start.Time}
	}
	if end.Valid {
		t.EndDate = domain.Date{Time: end.Time}
	}
	return t, nil
}

func pgDate(d domain.Date) pgtype.Date {
	return pgtype.Date{Time: d.Time, Valid: !d.IsZero()}
}

func textArray(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func (r *TripRepoImpl) Get(ctx context.Context, id string) (domain.Trip, error) {
	const q = `SELECT ` + tripCols + ` FROM trips WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	t, err := scanTrip(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("trip %q: %w", id, err)
	}
	return t, nil
}

func (r *TripRepoImpl) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	var (
		where []string
		args  []any
	)
	if f.Destination != "" {
		args = append(args, "%"+strings.ToLower(f.Destination)+"%")
		where = append(where, fmt.Sprintf("lower(destination) LIKE $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.IncludesZinzino != nil {
		args = append(args, *f.IncludesZinzino)
		where = append(where, fmt.Sprintf("includes_zinzino = $%d", len(args)))
	}
	q := `SELECT ` + tripCols + ` FROM trips`
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

	out := make([]domain.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TripRepoImpl) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	const q = `INSERT INTO trips (
    id, title, destination, description,
    price, duration_days, max_participants, current_participants,
    start_date, end_date, includes_zinzino, zinzino_price, image_url,
    highlights, included, excluded, status
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
  RETURNING ` + tripCols

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	created, err := scanTrip(r.pool.QueryRow(ctx, q,
		t.ID, t.Title, t.Destination, t.Description,
		t.Price, t.DurationDays, t.MaxParticipants, t.CurrentParticipants,
		pgDate(t.StartDate), pgDate(t.EndDate), t.IncludesZinzino, t.ZinzinoPrice, t.ImageURL,
		textArray(t.Highlights), textArray(t.Included), textArray(t.Excluded), t.Status,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Trip{}, fmt.Errorf("trip %q already exists: %w", t.ID, domain.ErrConflict)
		}
		return domain.Trip{}, err
	}
	return created, nil
}

func (r *TripRepoImpl) Update(ctx context.Context, id string, mutate func(*domain.Trip) error) (domain.Trip, error) {
	const sel = `SELECT ` + tripCols + ` FROM trips WHERE id=$1 FOR UPDATE`
	const upd = `UPDATE trips SET
    title=$2, destination=$3, description=$4,
    price=$5, duration_days=$6, max_participants=$7, current_participants=$8,
    start_date=$9, end_date=$10, includes_zinzino=$11, zinzino_price=$12, image_url=$13,
    highlights=$14, included=$15, excluded=$16, status=$17, updated_at=now()
  WHERE id=$1
  RETURNING ` + tripCols

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Trip{}, err
	}
	defer tx.Rollback(ctx)

	t, err := scanTrip(tx.QueryRow(ctx, sel, id))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("trip %q: %w", id, err)
	}
	if err := mutate(&t); err != nil {
		return domain.Trip{}, err
	}
	updated, err := scanTrip(tx.QueryRow(ctx, upd, id,
		t.Title, t.Destination, t.Description,
		t.Price, t.DurationDays, t.MaxParticipants, t.CurrentParticipants,
		pgDate(t.StartDate), pgDate(t.EndDate), t.IncludesZinzino, t.ZinzinoPrice, t.ImageURL,
		textArray(t.Highlights), textArray(t.Included), textArray(t.Excluded), t.Status,
	))
	if err != nil {
		return domain.Trip{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, err
	}
	return updated, nil
}

func (r *TripRepoImpl) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM trips WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("trip %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *TripRepoImpl) ReserveSeats(ctx context.Context, id string, n int) (domain.Trip, error) {
	if n <= 0 {
		return domain.Trip{}, fmt.Errorf("%w: participants must be positive", domain.ErrValidation)
	}
	// single conditional UPDATE: the row lock makes check-and-increment atomic
	const q = `UPDATE trips SET
    current_participants = current_participants + $2,
    status = CASE WHEN current_participants + $2 >= max_participants THEN 'full' ELSE status END,
    updated_at = now()
  WHERE id=$1 AND status='active' AND current_participants + $2 <= max_participants
  RETURNING ` + tripCols

	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	t, err := scanTrip(r.pool.QueryRow(qctx, q, id, n))
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Trip{}, err
	}

	cur, err := r.Get(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	if cur.Status != domain.TripActive {
		return domain.Trip{}, fmt.Errorf("%w: trip is %s", domain.ErrConflict, cur.Status)
	}
	return domain.Trip{}, fmt.Errorf("%w: only %d seats left", domain.ErrConflict, cur.SeatsLeft())
}

func (r *TripRepoImpl) ReleaseSeats(ctx context.Context, id string, n int) (domain.Trip, error) {
	const q = `UPDATE trips SET
    current_participants = GREATEST(current_participants - $2, 0),
    status = CASE WHEN status='full' AND GREATEST(current_participants - $2, 0) < max_participants THEN 'active' ELSE status END,
    updated_at = now()
  WHERE id=$1
  RETURNING ` + tripCols

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	t, err := scanTrip(r.pool.QueryRow(ctx, q, id, n))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("trip %q: %w", id, err)
	}
	return t, nil
}

var _ repo.TripRepo = (*TripRepoImpl)(nil)
