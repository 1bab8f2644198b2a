package repository // repository defines data access for bookings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pandukusuma/sendratari-booking/internal/model"
)

// BookingRepo persists submitted bookings. Records are insert-only from the
// service's point of view; staff confirm payments through other tooling.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// Insert writes a booking record. On success the booking's ID and CreatedAt
// are populated. The chosen seats are stored as a JSON snapshot so the
// record stays meaningful even if the seats table changes later.
func (r *BookingRepo) Insert(ctx context.Context, b *model.Booking) error {
	seats, err := json.Marshal(b.Seats)
	if err != nil {
		return err
	}
	id := uuid.NewString()
	now := time.Now().UTC()

	const q = `INSERT INTO bookings
	           (id, full_name, phone_number, selected_seats, ticket_type_id,
	            total_price, payment_proof_url, status, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		id, b.FullName, b.PhoneNumber, seats, b.TicketTypeID,
		b.TotalPrice, b.PaymentProofURL, b.Status, now,
	); err != nil {
		return err
	}
	b.ID = id
	b.CreatedAt = now
	return nil
}

// GetByID retrieves a booking by its id. Used by staff-facing tooling and
// tests; the wizard itself never reads bookings back.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT id, full_name, phone_number, selected_seats, ticket_type_id,
	                  total_price, payment_proof_url, status, created_at
	           FROM bookings WHERE id = ?`
	var b model.Booking
	var seats []byte
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.FullName, &b.PhoneNumber, &seats, &b.TicketTypeID,
		&b.TotalPrice, &b.PaymentProofURL, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if len(seats) > 0 {
		if err := json.Unmarshal(seats, &b.Seats); err != nil {
			return nil, err
		}
	}
	return &b, nil
}
