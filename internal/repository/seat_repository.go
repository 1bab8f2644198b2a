package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pandukusuma/sendratari-booking/internal/model"
)

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// ListByTicketType retrieves all seats of a tier ordered by row_label then
// position, the order the seat map renders them in.
func (r *SeatRepo) ListByTicketType(ctx context.Context, ticketTypeID string) ([]model.Seat, error) {
	const q = `SELECT id, seat_number, ticket_type_id, row_label, position, is_available
	           FROM seats
	           WHERE ticket_type_id = ?
	           ORDER BY row_label, position`
	rows, err := r.db.QueryContext(ctx, q, ticketTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(
			&s.ID, &s.SeatNumber, &s.TicketTypeID, &s.Row, &s.Position, &s.IsAvailable,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id string) (*model.Seat, error) {
	const q = `SELECT id, seat_number, ticket_type_id, row_label, position, is_available
	           FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.SeatNumber, &s.TicketTypeID, &s.Row, &s.Position, &s.IsAvailable)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// MarkUnavailable sets is_available = false for every seat in ids. The
// tier id is carried so that decorating layers can invalidate per-tier
// caches; all seats in one submission share a tier. Rows that are already
// unavailable are left as they are (last write wins, per the backend's
// availability contract).
func (r *SeatRepo) MarkUnavailable(ctx context.Context, ticketTypeID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE seats SET is_available = FALSE WHERE id IN (`
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}
