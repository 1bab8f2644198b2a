package repository // repository defines data access for ticket tiers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/pandukusuma/sendratari-booking/internal/model"
)

// TicketTypeRepo provides read access to ticket tiers. Tiers are seeded by
// venue staff; this service never creates or mutates them.
type TicketTypeRepo struct {
	db *sql.DB
}

// NewTicketTypeRepo constructs a TicketTypeRepo with the given DB handle.
func NewTicketTypeRepo(db *sql.DB) *TicketTypeRepo {
	return &TicketTypeRepo{db: db}
}

// ListAll retrieves every tier ordered by descending price, the order the
// ticket selection page presents them in (most expensive first).
func (r *TicketTypeRepo) ListAll(ctx context.Context) ([]model.TicketType, error) {
	const q = `SELECT id, name, price, benefits, color, created_at
	           FROM ticket_types
	           ORDER BY price DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.TicketType
	for rows.Next() {
		t, err := scanTicketType(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a single tier by its id.
func (r *TicketTypeRepo) GetByID(ctx context.Context, id string) (*model.TicketType, error) {
	const q = `SELECT id, name, price, benefits, color, created_at
	           FROM ticket_types WHERE id = ?`
	t, err := scanTicketType(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}

// scanTicketType reads one tier row. Benefits are stored as a JSON array in
// the database; parsing them here keeps duck-typed shapes out of the rest
// of the application.
func scanTicketType(scan func(dest ...any) error) (model.TicketType, error) {
	var t model.TicketType
	var benefits []byte
	if err := scan(&t.ID, &t.Name, &t.Price, &benefits, &t.Color, &t.CreatedAt); err != nil {
		return model.TicketType{}, err
	}
	if len(benefits) > 0 {
		if err := json.Unmarshal(benefits, &t.Benefits); err != nil {
			return model.TicketType{}, err
		}
	}
	return t, nil
}
