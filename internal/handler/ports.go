// Package handler exposes the HTTP surface of the booking wizard. Each
// wizard page from the original flow (ticket selection, booking form,
// payment) maps onto a group of session-scoped endpoints; step guards
// answer with the wizard step the client should fall back to.
package handler

import (
	"context"

	"github.com/pandukusuma/sendratari-booking/internal/model"
	"github.com/pandukusuma/sendratari-booking/internal/queue"
)

// TicketTypeStore is the gateway surface for ticket tiers.
type TicketTypeStore interface {
	ListAll(ctx context.Context) ([]model.TicketType, error)
	GetByID(ctx context.Context, id string) (*model.TicketType, error)
}

// SeatStore is the gateway surface for seats. MarkUnavailable carries the
// tier id so caching layers can invalidate the tier's seat list.
type SeatStore interface {
	ListByTicketType(ctx context.Context, ticketTypeID string) ([]model.Seat, error)
	GetByID(ctx context.Context, id string) (*model.Seat, error)
	MarkUnavailable(ctx context.Context, ticketTypeID string, ids []string) error
}

// BookingStore is the gateway surface for submitted bookings.
type BookingStore interface {
	Insert(ctx context.Context, b *model.Booking) error
}

// ProofStore is the blob store holding uploaded payment proofs.
type ProofStore interface {
	Save(ctx context.Context, path string, content []byte) error
	PublicURL(path string) string
}

// PublishFunc publishes a booking.submitted event. Publishing is
// fire-and-forget: failures are logged by the caller and never fail a
// submission that already went through.
type PublishFunc func(ctx context.Context, ev queue.BookingSubmittedEvent) error
