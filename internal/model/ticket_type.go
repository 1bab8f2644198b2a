package model

import "time"

// TicketType describes a ticket tier for the performance (e.g. Regular,
// VIP). Tiers are created by venue staff directly in the database and are
// read-only to this service.
//
// Fields:
//
//	ID       – primary key (uuid).
//	Name     – display name of the tier.
//	Price    – price per seat in rupiah (minor unit, always positive).
//	Benefits – ordered list of benefit lines shown on the tier card.
//	Color    – accent color used by clients when rendering the tier.
type TicketType struct {
	ID        string    // ticket_types.id
	Name      string    // ticket_types.name
	Price     int64     // ticket_types.price
	Benefits  []string  // ticket_types.benefits (JSON array)
	Color     string    // ticket_types.color
	CreatedAt time.Time // ticket_types.created_at
}
