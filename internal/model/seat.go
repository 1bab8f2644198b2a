package model

// Seat describes an individually bookable seat belonging to exactly one
// ticket tier. Row and Position identify where the seat sits in the hall;
// SeatNumber is the human-readable label (e.g. "A12").
//
// IsAvailable flips from true to false only when a booking that includes
// the seat is successfully submitted. The service never flips it back.
type Seat struct {
	ID           string // seats.id (uuid)
	SeatNumber   string // seats.seat_number
	TicketTypeID string // seats.ticket_type_id (FK -> ticket_types.id)
	Row          string // seats.row_label, e.g. A, B, AA
	Position     uint32 // seats.position within the row (1-based)
	IsAvailable  bool   // seats.is_available
}

// BookedSeat is the snapshot of a seat captured inside a booking record.
// Only the identifier and the display number are kept; everything else can
// be re-derived from the seats table if needed.
type BookedSeat struct {
	ID         string `json:"id"`
	SeatNumber string `json:"seat_number"`
}
