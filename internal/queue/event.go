// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingSubmittedEvent is published when a booking is successfully
// submitted. It contains enough information for downstream consumers to
// log, notify staff, or trigger analytics without querying the primary
// database.
type BookingSubmittedEvent struct {
	BookingID      string   `json:"booking_id"`
	FullName       string   `json:"full_name"`
	PhoneNumber    string   `json:"phone_number"`
	TicketTypeID   string   `json:"ticket_type_id"`
	TicketTypeName string   `json:"ticket_type_name"`
	SeatNumbers    []string `json:"seats"`
	TotalPrice     int64    `json:"total_price"`
	SubmittedAt    string   `json:"submitted_at"`
}
