package model

import "time"

// StatusPending marks a submitted booking that awaits manual payment
// confirmation by venue staff. It is the only status this service writes.
const StatusPending = "pending"

// ContactInfo holds the details entered on the booking form.
type ContactInfo struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

// Booking is the submitted snapshot of a completed wizard traversal. It is
// created once per successful submission and never mutated afterward by
// this service.
//
// Fields:
//
//	ID              – primary key (uuid), generated at insert time.
//	FullName        – contact name from the booking form.
//	PhoneNumber     – contact phone from the booking form.
//	Seats           – snapshot of the chosen seats (id + number).
//	TicketTypeID    – tier the seats belong to.
//	TotalPrice      – len(Seats) × tier price at submission time, in rupiah.
//	PaymentProofURL – public URL of the uploaded transfer proof.
//	Status          – always StatusPending when written here.
type Booking struct {
	ID              string       // bookings.id
	FullName        string       // bookings.full_name
	PhoneNumber     string       // bookings.phone_number
	Seats           []BookedSeat // bookings.selected_seats (JSON array)
	TicketTypeID    string       // bookings.ticket_type_id
	TotalPrice      int64        // bookings.total_price
	PaymentProofURL string       // bookings.payment_proof_url
	Status          string       // bookings.status
	CreatedAt       time.Time    // bookings.created_at
}
