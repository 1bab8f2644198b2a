// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios, e.g. a lookup for a
// ticket tier that does not exist versus a database outage.
package repository

import "errors"

// ErrTicketTypeNotFound is returned when a tier lookup yields no rows.
var ErrTicketTypeNotFound = errors.New("ticket type not found")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrBookingNotFound is returned when a booking lookup yields no rows.
var ErrBookingNotFound = errors.New("booking not found")
