package handler

// seat.go implements the seat picker: listing a tier's seats grouped by
// row and toggling seat membership in the session's selection.

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pandukusuma/sendratari-booking/internal/model"
	"github.com/pandukusuma/sendratari-booking/internal/repository"
	"github.com/pandukusuma/sendratari-booking/internal/session"
)

// SeatHandler serves the seat picker on the booking form page.
type SeatHandler struct {
	Seats    SeatStore
	Sessions *session.Store
}

// NewSeatHandler constructs a SeatHandler.
func NewSeatHandler(seats SeatStore, sessions *session.Store) *SeatHandler {
	if seats == nil || sessions == nil {
		panic("nil dependency passed to NewSeatHandler")
	}
	return &SeatHandler{Seats: seats, Sessions: sessions}
}

// SeatView is a seat as rendered on the seat map.
type SeatView struct {
	ID          string `json:"id"`
	SeatNumber  string `json:"seat_number"`
	Row         string `json:"row"`
	Position    uint32 `json:"position"`
	IsAvailable bool   `json:"is_available"`
}

// SeatRowView groups a row's seats for display, preserving the
// row-then-position order the store returns.
type SeatRowView struct {
	Row   string     `json:"row"`
	Seats []SeatView `json:"seats"`
}

// List handles GET /v1/ticket-types/:id/seats. Seats come back ordered by
// row then position and are grouped per row for the seat map.
func (h *SeatHandler) List(c echo.Context) error {
	ticketTypeID := c.Param("id")
	seats, err := h.Seats.ListByTicketType(c.Request().Context(), ticketTypeID)
	if err != nil {
		log.Printf("seats: list for tier %s failed: %v", ticketTypeID, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load seats"})
	}
	rows := make([]SeatRowView, 0)
	for _, s := range seats {
		v := SeatView{ID: s.ID, SeatNumber: s.SeatNumber, Row: s.Row, Position: s.Position, IsAvailable: s.IsAvailable}
		if n := len(rows); n > 0 && rows[n-1].Row == s.Row {
			rows[n-1].Seats = append(rows[n-1].Seats, v)
		} else {
			rows = append(rows, SeatRowView{Row: s.Row, Seats: []SeatView{v}})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"rows": rows})
}

// Toggle handles POST /v1/session/seats/:id. A seat already in the
// selection is removed; an absent one is appended. Unavailable seats and
// seats belonging to a tier other than the selected one are inert: the
// request succeeds but the selection is unchanged, matching a click on a
// greyed-out seat.
func (h *SeatHandler) Toggle(c echo.Context) error {
	snap, sid, ok := snapshot(c, h.Sessions)
	if !ok {
		return nil
	}
	if snap.TicketType == nil {
		return redirectTo(c, stepTickets, "no ticket type selected")
	}

	seatID := c.Param("id")
	seat, err := h.Seats.GetByID(c.Request().Context(), seatID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		log.Printf("seats: get %s failed: %v", seatID, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load seats"})
	}

	inert := !seat.IsAvailable || seat.TicketTypeID != snap.TicketType.ID
	if !inert {
		if err := h.Sessions.ToggleSeat(sid, *seat); err != nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no active booking session", "redirect": stepLanding})
		}
		// Mirror the store's toggle on the local copy instead of reading
		// the session again; a second read can race session expiry.
		snap.ToggleSeat(*seat)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"selected_seats":        seatNumbersView(snap.Seats),
		"total_price":           snap.TotalPrice(),
		"total_price_formatted": model.FormatIDR(snap.TotalPrice()),
	})
}

func seatNumbersView(seats []model.Seat) []string {
	out := make([]string, 0, len(seats))
	for i := range seats {
		out = append(out, seats[i].SeatNumber)
	}
	return out
}
