package handler

// ticket.go implements the ticket selection step: listing tiers ordered by
// descending price and storing the visitor's choice in the session.

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pandukusuma/sendratari-booking/internal/model"
	"github.com/pandukusuma/sendratari-booking/internal/repository"
	"github.com/pandukusuma/sendratari-booking/internal/session"
)

// TicketHandler serves the ticket selection step.
type TicketHandler struct {
	Tiers    TicketTypeStore
	Sessions *session.Store
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(tiers TicketTypeStore, sessions *session.Store) *TicketHandler {
	if tiers == nil || sessions == nil {
		panic("nil dependency passed to NewTicketHandler")
	}
	return &TicketHandler{Tiers: tiers, Sessions: sessions}
}

// TicketTypeView is a tier as rendered on the selection cards.
type TicketTypeView struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Price          int64    `json:"price"`
	PriceFormatted string   `json:"price_formatted"`
	Benefits       []string `json:"benefits"`
	Color          string   `json:"color"`
}

func tierView(t model.TicketType) TicketTypeView {
	return TicketTypeView{
		ID:             t.ID,
		Name:           t.Name,
		Price:          t.Price,
		PriceFormatted: model.FormatIDR(t.Price),
		Benefits:       t.Benefits,
		Color:          t.Color,
	}
}

// List handles GET /v1/ticket-types. A gateway failure is surfaced as an
// explicit error state rather than an empty list, so clients can tell
// "nothing on sale" apart from "backend down".
func (h *TicketHandler) List(c echo.Context) error {
	tiers, err := h.Tiers.ListAll(c.Request().Context())
	if err != nil {
		log.Printf("ticket-types: list failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load ticket types"})
	}
	out := make([]TicketTypeView, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, tierView(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Select handles PUT /v1/session/ticket-type. Choosing a different tier
// than before clears any seats picked under the previous tier.
func (h *TicketHandler) Select(c echo.Context) error {
	_, sid, ok := snapshot(c, h.Sessions)
	if !ok {
		return nil
	}
	var body struct {
		TicketTypeID string `json:"ticket_type_id"`
	}
	if err := c.Bind(&body); err != nil || body.TicketTypeID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_type_id is required"})
	}
	tier, err := h.Tiers.GetByID(c.Request().Context(), body.TicketTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket type not found"})
		}
		log.Printf("ticket-types: get %s failed: %v", body.TicketTypeID, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load ticket types"})
	}
	if err := h.Sessions.SelectTicketType(sid, *tier); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no active booking session", "redirect": stepLanding})
	}
	return c.JSON(http.StatusOK, echo.Map{"ticket_type": tierView(*tier), "next": "/booking"})
}
