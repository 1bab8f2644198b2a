package handler

// contact.go implements the booking form step: validating the visitor's
// contact details and deciding whether the wizard may advance to payment.

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pandukusuma/sendratari-booking/internal/booking"
	"github.com/pandukusuma/sendratari-booking/internal/model"
	"github.com/pandukusuma/sendratari-booking/internal/session"
)

// FormHandler serves the booking form step.
type FormHandler struct {
	Sessions *session.Store
}

// NewFormHandler constructs a FormHandler.
func NewFormHandler(sessions *session.Store) *FormHandler {
	if sessions == nil {
		panic("nil session store passed to NewFormHandler")
	}
	return &FormHandler{Sessions: sessions}
}

// SetContact handles PUT /v1/session/contact.
//
// Guard: a session without a selected tier is sent back to ticket
// selection; the form never renders in that state. Validation errors are
// keyed per field and reject the payload without touching the stored
// contact, so a typo never destroys previously accepted details. Passing
// validation stores the contact; the wizard advances only when at least
// one seat is selected as well.
func (h *FormHandler) SetContact(c echo.Context) error {
	snap, sid, ok := snapshot(c, h.Sessions)
	if !ok {
		return nil
	}
	if snap.TicketType == nil {
		return redirectTo(c, stepTickets, "no ticket type selected")
	}

	var body model.ContactInfo
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := booking.ValidateContact(body); len(errs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": errs})
	}
	if err := h.Sessions.SetContact(sid, body); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no active booking session", "redirect": stepLanding})
	}
	if len(snap.Seats) == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "please select at least one seat"})
	}
	return c.JSON(http.StatusOK, echo.Map{"next": "/payment"})
}
