package handler

// common.go holds helpers shared by the wizard handlers: resolving the
// request's booking session and the guard responses that send a client
// back to an earlier wizard step when prerequisites are missing.

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pandukusuma/sendratari-booking/internal/middleware"
	"github.com/pandukusuma/sendratari-booking/internal/session"
)

// Wizard step paths clients are redirected to by guards.
const (
	stepLanding = "/"
	stepTickets = "/tickets"
)

// snapshot resolves the request's session and returns a copy of its state.
// A missing or expired session yields ok=false after writing the guard
// response; callers should just return nil in that case.
func snapshot(c echo.Context, store *session.Store) (session.BookingSession, string, bool) {
	sid := middleware.SessionID(c)
	snap, err := store.Snapshot(sid)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			_ = c.JSON(http.StatusConflict, echo.Map{"error": "no active booking session", "redirect": stepLanding})
			return session.BookingSession{}, "", false
		}
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "session error"})
		return session.BookingSession{}, "", false
	}
	return snap, sid, true
}

// redirectTo writes the guard response sending the client back to step.
func redirectTo(c echo.Context, step, msg string) error {
	return c.JSON(http.StatusConflict, echo.Map{"error": msg, "redirect": step})
}
