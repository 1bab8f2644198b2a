package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pandukusuma/sendratari-booking/internal/session"
)

// CookieName is the cookie carrying the signed booking session token.
const CookieName = "booking_session"

const sessionKey = "session_id"

// EnsureSession returns an Echo middleware that binds every request to a
// live booking session. A valid cookie referring to a live session is
// reused; anything else (no cookie, tampered token, expired session) gets a
// fresh empty session and a new cookie. Handlers read the resolved id via
// SessionID.
func EnsureSession(store *session.Store, secret string, ttlMin int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(CookieName); err == nil {
				if sid, err := session.ParseToken(secret, cookie.Value); err == nil && store.Exists(sid) {
					c.Set(sessionKey, sid)
					return next(c)
				}
			}

			sid := store.Create()
			tok, err := session.NewToken(secret, sid, ttlMin)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start session"})
			}
			c.SetCookie(&http.Cookie{
				Name:     CookieName,
				Value:    tok.Value,
				Path:     "/",
				Expires:  tok.Exp,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(sessionKey, sid)
			return next(c)
		}
	}
}

// SessionID extracts the session id resolved by EnsureSession. It returns
// an empty string when the middleware did not run, which handlers surface
// as a missing session.
func SessionID(c echo.Context) string {
	if v, ok := c.Get(sessionKey).(string); ok {
		return v
	}
	return ""
}
