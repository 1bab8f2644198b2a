package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/pandukusuma/sendratari-booking/internal/handler"
)

// RegisterRoutes registers routes that live outside the wizard on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterWizard registers the booking wizard endpoints under /v1. Every
// route runs behind the session middleware so handlers always see a live
// session id; mutating routes additionally go through the rate limiter.
// The wizard's four pages map onto the groups below:
//
//	ticket selection – GET /v1/ticket-types, PUT /v1/session/ticket-type
//	booking form     – GET /v1/ticket-types/:id/seats,
//	                   POST /v1/session/seats/:id, PUT /v1/session/contact
//	payment          – POST/DELETE /v1/session/proof, POST /v1/session/submit
//	any page         – GET /v1/session, DELETE /v1/session
func RegisterWizard(e *echo.Echo, t *handler.TicketHandler, s *handler.SeatHandler, f *handler.FormHandler, p *handler.PaymentHandler, sessionMW, limitMW echo.MiddlewareFunc) {
	g := e.Group("/v1", sessionMW)

	// Browse endpoints: cheap, cached, unlimited.
	g.GET("/ticket-types", t.List)
	g.GET("/ticket-types/:id/seats", s.List)
	g.GET("/session", p.GetSession)

	// Mutations: rate limited.
	g.PUT("/session/ticket-type", t.Select, limitMW)
	g.POST("/session/seats/:id", s.Toggle, limitMW)
	g.PUT("/session/contact", f.SetContact, limitMW)
	g.POST("/session/proof", p.UploadProof, limitMW)
	g.DELETE("/session/proof", p.RemoveProof, limitMW)
	g.POST("/session/submit", p.Submit, limitMW)
	g.DELETE("/session", p.ResetSession, limitMW)
}
