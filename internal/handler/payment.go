package handler

// payment.go implements the payment step: staging the payment proof,
// submitting the booking and exposing/resetting the session itself.

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pandukusuma/sendratari-booking/internal/booking"
	"github.com/pandukusuma/sendratari-booking/internal/model"
	"github.com/pandukusuma/sendratari-booking/internal/queue"
	"github.com/pandukusuma/sendratari-booking/internal/session"
)

// PaymentHandler serves the payment step and the session endpoints.
type PaymentHandler struct {
	Sessions *session.Store
	Seats    SeatStore
	Bookings BookingStore
	Proofs   ProofStore
	Publish  PublishFunc // optional; nil disables event publishing
}

// NewPaymentHandler constructs a PaymentHandler. Publish may be nil.
func NewPaymentHandler(sessions *session.Store, seats SeatStore, bookings BookingStore, proofs ProofStore, publish PublishFunc) *PaymentHandler {
	if sessions == nil || seats == nil || bookings == nil || proofs == nil {
		panic("nil dependency passed to NewPaymentHandler")
	}
	return &PaymentHandler{Sessions: sessions, Seats: seats, Bookings: bookings, Proofs: proofs, Publish: publish}
}

// ProofView describes the staged proof file as shown on the payment page.
type ProofView struct {
	Name    string `json:"name"`
	MIME    string `json:"mime"`
	Size    int64  `json:"size"`
	Preview string `json:"preview,omitempty"`
}

// GetSession handles GET /v1/session: the full wizard state a page needs
// to render, with the total derived on read.
func (h *PaymentHandler) GetSession(c echo.Context) error {
	snap, _, ok := snapshot(c, h.Sessions)
	if !ok {
		return nil
	}
	resp := echo.Map{
		"contact":               snap.Contact,
		"selected_seats":        seatNumbersView(snap.Seats),
		"total_price":           snap.TotalPrice(),
		"total_price_formatted": model.FormatIDR(snap.TotalPrice()),
	}
	if snap.TicketType != nil {
		resp["ticket_type"] = tierView(*snap.TicketType)
	}
	if snap.Proof != nil {
		resp["payment_proof"] = ProofView{
			Name: snap.Proof.Name, MIME: snap.Proof.MIME, Size: snap.Proof.Size, Preview: snap.Proof.Preview,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// ResetSession handles DELETE /v1/session, the explicit "book another
// ticket" action. The session survives but is emptied.
func (h *PaymentHandler) ResetSession(c echo.Context) error {
	_, sid, ok := snapshot(c, h.Sessions)
	if !ok {
		return nil
	}
	if err := h.Sessions.Clear(sid); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no active booking session", "redirect": stepLanding})
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadProof handles POST /v1/session/proof (multipart field "file").
// The content type is checked before the size so a 100 MB zip reports the
// type problem. Image uploads get a data-URL preview; failing to derive
// one never blocks acceptance.
func (h *PaymentHandler) UploadProof(c echo.Context) error {
	snap, sid, ok := snapshot(c, h.Sessions)
	if !ok {
		return nil
	}
	if snap.TicketType == nil || len(snap.Seats) == 0 {
		return redirectTo(c, stepTickets, "nothing to pay for yet")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	mime := fh.Header.Get("Content-Type")
	if err := booking.ValidateProof(mime, fh.Size); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read file"})
	}
	defer src.Close()
	// Size was validated from the multipart header; the limit guards
	// against a part that lies about its size.
	data, err := io.ReadAll(io.LimitReader(src, booking.MaxProofSize+1))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read file"})
	}
	if int64(len(data)) > booking.MaxProofSize {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": booking.ErrProofTooLarge.Error()})
	}

	proof := &session.ProofFile{
		Name:    fh.Filename,
		MIME:    mime,
		Size:    int64(len(data)),
		Data:    data,
		Preview: booking.Preview(mime, data),
	}
	if err := h.Sessions.StageProof(sid, proof); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no active booking session", "redirect": stepLanding})
	}
	return c.JSON(http.StatusCreated, echo.Map{"file": ProofView{
		Name: proof.Name, MIME: proof.MIME, Size: proof.Size, Preview: proof.Preview,
	}})
}

// RemoveProof handles DELETE /v1/session/proof, clearing the staged file
// and its preview together.
func (h *PaymentHandler) RemoveProof(c echo.Context) error {
	_, sid, ok := snapshot(c, h.Sessions)
	if !ok {
		return nil
	}
	if err := h.Sessions.RemoveProof(sid); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no active booking session", "redirect": stepLanding})
	}
	return c.NoContent(http.StatusNoContent)
}

// Submit handles POST /v1/session/submit.
//
// Guard: without a tier and at least one seat there is nothing to submit;
// the client is sent back to ticket selection. A missing proof blocks
// submission before any backend call is made. The steps then run in order:
// upload the proof, resolve its public URL, insert the booking record,
// mark the seats unavailable. A failing upload is a hard stop. Any failure
// answers with one generic message and leaves the session intact so the
// visitor can retry; nothing is rolled back, so a booking whose seat
// update failed can exist with its seats still marked available until
// staff reconcile it.
func (h *PaymentHandler) Submit(c echo.Context) error {
	snap, sid, ok := snapshot(c, h.Sessions)
	if !ok {
		return nil
	}
	if snap.TicketType == nil || len(snap.Seats) == 0 {
		return redirectTo(c, stepTickets, "nothing to pay for yet")
	}
	if snap.Proof == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Please upload payment proof"})
	}

	ctx := c.Request().Context()

	path, err := proofObjectPath(snap.Proof.Name)
	if err != nil {
		log.Printf("submit: generate proof path failed: %v", err)
		return submitFailed(c)
	}
	if err := h.Proofs.Save(ctx, path, snap.Proof.Data); err != nil {
		log.Printf("submit: upload proof failed: %v", err)
		return submitFailed(c)
	}
	proofURL := h.Proofs.PublicURL(path)

	record := &model.Booking{
		FullName:        snap.Contact.FullName,
		PhoneNumber:     snap.Contact.PhoneNumber,
		Seats:           snap.BookedSeats(),
		TicketTypeID:    snap.TicketType.ID,
		TotalPrice:      snap.TotalPrice(),
		PaymentProofURL: proofURL,
		Status:          model.StatusPending,
	}
	if err := h.Bookings.Insert(ctx, record); err != nil {
		log.Printf("submit: insert booking failed: %v", err)
		return submitFailed(c)
	}

	seatIDs := make([]string, 0, len(snap.Seats))
	for i := range snap.Seats {
		seatIDs = append(seatIDs, snap.Seats[i].ID)
	}
	if err := h.Seats.MarkUnavailable(ctx, snap.TicketType.ID, seatIDs); err != nil {
		log.Printf("submit: mark seats unavailable failed (booking %s): %v", record.ID, err)
		return submitFailed(c)
	}

	if h.Publish != nil {
		ev := queue.BookingSubmittedEvent{
			BookingID:      record.ID,
			FullName:       record.FullName,
			PhoneNumber:    record.PhoneNumber,
			TicketTypeID:   record.TicketTypeID,
			TicketTypeName: snap.TicketType.Name,
			SeatNumbers:    snap.SeatNumbers(),
			TotalPrice:     record.TotalPrice,
			SubmittedAt:    record.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("submit: publish booking.submitted failed (booking %s): %v", record.ID, err)
		}
	}

	// The wizard is complete; the confirmation below is the last the
	// session's data is seen before it is cleared.
	if err := h.Sessions.Clear(sid); err != nil {
		log.Printf("submit: clear session failed: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":            record.ID,
		"full_name":             record.FullName,
		"phone_number":          record.PhoneNumber,
		"ticket_type":           snap.TicketType.Name,
		"seats":                 snap.SeatNumbers(),
		"total_price":           record.TotalPrice,
		"total_price_formatted": model.FormatIDR(record.TotalPrice),
		"status":                record.Status,
	})
}

func submitFailed(c echo.Context) error {
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "Failed to submit booking. Please try again."})
}

// proofObjectPath builds a unique object path for an uploaded proof from
// the current time and a random suffix, preserving the original extension.
func proofObjectPath(filename string) (string, error) {
	suffix, err := randomHex(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("payment-proofs/%d-%s%s", time.Now().UnixMilli(), suffix, filepath.Ext(filename)), nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
