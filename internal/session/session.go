// Package session holds the in-progress booking state for one wizard
// traversal. A session is created empty when a visitor first touches the
// wizard, mutated by each step, and fully cleared after a successful
// submission or an explicit restart.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pandukusuma/sendratari-booking/internal/model"
)

// ErrNoSession is returned when a caller presents a session id that is
// unknown or has expired. Handlers treat it as "start over".
var ErrNoSession = errors.New("no active booking session")

// ProofFile is a staged payment proof waiting for submission. Preview is a
// base64 data URL derived for image types; it is cosmetic and may be empty.
type ProofFile struct {
	Name    string
	MIME    string
	Size    int64
	Data    []byte
	Preview string
}

// BookingSession aggregates everything collected across the wizard steps.
// The zero value is a valid empty session. Methods are not safe for
// concurrent use; Store serializes access.
type BookingSession struct {
	TicketType *model.TicketType
	Seats      []model.Seat // unique by id, insertion order preserved
	Contact    model.ContactInfo
	Proof      *ProofFile
}

// TotalPrice is always derived from its inputs, never stored, so it cannot
// drift from the seat count or the tier price.
func (s *BookingSession) TotalPrice() int64 {
	if s.TicketType == nil {
		return 0
	}
	return int64(len(s.Seats)) * s.TicketType.Price
}

// SelectTicketType stores the chosen tier. Choosing a different tier clears
// the seat selection: seats belong to exactly one tier, so a selection made
// under another tier would reference seats outside the current context.
// Re-selecting the same tier keeps the seats.
func (s *BookingSession) SelectTicketType(t model.TicketType) {
	if s.TicketType == nil || s.TicketType.ID != t.ID {
		s.Seats = nil
	}
	s.TicketType = &t
}

// ToggleSeat flips the seat's membership in the selection: present seats
// are removed by id, absent seats are appended. Toggling the same seat
// twice therefore restores the selection exactly.
func (s *BookingSession) ToggleSeat(seat model.Seat) {
	for i := range s.Seats {
		if s.Seats[i].ID == seat.ID {
			s.Seats = append(s.Seats[:i], s.Seats[i+1:]...)
			return
		}
	}
	s.Seats = append(s.Seats, seat)
}

// HasSeat reports whether the seat id is part of the current selection.
func (s *BookingSession) HasSeat(id string) bool {
	for i := range s.Seats {
		if s.Seats[i].ID == id {
			return true
		}
	}
	return false
}

// SeatNumbers returns the display labels of the selection in order.
func (s *BookingSession) SeatNumbers() []string {
	out := make([]string, 0, len(s.Seats))
	for i := range s.Seats {
		out = append(out, s.Seats[i].SeatNumber)
	}
	return out
}

// BookedSeats returns the snapshot shape stored inside a booking record.
func (s *BookingSession) BookedSeats() []model.BookedSeat {
	out := make([]model.BookedSeat, 0, len(s.Seats))
	for i := range s.Seats {
		out = append(out, model.BookedSeat{ID: s.Seats[i].ID, SeatNumber: s.Seats[i].SeatNumber})
	}
	return out
}

type entry struct {
	sess      *BookingSession
	expiresAt time.Time
}

// Store keeps every live booking session in memory, keyed by session id.
// There is exactly one session per visitor cookie; the TTL slides on every
// touch so an active visitor is never cut off mid-wizard.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
	now     func() time.Time // test hook
}

// NewStore returns an empty store whose sessions expire after ttl of
// inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Create registers a fresh empty session and returns its id.
func (st *Store) Create() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	id := uuid.NewString()
	st.entries[id] = &entry{sess: &BookingSession{}, expiresAt: st.now().Add(st.ttl)}
	return id
}

// Exists reports whether the id refers to a live session.
func (st *Store) Exists(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, err := st.get(id)
	return err == nil
}

// Snapshot returns a copy of the session's current state. The seat slice is
// copied so callers cannot mutate the store through it.
func (st *Store) Snapshot(id string) (BookingSession, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, err := st.get(id)
	if err != nil {
		return BookingSession{}, err
	}
	snap := *e.sess
	snap.Seats = append([]model.Seat(nil), e.sess.Seats...)
	return snap, nil
}

// SelectTicketType applies BookingSession.SelectTicketType under the lock.
func (st *Store) SelectTicketType(id string, t model.TicketType) error {
	return st.mutate(id, func(s *BookingSession) { s.SelectTicketType(t) })
}

// ToggleSeat applies BookingSession.ToggleSeat under the lock.
func (st *Store) ToggleSeat(id string, seat model.Seat) error {
	return st.mutate(id, func(s *BookingSession) { s.ToggleSeat(seat) })
}

// SetContact stores validated contact details.
func (st *Store) SetContact(id string, c model.ContactInfo) error {
	return st.mutate(id, func(s *BookingSession) { s.Contact = c })
}

// StageProof stores an accepted payment proof, replacing any previous one.
func (st *Store) StageProof(id string, p *ProofFile) error {
	return st.mutate(id, func(s *BookingSession) { s.Proof = p })
}

// RemoveProof clears the staged proof and its preview.
func (st *Store) RemoveProof(id string) error {
	return st.mutate(id, func(s *BookingSession) { s.Proof = nil })
}

// Clear resets the session to empty while keeping it alive. Used after a
// successful submission and by the explicit "book another" action.
func (st *Store) Clear(id string) error {
	return st.mutate(id, func(s *BookingSession) { *s = BookingSession{} })
}

// mutate runs fn against the live session, extending its lifetime.
func (st *Store) mutate(id string, fn func(*BookingSession)) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, err := st.get(id)
	if err != nil {
		return err
	}
	fn(e.sess)
	return nil
}

// get looks up a live entry, evicting it when expired. Callers must hold
// the lock. Every successful lookup slides the expiry forward.
func (st *Store) get(id string) (*entry, error) {
	e, ok := st.entries[id]
	if !ok {
		return nil, ErrNoSession
	}
	if st.now().After(e.expiresAt) {
		delete(st.entries, id)
		return nil, ErrNoSession
	}
	e.expiresAt = st.now().Add(st.ttl)
	return e, nil
}
