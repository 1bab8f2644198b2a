package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandukusuma/sendratari-booking/internal/model"
)

func regularTier() model.TicketType {
	return model.TicketType{ID: "tt-reg", Name: "Regular", Price: 150000}
}

func vipTier() model.TicketType {
	return model.TicketType{ID: "tt-vip", Name: "VIP", Price: 350000}
}

func seat(id, number string, tierID string) model.Seat {
	return model.Seat{ID: id, SeatNumber: number, TicketTypeID: tierID, IsAvailable: true}
}

func TestToggleSeat_MembershipAtMostOnce(t *testing.T) {
	s := &BookingSession{}
	a1 := seat("s1", "A1", "tt-reg")
	a2 := seat("s2", "A2", "tt-reg")

	s.ToggleSeat(a1)
	s.ToggleSeat(a2)
	s.ToggleSeat(a1) // toggles a1 back out

	require.Len(t, s.Seats, 1)
	assert.Equal(t, "A2", s.Seats[0].SeatNumber)
	assert.False(t, s.HasSeat("s1"))
	assert.True(t, s.HasSeat("s2"))
}

func TestToggleSeat_DoubleToggleRestoresSelection(t *testing.T) {
	s := &BookingSession{}
	s.ToggleSeat(seat("s1", "A1", "tt-reg"))
	s.ToggleSeat(seat("s2", "A2", "tt-reg"))
	before := s.SeatNumbers()

	extra := seat("s3", "B1", "tt-reg")
	s.ToggleSeat(extra)
	s.ToggleSeat(extra)

	assert.Equal(t, before, s.SeatNumbers())
}

func TestToggleSeat_PreservesInsertionOrder(t *testing.T) {
	s := &BookingSession{}
	s.ToggleSeat(seat("s3", "B1", "tt-reg"))
	s.ToggleSeat(seat("s1", "A1", "tt-reg"))
	s.ToggleSeat(seat("s2", "A2", "tt-reg"))

	assert.Equal(t, []string{"B1", "A1", "A2"}, s.SeatNumbers())
}

func TestTotalPrice_DerivedFromSeatCountAndTierPrice(t *testing.T) {
	s := &BookingSession{}
	assert.Equal(t, int64(0), s.TotalPrice(), "no tier selected")

	s.SelectTicketType(regularTier())
	assert.Equal(t, int64(0), s.TotalPrice(), "no seats selected")

	s.ToggleSeat(seat("s1", "A1", "tt-reg"))
	s.ToggleSeat(seat("s2", "A2", "tt-reg"))
	assert.Equal(t, int64(300000), s.TotalPrice())

	s.ToggleSeat(seat("s2", "A2", "tt-reg"))
	assert.Equal(t, int64(150000), s.TotalPrice(), "total follows every mutation")
}

func TestSelectTicketType_ChangingTierClearsSeats(t *testing.T) {
	s := &BookingSession{}
	s.SelectTicketType(regularTier())
	s.ToggleSeat(seat("s1", "A1", "tt-reg"))
	s.ToggleSeat(seat("s2", "A2", "tt-reg"))

	s.SelectTicketType(vipTier())

	assert.Empty(t, s.Seats, "seats from another tier must not survive a tier change")
	assert.Equal(t, int64(0), s.TotalPrice())
}

func TestSelectTicketType_ReselectingSameTierKeepsSeats(t *testing.T) {
	s := &BookingSession{}
	s.SelectTicketType(regularTier())
	s.ToggleSeat(seat("s1", "A1", "tt-reg"))

	s.SelectTicketType(regularTier())

	assert.Equal(t, []string{"A1"}, s.SeatNumbers())
}

func TestStore_UnknownSessionFailsFast(t *testing.T) {
	st := NewStore(time.Minute)

	_, err := st.Snapshot("nope")
	assert.ErrorIs(t, err, ErrNoSession)

	err = st.ToggleSeat("nope", seat("s1", "A1", "tt-reg"))
	assert.ErrorIs(t, err, ErrNoSession)

	err = st.Clear("nope")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_LifecycleAndClear(t *testing.T) {
	st := NewStore(time.Minute)
	id := st.Create()

	require.NoError(t, st.SelectTicketType(id, regularTier()))
	require.NoError(t, st.ToggleSeat(id, seat("s1", "A1", "tt-reg")))
	require.NoError(t, st.SetContact(id, model.ContactInfo{FullName: "Jane Doe", PhoneNumber: "081234567890"}))
	require.NoError(t, st.StageProof(id, &ProofFile{Name: "proof.png", MIME: "image/png", Size: 3}))

	snap, err := st.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), snap.TotalPrice())
	assert.NotNil(t, snap.Proof)

	require.NoError(t, st.Clear(id))
	snap, err = st.Snapshot(id)
	require.NoError(t, err)
	assert.Nil(t, snap.TicketType)
	assert.Empty(t, snap.Seats)
	assert.Nil(t, snap.Proof)
	assert.Equal(t, model.ContactInfo{}, snap.Contact)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	st := NewStore(time.Minute)
	id := st.Create()
	require.NoError(t, st.SelectTicketType(id, regularTier()))
	require.NoError(t, st.ToggleSeat(id, seat("s1", "A1", "tt-reg")))

	snap, err := st.Snapshot(id)
	require.NoError(t, err)
	snap.Seats[0].SeatNumber = "mutated"

	again, err := st.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, "A1", again.Seats[0].SeatNumber)
}

func TestStore_ExpiredSessionIsGone(t *testing.T) {
	st := NewStore(time.Minute)
	now := time.Now()
	st.now = func() time.Time { return now }
	id := st.Create()

	now = now.Add(2 * time.Minute)
	_, err := st.Snapshot(id)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, st.Exists(id))
}

func TestStore_ActivitySlidesExpiry(t *testing.T) {
	st := NewStore(time.Minute)
	now := time.Now()
	st.now = func() time.Time { return now }
	id := st.Create()

	for i := 0; i < 4; i++ {
		now = now.Add(45 * time.Second)
		require.True(t, st.Exists(id), "touch %d should keep the session alive", i)
	}
}
