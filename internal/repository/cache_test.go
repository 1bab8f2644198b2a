package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandukusuma/sendratari-booking/internal/config"
	"github.com/pandukusuma/sendratari-booking/internal/model"
)

type fakeTierSource struct {
	tiers []model.TicketType
	err   error
	calls int
}

func (f *fakeTierSource) ListAll(ctx context.Context) ([]model.TicketType, error) {
	f.calls++
	return f.tiers, f.err
}

type fakeSeatSource struct {
	seats     []model.Seat
	listCalls int
	marked    [][]string
}

func (f *fakeSeatSource) ListByTicketType(ctx context.Context, ticketTypeID string) ([]model.Seat, error) {
	f.listCalls++
	return f.seats, nil
}

func (f *fakeSeatSource) GetByID(ctx context.Context, id string) (*model.Seat, error) {
	for i := range f.seats {
		if f.seats[i].ID == id {
			return &f.seats[i], nil
		}
	}
	return nil, ErrSeatNotFound
}

func (f *fakeSeatSource) MarkUnavailable(ctx context.Context, ticketTypeID string, ids []string) error {
	f.marked = append(f.marked, ids)
	return nil
}

func cacheCfg() config.CacheConfig {
	return config.CacheConfig{Enabled: true, Prefix: "sb", TierTTL: 5 * time.Minute, SeatTTL: 15 * time.Second}
}

var cachedTiers = []model.TicketType{
	{ID: "tt-vip", Name: "VIP", Price: 150000},
	{ID: "tt-reg", Name: "Regular", Price: 75000},
}

func TestCachedTierListMissFillsCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	src := &fakeTierSource{tiers: cachedTiers}
	bs, err := json.Marshal(cachedTiers)
	require.NoError(t, err)
	mock.ExpectGet("sb:ticket_types").RedisNil()
	mock.ExpectSet("sb:ticket_types", bs, 5*time.Minute).SetVal("OK")

	repo := NewCachedTicketTypeRepo(src, rdb, cacheCfg())
	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cachedTiers, got)
	assert.Equal(t, 1, src.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedTierListHitSkipsDatabase(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	src := &fakeTierSource{tiers: cachedTiers}
	bs, err := json.Marshal(cachedTiers)
	require.NoError(t, err)
	mock.ExpectGet("sb:ticket_types").SetVal(string(bs))

	repo := NewCachedTicketTypeRepo(src, rdb, cacheCfg())
	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cachedTiers, got)
	assert.Zero(t, src.calls)
}

func TestCachedTierGetByIDServedFromList(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	src := &fakeTierSource{tiers: cachedTiers}
	bs, err := json.Marshal(cachedTiers)
	require.NoError(t, err)
	mock.ExpectGet("sb:ticket_types").SetVal(string(bs))
	mock.ExpectGet("sb:ticket_types").SetVal(string(bs))

	repo := NewCachedTicketTypeRepo(src, rdb, cacheCfg())

	tier, err := repo.GetByID(context.Background(), "tt-reg")
	require.NoError(t, err)
	assert.Equal(t, "Regular", tier.Name)

	_, err = repo.GetByID(context.Background(), "tt-missing")
	assert.ErrorIs(t, err, ErrTicketTypeNotFound)
}

func TestCachedTierListStoreFailureIsTolerated(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	src := &fakeTierSource{tiers: cachedTiers}
	bs, err := json.Marshal(cachedTiers)
	require.NoError(t, err)
	mock.ExpectGet("sb:ticket_types").RedisNil()
	mock.ExpectSet("sb:ticket_types", bs, 5*time.Minute).SetErr(errors.New("redis down"))

	repo := NewCachedTicketTypeRepo(src, rdb, cacheCfg())
	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cachedTiers, got)
}

func TestCachedSeatListReadThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	seats := []model.Seat{
		{ID: "s1", SeatNumber: "A1", TicketTypeID: "tt-vip", Row: "A", Position: 1, IsAvailable: true},
		{ID: "s2", SeatNumber: "A2", TicketTypeID: "tt-vip", Row: "A", Position: 2, IsAvailable: true},
	}
	src := &fakeSeatSource{seats: seats}
	bs, err := json.Marshal(seats)
	require.NoError(t, err)
	mock.ExpectGet("sb:seats:tt-vip").RedisNil()
	mock.ExpectSet("sb:seats:tt-vip", bs, 15*time.Second).SetVal("OK")
	mock.ExpectGet("sb:seats:tt-vip").SetVal(string(bs))

	repo := NewCachedSeatRepo(src, rdb, cacheCfg())

	got, err := repo.ListByTicketType(context.Background(), "tt-vip")
	require.NoError(t, err)
	assert.Equal(t, seats, got)
	assert.Equal(t, 1, src.listCalls)

	// Second fetch is a hit and never reaches the database.
	got, err = repo.ListByTicketType(context.Background(), "tt-vip")
	require.NoError(t, err)
	assert.Equal(t, seats, got)
	assert.Equal(t, 1, src.listCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedSeatMarkUnavailableInvalidates(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	src := &fakeSeatSource{}
	mock.ExpectDel("sb:seats:tt-vip").SetVal(1)

	repo := NewCachedSeatRepo(src, rdb, cacheCfg())
	err := repo.MarkUnavailable(context.Background(), "tt-vip", []string{"s1", "s2"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"s1", "s2"}}, src.marked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedSeatGetByIDAlwaysHitsDatabase(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	src := &fakeSeatSource{seats: []model.Seat{
		{ID: "s1", SeatNumber: "A1", TicketTypeID: "tt-vip", IsAvailable: true},
	}}

	repo := NewCachedSeatRepo(src, rdb, cacheCfg())
	seat, err := repo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "A1", seat.SeatNumber)
}

func TestCacheDisabledIsPassThrough(t *testing.T) {
	cfg := cacheCfg()
	cfg.Enabled = false
	src := &fakeTierSource{tiers: cachedTiers}

	repo := NewCachedTicketTypeRepo(src, nil, cfg)
	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cachedTiers, got)
	assert.Equal(t, 1, src.calls)
}
