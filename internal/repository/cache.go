package repository

// cache.go wraps the tier and seat repositories with a Redis read-through
// cache. The tier list changes only when staff reprice the show, so it gets
// a longer TTL; seat availability changes on every submission, so seat lists
// get a short TTL and are additionally invalidated when seats are booked.
// A nil Redis client or a disabled config turns both wrappers into plain
// pass-throughs, mirroring how the rest of the application degrades when
// Redis is unreachable.

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/pandukusuma/sendratari-booking/internal/config"
	"github.com/pandukusuma/sendratari-booking/internal/model"
)

// tierSource and seatSource are the database-backed halves the cache
// wrappers fall back to on a miss.
type tierSource interface {
	ListAll(ctx context.Context) ([]model.TicketType, error)
}

type seatSource interface {
	ListByTicketType(ctx context.Context, ticketTypeID string) ([]model.Seat, error)
	GetByID(ctx context.Context, id string) (*model.Seat, error)
	MarkUnavailable(ctx context.Context, ticketTypeID string, ids []string) error
}

// CachedTicketTypeRepo serves the tier list from Redis when possible.
type CachedTicketTypeRepo struct {
	repo tierSource
	rdb  *redis.Client
	cfg  config.CacheConfig
}

// NewCachedTicketTypeRepo wraps repo with the cache described by cfg.
func NewCachedTicketTypeRepo(repo tierSource, rdb *redis.Client, cfg config.CacheConfig) *CachedTicketTypeRepo {
	return &CachedTicketTypeRepo{repo: repo, rdb: rdb, cfg: cfg}
}

func (r *CachedTicketTypeRepo) enabled() bool { return r.cfg.Enabled && r.rdb != nil }

func (r *CachedTicketTypeRepo) key() string { return r.cfg.Prefix + ":ticket_types" }

// ListAll returns the cached tier list, falling back to the database on a
// miss. Cache failures are logged and never surfaced to callers.
func (r *CachedTicketTypeRepo) ListAll(ctx context.Context) ([]model.TicketType, error) {
	if r.enabled() {
		if bs, err := r.rdb.Get(ctx, r.key()).Bytes(); err == nil {
			var tiers []model.TicketType
			if json.Unmarshal(bs, &tiers) == nil {
				return tiers, nil
			}
		}
	}
	tiers, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if r.enabled() {
		if bs, err := json.Marshal(tiers); err == nil {
			if err := r.rdb.Set(ctx, r.key(), bs, r.cfg.TierTTL).Err(); err != nil {
				log.Printf("cache: store ticket types failed: %v", err)
			}
		}
	}
	return tiers, nil
}

// GetByID is served from the cached list when present so that tier
// selection does not race a repriced list.
func (r *CachedTicketTypeRepo) GetByID(ctx context.Context, id string) (*model.TicketType, error) {
	tiers, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tiers {
		if tiers[i].ID == id {
			return &tiers[i], nil
		}
	}
	return nil, ErrTicketTypeNotFound
}

// CachedSeatRepo serves per-tier seat lists from Redis when possible.
type CachedSeatRepo struct {
	repo seatSource
	rdb  *redis.Client
	cfg  config.CacheConfig
}

// NewCachedSeatRepo wraps repo with the cache described by cfg.
func NewCachedSeatRepo(repo seatSource, rdb *redis.Client, cfg config.CacheConfig) *CachedSeatRepo {
	return &CachedSeatRepo{repo: repo, rdb: rdb, cfg: cfg}
}

func (r *CachedSeatRepo) enabled() bool { return r.cfg.Enabled && r.rdb != nil }

func (r *CachedSeatRepo) key(ticketTypeID string) string {
	return r.cfg.Prefix + ":seats:" + ticketTypeID
}

// ListByTicketType returns the cached seat list for a tier, falling back to
// the database on a miss.
func (r *CachedSeatRepo) ListByTicketType(ctx context.Context, ticketTypeID string) ([]model.Seat, error) {
	if r.enabled() {
		if bs, err := r.rdb.Get(ctx, r.key(ticketTypeID)).Bytes(); err == nil {
			var seats []model.Seat
			if json.Unmarshal(bs, &seats) == nil {
				return seats, nil
			}
		}
	}
	seats, err := r.repo.ListByTicketType(ctx, ticketTypeID)
	if err != nil {
		return nil, err
	}
	if r.enabled() {
		if bs, err := json.Marshal(seats); err == nil {
			if err := r.rdb.Set(ctx, r.key(ticketTypeID), bs, r.cfg.SeatTTL).Err(); err != nil {
				log.Printf("cache: store seats failed: %v", err)
			}
		}
	}
	return seats, nil
}

// GetByID always hits the database: seat toggles must see the freshest
// availability the backend can offer.
func (r *CachedSeatRepo) GetByID(ctx context.Context, id string) (*model.Seat, error) {
	return r.repo.GetByID(ctx, id)
}

// MarkUnavailable books the seats and drops the tier's cached seat list so
// the next seat-map fetch reflects the new availability.
func (r *CachedSeatRepo) MarkUnavailable(ctx context.Context, ticketTypeID string, ids []string) error {
	if err := r.repo.MarkUnavailable(ctx, ticketTypeID, ids); err != nil {
		return err
	}
	if r.enabled() {
		if err := r.rdb.Del(ctx, r.key(ticketTypeID)).Err(); err != nil {
			log.Printf("cache: invalidate seats for tier %s failed: %v", ticketTypeID, err)
		}
	}
	return nil
}
