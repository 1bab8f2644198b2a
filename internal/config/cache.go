package config

import "time"

// CacheConfig defines settings for the read-through cache in front of the
// ticket tier and seat stores. When Enabled is false or no Redis client is
// configured, lookups always hit the database. TierTTL covers the tier list,
// which changes rarely; SeatTTL covers per-tier seat availability, which is
// additionally invalidated whenever seats are booked.
type CacheConfig struct {
	Enabled bool
	Prefix  string
	TierTTL time.Duration
	SeatTTL time.Duration
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
		TierTTL: envDur("CACHE_TIER_TTL", 5*time.Minute),
		SeatTTL: envDur("CACHE_SEAT_TTL", 15*time.Second),
	}
}
