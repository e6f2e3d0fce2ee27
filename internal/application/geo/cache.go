package geo

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cachePrefix = "geocode:"

// Cache is a short-lived Redis cache in front of the geocoding upstream.
// Best-effort: any Redis failure falls through to the upstream call.
type Cache struct {
	Rdb *redis.Client
	TTL time.Duration
}

func cacheKey(loc Location) string {
	return cachePrefix + strings.ToLower(loc.Country+"|"+loc.Region+"|"+loc.City)
}

func (c *Cache) Get(ctx context.Context, loc Location) *Coordinates {
	if c == nil || c.Rdb == nil {
		return nil
	}
	b, err := c.Rdb.Get(ctx, cacheKey(loc)).Bytes()
	if err != nil {
		return nil
	}
	var coords Coordinates
	if err := json.Unmarshal(b, &coords); err != nil {
		return nil
	}
	return &coords
}

func (c *Cache) Set(ctx context.Context, loc Location, coords Coordinates) {
	if c == nil || c.Rdb == nil {
		return
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	b, _ := json.Marshal(coords)
	if err := c.Rdb.Set(ctx, cacheKey(loc), b, ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("geocode cache write failed")
	}
}
