package geo

import (
	"context"

	"easybazar-backend/internal/pkg/apperr"

	"github.com/rs/zerolog/log"
)

// Resolver produces authoritative coordinates for a listing location. Either
// the client supplied both coordinates (trusted as-is, no lookup) or the full
// country/region/city triple is geocoded with a single upstream call.
type Resolver struct {
	Geocoder Geocoder
	Cache    *Cache // optional; nil disables caching
}

// Resolve applies the override path first: when both lat and lon are present
// they win and no external call happens. Otherwise all three location fields
// must be non-empty.
func (r *Resolver) Resolve(ctx context.Context, loc Location, lat, lon *float64) (Coordinates, error) {
	if lat != nil && lon != nil {
		return Coordinates{Latitude: *lat, Longitude: *lon}, nil
	}
	if loc.Country == "" || loc.Region == "" || loc.City == "" {
		return Coordinates{}, apperr.Validation("Missing country/region/city for geocoding")
	}

	if cached := r.Cache.Get(ctx, loc); cached != nil {
		return *cached, nil
	}

	coords, err := r.Geocoder.Geocode(ctx, loc)
	if err != nil {
		log.Warn().Err(err).Str("country", loc.Country).Str("region", loc.Region).Str("city", loc.City).Msg("geocoding failed")
		return Coordinates{}, apperr.Upstream("Geocoding failed", err)
	}

	r.Cache.Set(ctx, loc, *coords)
	return *coords, nil
}

// Merge overlays the non-empty fields of patch on top of current. Partial
// location edits must geocode the merged view, never the patch alone.
func Merge(current Location, patch Location) Location {
	out := current
	if patch.Country != "" {
		out.Country = patch.Country
	}
	if patch.Region != "" {
		out.Region = patch.Region
	}
	if patch.City != "" {
		out.City = patch.City
	}
	return out
}
