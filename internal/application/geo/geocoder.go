package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNoMatch is returned when the upstream finds no result for the location.
var ErrNoMatch = errors.New("Location not found")

// Location is the free-text descriptor submitted with a listing.
type Location struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	City    string `json:"city"`
}

// Coordinates is the resolved latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder turns a location descriptor into coordinates. One call, best match.
type Geocoder interface {
	Geocode(ctx context.Context, loc Location) (*Coordinates, error)
}

// NominatimClient is a Geocoder backed by the Nominatim search API.
type NominatimClient struct {
	BaseURL string
	Contact string // Nominatim requires client identification in User-Agent
	Client  *http.Client
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (n *NominatimClient) Geocode(ctx context.Context, loc Location) (*Coordinates, error) {
	// no receiver mutation: the client is shared across requests
	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	base := strings.TrimRight(n.BaseURL, "/")

	q := url.Values{}
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", "1")
	q.Set("countrycodes", strings.ToLower(loc.Country))
	q.Set("city", loc.City)
	q.Set("state", loc.Region)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "EasyBazar/1.0 ("+n.Contact+")")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("nominatim: status %d body: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("nominatim response decode: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: bad latitude %q", results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: bad longitude %q", results[0].Lon)
	}
	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
