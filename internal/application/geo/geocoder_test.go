package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimClient_Geocode(t *testing.T) {
	var gotQuery map[string]string
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"format":       q.Get("format"),
			"limit":        q.Get("limit"),
			"countrycodes": q.Get("countrycodes"),
			"city":         q.Get("city"),
			"state":        q.Get("state"),
		}
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"52.2297","lon":"21.0122"}]`))
	}))
	defer srv.Close()

	client := &NominatimClient{BaseURL: srv.URL, Contact: "ops@example.com"}
	coords, err := client.Geocode(context.Background(), Location{Country: "PL", Region: "Mazowieckie", City: "Warszawa"})
	require.NoError(t, err)
	assert.InDelta(t, 52.2297, coords.Latitude, 0.0001)
	assert.InDelta(t, 21.0122, coords.Longitude, 0.0001)

	assert.Equal(t, "json", gotQuery["format"])
	assert.Equal(t, "1", gotQuery["limit"])
	assert.Equal(t, "pl", gotQuery["countrycodes"])
	assert.Equal(t, "Warszawa", gotQuery["city"])
	assert.Equal(t, "Mazowieckie", gotQuery["state"])
	assert.Contains(t, gotUserAgent, "ops@example.com")
}

func TestNominatimClient_ConcurrentColdCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"52.2297","lon":"21.0122"}]`))
	}))
	defer srv.Close()

	// one shared client with no http.Client configured yet
	client := &NominatimClient{BaseURL: srv.URL, Contact: "ops@example.com"}
	loc := Location{Country: "PL", Region: "Mazowieckie", City: "Warszawa"}

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Geocode(context.Background(), loc)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestNominatimClient_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := &NominatimClient{BaseURL: srv.URL, Contact: "ops@example.com"}
	_, err := client.Geocode(context.Background(), Location{Country: "PL", Region: "Nowhere", City: "Atlantis"})
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestNominatimClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := &NominatimClient{BaseURL: srv.URL, Contact: "ops@example.com"}
	_, err := client.Geocode(context.Background(), Location{Country: "PL", Region: "Mazowieckie", City: "Warszawa"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
}

func TestNominatimClient_BadCoordinatePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"21.0"}]`))
	}))
	defer srv.Close()

	client := &NominatimClient{BaseURL: srv.URL, Contact: "ops@example.com"}
	_, err := client.Geocode(context.Background(), Location{Country: "PL", Region: "Mazowieckie", City: "Warszawa"})
	require.Error(t, err)
}
