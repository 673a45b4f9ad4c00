package directions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const geocodeOKBody = `{
	"status": "OK",
	"results": [{
		"geometry": {"location": {"lat": 32.0853, "lng": 34.7818}},
		"formatted_address": "Rothschild Blvd 1, Tel Aviv"
	}]
}`

func TestGeocode(t *testing.T) {
	var hits int
	var gotAddress string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		gotAddress = r.URL.Query().Get("address")
		w.Write([]byte(geocodeOKBody))
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL, nil)

	result, err := c.Geocode(context.Background(), "  Rothschild   Blvd 1 ")
	require.NoError(t, err)

	assert.Equal(t, "Rothschild Blvd 1", gotAddress, "whitespace must be collapsed")
	assert.InDelta(t, 32.0853, result.Location.Lat, 1e-9)
	assert.InDelta(t, 34.7818, result.Location.Lng, 1e-9)
	assert.Equal(t, "Rothschild Blvd 1, Tel Aviv", result.FormattedAddress)

	// Second lookup of a normalization-equivalent address hits the cache.
	_, err = c.Geocode(context.Background(), "Rothschild Blvd 1")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestGeocodeEmptyAddress(t *testing.T) {
	c, _ := newTestClient(t, "http://unused", nil)
	_, err := c.Geocode(context.Background(), "   ")
	require.Error(t, err)
}

func TestGeocodeNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL, nil)

	_, err := c.Geocode(context.Background(), "nowhere at all")
	require.Error(t, err)

	var pse *ProviderStatusError
	require.ErrorAs(t, err, &pse)
	assert.Equal(t, "ZERO_RESULTS", pse.Status)
}

func TestReverseGeocode(t *testing.T) {
	var gotLatLng string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLatLng = r.URL.Query().Get("latlng")
		w.Write([]byte(geocodeOKBody))
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL, nil)

	addr, err := c.ReverseGeocode(context.Background(), 32.0853, 34.7818)
	require.NoError(t, err)
	assert.Equal(t, "32.085300,34.781800", gotLatLng)
	assert.Equal(t, "Rothschild Blvd 1, Tel Aviv", addr)
}

func TestAutocomplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "OK",
			"predictions": [
				{"description": "Rothschild Blvd 1, Tel Aviv"},
				{"description": "Rothschild Blvd 10, Tel Aviv"}
			]
		}`))
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL, nil)

	got, err := c.Autocomplete(context.Background(), "Rothschild")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rothschild Blvd 1, Tel Aviv", "Rothschild Blvd 10, Tel Aviv"}, got)
}

func TestAutocompleteZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "predictions": []}`))
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL, nil)

	got, err := c.Autocomplete(context.Background(), "zzzzzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAutocompleteEmptyInput(t *testing.T) {
	c, _ := newTestClient(t, "http://unused", nil)
	got, err := c.Autocomplete(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
}
