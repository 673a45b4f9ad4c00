package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilayShalev/claudpro/internal/api/dto"
	"github.com/ilayShalev/claudpro/internal/domain"
	"github.com/ilayShalev/claudpro/internal/ports"
)

type fakeGeocoder struct {
	result      ports.GeocodeResult
	address     string
	predictions []string
	err         error
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (ports.GeocodeResult, error) {
	return f.result, f.err
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	return f.address, f.err
}

func (f *fakeGeocoder) Autocomplete(ctx context.Context, input string) ([]string, error) {
	return f.predictions, f.err
}

func TestGeocodeHandler(t *testing.T) {
	h := &GeocodeHandler{Geocoder: &fakeGeocoder{
		result: ports.GeocodeResult{
			Location:         domain.Coordinates{Lat: 32.0853, Lng: 34.7818},
			FormattedAddress: "Rothschild Blvd 1, Tel Aviv",
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/geocode?address=Rothschild+Blvd+1", nil)
	rec := httptest.NewRecorder()
	h.Geocode(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.GeocodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.InDelta(t, 32.0853, res.Lat, 1e-9)
	assert.InDelta(t, 34.7818, res.Lng, 1e-9)
	assert.Equal(t, "Rothschild Blvd 1, Tel Aviv", res.FormattedAddress)
}

func TestGeocodeHandlerMissingAddress(t *testing.T) {
	h := &GeocodeHandler{Geocoder: &fakeGeocoder{}}

	req := httptest.NewRequest(http.MethodGet, "/geocode", nil)
	rec := httptest.NewRecorder()
	h.Geocode(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeocodeHandlerProviderFailure(t *testing.T) {
	h := &GeocodeHandler{Geocoder: &fakeGeocoder{err: errors.New("quota exceeded")}}

	req := httptest.NewRequest(http.MethodGet, "/geocode?address=somewhere", nil)
	rec := httptest.NewRecorder()
	h.Geocode(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "quota", "provider details must not leak")
}

func TestReverseGeocodeHandler(t *testing.T) {
	h := &GeocodeHandler{Geocoder: &fakeGeocoder{address: "Rothschild Blvd 1, Tel Aviv"}}

	req := httptest.NewRequest(http.MethodGet, "/reverse-geocode?lat=32.0853&lng=34.7818", nil)
	rec := httptest.NewRecorder()
	h.ReverseGeocode(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ReverseGeocodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Rothschild Blvd 1, Tel Aviv", res.Address)
}

func TestReverseGeocodeHandlerBadCoordinates(t *testing.T) {
	h := &GeocodeHandler{Geocoder: &fakeGeocoder{}}

	for _, target := range []string{
		"/reverse-geocode?lat=abc&lng=34.78",
		"/reverse-geocode?lat=32.08",
		"/reverse-geocode",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		h.ReverseGeocode(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestAutocompleteHandler(t *testing.T) {
	h := &GeocodeHandler{Geocoder: &fakeGeocoder{
		predictions: []string{"Rothschild Blvd 1", "Rothschild Blvd 10"},
	}}

	req := httptest.NewRequest(http.MethodGet, "/autocomplete?input=Roth", nil)
	rec := httptest.NewRecorder()
	h.Autocomplete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.AutocompleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"Rothschild Blvd 1", "Rothschild Blvd 10"}, res.Predictions)
}

func TestAutocompleteHandlerEmptyInput(t *testing.T) {
	h := &GeocodeHandler{Geocoder: &fakeGeocoder{}}

	req := httptest.NewRequest(http.MethodGet, "/autocomplete?input=++", nil)
	rec := httptest.NewRecorder()
	h.Autocomplete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"predictions": []}`, rec.Body.String())
}

func TestGeocodeHandlersMethodNotAllowed(t *testing.T) {
	h := &GeocodeHandler{Geocoder: &fakeGeocoder{}}

	calls := []func(http.ResponseWriter, *http.Request){h.Geocode, h.ReverseGeocode, h.Autocomplete}
	for _, call := range calls {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		call(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	}
}

var _ ports.Geocoder = (*fakeGeocoder)(nil)
