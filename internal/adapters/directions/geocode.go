package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ilayShalev/claudpro/internal/domain"
	"github.com/ilayShalev/claudpro/internal/platform/obs"
	"github.com/ilayShalev/claudpro/internal/ports"
)

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves an address to coordinates, consulting the geocode cache
// before issuing a provider call. There is no fallback for geocoding, so
// failures surface as errors.
func (c *Client) Geocode(ctx context.Context, address string) (_ ports.GeocodeResult, err error) {
	defer obs.Time(ctx, "directions.Geocode")(&err)

	addr := normalize(address)
	if addr == "" {
		return ports.GeocodeResult{}, fmt.Errorf("geocode: address must be non-empty")
	}

	if c.geocodeCache != nil {
		cached, err := c.geocodeCache.Get(ctx, addr)
		if err != nil {
			return ports.GeocodeResult{}, fmt.Errorf("get geocode cache: %w", err)
		}
		if cached != nil {
			return *cached, nil
		}
	}

	endpoint := c.baseURL + "/maps/api/geocode/json"
	q := url.Values{}
	q.Set("address", addr)
	q.Set("key", c.apiKey)
	full := endpoint + "?" + q.Encode()

	entry, err := c.fetchGeocode(ctx, full)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("geocode %q: %w", addr, err)
	}

	result := ports.GeocodeResult{
		Location: domain.Coordinates{
			Lat: entry.Geometry.Location.Lat,
			Lng: entry.Geometry.Location.Lng,
		},
		FormattedAddress: entry.FormattedAddress,
	}

	if c.geocodeCache != nil {
		if err := c.geocodeCache.Put(ctx, addr, result); err != nil {
			log.Printf("geocode cache write failed: address=%q err=%v", addr, err)
		}
	}

	return result, nil
}

// ReverseGeocode resolves coordinates to the provider's best address.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (_ string, err error) {
	defer obs.Time(ctx, "directions.ReverseGeocode")(&err)

	endpoint := c.baseURL + "/maps/api/geocode/json"
	q := url.Values{}
	q.Set("latlng", strconv.FormatFloat(lat, 'f', 6, 64)+","+strconv.FormatFloat(lng, 'f', 6, 64))
	q.Set("key", c.apiKey)
	full := endpoint + "?" + q.Encode()

	entry, err := c.fetchGeocode(ctx, full)
	if err != nil {
		return "", fmt.Errorf("reverse geocode (%.6f,%.6f): %w", lat, lng, err)
	}

	return entry.FormattedAddress, nil
}

func (c *Client) fetchGeocode(ctx context.Context, full string) (*geocodeEntry, error) {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, full)
	})
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	if decoded.Status != "OK" {
		return nil, &ProviderStatusError{Status: decoded.Status, Message: decoded.ErrorMessage}
	}
	if len(decoded.Results) == 0 {
		return nil, fmt.Errorf("no geocode results")
	}

	return &decoded.Results[0], nil
}

// Autocomplete returns address predictions for a partial input. An empty
// result list is not an error.
func (c *Client) Autocomplete(ctx context.Context, input string) (_ []string, err error) {
	defer obs.Time(ctx, "directions.Autocomplete")(&err)

	partial := normalize(input)
	if partial == "" {
		return []string{}, nil
	}

	endpoint := c.baseURL + "/maps/api/place/autocomplete/json"
	q := url.Values{}
	q.Set("input", partial)
	q.Set("key", c.apiKey)
	full := endpoint + "?" + q.Encode()

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, full)
	})
	if err != nil {
		return nil, fmt.Errorf("autocomplete request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded autocompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode autocomplete response: %w", err)
	}

	if decoded.Status != "OK" && decoded.Status != "ZERO_RESULTS" {
		return nil, &ProviderStatusError{Status: decoded.Status}
	}

	out := make([]string, 0, len(decoded.Predictions))
	for _, p := range decoded.Predictions {
		out = append(out, p.Description)
	}

	return out, nil
}
