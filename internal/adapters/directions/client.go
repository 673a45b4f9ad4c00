package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ilayShalev/claudpro/internal/domain"
	"github.com/ilayShalev/claudpro/internal/platform/obs"
	"github.com/ilayShalev/claudpro/internal/platform/timecodec"
	"github.com/ilayShalev/claudpro/internal/ports"

	"github.com/twpayne/go-polyline"
)

// Client implements RouteProvider and Geocoder against a Google-style
// directions/geocoding provider.
//
// It coordinates:
//   - A shared minimum inter-call gap across all provider calls
//   - External API calls with retry/backoff
//   - Route and geocode caching (success responses only)
//   - Provider-status interpretation and arrival-time normalization
//
// The client is safe for concurrent use when its caches are.
type Client struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	cache        ports.RouteCache
	geocodeCache ports.GeocodeCache
	clock        ports.Clock
	gate         *callGate
}

// minCallGap is the enforced gap between any two provider calls from one
// client. Bursts queue behind it instead of being rejected.
const minCallGap = 300 * time.Millisecond

func NewClient(
	apiKey string,
	cache ports.RouteCache,
	geocodeCache ports.GeocodeCache,
	clock ports.Clock,
) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("directions api key is empty")
	}

	if clock == nil {
		clock = SystemClock{}
	}

	client := &Client{
		session:      &http.Client{Timeout: 30 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://maps.googleapis.com",
		cache:        cache,
		geocodeCache: geocodeCache,
		clock:        clock,
		gate:         newCallGate(clock, minCallGap),
	}

	return client, nil
}

// GetLegs returns per-leg distance, duration and timing for
// origin -> each stop in order -> destination.
func (c *Client) GetLegs(
	ctx context.Context,
	origin domain.Coordinates,
	stops []ports.Waypoint,
	destination domain.Coordinates,
	arriveBy *time.Time,
) (_ *domain.RouteDetails, err error) {
	defer obs.Time(ctx, "directions.GetLegs")(&err)

	// Providers reject arrival constraints in the past.
	var arrival *time.Time
	if arriveBy != nil {
		t := timecodec.EnsureFuture(*arriveBy, c.clock.Now())
		arrival = &t
	}

	key := c.routeKey(origin, stops, destination, arrival)

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get route cache: %w", err)
		}
		if cached != nil {
			return cloneRoute(cached), nil
		}
	}

	endpoint := c.baseURL + "/maps/api/directions/json"
	q := url.Values{}
	q.Set("origin", origin.String())
	q.Set("destination", destination.String())
	if len(stops) > 0 {
		parts := make([]string, 0, len(stops))
		for _, s := range stops {
			parts = append(parts, s.Location.String())
		}
		q.Set("waypoints", strings.Join(parts, "|"))
	}
	if arrival != nil {
		q.Set("arrival_time", strconv.FormatInt(timecodec.ToEpochSeconds(*arrival), 10))
	}
	q.Set("key", c.apiKey)
	full := endpoint + "?" + q.Encode()

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, full)
	})
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	if decoded.Status != "OK" {
		return nil, &ProviderStatusError{Status: decoded.Status, Message: decoded.ErrorMessage}
	}
	if len(decoded.Routes) == 0 {
		return nil, errors.New("directions response has no routes")
	}

	route, err := buildRoute(decoded.Routes[0], stops)
	if err != nil {
		return nil, fmt.Errorf("build route from response: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, cloneRoute(route)); err != nil {
			log.Printf("route cache write failed: key=%s err=%v", key, err)
		}
	}

	return route, nil
}

// GetPolyline returns the decoded path geometry through the given points.
func (c *Client) GetPolyline(
	ctx context.Context,
	points []domain.Coordinates,
	arriveBy *time.Time,
) (_ []domain.Coordinates, err error) {
	defer obs.Time(ctx, "directions.GetPolyline")(&err)

	if len(points) < 2 {
		return nil, errors.New("polyline requires at least two points")
	}

	var arrival *time.Time
	if arriveBy != nil {
		t := timecodec.EnsureFuture(*arriveBy, c.clock.Now())
		arrival = &t
	}

	endpoint := c.baseURL + "/maps/api/directions/json"
	q := url.Values{}
	q.Set("origin", points[0].String())
	q.Set("destination", points[len(points)-1].String())
	if len(points) > 2 {
		parts := make([]string, 0, len(points)-2)
		for _, p := range points[1 : len(points)-1] {
			parts = append(parts, p.String())
		}
		q.Set("waypoints", strings.Join(parts, "|"))
	}
	if arrival != nil {
		q.Set("arrival_time", strconv.FormatInt(timecodec.ToEpochSeconds(*arrival), 10))
	}
	q.Set("key", c.apiKey)
	full := endpoint + "?" + q.Encode()

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, full)
	})
	if err != nil {
		return nil, fmt.Errorf("polyline request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode polyline response: %w", err)
	}

	if decoded.Status != "OK" {
		return nil, &ProviderStatusError{Status: decoded.Status, Message: decoded.ErrorMessage}
	}
	if len(decoded.Routes) == 0 {
		return nil, errors.New("polyline response has no routes")
	}

	var path []domain.Coordinates
	for _, leg := range decoded.Routes[0].Legs {
		for _, step := range leg.Steps {
			if step.Polyline.Points == "" {
				continue
			}
			coords, _, err := polyline.DecodeCoords([]byte(step.Polyline.Points))
			if err != nil {
				return nil, fmt.Errorf("decode step polyline: %w", err)
			}
			for _, c := range coords {
				path = append(path, domain.Coordinates{Lat: c[0], Lng: c[1]})
			}
		}
	}

	return path, nil
}

// routeKey builds the cache key: the ordered coordinate sequence plus, when
// present, the arrival timestamp truncated to the second.
func (c *Client) routeKey(
	origin domain.Coordinates,
	stops []ports.Waypoint,
	destination domain.Coordinates,
	arrival *time.Time,
) string {
	var b strings.Builder
	b.WriteString(origin.String())
	for _, s := range stops {
		b.WriteByte('|')
		b.WriteString(s.Location.String())
	}
	b.WriteByte('|')
	b.WriteString(destination.String())
	if arrival != nil {
		b.WriteByte('@')
		b.WriteString(strconv.FormatInt(arrival.Unix(), 10))
	}
	return b.String()
}

// buildRoute maps provider legs onto stop details. The provider may reorder
// waypoints (waypoint_order), so each pickup leg is re-associated with its
// passenger by identity, never by the requested index.
func buildRoute(route routeResponse, stops []ports.Waypoint) (*domain.RouteDetails, error) {
	if len(route.Legs) != len(stops)+1 {
		return nil, fmt.Errorf("expected %d legs, got %d", len(stops)+1, len(route.Legs))
	}

	order := route.WaypointOrder
	if len(order) != len(stops) {
		order = make([]int, len(stops))
		for i := range order {
			order[i] = i
		}
	}

	details := &domain.RouteDetails{
		Stops: make([]domain.StopDetail, 0, len(route.Legs)),
	}

	var cumDistance, cumTime float64
	for i, leg := range route.Legs {
		passengerID := domain.DestinationStopID
		if i < len(stops) {
			idx := order[i]
			if idx < 0 || idx >= len(stops) {
				return nil, fmt.Errorf("waypoint_order index %d out of range", idx)
			}
			passengerID = stops[idx].PassengerID
		}

		meters := leg.Distance.Value
		minutes := leg.Duration.Value / 60
		cumDistance += meters
		cumTime += minutes

		details.Stops = append(details.Stops, domain.StopDetail{
			StopNumber:             i + 1,
			PassengerID:            passengerID,
			DistanceFromPrevious:   meters,
			TimeFromPrevious:       minutes,
			CumulativeDistance:     cumDistance,
			CumulativeTime:         cumTime,
			EstimatedArrivalTime:   decodeLegTime(leg.ArrivalTime),
			EstimatedDepartureTime: decodeLegTime(leg.DepartureTime),
		})
	}

	details.TotalDistance = cumDistance
	details.TotalTime = cumTime
	details.DepartureTime = decodeLegTime(route.Legs[0].DepartureTime)

	return details, nil
}

// decodeLegTime normalizes a provider timing field: the text form first,
// then the raw epoch value, unset when both fail.
func decodeLegTime(tf *timeField) *string {
	if tf == nil {
		return nil
	}
	if s, ok := timecodec.Normalize(tf.Text); ok {
		return &s
	}
	if tf.Value > 0 {
		s := timecodec.Canonical(timecodec.FromEpochSeconds(tf.Value))
		return &s
	}
	return nil
}

func cloneRoute(r *domain.RouteDetails) *domain.RouteDetails {
	out := *r
	out.DepartureTime = cloneString(r.DepartureTime)
	out.Stops = make([]domain.StopDetail, len(r.Stops))
	for i, s := range r.Stops {
		s.EstimatedArrivalTime = cloneString(s.EstimatedArrivalTime)
		s.EstimatedDepartureTime = cloneString(s.EstimatedDepartureTime)
		out.Stops[i] = s
	}
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
