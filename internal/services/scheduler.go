package services

import (
	"context"
	"log"
	"time"

	"github.com/ilayShalev/claudpro/internal/domain"
	"github.com/ilayShalev/claudpro/internal/platform/obs"
	"github.com/ilayShalev/claudpro/internal/platform/timecodec"
	"github.com/ilayShalev/claudpro/internal/ports"
)

// Scheduler derives a consistent timetable for every vehicle in a candidate
// solution: route legs from the routing provider (or a geometric estimate
// when the provider fails), then departure and per-stop pickup times.
//
// Vehicles are processed independently; one vehicle's provider failure
// degrades that vehicle to the geometric estimate and never aborts the run.
type Scheduler struct {
	provider ports.RouteProvider
	clock    ports.Clock
}

func NewScheduler(provider ports.RouteProvider, clock ports.Clock) *Scheduler {
	return &Scheduler{provider: provider, clock: clock}
}

// BuildTimetables obtains route legs for every vehicle with passengers and
// propagates times. The solution is annotated in place; the returned map
// holds the computed RouteDetails keyed by vehicle id.
//
// Cancellation is honored between vehicles: on a done context the partial
// result is returned along with ctx.Err().
func (s *Scheduler) BuildTimetables(
	ctx context.Context,
	solution *domain.Solution,
	destination domain.Destination,
) (_ map[int]*domain.RouteDetails, err error) {
	defer obs.Time(ctx, "scheduler.BuildTimetables")(&err)
	return s.run(ctx, solution, destination, false)
}

// EstimateTimetables is the bulk fallback entry point: it always takes the
// geometric path, skipping the provider entirely, but runs the same time
// propagation. Used when the provider is configured off or has failed for
// the whole run.
func (s *Scheduler) EstimateTimetables(
	ctx context.Context,
	solution *domain.Solution,
	destination domain.Destination,
) (_ map[int]*domain.RouteDetails, err error) {
	defer obs.Time(ctx, "scheduler.EstimateTimetables")(&err)
	return s.run(ctx, solution, destination, true)
}

func (s *Scheduler) run(
	ctx context.Context,
	solution *domain.Solution,
	destination domain.Destination,
	estimateOnly bool,
) (map[int]*domain.RouteDetails, error) {
	now := s.clock.Now()
	targetArrival := s.resolveTargetArrival(destination, now)

	results := make(map[int]*domain.RouteDetails, len(solution.Vehicles))

	for _, vehicle := range solution.Vehicles {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		if len(vehicle.AssignedPassengers) == 0 {
			continue
		}

		route := s.obtainRoute(ctx, vehicle, destination, targetArrival, estimateOnly)
		if route == nil {
			continue
		}
		route.VehicleID = vehicle.VehicleID

		s.propagateTimes(vehicle, route, targetArrival)

		vehicle.TotalDistance = route.TotalDistance
		vehicle.TotalTime = route.TotalTime
		results[vehicle.VehicleID] = route
	}

	return results, nil
}

// resolveTargetArrival turns the destination's wall-clock target into a
// concrete future instant, or nil when no target is set.
func (s *Scheduler) resolveTargetArrival(destination domain.Destination, now time.Time) *time.Time {
	clock, ok := timecodec.Parse(destination.TargetTime)
	if !ok {
		return nil
	}
	t := timecodec.EnsureFuture(timecodec.OnDate(clock, now), now)
	return &t
}

// obtainRoute tries the provider first and degrades to the geometric
// estimate on any error. The estimate never fails, so a vehicle with
// passengers always yields a route.
func (s *Scheduler) obtainRoute(
	ctx context.Context,
	vehicle *domain.Vehicle,
	destination domain.Destination,
	targetArrival *time.Time,
	estimateOnly bool,
) *domain.RouteDetails {
	if estimateOnly || s.provider == nil {
		return EstimateRoute(vehicle, destination.Location)
	}

	stops := make([]ports.Waypoint, 0, len(vehicle.AssignedPassengers))
	for _, p := range vehicle.AssignedPassengers {
		stops = append(stops, ports.Waypoint{PassengerID: p.PassengerID, Location: p.Location})
	}

	route, err := s.provider.GetLegs(ctx, vehicle.StartLocation, stops, destination.Location, targetArrival)
	if err != nil {
		log.Printf("provider route failed, using geometric estimate: vehicle=%d err=%v", vehicle.VehicleID, err)
		return EstimateRoute(vehicle, destination.Location)
	}

	return route
}

// propagateTimes resolves the vehicle's departure time and every
// passenger's pickup time. Priority per the timetable rules:
//
//	departure: provider first-leg departure > targetArrival - TotalTime > prior value
//	pickup:    provider per-stop arrival (matched by passenger id)
//	           > departure + cumulative leg time
//	           > derived departure from targetArrival + cumulative leg time
func (s *Scheduler) propagateTimes(
	vehicle *domain.Vehicle,
	route *domain.RouteDetails,
	targetArrival *time.Time,
) {
	var departAt *time.Time

	switch {
	case route.DepartureTime != nil:
		// Provider departure strings are already canonical; parse for
		// arithmetic below.
		if t, ok := timecodec.Parse(*route.DepartureTime); ok {
			departAt = &t
		}
		vehicle.DepartureTime = cloneString(route.DepartureTime)
	case targetArrival != nil:
		t := targetArrival.Add(-timecodec.Minutes(route.TotalTime))
		departAt = &t
		dep := timecodec.Canonical(t)
		vehicle.DepartureTime = &dep
		route.DepartureTime = cloneString(&dep)
	case vehicle.DepartureTime != nil:
		if t, ok := timecodec.Parse(*vehicle.DepartureTime); ok {
			departAt = &t
		}
		route.DepartureTime = cloneString(vehicle.DepartureTime)
	}

	for _, passenger := range vehicle.AssignedPassengers {
		stop := stopFor(route, passenger.PassengerID)
		if stop == nil {
			continue
		}

		// Provider-supplied arrival wins; it reflects live traffic.
		if stop.EstimatedArrivalTime != nil {
			passenger.EstimatedPickupTime = cloneString(stop.EstimatedArrivalTime)
			continue
		}

		if departAt == nil {
			continue
		}

		pickup := timecodec.Canonical(departAt.Add(timecodec.Minutes(stop.CumulativeTime)))
		passenger.EstimatedPickupTime = &pickup
		stop.EstimatedArrivalTime = cloneString(&pickup)
	}

	// Fill the terminal stop's arrival so the timetable covers the
	// destination as well.
	if last := route.LastStop(); last != nil && last.PassengerID == domain.DestinationStopID &&
		last.EstimatedArrivalTime == nil && departAt != nil {
		arr := timecodec.Canonical(departAt.Add(timecodec.Minutes(last.CumulativeTime)))
		last.EstimatedArrivalTime = &arr
	}
}

// stopFor finds the stop for a passenger by identity. Provider leg order is
// not guaranteed to equal assignment order, so position is never used.
func stopFor(route *domain.RouteDetails, passengerID int) *domain.StopDetail {
	for i := range route.Stops {
		if route.Stops[i].PassengerID == passengerID {
			return &route.Stops[i]
		}
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
