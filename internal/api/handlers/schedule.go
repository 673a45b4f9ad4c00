package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"slices"

	"github.com/ilayShalev/claudpro/internal/api/dto"
	"github.com/ilayShalev/claudpro/internal/domain"
	"github.com/ilayShalev/claudpro/internal/platform/timecodec"
	"github.com/ilayShalev/claudpro/internal/ports"
	"github.com/ilayShalev/claudpro/internal/services"
)

type ScheduleHandler struct {
	Repo        ports.FleetRepository
	Scheduler   *services.Scheduler
	Destination domain.Destination
}

// Schedule runs a full scheduling pass: load the stored assignment, compute
// timetables for every vehicle, validate the result, and return both.
func (h *ScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ScheduleRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	destination := h.Destination
	if req.TargetTime != nil {
		normalized, ok := timecodec.Normalize(*req.TargetTime)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "target_time must be a valid clock time")
			return
		}
		destination.TargetTime = normalized
	}

	solution, err := h.Repo.LoadSolution(r.Context())
	if err != nil {
		log.Printf("load solution failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	var routes map[int]*domain.RouteDetails
	if req.EstimateOnly {
		routes, err = h.Scheduler.EstimateTimetables(r.Context(), solution, destination)
	} else {
		routes, err = h.Scheduler.BuildTimetables(r.Context(), solution, destination)
	}
	if err != nil {
		log.Printf("build timetables failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	passengers, err := h.Repo.ListPassengers(r.Context())
	if err != nil {
		log.Printf("list passengers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	required := make([]*domain.Passenger, 0, len(passengers))
	for _, p := range passengers {
		if p.Available {
			required = append(required, p)
		}
	}

	report := services.ValidateSolution(solution, required)

	writeJSON(w, r, http.StatusOK, buildScheduleResponse(routes, report))
}

func buildScheduleResponse(routes map[int]*domain.RouteDetails, report *services.Report) dto.ScheduleResponse {
	res := dto.ScheduleResponse{
		Routes: make([]dto.RouteResponse, 0, len(routes)),
	}

	for _, route := range routes {
		stops := make([]dto.StopResponse, 0, len(route.Stops))
		for _, s := range route.Stops {
			stops = append(stops, dto.StopResponse{
				StopNumber:           s.StopNumber,
				PassengerID:          s.PassengerID,
				DistanceFromPrevious: s.DistanceFromPrevious,
				TimeFromPrevious:     s.TimeFromPrevious,
				CumulativeDistance:   s.CumulativeDistance,
				CumulativeTime:       s.CumulativeTime,
				EstimatedArrivalTime: s.EstimatedArrivalTime,
			})
		}

		res.Routes = append(res.Routes, dto.RouteResponse{
			VehicleID:     route.VehicleID,
			DepartureTime: route.DepartureTime,
			TotalDistance: route.TotalDistance,
			TotalTime:     route.TotalTime,
			Stops:         stops,
		})
	}
	slices.SortFunc(res.Routes, func(a, b dto.RouteResponse) int {
		return a.VehicleID - b.VehicleID
	})

	res.Report = dto.ReportResponse{
		Valid:                 report.Valid,
		CapacityExceeded:      make([]dto.CapacityFindingResponse, 0, len(report.CapacityExceeded)),
		Duplicates:            make([]dto.DuplicateFindingResponse, 0, len(report.Duplicates)),
		UncoveredPassengerIDs: report.UncoveredIDs,
		VehiclesUsed:          report.VehiclesUsed,
		TotalDistance:         report.TotalDistance,
		TotalTime:             report.TotalTime,
		AverageTimePerVehicle: report.AverageTimePerVehicle,
	}
	if res.Report.UncoveredPassengerIDs == nil {
		res.Report.UncoveredPassengerIDs = []int{}
	}
	for _, f := range report.CapacityExceeded {
		res.Report.CapacityExceeded = append(res.Report.CapacityExceeded, dto.CapacityFindingResponse{
			VehicleID: f.VehicleID,
			Capacity:  f.Capacity,
			Assigned:  f.Assigned,
		})
	}
	for _, f := range report.Duplicates {
		res.Report.Duplicates = append(res.Report.Duplicates, dto.DuplicateFindingResponse{
			PassengerID: f.PassengerID,
			VehicleIDs:  f.VehicleIDs,
		})
	}

	return res
}
