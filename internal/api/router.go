package api

import (
	"net/http"

	"github.com/ilayShalev/claudpro/internal/api/handlers"
	"github.com/ilayShalev/claudpro/internal/domain"
	"github.com/ilayShalev/claudpro/internal/ports"
	"github.com/ilayShalev/claudpro/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.FleetRepository,
	scheduler *services.Scheduler,
	geocoder ports.Geocoder,
	destination domain.Destination,
) http.Handler {
	mux := http.NewServeMux()

	scheduleHandler := &handlers.ScheduleHandler{
		Repo:        repo,
		Scheduler:   scheduler,
		Destination: destination,
	}
	geocodeHandler := &handlers.GeocodeHandler{Geocoder: geocoder}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/schedule", scheduleHandler.Schedule)
	mux.HandleFunc("/geocode", geocodeHandler.Geocode)
	mux.HandleFunc("/reverse-geocode", geocodeHandler.ReverseGeocode)
	mux.HandleFunc("/autocomplete", geocodeHandler.Autocomplete)

	return loggingMiddleware(mux)
}
