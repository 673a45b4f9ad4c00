package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/ilayShalev/claudpro/internal/api/dto"
	"github.com/ilayShalev/claudpro/internal/ports"
)

// GeocodeHandler exposes the provider's address resolution endpoints.
// These calls have no geometric fallback, so provider failures become
// HTTP errors rather than degraded results.
type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	result, err := h.Geocoder.Geocode(r.Context(), address)
	if err != nil {
		log.Printf("geocode failed: address=%q err=%v", address, err)
		writeError(w, r, http.StatusBadGateway, "geocoding failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{
		Lat:              result.Location.Lat,
		Lng:              result.Location.Lng,
		FormattedAddress: result.FormattedAddress,
	})
}

func (h *GeocodeHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lat must be a number")
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lng must be a number")
		return
	}

	address, err := h.Geocoder.ReverseGeocode(r.Context(), lat, lng)
	if err != nil {
		log.Printf("reverse geocode failed: lat=%.6f lng=%.6f err=%v", lat, lng, err)
		writeError(w, r, http.StatusBadGateway, "reverse geocoding failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ReverseGeocodeResponse{Address: address})
}

func (h *GeocodeHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	input := strings.TrimSpace(r.URL.Query().Get("input"))
	if input == "" {
		writeJSON(w, r, http.StatusOK, dto.AutocompleteResponse{Predictions: []string{}})
		return
	}

	predictions, err := h.Geocoder.Autocomplete(r.Context(), input)
	if err != nil {
		log.Printf("autocomplete failed: input=%q err=%v", input, err)
		writeError(w, r, http.StatusBadGateway, "autocomplete failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AutocompleteResponse{Predictions: predictions})
}
