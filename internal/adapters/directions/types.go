package directions

// Provider response schema. The provider reports per-leg times either as a
// human-readable text field or a raw epoch value (or neither), so timing
// fields are modeled as optional rather than probed dynamically.

type timeField struct {
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

type valueField struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

type polylineField struct {
	Points string `json:"points"`
}

type stepResponse struct {
	Polyline polylineField `json:"polyline"`
}

type legResponse struct {
	Distance      valueField     `json:"distance"` // meters
	Duration      valueField     `json:"duration"` // seconds
	ArrivalTime   *timeField     `json:"arrival_time,omitempty"`
	DepartureTime *timeField     `json:"departure_time,omitempty"`
	Steps         []stepResponse `json:"steps"`
}

type routeResponse struct {
	Legs          []legResponse `json:"legs"`
	WaypointOrder []int         `json:"waypoint_order"`
}

type directionsResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	Routes       []routeResponse `json:"routes"`
}

type geocodeLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geocodeGeometry struct {
	Location geocodeLocation `json:"location"`
}

type geocodeEntry struct {
	Geometry         geocodeGeometry `json:"geometry"`
	FormattedAddress string          `json:"formatted_address"`
}

type geocodeResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
	Results      []geocodeEntry `json:"results"`
}

type autocompletePrediction struct {
	Description string `json:"description"`
}

type autocompleteResponse struct {
	Status      string                   `json:"status"`
	Predictions []autocompletePrediction `json:"predictions"`
}
