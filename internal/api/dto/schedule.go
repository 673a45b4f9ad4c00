package dto

type ScheduleRequest struct {
	// EstimateOnly forces the geometric path, skipping the live provider.
	EstimateOnly bool `json:"estimate_only"`
	// TargetTime overrides the configured destination arrival time ("HH:mm").
	TargetTime *string `json:"target_time"`
}

type StopResponse struct {
	StopNumber           int     `json:"stop_number"`
	PassengerID          int     `json:"passenger_id"`
	DistanceFromPrevious float64 `json:"distance_from_previous_meters"`
	TimeFromPrevious     float64 `json:"time_from_previous_minutes"`
	CumulativeDistance   float64 `json:"cumulative_distance_meters"`
	CumulativeTime       float64 `json:"cumulative_time_minutes"`
	EstimatedArrivalTime *string `json:"estimated_arrival_time"`
}

type RouteResponse struct {
	VehicleID     int            `json:"vehicle_id"`
	DepartureTime *string        `json:"departure_time"`
	TotalDistance float64        `json:"total_distance_meters"`
	TotalTime     float64        `json:"total_time_minutes"`
	Stops         []StopResponse `json:"stops"`
}

type CapacityFindingResponse struct {
	VehicleID int `json:"vehicle_id"`
	Capacity  int `json:"capacity"`
	Assigned  int `json:"assigned"`
}

type DuplicateFindingResponse struct {
	PassengerID int   `json:"passenger_id"`
	VehicleIDs  []int `json:"vehicle_ids"`
}

type ReportResponse struct {
	Valid                 bool                       `json:"valid"`
	CapacityExceeded      []CapacityFindingResponse  `json:"capacity_exceeded"`
	Duplicates            []DuplicateFindingResponse `json:"duplicates"`
	UncoveredPassengerIDs []int                      `json:"uncovered_passenger_ids"`
	VehiclesUsed          int                        `json:"vehicles_used"`
	TotalDistance         float64                    `json:"total_distance_meters"`
	TotalTime             float64                    `json:"total_time_minutes"`
	AverageTimePerVehicle float64                    `json:"average_time_per_vehicle_minutes"`
}

type ScheduleResponse struct {
	Routes []RouteResponse `json:"routes"`
	Report ReportResponse  `json:"report"`
}

type GeocodeResponse struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
}

type ReverseGeocodeResponse struct {
	Address string `json:"address"`
}

type AutocompleteResponse struct {
	Predictions []string `json:"predictions"`
}
