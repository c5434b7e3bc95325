package main

type SearchResponse struct {
	ID          string      `json:"id"`
	Itineraries []Itinerary `json:"itineraries"`
	// only filled for best-time searches
	StopArrivals []StopArrivalResponse `json:"stop_arrivals,omitempty"`
	Iterations   int32                 `json:"iterations"`
	Error        string                `json:"error,omitempty"`
}

type Itinerary struct {
	Departure string        `json:"departure"`
	Arrival   string        `json:"arrival"`
	Duration  int32         `json:"duration"`
	Transfers int32         `json:"transfers"`
	Cost      int32         `json:"cost"`
	Legs      []LegResponse `json:"legs"`
}

type LegResponse struct {
	Type      string   `json:"type"`
	From      *StopRef `json:"from,omitempty"`
	To        *StopRef `json:"to,omitempty"`
	Departure string   `json:"departure"`
	Arrival   string   `json:"arrival"`
	Duration  int32    `json:"duration"`

	Route      string `json:"route,omitempty"`
	Mode       string `json:"mode,omitempty"`
	TripID     string `json:"trip_id,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

type StopRef struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
}

type StopArrivalResponse struct {
	Stop        StopRef `json:"stop"`
	Arrival     string  `json:"arrival"`
	Transit     string  `json:"transit_arrival,omitempty"`
	NumTransfer int32   `json:"transfers"`
}

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}
