package main

import (
	"github.com/ttpr0/go-raptor/graph"
	"github.com/ttpr0/go-raptor/raptor"
)

type SearchRequest struct {
	// *************************************
	// standard search params
	// *************************************
	// generated if empty
	ID string `json:"id"`

	From LocationParams `json:"from"`

	To LocationParams `json:"to"`

	// HH:MM:SS, departure or arrival if arrive_by is set
	Time string `json:"time" validate:"required"`

	ArriveBy bool `json:"arrive_by"`

	// *************************************
	// optional search params, config defaults if nil
	// *************************************
	Profile *raptor.SearchProfile `json:"profile"`

	SearchWindow *int32 `json:"search_window" validate:"omitempty,gte=0"`

	MaxTransfers *int32 `json:"max_transfers" validate:"omitempty,gte=0"`

	Timetable bool `json:"timetable"`

	TransferConstraints bool `json:"transfer_constraints"`

	Filter graph.RouteFilter `json:"filter"`

	// *************************************
	// debug params
	// *************************************
	// stop ids whose arrivals are logged
	DebugStops []string `json:"debug_stops"`
}

// A location is either a list of stops or a coordinate.
type LocationParams struct {
	StopIDs []string `json:"stop_ids"`

	// lon, lat
	Coord []float64 `json:"coord" validate:"omitempty,len=2"`
}
