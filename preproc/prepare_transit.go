package preproc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-raptor/comps"
	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// transit input
//*******************************************

type StopInput struct {
	ID   string  `csv:"stop_id"`
	Name string  `csv:"stop_name"`
	Lat  float64 `csv:"stop_lat"`
	Lon  float64 `csv:"stop_lon"`
}

type TripInput struct {
	TripID     string `csv:"trip_id"`
	RouteID    string `csv:"route_id"`
	Mode       string `csv:"mode"`
	SlackIndex int32  `csv:"slack_index"`
}

// Times are given as HH:MM:SS and may exceed 24:00:00.
type StopTimeInput struct {
	TripID    string `csv:"trip_id"`
	StopID    string `csv:"stop_id"`
	Sequence  int32  `csv:"stop_sequence"`
	Arrival   string `csv:"arrival_time"`
	Departure string `csv:"departure_time"`
	NoPickup  bool   `csv:"no_pickup"`
	NoDropOff bool   `csv:"no_drop_off"`
}

type TransferInput struct {
	FromStopID string `csv:"from_stop_id"`
	ToStopID   string `csv:"to_stop_id"`
	Duration   int32  `csv:"duration"`
}

// Either the trip or the route has to be given on both sides, a route
// applies the constraint to all of its trips.
type ConstraintInput struct {
	FromStopID      string `csv:"from_stop_id"`
	FromTripID      string `csv:"from_trip_id"`
	FromRouteID     string `csv:"from_route_id"`
	ToStopID        string `csv:"to_stop_id"`
	ToTripID        string `csv:"to_trip_id"`
	ToRouteID       string `csv:"to_route_id"`
	Type            string `csv:"type"`
	MinTransferTime int32  `csv:"min_transfer_time"`
}

type TransitOptions struct {
	// generate walking transfers between stops within this distance (meters)
	MaxTransferRange float64 `yaml:"max-transfer-range" validate:"gte=0"`
	// meters per second
	WalkSpeed         float64 `yaml:"walk-speed" validate:"gt=0"`
	GenerateTransfers bool    `yaml:"generate-transfers"`
}

func DefaultTransitOptions() TransitOptions {
	return TransitOptions{
		MaxTransferRange:  500,
		WalkSpeed:         1.33,
		GenerateTransfers: true,
	}
}

//*******************************************
// prepare transit-data
//*******************************************

func PrepareTransit(stop_inputs []StopInput, trip_inputs []TripInput, stop_times []StopTimeInput, transfer_inputs []TransferInput, constraint_inputs []ConstraintInput, options TransitOptions) (*comps.Transit, error) {
	if len(stop_inputs) == 0 {
		return nil, errors.New("transit without stops")
	}
	stops := NewArray[structs.Stop](len(stop_inputs))
	stop_mapping := NewDict[string, int32](len(stop_inputs))
	for i, s := range stop_inputs {
		if stop_mapping.ContainsKey(s.ID) {
			return nil, errors.Errorf("duplicate stop id %v", s.ID)
		}
		stops[i] = structs.Stop{ID: s.ID, Name: s.Name, Loc: orb.Point{s.Lon, s.Lat}}
		stop_mapping[s.ID] = int32(i)
	}

	trips, err := buildTrips(trip_inputs, stop_times, stop_mapping)
	if err != nil {
		return nil, err
	}
	patterns, timetables, trip_refs := buildPatterns(trips)

	transfers := NewList[structs.Transfer](len(transfer_inputs))
	given := NewDict[Tuple[int32, int32], bool](len(transfer_inputs))
	for _, t := range transfer_inputs {
		from, ok1 := stop_mapping[t.FromStopID]
		to, ok2 := stop_mapping[t.ToStopID]
		if !ok1 || !ok2 {
			slog.Warn(fmt.Sprintf("skipping transfer %v -> %v: unknown stop", t.FromStopID, t.ToStopID))
			continue
		}
		transfers.Add(structs.Transfer{From: from, To: to, Duration: t.Duration})
		given[MakeTuple(from, to)] = true
	}
	if options.GenerateTransfers {
		for _, t := range GenerateTransfers(stops, options.MaxTransferRange, options.WalkSpeed) {
			if given[MakeTuple(t.From, t.To)] {
				continue
			}
			transfers.Add(t)
		}
	}

	constraints, err := resolveConstraints(constraint_inputs, stop_mapping, patterns, trip_refs)
	if err != nil {
		return nil, err
	}

	slog.Info(fmt.Sprintf("prepared transit: %v stops, %v patterns, %v trips, %v transfers, %v constraints", stops.Length(), patterns.Length(), len(trips), transfers.Length(), constraints.Length()))
	return comps.NewTransit(stops, patterns, timetables, Array[structs.Transfer](transfers), Array[structs.ConstrainedTransfer](constraints)), nil
}

//*******************************************
// trips and patterns
//*******************************************

type tripRecord struct {
	input TripInput
	mode  structs.TransitMode
	stops Array[int32]
	flags Array[byte]
	times structs.TripTimes
}

func buildTrips(trip_inputs []TripInput, stop_times []StopTimeInput, stop_mapping Dict[string, int32]) (List[*tripRecord], error) {
	times_by_trip := NewDict[string, List[StopTimeInput]](len(trip_inputs))
	for _, st := range stop_times {
		list := times_by_trip[st.TripID]
		list.Add(st)
		times_by_trip[st.TripID] = list
	}

	trips := NewList[*tripRecord](len(trip_inputs))
	for _, input := range trip_inputs {
		mode, err := structs.TransitModeFromString(input.Mode)
		if err != nil {
			return nil, errors.Wrapf(err, "trip %v", input.TripID)
		}
		times := times_by_trip[input.TripID]
		if times.Length() < 2 {
			slog.Warn(fmt.Sprintf("skipping trip %v: less than two stop times", input.TripID))
			continue
		}
		slices.SortFunc(times, func(a, b StopTimeInput) int {
			return int(a.Sequence - b.Sequence)
		})
		record, err := newTripRecord(input, mode, times, stop_mapping)
		if err != nil {
			slog.Warn(fmt.Sprintf("skipping trip %v: %v", input.TripID, err))
			continue
		}
		trips.Add(record)
	}
	return trips, nil
}

func newTripRecord(input TripInput, mode structs.TransitMode, times List[StopTimeInput], stop_mapping Dict[string, int32]) (*tripRecord, error) {
	count := times.Length()
	record := &tripRecord{
		input: input,
		mode:  mode,
		stops: NewArray[int32](count),
		flags: NewArray[byte](count),
		times: structs.TripTimes{
			TripID:     input.TripID,
			Arrivals:   make([]int32, count),
			Departures: make([]int32, count),
		},
	}
	prev := int32(-1 << 31)
	for i, st := range times {
		stop, ok := stop_mapping[st.StopID]
		if !ok {
			return nil, errors.Errorf("unknown stop %v", st.StopID)
		}
		arrival, err := ParseTime(st.Arrival)
		if err != nil {
			return nil, err
		}
		departure, err := ParseTime(st.Departure)
		if err != nil {
			return nil, err
		}
		if departure < arrival || arrival < prev {
			return nil, errors.Errorf("times decrease at stop %v", st.StopID)
		}
		prev = departure
		var flags byte
		if !st.NoPickup {
			flags |= comps.BOARDING_ALLOWED
		}
		if !st.NoDropOff {
			flags |= comps.ALIGHTING_ALLOWED
		}
		record.stops[i] = stop
		record.flags[i] = flags
		record.times.Arrivals[i] = arrival
		record.times.Departures[i] = departure
	}
	return record, nil
}

func patternKey(trip *tripRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%d", trip.input.RouteID, trip.mode, trip.input.SlackIndex)
	for i, stop := range trip.stops {
		fmt.Fprintf(&b, "|%d:%d", stop, trip.flags[i])
	}
	return b.String()
}

// Groups trips with the same route and stop sequence into patterns.
//
// Trips of a pattern are sorted by departure, a trip overtaking another
// one is moved into a separate pattern so trip searches stay monotone.
// The returned dict maps trip ids to (pattern, trip index).
func buildPatterns(trips List[*tripRecord]) (Array[comps.Pattern], Array[Array[structs.TripTimes]], Dict[string, Tuple[int32, int32]]) {
	groups := NewDict[string, List[*tripRecord]](100)
	keys := NewList[string](100)
	for _, trip := range trips {
		key := patternKey(trip)
		if !groups.ContainsKey(key) {
			keys.Add(key)
		}
		group := groups[key]
		group.Add(trip)
		groups[key] = group
	}

	patterns := NewList[comps.Pattern](keys.Length())
	timetables := NewList[Array[structs.TripTimes]](keys.Length())
	trip_refs := NewDict[string, Tuple[int32, int32]](trips.Length())
	for _, key := range keys {
		group := groups[key]
		slices.SortStableFunc(group, func(a, b *tripRecord) int {
			return int(a.times.Departures[0] - b.times.Departures[0])
		})
		for _, timetable := range splitOvertaking(group) {
			first := timetable[0]
			index := int32(patterns.Length())
			patterns.Add(comps.Pattern{
				RouteID:    first.input.RouteID,
				Mode:       first.mode,
				SlackIndex: first.input.SlackIndex,
				Stops:      first.stops,
				Flags:      first.flags,
			})
			times := NewArray[structs.TripTimes](timetable.Length())
			for i, trip := range timetable {
				times[i] = trip.times
				trip_refs[trip.input.TripID] = MakeTuple(index, int32(i))
			}
			timetables.Add(times)
		}
	}
	return Array[comps.Pattern](patterns), Array[Array[structs.TripTimes]](timetables), trip_refs
}

func splitOvertaking(trips List[*tripRecord]) List[List[*tripRecord]] {
	timetables := NewList[List[*tripRecord]](1)
	for _, trip := range trips {
		placed := false
		for i := range timetables {
			last := timetables[i][timetables[i].Length()-1]
			if !overtakes(last, trip) {
				timetables[i].Add(trip)
				placed = true
				break
			}
		}
		if !placed {
			timetable := NewList[*tripRecord](4)
			timetable.Add(trip)
			timetables.Add(timetable)
		}
	}
	return timetables
}

// Checks if next arrives or departs before prev anywhere on the pattern.
func overtakes(prev, next *tripRecord) bool {
	for i := range prev.stops {
		if next.times.Arrivals[i] < prev.times.Arrivals[i] || next.times.Departures[i] < prev.times.Departures[i] {
			return true
		}
	}
	return false
}

//*******************************************
// constrained transfers
//*******************************************

func resolveConstraints(inputs []ConstraintInput, stop_mapping Dict[string, int32], patterns Array[comps.Pattern], trip_refs Dict[string, Tuple[int32, int32]]) (List[structs.ConstrainedTransfer], error) {
	constraints := NewList[structs.ConstrainedTransfer](len(inputs))
	for _, input := range inputs {
		typ, err := structs.ConstraintTypeFromString(input.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %v -> %v", input.FromStopID, input.ToStopID)
		}
		from_stop, ok1 := stop_mapping[input.FromStopID]
		to_stop, ok2 := stop_mapping[input.ToStopID]
		if !ok1 || !ok2 {
			slog.Warn(fmt.Sprintf("skipping constraint %v -> %v: unknown stop", input.FromStopID, input.ToStopID))
			continue
		}
		sources := resolveSide(input.FromTripID, input.FromRouteID, from_stop, true, patterns, trip_refs)
		targets := resolveSide(input.ToTripID, input.ToRouteID, to_stop, false, patterns, trip_refs)
		if sources.Length() == 0 || targets.Length() == 0 {
			slog.Warn(fmt.Sprintf("skipping constraint %v -> %v: no matching trip", input.FromStopID, input.ToStopID))
			continue
		}
		for _, source := range sources {
			for _, target := range targets {
				constraints.Add(structs.ConstrainedTransfer{
					FromPattern: source.A,
					FromTrip:    source.B,
					FromStopPos: source.C,
					ToPattern:   target.A,
					ToTrip:      target.B,
					ToStopPos:   target.C,
					Constraint:  structs.TransferConstraint{Type: typ, MinTransferTime: input.MinTransferTime},
				})
			}
		}
	}
	return constraints, nil
}

// Returns (pattern, trip or -1, stop position) for one side of a constraint.
func resolveSide(trip_id, route_id string, stop int32, alight bool, patterns Array[comps.Pattern], trip_refs Dict[string, Tuple[int32, int32]]) List[Triple[int32, int32, int32]] {
	sides := NewList[Triple[int32, int32, int32]](1)
	if trip_id != "" {
		ref, ok := trip_refs[trip_id]
		if !ok {
			return sides
		}
		pos := stopPosition(&patterns[ref.A], stop, alight)
		if pos != -1 {
			sides.Add(MakeTriple(ref.A, ref.B, pos))
		}
		return sides
	}
	if route_id == "" {
		return sides
	}
	for i := range patterns {
		if patterns[i].RouteID != route_id {
			continue
		}
		pos := stopPosition(&patterns[i], stop, alight)
		if pos != -1 {
			sides.Add(MakeTriple(int32(i), int32(-1), pos))
		}
	}
	return sides
}

// Alighting uses the last visit of the stop, boarding the first.
func stopPosition(pattern *comps.Pattern, stop int32, alight bool) int32 {
	pos := int32(-1)
	for i, s := range pattern.Stops {
		if s != stop {
			continue
		}
		pos = int32(i)
		if !alight {
			break
		}
	}
	return pos
}

//*******************************************
// times
//*******************************************

// Parses HH:MM:SS into seconds since midnight.
func ParseTime(value string) (int32, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, errors.Errorf("invalid time %q", value)
	}
	var seconds int32
	for i, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || (i > 0 && num >= 60) {
			return 0, errors.Errorf("invalid time %q", value)
		}
		seconds = seconds*60 + int32(num)
	}
	return seconds, nil
}
