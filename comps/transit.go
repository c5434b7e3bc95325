package comps

import (
	"os"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// patterns
//*******************************************

const (
	BOARDING_ALLOWED  byte = 1
	ALIGHTING_ALLOWED byte = 2
)

// Stop sequence shared by all trips of a pattern.
type Pattern struct {
	RouteID    string
	Mode       structs.TransitMode
	SlackIndex int32
	Stops      Array[int32]
	// boarding/alighting flags per stop position
	Flags Array[byte]
}

func (self *Pattern) BoardingAllowed(stop_pos int32) bool {
	return self.Flags[stop_pos]&BOARDING_ALLOWED != 0
}
func (self *Pattern) AlightingAllowed(stop_pos int32) bool {
	return self.Flags[stop_pos]&ALIGHTING_ALLOWED != 0
}

//*******************************************
// transit snapshot
//*******************************************

// Trips of every pattern have to be sorted by departure time.
func NewTransit(stops Array[structs.Stop], patterns Array[Pattern], trips Array[Array[structs.TripTimes]], transfers Array[structs.Transfer], constraints Array[structs.ConstrainedTransfer]) *Transit {
	stop_count := stops.Length()
	transfer_refs, transfer_list := buildAdjacency(stop_count, transfers, func(t structs.Transfer) int32 { return t.From })
	rev_transfer_refs, rev_transfer_list := buildAdjacency(stop_count, transfers, func(t structs.Transfer) int32 { return t.To })

	pattern_refs := NewArray[int32](stop_count + 1)
	for _, pattern := range patterns {
		for _, stop := range uniqueStops(pattern.Stops, stop_count) {
			pattern_refs[stop+1] += 1
		}
	}
	for i := 1; i < pattern_refs.Length(); i++ {
		pattern_refs[i] += pattern_refs[i-1]
	}
	pattern_list := NewArray[int32](int(pattern_refs[stop_count]))
	fill := NewArray[int32](stop_count)
	for p, pattern := range patterns {
		for _, stop := range uniqueStops(pattern.Stops, stop_count) {
			pattern_list[pattern_refs[stop]+fill[stop]] = int32(p)
			fill[stop] += 1
		}
	}

	stop_index := NewDict[string, int32](stop_count)
	for i, stop := range stops {
		stop_index[stop.ID] = int32(i)
	}

	return &Transit{
		stops:             stops,
		stop_index:        stop_index,
		patterns:          patterns,
		trips:             trips,
		transfers:         transfers,
		transfer_refs:     transfer_refs,
		transfer_list:     transfer_list,
		rev_transfer_refs: rev_transfer_refs,
		rev_transfer_list: rev_transfer_list,
		pattern_refs:      pattern_refs,
		pattern_list:      pattern_list,
		constraints:       constraints,
	}
}

// Immutable transit network, shared by all searches.
type Transit struct {
	stops      Array[structs.Stop]
	stop_index Dict[string, int32]
	patterns   Array[Pattern]
	trips      Array[Array[structs.TripTimes]]
	transfers  Array[structs.Transfer]

	transfer_refs     Array[int32]
	transfer_list     Array[structs.Transfer]
	rev_transfer_refs Array[int32]
	rev_transfer_list Array[structs.Transfer]
	pattern_refs      Array[int32]
	pattern_list      Array[int32]

	constraints Array[structs.ConstrainedTransfer]
}

func (self *Transit) StopCount() int {
	return self.stops.Length()
}
func (self *Transit) GetStop(stop int32) structs.Stop {
	return self.stops[stop]
}
func (self *Transit) FindStop(id string) (int32, bool) {
	stop, ok := self.stop_index[id]
	return stop, ok
}
func (self *Transit) PatternCount() int {
	return self.patterns.Length()
}
func (self *Transit) GetPattern(pattern int32) *Pattern {
	return &self.patterns[pattern]
}
func (self *Transit) GetTrips(pattern int32) Array[structs.TripTimes] {
	return self.trips[pattern]
}
func (self *Transit) TransferCount() int {
	return self.transfers.Length()
}
func (self *Transit) GetTransfersFrom(stop int32) []structs.Transfer {
	return self.transfer_list[self.transfer_refs[stop]:self.transfer_refs[stop+1]]
}
func (self *Transit) GetTransfersTo(stop int32) []structs.Transfer {
	return self.rev_transfer_list[self.rev_transfer_refs[stop]:self.rev_transfer_refs[stop+1]]
}
func (self *Transit) GetPatternsAtStop(stop int32) []int32 {
	return self.pattern_list[self.pattern_refs[stop]:self.pattern_refs[stop+1]]
}
func (self *Transit) ConstrainedTransfers() Array[structs.ConstrainedTransfer] {
	return self.constraints
}

func buildAdjacency(stop_count int, transfers Array[structs.Transfer], key func(structs.Transfer) int32) (Array[int32], Array[structs.Transfer]) {
	refs := NewArray[int32](stop_count + 1)
	for _, transfer := range transfers {
		stop := key(transfer)
		if stop < 0 || int(stop) >= stop_count {
			continue
		}
		refs[stop+1] += 1
	}
	for i := 1; i < refs.Length(); i++ {
		refs[i] += refs[i-1]
	}
	list := NewArray[structs.Transfer](int(refs[stop_count]))
	fill := NewArray[int32](stop_count)
	for _, transfer := range transfers {
		stop := key(transfer)
		if stop < 0 || int(stop) >= stop_count {
			continue
		}
		list[refs[stop]+fill[stop]] = transfer
		fill[stop] += 1
	}
	return refs, list
}

// Unknown stops are skipped, they are reported by the graph validation.
func uniqueStops(stops Array[int32], stop_count int) List[int32] {
	unique := NewList[int32](stops.Length())
	seen := NewDict[int32, bool](stops.Length())
	for _, stop := range stops {
		if stop < 0 || int(stop) >= stop_count || seen[stop] {
			continue
		}
		seen[stop] = true
		unique.Add(stop)
	}
	return unique
}

//*******************************************
// store and load
//*******************************************

const transit_magic int32 = 0x52505431

func (self *Transit) _New() *Transit {
	return &Transit{}
}
func (self *Transit) _Load(path string) error {
	reader, err := ReadBufferFromFile(path + "-transit")
	if err != nil {
		return err
	}
	if Read[int32](reader) != transit_magic {
		return errors.Errorf("invalid transit file %v", path+"-transit")
	}

	stop_count := Read[int32](reader)
	stops := NewArray[structs.Stop](int(stop_count))
	for i := range stops {
		id := ReadString(reader)
		name := ReadString(reader)
		lon := Read[float64](reader)
		lat := Read[float64](reader)
		stops[i] = structs.Stop{ID: id, Name: name, Loc: orb.Point{lon, lat}}
	}

	pattern_count := Read[int32](reader)
	patterns := NewArray[Pattern](int(pattern_count))
	trips := NewArray[Array[structs.TripTimes]](int(pattern_count))
	for i := range patterns {
		patterns[i] = Pattern{
			RouteID:    ReadString(reader),
			Mode:       Read[structs.TransitMode](reader),
			SlackIndex: Read[int32](reader),
			Stops:      ReadArray[int32](reader),
			Flags:      ReadArray[byte](reader),
		}
		trip_count := Read[int32](reader)
		pattern_trips := NewArray[structs.TripTimes](int(trip_count))
		for j := range pattern_trips {
			pattern_trips[j] = structs.TripTimes{
				TripID:     ReadString(reader),
				Arrivals:   ReadArray[int32](reader),
				Departures: ReadArray[int32](reader),
			}
		}
		trips[i] = pattern_trips
	}

	transfers := ReadArray[structs.Transfer](reader)
	constraints := ReadArray[structs.ConstrainedTransfer](reader)

	*self = *NewTransit(stops, patterns, trips, transfers, constraints)
	return nil
}
func (self *Transit) _Store(path string) error {
	writer := NewBufferWriter()
	Write(writer, transit_magic)

	Write(writer, int32(self.stops.Length()))
	for _, stop := range self.stops {
		WriteString(writer, stop.ID)
		WriteString(writer, stop.Name)
		Write(writer, stop.Loc.Lon())
		Write(writer, stop.Loc.Lat())
	}

	Write(writer, int32(self.patterns.Length()))
	for i, pattern := range self.patterns {
		WriteString(writer, pattern.RouteID)
		Write(writer, pattern.Mode)
		Write(writer, pattern.SlackIndex)
		WriteArray(writer, pattern.Stops)
		WriteArray(writer, pattern.Flags)
		pattern_trips := self.trips[i]
		Write(writer, int32(pattern_trips.Length()))
		for _, trip := range pattern_trips {
			WriteString(writer, trip.TripID)
			WriteArray(writer, Array[int32](trip.Arrivals))
			WriteArray(writer, Array[int32](trip.Departures))
		}
	}

	WriteArray(writer, self.transfers)
	WriteArray(writer, self.constraints)

	return WriteBufferToFile(writer, path+"-transit")
}
func (self *Transit) _Remove(path string) error {
	if err := os.Remove(path + "-transit"); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove %v", path+"-transit")
	}
	return nil
}
