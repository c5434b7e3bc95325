package raptor

import (
	"fmt"
	"strings"

	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// paths
//*******************************************

type LegType byte

const (
	ACCESS_LEG   LegType = 0
	TRANSIT_LEG  LegType = 1
	TRANSFER_LEG LegType = 2
	EGRESS_LEG   LegType = 3
)

func (self LegType) String() string {
	switch self {
	case ACCESS_LEG:
		return "access"
	case TRANSIT_LEG:
		return "transit"
	case TRANSFER_LEG:
		return "transfer"
	case EGRESS_LEG:
		return "egress"
	default:
		panic("unknown leg type")
	}
}

// Leg of a path in real time order.
type PathLeg struct {
	Type LegType
	// -1 for the origin of access legs and the destination of egress legs
	FromStop int32
	ToStop   int32
	FromTime int32
	ToTime   int32
	Duration int32

	// transit legs
	Trip      ITripSchedule
	BoardPos  int32
	AlightPos int32
	// constraint of the transfer onto this trip
	Constraint structs.TransferConstraint

	// access and egress legs
	AccessEgress *AccessEgress
}

type Path struct {
	StartTime         int32
	EndTime           int32
	NumberOfTransfers int32
	Cost              int32
	Iteration         int32
	Legs              []PathLeg
}

func (self *Path) Duration() int32 {
	return self.EndTime - self.StartTime
}

func (self *Path) TransitLegs() List[PathLeg] {
	legs := NewList[PathLeg](len(self.Legs))
	for _, leg := range self.Legs {
		if leg.Type == TRANSIT_LEG {
			legs.Add(leg)
		}
	}
	return legs
}

func (self *Path) String() string {
	builder := strings.Builder{}
	for i, leg := range self.Legs {
		if i > 0 {
			builder.WriteString(" ~ ")
		}
		switch leg.Type {
		case ACCESS_LEG, EGRESS_LEG:
			builder.WriteString(fmt.Sprintf("Walk %s", FormatDuration(leg.Duration)))
			if leg.AccessEgress != nil && leg.AccessEgress.HasRides() {
				builder.WriteString(fmt.Sprintf(" %dx", leg.AccessEgress.NumberOfRides))
			}
		case TRANSFER_LEG:
			builder.WriteString(fmt.Sprintf("%d ~ Walk %s ~ %d", leg.FromStop, FormatDuration(leg.Duration), leg.ToStop))
		case TRANSIT_LEG:
			builder.WriteString(fmt.Sprintf("%d ~ %s %s %s ~ %d", leg.FromStop, leg.Trip.Pattern().DebugInfo(), FormatTime(leg.FromTime), FormatTime(leg.ToTime), leg.ToStop))
		}
	}
	builder.WriteString(fmt.Sprintf(" [%s %s %s, %dtx, $%d]", FormatTime(self.StartTime), FormatTime(self.EndTime), FormatDuration(self.Duration()), self.NumberOfTransfers, self.Cost))
	return builder.String()
}

// Formats seconds since midnight as HH:MM:SS.
func FormatTime(time int32) string {
	sign := ""
	if time < 0 {
		sign = "-"
		time = -time
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, time/3600, (time/60)%60, time%60)
}

func FormatDuration(duration int32) string {
	if duration%60 == 0 {
		return fmt.Sprintf("%dm", duration/60)
	}
	if duration < 60 {
		return fmt.Sprintf("%ds", duration)
	}
	return fmt.Sprintf("%dm%ds", duration/60, duration%60)
}

//*******************************************
// path mapper
//*******************************************

// Maps destination arrivals to paths in real time order.
type PathMapper struct {
	calc  ITransitCalculator
	slack ISlackProvider
	arena *ArrivalArena
}

// slack has to be given in real time direction.
func NewPathMapper(calc ITransitCalculator, slack ISlackProvider, arena *ArrivalArena) *PathMapper {
	return &PathMapper{
		calc:  calc,
		slack: slack,
		arena: arena,
	}
}

func (self *PathMapper) MapToPath(destination DestinationArrival) *Path {
	chain := self.arena.Chain(destination.Previous)
	k := len(chain) - 1
	legs := NewList[PathLeg](len(chain) + 2)
	var start_hint int32
	if self.calc.SearchForward() {
		first := &chain[k]
		legs.Add(newAccessLeg(first.Access, first.Stop))
		for i := k - 1; i >= 0; i-- {
			legs.Add(self.mapArrival(&chain[i], chain[i+1].Stop))
		}
		legs.Add(newEgressLeg(destination.Egress, chain[0].Stop))
		start_hint = first.Time - first.Access.DurationInSearch()
	} else {
		last := &chain[k]
		legs.Add(newAccessLeg(destination.Egress, chain[0].Stop))
		for i := 0; i < k; i++ {
			legs.Add(self.mapArrival(&chain[i], chain[i+1].Stop))
		}
		legs.Add(newEgressLeg(last.Access, last.Stop))
		start_hint = destination.Time + destination.Egress.TimePenalty
		shiftConstraints(legs)
	}
	self.computeTimes(legs, start_hint)

	return &Path{
		StartTime:         legs[0].FromTime,
		EndTime:           legs[len(legs)-1].ToTime,
		NumberOfTransfers: destination.NumberOfTransfers,
		Cost:              destination.Cost,
		Iteration:         destination.Iteration,
		Legs:              legs,
	}
}

func (self *PathMapper) mapArrival(arrival *StopArrival, prev_stop int32) PathLeg {
	switch arrival.Type {
	case TRANSIT_ARRIVAL:
		board_pos := arrival.BoardPos
		alight_pos := arrival.AlightPos
		if board_pos > alight_pos {
			board_pos, alight_pos = alight_pos, board_pos
		}
		pattern := arrival.Trip.Pattern()
		from_time := arrival.Trip.Departure(board_pos)
		to_time := arrival.Trip.Arrival(alight_pos)
		return PathLeg{
			Type:       TRANSIT_LEG,
			FromStop:   pattern.StopIndex(board_pos),
			ToStop:     pattern.StopIndex(alight_pos),
			FromTime:   from_time,
			ToTime:     to_time,
			Duration:   to_time - from_time,
			Trip:       arrival.Trip,
			BoardPos:   board_pos,
			AlightPos:  alight_pos,
			Constraint: arrival.Constraint,
		}
	case TRANSFER_ARRIVAL:
		from, to := prev_stop, arrival.Stop
		if !self.calc.SearchForward() {
			from, to = to, from
		}
		return PathLeg{
			Type:     TRANSFER_LEG,
			FromStop: from,
			ToStop:   to,
			Duration: arrival.Duration,
		}
	default:
		panic("access arrival inside of arrival chain")
	}
}

// Legs before the first transit leg are time-shifted to end just before
// boarding, legs after a transit leg start right after alighting.
func (self *PathMapper) computeTimes(legs List[PathLeg], start_hint int32) {
	first := -1
	for i := range legs {
		if legs[i].Type == TRANSIT_LEG {
			first = i
			break
		}
	}
	if first == -1 {
		legs[0].FromTime = start_hint
		legs[0].ToTime = start_hint + legs[0].Duration
		first = 0
	}
	for j := first - 1; j >= 0; j-- {
		next := &legs[j+1]
		to := next.FromTime
		if next.Type == TRANSIT_LEG {
			to -= self.slack.BoardSlack(next.Trip.Pattern().SlackIndex())
			if legs[j].AccessEgress != nil && legs[j].AccessEgress.HasRides() {
				to -= self.slack.TransferSlack()
			}
		}
		if j == 0 {
			if t := legs[0].AccessEgress.LatestArrivalTime(to); t != TIME_NOT_SET {
				to = t
			}
		}
		legs[j].ToTime = to
		legs[j].FromTime = to - legs[j].Duration
	}
	for i := first + 1; i < len(legs); i++ {
		if legs[i].Type == TRANSIT_LEG {
			continue
		}
		prev := &legs[i-1]
		from := prev.ToTime
		if prev.Type == TRANSIT_LEG {
			from += self.slack.AlightSlack(prev.Trip.Pattern().SlackIndex())
		}
		if i == len(legs)-1 {
			if t := legs[i].AccessEgress.EarliestDepartureTime(from); t != TIME_NOT_SET {
				from = t
			}
		}
		legs[i].FromTime = from
		legs[i].ToTime = from + legs[i].Duration
	}
}

// Reverse searches store constraints on the earlier trip, moves them to
// the trip boarded after the transfer.
func shiftConstraints(legs List[PathLeg]) {
	var pending structs.TransferConstraint
	for i := range legs {
		if legs[i].Type != TRANSIT_LEG {
			continue
		}
		constraint := legs[i].Constraint
		legs[i].Constraint = pending
		pending = constraint
	}
}

func newAccessLeg(access *AccessEgress, stop int32) PathLeg {
	return PathLeg{
		Type:         ACCESS_LEG,
		FromStop:     -1,
		ToStop:       stop,
		Duration:     access.Duration,
		AccessEgress: access,
	}
}

func newEgressLeg(egress *AccessEgress, stop int32) PathLeg {
	return PathLeg{
		Type:         EGRESS_LEG,
		FromStop:     stop,
		ToStop:       -1,
		Duration:     egress.Duration,
		AccessEgress: egress,
	}
}
