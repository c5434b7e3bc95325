package raptor

import (
	"golang.org/x/exp/slog"
)

//*******************************************
// debug listener
//*******************************************

type EventType byte

const (
	ACCEPTED EventType = 0
	REJECTED EventType = 1
	DROPPED  EventType = 2
)

func (self EventType) String() string {
	switch self {
	case ACCEPTED:
		return "accepted"
	case REJECTED:
		return "rejected"
	case DROPPED:
		return "dropped"
	default:
		panic("unknown event type")
	}
}

type ArrivalEvent struct {
	Type    EventType
	Arrival StopArrival
	Reason  string
}

type PathEvent struct {
	Type   EventType
	Path   *Path
	Reason string
}

// Receives every stop arrival and path decision of a search.
type IDebugListener interface {
	// stops to report arrivals for, nil reports all
	Stops() []int32
	OnStopArrival(event ArrivalEvent)
	OnPath(event PathEvent)
}

//*******************************************
// log listener
//*******************************************

type LogDebugListener struct {
	search_id string
	stops     []int32
	logger    *slog.Logger
}

func NewLogDebugListener(search_id string, stops []int32) *LogDebugListener {
	return &LogDebugListener{
		search_id: search_id,
		stops:     stops,
		logger:    slog.Default().With(slog.String("search", search_id)),
	}
}

func (self *LogDebugListener) Stops() []int32 {
	return self.stops
}
func (self *LogDebugListener) OnStopArrival(event ArrivalEvent) {
	self.logger.Debug("stop arrival "+event.Type.String(),
		slog.String("type", event.Arrival.Type.String()),
		slog.Int("stop", int(event.Arrival.Stop)),
		slog.Int("round", int(event.Arrival.Round)),
		slog.String("time", FormatTime(event.Arrival.Time)),
		slog.Int("cost", int(event.Arrival.Cost)),
		slog.String("reason", event.Reason),
	)
}
func (self *LogDebugListener) OnPath(event PathEvent) {
	self.logger.Debug("path "+event.Type.String(),
		slog.String("path", event.Path.String()),
		slog.String("reason", event.Reason),
	)
}

//*******************************************
// debug handler
//*******************************************

// Filters events by stop before passing them to the listener.
type debugHandler struct {
	listener IDebugListener
	stops    map[int32]bool
}

func newDebugHandler(listener IDebugListener) *debugHandler {
	if listener == nil {
		return nil
	}
	var stops map[int32]bool
	if listener.Stops() != nil {
		stops = make(map[int32]bool, len(listener.Stops()))
		for _, stop := range listener.Stops() {
			stops[stop] = true
		}
	}
	return &debugHandler{
		listener: listener,
		stops:    stops,
	}
}

func (self *debugHandler) arrival(typ EventType, arrival *StopArrival, reason string) {
	if self == nil {
		return
	}
	if self.stops != nil && !self.stops[arrival.Stop] {
		return
	}
	self.listener.OnStopArrival(ArrivalEvent{
		Type:    typ,
		Arrival: *arrival,
		Reason:  reason,
	})
}

func (self *debugHandler) path(typ EventType, path *Path, reason string) {
	if self == nil {
		return
	}
	self.listener.OnPath(PathEvent{
		Type:   typ,
		Path:   path,
		Reason: reason,
	})
}

//*******************************************
// noop listener
//*******************************************

type NoopDebugListener struct{}

func (self NoopDebugListener) Stops() []int32 {
	return []int32{}
}
func (self NoopDebugListener) OnStopArrival(event ArrivalEvent) {}
func (self NoopDebugListener) OnPath(event PathEvent) {}
