package structs

import (
	"encoding/json"
	"errors"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

//*******************************************
// transit structs
//*******************************************

type Stop struct {
	ID   string
	Name string
	Loc  orb.Point
}

// Walking connection between two stops.
type Transfer struct {
	From     int32
	To       int32
	Duration int32
}

// Arrival and departure times of a single trip at every stop of its pattern.
type TripTimes struct {
	TripID     string
	Arrivals   []int32
	Departures []int32
}

//*******************************************
// transit modes
//*******************************************

type TransitMode byte

const (
	BUS    TransitMode = 0
	TRAM   TransitMode = 1
	SUBWAY TransitMode = 2
	RAIL   TransitMode = 3
	FERRY  TransitMode = 4
)

func (self TransitMode) String() string {
	switch self {
	case BUS:
		return "bus"
	case TRAM:
		return "tram"
	case SUBWAY:
		return "subway"
	case RAIL:
		return "rail"
	case FERRY:
		return "ferry"
	default:
		panic("unknown transit mode")
	}
}
func (self TransitMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *TransitMode) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	mode, err := TransitModeFromString(typ)
	*self = mode
	return err
}
func (self TransitMode) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *TransitMode) UnmarshalYAML(value *yaml.Node) error {
	mode, err := TransitModeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = mode
	return nil
}

func TransitModeFromString(s string) (TransitMode, error) {
	switch s {
	case "bus":
		return BUS, nil
	case "tram":
		return TRAM, nil
	case "subway":
		return SUBWAY, nil
	case "rail":
		return RAIL, nil
	case "ferry":
		return FERRY, nil
	default:
		return BUS, errors.New("unknown transit mode")
	}
}

//*******************************************
// transfer constraints
//*******************************************

type ConstraintType byte

const (
	REGULAR           ConstraintType = 0
	STAY_SEATED       ConstraintType = 1
	GUARANTEED        ConstraintType = 2
	MIN_TRANSFER_TIME ConstraintType = 3
	NOT_ALLOWED       ConstraintType = 4
)

func (self ConstraintType) String() string {
	switch self {
	case REGULAR:
		return "regular"
	case STAY_SEATED:
		return "stay-seated"
	case GUARANTEED:
		return "guaranteed"
	case MIN_TRANSFER_TIME:
		return "min-transfer-time"
	case NOT_ALLOWED:
		return "not-allowed"
	default:
		panic("unknown constraint type")
	}
}

func ConstraintTypeFromString(s string) (ConstraintType, error) {
	switch s {
	case "regular":
		return REGULAR, nil
	case "stay-seated":
		return STAY_SEATED, nil
	case "guaranteed":
		return GUARANTEED, nil
	case "min-transfer-time":
		return MIN_TRANSFER_TIME, nil
	case "not-allowed":
		return NOT_ALLOWED, nil
	default:
		return REGULAR, errors.New("unknown constraint type")
	}
}

type TransferConstraint struct {
	Type ConstraintType
	// only used by MIN_TRANSFER_TIME
	MinTransferTime int32
}

func (self TransferConstraint) IsRegular() bool {
	return self.Type == REGULAR
}
func (self TransferConstraint) IsNotAllowed() bool {
	return self.Type == NOT_ALLOWED
}

// Stay-seated and guaranteed transfers may board without regular slack.
func (self TransferConstraint) IsFacilitated() bool {
	return self.Type == STAY_SEATED || self.Type == GUARANTEED
}

// Constraint between the trip arriving at the source stop and the trips
// of the target pattern departing from the target stop.
//
// A FromTrip of -1 matches every trip of the source pattern.
type ConstrainedTransfer struct {
	FromPattern int32
	FromTrip    int32
	FromStopPos int32
	ToPattern   int32
	ToTrip      int32
	ToStopPos   int32
	Constraint  TransferConstraint
}

func (self ConstrainedTransfer) MatchesFromTrip(trip int32) bool {
	return self.FromTrip == -1 || self.FromTrip == trip
}
func (self ConstrainedTransfer) MatchesToTrip(trip int32) bool {
	return self.ToTrip == -1 || self.ToTrip == trip
}
