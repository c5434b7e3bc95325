package raptor

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//*******************************************
// search profile
//*******************************************

type SearchProfile byte

const (
	STANDARD       SearchProfile = 0
	MULTI_CRITERIA SearchProfile = 1
	// standard search without paths, only stop arrivals
	BEST_TIME SearchProfile = 2
)

func (self SearchProfile) String() string {
	switch self {
	case STANDARD:
		return "standard"
	case MULTI_CRITERIA:
		return "multi-criteria"
	case BEST_TIME:
		return "best-time"
	default:
		panic("unknown search profile")
	}
}
func (self SearchProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *SearchProfile) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	profile, err := SearchProfileFromString(typ)
	*self = profile
	return err
}
func (self SearchProfile) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *SearchProfile) UnmarshalYAML(value *yaml.Node) error {
	var typ string
	if err := value.Decode(&typ); err != nil {
		return err
	}
	profile, err := SearchProfileFromString(typ)
	*self = profile
	return err
}

func SearchProfileFromString(s string) (SearchProfile, error) {
	switch s {
	case "standard":
		return STANDARD, nil
	case "multi-criteria":
		return MULTI_CRITERIA, nil
	case "best-time":
		return BEST_TIME, nil
	default:
		return STANDARD, errors.New("unknown search profile")
	}
}

//*******************************************
// search direction
//*******************************************

type SearchDirection byte

const (
	FORWARD SearchDirection = 0
	REVERSE SearchDirection = 1
)

func (self SearchDirection) String() string {
	switch self {
	case FORWARD:
		return "forward"
	case REVERSE:
		return "reverse"
	default:
		panic("unknown search direction")
	}
}
func (self SearchDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *SearchDirection) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	switch typ {
	case "forward":
		*self = FORWARD
	case "reverse":
		*self = REVERSE
	default:
		return errors.New("unknown search direction")
	}
	return nil
}

//*******************************************
// raptor request
//*******************************************

type RaptorRequest struct {
	Profile   SearchProfile
	Direction SearchDirection
	// TIME_NOT_SET if not given, required in the search direction
	EarliestDepartureTime int32
	LatestArrivalTime     int32
	SearchWindow          int32          `validate:"gte=0"`
	IterationStep         int32          `validate:"gt=0"`
	AccessPaths           []AccessEgress `validate:"min=1,dive"`
	EgressPaths           []AccessEgress `validate:"min=1,dive"`
	MaxNumberOfTransfers  int32          `validate:"gte=0"`
	AdditionalTransfers   int32          `validate:"gte=0"`
	// compare paths by departure time too
	Timetable                 bool
	EnableTransferConstraints bool
	Slack                     SlackParams
	Cost                      CostParams
	// no limit if zero
	Timeout       time.Duration  `validate:"gte=0"`
	DebugListener IDebugListener `validate:"-"`
}

func NewRaptorRequest() RaptorRequest {
	return RaptorRequest{
		Profile:               STANDARD,
		Direction:             FORWARD,
		EarliestDepartureTime: TIME_NOT_SET,
		LatestArrivalTime:     TIME_NOT_SET,
		SearchWindow:          0,
		IterationStep:         60,
		MaxNumberOfTransfers:  5,
		AdditionalTransfers:   5,
		Cost:                  DefaultCostParams(),
	}
}

func (self *RaptorRequest) SearchForward() bool {
	return self.Direction == FORWARD
}

// Number of boardings allowed.
func (self *RaptorRequest) MaxNumberOfRounds() int32 {
	return self.MaxNumberOfTransfers + 1
}

var validate = validator.New()

// Checks the request against a network with stop_count stops.
func (self *RaptorRequest) Validate(stop_count int32) error {
	if err := validate.Struct(self); err != nil {
		return errors.Wrap(ErrInvalidConfiguration, err.Error())
	}
	if self.Profile > BEST_TIME {
		return errors.Wrapf(ErrInvalidConfiguration, "unknown search profile %d", self.Profile)
	}
	if self.SearchForward() && self.EarliestDepartureTime == TIME_NOT_SET {
		return errors.Wrap(ErrInvalidConfiguration, "forward search requires an earliest departure time")
	}
	if !self.SearchForward() && self.LatestArrivalTime == TIME_NOT_SET {
		return errors.Wrap(ErrInvalidConfiguration, "reverse search requires a latest arrival time")
	}
	if self.EarliestDepartureTime != TIME_NOT_SET && self.LatestArrivalTime != TIME_NOT_SET && self.EarliestDepartureTime > self.LatestArrivalTime {
		return errors.Wrap(ErrInvalidConfiguration, "earliest departure time after latest arrival time")
	}
	for _, paths := range [][]AccessEgress{self.AccessPaths, self.EgressPaths} {
		for _, path := range paths {
			if path.Stop >= stop_count {
				return errors.Wrapf(ErrInvalidConfiguration, "access/egress to unknown stop %d", path.Stop)
			}
			if path.HasOpeningHours() && path.Opening > path.Closing {
				return errors.Wrapf(ErrInvalidConfiguration, "access/egress at stop %d closes before opening", path.Stop)
			}
		}
	}
	return nil
}
