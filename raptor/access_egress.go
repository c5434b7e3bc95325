package raptor

//*******************************************
// access and egress legs
//*******************************************

// Street leg connecting the origin (access) or the destination (egress)
// with a stop.
type AccessEgress struct {
	Stop     int32 `json:"stop" validate:"gte=0"`
	Duration int32 `json:"duration" validate:"gte=0"`
	Cost     int32 `json:"cost" validate:"gte=0"`
	// added to the duration while searching, never part of the path times
	TimePenalty   int32 `json:"time_penalty" validate:"gte=0"`
	NumberOfRides int32 `json:"number_of_rides" validate:"gte=0"`
	// the leg ends on-board a vehicle, transfers may follow like after transit
	StopReachedOnBoard bool `json:"stop_reached_on_board"`
	// departure window of the leg, TIME_NOT_SET if always open
	Opening int32 `json:"opening"`
	Closing int32 `json:"closing"`
}

func NewWalkAccessEgress(stop, duration, cost int32) AccessEgress {
	return AccessEgress{
		Stop:     stop,
		Duration: duration,
		Cost:     cost,
		Opening:  TIME_NOT_SET,
		Closing:  TIME_NOT_SET,
	}
}

func (self *AccessEgress) DurationInSearch() int32 {
	return self.Duration + self.TimePenalty
}
func (self *AccessEgress) HasTimePenalty() bool {
	return self.TimePenalty > 0
}
func (self *AccessEgress) HasRides() bool {
	return self.NumberOfRides > 0
}
func (self *AccessEgress) StopReachedByWalking() bool {
	return !self.StopReachedOnBoard
}
func (self *AccessEgress) HasOpeningHours() bool {
	return self.Opening != TIME_NOT_SET && self.Closing != TIME_NOT_SET
}

// Earliest departure at or after time, TIME_NOT_SET if the leg is closed.
func (self *AccessEgress) EarliestDepartureTime(time int32) int32 {
	if !self.HasOpeningHours() {
		return time
	}
	if time < self.Opening {
		return self.Opening
	}
	if time > self.Closing {
		return TIME_NOT_SET
	}
	return time
}

// Latest arrival at or before time, TIME_NOT_SET if the leg is closed.
func (self *AccessEgress) LatestArrivalTime(time int32) int32 {
	if !self.HasOpeningHours() {
		return time
	}
	departure := time - self.Duration
	if departure > self.Closing {
		return self.Closing + self.Duration
	}
	if departure < self.Opening {
		return TIME_NOT_SET
	}
	return time
}
