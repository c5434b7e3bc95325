package raptor

//*******************************************
// round tracker
//*******************************************

// Keeps track of the current round. Round 0 holds the access arrivals,
// round n the arrivals after n boardings.
type RoundTracker struct {
	round int32
	// upper bound given by the request
	max_rounds int32
	// lowered once the destination is reached
	round_limit          int32
	additional_transfers int32
	destination_reached  bool
}

func NewRoundTracker(max_rounds, additional_transfers int32) *RoundTracker {
	return &RoundTracker{
		max_rounds:           max_rounds,
		round_limit:          max_rounds,
		additional_transfers: additional_transfers,
	}
}

func (self *RoundTracker) SetupIteration(departure_time int32) {
	self.round = 0
}

func (self *RoundTracker) NextRound() int32 {
	self.round += 1
	return self.round
}

func (self *RoundTracker) Round() int32 {
	return self.round
}

func (self *RoundTracker) IsFirstRound() bool {
	return self.round <= 1
}

func (self *RoundTracker) HasMoreRounds() bool {
	return self.round < self.round_limit
}

// Limits the remaining rounds the first time the destination is reached.
func (self *RoundTracker) RoundComplete(destination_reached bool) {
	if !destination_reached || self.destination_reached {
		return
	}
	self.destination_reached = true
	limit := self.round + self.additional_transfers
	if limit < self.round_limit {
		self.round_limit = limit
	}
}
