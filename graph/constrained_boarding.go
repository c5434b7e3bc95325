package graph

import (
	"github.com/ttpr0/go-raptor/raptor"
	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// constrained boarding search
//*******************************************

// Constrained transfers boarding a single pattern.
//
// Forward searches board the target (To) side of a transfer, reverse
// searches board the source (From) side and match on the target trip.
func NewConstrainedBoardingSearch(forward bool) *ConstrainedBoardingSearch {
	return &ConstrainedBoardingSearch{
		forward:   forward,
		transfers: NewList[structs.ConstrainedTransfer](4),
	}
}

type ConstrainedBoardingSearch struct {
	forward   bool
	transfers List[structs.ConstrainedTransfer]
}

func (self *ConstrainedBoardingSearch) add(transfer structs.ConstrainedTransfer) {
	self.transfers.Add(transfer)
}

func (self *ConstrainedBoardingSearch) boardPos(transfer *structs.ConstrainedTransfer) int32 {
	if self.forward {
		return transfer.ToStopPos
	}
	return transfer.FromStopPos
}
func (self *ConstrainedBoardingSearch) matchesSource(transfer *structs.ConstrainedTransfer, pattern, trip, stop_pos int32) bool {
	if self.forward {
		return transfer.FromPattern == pattern && transfer.FromStopPos == stop_pos && transfer.MatchesFromTrip(trip)
	}
	return transfer.ToPattern == pattern && transfer.ToStopPos == stop_pos && transfer.MatchesToTrip(trip)
}
func (self *ConstrainedBoardingSearch) boardTrip(transfer *structs.ConstrainedTransfer) int32 {
	if self.forward {
		return transfer.ToTrip
	}
	return transfer.FromTrip
}

func (self *ConstrainedBoardingSearch) TransferExist(target_stop_pos int32) bool {
	for i := range self.transfers {
		if self.boardPos(&self.transfers[i]) == target_stop_pos {
			return true
		}
	}
	return false
}

func (self *ConstrainedBoardingSearch) Find(timetable raptor.ITimeTable, source_trip raptor.ITripSchedule, source_stop_pos int32, source_time int32, target_stop_pos int32, earliest_board_time int32) raptor.ConstrainedBoarding {
	source_pattern := source_trip.Pattern().PatternIndex()
	source_index := source_trip.TripSortIndex()
	matching := NewList[*structs.ConstrainedTransfer](2)
	all_regular := true
	for i := range self.transfers {
		transfer := &self.transfers[i]
		if self.boardPos(transfer) != target_stop_pos {
			continue
		}
		if !self.matchesSource(transfer, source_pattern, source_index, source_stop_pos) {
			continue
		}
		if transfer.Constraint.IsNotAllowed() && self.boardTrip(transfer) == -1 {
			return raptor.ConstrainedBoarding{Kind: raptor.BLOCKED}
		}
		if !transfer.Constraint.IsRegular() {
			all_regular = false
		}
		matching.Add(transfer)
	}
	if matching.Length() == 0 || all_regular {
		return raptor.ConstrainedBoarding{Kind: raptor.REGULAR_ALLOWED}
	}

	count := timetable.NumberOfTripSchedules()
	for k := int32(0); k < count; k++ {
		index := k
		if !self.forward {
			index = count - 1 - k
		}
		transfer := self.mostSpecific(matching, index)
		earliest := earliest_board_time
		constraint := structs.TransferConstraint{Type: structs.REGULAR}
		if transfer != nil {
			constraint = transfer.Constraint
			switch constraint.Type {
			case structs.NOT_ALLOWED:
				continue
			case structs.STAY_SEATED, structs.GUARANTEED:
				earliest = source_time
			case structs.MIN_TRANSFER_TIME:
				if self.forward {
					earliest = source_time + constraint.MinTransferTime
				} else {
					earliest = source_time - constraint.MinTransferTime
				}
			}
		}
		trip := timetable.GetTripSchedule(index)
		var time int32
		if self.forward {
			time = trip.Departure(target_stop_pos)
			if time < earliest {
				continue
			}
		} else {
			time = trip.Arrival(target_stop_pos)
			if time > earliest {
				continue
			}
		}
		return raptor.ConstrainedBoarding{
			Kind: raptor.CONSTRAINED_TIME,
			Event: raptor.TripEvent{
				Trip:              trip,
				TripIndex:         index,
				StopPos:           target_stop_pos,
				Time:              time,
				EarliestBoardTime: earliest,
				Constraint:        constraint,
			},
		}
	}
	return raptor.ConstrainedBoarding{Kind: raptor.BLOCKED}
}

// A constraint naming the boarded trip wins over one for all trips.
func (self *ConstrainedBoardingSearch) mostSpecific(transfers List[*structs.ConstrainedTransfer], trip int32) *structs.ConstrainedTransfer {
	var general *structs.ConstrainedTransfer
	for _, transfer := range transfers {
		board_trip := self.boardTrip(transfer)
		if board_trip == trip {
			return transfer
		}
		if board_trip == -1 && general == nil {
			general = transfer
		}
	}
	return general
}
