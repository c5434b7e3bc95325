package raptor

import (
	"math"

	"github.com/ttpr0/go-raptor/structs"
)

//*******************************************
// generalized cost
//*******************************************

type CostParams struct {
	BoardCost         int32   `yaml:"board-cost" json:"board_cost" validate:"gte=0"`
	TransferCost      int32   `yaml:"transfer-cost" json:"transfer_cost" validate:"gte=0"`
	AlightCost        int32   `yaml:"alight-cost" json:"alight_cost" validate:"gte=0"`
	WaitReluctance    float64 `yaml:"wait-reluctance" json:"wait_reluctance" validate:"gte=0"`
	TransitReluctance float64 `yaml:"transit-reluctance" json:"transit_reluctance" validate:"gte=0"`
	WalkReluctance    float64 `yaml:"walk-reluctance" json:"walk_reluctance" validate:"gte=0"`
}

func DefaultCostParams() CostParams {
	return CostParams{
		BoardCost:         60,
		TransferCost:      120,
		AlightCost:        0,
		WaitReluctance:    1.0,
		TransitReluctance: 1.0,
		WalkReluctance:    2.0,
	}
}

type CostCalculator struct {
	params CostParams
}

func NewCostCalculator(params CostParams) *CostCalculator {
	return &CostCalculator{
		params: params,
	}
}

// Cost of boarding a trip after waiting wait_time.
//
// The wait before the first boarding is free, facilitated transfers waive
// the transfer cost.
func (self *CostCalculator) BoardingCost(first_boarding bool, wait_time int32, constraint structs.TransferConstraint) int32 {
	cost := self.params.BoardCost
	if first_boarding {
		return cost
	}
	if !constraint.IsFacilitated() {
		cost += self.params.TransferCost
	}
	return cost + scaleCost(wait_time, self.params.WaitReluctance)
}

func (self *CostCalculator) TransitArrivalCost(ride_time int32) int32 {
	return scaleCost(ride_time, self.params.TransitReluctance) + self.params.AlightCost
}

// Cost of riding for duration, negative durations give negative costs.
func (self *CostCalculator) TransitCost(duration int32) int32 {
	return int32(math.Round(float64(duration) * self.params.TransitReluctance))
}

func (self *CostCalculator) WalkCost(duration int32) int32 {
	return scaleCost(duration, self.params.WalkReluctance)
}

func (self *CostCalculator) WaitCost(wait_time int32) int32 {
	return scaleCost(wait_time, self.params.WaitReluctance)
}

func scaleCost(duration int32, factor float64) int32 {
	if duration <= 0 {
		return 0
	}
	return int32(math.Round(float64(duration) * factor))
}
