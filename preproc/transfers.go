package preproc

import (
	"math"

	"github.com/paulmach/orb/geo"
	"golang.org/x/exp/slices"

	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// walking transfers
//*******************************************

// meters per degree latitude
const lat_degree_length = 111_195.0

// Creates transfers in both directions between all stops closer than
// max_range meters. Durations are rounded up to full seconds.
func GenerateTransfers(stops Array[structs.Stop], max_range float64, walk_speed float64) List[structs.Transfer] {
	transfers := NewList[structs.Transfer](stops.Length())
	if max_range <= 0 || walk_speed <= 0 {
		return transfers
	}

	order := NewArray[int32](stops.Length())
	for i := range order {
		order[i] = int32(i)
	}
	slices.SortFunc(order, func(a, b int32) int {
		la := stops[a].Loc.Lat()
		lb := stops[b].Loc.Lat()
		if la < lb {
			return -1
		}
		if la > lb {
			return 1
		}
		return int(a - b)
	})

	max_lat_diff := max_range / lat_degree_length
	for i, a := range order {
		loc_a := stops[a].Loc
		for _, b := range order[i+1:] {
			loc_b := stops[b].Loc
			if loc_b.Lat()-loc_a.Lat() > max_lat_diff {
				break
			}
			dist := geo.Distance(loc_a, loc_b)
			if dist > max_range {
				continue
			}
			duration := int32(math.Ceil(dist / walk_speed))
			transfers.Add(structs.Transfer{From: a, To: b, Duration: duration})
			transfers.Add(structs.Transfer{From: b, To: a, Duration: duration})
		}
	}
	return transfers
}
