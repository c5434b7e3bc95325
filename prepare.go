package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/ttpr0/go-raptor/comps"
	"github.com/ttpr0/go-raptor/preproc"
	. "github.com/ttpr0/go-raptor/util"
)

// Builds the transit snapshot from the csv files in config.Source and
// stores it at config.Path.
//
// stops.csv, trips.csv and stop_times.csv are required, transfers.csv and
// constraints.csv are optional.
func PrepareSnapshot(config TransitConfig) (*comps.Transit, error) {
	delimiter := rune(config.Delimiter[0])
	stops, err := ReadCSVFromFile[preproc.StopInput](filepath.Join(config.Source, "stops.csv"), delimiter)
	if err != nil {
		return nil, err
	}
	trips, err := ReadCSVFromFile[preproc.TripInput](filepath.Join(config.Source, "trips.csv"), delimiter)
	if err != nil {
		return nil, err
	}
	stop_times, err := ReadCSVFromFile[preproc.StopTimeInput](filepath.Join(config.Source, "stop_times.csv"), delimiter)
	if err != nil {
		return nil, err
	}
	transfers, err := readOptionalCSV[preproc.TransferInput](filepath.Join(config.Source, "transfers.csv"), delimiter)
	if err != nil {
		return nil, err
	}
	constraints, err := readOptionalCSV[preproc.ConstraintInput](filepath.Join(config.Source, "constraints.csv"), delimiter)
	if err != nil {
		return nil, err
	}

	transit, err := preproc.PrepareTransit(stops, trips, stop_times, transfers, constraints, config.Options)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare transit")
	}
	if dir := filepath.Dir(config.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create %v", dir)
		}
	}
	if err := comps.Store(transit, config.Path); err != nil {
		return nil, err
	}
	meta := SnapshotMeta{
		Source:      config.Source,
		Created:     time.Now().Format(time.RFC3339),
		Stops:       transit.StopCount(),
		Patterns:    transit.PatternCount(),
		Transfers:   transit.TransferCount(),
		Constraints: transit.ConstrainedTransfers().Length(),
	}
	if err := WriteJSONToFile(meta, config.Path+"-meta"); err != nil {
		return nil, err
	}
	return transit, nil
}

type SnapshotMeta struct {
	Source      string `json:"source"`
	Created     string `json:"created"`
	Stops       int    `json:"stops"`
	Patterns    int    `json:"patterns"`
	Transfers   int    `json:"transfers"`
	Constraints int    `json:"constraints"`
}

func readOptionalCSV[T any](file string, delimiter rune) (List[T], error) {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return nil, nil
	}
	return ReadCSVFromFile[T](file, delimiter)
}
