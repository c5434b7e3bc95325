package main

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"github.com/ttpr0/go-raptor/preproc"
	"github.com/ttpr0/go-raptor/raptor"
)

//**********************************************************
// config
//**********************************************************

// Reads a yaml config, missing values keep their defaults.
func ReadConfig(file string) (Config, error) {
	slog.Info("Reading config file")
	config := DefaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		return config, errors.Wrap(err, "failed to read config file")
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "invalid config file %v", file)
	}
	if err := validator.New().Struct(config); err != nil {
		return config, errors.Wrapf(err, "invalid config file %v", file)
	}
	return config, nil
}

func DefaultConfig() Config {
	return Config{
		Transit: TransitConfig{
			Path:      "./graphs/transit",
			Source:    "./data/transit",
			Delimiter: ",",
			Options:   preproc.DefaultTransitOptions(),
		},
		Routing: RoutingConfig{
			Profile:             raptor.MULTI_CRITERIA,
			SearchWindow:        3600,
			IterationStep:       60,
			MaxTransfers:        5,
			AdditionalTransfers: 3,
			Timeout:             10 * time.Second,
			MaxAccessDistance:   800,
			Cost:                raptor.DefaultCostParams(),
		},
		Log: LogConfig{
			Level: "info",
		},
		Workers: 4,
	}
}

type Config struct {
	Transit TransitConfig `yaml:"transit"`
	Routing RoutingConfig `yaml:"routing"`
	Log     LogConfig     `yaml:"log"`
	// number of requests routed in parallel
	Workers int `yaml:"workers" validate:"gte=1"`
}

type TransitConfig struct {
	// prefix of the stored snapshot
	Path string `yaml:"path" validate:"required"`
	// directory with the csv files
	Source    string                 `yaml:"source"`
	Delimiter string                 `yaml:"delimiter" validate:"len=1"`
	Options   preproc.TransitOptions `yaml:"options"`
	// prepare the snapshot even if it exists
	Rebuild bool `yaml:"rebuild"`
}

type RoutingConfig struct {
	Profile             raptor.SearchProfile `yaml:"profile"`
	SearchWindow        int32                `yaml:"search-window" validate:"gte=0"`
	IterationStep       int32                `yaml:"iteration-step" validate:"gt=0"`
	MaxTransfers        int32                `yaml:"max-transfers" validate:"gte=0"`
	AdditionalTransfers int32                `yaml:"additional-transfers" validate:"gte=0"`
	Timeout             time.Duration        `yaml:"timeout" validate:"gte=0"`
	// meters around a coordinate searched for access and egress stops
	MaxAccessDistance float64            `yaml:"max-access-distance" validate:"gte=0"`
	Slack             raptor.SlackParams `yaml:"slack"`
	Cost              raptor.CostParams  `yaml:"cost"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}
