package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"golang.org/x/exp/slog"

	. "github.com/ttpr0/go-raptor/util"
)

const usage = `usage: go-raptor <command> [flags]

commands:
  prepare   build the transit snapshot from the csv source
  route     route the requests of a json file
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "prepare":
		err = runPrepare(os.Args[2:])
	case "route":
		err = runRoute(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func loadConfig(file string) (Config, error) {
	config, err := ReadConfig(file)
	if err != nil {
		return config, err
	}
	SetupLogging(config.Log, os.Stderr)
	return config, nil
}

// build transit snapshot from csv files
func runPrepare(args []string) error {
	flags := flag.NewFlagSet("prepare", flag.ExitOnError)
	config_file := flags.String("config", "./config.yaml", "config file")
	flags.Parse(args)

	config, err := loadConfig(*config_file)
	if err != nil {
		return err
	}
	transit, err := PrepareSnapshot(config.Transit)
	if err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("stored transit with %v stops to %v", transit.StopCount(), config.Transit.Path))
	return nil
}

// route a single request or an array of requests
func runRoute(args []string) error {
	flags := flag.NewFlagSet("route", flag.ExitOnError)
	config_file := flags.String("config", "./config.yaml", "config file")
	request_file := flags.String("request", "", "json file with the search request(s)")
	out_file := flags.String("out", "", "output file, stdout if empty")
	flags.Parse(args)

	config, err := loadConfig(*config_file)
	if err != nil {
		return err
	}
	if *request_file == "" {
		return errors.New("missing -request")
	}
	data, err := os.ReadFile(*request_file)
	if err != nil {
		return err
	}
	manager, err := NewRoutingManager(config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var result any
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var reqs []SearchRequest
		if err := json.Unmarshal(data, &reqs); err != nil {
			return err
		}
		result, err = manager.RouteMany(ctx, reqs)
		if err != nil {
			return err
		}
	} else {
		var req SearchRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return err
		}
		resp, err := manager.Route(ctx, req)
		if err != nil {
			result = NewErrorResponse(resp.ID, err.Error())
		} else {
			result = resp
		}
	}

	if *out_file == "" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return WriteJSONToFile(result, *out_file)
}
