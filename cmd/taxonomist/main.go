// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/taxonomist"
	"github.com/poiesic/taxonomist/core"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "taxonomist",
		Usage: "Resolve free-text device descriptions into classification codes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringSliceFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "TOML configuration file; later files override earlier ones",
			},
			&cli.StringFlag{
				Name:    "mirror",
				Aliases: []string{"m"},
				Usage:   "Path to a local BadgerDB mirror; the openFDA service is used when empty",
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "openFDA API key",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "resolve",
				Usage:     "Resolve one query",
				ArgsUsage: "QUERY...",
				Action:    resolveCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Restrict results with field=value, may be repeated",
					},
					&cli.BoolFlag{
						Name:  "trace",
						Usage: "Print every search step while resolving",
					},
				},
			},
			{
				Name:      "batch",
				Usage:     "Resolve one query per line of a file",
				ArgsUsage: "FILE",
				Action:    batchCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Restrict results with field=value, may be repeated",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of queries resolved concurrently",
						Value: 4,
					},
				},
			},
			{
				Name:      "ingest",
				Usage:     "Load openFDA bulk documents into the local mirror",
				ArgsUsage: "FILE...",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "collection",
						Usage:    "Collection the files belong to (taxonomy, corpus)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to store in each batch",
						Value: 500,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 1000,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed batches",
						Value: 3,
					},
				},
			},
		},
	}
}

// openEngine builds the engine from config files and global flags.
func openEngine(c *cli.Context) (*taxonomist.Engine, error) {
	cfg, err := taxonomist.LoadConfig(c.StringSlice("config")...)
	if err != nil {
		return nil, err
	}
	if mirror := c.String("mirror"); mirror != "" {
		cfg.Mirror.Path = mirror
	}
	if key := c.String("api-key"); key != "" {
		cfg.OpenFDA.APIKey = key
	}

	engine, err := taxonomist.NewEngine(cfg, taxonomist.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("failed to open indexes: %w", err)
	}
	return engine, nil
}

// parseFilters turns field=value pairs into filters.
func parseFilters(values []string) (core.Filters, error) {
	var filters core.Filters
	for _, v := range values {
		field, value, ok := strings.Cut(v, "=")
		field = strings.TrimSpace(field)
		value = strings.TrimSpace(value)
		if !ok || field == "" || value == "" {
			return nil, fmt.Errorf("invalid filter %q: expected field=value", v)
		}
		filters = append(filters, core.Filter{Field: field, Value: value})
	}
	return filters, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
