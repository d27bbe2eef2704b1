package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/sbb/pkg/config"
	"github.com/travigo/sbb/pkg/sbbapi"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slices"
	"golang.org/x/time/rate"
)

var outputFormats = []string{OutputText, OutputJSON}

func RegisterCLI() []*cli.Command {
	return []*cli.Command{
		connectionsCommand(),
		placesCommand(),
		batchCommand(),
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "endpoint",
			Usage: "Override the API endpoint (SBB_API_ENDPOINT)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Give up waiting for the server after this long (SBB_TIMEOUT)",
		},
		&cli.StringFlag{
			Name:  "output",
			Value: OutputText,
			Usage: "Output format, text or json",
		},
		&cli.BoolFlag{
			Name:  "detailed",
			Usage: "Include legs, occupancy and realtime notices",
		},
	}
}

// setup loads the configuration, applies flag overrides and builds a client.
func setup(c *cli.Context) (*config.Config, *sbbapi.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if c.IsSet("endpoint") {
		cfg.Endpoint = c.String("endpoint")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if !slices.Contains(outputFormats, c.String("output")) {
		return nil, nil, fmt.Errorf("unknown output format %q, expected text or json", c.String("output"))
	}

	client, err := cfg.NewClient()
	if err != nil {
		return nil, nil, err
	}

	log.Debug().
		Str("endpoint", cfg.Endpoint).
		Str("generation", cfg.Generation).
		Str("timeout", cfg.Timeout.String()).
		Msg("Loaded config")

	return cfg, client, nil
}

func withTimeout(c *cli.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context, timeout)
}

func connectionsCommand() *cli.Command {
	return &cli.Command{
		Name:      "connections",
		Usage:     "Search train connections between two places",
		ArgsUsage: "<from> <to>",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:  "from-ref",
				Usage: "UIC reference for the departure (e.g. 8503000 for Zürich HB)",
			},
			&cli.StringFlag{
				Name:  "to-ref",
				Usage: "UIC reference for the arrival",
			},
			&cli.StringFlag{
				Name:  "at",
				Usage: "Departure time (HH:MM)",
			},
			&cli.StringFlag{
				Name:  "date",
				Usage: "Departure date (YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:  "in",
				Usage: "Depart this long from now, as ISO-8601 duration (e.g. PT45M)",
			},
			&cli.BoolFlag{
				Name:  "arrival",
				Usage: "Search for connections arriving at the given time instead of departing",
			},
			&cli.StringFlag{
				Name:  "cursor",
				Usage: "Paging cursor from a previous search for earlier or later connections",
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: "Only show trips matching an expression, e.g. 'Transfers == 0 && DurationMinutes < 90'",
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "Print the decoded response structure",
			},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("error: expected <from> and <to>", ExitError)
			}

			cfg, client, err := setup(c)
			if err != nil {
				return exitError(err)
			}

			options := SearchOptions{
				From:    c.Args().Get(0),
				FromRef: c.String("from-ref"),
				To:      c.Args().Get(1),
				ToRef:   c.String("to-ref"),
				Date:    c.String("date"),
				At:      c.String("at"),
				In:      c.String("in"),
				Arrival: c.Bool("arrival"),
				Cursor:  c.String("cursor"),
			}

			var filter *TripFilter
			if c.String("filter") != "" {
				filter, err = NewTripFilter(c.String("filter"))
				if err != nil {
					return exitError(err)
				}
			}

			ctx, cancel := withTimeout(c, cfg.Timeout)
			defer cancel()

			err = runConnections(ctx, c.App.Writer, client, options, connectionsOutput{
				format:   c.String("output"),
				detailed: c.Bool("detailed"),
				dump:     c.Bool("dump"),
				filter:   filter,
			})

			var timeoutError *sbbapi.TimeoutError
			if errors.As(err, &timeoutError) {
				return cli.Exit(fmt.Sprintf("error: request timed out after %s", cfg.Timeout), ExitTimeout)
			}

			return exitError(err)
		},
	}
}

type connectionsOutput struct {
	format   string
	detailed bool
	dump     bool
	filter   *TripFilter
}

func runConnections(ctx context.Context, w io.Writer, searcher Searcher, options SearchOptions, output connectionsOutput) error {
	response, err := searchConnections(ctx, searcher, options, time.Now())
	if err != nil {
		return err
	}

	log.Debug().Int("trips", len(response.Trips)).Msg("Got response")

	if output.filter != nil {
		response.Trips, err = output.filter.Apply(response.Trips)
		if err != nil {
			return err
		}
	}

	if output.dump {
		pretty.Fprintf(w, "%# v\n", response)
	}

	if output.format == OutputJSON {
		if err := WriteTripsJSON(w, response, output.detailed); err != nil {
			return err
		}
	} else {
		RenderTrips(w, response.Trips, output.detailed)
	}

	if len(response.Trips) == 0 {
		return errNoResults
	}

	return nil
}

func placesCommand() *cli.Command {
	return &cli.Command{
		Name:      "places",
		Usage:     "Look up stations, addresses and points of interest by name",
		ArgsUsage: "<name>",
		Flags:     commonFlags(),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("error: expected <name>", ExitError)
			}

			cfg, client, err := setup(c)
			if err != nil {
				return exitError(err)
			}

			ctx, cancel := withTimeout(c, cfg.Timeout)
			defer cancel()

			return exitError(runPlaces(ctx, c.App.Writer, client, c.Args().First(), c.String("output")))
		},
	}
}

func runPlaces(ctx context.Context, w io.Writer, searcher PlaceSearcher, name string, format string) error {
	places, err := searcher.GetPlaces(ctx, name)
	if err != nil {
		return err
	}

	if format == OutputJSON {
		if err := WritePlacesJSON(w, places); err != nil {
			return err
		}
	} else {
		RenderPlaces(w, places)
	}

	if len(places) == 0 {
		return errNoResults
	}

	return nil
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Run several connection searches from a YAML file",
		ArgsUsage: "<file.yaml>",
		Flags: append(commonFlags(),
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Searches running at the same time (SBB_BATCH_CONCURRENCY)",
			},
			&cli.Float64Flag{
				Name:  "rate",
				Usage: "Maximum requests per second (SBB_BATCH_RATE)",
			},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("error: expected <file.yaml>", ExitError)
			}

			cfg, client, err := setup(c)
			if err != nil {
				return exitError(err)
			}

			if c.IsSet("concurrency") {
				cfg.BatchConcurrency = c.Int("concurrency")
			}
			if c.IsSet("rate") {
				cfg.BatchRate = c.Float64("rate")
			}
			if err := cfg.Validate(); err != nil {
				return exitError(err)
			}

			batchFile, err := LoadBatchFile(c.Args().First())
			if err != nil {
				return exitError(err)
			}

			// The timeout covers the whole batch
			ctx, cancel := withTimeout(c, cfg.Timeout*time.Duration(len(batchFile.Searches)))
			defer cancel()

			runner := &BatchRunner{
				Searcher:    client,
				Concurrency: cfg.BatchConcurrency,
				Limiter:     rate.NewLimiter(rate.Limit(cfg.BatchRate), 1),
				Now:         time.Now(),
			}

			startTime := time.Now()
			results := runner.Run(ctx, batchFile.Searches)
			log.Debug().Int("searches", len(results)).Msgf("Batch took %s", time.Since(startTime).String())

			if c.String("output") == OutputJSON {
				if err := WriteBatchJSON(c.App.Writer, results, c.Bool("detailed")); err != nil {
					return exitError(err)
				}
			} else {
				RenderBatch(c.App.Writer, results, c.Bool("detailed"))
			}

			return exitError(batchError(results))
		},
	}
}
