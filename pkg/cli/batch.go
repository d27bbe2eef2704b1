package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/sbb/pkg/sbbapi"
	"github.com/travigo/sbb/pkg/timetable"
	"golang.org/x/exp/slices"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

// BatchFile lists searches to run in one go:
//
//	searches:
//	  - name: commute
//	    from: Bern
//	    to: Zürich HB
//	    at: "07:30"
type BatchFile struct {
	Searches []BatchSearch `yaml:"searches"`
}

type BatchSearch struct {
	Name          string `yaml:"name"`
	SearchOptions `yaml:",inline"`
	Filter        string `yaml:"filter"`
}

func (s *BatchSearch) Label() string {
	if s.Name != "" {
		return s.Name
	}

	return fmt.Sprintf("%s → %s", s.From, s.To)
}

type BatchResult struct {
	Index    int
	Search   BatchSearch
	Response *timetable.TripSearchResponse
	Err      error
}

func ParseBatchFile(data []byte) (*BatchFile, error) {
	var batchFile BatchFile
	if err := yaml.Unmarshal(data, &batchFile); err != nil {
		return nil, fmt.Errorf("parse batch file: %w", err)
	}

	if len(batchFile.Searches) == 0 {
		return nil, fmt.Errorf("batch file has no searches")
	}

	for i, search := range batchFile.Searches {
		if search.From == "" || search.To == "" {
			return nil, fmt.Errorf("search %d (%s) needs both from and to", i+1, search.Label())
		}
	}

	return &batchFile, nil
}

func LoadBatchFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseBatchFile(data)
}

type BatchRunner struct {
	Searcher    Searcher
	Concurrency int
	Limiter     *rate.Limiter
	Now         time.Time
}

// Run performs every search of the batch. A failing search does not stop the
// others, its error is kept on its result. Results come back in file order.
func (r *BatchRunner) Run(ctx context.Context, searches []BatchSearch) []BatchResult {
	concurrency := r.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	p := pool.NewWithResults[BatchResult]()
	p.WithMaxGoroutines(concurrency)

	for i, search := range searches {
		p.Go(func() BatchResult {
			result := BatchResult{
				Index:  i,
				Search: search,
			}

			if r.Limiter != nil {
				if err := r.Limiter.Wait(ctx); err != nil {
					result.Err = limiterError(ctx, err)
					return result
				}
			}

			log.Debug().Int("index", i).Str("search", search.Label()).Msg("Running batch search")

			response, err := searchConnections(ctx, r.Searcher, search.SearchOptions, r.Now)
			if err != nil {
				result.Err = err
				return result
			}

			if search.Filter != "" {
				filter, err := NewTripFilter(search.Filter)
				if err != nil {
					result.Err = err
					return result
				}

				response.Trips, err = filter.Apply(response.Trips)
				if err != nil {
					result.Err = err
					return result
				}
			}

			result.Response = response
			return result
		})
	}

	results := p.Wait()

	slices.SortFunc(results, func(a, b BatchResult) int {
		return a.Index - b.Index
	})

	return results
}

func RenderBatch(w io.Writer, results []BatchResult, detailed bool) {
	for _, result := range results {
		fmt.Fprintf(w, "== %s ==\n", result.Search.Label())

		if result.Err != nil {
			fmt.Fprintf(w, "error: %s\n", result.Err)
			if hint := Hint(result.Err); hint != "" {
				fmt.Fprintf(w, "hint: %s\n", hint)
			}
			fmt.Fprintln(w)
			continue
		}

		RenderTrips(w, result.Response.Trips, detailed)
	}
}

type batchResultView struct {
	Name   string      `json:"name" groups:"basic,detailed"`
	Error  string      `json:"error,omitempty" groups:"basic,detailed"`
	Result *searchView `json:"result,omitempty" groups:"basic,detailed"`
}

func WriteBatchJSON(w io.Writer, results []BatchResult, detailed bool) error {
	views := []batchResultView{}

	for _, result := range results {
		view := batchResultView{Name: result.Search.Label()}

		if result.Err != nil {
			view.Error = result.Err.Error()
		} else {
			searchView := newSearchView(result.Response)
			view.Result = &searchView
		}

		views = append(views, view)
	}

	return writeJSON(w, outputGroups(detailed), views)
}

// batchError summarises failed searches, nil when all succeeded.
// limiterError maps a failed rate limiter wait. The limiter refuses early when
// the next slot lies past the deadline, that counts as a timeout as well.
func limiterError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return err
	}

	if _, ok := ctx.Deadline(); ok {
		return &sbbapi.TimeoutError{Err: err}
	}

	return err
}

func batchError(results []BatchResult) error {
	var timeoutError *sbbapi.TimeoutError

	failed, timedOut := 0, 0
	for _, result := range results {
		if result.Err == nil {
			continue
		}

		failed++
		if errors.As(result.Err, &timeoutError) {
			timedOut++
		}
	}

	if failed == 0 {
		return nil
	}

	if timedOut == len(results) {
		return fmt.Errorf("%d of %d searches failed: %w", failed, len(results), timeoutError)
	}

	return fmt.Errorf("%d of %d searches failed", failed, len(results))
}
