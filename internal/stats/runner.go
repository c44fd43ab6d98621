package stats

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
)

// Result is the outcome of aggregating one language on one source
type Result struct {
	Source string
	Stats  models.LanguageStats
	Err    error

	// Degraded is set when a malformed response reduced the language to zero
	// processed vacancies; Stats is still reportable
	Degraded bool
}

// Failed reports whether the language has no usable statistics at all
func (r Result) Failed() bool {
	return r.Err != nil && !r.Degraded
}

// SourceResults holds one source's results in language order
type SourceResults struct {
	Source  scraper.Source
	Results []Result
}

// Runner aggregates every (source, language) pair exactly once
type Runner struct {
	Aggregator *Aggregator
	Workers    int
	Logger     *slog.Logger
	// OnDone is called after each pair completes, never concurrently
	OnDone     func(Result)
}

type job struct {
	source   int
	language int
}

// Run aggregates all pairs and returns one entry per source, each ordered like languages.
// Pairs own disjoint state, so with Workers > 1 they are fetched in parallel.
func (r *Runner) Run(ctx context.Context, sources []scraper.Source, languages []string) []SourceResults {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	aggregator := r.Aggregator
	if aggregator == nil {
		aggregator = &Aggregator{Logger: logger}
	}

	out := make([]SourceResults, len(sources))
	for i, src := range sources {
		out[i] = SourceResults{Source: src, Results: make([]Result, len(languages))}
	}

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan job)
	var wg sync.WaitGroup
	var doneMux sync.Mutex

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				src := sources[j.source]
				language := languages[j.language]

				res := Result{Source: src.Name()}
				res.Stats, res.Err = aggregator.Aggregate(ctx, src, language)

				var malformed *scraper.MalformedResponseError
				switch {
				case errors.As(res.Err, &malformed):
					res.Degraded = true
					logger.Warn("malformed response, language counted without salaries",
						"source", src.Name(), "language", language, "err", res.Err)
				case res.Err != nil:
					logger.Error("failed to aggregate language",
						"source", src.Name(), "language", language, "err", res.Err)
				}

				out[j.source].Results[j.language] = res

				if r.OnDone != nil {
					doneMux.Lock()
					r.OnDone(res)
					doneMux.Unlock()
				}
			}
		}()
	}

	for li := range languages {
		for si := range sources {
			jobs <- job{source: si, language: li}
		}
	}
	close(jobs)
	wg.Wait()

	return out
}
