package stats

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/salary"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
)

// DefaultMaxPages bounds pagination for every source regardless of what it reports
const DefaultMaxPages = 100

// Aggregator walks the search results of one language on one source
type Aggregator struct {
	MaxPages int
	Logger   *slog.Logger
}

type accumulator struct {
	sum       float64
	processed int
}

func (a *accumulator) add(b models.Bounds) {
	if estimate, ok := salary.Estimate(b); ok {
		a.sum += estimate
		a.processed++
	}
}

func (a *accumulator) average() *int {
	if a.processed == 0 {
		return nil
	}
	avg := int(math.Floor(a.sum / float64(a.processed)))
	return &avg
}

// Aggregate fetches every page of the language's results and returns its statistics.
//
// A transport failure aborts the language and is returned as is. A malformed
// response degrades the language to zero processed vacancies: the returned
// statistics are still valid and the error is returned alongside them.
func (a *Aggregator) Aggregate(ctx context.Context, src scraper.Source, language string) (models.LanguageStats, error) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxPages := a.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	stats := models.LanguageStats{Language: language}
	var acc accumulator

	for page := 0; page < maxPages; {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		res, err := src.FetchPage(ctx, src.PageRequest(language, page))
		if err != nil {
			var malformed *scraper.MalformedResponseError
			if errors.As(err, &malformed) {
				return models.LanguageStats{Language: language, Found: stats.Found}, err
			}
			return stats, err
		}

		pages := src.PageCount(res)
		logger.Debug("parsing vacancies",
			"source", src.Name(),
			"language", language,
			"page", page,
			"pages", pages,
		)
		if page >= pages {
			break
		}
		if page == 0 {
			stats.Found = res.Total
		}

		for _, item := range res.Items {
			if bounds, ok := src.ExtractBounds(item); ok {
				acc.add(bounds)
			}
		}

		page++
		if page >= pages {
			break
		}
		if page >= maxPages {
			logger.Warn("page cap reached, results truncated",
				"source", src.Name(),
				"language", language,
				"pages", pages,
				"max_pages", maxPages,
			)
		}
	}

	stats.Processed = acc.processed
	stats.Average = acc.average()
	if stats.Processed > stats.Found {
		stats.Found = stats.Processed
	}
	return stats, nil
}
