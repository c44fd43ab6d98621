package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

// Source knows one job board's request shape and response schema
type Source interface {
	// Name is the identifier used on the command line
	Name() string
	// Title is the heading of the source's report table
	Title() string
	PageRequest(language string, page int) url.Values
	FetchPage(ctx context.Context, params url.Values) (*models.VacancyPage, error)
	// ExtractBounds returns false when the vacancy's salary cannot be used,
	// e.g. it is missing or published in a foreign currency
	ExtractBounds(v models.Vacancy) (models.Bounds, bool)
	PageCount(page *models.VacancyPage) int
}

// TransportError is returned when a page could not be fetched
type TransportError struct {
	Source string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: request failed: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s: received non-success status code: %d", e.Source, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError is returned when a response body lacks the expected fields
type MalformedResponseError struct {
	Source string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Source, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// getJSON performs a single GET and decodes the body into out
func getJSON(ctx context.Context, c *resty.Client, source, path string, params url.Values, out any) error {
	res, err := c.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get(path)
	if err != nil {
		return &TransportError{Source: source, Err: err}
	}
	if res.IsError() {
		return &TransportError{Source: source, Status: res.StatusCode()}
	}

	if err := json.Unmarshal(res.Body(), out); err != nil {
		return &MalformedResponseError{Source: source, Err: fmt.Errorf("failed to parse JSON response: %w", err)}
	}
	return nil
}

// ceilDiv returns the number of pages needed for total items
func ceilDiv(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
