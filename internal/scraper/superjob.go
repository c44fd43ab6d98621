package scraper

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

const (
	SuperJobName      = "superjob"
	SuperJobBaseURL   = "https://api.superjob.ru/2.0"
	SuperJobKeyHeader = "X-Api-App-Id"
	superJobPath      = "/vacancies/"
	superJobCurrency  = "rub"
)

// SuperJobFacets are the constant search filters sent with every request
type SuperJobFacets struct {
	Town      int // 4 is Moscow
	Catalogue int // 48 is "development, programming"
	Period    int // lookback window in days; the API accepts 1, 3, 7 or 0 for all time
	PerPage   int
}

// DefaultSuperJobFacets returns the filters used when none are configured
func DefaultSuperJobFacets() SuperJobFacets {
	return SuperJobFacets{
		Town:      4,
		Catalogue: 48,
		Period:    7,
		PerPage:   20,
	}
}

type superJobResponse struct {
	Objects []superJobVacancy `json:"objects"`
	Total   *int              `json:"total"`
	More    bool              `json:"more"`
}

type superJobVacancy struct {
	ID          int     `json:"id"`
	Profession  string  `json:"profession"`
	FirmName    string  `json:"firm_name"`
	PaymentFrom float64 `json:"payment_from"`
	PaymentTo   float64 `json:"payment_to"`
}

// SuperJob queries the superjob.ru vacancy search API. Requests must carry the
// application's secret key, which the client is expected to set as a header.
type SuperJob struct {
	http   *resty.Client
	facets SuperJobFacets
}

// NewSuperJob creates a SuperJob source on top of an already configured client
func NewSuperJob(http *resty.Client, facets SuperJobFacets) *SuperJob {
	if facets.PerPage <= 0 {
		facets.PerPage = DefaultSuperJobFacets().PerPage
	}
	return &SuperJob{http: http, facets: facets}
}

func (s *SuperJob) Name() string { return SuperJobName }

func (s *SuperJob) Title() string { return "SuperJob Moscow" }

func (s *SuperJob) PageRequest(language string, page int) url.Values {
	params := url.Values{}
	params.Set("keyword", language)
	params.Set("page", strconv.Itoa(page))
	params.Set("count", strconv.Itoa(s.facets.PerPage))
	params.Set("town", strconv.Itoa(s.facets.Town))
	params.Set("catalogues", strconv.Itoa(s.facets.Catalogue))
	params.Set("period", strconv.Itoa(s.facets.Period))
	return params
}

func (s *SuperJob) FetchPage(ctx context.Context, params url.Values) (*models.VacancyPage, error) {
	var body superJobResponse
	if err := getJSON(ctx, s.http, SuperJobName, superJobPath, params, &body); err != nil {
		return nil, err
	}
	if body.Total == nil {
		return nil, &MalformedResponseError{Source: SuperJobName, Err: errors.New("missing field: total")}
	}
	if body.Objects == nil {
		return nil, &MalformedResponseError{Source: SuperJobName, Err: errors.New("missing field: objects")}
	}

	page := &models.VacancyPage{
		Total:   *body.Total,
		PerPage: s.facets.PerPage,
		Items:   make([]models.Vacancy, 0, len(body.Objects)),
	}
	for _, item := range body.Objects {
		page.Items = append(page.Items, models.Vacancy{
			ID:       strconv.Itoa(item.ID),
			Title:    item.Profession,
			Employer: item.FirmName,
			Salary: &models.Bounds{
				From:     models.Float(item.PaymentFrom),
				To:       models.Float(item.PaymentTo),
				Currency: superJobCurrency,
			},
		})
	}
	return page, nil
}

// ExtractBounds always applies: SuperJob publishes flat payment fields that are
// already in roubles
func (s *SuperJob) ExtractBounds(v models.Vacancy) (models.Bounds, bool) {
	if v.Salary == nil {
		return models.Bounds{Currency: superJobCurrency}, true
	}
	return *v.Salary, true
}

func (s *SuperJob) PageCount(page *models.VacancyPage) int {
	return ceilDiv(page.Total, s.facets.PerPage)
}
