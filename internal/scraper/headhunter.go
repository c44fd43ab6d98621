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
	HeadHunterName    = "headhunter"
	HeadHunterBaseURL = "https://api.hh.ru"
	headHunterPath    = "/vacancies"

	// HeadHunter publishes roubles under the legacy ISO code
	headHunterCurrency = "RUR"
)

// HeadHunterFacets are the constant search filters sent with every request
type HeadHunterFacets struct {
	Area             int // 1 is Moscow
	ProfessionalRole int // 96 is "programmer, developer"
	Period           int // lookback window in days
	PerPage          int
}

// DefaultHeadHunterFacets returns the filters used when none are configured
func DefaultHeadHunterFacets() HeadHunterFacets {
	return HeadHunterFacets{
		Area:             1,
		ProfessionalRole: 96,
		Period:           30,
		PerPage:          20,
	}
}

type headHunterResponse struct {
	Found   *int                `json:"found"`
	Pages   int                 `json:"pages"`
	PerPage int                 `json:"per_page"`
	Page    int                 `json:"page"`
	Items   []headHunterVacancy `json:"items"`
}

type headHunterVacancy struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Employer struct {
		Name string `json:"name"`
	} `json:"employer"`
	Salary *struct {
		From     *float64 `json:"from"`
		To       *float64 `json:"to"`
		Currency string   `json:"currency"`
	} `json:"salary"`
}

// HeadHunter queries the hh.ru vacancy search API
type HeadHunter struct {
	http   *resty.Client
	facets HeadHunterFacets
}

// NewHeadHunter creates a HeadHunter source on top of an already configured client
func NewHeadHunter(http *resty.Client, facets HeadHunterFacets) *HeadHunter {
	if facets.PerPage <= 0 {
		facets.PerPage = DefaultHeadHunterFacets().PerPage
	}
	return &HeadHunter{http: http, facets: facets}
}

func (h *HeadHunter) Name() string { return HeadHunterName }

func (h *HeadHunter) Title() string { return "HeadHunter Moscow" }

func (h *HeadHunter) PageRequest(language string, page int) url.Values {
	params := url.Values{}
	params.Set("text", language)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(h.facets.PerPage))
	params.Set("area", strconv.Itoa(h.facets.Area))
	params.Set("professional_role", strconv.Itoa(h.facets.ProfessionalRole))
	params.Set("period", strconv.Itoa(h.facets.Period))
	return params
}

func (h *HeadHunter) FetchPage(ctx context.Context, params url.Values) (*models.VacancyPage, error) {
	var body headHunterResponse
	if err := getJSON(ctx, h.http, HeadHunterName, headHunterPath, params, &body); err != nil {
		return nil, err
	}
	if body.Found == nil {
		return nil, &MalformedResponseError{Source: HeadHunterName, Err: errors.New("missing field: found")}
	}
	if body.Items == nil {
		return nil, &MalformedResponseError{Source: HeadHunterName, Err: errors.New("missing field: items")}
	}

	page := &models.VacancyPage{
		Total:   *body.Found,
		Pages:   body.Pages,
		PerPage: body.PerPage,
		Items:   make([]models.Vacancy, 0, len(body.Items)),
	}
	for _, item := range body.Items {
		v := models.Vacancy{
			ID:       item.ID,
			Title:    item.Name,
			Employer: item.Employer.Name,
		}
		if item.Salary != nil {
			v.Salary = &models.Bounds{
				From:     positive(item.Salary.From),
				To:       positive(item.Salary.To),
				Currency: item.Salary.Currency,
			}
		}
		page.Items = append(page.Items, v)
	}
	return page, nil
}

func (h *HeadHunter) ExtractBounds(v models.Vacancy) (models.Bounds, bool) {
	if v.Salary == nil || v.Salary.Currency != headHunterCurrency {
		return models.Bounds{}, false
	}
	return *v.Salary, true
}

// PageCount trusts the page's own pagination metadata; hh.ru caps it so that
// no more than 2000 vacancies are reachable
func (h *HeadHunter) PageCount(page *models.VacancyPage) int {
	if page.Pages > 0 {
		return page.Pages
	}
	perPage := page.PerPage
	if perPage <= 0 {
		perPage = h.facets.PerPage
	}
	return ceilDiv(page.Total, perPage)
}

func positive(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return models.Float(*v)
}
