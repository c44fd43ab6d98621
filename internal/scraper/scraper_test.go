package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

// mockServer creates a mock server that answers every request with the given status and body
func mockServer(t *testing.T, status int, body string, seen *url.Values) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = r.URL.Query()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func ptr(v float64) *float64 { return &v }

const headHunterPage = `{
	"found": 45,
	"pages": 3,
	"per_page": 20,
	"page": 0,
	"items": [
		{"id": "1", "name": "Go developer", "employer": {"name": "Acme"},
		 "salary": {"from": 100000, "to": 150000, "currency": "RUR"}},
		{"id": "2", "name": "Backend engineer", "employer": {"name": "Initech"},
		 "salary": {"from": null, "to": 90000, "currency": "RUR"}},
		{"id": "3", "name": "Remote Go", "employer": {"name": "Globex"},
		 "salary": {"from": 3000, "to": null, "currency": "USD"}},
		{"id": "4", "name": "Intern", "employer": {"name": "Hooli"}, "salary": null}
	]
}`

func TestHeadHunterFetchPage(t *testing.T) {
	var seen url.Values
	server := mockServer(t, http.StatusOK, headHunterPage, &seen)

	hh := NewHeadHunter(client.New(client.Options{BaseURL: server.URL}), DefaultHeadHunterFacets())
	page, err := hh.FetchPage(context.Background(), hh.PageRequest("Go", 2))
	require.NoError(t, err)

	assert.Equal(t, "Go", seen.Get("text"))
	assert.Equal(t, "2", seen.Get("page"))
	assert.Equal(t, "1", seen.Get("area"))
	assert.Equal(t, "96", seen.Get("professional_role"))
	assert.Equal(t, "30", seen.Get("period"))

	assert.Equal(t, 45, page.Total)
	assert.Equal(t, 3, hh.PageCount(page))
	require.Len(t, page.Items, 4)
	assert.Equal(t, "Acme", page.Items[0].Employer)

	b, ok := hh.ExtractBounds(page.Items[0])
	require.True(t, ok)
	assert.Equal(t, ptr(100000), b.From)
	assert.Equal(t, ptr(150000), b.To)

	b, ok = hh.ExtractBounds(page.Items[1])
	require.True(t, ok)
	assert.Nil(t, b.From)
	assert.Equal(t, ptr(90000), b.To)

	_, ok = hh.ExtractBounds(page.Items[2])
	assert.False(t, ok, "foreign currency is not applicable")

	_, ok = hh.ExtractBounds(page.Items[3])
	assert.False(t, ok, "missing salary object is not applicable")
}

func TestHeadHunterPageCountFallsBackToTotal(t *testing.T) {
	hh := NewHeadHunter(client.New(client.Options{}), DefaultHeadHunterFacets())
	assert.Equal(t, 3, hh.PageCount(&models.VacancyPage{Total: 41, PerPage: 20}))
	assert.Equal(t, 0, hh.PageCount(&models.VacancyPage{Total: 0}))
}

func TestHeadHunterMalformed(t *testing.T) {
	testCases := map[string]string{
		"missing found": `{"items": []}`,
		"missing items": `{"found": 3, "pages": 1}`,
		"not json":      `<html>captcha</html>`,
	}
	for name, body := range testCases {
		t.Run(name, func(t *testing.T) {
			server := mockServer(t, http.StatusOK, body, nil)
			hh := NewHeadHunter(client.New(client.Options{BaseURL: server.URL}), DefaultHeadHunterFacets())

			_, err := hh.FetchPage(context.Background(), hh.PageRequest("Go", 0))
			var malformed *MalformedResponseError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, HeadHunterName, malformed.Source)
		})
	}
}

func TestHeadHunterTransportError(t *testing.T) {
	server := mockServer(t, http.StatusForbidden, `{"errors": [{"type": "forbidden"}]}`, nil)
	hh := NewHeadHunter(client.New(client.Options{BaseURL: server.URL}), DefaultHeadHunterFacets())

	_, err := hh.FetchPage(context.Background(), hh.PageRequest("Go", 0))
	var transport *TransportError
	require.True(t, errors.As(err, &transport), "got %v", err)
	assert.Equal(t, http.StatusForbidden, transport.Status)
	assert.Contains(t, err.Error(), "403")
}

const superJobPage = `{
	"objects": [
		{"id": 11, "profession": "Python developer", "firm_name": "Acme",
		 "payment_from": 120000, "payment_to": 0, "currency": "rub"},
		{"id": 12, "profession": "Data engineer", "firm_name": "Initech",
		 "payment_from": 0, "payment_to": 0, "currency": "rub"}
	],
	"total": 41,
	"more": true
}`

func TestSuperJobFetchPage(t *testing.T) {
	var seen url.Values
	var key string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query()
		key = r.Header.Get(SuperJobKeyHeader)
		assert.Equal(t, "/vacancies/", r.URL.Path)
		fmt.Fprint(w, superJobPage)
	}))
	defer server.Close()

	c := client.New(client.Options{
		BaseURL: server.URL,
		Headers: map[string]string{SuperJobKeyHeader: "v3.r.secret"},
	})
	sj := NewSuperJob(c, DefaultSuperJobFacets())
	page, err := sj.FetchPage(context.Background(), sj.PageRequest("Python", 1))
	require.NoError(t, err)

	assert.Equal(t, "v3.r.secret", key)
	assert.Equal(t, "Python", seen.Get("keyword"))
	assert.Equal(t, "1", seen.Get("page"))
	assert.Equal(t, "4", seen.Get("town"))
	assert.Equal(t, "48", seen.Get("catalogues"))

	assert.Equal(t, 41, page.Total)
	assert.Equal(t, 3, sj.PageCount(page))
	require.Len(t, page.Items, 2)

	b, ok := sj.ExtractBounds(page.Items[0])
	require.True(t, ok)
	assert.Equal(t, ptr(120000), b.From)
	assert.Nil(t, b.To)

	b, ok = sj.ExtractBounds(page.Items[1])
	require.True(t, ok, "flat fields are always applicable")
	assert.Nil(t, b.From)
	assert.Nil(t, b.To)
}

func TestSuperJobMalformed(t *testing.T) {
	server := mockServer(t, http.StatusOK, `{"objects": []}`, nil)
	sj := NewSuperJob(client.New(client.Options{BaseURL: server.URL}), DefaultSuperJobFacets())

	_, err := sj.FetchPage(context.Background(), sj.PageRequest("Go", 0))
	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed), "got %v", err)
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 0, ceilDiv(0, 20))
	assert.Equal(t, 1, ceilDiv(1, 20))
	assert.Equal(t, 1, ceilDiv(20, 20))
	assert.Equal(t, 2, ceilDiv(21, 20))
	assert.Equal(t, 0, ceilDiv(10, 0))
}
