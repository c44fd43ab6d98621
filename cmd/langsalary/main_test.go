package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServers(t *testing.T) {
	t.Helper()

	hh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("text") {
		case "Go":
			fmt.Fprint(w, `{"found": 3, "pages": 1, "per_page": 20, "items": [
				{"id": "1", "salary": {"from": 100000, "to": 150000, "currency": "RUR"}},
				{"id": "2", "salary": {"from": 90000, "to": null, "currency": "RUR"}},
				{"id": "3", "salary": {"from": 5000, "to": null, "currency": "EUR"}}
			]}`)
		case "Perl":
			w.WriteHeader(http.StatusForbidden)
		default:
			fmt.Fprint(w, `{"found": 0, "pages": 0, "per_page": 20, "items": []}`)
		}
	}))
	t.Cleanup(hh.Close)

	sj := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-App-Id") != "v3.r.test" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{"objects": [{"id": 1, "payment_from": 0, "payment_to": 100000}], "total": 1, "more": false}`)
	}))
	t.Cleanup(sj.Close)

	t.Setenv("HH_BASE_URL", hh.URL)
	t.Setenv("SUPERJOB_BASE_URL", sj.URL)
	t.Setenv("SUPERJOB_SECRET_KEY", "v3.r.test")
	t.Setenv("RATE_LIMIT", "0s")
	t.Setenv("RETRY_COUNT", "0")
}

func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--silence", "--no-progress"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunCSV(t *testing.T) {
	newServers(t)

	stdout, _, err := execute("--format", "csv", "--languages", "Go,Perl,Rust")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Source,Language,Vacancies found,Vacancies processed,Average salary", lines[0])
	assert.Equal(t, "HeadHunter Moscow,Go,3,2,116500", lines[1])
	assert.Equal(t, "HeadHunter Moscow,Perl,,,", lines[2])
	assert.Equal(t, "HeadHunter Moscow,Rust,0,0,", lines[3])
	assert.Equal(t, "SuperJob Moscow,Go,1,1,80000", lines[4])
}

func TestRunMarkdownSingleSource(t *testing.T) {
	newServers(t)

	stdout, _, err := execute("--format", "md", "-s", "hh", "-l", "Go")
	require.NoError(t, err)
	assert.Contains(t, stdout, "### HeadHunter Moscow")
	assert.Contains(t, stdout, "116,500")
	assert.NotContains(t, stdout, "SuperJob")
}

func TestRunMissingKeyFailsBeforeRequests(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	t.Setenv("HH_BASE_URL", server.URL)
	t.Setenv("SUPERJOB_BASE_URL", server.URL)
	t.Setenv("SUPERJOB_SECRET_KEY", "")

	_, _, err := execute("-l", "Go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPERJOB_SECRET_KEY")
	assert.Zero(t, hits)
}

func TestRunAllFailed(t *testing.T) {
	newServers(t)

	_, _, err := execute("-s", "hh", "-l", "Perl", "--format", "csv")
	assert.Error(t, err)
}

func TestRunRejectsUnknownFlags(t *testing.T) {
	_, _, err := execute("--format", "xml")
	assert.Error(t, err)

	_, _, err = execute("--source", "linkedin")
	assert.Error(t, err)
}
