package report

import (
	"strconv"

	"github.com/fr4nk3nst1ner/langsalary/internal/stats"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

// Header is the column layout shared by every renderer
var Header = []string{"Language", "Vacancies found", "Vacancies processed", "Average salary"}

// Row is one language line of a report
type Row struct {
	Language  string
	Found     int
	Processed int
	Average   *int
	Failed    bool
}

// Report is the table of one source
type Report struct {
	Title string
	Rows  []Row
}

// Build assembles a report from results, keeping their order
func Build(title string, results []stats.Result) Report {
	r := Report{Title: title, Rows: make([]Row, 0, len(results))}
	for _, res := range results {
		r.Rows = append(r.Rows, Row{
			Language:  res.Stats.Language,
			Found:     res.Stats.Found,
			Processed: res.Stats.Processed,
			Average:   res.Stats.Average,
			Failed:    res.Failed(),
		})
	}
	return r
}

// Cells returns the header followed by one formatted line per row
func (r Report) Cells() [][]string {
	cells := make([][]string, 0, len(r.Rows)+1)
	cells = append(cells, append([]string(nil), Header...))
	for _, row := range r.Rows {
		cells = append(cells, row.cells())
	}
	return cells
}

func (row Row) cells() []string {
	if row.Failed {
		return []string{row.Language, "", "", ""}
	}
	avg := ""
	if row.Average != nil {
		avg = utils.FormatSalary(*row.Average)
	}
	return []string{row.Language, strconv.Itoa(row.Found), strconv.Itoa(row.Processed), avg}
}

// values is like cells but leaves numbers ungrouped for machine-readable output
func (row Row) values() []string {
	if row.Failed {
		return []string{row.Language, "", "", ""}
	}
	avg := ""
	if row.Average != nil {
		avg = strconv.Itoa(*row.Average)
	}
	return []string{row.Language, strconv.Itoa(row.Found), strconv.Itoa(row.Processed), avg}
}
