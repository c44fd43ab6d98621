package models

// Bounds represents the declared salary range of a vacancy.
// A nil pointer means the bound was not published.
type Bounds struct {
	From     *float64 `json:"from,omitempty"`
	To       *float64 `json:"to,omitempty"`
	Currency string   `json:"currency"`
}

// Vacancy is a single job listing normalized from a source's own schema
type Vacancy struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Employer string  `json:"employer"`
	Salary   *Bounds `json:"salary,omitempty"`
}

// VacancyPage is one page of search results as returned by a source.
// Pages is the page count reported by the source itself, or 0 when the source
// does not report one.
type VacancyPage struct {
	Total   int       `json:"total"`
	Pages   int       `json:"pages"`
	PerPage int       `json:"per_page"`
	Items   []Vacancy `json:"items"`
}

// LanguageStats holds the aggregated salary statistics of one language on one source
type LanguageStats struct {
	Language  string `json:"language"`
	Found     int    `json:"vacancies_found"`
	Processed int    `json:"vacancies_processed"`
	Average   *int   `json:"average_salary,omitempty"`
}

// HasAverage reports whether an average salary could be computed
func (s LanguageStats) HasAverage() bool {
	return s.Average != nil
}

// Float returns a pointer to v. Zero is treated as an absent bound since both
// platforms publish 0 for "not stated".
func Float(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}
