package salary

import "github.com/fr4nk3nst1ner/langsalary/internal/models"

// Estimate derives a single monthly salary figure from a possibly partial range.
// When only the floor is published the ceiling is assumed to be 20% higher, and
// when only the ceiling is published the floor is assumed to be 20% lower.
// The second return value is false when neither bound is present.
func Estimate(b models.Bounds) (float64, bool) {
	from, to := b.From, b.To
	switch {
	case from != nil && to != nil:
		return (*from + *to) / 2, true
	case from != nil:
		return *from * 6 / 5, true
	case to != nil:
		return *to * 4 / 5, true
	default:
		return 0, false
	}
}
