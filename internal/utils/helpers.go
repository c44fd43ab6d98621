package utils

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// DefaultLanguages is the list of languages searched when none are given
var DefaultLanguages = []string{
	"Python", "Java", "Perl", "JavaScript", "C++", "C#", "Go", "Ruby", "Php", "Rust",
}

// validSources lists the supported job boards in report order
var validSources = []string{"headhunter", "superjob"}

// sourceAliases maps short names accepted on the command line
var sourceAliases = map[string]string{
	"hh":  "headhunter",
	"sj":  "superjob",
	"all": "",
}

// FormatSalary formats a whole-rouble amount with comma separators
func FormatSalary(salary int) string {
	return humanize.Comma(int64(salary))
}

// IsValidSource checks if the source is supported
func IsValidSource(source string) bool {
	source = strings.ToLower(strings.TrimSpace(source))
	if alias, ok := sourceAliases[source]; ok {
		return alias != "" || source == "all"
	}
	for _, s := range validSources {
		if s == source {
			return true
		}
	}
	return false
}

// ParseSources resolves the requested source names, deduplicated and in report
// order. An empty selection or "all" means every source.
func ParseSources(requested []string) ([]string, error) {
	wanted := make(map[string]bool)
	for _, r := range requested {
		name := strings.ToLower(strings.TrimSpace(r))
		if name == "" {
			continue
		}
		if !IsValidSource(name) {
			return nil, fmt.Errorf("invalid source %q: must be one of %s", r, strings.Join(validSources, ", "))
		}
		if alias, ok := sourceAliases[name]; ok {
			name = alias
		}
		if name == "" {
			return append([]string(nil), validSources...), nil
		}
		wanted[name] = true
	}

	if len(wanted) == 0 {
		return append([]string(nil), validSources...), nil
	}

	var sources []string
	for _, s := range validSources {
		if wanted[s] {
			sources = append(sources, s)
		}
	}
	return sources, nil
}

// NormalizeLanguages trims names and drops blanks and case-insensitive
// duplicates, keeping the first spelling and the original order
func NormalizeLanguages(languages []string) []string {
	seen := make(map[string]struct{}, len(languages))
	var result []string
	for _, l := range languages {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		key := strings.ToLower(l)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, l)
	}
	return result
}
