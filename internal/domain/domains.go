package domain

import "strings"

// DomainSource records where the domain list of a run came from.
type DomainSource string

const (
	SourceEnumerated DomainSource = "enumerated"
	SourceDefault    DomainSource = "default"
)

// NormalizeDomains trims names, drops blanks and removes case-insensitive duplicates
// while keeping the first occurrence and the input order.
func NormalizeDomains(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, d := range in {
		name := strings.TrimSpace(d)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}
