// Package input provides completion helpers for TUI text fields.
package input

import "strings"

// Suggestion describes a completion entry.
type Suggestion struct {
	Name        string
	Description string
}

// MatchingSuggestions returns suggestions whose name starts with the input,
// ignoring case. An empty input or an exact match yields nothing.
func MatchingSuggestions(input string, suggestions []Suggestion) []Suggestion {
	prefix := strings.ToLower(strings.TrimSpace(input))
	if prefix == "" {
		return nil
	}

	matches := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		name := strings.ToLower(s.Name)
		if name == prefix {
			return nil
		}
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, s)
		}
	}
	return matches
}

// Autocomplete returns the first matching suggestion and whether it exists.
func Autocomplete(input string, suggestions []Suggestion) (string, bool) {
	matches := MatchingSuggestions(input, suggestions)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name, true
}
