package errors

import (
	"sort"
	"strings"
)

// maxSuggestions caps the number of names offered by Suggest.
const maxSuggestions = 3

// Suggest returns up to three candidates close to name, nearest first.
// Matching is case-insensitive; an exact match yields no suggestions.
func Suggest(name string, candidates []string) []string {
	if name == "" {
		return nil
	}
	target := strings.ToLower(name)
	threshold := 3
	switch {
	case len(target) <= 3:
		threshold = 1
	case len(target) <= 5:
		threshold = 2
	}

	type match struct {
		name     string
		distance int
	}
	var matches []match
	for _, c := range candidates {
		lower := strings.ToLower(c)
		if c == "" || lower == target {
			continue
		}
		if d := editDistance(target, lower); d <= threshold {
			matches = append(matches, match{c, d})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}

// DidYouMean formats the suggestions for name as a message suffix such as
// " (did you mean LuauVectorLib?)". It returns "" when nothing is close.
func DidYouMean(name string, candidates []string) string {
	names := Suggest(name, candidates)
	switch len(names) {
	case 0:
		return ""
	case 1:
		return " (did you mean " + names[0] + "?)"
	default:
		return " (did you mean one of " + strings.Join(names, ", ") + "?)"
	}
}

// editDistance is the Levenshtein distance between a and b, computed with
// two rows.
func editDistance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) > len(br) {
		ar, br = br, ar
	}
	prev := make([]int, len(ar)+1)
	curr := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(br); j++ {
		curr[0] = j
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ar)]
}
