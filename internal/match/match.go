// Package match resolves speech-recognised names against candidate sets.
//
// Voice platforms routinely mangle device and group names ("kithen" for
// "Kitchen", "living room lamp" for "Living Room Lamp"), so lookups are
// done in two passes: a case-insensitive exact scan first, then an
// approximate pass scored with Jaro-Winkler similarity. The acceptance
// threshold is supplied by the caller because tolerance differs by
// context: a conflict check wants near-certainty while direct device
// control can afford to be lenient.
package match

import "strings"

// winklerPrefixLimit is the maximum common-prefix length considered by
// the Winkler adjustment.
const winklerPrefixLimit = 4

// winklerScaling is the standard Winkler prefix scaling factor.
const winklerScaling = 0.1

// Closest finds the single best match for target among items.
//
// The search is exact-first: the first item (in input order) whose label
// equals target case-insensitively wins outright, and no similarity
// scoring happens. Otherwise every label is scored against target and
// the highest-scoring item is returned only if its score is strictly
// greater than threshold. Ties keep the earliest item.
//
// Parameters:
//   - items: Candidate set, searched in order
//   - target: The name to resolve (blank never matches)
//   - threshold: Acceptance threshold in [0,1]; scores <= threshold are rejected
//   - label: Extracts the comparable name from an item
//
// Returns:
//   - T: The matched item (zero value when no match)
//   - bool: true if a match was accepted
func Closest[T any](items []T, target string, threshold float64, label func(T) string) (T, bool) {
	var zero T

	if strings.TrimSpace(target) == "" {
		return zero, false
	}

	// Exact pass: first case-insensitive hit short-circuits fuzzy matching.
	for _, item := range items {
		if strings.EqualFold(label(item), target) {
			return item, true
		}
	}

	// Approximate pass.
	bestIdx := -1
	bestScore := 0.0
	for i, item := range items {
		score := Similarity(label(item), target)
		if score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	if bestIdx >= 0 && bestScore > threshold {
		return items[bestIdx], true
	}

	return zero, false
}

// Similarity computes the Jaro-Winkler similarity between two strings.
// Returns a value between 0.0 (no similarity) and 1.0 (identical).
// The comparison is case-insensitive, deterministic, and symmetric:
// Similarity(a, b) == Similarity(b, a).
func Similarity(s1, s2 string) float64 {
	s1 = strings.ToLower(s1)
	s2 = strings.ToLower(s2)

	jaro := jaroSimilarity(s1, s2)

	// Find common prefix length for the Winkler adjustment
	prefixLen := 0
	for i := 0; i < min(len(s1), len(s2), winklerPrefixLimit); i++ {
		if s1[i] == s2[i] {
			prefixLen++
		} else {
			break
		}
	}

	// Winkler adjustment: boost score for a shared prefix
	return jaro + float64(prefixLen)*winklerScaling*(1-jaro)
}

// jaroSimilarity computes the Jaro similarity between two strings.
func jaroSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	if len(s1) == 0 || len(s2) == 0 {
		return 0.0
	}

	// Characters match if equal and within half the longer length of each other
	matchWindow := max(len(s1), len(s2))/2 - 1
	if matchWindow < 0 {
		matchWindow = 0
	}

	s1Matches := make([]bool, len(s1))
	s2Matches := make([]bool, len(s2))

	matches := 0
	for i := 0; i < len(s1); i++ {
		start := max(0, i-matchWindow)
		end := min(len(s2), i+matchWindow+1)

		for j := start; j < end; j++ {
			if s2Matches[j] || s1[i] != s2[j] {
				continue
			}
			s1Matches[i] = true
			s2Matches[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	// Count transpositions among matched characters
	transpositions := 0
	k := 0
	for i := 0; i < len(s1); i++ {
		if !s1Matches[i] {
			continue
		}
		for !s2Matches[k] {
			k++
		}
		if s1[i] != s2[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	t := float64(transpositions) / 2

	return (m/float64(len(s1)) + m/float64(len(s2)) + (m-t)/m) / 3
}
