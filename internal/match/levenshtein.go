package match

// Levenshtein computes the edit distance between two strings, counted in
// runes: the minimum number of insertions, deletions or substitutions
// turning a into b.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	// Two rows of the distance matrix, sized by the shorter string.
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// LevenshteinNormalized computes a similarity score between 0 and 1:
// 1 - distance / max(len(a), len(b)), lengths in runes.
func LevenshteinNormalized(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(max(la, lb))
}

// NameScore compares two method names after normalization, with and without
// accessor prefixes, and returns the better score.
func NameScore(a, b string) float64 {
	score := LevenshteinNormalized(NormalizeIdent(a), NormalizeIdent(b))

	stripped := LevenshteinNormalized(NormalizeIdentWithPrefixStrip(a), NormalizeIdentWithPrefixStrip(b))
	if stripped > score {
		return stripped
	}

	return score
}
