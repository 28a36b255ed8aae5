package analysis

import "sort"

// Unique returns the distinct values of a categorical sequence in
// lexicographic order. The input order carries no meaning for the census,
// so sorting makes the result deterministic regardless of how the file
// was arranged.
func Unique(categories []string) []string {
	if len(categories) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(categories))
	unique := make([]string, 0, len(categories))
	for _, c := range categories {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}

	sort.Strings(unique)
	return unique
}

// Frequencies returns the multiplicity of each distinct value in a
// categorical sequence.
func Frequencies(categories []string) map[string]int {
	freq := make(map[string]int, len(categories))
	for _, c := range categories {
		freq[c]++
	}
	return freq
}
