package dataprocessing

import (
	"sort"

	"housingprep/pkg/contracts/domain"
)

// median returns the median of x, averaging the two middle values for an
// even count. ok is false for an empty slice.
func median(x []float64) (m float64, ok bool) {
	n := len(x)
	if n == 0 {
		return 0, false
	}
	sorted := make([]float64, n)
	copy(sorted, x)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2], true
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, true
}

// mode returns the most frequent non-missing value. Ties go to the smallest
// value in sort order. ok is false when every value is missing.
func mode(values []domain.Value) (m domain.Value, ok bool) {
	counts := make(map[domain.Value]int, len(values))
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		counts[v]++
	}
	if len(counts) == 0 {
		return domain.Missing(), false
	}

	best, bestCount := domain.Value{}, 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v.Less(best)) {
			best, bestCount = v, c
		}
	}
	return best, true
}
