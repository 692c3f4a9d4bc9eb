package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMax returns the index of the first item with the greatest key, or -1 for an empty slice.
// Later items only win on a strictly greater key.
func ArgMax[T any](items []T, key func(T) float64) int {
	best := -1
	var bestKey float64
	for i, item := range items {
		if k := key(item); best == -1 || k > bestKey {
			best = i
			bestKey = k
		}
	}
	return best
}
