package domain

// parseEnum returns the declared value equal to s. Matching is exact and
// case-sensitive; there is no fallback value.
func parseEnum[T ~string](s string, values []T) (T, bool) {
	for _, v := range values {
		if string(v) == s {
			return v, true
		}
	}
	var zero T
	return zero, false
}
