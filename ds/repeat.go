package ds

// Repeat builds a slice of n copies of initial. Padding fixed-width
// dBASE layouts is the main use.
func Repeat[T any](n int, initial T) []T {
	ts := make([]T, 0, n)
	for i := 0; i < n; i++ {
		ts = append(ts, initial)
	}
	return ts
}
