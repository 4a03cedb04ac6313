package ds

// MakeChunks groups the elements of a slice into smaller "chunk"s of n
// elements each; a short final chunk keeps whatever is left. For
// example,
//
//	MakeChunks([]byte{1, 2, 3, 4, 5}, 2)
//
// should return this exact value:
//
//	[][]byte{{1, 2}, {3, 4}, {5}}
func MakeChunks[T any](ts []T, n int) [][]T {
	chunks := make([][]T, 0, len(ts)/n+1)
	for i := 0; i < len(ts); i += n {
		end := i + n
		if end > len(ts) {
			end = len(ts)
		}
		chunks = append(chunks, ts[i:end])
	}
	return chunks
}
