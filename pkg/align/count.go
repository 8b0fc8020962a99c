package align

// CountPaths returns the number of optimal alignments Traceback would emit
// for a filled matrix, without enumerating them. Counting stops at limit:
// when there are more paths, n is limit+1 and exact is false. limit must be
// below MaxInt/3.
//
// It runs in rows*cols time and keeps two rows of counts.
func CountPaths(m *Matrix, limit int) (n int, exact bool) {
	prev, cur := make([]int, m.cols), make([]int, m.cols)
	for r := range m.rows {
		for c := range m.cols {
			b := m.links[r*m.cols+c]
			if b == NoBacklinks {
				cur[c] = 1
				continue
			}
			k := 0
			if b.Has(Diagonal) {
				k += prev[c-1]
			}
			if b.Has(Up) {
				k += prev[c]
			}
			if b.Has(Left) {
				k += cur[c-1]
			}
			cur[c] = min(k, limit+1)
		}
		prev, cur = cur, prev
	}
	n = prev[m.cols-1]
	return n, n <= limit
}
