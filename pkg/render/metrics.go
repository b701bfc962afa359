package render

// CellMetric is one cell's measured bounding-box size, rounded to two
// decimals by the layout engine. An ordered slice of CellMetric, one per th
// and td in document order, is a snapshot of the table's geometry at a point
// in time.
type CellMetric struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// minBaseDim floors baseline dimensions so the ratio check never divides by
// a collapsed (zero-sized) cell.
const minBaseDim = 0.01

// WithinTolerance reports whether every cell in cur stayed within the
// [1-tol, 1+tol] size band of its baseline counterpart. Snapshots of
// different length (cell count changed) never pass.
func WithinTolerance(base, cur []CellMetric, tol float64) bool {
	if len(base) != len(cur) {
		return false
	}
	lo, hi := 1.0-tol, 1.0+tol
	for i := range base {
		bw := max(minBaseDim, base[i].W)
		bh := max(minBaseDim, base[i].H)
		rw := cur[i].W / bw
		rh := cur[i].H / bh
		if rw < lo || rw > hi || rh < lo || rh > hi {
			return false
		}
	}
	return true
}
