// Package selection implements the rectangular drag selection over
// sequence rows and columns.
package selection

// Range is a normalized, closed row/column rectangle.
type Range struct {
	RowStart int
	RowEnd   int
	StartCol int
	EndCol   int
}

// Width returns the number of selected columns.
func (r Range) Width() int {
	return r.EndCol - r.StartCol + 1
}

// Rows returns the number of selected rows.
func (r Range) Rows() int {
	return r.RowEnd - r.RowStart + 1
}

// ContainsRow reports whether a row falls inside the range.
func (r Range) ContainsRow(row int) bool {
	return row >= r.RowStart && row <= r.RowEnd
}

// Contains reports whether a row/column cell falls inside the range.
func (r Range) Contains(row, col int) bool {
	return r.ContainsRow(row) && col >= r.StartCol && col <= r.EndCol
}

// Model tracks the selection gesture. At most one range exists at a
// time; the anchor is the cell the gesture started on and never moves
// while the drag extends the opposite corner.
type Model struct {
	active    bool
	anchorRow int
	anchorCol int
	headRow   int
	headCol   int
}

// New creates an empty selection model.
func New() *Model {
	return &Model{}
}

// Active reports whether a selection exists.
func (m *Model) Active() bool {
	return m.active
}

// Start begins a gesture at the given row and column. The press must
// land on a real row with a non-negative column; anything else clears
// the selection and returns false. A press past a row's end is a
// deselect gesture, not a selection, so the column is otherwise not
// validated here.
func (m *Model) Start(row, col, rowCount int) bool {
	if rowCount < 1 || row < 0 || row >= rowCount || col < 0 {
		m.Clear()
		return false
	}
	m.active = true
	m.anchorRow = row
	m.anchorCol = col
	m.headRow = row
	m.headCol = col
	return true
}

// Update extends the gesture to a new cell. Unlike Start, the update
// clamps: drags naturally wander past the content edges and the
// selection should stick to the nearest valid cell. Empty content
// clears the selection instead.
func (m *Model) Update(row, col, rowCount, maxLen int) (Range, bool) {
	if !m.active {
		return Range{}, false
	}
	if maxLen <= 0 || rowCount < 1 {
		m.Clear()
		return Range{}, false
	}
	if row < 0 {
		row = 0
	}
	if row >= rowCount {
		row = rowCount - 1
	}
	if col < 0 {
		col = 0
	}
	if col >= maxLen {
		col = maxLen - 1
	}
	m.headRow = row
	m.headCol = col
	return m.Current()
}

// Current returns the normalized range, if any.
func (m *Model) Current() (Range, bool) {
	if !m.active {
		return Range{}, false
	}
	r := Range{
		RowStart: m.anchorRow,
		RowEnd:   m.headRow,
		StartCol: m.anchorCol,
		EndCol:   m.headCol,
	}
	if r.RowStart > r.RowEnd {
		r.RowStart, r.RowEnd = r.RowEnd, r.RowStart
	}
	if r.StartCol > r.EndCol {
		r.StartCol, r.EndCol = r.EndCol, r.StartCol
	}
	return r, true
}

// Clear removes the selection. Clearing an empty model is a no-op.
func (m *Model) Clear() {
	m.active = false
	m.anchorRow = 0
	m.anchorCol = 0
	m.headRow = 0
	m.headCol = 0
}

// Center returns the fractional column at the middle of the selection,
// used as the zoom pivot. The midpoint of a closed range [s, e] in
// column space is (s+e+1)/2, the boundary between the two center
// columns. The result is clamped into [0, maxLen].
func (m *Model) Center(maxLen int) (float64, bool) {
	r, ok := m.Current()
	if !ok {
		return 0, false
	}
	c := float64(r.StartCol+r.EndCol+1) / 2.0
	if c < 0 {
		c = 0
	}
	if maxLen > 0 && c > float64(maxLen) {
		c = float64(maxLen)
	}
	return c, true
}
