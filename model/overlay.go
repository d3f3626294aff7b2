package model

// BoolGrid is a dense per-cell flag overlay sharing the map's wraparound.
// Overlays are rebuilt every turn; Reset clears one for reuse.
type BoolGrid struct {
	width  int
	height int
	cells  []bool
}

func NewBoolGrid(width, height int) *BoolGrid {
	return &BoolGrid{width: width, height: height, cells: make([]bool, width*height)}
}

func (b *BoolGrid) index(p Position) int {
	return wrap(p.Y, b.height)*b.width + wrap(p.X, b.width)
}

// Get reports whether p is marked.
func (b *BoolGrid) Get(p Position) bool { return b.cells[b.index(p)] }

// Set marks p.
func (b *BoolGrid) Set(p Position) { b.cells[b.index(p)] = true }

// Clear unmarks p.
func (b *BoolGrid) Clear(p Position) { b.cells[b.index(p)] = false }

// Count returns the number of marked cells.
func (b *BoolGrid) Count() int {
	n := 0
	for _, v := range b.cells {
		if v {
			n++
		}
	}
	return n
}

// Reset unmarks every cell, keeping the backing slice.
func (b *BoolGrid) Reset() {
	clear(b.cells)
}
