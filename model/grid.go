package model

// Direction is a single-step move on the grid. The byte values match the
// engine's command letters.
type Direction byte

const (
	North Direction = 'n'
	South Direction = 's'
	East  Direction = 'e'
	West  Direction = 'w'
	Still Direction = 'o'
)

// Cardinals is the fixed scan order used whenever every neighbour is considered.
var Cardinals = [4]Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	case Still:
		return "still"
	}
	return "unknown"
}

// Position is an (x, y) coordinate. y grows southwards.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Offset returns the position one step in d. The result is not normalized.
func (p Position) Offset(d Direction) Position {
	switch d {
	case North:
		return Position{p.X, p.Y - 1}
	case South:
		return Position{p.X, p.Y + 1}
	case East:
		return Position{p.X + 1, p.Y}
	case West:
		return Position{p.X - 1, p.Y}
	}
	return p
}

// Cell is one grid location.
type Cell struct {
	Halite    int
	Structure bool // shipyard or dropoff of any player
}

// Grid is the toroidal game map stored row-major: Cells[y*Width + x].
type Grid struct {
	Width  int
	Height int
	Cells  []Cell
}

func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Cells: make([]Cell, width*height)}
}

// Normalize wraps p onto the torus.
func (g *Grid) Normalize(p Position) Position {
	return Position{X: wrap(p.X, g.Width), Y: wrap(p.Y, g.Height)}
}

// Index returns the row-major index of p after wrapping.
func (g *Grid) Index(p Position) int {
	p = g.Normalize(p)
	return p.Y*g.Width + p.X
}

// At returns the cell at p, wrapping out-of-range coordinates.
func (g *Grid) At(p Position) *Cell {
	return &g.Cells[g.Index(p)]
}

// Distance is the Manhattan distance with wraparound on both axes.
func (g *Grid) Distance(a, b Position) int {
	a, b = g.Normalize(a), g.Normalize(b)
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	return min(dx, g.Width-dx) + min(dy, g.Height-dy)
}

// UnsafeMoves returns the one or two directions that shorten the toroidal
// distance from src to dst, x axis first. Occupancy is not considered.
func (g *Grid) UnsafeMoves(src, dst Position) []Direction {
	src, dst = g.Normalize(src), g.Normalize(dst)
	var moves []Direction

	dx := abs(src.X - dst.X)
	wrappedDX := g.Width - dx
	if src.X < dst.X {
		if dx > wrappedDX {
			moves = append(moves, West)
		} else {
			moves = append(moves, East)
		}
	} else if src.X > dst.X {
		if dx < wrappedDX {
			moves = append(moves, West)
		} else {
			moves = append(moves, East)
		}
	}

	dy := abs(src.Y - dst.Y)
	wrappedDY := g.Height - dy
	if src.Y < dst.Y {
		if dy > wrappedDY {
			moves = append(moves, North)
		} else {
			moves = append(moves, South)
		}
	} else if src.Y > dst.Y {
		if dy < wrappedDY {
			moves = append(moves, North)
		} else {
			moves = append(moves, South)
		}
	}
	return moves
}

// AreaHalite sums halite over the square of the given radius centred on p.
func (g *Grid) AreaHalite(center Position, radius int) int {
	total := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			total += g.At(Position{center.X + dx, center.Y + dy}).Halite
		}
	}
	return total
}

func wrap(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
