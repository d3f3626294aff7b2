package fleet

import (
	"github.com/nstehr/colinatole/config"
	"github.com/nstehr/colinatole/model"
)

// inspirationCap bounds the per-cell enemy counter.
const inspirationCap = 255

// Overlays are the per-turn annotation grids. They are rebuilt from each
// snapshot and mutated only sequentially while ships are decided.
type Overlays struct {
	// Reserved marks cells that will be occupied next turn: enemy cells,
	// cells committed by already-decided allies, new structures and spawns.
	// A reserved cell is never released within the turn.
	Reserved *model.BoolGrid
	// Danger marks enemy cells and their orthogonal neighbours. Advisory.
	Danger   *model.BoolGrid
	Inspired *model.BoolGrid
	// Claimed marks mining targets already taken by a ship this turn.
	Claimed *model.BoolGrid

	// held marks cells of allies that have not been decided yet. A ship
	// drops its own hold when its turn to decide comes.
	held *model.BoolGrid

	width, height int
	counts        []uint8 // enemies within inspiration range, per cell
	visit         []int32 // last enemy (1-based) that counted each cell
}

func newOverlays(width, height int) *Overlays {
	return &Overlays{
		Reserved: model.NewBoolGrid(width, height),
		Danger:   model.NewBoolGrid(width, height),
		Inspired: model.NewBoolGrid(width, height),
		Claimed:  model.NewBoolGrid(width, height),
		held:     model.NewBoolGrid(width, height),
		width:    width,
		height:   height,
		counts:   make([]uint8, width*height),
		visit:    make([]int32, width*height),
	}
}

// reuse returns o cleared for a width x height map. It allocates only when
// o is nil or sized for another map.
func (o *Overlays) reuse(width, height int) *Overlays {
	if o == nil || o.width != width || o.height != height {
		return newOverlays(width, height)
	}
	o.Reserved.Reset()
	o.Danger.Reset()
	o.Inspired.Reset()
	o.Claimed.Reset()
	o.held.Reset()
	clear(o.counts)
	clear(o.visit)
	return o
}

// Annotate builds the overlays for one turn.
func Annotate(snap *model.Snapshot, insp config.Inspiration) *Overlays {
	ov := newOverlays(snap.Grid.Width, snap.Grid.Height)
	ov.annotate(snap, insp)
	return ov
}

func (o *Overlays) annotate(snap *model.Snapshot, insp config.Inspiration) {
	// Enemy intent is unknown: assume each enemy may stay or step once.
	for _, e := range snap.Enemies {
		o.Reserved.Set(e.Position)
		o.Danger.Set(e.Position)
		for _, d := range model.Cardinals {
			o.Danger.Set(e.Position.Offset(d))
		}
	}

	o.markInspiration(snap.Grid, snap.Enemies, insp)

	for _, s := range snap.Me.Ships {
		o.held.Set(s.Position)
	}
}

func (o *Overlays) markInspiration(g *model.Grid, enemies []model.Ship, insp config.Inspiration) {
	if len(enemies) == 0 {
		return
	}
	r := insp.Radius
	for n, e := range enemies {
		id := int32(n + 1)
		for dy := -r; dy <= r; dy++ {
			span := r - abs(dy)
			for dx := -span; dx <= span; dx++ {
				i := g.Index(model.Position{X: e.Position.X + dx, Y: e.Position.Y + dy})
				// A diamond wider than the map wraps onto itself; an enemy
				// counts once per cell.
				if o.visit[i] == id {
					continue
				}
				o.visit[i] = id
				if o.counts[i] < inspirationCap {
					o.counts[i]++
				}
			}
		}
	}
	for i, c := range o.counts {
		if int(c) >= insp.ShipsRequired {
			o.Inspired.Set(model.Position{X: i % g.Width, Y: i / g.Width})
		}
	}
}

// IsReserved reports whether a ship being decided must not end its move on p.
func (o *Overlays) IsReserved(p model.Position) bool {
	return o.Reserved.Get(p) || o.held.Get(p)
}

// release drops the hold on a ship's own cell while it decides.
func (o *Overlays) release(p model.Position) { o.held.Clear(p) }

// reserve commits p for next turn.
func (o *Overlays) reserve(p model.Position) { o.Reserved.Set(p) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
