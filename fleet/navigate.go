package fleet

import (
	"github.com/nstehr/colinatole/config"
	"github.com/nstehr/colinatole/model"
)

// nearestDeposit returns the closest place to unload and its distance. The
// shipyard is considered first, so it wins ties.
func nearestDeposit(me *model.Player, g *model.Grid, from model.Position) (model.Position, int) {
	best := g.Normalize(me.Shipyard)
	bestDist := g.Distance(from, best)
	for _, d := range me.Dropoffs {
		if dist := g.Distance(from, d.Position); dist < bestDist {
			best, bestDist = g.Normalize(d.Position), dist
		}
	}
	return best, bestDist
}

// updateStatus runs the state machine for ship and stores the result.
// recalled reports whether the endgame override applied this turn.
func (t *turn) updateStatus(ship model.Ship, mem *Memory) (status Status, recalled bool) {
	deposit, dist := nearestDeposit(&t.snap.Me, t.grid, ship.Position)
	in := transition{
		atDeposit:      ship.Position == deposit,
		cargo:          ship.Halite,
		capacity:       t.consts.MaxHalite,
		fullRatio:      t.tun.Mining.FullCargoRatio,
		turnsRemaining: t.snap.TurnsRemaining,
		depositDist:    dist,
		endgameMargin:  t.tun.Navigation.EndgameMargin,
	}
	status = nextStatus(mem.Status(ship.ID), in)
	mem.SetStatus(ship.ID, status)
	return status, in.turnsRemaining < in.depositDist+in.endgameMargin
}

// returningDirection heads for the nearest deposit. A ship already standing
// on it steps aside onto the cheapest free neighbour so followers can land.
func (t *turn) returningDirection(ship model.Ship) model.Direction {
	deposit, _ := nearestDeposit(&t.snap.Me, t.grid, ship.Position)
	if ship.Position != deposit {
		return t.smartNavigate(ship.Position, deposit)
	}

	var (
		best      model.Position
		bestCost  = -1
		available bool
	)
	for _, d := range model.Cardinals {
		p := t.grid.Normalize(ship.Position.Offset(d))
		if t.ov.IsReserved(p) {
			continue
		}
		h := t.grid.At(p).Halite
		if !available || h < bestCost {
			best, bestCost, available = p, h, true
		}
	}
	if !available {
		return model.Still
	}
	return t.smartNavigate(ship.Position, best)
}

// smartNavigate picks a step from 'from' toward target. The one or two
// shortest directions are tried in order; when both are reserved the
// configured fallback decides.
func (t *turn) smartNavigate(from, target model.Position) model.Direction {
	target = t.grid.Normalize(target)
	if from == target {
		return model.Still
	}
	for _, d := range t.grid.UnsafeMoves(from, target) {
		if !t.ov.IsReserved(from.Offset(d)) {
			return d
		}
	}
	return t.fallback(from, target)
}

func (t *turn) fallback(from, target model.Position) model.Direction {
	switch t.tun.Navigation.Fallback {
	case config.FallbackStay:
		return model.Still
	case config.FallbackRandom:
		if t.rng != nil {
			var open []model.Direction
			for _, d := range model.Cardinals {
				if !t.ov.IsReserved(from.Offset(d)) {
					open = append(open, d)
				}
			}
			if len(open) == 0 {
				return model.Still
			}
			return open[t.rng.Intn(len(open))]
		}
	}

	// Closest free neighbour, possibly farther than where we stand. Danger
	// only breaks ties.
	best := model.Still
	bestDist := 0
	bestSafe := false
	for _, d := range model.Cardinals {
		p := from.Offset(d)
		if t.ov.IsReserved(p) {
			continue
		}
		dist := t.grid.Distance(p, target)
		safe := !t.ov.Danger.Get(p)
		if best == model.Still || dist < bestDist || (dist == bestDist && safe && !bestSafe) {
			best, bestDist, bestSafe = d, dist, safe
		}
	}
	return best
}

// moveCost is what leaving p costs, rounded up.
func (t *turn) moveCost(p model.Position) int {
	ratio := t.consts.MoveCostRatio
	return (t.grid.At(p).Halite + ratio - 1) / ratio
}

// affordable downgrades a move the ship cannot pay for to Still.
func (t *turn) affordable(ship model.Ship, d model.Direction) model.Direction {
	if d == model.Still {
		return d
	}
	if ship.Halite < t.moveCost(ship.Position) {
		return model.Still
	}
	return d
}

// finalize converts an intended direction into a committed command. The
// destination is re-checked because an earlier ship may have taken it; the
// cell the ship ends up on is reserved either way.
func (t *turn) finalize(ship model.Ship, d model.Direction) model.Command {
	dest := ship.Position
	if d != model.Still {
		next := t.grid.Normalize(ship.Position.Offset(d))
		if t.ov.IsReserved(next) {
			d = model.Still
		} else {
			dest = next
		}
	}
	t.ov.reserve(dest)
	return model.Move(ship.ID, d)
}
