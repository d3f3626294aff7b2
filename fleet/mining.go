package fleet

import (
	"log/slog"

	"github.com/nstehr/colinatole/model"
)

// effective is the halite a ship would value at p: the raw amount, boosted
// when the cell is inspired. Every mining comparison uses this value.
func (t *turn) effective(p model.Position) int {
	h := t.grid.At(p).Halite
	if t.inspire && t.ov.Inspired.Get(p) {
		h *= t.tun.Inspiration.Multiplier
	}
	return h
}

// miningDirection decides a mining ship's step: stay on a rich cell,
// otherwise head for the remembered target, picking a new one when the old
// one is reached or exhausted.
func (t *turn) miningDirection(ship model.Ship, mem *Memory) model.Direction {
	pos := ship.Position
	if t.effective(pos) >= t.tun.Mining.StayThreshold {
		t.ov.Claimed.Set(pos)
		return model.Still
	}

	target, ok := mem.Target(ship.ID)
	if ok {
		target = t.grid.Normalize(target)
	}
	if !ok || target == pos || t.effective(target) < t.tun.Mining.MinTarget {
		prev := target
		target = t.pickTarget(pos)
		mem.SetTarget(ship.ID, target)
		slog.Debug("mining target changed", "ship", ship.ID, "from", prev, "to", target, "halite", t.effective(target))
	}
	t.ov.Claimed.Set(target)
	return t.smartNavigate(pos, target)
}

// pickTarget scans the square search window around from and returns the
// cell with the best halite-per-step score. Cells claimed by another ship
// this turn lose to an unclaimed cell scoring at least ClaimRatio as well.
func (t *turn) pickTarget(from model.Position) model.Position {
	r := t.tun.Mining.SearchRadius

	best, bestScore := from, -1.0
	free, freeScore := from, -1.0
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			cand := t.grid.Normalize(model.Position{X: from.X + dx, Y: from.Y + dy})
			score := t.score(from, cand)
			if score > bestScore {
				best, bestScore = cand, score
			}
			if !t.ov.Claimed.Get(cand) && score > freeScore {
				free, freeScore = cand, score
			}
		}
	}

	if t.ov.Claimed.Get(best) && freeScore >= 0 && freeScore >= bestScore*t.tun.Mining.ClaimRatio {
		return free
	}
	return best
}

func (t *turn) score(from, cand model.Position) float64 {
	h := t.effective(cand)
	score := float64(h) / float64(t.grid.Distance(from, cand)+1)
	if h < t.tun.Mining.MinTarget {
		score *= t.tun.Mining.LowValuePenalty
	}
	return score
}
