package fleet

import (
	"log/slog"

	"github.com/nstehr/colinatole/rules"
)

// maxShips is the fleet cap: fixed, or proportional to map area when
// AreaPerShip is set.
func (t *turn) maxShips() int {
	if per := t.tun.Spawn.AreaPerShip; per > 0 {
		return t.grid.Width * t.grid.Height / per
	}
	return t.tun.Spawn.MaxShips
}

// trySpawn runs the production gate once all ships are decided. It returns
// whether a ship should be spawned and, if not, the rule that refused.
func (c *Controller) trySpawn(t *turn, budget *TurnBudget) (bool, string) {
	me := &t.snap.Me
	yard := t.grid.Normalize(me.Shipyard)

	nearby := 0
	for _, s := range me.Ships {
		if t.grid.Distance(s.Position, yard) <= t.tun.Spawn.CongestionRadius {
			nearby++
		}
	}

	env := rules.SpawnEnv{
		Turn:           t.snap.Turn,
		TurnsRemaining: t.snap.TurnsRemaining,
		Bank:           budget.Bank,
		ShipCost:       t.consts.ShipCost,
		ShipCount:      len(me.Ships),
		MaxShips:       t.maxShips(),
		NearbyShips:    nearby,
		BaseReserved:   t.ov.IsReserved(yard),
		MapWidth:       t.grid.Width,
		MapHeight:      t.grid.Height,
	}
	ok, blocked := c.spawnGate.Allow(env)
	if !ok {
		slog.Debug("spawn skipped", "rule", blocked, "bank", env.Bank, "ships", env.ShipCount)
		return false, blocked
	}
	budget.Bank -= t.consts.ShipCost
	t.ov.reserve(yard)
	return true, ""
}
