package fleet

import (
	"log/slog"

	"github.com/nstehr/colinatole/model"
	"github.com/nstehr/colinatole/rules"
)

// TurnBudget is the bank balance as the controller sees it during one turn.
// Accepted builds are debited immediately so a later ship cannot spend the
// same halite again.
type TurnBudget struct {
	Bank  int
	built []model.Position
}

func NewTurnBudget(bank int) *TurnBudget {
	return &TurnBudget{Bank: bank}
}

// Debit records a deposit accepted at p.
func (b *TurnBudget) Debit(cost int, p model.Position) {
	b.Bank -= cost
	b.built = append(b.built, p)
}

// Built lists deposits accepted this turn, in order.
func (b *TurnBudget) Built() []model.Position { return b.built }

// tryBuild decides whether ship converts itself into a dropoff. On
// acceptance the budget is debited and the cell reserved.
func (c *Controller) tryBuild(t *turn, ship model.Ship, budget *TurnBudget) bool {
	exp := t.tun.Expansion
	me := &t.snap.Me
	g := t.grid

	if budget.Bank < t.consts.DropoffCost+t.consts.ShipCost {
		return false
	}
	if t.snap.TurnsRemaining <= expansionTurnFloor(exp.MinTurns, exp.ScaleWithMap, g.Width) {
		return false
	}
	if len(me.Dropoffs)+len(budget.Built()) >= exp.MaxDropoffs {
		return false
	}

	pos := ship.Position
	distToBase := g.Distance(pos, me.Shipyard)
	for _, d := range append(me.Deposits(), budget.Built()...) {
		if g.Distance(pos, d) < exp.MinSpacing {
			return false
		}
	}
	if g.At(pos).Structure {
		return false
	}

	area := g.AreaHalite(pos, exp.AreaRadius)
	if area < exp.RequiredHalite {
		return false
	}

	allies := 0
	for _, s := range me.Ships {
		if g.Distance(pos, s.Position) <= exp.AllyRadius {
			allies++
		}
	}
	if exp.MinAllies > 0 && allies < exp.MinAllies {
		return false
	}

	for _, d := range model.Cardinals {
		if g.AreaHalite(pos.Offset(d), exp.AreaRadius) > area+exp.LocalMaxTolerance {
			return false
		}
	}

	if c.buildGate != nil && c.buildGate.Len() > 0 {
		env := rules.BuildEnv{
			Turn:           t.snap.Turn,
			TurnsRemaining: t.snap.TurnsRemaining,
			Bank:           budget.Bank,
			DropoffCost:    t.consts.DropoffCost,
			ShipCost:       t.consts.ShipCost,
			Dropoffs:       len(me.Dropoffs) + len(budget.Built()),
			ShipCount:      len(me.Ships),
			ShipHalite:     ship.Halite,
			AreaHalite:     area,
			AlliesNearby:   allies,
			DistanceToBase: distToBase,
			MapWidth:       g.Width,
			MapHeight:      g.Height,
		}
		if ok, blocked := c.buildGate.Allow(env); !ok {
			slog.Debug("dropoff blocked by rule", "ship", ship.ID, "rule", blocked)
			return false
		}
	}

	budget.Debit(t.consts.DropoffCost, pos)
	t.ov.reserve(pos)
	slog.Debug("building dropoff", "ship", ship.ID, "pos", pos, "areaHalite", area, "allies", allies, "bank", budget.Bank)
	return true
}

// expansionTurnFloor is how many turns must remain for a dropoff to pay off.
// Larger maps take longer to recoup the cost.
func expansionTurnFloor(minTurns int, scale bool, width int) int {
	if scale {
		return max(minTurns, width*2+20)
	}
	return minTurns
}
