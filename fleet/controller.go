// Package fleet decides every ship's order for one turn: memory upkeep,
// overlays, dropoff expansion, mining and returning movement with
// reservation-based collision avoidance, and ship production.
//
// Ships are decided one after another in snapshot order. Each decision
// reads the reservations made by the ships before it, so the order is part
// of the result and the controller must not decide ships concurrently.
package fleet

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/nstehr/colinatole/config"
	"github.com/nstehr/colinatole/model"
	"github.com/nstehr/colinatole/rules"
)

// Controller owns the fleet's cross-turn memory and compiled policies.
type Controller struct {
	tuning    config.Tuning
	memory    *Memory
	spawnGate *rules.Gate
	buildGate *rules.Gate
	rng       *rand.Rand
	ov        *Overlays // reused across turns
	last      TurnStats
}

// TurnStats summarises the last decided turn.
type TurnStats struct {
	Turn           int
	Ships          int
	Returning      int
	Recalled       int // ships under the endgame override
	Moves          int
	Stays          int
	Built          int
	Spawned        bool
	SpawnBlockedBy string
	Bank           int // after this turn's debits
}

// NewController compiles the tuning's gates. rng is only consulted by the
// random fallback policy and may be nil.
func NewController(t config.Tuning, rng *rand.Rand) (*Controller, error) {
	t.Validate()
	spawnGate, err := rules.NewSpawnGate(t.Spawn)
	if err != nil {
		return nil, fmt.Errorf("spawn rules: %w", err)
	}
	buildGate, err := rules.NewExpansionGate(t.Expansion)
	if err != nil {
		return nil, fmt.Errorf("expansion rules: %w", err)
	}
	slog.Debug("gates compiled", "spawn", spawnGate.Names(), "expansion", buildGate.Names())
	return &Controller{
		tuning:    t,
		memory:    NewMemory(),
		spawnGate: spawnGate,
		buildGate: buildGate,
		rng:       rng,
	}, nil
}

// Memory exposes the per-ship memory, mostly for inspection.
func (c *Controller) Memory() *Memory { return c.memory }

// LastTurn returns statistics about the most recent PlayTurn call.
func (c *Controller) LastTurn() TurnStats { return c.last }

// turn bundles the state shared by the planners while one turn is decided.
type turn struct {
	snap    *model.Snapshot
	grid    *model.Grid
	consts  model.Constants
	ov      *Overlays
	tun     *config.Tuning
	rng     *rand.Rand
	inspire bool
}

// PlayTurn returns one command per owned ship, in snapshot order, followed
// by at most one spawn command.
func (c *Controller) PlayTurn(snap model.Snapshot) []model.Command {
	ships := snap.Me.Ships
	c.memory.Prune(ships)
	c.last = TurnStats{Turn: snap.Turn, Ships: len(ships), Bank: snap.Me.Halite}

	if snap.Grid == nil || snap.Grid.Width == 0 || snap.Grid.Height == 0 {
		slog.Warn("snapshot without a map; holding position", "turn", snap.Turn)
		commands := make([]model.Command, 0, len(ships))
		for _, s := range ships {
			c.memory.EnsureInitialized(s)
			commands = append(commands, model.Stay(s.ID))
		}
		c.last.Stays = len(commands)
		return commands
	}

	snap.Constants = withDefaults(snap.Constants)
	c.ov = c.ov.reuse(snap.Grid.Width, snap.Grid.Height)
	c.ov.annotate(&snap, c.tuning.Inspiration)
	t := &turn{
		snap:    &snap,
		grid:    snap.Grid,
		consts:  snap.Constants,
		ov:      c.ov,
		tun:     &c.tuning,
		rng:     c.rng,
		inspire: snap.Constants.InspirationOn,
	}
	budget := NewTurnBudget(snap.Me.Halite)
	commands := make([]model.Command, 0, len(ships)+1)

	for _, ship := range ships {
		ship.Position = t.grid.Normalize(ship.Position)
		t.ov.release(ship.Position)

		if c.tryBuild(t, ship, budget) {
			// Converted ships vanish next turn; Prune drops them then.
			c.memory.EnsureInitialized(ship)
			commands = append(commands, model.Build(ship.ID))
			c.last.Built++
			continue
		}
		c.memory.EnsureInitialized(ship)

		status, recalled := t.updateStatus(ship, c.memory)
		if recalled {
			c.last.Recalled++
		}

		var dir model.Direction
		if status == Returning {
			c.last.Returning++
			dir = t.returningDirection(ship)
		} else {
			dir = t.miningDirection(ship, c.memory)
		}
		dir = t.affordable(ship, dir)

		cmd := t.finalize(ship, dir)
		if cmd.IsStay() {
			c.last.Stays++
		} else {
			c.last.Moves++
		}
		commands = append(commands, cmd)
	}

	if ok, blocked := c.trySpawn(t, budget); ok {
		commands = append(commands, model.Spawn())
		c.last.Spawned = true
	} else {
		c.last.SpawnBlockedBy = blocked
	}
	c.last.Bank = budget.Bank
	return commands
}

// withDefaults fills engine constants a snapshot left at zero.
func withDefaults(c model.Constants) model.Constants {
	if c == (model.Constants{}) {
		return model.DefaultConstants()
	}
	d := model.DefaultConstants()
	if c.MaxHalite == 0 {
		c.MaxHalite = d.MaxHalite
	}
	if c.ShipCost == 0 {
		c.ShipCost = d.ShipCost
	}
	if c.DropoffCost == 0 {
		c.DropoffCost = d.DropoffCost
	}
	if c.MoveCostRatio == 0 {
		c.MoveCostRatio = d.MoveCostRatio
	}
	return c
}
