package fleet

import (
	"math/rand"
	"testing"

	"github.com/nstehr/colinatole/config"
	"github.com/nstehr/colinatole/model"
)

// baseSnapshot returns an empty map with our shipyard at yard and plenty of
// turns left.
func baseSnapshot(w, h int, yard model.Position) model.Snapshot {
	g := model.NewGrid(w, h)
	g.At(yard).Structure = true
	return model.Snapshot{
		Turn:           100,
		TurnsRemaining: 300,
		Constants:      model.DefaultConstants(),
		Me:             model.Player{ID: 0, Shipyard: yard},
		Grid:           g,
	}
}

func ship(id, x, y, halite int) model.Ship {
	return model.Ship{ID: id, Position: model.Position{X: x, Y: y}, Halite: halite}
}

func pos(x, y int) model.Position { return model.Position{X: x, Y: y} }

// newTurn builds the per-turn state the planners run against.
func newTurn(snap *model.Snapshot, tun config.Tuning) *turn {
	tun.Validate()
	return &turn{
		snap:    snap,
		grid:    snap.Grid,
		consts:  withDefaults(snap.Constants),
		ov:      Annotate(snap, tun.Inspiration),
		tun:     &tun,
		rng:     rand.New(rand.NewSource(1)),
		inspire: true,
	}
}

func newController(t *testing.T, tun config.Tuning) *Controller {
	t.Helper()
	c, err := NewController(tun, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c
}

func commandFor(cmds []model.Command, shipID int) (model.Command, bool) {
	for _, c := range cmds {
		if c.Kind != model.CommandSpawn && c.ShipID == shipID {
			return c, true
		}
	}
	return model.Command{}, false
}

func countKind(cmds []model.Command, k model.CommandKind) int {
	n := 0
	for _, c := range cmds {
		if c.Kind == k {
			n++
		}
	}
	return n
}
