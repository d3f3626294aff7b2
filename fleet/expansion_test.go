package fleet

import (
	"testing"

	"github.com/nstehr/colinatole/config"
	"github.com/nstehr/colinatole/model"
)

// richSnapshot lays a square of 200-halite cells with radius 4 around each
// center on a 40x40 map with the shipyard in the corner.
func richSnapshot(bank int, centers ...model.Position) model.Snapshot {
	snap := baseSnapshot(40, 40, pos(0, 0))
	snap.Me.Halite = bank
	for _, c := range centers {
		for dy := -4; dy <= 4; dy++ {
			for dx := -4; dx <= 4; dx++ {
				snap.Grid.At(pos(c.X+dx, c.Y+dy)).Halite = 200
			}
		}
	}
	return snap
}

func TestTryBuildAcceptsGoodSite(t *testing.T) {
	snap := richSnapshot(5000, pos(20, 20))
	snap.Me.Ships = []model.Ship{ship(1, 20, 20, 0), ship(2, 21, 20, 0)}
	c := newController(t, config.Default())
	tr := newTurn(&snap, config.Default())
	budget := NewTurnBudget(snap.Me.Halite)

	if !c.tryBuild(tr, snap.Me.Ships[0], budget) {
		t.Fatal("tryBuild rejected a rich, dense, distant site")
	}
	if budget.Bank != 1000 {
		t.Errorf("bank after build = %d, want 1000", budget.Bank)
	}
	if built := budget.Built(); len(built) != 1 || built[0] != pos(20, 20) {
		t.Errorf("Built() = %v, want [(20,20)]", built)
	}
	if !tr.ov.Reserved.Get(pos(20, 20)) {
		t.Error("build site should be reserved")
	}
}

func TestTryBuildRejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*model.Snapshot, *config.Tuning)
	}{
		{"bank below dropoff plus ship", func(s *model.Snapshot, _ *config.Tuning) { s.Me.Halite = 4999 }},
		{"too late", func(s *model.Snapshot, _ *config.Tuning) { s.TurnsRemaining = 100 }},
		{"too late on a scaled map", func(s *model.Snapshot, tun *config.Tuning) {
			s.TurnsRemaining = 90
			tun.Expansion.MinTurns = 50
			tun.Expansion.ScaleWithMap = true
		}},
		{"dropoff cap", func(s *model.Snapshot, tun *config.Tuning) {
			tun.Expansion.MaxDropoffs = 1
			s.Me.Dropoffs = []model.Dropoff{{ID: 5, Position: pos(30, 5)}}
		}},
		{"near the shipyard", func(s *model.Snapshot, _ *config.Tuning) { s.Me.Shipyard = pos(10, 18) }},
		{"near a dropoff", func(s *model.Snapshot, _ *config.Tuning) {
			s.Me.Dropoffs = []model.Dropoff{{ID: 5, Position: pos(28, 25)}}
		}},
		{"on a structure", func(s *model.Snapshot, _ *config.Tuning) { s.Grid.At(pos(20, 20)).Structure = true }},
		{"not enough halite", func(_ *model.Snapshot, tun *config.Tuning) { tun.Expansion.RequiredHalite = 20000 }},
		{"too few allies", func(s *model.Snapshot, _ *config.Tuning) { s.Me.Ships = s.Me.Ships[:1] }},
		{"richer neighbour", func(s *model.Snapshot, _ *config.Tuning) {
			for dy := -4; dy <= 4; dy++ {
				s.Grid.At(pos(25, 20+dy)).Halite = 1000
			}
		}},
		{"extra rule", func(_ *model.Snapshot, tun *config.Tuning) {
			tun.Expansion.Rules = []config.RuleSpec{{Name: "loaded", When: "ShipHalite >= 500"}}
		}},
	}

	for _, tc := range tests {
		snap := richSnapshot(5000, pos(20, 20))
		snap.Me.Ships = []model.Ship{ship(1, 20, 20, 0), ship(2, 21, 20, 0)}
		tun := config.Default()
		tc.setup(&snap, &tun)

		c := newController(t, tun)
		tr := newTurn(&snap, tun)
		budget := NewTurnBudget(snap.Me.Halite)
		if c.tryBuild(tr, snap.Me.Ships[0], budget) {
			t.Errorf("%s: tryBuild accepted", tc.name)
		}
		if budget.Bank != snap.Me.Halite || len(budget.Built()) != 0 {
			t.Errorf("%s: rejected build touched the budget", tc.name)
		}
		if tr.ov.Reserved.Get(pos(20, 20)) {
			t.Errorf("%s: rejected build reserved the cell", tc.name)
		}
	}
}

func TestTryBuildWithoutDensityCheck(t *testing.T) {
	snap := richSnapshot(5000, pos(20, 20))
	snap.Me.Ships = []model.Ship{ship(1, 20, 20, 0)}
	tun := config.Default()
	tun.Expansion.MinAllies = 0

	c := newController(t, tun)
	tr := newTurn(&snap, tun)
	if !c.tryBuild(tr, snap.Me.Ships[0], NewTurnBudget(snap.Me.Halite)) {
		t.Error("MinAllies 0 should disable the density check")
	}
}

func TestTryBuildToleratesSlightlyRicherNeighbour(t *testing.T) {
	snap := richSnapshot(5000, pos(20, 20))
	snap.Me.Ships = []model.Ship{ship(1, 20, 20, 0), ship(2, 21, 20, 0)}
	// The east neighbour's window gains column 25 worth 1998 and loses
	// column 16 worth 1800, inside the tolerance.
	for dy := -4; dy <= 4; dy++ {
		snap.Grid.At(pos(25, 20+dy)).Halite = 2000 / 9
	}
	c := newController(t, config.Default())
	tr := newTurn(&snap, config.Default())
	if !c.tryBuild(tr, snap.Me.Ships[0], NewTurnBudget(snap.Me.Halite)) {
		t.Error("neighbour within tolerance should not block the build")
	}
}

func TestBudgetPreventsDoubleSpend(t *testing.T) {
	snap := richSnapshot(8000, pos(20, 20), pos(20, 5))
	snap.Me.Ships = []model.Ship{
		ship(1, 20, 20, 0), ship(2, 21, 20, 0),
		ship(3, 20, 5, 0), ship(4, 21, 5, 0),
	}
	c := newController(t, config.Default())

	cmds := c.PlayTurn(snap)
	if n := countKind(cmds, model.CommandBuild); n != 1 {
		t.Fatalf("builds = %d, want 1 with bank for only one", n)
	}
	if cmd, _ := commandFor(cmds, 1); cmd.Kind != model.CommandBuild {
		t.Errorf("ship 1 command = %+v, want build", cmd)
	}
	if !c.Memory().Known(1) {
		t.Error("a ship building on its first turn should still be remembered")
	}

	snap.Me.Halite = 10000
	c = newController(t, config.Default())
	cmds = c.PlayTurn(snap)
	if n := countKind(cmds, model.CommandBuild); n != 2 {
		t.Errorf("builds = %d, want 2 with bank for both", n)
	}
	// Two dropoffs and a spawn.
	if got := c.LastTurn().Bank; got != 1000 {
		t.Errorf("bank after turn = %d, want 1000", got)
	}
}

func TestBudgetCountsSameTurnDepositsForSpacing(t *testing.T) {
	snap := richSnapshot(20000, pos(20, 20), pos(28, 20))
	snap.Me.Ships = []model.Ship{
		ship(1, 20, 20, 0), ship(2, 21, 20, 0),
		ship(3, 28, 20, 0), ship(4, 29, 20, 0),
	}
	tun := config.Default()
	tun.Expansion.LocalMaxTolerance = 100000
	c := newController(t, tun)

	cmds := c.PlayTurn(snap)
	if n := countKind(cmds, model.CommandBuild); n != 1 {
		t.Errorf("builds = %d, want 1: the second site is too close to the first", n)
	}
}

func TestExpansionTurnFloor(t *testing.T) {
	tests := []struct {
		minTurns int
		scale    bool
		width    int
		want     int
	}{
		{100, false, 64, 100},
		{100, true, 32, 100},
		{100, true, 40, 100},
		{100, true, 64, 148},
	}
	for _, tc := range tests {
		if got := expansionTurnFloor(tc.minTurns, tc.scale, tc.width); got != tc.want {
			t.Errorf("expansionTurnFloor(%d, %v, %d) = %d, want %d", tc.minTurns, tc.scale, tc.width, got, tc.want)
		}
	}
}
