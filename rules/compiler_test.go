package rules

import (
	"testing"

	"github.com/nstehr/colinatole/config"
)

func passingSpawnEnv() SpawnEnv {
	return SpawnEnv{
		TurnsRemaining: 300,
		Bank:           5000,
		ShipCost:       1000,
		ShipCount:      5,
		MaxShips:       24,
		NearbyShips:    0,
		BaseReserved:   false,
		MapWidth:       32,
		MapHeight:      32,
	}
}

func TestSpawnGateDefaults(t *testing.T) {
	g, err := NewSpawnGate(config.Default().Spawn)
	if err != nil {
		t.Fatalf("NewSpawnGate: %v", err)
	}
	if g.Len() != 5 {
		t.Fatalf("expected 5 built-in rules, got %d", g.Len())
	}

	tests := []struct {
		name        string
		mutate      func(*SpawnEnv)
		wantBlocked string
	}{
		{"all clear", func(*SpawnEnv) {}, ""},
		{"too late", func(e *SpawnEnv) { e.TurnsRemaining = 140 }, "late-game-cutoff"},
		{"fleet full", func(e *SpawnEnv) { e.ShipCount = 24 }, "fleet-cap"},
		{"reserve not kept", func(e *SpawnEnv) { e.Bank = 1999 }, "bank-reserve"},
		{"reserve exactly kept", func(e *SpawnEnv) { e.Bank = 2000 }, ""},
		{"congested", func(e *SpawnEnv) { e.NearbyShips = 3 }, "base-congestion"},
		{"base taken", func(e *SpawnEnv) { e.BaseReserved = true }, "base-free"},
		{"late and taken", func(e *SpawnEnv) { e.TurnsRemaining = 10; e.BaseReserved = true }, "late-game-cutoff"},
	}
	for _, tc := range tests {
		env := passingSpawnEnv()
		tc.mutate(&env)
		ok, blocked := g.Allow(env)
		if blocked != tc.wantBlocked || ok != (tc.wantBlocked == "") {
			t.Errorf("%s: Allow = (%v, %q), want blocked %q", tc.name, ok, blocked, tc.wantBlocked)
		}
	}
}

func TestSpawnGateExtraRules(t *testing.T) {
	s := config.Default().Spawn
	s.Rules = []config.RuleSpec{{Name: "small-maps-only", When: "MapWidth <= 40"}}
	g, err := NewSpawnGate(s)
	if err != nil {
		t.Fatalf("NewSpawnGate: %v", err)
	}
	env := passingSpawnEnv()
	env.MapWidth = 64
	if ok, blocked := g.Allow(env); ok || blocked != "small-maps-only" {
		t.Errorf("Allow = (%v, %q), want blocked by small-maps-only", ok, blocked)
	}
}

func TestExpansionGateBadRule(t *testing.T) {
	e := config.Default().Expansion
	e.Rules = []config.RuleSpec{{Name: "typo", When: "AreaHalit > 1"}}
	if _, err := NewExpansionGate(e); err == nil {
		t.Error("NewExpansionGate with unknown identifier should fail")
	}

	e.Rules = []config.RuleSpec{{Name: "crowded", When: "AlliesNearby >= 4"}}
	g, err := NewExpansionGate(e)
	if err != nil {
		t.Fatalf("NewExpansionGate: %v", err)
	}
	if ok, _ := g.Allow(BuildEnv{AlliesNearby: 3}); ok {
		t.Error("crowded rule should block with 3 allies")
	}
	if ok, _ := g.Allow(BuildEnv{AlliesNearby: 4}); !ok {
		t.Error("crowded rule should allow with 4 allies")
	}
}
