package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultMatchesCalibration(t *testing.T) {
	d := Default()
	checks := []struct {
		name      string
		got, want int
	}{
		{"max ships", d.Spawn.MaxShips, 24},
		{"stop spawn turns", d.Spawn.StopTurns, 140},
		{"reserve", d.Spawn.Reserve, 1000},
		{"search radius", d.Mining.SearchRadius, 8},
		{"min target", d.Mining.MinTarget, 120},
		{"stay threshold", d.Mining.StayThreshold, 100},
		{"min dropoff spacing", d.Expansion.MinSpacing, 15},
		{"required halite", d.Expansion.RequiredHalite, 10000},
		{"max dropoffs", d.Expansion.MaxDropoffs, 3},
		{"endgame margin", d.Navigation.EndgameMargin, 10},
		{"inspiration radius", d.Inspiration.Radius, 4},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if d.Navigation.Fallback != FallbackClosest {
		t.Errorf("fallback = %q, want %q", d.Navigation.Fallback, FallbackClosest)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	src := `
spawn:
  max_ships: 30
  rules:
    - name: rich-only
      when: Bank > 5000
mining:
  claim_ratio: 0.8
navigation:
  fallback: random
`
	tun := Default()
	if err := Parse([]byte(src), &tun); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tun.Spawn.MaxShips != 30 {
		t.Errorf("MaxShips = %d, want 30", tun.Spawn.MaxShips)
	}
	if tun.Spawn.StopTurns != 140 {
		t.Errorf("StopTurns = %d, want default 140", tun.Spawn.StopTurns)
	}
	if tun.Mining.ClaimRatio != 0.8 {
		t.Errorf("ClaimRatio = %v, want 0.8", tun.Mining.ClaimRatio)
	}
	if tun.Navigation.Fallback != FallbackRandom {
		t.Errorf("Fallback = %q, want random", tun.Navigation.Fallback)
	}
	if len(tun.Spawn.Rules) != 1 || tun.Spawn.Rules[0].Name != "rich-only" {
		t.Errorf("Spawn.Rules = %+v, want one rule named rich-only", tun.Spawn.Rules)
	}
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	tun := Default()
	if err := Parse([]byte(""), &tun); err != nil {
		t.Fatalf("Parse(empty): %v", err)
	}
	if tun.Spawn.MaxShips != 24 {
		t.Errorf("MaxShips = %d, want 24", tun.Spawn.MaxShips)
	}
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown section", "weapons:\n  lasers: 3\n"},
		{"unknown key", "spawn:\n  max_boats: 3\n"},
		{"negative count", "spawn:\n  max_ships: -1\n"},
		{"bad fallback", "navigation:\n  fallback: teleport\n"},
		{"ratio above one", "mining:\n  claim_ratio: 1.5\n"},
		{"rule without condition", "spawn:\n  rules:\n    - name: x\n"},
		{"wrong type", "spawn:\n  max_ships: many\n"},
	}
	for _, tc := range tests {
		tun := Default()
		if err := Parse([]byte(tc.src), &tun); err == nil {
			t.Errorf("%s: Parse succeeded, want error", tc.name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte("expansion:\n  scale_with_map: true\n  min_allies: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tun, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !tun.Expansion.ScaleWithMap || tun.Expansion.MinAllies != 0 {
		t.Errorf("Expansion = %+v, want scale_with_map and min_allies 0", tun.Expansion)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("spawn: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("Load(bad) error = %v, want error naming the file", err)
	}
}

func TestValidateClamps(t *testing.T) {
	tun := Default()
	tun.Mining.LowValuePenalty = 3
	tun.Inspiration.Multiplier = 0
	tun.Navigation.Fallback = ""
	tun.Agent.Name = ""
	tun.Validate()

	if tun.Mining.LowValuePenalty != 1 {
		t.Errorf("LowValuePenalty = %v, want 1", tun.Mining.LowValuePenalty)
	}
	if tun.Inspiration.Multiplier != 1 {
		t.Errorf("Multiplier = %d, want 1", tun.Inspiration.Multiplier)
	}
	if tun.Navigation.Fallback != FallbackClosest {
		t.Errorf("Fallback = %q, want closest", tun.Navigation.Fallback)
	}
	if tun.Agent.Name != "Colinatole" {
		t.Errorf("Name = %q, want Colinatole", tun.Agent.Name)
	}
}
