package rules

import (
	"fmt"

	"github.com/nstehr/colinatole/config"
)

// CompileSpawnRules generates the production throttle from tuning. The
// built-in conditions interpolate tuning values with fmt.Sprintf so the
// compiler never generates invalid expr; configured extras are appended
// as written.
func CompileSpawnRules(s config.Spawn) []*Rule {
	rules := []*Rule{
		{
			Name:         "late-game-cutoff",
			Priority:     500,
			ConditionSrc: fmt.Sprintf("TurnsRemaining > %d", s.StopTurns),
		},
		{
			Name:         "fleet-cap",
			Priority:     400,
			ConditionSrc: "ShipCount < MaxShips",
		},
		{
			Name:         "bank-reserve",
			Priority:     300,
			ConditionSrc: fmt.Sprintf("Bank >= ShipCost + %d", s.Reserve),
		},
		{
			Name:         "base-congestion",
			Priority:     200,
			ConditionSrc: fmt.Sprintf("NearbyShips < %d", s.CongestionLimit),
		},
		{
			Name:         "base-free",
			Priority:     100,
			ConditionSrc: "!BaseReserved",
		},
	}
	return append(rules, fromSpecs(s.Rules)...)
}

// CompileExpansionRules returns only the configured extras; the built-in
// expansion checks need grid scans and stay in Go.
func CompileExpansionRules(e config.Expansion) []*Rule {
	return fromSpecs(e.Rules)
}

func fromSpecs(specs []config.RuleSpec) []*Rule {
	rules := make([]*Rule, 0, len(specs))
	for _, s := range specs {
		rules = append(rules, &Rule{
			Name:         s.Name,
			Priority:     s.Priority,
			ConditionSrc: s.When,
		})
	}
	return rules
}

// NewSpawnGate compiles the production throttle.
func NewSpawnGate(s config.Spawn) (*Gate, error) {
	return NewGate("spawn", SpawnEnv{}, CompileSpawnRules(s))
}

// NewExpansionGate compiles the extra expansion rules. An empty gate allows
// everything.
func NewExpansionGate(e config.Expansion) (*Gate, error) {
	return NewGate("expansion", BuildEnv{}, CompileExpansionRules(e))
}
