package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Fallback policies for a blocked navigator.
const (
	FallbackClosest = "closest" // nearest unreserved neighbour, even if farther from the target
	FallbackRandom  = "random"  // any unreserved neighbour, chosen by the match RNG
	FallbackStay    = "stay"
)

// Tuning holds every heuristic constant of the fleet controller. Engine
// rules (capacity, costs, turn limit) are not here; they arrive with the
// match constants.
type Tuning struct {
	Spawn       Spawn       `yaml:"spawn" json:"spawn"`
	Mining      Mining      `yaml:"mining" json:"mining"`
	Inspiration Inspiration `yaml:"inspiration" json:"inspiration"`
	Navigation  Navigation  `yaml:"navigation" json:"navigation"`
	Expansion   Expansion   `yaml:"expansion" json:"expansion"`
	Agent       Agent       `yaml:"agent" json:"agent"`
}

type Spawn struct {
	MaxShips         int        `yaml:"max_ships" json:"max_ships"`
	AreaPerShip      int        `yaml:"area_per_ship" json:"area_per_ship"` // >0 replaces MaxShips with width*height/AreaPerShip
	StopTurns        int        `yaml:"stop_turns" json:"stop_turns"`
	Reserve          int        `yaml:"reserve" json:"reserve"`
	CongestionRadius int        `yaml:"congestion_radius" json:"congestion_radius"`
	CongestionLimit  int        `yaml:"congestion_limit" json:"congestion_limit"`
	Rules            []RuleSpec `yaml:"rules" json:"rules"`
}

type Mining struct {
	SearchRadius    int     `yaml:"search_radius" json:"search_radius"`
	MinTarget       int     `yaml:"min_target" json:"min_target"`
	StayThreshold   int     `yaml:"stay_threshold" json:"stay_threshold"`
	LowValuePenalty float64 `yaml:"low_value_penalty" json:"low_value_penalty"`
	ClaimRatio      float64 `yaml:"claim_ratio" json:"claim_ratio"`
	FullCargoRatio  float64 `yaml:"full_cargo_ratio" json:"full_cargo_ratio"`
}

type Inspiration struct {
	Radius        int `yaml:"radius" json:"radius"`
	ShipsRequired int `yaml:"ships_required" json:"ships_required"`
	Multiplier    int `yaml:"multiplier" json:"multiplier"`
}

type Navigation struct {
	EndgameMargin int    `yaml:"endgame_margin" json:"endgame_margin"`
	Fallback      string `yaml:"fallback" json:"fallback"`
}

type Expansion struct {
	MaxDropoffs       int        `yaml:"max_dropoffs" json:"max_dropoffs"`
	MinSpacing        int        `yaml:"min_spacing" json:"min_spacing"`
	AreaRadius        int        `yaml:"area_radius" json:"area_radius"`
	RequiredHalite    int        `yaml:"required_halite" json:"required_halite"`
	AllyRadius        int        `yaml:"ally_radius" json:"ally_radius"`
	MinAllies         int        `yaml:"min_allies" json:"min_allies"` // 0 disables the density check
	LocalMaxTolerance int        `yaml:"local_max_tolerance" json:"local_max_tolerance"`
	MinTurns          int        `yaml:"min_turns" json:"min_turns"`
	ScaleWithMap      bool       `yaml:"scale_with_map" json:"scale_with_map"`
	Rules             []RuleSpec `yaml:"rules" json:"rules"`
}

type Agent struct {
	Name            string  `yaml:"name" json:"name"`
	TurnBudgetMs    int     `yaml:"turn_budget_ms" json:"turn_budget_ms"`
	BudgetWarnRatio float64 `yaml:"budget_warn_ratio" json:"budget_warn_ratio"`
}

// RuleSpec is an extra guard condition written in expr syntax.
type RuleSpec struct {
	Name     string `yaml:"name" json:"name"`
	When     string `yaml:"when" json:"when"`
	Priority int    `yaml:"priority" json:"priority"`
}

// Default returns the tuning the bot was calibrated with on 64x64 4-player maps.
func Default() Tuning {
	return Tuning{
		Spawn: Spawn{
			MaxShips:         24,
			StopTurns:        140,
			Reserve:          1000,
			CongestionRadius: 2,
			CongestionLimit:  3,
		},
		Mining: Mining{
			SearchRadius:    8,
			MinTarget:       120,
			StayThreshold:   100,
			LowValuePenalty: 0.25,
			ClaimRatio:      0.5,
			FullCargoRatio:  0.95,
		},
		Inspiration: Inspiration{
			Radius:        4,
			ShipsRequired: 2,
			Multiplier:    3,
		},
		Navigation: Navigation{
			EndgameMargin: 10,
			Fallback:      FallbackClosest,
		},
		Expansion: Expansion{
			MaxDropoffs:       3,
			MinSpacing:        15,
			AreaRadius:        4,
			RequiredHalite:    10000,
			AllyRadius:        5,
			MinAllies:         2,
			LocalMaxTolerance: 500,
			MinTurns:          100,
		},
		Agent: Agent{
			Name:            "Colinatole",
			TurnBudgetMs:    2000,
			BudgetWarnRatio: 0.8,
		},
	}
}

//go:embed tuning.schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("tuning.schema.json", schemaSource)

// Load reads a YAML tuning file. Keys absent from the file keep their
// default values.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := Parse(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse validates raw YAML against the tuning schema and overlays it on t.
func Parse(raw []byte, t *Tuning) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if doc != nil {
		// The schema validator wants JSON-shaped values.
		js, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("convert yaml: %w", err)
		}
		var generic any
		if err := json.Unmarshal(js, &generic); err != nil {
			return fmt.Errorf("convert yaml: %w", err)
		}
		if err := schema.Validate(generic); err != nil {
			return fmt.Errorf("invalid tuning: %w", err)
		}
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode tuning: %w", err)
	}
	t.Validate()
	return nil
}

// Validate clamps values into ranges the controller can work with.
func (t *Tuning) Validate() {
	t.Spawn.MaxShips = clampInt(t.Spawn.MaxShips, 0, 1000)
	t.Spawn.AreaPerShip = clampInt(t.Spawn.AreaPerShip, 0, 1<<20)
	t.Spawn.CongestionRadius = clampInt(t.Spawn.CongestionRadius, 0, 32)
	t.Mining.SearchRadius = clampInt(t.Mining.SearchRadius, 0, 32)
	t.Mining.LowValuePenalty = clamp(t.Mining.LowValuePenalty, 0, 1)
	t.Mining.ClaimRatio = clamp(t.Mining.ClaimRatio, 0, 1)
	t.Mining.FullCargoRatio = clamp(t.Mining.FullCargoRatio, 0.1, 1)
	t.Inspiration.Radius = clampInt(t.Inspiration.Radius, 0, 16)
	t.Inspiration.ShipsRequired = clampInt(t.Inspiration.ShipsRequired, 1, 255)
	t.Inspiration.Multiplier = clampInt(t.Inspiration.Multiplier, 1, 10)
	t.Navigation.EndgameMargin = clampInt(t.Navigation.EndgameMargin, 0, 100)
	switch t.Navigation.Fallback {
	case FallbackClosest, FallbackRandom, FallbackStay:
	default:
		t.Navigation.Fallback = FallbackClosest
	}
	t.Expansion.AreaRadius = clampInt(t.Expansion.AreaRadius, 0, 16)
	t.Expansion.AllyRadius = clampInt(t.Expansion.AllyRadius, 0, 32)
	t.Agent.BudgetWarnRatio = clamp(t.Agent.BudgetWarnRatio, 0.1, 1)
	if t.Agent.Name == "" {
		t.Agent.Name = "Colinatole"
	}
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
