package model

// Constants are the engine-owned rules sent once at the start of a match.
// Field tags match the keys of the engine's constants line.
type Constants struct {
	MaxTurns        int  `json:"MAX_TURNS"`
	MaxHalite       int  `json:"MAX_ENERGY"`
	ShipCost        int  `json:"NEW_ENTITY_ENERGY_COST"`
	DropoffCost     int  `json:"DROPOFF_COST"`
	MoveCostRatio   int  `json:"MOVE_COST_RATIO"`
	ExtractRatio    int  `json:"EXTRACT_RATIO"`
	InspirationOn   bool `json:"INSPIRATION_ENABLED"`
	InspirationDist int  `json:"INSPIRATION_RADIUS"`
	InspirationMin  int  `json:"INSPIRATION_SHIP_COUNT"`
	InitialHalite   int  `json:"INITIAL_ENERGY"`
	Seed            int  `json:"game_seed"`
}

// DefaultConstants mirrors the engine defaults; the handshake overwrites them.
func DefaultConstants() Constants {
	return Constants{
		MaxTurns:        400,
		MaxHalite:       1000,
		ShipCost:        1000,
		DropoffCost:     4000,
		MoveCostRatio:   10,
		ExtractRatio:    4,
		InspirationOn:   true,
		InspirationDist: 4,
		InspirationMin:  2,
		InitialHalite:   5000,
	}
}

type Ship struct {
	ID       int      `json:"id"`
	Position Position `json:"position"`
	Halite   int      `json:"halite"`
}

type Dropoff struct {
	ID       int      `json:"id"`
	Position Position `json:"position"`
}

type Player struct {
	ID       int       `json:"id"`
	Halite   int       `json:"halite"`
	Shipyard Position  `json:"shipyard"`
	Ships    []Ship    `json:"ships"`
	Dropoffs []Dropoff `json:"dropoffs"`
}

// Deposits lists every position where cargo can be unloaded, the shipyard first.
func (p *Player) Deposits() []Position {
	out := make([]Position, 0, 1+len(p.Dropoffs))
	out = append(out, p.Shipyard)
	for _, d := range p.Dropoffs {
		out = append(out, d.Position)
	}
	return out
}

// Snapshot is the read-only view of one turn handed to the decision core.
// Me.Ships is in engine order, which is the order units are decided in.
type Snapshot struct {
	Turn           int
	TurnsRemaining int
	Constants      Constants
	Me             Player
	Enemies        []Ship
	Grid           *Grid
}

// Game mirrors the engine's state across turns. The protocol layer mutates
// it; the core only ever sees Snapshots.
type Game struct {
	Constants Constants
	MyID      int
	Turn      int
	Players   []*Player
	Grid      *Grid
}

// Me returns our player, or nil before the handshake.
func (g *Game) Me() *Player {
	for _, p := range g.Players {
		if p.ID == g.MyID {
			return p
		}
	}
	return nil
}

// Player returns the player with the given id, or nil.
func (g *Game) Player(id int) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// MarkStructures rebuilds every cell's structure flag from all players'
// shipyards and dropoffs.
func (g *Game) MarkStructures() {
	for i := range g.Grid.Cells {
		g.Grid.Cells[i].Structure = false
	}
	for _, p := range g.Players {
		for _, pos := range p.Deposits() {
			g.Grid.At(pos).Structure = true
		}
	}
}

// Snapshot freezes the current turn. The grid is shared, not copied; the
// core treats it as read-only.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Turn:           g.Turn,
		TurnsRemaining: g.Constants.MaxTurns - g.Turn,
		Constants:      g.Constants,
		Grid:           g.Grid,
	}
	if me := g.Me(); me != nil {
		snap.Me = *me
	}
	for _, p := range g.Players {
		if p.ID == g.MyID {
			continue
		}
		snap.Enemies = append(snap.Enemies, p.Ships...)
	}
	return snap
}
