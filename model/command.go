package model

type CommandKind int

const (
	CommandMove CommandKind = iota // includes staying in place (Still)
	CommandBuild
	CommandSpawn
)

// Command is a single order for the engine. Commands are values and are
// never mutated once emitted.
type Command struct {
	Kind      CommandKind
	ShipID    int
	Direction Direction
}

func Move(shipID int, d Direction) Command {
	return Command{Kind: CommandMove, ShipID: shipID, Direction: d}
}

func Stay(shipID int) Command { return Move(shipID, Still) }

func Build(shipID int) Command {
	return Command{Kind: CommandBuild, ShipID: shipID}
}

func Spawn() Command { return Command{Kind: CommandSpawn} }

// IsStay reports whether c keeps the ship where it is.
func (c Command) IsStay() bool {
	return c.Kind == CommandMove && c.Direction == Still
}
