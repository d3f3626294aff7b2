package rules

// SpawnEnv is the fact sheet the production gate is evaluated against.
// Field names are the identifiers available to spawn rule expressions.
type SpawnEnv struct {
	Turn           int
	TurnsRemaining int
	Bank           int
	ShipCost       int
	ShipCount      int
	MaxShips       int
	NearbyShips    int // allied ships within the congestion radius of the shipyard
	BaseReserved   bool
	MapWidth       int
	MapHeight      int
}

// BuildEnv is the fact sheet for extra expansion rules. It is only built
// once a candidate cell has passed the built-in checks.
type BuildEnv struct {
	Turn           int
	TurnsRemaining int
	Bank           int
	DropoffCost    int
	ShipCost       int
	Dropoffs       int
	ShipCount      int
	ShipHalite     int
	AreaHalite     int
	AlliesNearby   int
	DistanceToBase int
	MapWidth       int
	MapHeight      int
}
