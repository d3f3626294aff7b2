package fleet

// Status is a ship's persistent mode. There is no terminal value: a ship
// alternates between the two until it is destroyed.
type Status uint8

const (
	Mining Status = iota
	Returning
)

func (s Status) String() string {
	if s == Returning {
		return "returning"
	}
	return "mining"
}

// transition carries everything the state machine looks at.
type transition struct {
	atDeposit      bool
	cargo          int
	capacity       int
	fullRatio      float64
	turnsRemaining int
	depositDist    int
	endgameMargin  int
}

// nextStatus applies the transitions in fixed precedence: endgame recall,
// then arrival or empty cargo, then full cargo. The recall overrides
// everything, so a recalled ship stays Returning even on a deposit.
func nextStatus(cur Status, t transition) Status {
	if t.turnsRemaining < t.depositDist+t.endgameMargin {
		return Returning
	}
	if cur == Returning {
		if t.atDeposit || t.cargo == 0 {
			return Mining
		}
		return Returning
	}
	if float64(t.cargo) >= float64(t.capacity)*t.fullRatio {
		return Returning
	}
	return Mining
}
