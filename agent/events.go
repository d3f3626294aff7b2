package agent

import (
	"fmt"
	"strings"

	"github.com/nstehr/colinatole/fleet"
	"github.com/nstehr/colinatole/model"
)

// EventKind identifies a notable change between two consecutive turns.
type EventKind string

const (
	EventShipsLost       EventKind = "ships_lost"
	EventDepositBuilt    EventKind = "deposit_built"
	EventEndgameRecall   EventKind = "endgame_recall"
	EventPhaseTransition EventKind = "phase_transition"
	EventBankCrisis      EventKind = "bank_crisis"
)

// Event is detected by diffing consecutive snapshots. Events are logged and
// written to the turn log; they do not feed back into decisions.
type Event struct {
	Kind   EventKind
	Turn   int
	Detail string
}

// stateSnapshot captures the diffable fields of one turn.
type stateSnapshot struct {
	shipIDs  map[int]bool
	dropoffs int
	bank     int
	phase    string

	// recallSeen is carried forward so the endgame event fires once.
	recallSeen bool
}

// gamePhase splits the match into thirds by turn.
func gamePhase(turn, maxTurns int) string {
	if maxTurns <= 0 {
		return "Early Game"
	}
	switch {
	case turn*3 < maxTurns:
		return "Early Game"
	case turn*3 < maxTurns*2:
		return "Mid Game"
	default:
		return "Late Game"
	}
}

func takeSnapshot(snap model.Snapshot, stats fleet.TurnStats) stateSnapshot {
	s := stateSnapshot{
		shipIDs:  make(map[int]bool, len(snap.Me.Ships)),
		dropoffs: len(snap.Me.Dropoffs),
		bank:     snap.Me.Halite,
		phase:    gamePhase(snap.Turn, snap.Constants.MaxTurns),
	}
	for _, sh := range snap.Me.Ships {
		s.shipIDs[sh.ID] = true
	}
	s.recallSeen = stats.Recalled > 0
	return s
}

// detectEvents compares this turn against the previous one. Returns nil on
// the first turn.
func detectEvents(snap model.Snapshot, stats fleet.TurnStats, prev *stateSnapshot) []Event {
	if prev == nil {
		return nil
	}
	cur := takeSnapshot(snap, stats)
	var events []Event

	// A ship that became a dropoff also disappears from the fleet.
	built := max(cur.dropoffs-prev.dropoffs, 0)
	if lost := countMissing(prev.shipIDs, cur.shipIDs) - built; lost > 0 {
		events = append(events, Event{
			Kind:   EventShipsLost,
			Turn:   snap.Turn,
			Detail: fmt.Sprintf("lost %d ships (%d→%d)", lost, len(prev.shipIDs), len(cur.shipIDs)),
		})
	}

	if built > 0 {
		events = append(events, Event{
			Kind:   EventDepositBuilt,
			Turn:   snap.Turn,
			Detail: fmt.Sprintf("dropoffs %d→%d", prev.dropoffs, cur.dropoffs),
		})
	}

	if cur.recallSeen && !prev.recallSeen {
		events = append(events, Event{
			Kind:   EventEndgameRecall,
			Turn:   snap.Turn,
			Detail: fmt.Sprintf("%d ships recalled with %d turns left", stats.Recalled, snap.TurnsRemaining),
		})
	}

	if prev.phase != cur.phase {
		events = append(events, Event{
			Kind:   EventPhaseTransition,
			Turn:   snap.Turn,
			Detail: fmt.Sprintf("%s → %s", prev.phase, cur.phase),
		})
	}

	// Halite only leaves the bank through spawns and dropoffs, so the one
	// unrecoverable state is an empty fleet that cannot buy a ship.
	if len(cur.shipIDs) == 0 && len(prev.shipIDs) > 0 && cur.bank < snap.Constants.ShipCost {
		events = append(events, Event{
			Kind:   EventBankCrisis,
			Turn:   snap.Turn,
			Detail: fmt.Sprintf("fleet gone and bank %d cannot buy a ship", cur.bank),
		})
	}

	return events
}

// countMissing returns how many IDs in prev are absent from cur.
func countMissing(prev, cur map[int]bool) int {
	n := 0
	for id := range prev {
		if !cur[id] {
			n++
		}
	}
	return n
}

func eventKinds(events []Event) []string {
	if len(events) == 0 {
		return nil
	}
	kinds := make([]string, len(events))
	for i, e := range events {
		kinds[i] = string(e.Kind)
	}
	return kinds
}

// formatEvents renders events as one log-friendly line.
func formatEvents(events []Event) string {
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return strings.Join(parts, "; ")
}
