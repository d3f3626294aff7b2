package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nstehr/colinatole/config"
	"github.com/nstehr/colinatole/fleet"
	"github.com/nstehr/colinatole/ipc"
	"github.com/nstehr/colinatole/model"
	"github.com/nstehr/colinatole/turnlog"
)

// Recorder receives one record per decided turn.
type Recorder interface {
	Write(turnlog.TurnRecord) error
}

// Agent owns the decision-making for one match: it feeds each engine frame
// to the fleet controller, times the decision and records what happened.
type Agent struct {
	Conn       *ipc.Connection
	Controller *fleet.Controller
	Name       string

	recorder Recorder
	budget   time.Duration
	warnAt   time.Duration
	prev     *stateSnapshot
}

func New(conn *ipc.Connection, ctrl *fleet.Controller, agentCfg config.Agent, rec Recorder) *Agent {
	budget := time.Duration(agentCfg.TurnBudgetMs) * time.Millisecond
	return &Agent{
		Conn:       conn,
		Controller: ctrl,
		Name:       agentCfg.Name,
		recorder:   rec,
		budget:     budget,
		warnAt:     time.Duration(float64(budget) * agentCfg.BudgetWarnRatio),
	}
}

// Run announces the bot and plays until the engine ends the match. The
// handshake must already have been read from Conn.
func (a *Agent) Run(ctx context.Context) error {
	if err := a.Conn.Ready(a.Name); err != nil {
		return fmt.Errorf("ready: %w", err)
	}
	slog.Info("match started", "name", a.Name, "player", a.Conn.Game.MyID)
	return a.Conn.ReadLoop(ctx, a.HandleTurn)
}

// HandleTurn decides one turn. It never fails: a recording error is logged
// and the commands are still returned.
func (a *Agent) HandleTurn(snap model.Snapshot) []model.Command {
	start := time.Now()
	cmds := a.Controller.PlayTurn(snap)
	elapsed := time.Since(start)
	stats := a.Controller.LastTurn()

	events := a.observe(snap, stats)
	for _, e := range events {
		slog.Info("game event", "kind", e.Kind, "turn", e.Turn, "detail", e.Detail)
	}

	slog.Info("turn decided",
		"turn", snap.Turn,
		"remaining", snap.TurnsRemaining,
		"bank", snap.Me.Halite,
		"ships", stats.Ships,
		"returning", stats.Returning,
		"moves", stats.Moves,
		"stays", stats.Stays,
		"built", stats.Built,
		"spawned", stats.Spawned,
		"elapsed", elapsed,
	)
	if a.warnAt > 0 && elapsed > a.warnAt {
		slog.Warn("turn close to deadline",
			"turn", snap.Turn,
			"elapsed", elapsed,
			"budget", a.budget,
			"ships", stats.Ships,
		)
	}

	if a.recorder != nil {
		rec := turnlog.TurnRecord{
			Turn:           snap.Turn,
			Bank:           snap.Me.Halite,
			Ships:          stats.Ships,
			Returning:      stats.Returning,
			Recalled:       stats.Recalled,
			Moves:          stats.Moves,
			Stays:          stats.Stays,
			Builds:         stats.Built,
			Spawned:        stats.Spawned,
			SpawnBlockedBy: stats.SpawnBlockedBy,
			ElapsedMs:      float64(elapsed.Microseconds()) / 1000,
			Events:         eventKinds(events),
			Commands:       ipc.EncodeCommands(cmds),
		}
		if err := a.recorder.Write(rec); err != nil {
			slog.Error("failed to record turn", "turn", snap.Turn, "error", err)
		}
	}
	return cmds
}

// observe diffs this turn against the last one and remembers it.
func (a *Agent) observe(snap model.Snapshot, stats fleet.TurnStats) []Event {
	events := detectEvents(snap, stats, a.prev)
	cur := takeSnapshot(snap, stats)
	if a.prev != nil && a.prev.recallSeen {
		cur.recallSeen = true
	}
	a.prev = &cur
	if len(events) > 1 {
		slog.Debug("multiple events", "turn", snap.Turn, "events", formatEvents(events))
	}
	return events
}
