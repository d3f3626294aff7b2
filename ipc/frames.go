package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nstehr/colinatole/model"
)

// readInit parses the pre-game block: constants, player table and the full
// starting map.
func readInit(lr *lineReader, g *model.Game) error {
	raw, err := lr.next()
	if err != nil {
		return fmt.Errorf("read constants: %w", unexpectedEOF(err))
	}
	consts := model.DefaultConstants()
	if err := json.Unmarshal([]byte(raw), &consts); err != nil {
		return fmt.Errorf("parse constants: %w", err)
	}
	g.Constants = consts

	head, err := lr.ints(2)
	if err != nil {
		return fmt.Errorf("read player count: %w", unexpectedEOF(err))
	}
	numPlayers, myID := head[0], head[1]
	if numPlayers <= 0 {
		return fmt.Errorf("invalid player count %d", numPlayers)
	}
	g.MyID = myID

	g.Players = make([]*model.Player, 0, numPlayers)
	for i := 0; i < numPlayers; i++ {
		v, err := lr.ints(3)
		if err != nil {
			return fmt.Errorf("read player: %w", unexpectedEOF(err))
		}
		g.Players = append(g.Players, &model.Player{
			ID:       v[0],
			Shipyard: model.Position{X: v[1], Y: v[2]},
		})
	}
	if g.Me() == nil {
		return fmt.Errorf("own id %d not among %d players", myID, numPlayers)
	}

	size, err := lr.ints(2)
	if err != nil {
		return fmt.Errorf("read map size: %w", unexpectedEOF(err))
	}
	w, h := size[0], size[1]
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid map size %dx%d", w, h)
	}
	g.Grid = model.NewGrid(w, h)
	for y := 0; y < h; y++ {
		row, err := lr.row(w)
		if err != nil {
			return fmt.Errorf("read map row %d: %w", y, unexpectedEOF(err))
		}
		for x, v := range row {
			g.Grid.Cells[y*w+x].Halite = v
		}
	}
	g.MarkStructures()
	return nil
}

// readFrame applies one turn's update to g. A clean EOF before the turn
// number is reported as ErrGameOver.
func readFrame(lr *lineReader, g *model.Game) error {
	t, err := lr.ints(1)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrGameOver
		}
		return fmt.Errorf("read turn: %w", err)
	}
	g.Turn = t[0]

	for range g.Players {
		v, err := lr.ints(4)
		if err != nil {
			return fmt.Errorf("turn %d: read player: %w", g.Turn, unexpectedEOF(err))
		}
		p := g.Player(v[0])
		if p == nil {
			return fmt.Errorf("turn %d: unknown player %d", g.Turn, v[0])
		}
		numShips, numDropoffs := v[1], v[2]
		p.Halite = v[3]

		p.Ships = make([]model.Ship, 0, numShips)
		for i := 0; i < numShips; i++ {
			s, err := lr.ints(4)
			if err != nil {
				return fmt.Errorf("turn %d: player %d ship: %w", g.Turn, p.ID, unexpectedEOF(err))
			}
			p.Ships = append(p.Ships, model.Ship{
				ID:       s[0],
				Position: model.Position{X: s[1], Y: s[2]},
				Halite:   s[3],
			})
		}
		p.Dropoffs = make([]model.Dropoff, 0, numDropoffs)
		for i := 0; i < numDropoffs; i++ {
			d, err := lr.ints(3)
			if err != nil {
				return fmt.Errorf("turn %d: player %d dropoff: %w", g.Turn, p.ID, unexpectedEOF(err))
			}
			p.Dropoffs = append(p.Dropoffs, model.Dropoff{
				ID:       d[0],
				Position: model.Position{X: d[1], Y: d[2]},
			})
		}
	}

	n, err := lr.ints(1)
	if err != nil {
		return fmt.Errorf("turn %d: read update count: %w", g.Turn, unexpectedEOF(err))
	}
	for i := 0; i < n[0]; i++ {
		u, err := lr.ints(3)
		if err != nil {
			return fmt.Errorf("turn %d: read cell update: %w", g.Turn, unexpectedEOF(err))
		}
		g.Grid.At(model.Position{X: u[0], Y: u[1]}).Halite = u[2]
	}
	g.MarkStructures()
	return nil
}
