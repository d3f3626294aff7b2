package ipc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nstehr/colinatole/model"
)

// Handler decides one turn. It is called with a snapshot of the freshly
// updated game and returns the commands to send.
type Handler func(snap model.Snapshot) []model.Command

// Connection is the bot's side of the engine pipe. The engine writes frames
// to our stdin and reads one command line per turn from our stdout.
type Connection struct {
	in   *lineReader
	out  *bufio.Writer
	Game *model.Game
}

func NewConnection(r io.Reader, w io.Writer) *Connection {
	return &Connection{
		in:   newLineReader(r),
		out:  bufio.NewWriter(w),
		Game: &model.Game{},
	}
}

// Handshake reads the pre-game block. The engine gives the bot time to
// prepare between Handshake and Ready.
func (c *Connection) Handshake() error {
	if err := readInit(c.in, c.Game); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	slog.Info("handshake complete",
		"player", c.Game.MyID,
		"players", len(c.Game.Players),
		"width", c.Game.Grid.Width,
		"height", c.Game.Grid.Height,
		"maxTurns", c.Game.Constants.MaxTurns,
	)
	return nil
}

// Ready sends the bot's name, which starts the match.
func (c *Connection) Ready(name string) error {
	return c.writeLine(name)
}

// ReadFrame applies the next turn update to Game.
func (c *Connection) ReadFrame() error {
	return readFrame(c.in, c.Game)
}

// Send writes one turn's commands.
func (c *Connection) Send(cmds []model.Command) error {
	return c.writeLine(EncodeCommands(cmds))
}

func (c *Connection) writeLine(s string) error {
	if _, err := c.out.WriteString(s + "\n"); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := c.out.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// ReadLoop plays turns until the engine ends the match or ctx is cancelled.
// A normal end of match returns nil. Cancellation is noticed even while
// waiting on the engine; the abandoned read may still touch Game, so the
// connection must not be used after ReadLoop returns ctx.Err().
func (c *Connection) ReadLoop(ctx context.Context, handle Handler) error {
	frames := make(chan error, 1)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		go func() { frames <- c.ReadFrame() }()

		var err error
		select {
		case <-ctx.Done():
			slog.Info("stopped waiting for the engine")
			return ctx.Err()
		case err = <-frames:
		}
		if err != nil {
			if errors.Is(err, ErrGameOver) {
				slog.Info("engine closed the pipe", "turn", c.Game.Turn)
				return nil
			}
			return err
		}

		cmds := handle(c.Game.Snapshot())
		if err := c.Send(cmds); err != nil {
			return fmt.Errorf("turn %d: %w", c.Game.Turn, err)
		}
	}
}
