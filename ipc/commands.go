package ipc

import (
	"strconv"
	"strings"

	"github.com/nstehr/colinatole/model"
)

// Wire verbs understood by the engine.
const (
	verbMove  = "m"
	verbBuild = "c"
	verbSpawn = "g"
)

// EncodeCommand renders one command in the engine's text form.
func EncodeCommand(c model.Command) string {
	switch c.Kind {
	case model.CommandBuild:
		return verbBuild + " " + strconv.Itoa(c.ShipID)
	case model.CommandSpawn:
		return verbSpawn
	default:
		d := c.Direction
		if d == 0 {
			d = model.Still
		}
		return verbMove + " " + strconv.Itoa(c.ShipID) + " " + string(rune(d))
	}
}

// EncodeCommands joins a turn's commands into the single line the engine
// expects, without the trailing newline.
func EncodeCommands(cmds []model.Command) string {
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = EncodeCommand(c)
	}
	return strings.Join(parts, " ")
}
