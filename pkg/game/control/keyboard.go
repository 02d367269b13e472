package control

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"overworld/pkg/engine/input"
	"overworld/pkg/game/devtools"
	"overworld/pkg/game/gameplay"
	"overworld/pkg/game/state"
	"overworld/pkg/game/turn"
	gameworld "overworld/pkg/game/world"
)

var _ turn.Controller = (*Keyboard)(nil)

// Keyboard reads the player's commands from a terminal. Before every turn it
// draws the active map and the message log.
type Keyboard struct {
	in    *input.Reader
	out   io.Writer
	color bool
}

// NewKeyboard creates a keyboard controller reading from in and drawing to out
func NewKeyboard(in *input.Reader, out io.Writer, color bool) *Keyboard {
	return &Keyboard{in: in, out: out, color: color}
}

// PlayerTurn blocks until a key bound to a turn-taking action is pressed.
// Listing trainers and dumping the map take no time and keep waiting.
func (k *Keyboard) PlayerTurn(ctx context.Context, g *state.Game) (gameplay.Command, error) {
	k.draw(g)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		code, err := k.in.ReadKey()
		if err != nil {
			return nil, err
		}
		raw := input.RawInput{Device: input.DeviceTerminal, Code: code, Timestamp: time.Now()}
		intent := input.MapToIntent(input.NewDebouncedInput(raw))

		if d, ok := intent.Action.Direction(); ok {
			return gameplay.MoveTo{Dest: g.Player.Pos.Step(d)}, nil
		}
		switch intent.Action {
		case input.ActionRest:
			return gameplay.Rest{}, nil
		case input.ActionTeleport:
			return gameplay.Teleport{Random: true}, nil
		case input.ActionFly:
			coord, err := k.askCoord(g)
			if err != nil {
				return nil, err
			}
			return gameplay.TeleportWorld{Coord: coord}, nil
		case input.ActionTrainers:
			k.listTrainers(g)
		case input.ActionDump:
			if path, err := devtools.DumpMapToFile(g); err != nil {
				fmt.Fprintf(k.out, "Map dump failed: %v\n", err)
			} else {
				fmt.Fprintf(k.out, "Map dumped to %s\n", path)
			}
		case input.ActionQuit:
			return gameplay.Quit{}, nil
		default:
			fmt.Fprintf(k.out, "Unbound key: %q\n", code)
		}
	}
}

func (k *Keyboard) draw(g *state.Game) {
	m := g.Map()
	fmt.Fprintf(k.out, "\nMap %v  turn %d  trainers %d\n", m.Coord, g.Player.NextTurn, m.NumTrainers)
	devtools.WriteMap(k.out, m, k.color)
	for _, msg := range g.Messages {
		fmt.Fprintln(k.out, msg)
	}
	g.ClearMessages()
}

func (k *Keyboard) listTrainers(g *state.Game) {
	p := g.Player.Pos
	for _, a := range g.Map().Trainers() {
		dx, dy := a.Pos.X-p.X, a.Pos.Y-p.Y
		ns, ew := "south", "east"
		if dy < 0 {
			ns, dy = "north", -dy
		}
		if dx < 0 {
			ew, dx = "west", -dx
		}
		note := ""
		if a.Defeated {
			note = " (defeated)"
		}
		fmt.Fprintf(k.out, "%c, %d %s and %d %s%s\n", a.Glyph, dy, ns, dx, ew, note)
	}
}

// askCoord prompts for a world coordinate, one axis at a time, until each
// answer is a number inside the world.
func (k *Keyboard) askCoord(g *state.Game) (gameworld.Coord, error) {
	r := g.World.Radius()
	ask := func(axis string) (int, error) {
		for {
			fmt.Fprintf(k.out, "Enter %s [%d, %d]: ", axis, -r, r)
			line, err := k.in.ReadLine()
			if err != nil {
				return 0, err
			}
			v, err := strconv.Atoi(strings.TrimSpace(line))
			if err == nil && v >= -r && v <= r {
				return v, nil
			}
		}
	}
	x, err := ask("x")
	if err != nil {
		return gameworld.Coord{}, err
	}
	y, err := ask("y")
	if err != nil {
		return gameworld.Coord{}, err
	}
	return gameworld.Coord{X: x, Y: y}, nil
}
