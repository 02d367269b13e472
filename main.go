package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"overworld/pkg/engine/input"
	"overworld/pkg/engine/terminal"
	"overworld/pkg/engine/world"
	"overworld/pkg/game/actor"
	"overworld/pkg/game/config"
	"overworld/pkg/game/control"
	"overworld/pkg/game/devtools"
	"overworld/pkg/game/gameplay"
	"overworld/pkg/game/generator"
	"overworld/pkg/game/observability"
	"overworld/pkg/game/pathfind"
	"overworld/pkg/game/state"
	"overworld/pkg/game/terrain"
	"overworld/pkg/game/turn"
	gameworld "overworld/pkg/game/world"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	turns := flag.Int("turns", 0, "run the autopilot for this many player turns instead of reading the keyboard")
	dump := flag.Bool("dump", false, "print a map dump with distance fields when the run ends")
	winPercent := flag.Int("win", 50, "chance in percent that the player wins a trainer battle")
	flag.Parse()

	if err := run(*configPath, *turns, *dump, *winPercent); err != nil {
		fmt.Fprintf(os.Stderr, "overworld: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, turns int, dump bool, winPercent int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	costs := terrain.DefaultCosts()
	if cfg.Costs.File != "" {
		if costs, err = terrain.LoadCosts(cfg.Costs.File); err != nil {
			return err
		}
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	g := buildGame(cfg, costs, rng, log)
	if err := gameplay.Start(g, gameworld.Coord{}); err != nil {
		return fmt.Errorf("placing player: %w", err)
	}

	colored := terminal.IsInteractive()
	if w := terminal.GetWidth(); colored && w < cfg.Map.Width {
		log.Warn("terminal narrower than the map", zap.Int("width", w), zap.Int("map_width", cfg.Map.Width))
	}

	var ctrl turn.Controller
	if turns > 0 || !colored {
		if turns <= 0 {
			turns = 1000
		}
		ctrl = control.NewAutopilot(turns)
	} else {
		ctrl = control.NewKeyboard(input.NewReader(os.Stdin), os.Stdout, colored)
	}
	battle := control.NewDice(rng, winPercent, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sched := turn.New(g, ctrl, battle)
	err = sched.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, io.EOF), errors.Is(err, input.ErrInterrupted):
		log.Info("stopped", zap.Error(err))
	case err != nil:
		return err
	}

	battles, wins, encounters := battle.Stats()
	log.Info("run finished",
		zap.Int64("seed", cfg.Seed),
		zap.Int("dispatches", sched.Dispatches()),
		zap.Int("clock", sched.Clock()),
		zap.Int("maps", g.World.Len()),
		zap.Int("battles", battles),
		zap.Int("battles_won", wins),
		zap.Int("encounters", encounters))

	if dump {
		return devtools.WriteDump(os.Stdout, g, devtools.Options{Color: colored, Fields: true})
	}
	return nil
}

// buildGame wires the generator, the world and its distance fields into a
// fresh game. The player is not placed yet.
func buildGame(cfg config.Config, costs *terrain.CostTable, rng *rand.Rand, log *zap.Logger) *state.Game {
	seq := actor.NewSequence()
	gen := generator.New(cfg, costs, rng, seq, log)
	fields := pathfind.NewFields(costs, world.Connectivity(cfg.Movement.Connectivity))
	w := gameworld.New(gen, cfg.World.Radius, fields, log)
	log.Info("world created",
		zap.String("generator", gen.Name()),
		zap.Int("radius", cfg.World.Radius),
		zap.Int64("seed", cfg.Seed))
	return state.NewGame(cfg, w, costs, rng, seq, log)
}
