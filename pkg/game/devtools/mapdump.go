// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/actor"
	"overworld/pkg/game/pathfind"
	"overworld/pkg/game/state"
	"overworld/pkg/game/terrain"
	gameworld "overworld/pkg/game/world"
)

const mapDumpFilename = "map.txt"

var (
	colorPlayer  = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	colorTrainer = color.Style{color.FgRed, color.OpBold}
	colorBeaten  = color.Style{color.FgGray, color.OpBold}
	colorDebug   = color.Style{color.FgWhite, color.BgRed, color.OpBold}

	terrainColors = map[terrain.Terrain]color.Style{
		terrain.Boulder:    {color.FgGray},
		terrain.Tree:       {color.FgGreen},
		terrain.Path:       {color.FgYellow},
		terrain.Mart:       {color.FgBlue, color.OpBold},
		terrain.Center:     {color.FgMagenta, color.OpBold},
		terrain.TallGrass:  {color.FgLightGreen},
		terrain.ShortGrass: {color.FgGreen},
		terrain.Mountain:   {color.FgDarkGray},
		terrain.Forest:     {color.FgGreen, color.OpBold},
		terrain.Water:      {color.FgCyan},
		terrain.Gate:       {color.FgYellow, color.OpBold},
		terrain.Connector:  {color.FgYellow},
		terrain.Cliff:      {color.FgDarkGray, color.OpBold},
	}
)

// Options controls what a dump contains
type Options struct {
	// Color renders glyphs with ANSI colors
	Color bool
	// Fields appends both distance fields of the active map
	Fields bool
}

// cellGlyph returns the glyph drawn at p: the occupant if any, else the terrain
func cellGlyph(m *gameworld.Map, p world.Point, colored bool) string {
	if a := m.ActorAt(p); a != nil {
		s := string(a.Glyph)
		if !colored {
			return s
		}
		switch {
		case a.IsPlayer():
			return colorPlayer.Sprint(s)
		case a.Defeated:
			return colorBeaten.Sprint(s)
		default:
			return colorTrainer.Sprint(s)
		}
	}
	t := m.TerrainAt(p)
	s := string(t.Symbol())
	if !colored {
		return s
	}
	if style, ok := terrainColors[t]; ok {
		return style.Sprint(s)
	}
	return colorDebug.Sprint(s)
}

// WriteMap writes the map grid, one row per line
func WriteMap(w io.Writer, m *gameworld.Map, colored bool) {
	var b strings.Builder
	for y := 0; y < m.Rows(); y++ {
		b.Reset()
		for x := 0; x < m.Cols(); x++ {
			b.WriteString(cellGlyph(m, world.Pt(x, y), colored))
		}
		fmt.Fprintln(w, b.String())
	}
}

// WriteField writes a distance field with two digits per cell: the distance
// modulo 100, or blanks where the cell cannot be reached.
func WriteField(w io.Writer, f *pathfind.Field) {
	if f == nil {
		fmt.Fprintln(w, "(not computed)")
		return
	}
	var b strings.Builder
	for y := 0; y < f.Rows(); y++ {
		b.Reset()
		for x := 0; x < f.Cols(); x++ {
			p := world.Pt(x, y)
			switch {
			case p == f.Source():
				b.WriteString(" @")
			case f.Reachable(p):
				fmt.Fprintf(&b, "%02d", f.At(p)%100)
			default:
				b.WriteString("  ")
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

// WriteDump writes a full debug dump of the active map to w: metadata,
// legend, the map itself, trainers and optionally the distance fields.
// Format is human-readable (sections, key: value, consistent structure).
func WriteDump(w io.Writer, g *state.Game, opts Options) error {
	m := g.Map()
	if m == nil {
		return fmt.Errorf("no active map")
	}

	// --- Metadata ---
	fmt.Fprintln(w, "=== MAP DUMP (active map, actors, distance fields) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "seed: %d\n", g.Config.Seed)
	fmt.Fprintf(w, "world_coord: %v\n", m.Coord)
	fmt.Fprintf(w, "world_radius: %d\n", g.World.Radius())
	fmt.Fprintf(w, "maps_generated: %d\n", g.World.Len())
	fmt.Fprintf(w, "map_cols: %d\n", m.Cols())
	fmt.Fprintf(w, "map_rows: %d\n", m.Rows())
	fmt.Fprintf(w, "coordinate_system: x,y (0-based, x=column, y=row, north is up)\n")
	fmt.Fprintf(w, "player: %v\n", g.Player.Pos)
	fmt.Fprintf(w, "player_next_turn: %d\n", g.Player.NextTurn)
	fmt.Fprintf(w, "gates: w=%d e=%d n=%d s=%d\n", m.Gates.W, m.Gates.E, m.Gates.N, m.Gates.S)
	fmt.Fprintf(w, "trainers: %d\n", m.NumTrainers)
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend (cell symbols) ---")
	fmt.Fprintln(w, ". = short grass  : = tall grass  # = path, gate or connector  ~ = water  ^ = tree or forest  % = boulder, mountain or cliff  M = mart  C = center")
	fmt.Fprintf(w, "%c = player", actor.PlayerGlyph)
	for _, a := range actor.TrainerArchetypes {
		fmt.Fprintf(w, "  %c = %v", a.Glyph(), a)
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "")

	// --- Map ---
	fmt.Fprintln(w, "--- Map ---")
	WriteMap(w, m, opts.Color)
	fmt.Fprintln(w, "")

	// --- Trainers ---
	fmt.Fprintln(w, "--- Trainers ---")
	for _, a := range m.Trainers() {
		fmt.Fprintf(w, "  seq: %d archetype: %v pos: %v next_turn: %d defeated: %v\n",
			a.Seq, a.Archetype, a.Pos, a.NextTurn, a.Defeated)
	}
	fmt.Fprintln(w, "")

	if opts.Fields {
		g.RefreshFields()
		fields := g.World.Fields()
		fmt.Fprintln(w, "--- Rival field (distance mod 100) ---")
		WriteField(w, fields.Rival)
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "--- Hiker field (distance mod 100) ---")
		WriteField(w, fields.Hiker)
		fmt.Fprintln(w, "")
	}

	// --- Messages ---
	fmt.Fprintln(w, "--- Messages ---")
	for _, msg := range g.Messages {
		fmt.Fprintf(w, "  %s\n", msg)
	}
	return nil
}

// DumpMapToFile writes an uncolored dump with fields to map.txt and returns
// its absolute path.
func DumpMapToFile(g *state.Game) (string, error) {
	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteDump(f, g, Options{Fields: true}); err != nil {
		return "", err
	}
	return absPath, nil
}
