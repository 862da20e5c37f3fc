package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bunburrows/internal/games/buns/core"
)

var (
	flagMoves  string
	flagFrames bool
	flagRaw    bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump <world> <burrow> <depth>",
	Short: "Print a level as text",
	Long: `Print one level of a world, optionally after playing a move sequence.

Moves are letters: U, L, D, R to step, W to wait a turn. Moves that would
leave the level or drop through a hole end the sequence.

Legend:
  #  wall        %  breakable wall   .  floor   ^  entry
  O  hole        @  player           b  bun

Examples:
  burrows dump demo Meadow 1
  burrows dump demo Meadow 1 --moves RRRD --frames
  burrows dump demo Orchard 1 --raw`,
	Args: cobra.ExactArgs(3),
	Run:  runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&flagMoves, "moves", "", "Moves to play before printing (U, L, D, R, W)")
	dumpCmd.Flags().BoolVar(&flagFrames, "frames", false, "Print every bun run frame while playing moves")
	dumpCmd.Flags().BoolVar(&flagRaw, "raw", false, "Print the level in the level file format")
}

func runDump(_ *cobra.Command, args []string) {
	logger := newLogger()
	cat := mustCatalog(logger)

	w, ok := cat.findWorld(args[0])
	if !ok {
		logger.Fatal("unknown world", "world", args[0])
	}
	b, ok := w.BurrowByName(args[1])
	if !ok {
		logger.Fatal("unknown burrow", "world", w.Dir, "burrow", args[1])
	}
	depth, err := strconv.Atoi(args[2])
	if err != nil {
		logger.Fatal("depth must be a number", "depth", args[2])
	}
	tmpl, err := b.Level(depth)
	if err != nil {
		logger.Fatal("no such level", "error", err)
	}

	level := tmpl.Instantiate()
	fmt.Printf("%s %d: %s (%s)\n", b.Name, depth, tmpl.Name, tmpl.Path)

	if err := playMoves(level, flagMoves, flagFrames); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	if flagRaw {
		fmt.Print(core.EncodeLevel(level))
		return
	}
	fmt.Print(core.RenderASCII(level))
}

var errStop = errors.New("sequence left the level")

// playMoves plays a move sequence on level, printing run frames if asked.
func playMoves(level *core.LevelState, moves string, frames bool) error {
	for i, m := range strings.ToUpper(moves) {
		var res core.MoveResult
		var err error

		switch m {
		case 'U':
			res, err = level.Move(core.Up)
		case 'L':
			res, err = level.Move(core.Left)
		case 'D':
			res, err = level.Move(core.Down)
		case 'R':
			res, err = level.Move(core.Right)
		case 'W':
			res, err = level.Recheck()
		default:
			return fmt.Errorf("move %d: unknown move %q", i+1, m)
		}
		if err != nil {
			return fmt.Errorf("move %d (%c): %w", i+1, m, err)
		}

		if frames {
			for j, f := range res.History {
				fmt.Printf("-- move %d (%c) frame %d\n%s\n", i+1, m, j+1, f)
			}
		}
		if res.Effect.Kind != core.EffectNone {
			return fmt.Errorf("move %d (%c): %s: %w", i+1, m, res.Effect, errStop)
		}
	}
	return nil
}
