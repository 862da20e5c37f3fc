package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bunburrows/internal/games/buns/world"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate world files",
	Long: `Load every world under dir (default: --worlds, world.dir from the
config, or the built-in demo) and report problems. Loading stops at the first
malformed file; other findings are logged as warnings.

Examples:
  burrows check
  burrows check ./worlds`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	logger := newLogger()
	if len(args) == 1 {
		flagWorldsDir = args[0]
	}

	cat, err := loadCatalog(logger)
	if err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}

	warnings := 0
	for _, w := range cat.worlds {
		logger.Info("world", "dir", w.Dir, "title", w.Title, "burrows", w.Len(), "levels", w.LevelCount(), "enabled", w.Enabled)
		warnings += checkWorld(logger, w)
	}

	if warnings > 0 {
		logger.Warn("check finished with warnings", "count", warnings)
		return
	}
	logger.Info("all worlds ok", "count", len(cat.worlds))
}

// checkWorld logs problems that do not stop a world from loading and
// returns how many it found.
func checkWorld(logger *log.Logger, w *world.World) int {
	warnings := 0
	warn := func(msg string, keyvals ...any) {
		logger.Warn(msg, append([]any{"world", w.Dir}, keyvals...)...)
		warnings++
	}

	if _, err := w.Enter(); err != nil {
		warn("world cannot be entered", "error", err)
	}

	for _, b := range w.Burrows() {
		if b.LevelCount() == 0 {
			warn("burrow has no levels", "burrow", b.Name)
		}
		for _, d := range b.ElevatorDepths {
			if _, err := b.Level(d); err != nil {
				warn("elevator stop has no level", "burrow", b.Name, "depth", d)
			}
		}
		for depth := 1; depth <= b.Depth(); depth++ {
			tmpl, err := b.Level(depth)
			if err != nil {
				continue
			}
			if tmpl.Instantiate().CreatureCount() == 0 {
				warn("level has no buns", "burrow", b.Name, "depth", depth, "path", tmpl.Path)
			}
		}
	}
	return warnings
}
