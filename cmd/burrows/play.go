package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bunburrows/internal/platform/tui"
	"github.com/vovakirdan/bunburrows/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [world]",
	Short: "Play a world",
	Long: `Start playing the given world, by directory name or title.
Without an argument, plays world.title from the config, or the first
enabled world.

Controls:
  Arrows/WASD  - Move
  Space        - Wait a turn
  R            - Restart the level
  Ctrl+S       - Save a screenshot
  Esc          - Back (menu mode)
  Q/Ctrl+C     - Quit

Examples:
  burrows play
  burrows play demo
  burrows play "Demo Burrows" --fps 60
  burrows --worlds ./worlds play cliffs`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cat := mustCatalog(logger)

	info, ok := pickWorld(cat, args)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: no such world")
		fmt.Fprintln(os.Stderr, "Run 'burrows list' to see available worlds.")
		os.Exit(1)
	}

	game, err := cat.registry.Create(info.ID)
	if err != nil {
		logger.Fatal("could not create game", "world", info.ID, "error", err)
	}

	store := openStore(logger)

	_, runErr := tui.Run(game, store, logger, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// pickWorld resolves the world to play from the argument or the config.
func pickWorld(cat *catalog, args []string) (registry.Info, bool) {
	if len(args) == 1 {
		return cat.registry.Lookup(args[0])
	}
	if title := cat.cfg.World.Title; title != "" {
		return cat.registry.Lookup(title)
	}
	return cat.registry.Default()
}
