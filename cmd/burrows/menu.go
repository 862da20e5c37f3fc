package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bunburrows/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a world picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a world.
Press Esc in a game to return to the menu, Tab in the menu for the run board.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select world
  Tab          - Run board
  Q            - Quit

Examples:
  burrows menu
  burrows menu --fps 60
  burrows --worlds ./worlds menu`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger()
	cat := mustCatalog(logger)

	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cat.registry, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsRuns {
			goBack, err := tui.RunRunsBoard(cat.registry, store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !goBack {
				return
			}
			continue
		}

		game, err := cat.registry.Create(menuResult.WorldID)
		if err != nil {
			logger.Error("could not create game", "world", menuResult.WorldID, "error", err)
			continue
		}

		backToMenu, err := tui.Run(game, store, logger, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !backToMenu {
			return
		}
	}
}
