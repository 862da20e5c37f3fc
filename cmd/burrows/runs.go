package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bunburrows/internal/storage"
)

var (
	flagRunsBurrow string
	flagRunsDepth  int
	flagRunsLimit  int
	flagRunsClear  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [world]",
	Short: "Show recorded runs",
	Long: `Display the best recorded runs of a world: cleared runs first, then
fewest moves. With --burrow and --depth, shows the latest runs of one level
and its best clear. Without a world, lists every world that has runs.

Examples:
  burrows runs
  burrows runs demo
  burrows runs demo --burrow Meadow --depth 1
  burrows runs demo --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsBurrow, "burrow", "", "Only show runs of this burrow (needs --depth)")
	runsCmd.Flags().IntVar(&flagRunsDepth, "depth", 0, "Only show runs at this depth (needs --burrow)")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete all runs of the world")
}

func runRuns(_ *cobra.Command, args []string) {
	logger := newLogger()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		listRunWorlds(store)
		return
	}
	worldID := args[0]

	if flagRunsClear {
		if err := store.ClearRuns(worldID); err != nil {
			logger.Fatal("could not clear runs", "world", worldID, "error", err)
		}
		logger.Info("runs cleared", "world", worldID)
		return
	}

	if flagRunsBurrow != "" || flagRunsDepth != 0 {
		showLevelRuns(store, worldID)
		return
	}

	stats, err := store.GetWorldStats(worldID)
	if err != nil {
		logger.Fatal("could not read world stats", "world", worldID, "error", err)
	}
	runs, err := store.BestRuns(worldID, flagRunsLimit)
	if err != nil {
		logger.Fatal("could not read runs", "world", worldID, "error", err)
	}

	fmt.Printf("Best Runs - %s\n", worldID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'burrows play %s' to record the first one!\n", worldID)
		return
	}

	printRuns(runs)

	fmt.Println()
	fmt.Printf("Runs: %d  Cleared: %d  Levels cleared: %d  Buns caught: %d\n",
		stats.Runs, stats.ClearedRuns, stats.LevelsCleared, stats.Captured)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func listRunWorlds(store *storage.Store) {
	worlds, err := store.Worlds()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing worlds: %v\n", err)
		os.Exit(1)
	}
	if len(worlds) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Println("Worlds with runs:")
	for _, w := range worlds {
		fmt.Printf("  %s\n", w)
	}
	fmt.Println()
	fmt.Println("Run 'burrows runs <world>' for details.")
}

func showLevelRuns(store *storage.Store, worldID string) {
	if flagRunsBurrow == "" || flagRunsDepth < 1 {
		fmt.Fprintln(os.Stderr, "Error: --burrow and --depth must be given together")
		os.Exit(1)
	}

	runs, err := store.RunsForLevel(worldID, flagRunsBurrow, flagRunsDepth, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Latest Runs - %s %s %d\n", worldID, flagRunsBurrow, flagRunsDepth)
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}
	printRuns(runs)

	if best, ok, err := store.BestMoves(worldID, flagRunsBurrow, flagRunsDepth); err == nil && ok {
		fmt.Println()
		fmt.Printf("Best clear: %d moves\n", best)
	}
}

func printRuns(runs []storage.Run) {
	fmt.Printf("  %-4s  %-24s  %-5s  %-5s  %-6s  %-5s  %s\n", "#", "Level", "Depth", "Moves", "Caught", "Clear", "Date")
	fmt.Printf("  %-4s  %-24s  %-5s  %-5s  %-6s  %-5s  %s\n", "--", "-----", "-----", "-----", "------", "-----", "----")

	for i, r := range runs {
		level := r.Burrow
		if r.Level != "" {
			level += ": " + r.Level
		}
		cleared := "no"
		if r.Cleared {
			cleared = "yes"
		}
		fmt.Printf("  %-4d  %-24s  %-5d  %-5d  %-6d  %-5s  %s\n",
			i+1, level, r.Depth, r.Moves, r.Captured, cleared, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
