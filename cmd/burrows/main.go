// burrows is a turn-based burrow puzzle for the terminal: catch every bun on
// a level by walking at it, then dig deeper.
//
// Usage:
//
//	burrows list                        - List available worlds
//	burrows play [world]                - Play a world
//	burrows menu                        - Pick worlds interactively
//	burrows check                       - Validate world files
//	burrows dump <world> <burrow> <d>   - Print a level as text
//	burrows runs <world>                - Show recorded runs
//	burrows serve                       - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 30)
//	--db <path>      - Set database path (default: ~/.burrows/runs.db)
//	--config <path>  - Use a custom buns.yaml
//	--worlds <dir>   - Load worlds from a directory instead of the demo
//	--verbose        - Log debug messages
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagConfig    string
	flagWorldsDir string
	flagVerbose   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "burrows",
	Short: "Bun Burrows - a turn-based burrow puzzle in your terminal",
	Long: `Bun Burrows is a turn-based puzzle played on a 15x9 grid. Buns that see
you along a row or column within two cells come running at you and are
caught when they reach your cell; some dodge into side tunnels instead. Catch
them all to clear the level. Holes drop you to the next level of a burrow and open
edges lead to neighbouring burrows.

Available commands:
  list     - Show all worlds
  play     - Play a world directly
  menu     - Interactive world picker
  check    - Validate world files
  dump     - Print a level as text
  runs     - View recorded runs
  serve    - Start SSH server for remote play

Examples:
  burrows play
  burrows play "Demo Burrows"
  burrows --worlds ./worlds list
  burrows dump demo Meadow 1
  burrows serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.burrows/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom buns.yaml")
	rootCmd.PersistentFlags().StringVar(&flagWorldsDir, "worlds", "", "Directory of worlds (overrides world.dir from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}
