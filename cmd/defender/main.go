// defender is a side-scrolling arcade shooter played in the terminal.
//
// Usage:
//
//	defender play            - Play the game
//	defender demo            - Watch the attract-mode autopilot
//	defender scores          - Show high scores
//	defender serve           - Start SSH server for remote play
//	defender list            - List available games
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.defender/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/defender-tui/internal/games/defender"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "defender",
	Short: "Defender - a side-scrolling arcade shooter for your terminal",
	Long: `Defender is a terminal arcade shooter. Fly over a wrapping planet,
protect the colonists from abduction, and survive as many waves as you can.

Available commands:
  play     - Play the game
  demo     - Watch the attract-mode autopilot
  scores   - View high scores
  serve    - Start SSH server for remote play
  list     - Show registered games

Examples:
  defender play
  defender play --difficulty hard
  defender scores
  defender serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.defender/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
