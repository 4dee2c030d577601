package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/defender-tui/internal/games/defender"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Watch the attract-mode autopilot play",
	Long: `Start directly in attract mode: the autopilot flies the ship,
rescues colonists and lets one abduction complete, on a loop.

Press Enter to take over, Q to quit.

Examples:
  defender demo
  defender demo --seed 42`,
	Args: cobra.NoArgs,
	Run:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) {
	defender.SetAttractMode(true)
	runPlay(cmd, args)
}
