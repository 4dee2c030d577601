package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/defender-tui/internal/audio"
	"github.com/vovakirdan/defender-tui/internal/core"
	"github.com/vovakirdan/defender-tui/internal/games/defender"
	"github.com/vovakirdan/defender-tui/internal/platform/tui"
	"github.com/vovakirdan/defender-tui/internal/registry"
	"github.com/vovakirdan/defender-tui/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagNoSound    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start a game session in the current terminal.

Controls:
  A/D, Left/Right - Thrust
  W/S, Up/Down    - Climb/Dive
  Space           - Fire
  X/Tab           - Reverse direction
  B               - Smart bomb
  H               - Hyperspace warp
  0               - Toggle no-death mode
  P               - Pause
  R               - Restart (after game over)
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Extra ships and bombs, late hunter
  normal - Default balance
  hard   - One ship, early hunter
  fixed  - No progression, stays at config's initial level

Examples:
  defender play
  defender play --difficulty easy
  defender play --config ./my-defender.yaml
  defender play --no-sound`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable sound effects")
}

func runPlay(cmd *cobra.Command, args []string) {
	// Get terminal size early
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Set config path and difficulty before creation
	defender.SetConfigPath(flagConfig)
	defender.SetDifficultyPreset(flagDifficulty)

	// Create game instance
	game, err := registry.Create("defender")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Wire up sound. Initialization failure degrades to silence.
	if !flagNoSound {
		engine := audio.NewEngine()
		if initErr := engine.Initialize(); initErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: audio unavailable: %v\n", initErr)
		} else {
			defer engine.Cleanup()
		}
		if dg, ok := game.(*defender.Game); ok {
			dg.SetSound(engine)
		}
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
