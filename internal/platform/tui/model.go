package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/defender-tui/internal/core"
	"github.com/vovakirdan/defender-tui/internal/registry"
	"github.com/vovakirdan/defender-tui/internal/storage"
)

// holdWindow is how long a key press counts as held. Terminals deliver
// auto-repeat messages while a key is down but never a release event,
// so each press arms the action for this long and repeats keep it armed.
const holdWindow = 180 * time.Millisecond

// waveReporter is implemented by games that track wave progression, so
// the final wave can be stored alongside the score.
type waveReporter interface {
	Wave() int
}

// Model is the Bubble Tea model for running a game session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keymap     *KeyMapper
	held       map[core.Action]int // Ticks remaining until the action releases
	holdTicks  int
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	holdTicks := int(holdWindow * time.Duration(cfg.TickRate) / time.Second)
	if holdTicks < 1 {
		holdTicks = 1
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		keymap:    NewKeyMapper(),
		held:      make(map[core.Action]int),
		holdTicks: holdTicks,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keymap.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.held[action] = m.holdTicks
	}

	return m, nil
}

// handleResize processes window resize events. The simulation runs in
// world units, so the run survives a resize untouched.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.buildFrame()

	// A restart after game over reseeds so each run plays differently.
	if frame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(frame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if m.store != nil {
			wave := 1
			if wr, ok := m.game.(waveReporter); ok {
				wave = wr.Wave()
			}
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Score, wave)
		}
		m.scoreSaved = true
	}

	// The game itself may restart on Enter, re-arm the save when it does.
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// buildFrame assembles the input frame for this tick and decays held keys.
func (m Model) buildFrame() core.InputFrame {
	frame := core.NewInputFrame()
	for action, ticks := range m.held {
		if ticks <= 0 {
			delete(m.held, action)
			continue
		}
		frame.Set(action)
		m.held[action] = ticks - 1
	}
	return frame
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".defender", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
