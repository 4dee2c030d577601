// Package config provides YAML-based game configuration loading and
// difficulty management for the defender platform.
package config

// DefenderConfig contains all tunable configuration for the game.
type DefenderConfig struct {
	Player     DefenderPlayer   `yaml:"player"`
	Waves      DefenderWaves    `yaml:"waves"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DefenderPlayer defines the per-run player resources.
type DefenderPlayer struct {
	Lives      int `yaml:"lives"`
	SmartBombs int `yaml:"smart_bombs"`
}

// DefenderWaves defines wave pacing parameters.
type DefenderWaves struct {
	HunterDelay float64 `yaml:"hunter_delay"` // Seconds before the hunter joins a wave
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Fraction shaved off timers at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
