package config

import (
	_ "embed"
)

//go:embed defaults/defender.yaml
var defaultDefenderYAML []byte

// DefaultDefenderConfig returns the default game configuration.
func DefaultDefenderConfig() DefenderConfig {
	return DefenderConfig{
		Player: DefenderPlayer{
			Lives:      2,
			SmartBombs: 1,
		},
		Waves: DefenderWaves{
			HunterDelay: 35,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.4,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "defender":
		return defaultDefenderYAML
	default:
		return nil
	}
}
