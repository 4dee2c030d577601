package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefenderEmbeddedDefault(t *testing.T) {
	cfg, err := LoadDefender("")
	if err != nil {
		t.Fatalf("LoadDefender: %v", err)
	}
	if cfg.Player.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", cfg.Player.Lives)
	}
	if cfg.Player.SmartBombs != 1 {
		t.Errorf("SmartBombs = %d, expected 1", cfg.Player.SmartBombs)
	}
	if cfg.Waves.HunterDelay != 35 {
		t.Errorf("HunterDelay = %v, expected 35", cfg.Waves.HunterDelay)
	}
	if !cfg.Difficulty.Enabled {
		t.Error("default difficulty should be enabled")
	}
}

func TestLoadDefenderCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("player:\n  lives: 5\n  smart_bombs: 3\nwaves:\n  hunter_delay: 20\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDefender(path)
	if err != nil {
		t.Fatalf("LoadDefender: %v", err)
	}
	if cfg.Player.Lives != 5 || cfg.Player.SmartBombs != 3 || cfg.Waves.HunterDelay != 20 {
		t.Errorf("custom config not applied: %+v", cfg)
	}
}

func TestLoadDefenderMissingCustomPath(t *testing.T) {
	if _, err := LoadDefender("/nonexistent/defender.yaml"); err == nil {
		t.Error("missing explicit config path should be an error")
	}
}

func TestApplyDefenderPreset(t *testing.T) {
	cfg := DefaultDefenderConfig()
	ApplyDefenderPreset(&cfg, DifficultyEasy)
	if cfg.Player.Lives != 4 || cfg.Player.SmartBombs != 2 || cfg.Waves.HunterDelay != 45 {
		t.Errorf("easy preset: %+v", cfg)
	}
	if cfg.Difficulty.InitialLevel != 0.0 {
		t.Errorf("easy initial level = %v", cfg.Difficulty.InitialLevel)
	}

	cfg = DefaultDefenderConfig()
	ApplyDefenderPreset(&cfg, DifficultyHard)
	if cfg.Player.Lives != 1 || cfg.Waves.HunterDelay != 25 {
		t.Errorf("hard preset: %+v", cfg)
	}
	if cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard initial level = %v", cfg.Difficulty.InitialLevel)
	}

	cfg = DefaultDefenderConfig()
	ApplyDefenderPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestDifficultyManagerLevel(t *testing.T) {
	mgr := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 0.4},
	})

	if lvl := mgr.Level(0, 0); lvl != 0 {
		t.Errorf("Level(0) = %v, expected 0", lvl)
	}
	if lvl := mgr.Level(50, 0); lvl != 0.5 {
		t.Errorf("Level(50) = %v, expected 0.5", lvl)
	}
	if lvl := mgr.Level(1000, 0); lvl != 1.0 {
		t.Errorf("Level(1000) = %v, expected clamp at 1", lvl)
	}
}

func TestDifficultyManagerDelayShrinks(t *testing.T) {
	mgr := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 0.4},
	})

	base := mgr.Delay(35, 0, 0)
	late := mgr.Delay(35, 100, 0)
	if base != 35 {
		t.Errorf("Delay at level 0 = %v, expected 35", base)
	}
	if late >= base {
		t.Errorf("Delay at max level = %v, expected shorter than %v", late, base)
	}

	fixed := NewDifficultyManager(DifficultyConfig{Enabled: false})
	if d := fixed.Delay(35, 100, 0); d != 35 {
		t.Errorf("disabled progression Delay = %v, expected 35", d)
	}
}
