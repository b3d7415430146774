package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"revealboard/internal/viewport"
)

// Config holds the tunables shared by every session on a host.
type Config struct {
	BudgetTotal      int           `env:"REVEALBOARD_BUDGET_TOTAL"       envDefault:"24"`
	ZoomDuration     time.Duration `env:"REVEALBOARD_ZOOM_DURATION"      envDefault:"250ms"`
	ZoomedSize       float64       `env:"REVEALBOARD_ZOOMED_SIZE"        envDefault:"5.25"`
	MinZoom          float64       `env:"REVEALBOARD_MIN_ZOOM"           envDefault:"5.25"`
	ZoomScrollFactor float64       `env:"REVEALBOARD_ZOOM_SCROLL_FACTOR" envDefault:"10"`
	ZoomSpeed        float64       `env:"REVEALBOARD_ZOOM_SPEED"         envDefault:"10"`
	FlipDuration     time.Duration `env:"REVEALBOARD_FLIP_DURATION"      envDefault:"500ms"`
	HistoryCapacity  int           `env:"REVEALBOARD_HISTORY_CAPACITY"   envDefault:"10"`
}

// Load reads configuration from REVEALBOARD_* environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration with every variable unset.
func Default() Config {
	return Config{
		BudgetTotal:      24,
		ZoomDuration:     250 * time.Millisecond,
		ZoomedSize:       5.25,
		MinZoom:          5.25,
		ZoomScrollFactor: 10,
		ZoomSpeed:        10,
		FlipDuration:     500 * time.Millisecond,
		HistoryCapacity:  viewport.DefaultHistoryCapacity,
	}
}

// Validate rejects values no session can run with.
func (c Config) Validate() error {
	switch {
	case c.BudgetTotal < 0:
		return fmt.Errorf("budget total must be >= 0, got %d", c.BudgetTotal)
	case c.HistoryCapacity < 1 || c.HistoryCapacity > viewport.DefaultHistoryCapacity:
		return fmt.Errorf("history capacity must be in [1, %d], got %d", viewport.DefaultHistoryCapacity, c.HistoryCapacity)
	case c.MinZoom <= 0:
		return fmt.Errorf("min zoom must be > 0, got %g", c.MinZoom)
	case c.ZoomedSize <= 0:
		return fmt.Errorf("zoomed size must be > 0, got %g", c.ZoomedSize)
	}
	return nil
}
