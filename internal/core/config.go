package core

import "time"

// RuntimeConfig contains configuration passed to a live session view.
type RuntimeConfig struct {
	ScreenW  int           // Screen width in characters
	ScreenH  int           // Screen height in characters
	TickRate int           // Live ticks per second driven by the UI loop
	Seed     uint32        // RNG seed for a new game (0 means derive from the clock)
	Slot     string        // Save slot the session loads and writes
	Autosave time.Duration // How often the view persists the session; 0 disables
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 10,
		Seed:     0,
		Slot:     "default",
		Autosave: 30 * time.Second,
	}
}
