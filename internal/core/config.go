package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Creatures captured this session
	Moves     int  // Turns resolved on the current level
	Animating bool // History frames are still being shown
	Cleared   bool // No creature is left on the current level
	Quit      bool // The player asked to leave
}

// RunRecord describes one finished level visit, for the platform to persist.
type RunRecord struct {
	World    string
	Burrow   string
	Depth    int
	Level    string
	Moves    int
	Captured int
	Cleared  bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Finished is set on the tick a level visit ends: the level was
	// cleared or left. Nil otherwise.
	Finished *RunRecord
}
