package core

// RuntimeConfig contains configuration passed to a game when it is reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Clock refreshes per second
	Seed     int64 // RNG seed for the mine layout
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 4,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Seconds  int  // Play time shown on the counter
	GameOver bool // Whether the game has ended
	Won      bool // Whether it ended in a win
}

// StepResult is returned by Game.Step after each input frame.
type StepResult struct {
	State   GameState
	Message string // last action feedback, empty if none
}
