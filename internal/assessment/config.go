package assessment

// MasteryThreshold is the score at which a learner is considered ready to
// advance past the current lesson.
const MasteryThreshold = 85

// Config holds tutoring assessment settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for assessment turns.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}
