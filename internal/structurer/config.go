package structurer

// Variant selects which response shape is requested from the model.
type Variant string

const (
	// VariantFlat requests a single lessons array.
	VariantFlat Variant = "flat"

	// VariantModular requests lessons grouped under modules. The result is
	// flattened into the same canonical lesson list either way.
	VariantModular Variant = "modular"
)

// DefaultDuration is the lesson duration (minutes) substituted when the
// model omits one or returns a non-positive value.
const DefaultDuration = 5

// Config holds course structuring settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Variant     Variant
}

// DefaultConfig returns sensible defaults for structuring.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.4,
		Variant:     VariantFlat,
	}
}
