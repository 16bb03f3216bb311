package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFrustration(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"tired", "I'm so tired today", true},
		{"exhausted", "feeling exhausted", true},
		{"overwhelmed", "this is overwhelming me, I'm overwhelmed", true},
		{"confused", "I'm confused about the grip", true},
		{"hard", "this is really hard", true},
		{"difficult", "that was difficult", true},
		{"too much", "it's all too much", true},
		{"mixed case", "This Is Too HARD", true},
		{"combined", "this is too hard, I'm exhausted", true},
		{"substring inside word", "I work the hardest shifts", true},
		{"neutral question", "what angle do I hold the blade at?", false},
		{"positive", "that was fun, give me another one", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFrustration(tt.message))
		})
	}
}
