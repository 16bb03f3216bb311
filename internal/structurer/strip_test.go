package structurer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripLinks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "markdown link keeps label",
			input: "See [the handbook](https://example.com/handbook) for details",
			want:  "See the handbook for details",
		},
		{
			name:  "bare url removed",
			input: "Watch https://example.com/video then practice",
			want:  "Watch  then practice",
		},
		{
			name:  "www url removed",
			input: "More at www.example.com today",
			want:  "More at  today",
		},
		{
			name:  "plain text untouched",
			input: "Hold the knife with a pinch grip",
			want:  "Hold the knife with a pinch grip",
		},
		{
			name:  "mixed",
			input: "[Intro](http://x.y) covers basics. Source: https://a.b/c",
			want:  "Intro covers basics. Source:",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only a url strips to empty",
			input: "https://example.com/course",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripLinks(tt.input))
		})
	}
}
