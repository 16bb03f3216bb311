package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestIsSchemaViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "invalid response",
			err:  &ErrInvalidResponse{Content: json.RawMessage(`{}`), Err: errors.New("missing field")},
			want: true,
		},
		{
			name: "wrapped invalid response",
			err:  fmt.Errorf("course structuring: %w", &ErrInvalidResponse{Err: errors.New("bad")}),
			want: true,
		},
		{
			name: "provider unavailable",
			err:  &ErrProviderUnavailable{Err: errors.New("down")},
			want: false,
		},
		{
			name: "rate limit",
			err:  &ErrRateLimit{Err: errors.New("429")},
			want: false,
		},
		{
			name: "max tokens",
			err:  &ErrMaxTokensExceeded{},
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSchemaViolation(tt.err); got != tt.want {
				t.Fatalf("IsSchemaViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
