package assessment

import "strings"

// frustrationLexicon is the fixed keyword list for the local tired/frustrated
// pre-filter. Matching is case-insensitive substring search over the
// student's latest message.
var frustrationLexicon = []string{
	"tired",
	"exhausted",
	"overwhelmed",
	"confused",
	"hard",
	"difficult",
	"too much",
}

// DetectFrustration runs the local heuristic over a student message. It is
// a pre-filter that shapes the prompt (shorter reply, suggest a break) —
// the model's own frustrated field in the response stays authoritative.
func DetectFrustration(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range frustrationLexicon {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
