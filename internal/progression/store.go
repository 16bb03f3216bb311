package progression

import "context"

// ProgressStore is the durable collaborator for progress records. Records
// are read and written whole, keyed by (studentID, courseID); the store is
// expected to provide last-writer-wins semantics and nothing more —
// MarkComplete's idempotence absorbs duplicate writes.
type ProgressStore interface {
	// Get returns the record for the pair, or nil if none exists yet.
	Get(ctx context.Context, studentID, courseID string) (*StudentProgress, error)

	// Upsert writes the whole record.
	Upsert(ctx context.Context, p *StudentProgress) error
}
