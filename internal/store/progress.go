package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lumenacademy/lumen/internal/progression"
)

// ProgressStore implements progression.ProgressStore on the
// student_progress table. Records are read and written whole.
type ProgressStore struct {
	db *sql.DB
}

var _ progression.ProgressStore = (*ProgressStore)(nil)

func (s *ProgressStore) Get(ctx context.Context, studentID, courseID string) (*progression.StudentProgress, error) {
	var completedJSON string
	p := &progression.StudentProgress{
		StudentID: studentID,
		CourseID:  courseID,
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT completed_lesson_ids, mastery_score, certificate_earned
		FROM student_progress
		WHERE student_id = ? AND course_id = ?`,
		studentID, courseID,
	).Scan(&completedJSON, &p.MasteryScore, &p.CertificateEarned)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	if err := json.Unmarshal([]byte(completedJSON), &p.CompletedLessonIDs); err != nil {
		return nil, fmt.Errorf("decode completed lessons: %w", err)
	}
	return p, nil
}

func (s *ProgressStore) Upsert(ctx context.Context, p *progression.StudentProgress) error {
	completed := p.CompletedLessonIDs
	if completed == nil {
		completed = []string{}
	}
	completedJSON, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("encode completed lessons: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO student_progress
			(student_id, course_id, completed_lesson_ids, mastery_score, certificate_earned, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (student_id, course_id) DO UPDATE SET
			completed_lesson_ids = excluded.completed_lesson_ids,
			mastery_score = excluded.mastery_score,
			certificate_earned = excluded.certificate_earned,
			updated_at = CURRENT_TIMESTAMP`,
		p.StudentID, p.CourseID, string(completedJSON), p.MasteryScore, p.CertificateEarned,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}
