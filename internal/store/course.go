package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lumenacademy/lumen/internal/course"
)

// CourseRepo persists structured courses. A course is written exactly once,
// after a successful structuring run — partial lesson lists are never saved.
type CourseRepo struct {
	db *sql.DB
}

func (r *CourseRepo) Save(ctx context.Context, c *course.Course) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid course: %w", err)
	}

	lessonsJSON, err := json.Marshal(c.Lessons)
	if err != nil {
		return fmt.Errorf("encode lessons: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO courses (id, title, description, category, teacher_id, lessons)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Description, c.Category, c.TeacherID, string(lessonsJSON),
	)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *CourseRepo) Get(ctx context.Context, id string) (*course.Course, error) {
	var c course.Course
	var lessonsJSON string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, category, teacher_id, lessons
		FROM courses WHERE id = ?`, id,
	).Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.TeacherID, &lessonsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	if err := json.Unmarshal([]byte(lessonsJSON), &c.Lessons); err != nil {
		return nil, fmt.Errorf("decode lessons: %w", err)
	}
	return &c, nil
}

func (r *CourseRepo) List(ctx context.Context) ([]*course.Course, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, category, teacher_id, lessons
		FROM courses ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []*course.Course
	for rows.Next() {
		var c course.Course
		var lessonsJSON string
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.TeacherID, &lessonsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(lessonsJSON), &c.Lessons); err != nil {
			return nil, fmt.Errorf("decode lessons for %s: %w", c.ID, err)
		}
		courses = append(courses, &c)
	}
	return courses, rows.Err()
}
