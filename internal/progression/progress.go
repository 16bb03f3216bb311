package progression

// StudentProgress is the durable per-(student, course) record. There is at
// most one record per pair; it is created on first interaction and mutated
// only through the Engine.
type StudentProgress struct {
	StudentID          string   `json:"student_id"`
	CourseID           string   `json:"course_id"`
	CompletedLessonIDs []string `json:"completed_lesson_ids"`
	MasteryScore       float64  `json:"mastery_score"` // 0-100, latest estimate
	CertificateEarned  bool     `json:"certificate_earned"`
}

// NewProgress returns an empty record for a student starting a course.
func NewProgress(studentID, courseID string) *StudentProgress {
	return &StudentProgress{
		StudentID: studentID,
		CourseID:  courseID,
	}
}

// Completed reports whether the lesson id is in the completed set.
func (p *StudentProgress) Completed(lessonID string) bool {
	for _, id := range p.CompletedLessonIDs {
		if id == lessonID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. The Engine mutates copies and hands the
// original back unchanged on failure.
func (p *StudentProgress) Clone() *StudentProgress {
	cp := *p
	cp.CompletedLessonIDs = append([]string(nil), p.CompletedLessonIDs...)
	return &cp
}
