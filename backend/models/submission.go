package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type SubmissionStatus string

const (
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	SubmissionStatusGraded    SubmissionStatus = "graded"
)

// AnswerMap holds a student's answers keyed by question id. Keys that match
// no question of the exam are tolerated; the grading engine skips them.
type AnswerMap map[string]string

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		m = AnswerMap{}
	}
	return json.Marshal(m)
}

func (m *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*m = AnswerMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into AnswerMap", value)
	}
}

// Submission is one student's attempt at one exam. The composite unique
// index is what makes the ledger exactly-once: a racing duplicate insert
// fails on the constraint instead of silently producing a second row.
type Submission struct {
	BaseModel
	ExamID      string           `gorm:"size:36;not null;uniqueIndex:idx_submission_exam_student;index" json:"examId"`
	StudentID   string           `gorm:"size:36;not null;uniqueIndex:idx_submission_exam_student;index" json:"studentId"`
	Answers     AnswerMap        `gorm:"type:text;not null" json:"answers,omitempty"`
	Score       *int             `json:"score"`
	Status      SubmissionStatus `gorm:"not null;default:submitted;index" json:"status"`
	SubmittedAt time.Time        `gorm:"not null;index" json:"submittedAt"`
	GradedAt    *time.Time       `json:"gradedAt"`
	GradedBy    *string          `gorm:"size:36" json:"gradedBy"`
	Violations  int              `gorm:"not null;default:0" json:"violations"`
	Feedback    string           `json:"feedback,omitempty"`

	Exam    *Exam    `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Grader  *User    `gorm:"foreignKey:GradedBy" json:"grader,omitempty"`
}

// Result is derived from a graded submission, never edited by hand. One row
// per (exam, student); re-deriving overwrites it.
type Result struct {
	BaseModel
	ExamID      string    `gorm:"size:36;not null;uniqueIndex:idx_result_exam_student;index" json:"examId"`
	StudentID   string    `gorm:"size:36;not null;uniqueIndex:idx_result_exam_student;index" json:"studentId"`
	Score       int       `gorm:"not null" json:"score"`
	TotalPoints int       `gorm:"not null" json:"totalPoints"`
	Percentage  float64   `gorm:"not null;index" json:"percentage"`
	Grade       string    `gorm:"not null;index" json:"grade"`
	Remarks     string    `gorm:"not null" json:"remarks"`
	SubmittedAt time.Time `gorm:"not null" json:"submittedAt"`
	GradedAt    time.Time `gorm:"not null" json:"gradedAt"`

	Exam    *Exam    `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}
