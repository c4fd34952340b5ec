package models

import "time"

type ExamStatus string

const (
	ExamStatusDraft     ExamStatus = "draft"
	ExamStatusPublished ExamStatus = "published"
	ExamStatusActive    ExamStatus = "active"
	ExamStatusCompleted ExamStatus = "completed"
)

const (
	ExamTypeEntrance = "entrance"
	ExamTypeRegular  = "regular"
)

const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTheory         = "theory"
)

type Exam struct {
	BaseModel
	Title       string     `gorm:"not null" json:"title" validate:"required,min=3"`
	Description string     `json:"description"`
	ExamType    string     `gorm:"not null;index" json:"examType" validate:"required,oneof=entrance regular"`
	SubjectID   *string    `gorm:"size:36;index" json:"subjectId"`
	ClassID     *string    `gorm:"size:36;index" json:"classId"`
	AuthorID    *string    `gorm:"size:36;index" json:"authorId"`
	Duration    int        `gorm:"not null" json:"duration" validate:"required,min=1"` // minutes
	TotalPoints int        `gorm:"not null;default:0" json:"totalPoints"`
	StartDate   time.Time  `gorm:"not null;index" json:"startDate" validate:"required"`
	EndDate     time.Time  `gorm:"not null;index" json:"endDate" validate:"required"`
	Status      ExamStatus `gorm:"not null;default:draft;index" json:"status"`

	Subject   *Subject   `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Class     *Class     `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Teacher   *Teacher   `gorm:"foreignKey:AuthorID" json:"teacher,omitempty"`
	Questions []Question `gorm:"foreignKey:ExamID" json:"questions,omitempty"`
	Results   []Result   `gorm:"foreignKey:ExamID" json:"results,omitempty"`
}

// Editable reports whether exam content may still be changed. Active and
// completed exams are locked.
func (e *Exam) Editable() bool {
	return e.Status == ExamStatusDraft || e.Status == ExamStatusPublished
}

type Question struct {
	BaseModel
	ExamID        string `gorm:"size:36;not null;index" json:"examId"`
	Text          string `gorm:"not null" json:"question" validate:"required"`
	Type          string `gorm:"not null" json:"type" validate:"required,oneof=multiple_choice theory"`
	OptionA       string `json:"option_a,omitempty"`
	OptionB       string `json:"option_b,omitempty"`
	OptionC       string `json:"option_c,omitempty"`
	OptionD       string `json:"option_d,omitempty"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
	Image         string `json:"image,omitempty"`
	Point         int    `gorm:"not null;default:1" json:"point" validate:"min=1"`
}
