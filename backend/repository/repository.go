package repository

import (
	"time"

	"examhub/backend/models"
)

// Repositories follow a shared convention: Find* returns (nil, nil) when the
// record is absent, so services decide which not-found error to surface.

type ListOptions struct {
	Search string
	Limit  int
	Offset int
}

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

type StudentRepository interface {
	Create(student *models.Student) error
	FindByID(id string) (*models.Student, error)
	FindByUserID(userID string) (*models.Student, error)
	Updates(id string, fields map[string]interface{}) error
	Delete(id string) error
	List(opts ListOptions, classID string) ([]models.Student, int64, error)
	Count() (int64, error)
}

type TeacherRepository interface {
	Create(teacher *models.Teacher) error
	FindByID(id string) (*models.Teacher, error)
	FindByUserID(userID string) (*models.Teacher, error)
	Updates(id string, fields map[string]interface{}) error
	Delete(id string) error
	List(opts ListOptions) ([]models.Teacher, int64, error)
	Count() (int64, error)
}

type ClassRepository interface {
	Create(class *models.Class) error
	FindByID(id string) (*models.Class, error)
	Updates(id string, fields map[string]interface{}) error
	Delete(id string) error
	List(opts ListOptions) ([]models.Class, int64, error)
	AdjustStudentCount(id string, delta int) error
}

type SubjectRepository interface {
	Create(subject *models.Subject) error
	FindByID(id string) (*models.Subject, error)
	Updates(id string, fields map[string]interface{}) error
	Delete(id string) error
	List(opts ListOptions) ([]models.Subject, int64, error)
}

type ExamListOptions struct {
	ListOptions
	AuthorID string
	Status   string
	ExamType string
}

type ExamRepository interface {
	Create(exam *models.Exam) error
	FindByID(id string) (*models.Exam, error)
	FindByIDWithQuestions(id string) (*models.Exam, error)
	Updates(id string, fields map[string]interface{}) error
	AdjustTotalPoints(id string, delta int) error
	Delete(id string) error
	List(opts ExamListOptions) ([]models.Exam, int64, error)
	ListWithResults(opts ListOptions) ([]models.Exam, int64, error)
	ListAvailableForClass(classID string, now time.Time) ([]models.Exam, error)
	ListRecent(limit int, authorID string) ([]models.Exam, error)
	Count(authorID string) (int64, error)
}

type QuestionRepository interface {
	Create(question *models.Question) error
	FindByID(id string) (*models.Question, error)
	FindByExam(examID string) ([]models.Question, error)
	FindAll() ([]models.Question, error)
	Update(question *models.Question) error
	Delete(id string) error
	DeleteByExam(examID string) error
}

type SubmissionRepository interface {
	// Create inserts the submission; a unique-constraint violation on
	// (exam_id, student_id) is returned as models.ErrDuplicateSubmission.
	Create(submission *models.Submission) error
	FindByID(id string) (*models.Submission, error)
	Updates(id string, fields map[string]interface{}) error
	ListByExam(examID string) ([]models.Submission, error)
	ListByStudent(studentID string) ([]models.Submission, error)
	CountByExam(examID string) (int64, error)
	CountGradedByExam(examID string) (int64, error)
	AverageScoreByExam(examID string) (float64, error)
	// ScoreBoundsByExam returns the highest and lowest recorded scores,
	// ignoring ungraded submissions. Both are zero when nothing is graded.
	ScoreBoundsByExam(examID string) (highest, lowest int, err error)
	CountByExamAuthor(authorID string) (int64, error)
	Count(studentID string) (int64, error)
}

// GradeCount is one bucket of a grade distribution.
type GradeCount struct {
	Grade string `json:"grade"`
	Count int64  `json:"count"`
}

type ResultListOptions struct {
	ListOptions
	ExamID    string
	StudentID string
}

type ResultRepository interface {
	// Upsert writes the result for its (exam_id, student_id) pair,
	// overwriting derived fields when a row already exists.
	Upsert(result *models.Result) error
	FindByID(id string) (*models.Result, error)
	FindByExamAndStudent(examID, studentID string) (*models.Result, error)
	List(opts ResultListOptions) ([]models.Result, int64, error)
	ListByExam(examID string) ([]models.Result, error)
	ListByStudent(studentID string) ([]models.Result, error)
	ListByClass(classID string) ([]models.Result, error)
	ListBySubject(subjectID string) ([]models.Result, error)
	ListRecentByStudent(studentID string, limit int) ([]models.Result, error)
	GradeDistributionByExam(examID string) ([]GradeCount, error)
	Count(studentID string) (int64, error)
}
