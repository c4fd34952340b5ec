package services

import (
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"examhub/backend/models"
	"examhub/backend/repository"
)

var testDBCounter int

// setupTestDB opens a shared in-memory database. A single connection keeps
// concurrent test writers on one sqlite handle.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBCounter++
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Teacher{},
		&models.Class{},
		&models.Subject{},
		&models.Exam{},
		&models.Question{},
		&models.Submission{},
		&models.Result{},
	))
	return db
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db          *gorm.DB
	users       repository.UserRepository
	students    repository.StudentRepository
	teachers    repository.TeacherRepository
	classes     repository.ClassRepository
	exams       repository.ExamRepository
	questions   repository.QuestionRepository
	submissions repository.SubmissionRepository
	results     repository.ResultRepository

	grading     *GradingService
	submitting  *SubmissionService
	examSvc     *ExamService
	questionSvc *QuestionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	env := &testEnv{
		db:          db,
		users:       repository.NewUserRepository(db),
		students:    repository.NewStudentRepository(db),
		teachers:    repository.NewTeacherRepository(db),
		classes:     repository.NewClassRepository(db),
		exams:       repository.NewExamRepository(db),
		questions:   repository.NewQuestionRepository(db),
		submissions: repository.NewSubmissionRepository(db),
		results:     repository.NewResultRepository(db),
	}

	clock := fixedClock{now: testTime}
	env.grading = NewGradingService(env.submissions, env.exams, env.results, clock)
	env.submitting = NewSubmissionService(
		env.submissions, env.exams, env.grading, clock,
		log.New(io.Discard, "", 0),
	)
	env.examSvc = NewExamService(env.exams, env.questions, env.submissions, env.students, clock)
	env.questionSvc = NewQuestionService(env.questions, env.exams)
	return env
}

func (e *testEnv) createStudent(t *testing.T, email string) *models.Student {
	t.Helper()
	user := &models.User{
		Email:     email,
		Password:  "hashed",
		FirstName: "Test",
		LastName:  "Student",
		Role:      models.RoleStudent,
	}
	require.NoError(t, e.users.Create(user))

	student := &models.Student{UserID: user.ID, ParentEmail: "parent@example.com"}
	require.NoError(t, e.students.Create(student))
	return student
}

// createExam stores an exam with the given questions and puts it in the
// published state.
func (e *testEnv) createExam(t *testing.T, questions ...models.Question) *models.Exam {
	t.Helper()

	total := 0
	for _, q := range questions {
		total += q.Point
	}
	exam := &models.Exam{
		Title:       "Midterm",
		ExamType:    models.ExamTypeRegular,
		Duration:    60,
		TotalPoints: total,
		StartDate:   testTime.Add(-time.Hour),
		EndDate:     testTime.Add(time.Hour),
		Status:      models.ExamStatusPublished,
	}
	require.NoError(t, e.exams.Create(exam))

	for i := range questions {
		questions[i].ExamID = exam.ID
		require.NoError(t, e.questions.Create(&questions[i]))
	}
	exam.Questions = questions
	return exam
}

func multipleChoice(text, correct string, points int) models.Question {
	return models.Question{
		Text:          text,
		Type:          models.QuestionMultipleChoice,
		OptionA:       "A option",
		OptionB:       "B option",
		OptionC:       "C option",
		OptionD:       "D option",
		CorrectAnswer: correct,
		Point:         points,
	}
}

func theory(text string, points int) models.Question {
	return models.Question{
		Text:  text,
		Type:  models.QuestionTheory,
		Point: points,
	}
}
