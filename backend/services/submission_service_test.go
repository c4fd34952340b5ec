package services

import (
	"errors"
	"io"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examhub/backend/models"
)

func TestSubmitRequiresPublishedExam(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "submit1@example.com")
	exam := env.createExam(t, multipleChoice("Q1", "A", 5))

	for _, status := range []models.ExamStatus{
		models.ExamStatusDraft,
		models.ExamStatusActive,
		models.ExamStatusCompleted,
	} {
		require.NoError(t, env.exams.Updates(exam.ID, map[string]interface{}{"status": status}))

		_, err := env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{})
		assert.ErrorIs(t, err, models.ErrExamNotAcceptingSubmissions, "status %s", status)
	}
}

func TestSubmitUnknownExam(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "submit2@example.com")

	_, err := env.submitting.Submit("missing", student.ID, models.AnswerMap{})
	assert.ErrorIs(t, err, models.ErrExamNotFound)
}

func TestSubmitRejectsSecondAttempt(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "submit3@example.com")
	exam := env.createExam(t, multipleChoice("Q1", "A", 5))

	_, err := env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{exam.Questions[0].ID: "A"})
	require.NoError(t, err)

	_, err = env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{exam.Questions[0].ID: "B"})
	assert.ErrorIs(t, err, models.ErrDuplicateSubmission)
}

func TestSubmitConcurrentDuplicates(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "submit4@example.com")
	exam := env.createExam(t, multipleChoice("Q1", "A", 5))

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{
				exam.Questions[0].ID: "A",
			})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, models.ErrDuplicateSubmission)
		}
	}
	assert.Equal(t, 1, won, "exactly one attempt should be recorded")

	count, err := env.submissions.CountByExam(exam.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

type failingGrader struct{}

func (failingGrader) AutoGrade(string) (*AutoGradeOutcome, error) {
	return nil, errors.New("grading engine exploded")
}

func TestSubmitSurvivesGradingFailure(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "submit5@example.com")
	exam := env.createExam(t, multipleChoice("Q1", "A", 5))

	submitting := NewSubmissionService(
		env.submissions, env.exams, failingGrader{}, fixedClock{now: testTime},
		log.New(io.Discard, "", 0),
	)

	submission, err := submitting.Submit(exam.ID, student.ID, models.AnswerMap{
		exam.Questions[0].ID: "A",
	})
	require.NoError(t, err)

	// the attempt is recorded and simply waits for manual grading
	stored, err := env.submissions.FindByID(submission.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.SubmissionStatusSubmitted, stored.Status)
	assert.Nil(t, stored.Score)
}

func TestListByStudentStripsAnswers(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "submit6@example.com")
	exam := env.createExam(t, theory("Essay", 10))

	_, err := env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{
		exam.Questions[0].ID: "private essay text",
	})
	require.NoError(t, err)

	listed, err := env.submitting.ListByStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Nil(t, listed[0].Answers)

	withoutAnswers, err := env.submitting.ListByExam(exam.ID, false)
	require.NoError(t, err)
	require.Len(t, withoutAnswers, 1)
	assert.Nil(t, withoutAnswers[0].Answers)

	withAnswers, err := env.submitting.ListByExam(exam.ID, true)
	require.NoError(t, err)
	require.Len(t, withAnswers, 1)
	assert.Equal(t, "private essay text", withAnswers[0].Answers[exam.Questions[0].ID])
}

func TestUpdateViolationsOverwrites(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "submit7@example.com")
	exam := env.createExam(t, theory("Essay", 10))

	submission, err := env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{
		exam.Questions[0].ID: "text",
	})
	require.NoError(t, err)

	updated, err := env.submitting.UpdateViolations(submission.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Violations)

	// a later lower report replaces the count, it does not accumulate
	updated, err = env.submitting.UpdateViolations(submission.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Violations)

	stored, err := env.submissions.FindByID(submission.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Violations)

	_, err = env.submitting.UpdateViolations("missing", 2)
	assert.ErrorIs(t, err, models.ErrSubmissionNotFound)
}
