package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examhub/backend/models"
)

func TestAutoGradeFullyMultipleChoice(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "grade1@example.com")
	exam := env.createExam(t,
		multipleChoice("Q1", "B", 5),
		multipleChoice("Q2", "A", 5),
	)

	submission, err := env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{
		exam.Questions[0].ID: "B",
		exam.Questions[1].ID: "C",
	})
	require.NoError(t, err)

	stored, err := env.submissions.FindByID(submission.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 5, *stored.Score)
	assert.Equal(t, models.SubmissionStatusGraded, stored.Status)
	require.NotNil(t, stored.GradedAt)

	result, err := env.results.FindByExamAndStudent(exam.ID, student.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 5, result.Score)
	assert.Equal(t, 10, result.TotalPoints)
	assert.Equal(t, 50.0, result.Percentage)
	assert.Equal(t, "C+", result.Grade)
	assert.Equal(t, "Average", result.Remarks)
}

func TestAutoGradeLeavesTheoryExamsPending(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "grade2@example.com")
	exam := env.createExam(t,
		multipleChoice("Q1", "A", 5),
		theory("Q2", 5),
	)

	submission, err := env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{
		exam.Questions[0].ID: "A",
		exam.Questions[1].ID: "long essay",
	})
	require.NoError(t, err)

	stored, err := env.submissions.FindByID(submission.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Score)
	assert.Equal(t, models.SubmissionStatusSubmitted, stored.Status)

	result, err := env.results.FindByExamAndStudent(exam.ID, student.ID)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestAutoGradePartialAnswersStayPending(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "grade3@example.com")
	exam := env.createExam(t,
		multipleChoice("Q1", "A", 5),
		multipleChoice("Q2", "B", 5),
	)

	// one question answered, one skipped
	outcome, err := func() (*AutoGradeOutcome, error) {
		submission, err := env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{
			exam.Questions[0].ID: "A",
		})
		require.NoError(t, err)
		return env.grading.AutoGrade(submission.ID)
	}()
	require.NoError(t, err)

	assert.False(t, outcome.AutoGraded)
	assert.Nil(t, outcome.Score)
	assert.Equal(t, 1, outcome.QuestionsGraded)
	assert.Equal(t, 2, outcome.TotalQuestions)
}

func TestAutoGradeIgnoresUnknownQuestionKeys(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "grade4@example.com")
	exam := env.createExam(t, multipleChoice("Q1", "A", 4))

	submission, err := env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{
		exam.Questions[0].ID: "A",
		"not-a-question":     "D",
	})
	require.NoError(t, err)

	stored, err := env.submissions.FindByID(submission.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 4, *stored.Score)
	assert.Equal(t, models.SubmissionStatusGraded, stored.Status)
}

func TestGradeSubmissionIsSingleShot(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "grade5@example.com")
	exam := env.createExam(t, theory("Essay", 20))

	submission, err := env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{
		exam.Questions[0].ID: "an essay",
	})
	require.NoError(t, err)

	graded, err := env.grading.GradeSubmission(submission.ID, 15, "solid work", "grader-1")
	require.NoError(t, err)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 15, *graded.Score)

	_, err = env.grading.GradeSubmission(submission.ID, 18, "changed my mind", "grader-1")
	assert.ErrorIs(t, err, models.ErrAlreadyGraded)

	result, err := env.results.FindByExamAndStudent(exam.ID, student.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 15, result.Score)
	assert.Equal(t, 75.0, result.Percentage)
	assert.Equal(t, "B+", result.Grade)
}

func TestGradeSubmissionNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.grading.GradeSubmission("missing", 10, "", "grader-1")
	assert.ErrorIs(t, err, models.ErrSubmissionNotFound)
}

func TestBulkGradeIsolatesFailures(t *testing.T) {
	env := newTestEnv(t)
	studentA := env.createStudent(t, "bulk1@example.com")
	studentB := env.createStudent(t, "bulk2@example.com")
	exam := env.createExam(t, theory("Essay", 10))
	otherExam := env.createExam(t, theory("Other essay", 10))

	subA, err := env.submitting.Submit(exam.ID, studentA.ID, models.AnswerMap{exam.Questions[0].ID: "a"})
	require.NoError(t, err)
	subOther, err := env.submitting.Submit(otherExam.ID, studentB.ID, models.AnswerMap{otherExam.Questions[0].ID: "b"})
	require.NoError(t, err)

	results := env.grading.BulkGrade(exam.ID, []BulkGradeEntry{
		{SubmissionID: subA.ID, Score: 8, Feedback: "good"},
		{SubmissionID: subOther.ID, Score: 9},
		{SubmissionID: "missing", Score: 5},
	})
	require.Len(t, results, 3)

	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, "Submission not found or exam mismatch", results[1].Error)
	assert.False(t, results[2].Success)
	assert.Equal(t, "Submission not found or exam mismatch", results[2].Error)

	// the mismatched submission was left untouched
	stored, err := env.submissions.FindByID(subOther.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusSubmitted, stored.Status)
}

func TestBulkGradeRederivesResultIdempotently(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "bulk3@example.com")
	exam := env.createExam(t, theory("Essay", 10))

	submission, err := env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{exam.Questions[0].ID: "a"})
	require.NoError(t, err)

	first := env.grading.BulkGrade(exam.ID, []BulkGradeEntry{{SubmissionID: submission.ID, Score: 6}})
	require.True(t, first[0].Success)
	second := env.grading.BulkGrade(exam.ID, []BulkGradeEntry{{SubmissionID: submission.ID, Score: 9}})
	require.True(t, second[0].Success)

	// one result row, carrying the latest derivation
	var count int64
	require.NoError(t, env.db.Model(&models.Result{}).
		Where("exam_id = ? AND student_id = ?", exam.ID, student.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	result, err := env.results.FindByExamAndStudent(exam.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, result.Score)
	assert.Equal(t, 90.0, result.Percentage)
	assert.Equal(t, "A+", result.Grade)
	assert.Equal(t, "Excellent", result.Remarks)
}

func TestAutoGradeZeroPointExam(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, "zero@example.com")

	// an exam with no questions is trivially fully auto-gradable
	exam := env.createExam(t)

	submission, err := env.submitting.Submit(exam.ID, student.ID, models.AnswerMap{})
	require.NoError(t, err)

	stored, err := env.submissions.FindByID(submission.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 0, *stored.Score)

	result, err := env.results.FindByExamAndStudent(exam.ID, student.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 0.0, result.Percentage)
	assert.Equal(t, "F", result.Grade)
}
