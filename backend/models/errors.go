package models

import (
	"fmt"
	"net/http"
)

// AppError is a service-level failure carrying the HTTP status the
// controllers should answer with.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(message string, code int) *AppError {
	return &AppError{Code: code, Message: message}
}

var (
	ErrUserNotFound       = NewAppError("User not found", http.StatusNotFound)
	ErrStudentNotFound    = NewAppError("Student not found", http.StatusNotFound)
	ErrTeacherNotFound    = NewAppError("Teacher not found", http.StatusNotFound)
	ErrClassNotFound      = NewAppError("Class not found", http.StatusNotFound)
	ErrSubjectNotFound    = NewAppError("Subject not found", http.StatusNotFound)
	ErrExamNotFound       = NewAppError("Exam not found", http.StatusNotFound)
	ErrQuestionNotFound   = NewAppError("Question not found", http.StatusNotFound)
	ErrSubmissionNotFound = NewAppError("Submission not found", http.StatusNotFound)
	ErrResultNotFound     = NewAppError("Result not found", http.StatusNotFound)

	ErrExamMissingForSubmission = NewAppError("Exam not found for submission", http.StatusNotFound)

	ErrDuplicateSubmission         = NewAppError("Exam already submitted", http.StatusConflict)
	ErrAlreadyGraded               = NewAppError("Submission already graded", http.StatusConflict)
	ErrExamLocked                  = NewAppError("Cannot update active or completed exam", http.StatusConflict)
	ErrExamQuestionsLocked         = NewAppError("Cannot modify questions of active or completed exam", http.StatusConflict)
	ErrExamHasSubmissions          = NewAppError("Cannot delete exam with existing submissions", http.StatusConflict)
	ErrSubmissionNotGraded         = NewAppError("Submission has no score to derive a result from", http.StatusConflict)
	ErrExamNotAcceptingSubmissions = NewAppError("Exam is not accepting submissions", http.StatusBadRequest)
	ErrInvalidDateRange            = NewAppError("End date must be after start date", http.StatusBadRequest)

	ErrEmailTaken         = NewAppError("User with this email already exists", http.StatusConflict)
	ErrInvalidCredentials = NewAppError("Invalid email or password", http.StatusUnauthorized)
	ErrInvalidToken       = NewAppError("Invalid or expired token", http.StatusUnauthorized)
)

// NewInvalidTransition names both ends of an illegal lifecycle move.
func NewInvalidTransition(from, to ExamStatus) *AppError {
	return NewAppError(
		fmt.Sprintf("Cannot change status from %s to %s", from, to),
		http.StatusBadRequest,
	)
}
