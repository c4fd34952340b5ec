package services

import (
	"errors"
	"log"

	"examhub/backend/metrics"
	"examhub/backend/models"
	"examhub/backend/repository"
)

// AutoGrader is the grading engine as the submission pipeline sees it.
type AutoGrader interface {
	AutoGrade(submissionID string) (*AutoGradeOutcome, error)
}

type SubmissionService struct {
	submissions repository.SubmissionRepository
	exams       repository.ExamRepository
	grader      AutoGrader
	clock       Clock
	logger      *log.Logger
}

func NewSubmissionService(
	submissions repository.SubmissionRepository,
	exams repository.ExamRepository,
	grader AutoGrader,
	clock Clock,
	logger *log.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		exams:       exams,
		grader:      grader,
		clock:       clock,
		logger:      logger,
	}
}

// Submit records a student's attempt at an exam. The exam must be in the
// published state. Each student gets at most one submission per exam; the
// database constraint is the arbiter, so two racing submits cannot both win.
// Auto-grading runs after the insert and its failure never loses the
// submission: the attempt stays recorded and waits for manual grading.
func (s *SubmissionService) Submit(examID, studentID string, answers models.AnswerMap) (*models.Submission, error) {
	exam, err := s.exams.FindByID(examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, models.ErrExamNotFound
	}
	if exam.Status != models.ExamStatusPublished {
		return nil, models.ErrExamNotAcceptingSubmissions
	}

	if answers == nil {
		answers = models.AnswerMap{}
	}
	submission := &models.Submission{
		ExamID:      examID,
		StudentID:   studentID,
		Answers:     answers,
		Status:      models.SubmissionStatusSubmitted,
		SubmittedAt: s.clock.Now(),
	}
	if err := s.submissions.Create(submission); err != nil {
		if errors.Is(err, models.ErrDuplicateSubmission) {
			metrics.SubmissionsTotal.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}
	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()

	if _, err := s.grader.AutoGrade(submission.ID); err != nil {
		s.logger.Printf("auto-grading failed for submission %s: %v", submission.ID, err)
	}

	return submission, nil
}

func (s *SubmissionService) GetByID(id string) (*models.Submission, error) {
	submission, err := s.submissions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, models.ErrSubmissionNotFound
	}
	return submission, nil
}

// ListByExam returns an exam's submissions, newest first. Answers are
// stripped unless the caller asks for them.
func (s *SubmissionService) ListByExam(examID string, includeAnswers bool) ([]models.Submission, error) {
	submissions, err := s.submissions.ListByExam(examID)
	if err != nil {
		return nil, err
	}
	if !includeAnswers {
		stripAnswers(submissions)
	}
	return submissions, nil
}

// ListByStudent returns a student's submissions without answers, so a
// listing can never leak another attempt's content.
func (s *SubmissionService) ListByStudent(studentID string) ([]models.Submission, error) {
	submissions, err := s.submissions.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	stripAnswers(submissions)
	return submissions, nil
}

// UpdateViolations overwrites the proctoring violation count with the value
// reported by the client. The count is a report, not an accumulator.
func (s *SubmissionService) UpdateViolations(submissionID string, violations int) (*models.Submission, error) {
	submission, err := s.submissions.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, models.ErrSubmissionNotFound
	}

	err = s.submissions.Updates(submissionID, map[string]interface{}{
		"violations": violations,
	})
	if err != nil {
		return nil, err
	}
	submission.Violations = violations
	return submission, nil
}

func stripAnswers(submissions []models.Submission) {
	for i := range submissions {
		submissions[i].Answers = nil
	}
}
