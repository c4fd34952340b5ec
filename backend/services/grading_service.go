package services

import (
	"examhub/backend/metrics"
	"examhub/backend/models"
	"examhub/backend/repository"
	"examhub/backend/utils"
)

// AutoGradeOutcome reports what the engine did with one submission.
// Score is nil unless the submission was fully auto-graded.
type AutoGradeOutcome struct {
	AutoGraded      bool `json:"autoGraded"`
	Score           *int `json:"score"`
	QuestionsGraded int  `json:"questionsGraded"`
	TotalQuestions  int  `json:"totalQuestions"`
}

type BulkGradeEntry struct {
	SubmissionID string `json:"submissionId"`
	Score        int    `json:"score"`
	Feedback     string `json:"feedback"`
}

type BulkGradeResult struct {
	SubmissionID string `json:"submissionId"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

type GradingService struct {
	submissions repository.SubmissionRepository
	exams       repository.ExamRepository
	results     repository.ResultRepository
	clock       Clock
}

func NewGradingService(
	submissions repository.SubmissionRepository,
	exams repository.ExamRepository,
	results repository.ResultRepository,
	clock Clock,
) *GradingService {
	return &GradingService{
		submissions: submissions,
		exams:       exams,
		results:     results,
		clock:       clock,
	}
}

// AutoGrade scores the multiple choice answers of a submission. The engine is
// all or nothing: it persists a score and derives a result only when every
// question of the exam was answered and auto-gradable. A theory question or
// an unanswered question leaves the whole submission waiting for a human.
func (s *GradingService) AutoGrade(submissionID string) (*AutoGradeOutcome, error) {
	submission, err := s.submissions.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, models.ErrSubmissionNotFound
	}

	exam, err := s.exams.FindByIDWithQuestions(submission.ExamID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, models.ErrExamMissingForSubmission
	}

	byID := make(map[string]*models.Question, len(exam.Questions))
	for i := range exam.Questions {
		byID[exam.Questions[i].ID] = &exam.Questions[i]
	}

	totalScore := 0
	graded := 0
	for questionID, answer := range submission.Answers {
		question, ok := byID[questionID]
		if !ok {
			continue
		}
		if question.Type != models.QuestionMultipleChoice {
			continue
		}
		if answer == question.CorrectAnswer {
			totalScore += question.Point
		}
		graded++
	}

	outcome := &AutoGradeOutcome{
		QuestionsGraded: graded,
		TotalQuestions:  len(exam.Questions),
	}
	if graded != len(exam.Questions) {
		return outcome, nil
	}

	now := s.clock.Now()
	err = s.submissions.Updates(submission.ID, map[string]interface{}{
		"score":     totalScore,
		"status":    models.SubmissionStatusGraded,
		"graded_at": now,
	})
	if err != nil {
		return nil, err
	}

	submission.Score = &totalScore
	submission.GradedAt = &now
	if err := s.deriveResult(submission, exam); err != nil {
		return nil, err
	}

	metrics.GradingsTotal.WithLabelValues("auto").Inc()
	outcome.AutoGraded = true
	outcome.Score = &totalScore
	return outcome, nil
}

// GradeSubmission records a manual grade. Grading is single shot: a graded
// submission stays graded, a second attempt is rejected.
func (s *GradingService) GradeSubmission(submissionID string, score int, feedback, gradedBy string) (*models.Submission, error) {
	submission, err := s.submissions.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, models.ErrSubmissionNotFound
	}
	if submission.Status == models.SubmissionStatusGraded {
		return nil, models.ErrAlreadyGraded
	}

	now := s.clock.Now()
	err = s.submissions.Updates(submission.ID, map[string]interface{}{
		"score":     score,
		"feedback":  feedback,
		"graded_by": gradedBy,
		"graded_at": now,
		"status":    models.SubmissionStatusGraded,
	})
	if err != nil {
		return nil, err
	}

	submission.Score = &score
	submission.Feedback = feedback
	submission.GradedBy = &gradedBy
	submission.GradedAt = &now
	submission.Status = models.SubmissionStatusGraded

	exam := submission.Exam
	if exam == nil {
		exam, err = s.exams.FindByID(submission.ExamID)
		if err != nil {
			return nil, err
		}
		if exam == nil {
			return nil, models.ErrExamMissingForSubmission
		}
	}
	if err := s.deriveResult(submission, exam); err != nil {
		return nil, err
	}

	metrics.GradingsTotal.WithLabelValues("manual").Inc()
	return submission, nil
}

// BulkGrade applies manual grades to many submissions of one exam. Entries
// are independent: one bad entry is reported in its slot and does not stop
// the rest. A submission belonging to a different exam counts as not found.
func (s *GradingService) BulkGrade(examID string, entries []BulkGradeEntry) []BulkGradeResult {
	results := make([]BulkGradeResult, 0, len(entries))
	for _, entry := range entries {
		submission, err := s.submissions.FindByID(entry.SubmissionID)
		if err != nil {
			results = append(results, BulkGradeResult{
				SubmissionID: entry.SubmissionID,
				Error:        err.Error(),
			})
			continue
		}
		if submission == nil || submission.ExamID != examID {
			results = append(results, BulkGradeResult{
				SubmissionID: entry.SubmissionID,
				Error:        "Submission not found or exam mismatch",
			})
			continue
		}

		if err := s.applyBulkEntry(submission, entry); err != nil {
			results = append(results, BulkGradeResult{
				SubmissionID: entry.SubmissionID,
				Error:        err.Error(),
			})
			continue
		}
		results = append(results, BulkGradeResult{
			SubmissionID: entry.SubmissionID,
			Success:      true,
		})
	}
	return results
}

func (s *GradingService) applyBulkEntry(submission *models.Submission, entry BulkGradeEntry) error {
	now := s.clock.Now()
	err := s.submissions.Updates(submission.ID, map[string]interface{}{
		"score":     entry.Score,
		"feedback":  entry.Feedback,
		"status":    models.SubmissionStatusGraded,
		"graded_at": now,
	})
	if err != nil {
		return err
	}

	score := entry.Score
	submission.Score = &score
	submission.GradedAt = &now

	exam := submission.Exam
	if exam == nil {
		exam, err = s.exams.FindByID(submission.ExamID)
		if err != nil {
			return err
		}
		if exam == nil {
			return models.ErrExamMissingForSubmission
		}
	}
	if err := s.deriveResult(submission, exam); err != nil {
		return err
	}
	metrics.GradingsTotal.WithLabelValues("bulk").Inc()
	return nil
}

// deriveResult projects a graded submission into its result row. Deriving is
// idempotent: the (exam, student) row is created or overwritten, never
// duplicated.
func (s *GradingService) deriveResult(submission *models.Submission, exam *models.Exam) error {
	if submission.Score == nil {
		return models.ErrSubmissionNotGraded
	}

	percentage := utils.CalculatePercentage(*submission.Score, exam.TotalPoints)
	gradedAt := s.clock.Now()
	if submission.GradedAt != nil {
		gradedAt = *submission.GradedAt
	}

	metrics.ScorePercentage.Observe(percentage)
	return s.results.Upsert(&models.Result{
		ExamID:      submission.ExamID,
		StudentID:   submission.StudentID,
		Score:       *submission.Score,
		TotalPoints: exam.TotalPoints,
		Percentage:  percentage,
		Grade:       utils.CalculateGrade(percentage),
		Remarks:     utils.GetRemarks(percentage),
		SubmittedAt: submission.SubmittedAt,
		GradedAt:    gradedAt,
	})
}
