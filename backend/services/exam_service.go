package services

import (
	"examhub/backend/models"
	"examhub/backend/repository"
)

// examStatusTransitions is the exam lifecycle. Completed is terminal;
// published can fall back to draft for rework.
var examStatusTransitions = map[models.ExamStatus][]models.ExamStatus{
	models.ExamStatusDraft:     {models.ExamStatusPublished},
	models.ExamStatusPublished: {models.ExamStatusActive, models.ExamStatusDraft},
	models.ExamStatusActive:    {models.ExamStatusCompleted},
	models.ExamStatusCompleted: {},
}

type ExamStatistics struct {
	TotalSubmissions  int64   `json:"totalSubmissions"`
	GradedSubmissions int64   `json:"gradedSubmissions"`
	PendingGrading    int64   `json:"pendingGrading"`
	AverageScore      float64 `json:"averageScore"`
}

type ExamService struct {
	exams       repository.ExamRepository
	questions   repository.QuestionRepository
	submissions repository.SubmissionRepository
	students    repository.StudentRepository
	clock       Clock
}

func NewExamService(
	exams repository.ExamRepository,
	questions repository.QuestionRepository,
	submissions repository.SubmissionRepository,
	students repository.StudentRepository,
	clock Clock,
) *ExamService {
	return &ExamService{
		exams:       exams,
		questions:   questions,
		submissions: submissions,
		students:    students,
		clock:       clock,
	}
}

// Create stores a new exam with its questions. The exam starts in draft
// unless the caller set a status, and its total points are the sum of the
// question points.
func (s *ExamService) Create(exam *models.Exam, questions []models.Question) (*models.Exam, error) {
	if !exam.EndDate.After(exam.StartDate) {
		return nil, models.ErrInvalidDateRange
	}
	if exam.Status == "" {
		exam.Status = models.ExamStatusDraft
	}

	total := 0
	for _, q := range questions {
		total += q.Point
	}
	exam.TotalPoints = total

	if err := s.exams.Create(exam); err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].ExamID = exam.ID
		if err := s.questions.Create(&questions[i]); err != nil {
			return nil, err
		}
	}
	exam.Questions = questions
	return exam, nil
}

// Update changes exam metadata. Active and completed exams are locked.
func (s *ExamService) Update(examID string, fields map[string]interface{}) (*models.Exam, error) {
	exam, err := s.exams.FindByID(examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, models.ErrExamNotFound
	}
	if !exam.Editable() {
		return nil, models.ErrExamLocked
	}

	if err := s.exams.Updates(examID, fields); err != nil {
		return nil, err
	}
	return s.exams.FindByID(examID)
}

// ReplaceQuestions swaps an exam's question set for a new one and recomputes
// the exam's total points from it.
func (s *ExamService) ReplaceQuestions(examID string, questions []models.Question) (*models.Exam, error) {
	exam, err := s.exams.FindByID(examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, models.ErrExamNotFound
	}
	if !exam.Editable() {
		return nil, models.ErrExamQuestionsLocked
	}

	if err := s.questions.DeleteByExam(examID); err != nil {
		return nil, err
	}
	total := 0
	for i := range questions {
		questions[i].ExamID = examID
		if err := s.questions.Create(&questions[i]); err != nil {
			return nil, err
		}
		total += questions[i].Point
	}
	err = s.exams.Updates(examID, map[string]interface{}{"total_points": total})
	if err != nil {
		return nil, err
	}

	exam.Questions = questions
	exam.TotalPoints = total
	return exam, nil
}

// Delete removes an exam, but never one that already has submissions.
func (s *ExamService) Delete(examID string) error {
	exam, err := s.exams.FindByID(examID)
	if err != nil {
		return err
	}
	if exam == nil {
		return models.ErrExamNotFound
	}

	count, err := s.submissions.CountByExam(examID)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.ErrExamHasSubmissions
	}

	if err := s.questions.DeleteByExam(examID); err != nil {
		return err
	}
	return s.exams.Delete(examID)
}

// GetByID loads an exam. Questions are included only when the caller asks
// for them and the exam is active, so question content never leaks before
// the exam starts.
func (s *ExamService) GetByID(examID string, includeQuestions bool) (*models.Exam, error) {
	exam, err := s.exams.FindByIDWithQuestions(examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, models.ErrExamNotFound
	}
	if !includeQuestions || exam.Status != models.ExamStatusActive {
		exam.Questions = nil
	}
	return exam, nil
}

// ListForStudent returns the exams a student may currently take: published
// or active exams inside their window, targeted at the student's class or
// open entrance exams.
func (s *ExamService) ListForStudent(studentID string) ([]models.Exam, error) {
	student, err := s.students.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, models.ErrStudentNotFound
	}

	classID := ""
	if student.ClassID != nil {
		classID = *student.ClassID
	}
	return s.exams.ListAvailableForClass(classID, s.clock.Now())
}

func (s *ExamService) List(opts repository.ExamListOptions) ([]models.Exam, int64, error) {
	return s.exams.List(opts)
}

func (s *ExamService) ListWithResults(opts repository.ListOptions) ([]models.Exam, int64, error) {
	return s.exams.ListWithResults(opts)
}

// UpdateStatus moves an exam along its lifecycle. Anything outside the
// transition table is rejected with both ends named.
func (s *ExamService) UpdateStatus(examID string, status models.ExamStatus) (*models.Exam, error) {
	exam, err := s.exams.FindByID(examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, models.ErrExamNotFound
	}

	allowed := false
	for _, next := range examStatusTransitions[exam.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, models.NewInvalidTransition(exam.Status, status)
	}

	if err := s.exams.Updates(examID, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	exam.Status = status
	return exam, nil
}

// Statistics summarizes grading progress for one exam.
func (s *ExamService) Statistics(examID string) (*ExamStatistics, error) {
	exam, err := s.exams.FindByID(examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, models.ErrExamNotFound
	}

	total, err := s.submissions.CountByExam(examID)
	if err != nil {
		return nil, err
	}
	graded, err := s.submissions.CountGradedByExam(examID)
	if err != nil {
		return nil, err
	}
	average, err := s.submissions.AverageScoreByExam(examID)
	if err != nil {
		return nil, err
	}

	return &ExamStatistics{
		TotalSubmissions:  total,
		GradedSubmissions: graded,
		PendingGrading:    total - graded,
		AverageScore:      average,
	}, nil
}
