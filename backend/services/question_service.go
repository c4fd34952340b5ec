package services

import (
	"examhub/backend/models"
	"examhub/backend/repository"
)

type QuestionService struct {
	questions repository.QuestionRepository
	exams     repository.ExamRepository
}

func NewQuestionService(questions repository.QuestionRepository, exams repository.ExamRepository) *QuestionService {
	return &QuestionService{questions: questions, exams: exams}
}

// Create attaches a question to its exam and folds its points into the
// exam total.
func (s *QuestionService) Create(question *models.Question) (*models.Question, error) {
	exam, err := s.exams.FindByID(question.ExamID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, models.ErrExamNotFound
	}
	if !exam.Editable() {
		return nil, models.ErrExamQuestionsLocked
	}

	if question.Point < 1 {
		question.Point = 1
	}
	if err := s.questions.Create(question); err != nil {
		return nil, err
	}
	if err := s.exams.AdjustTotalPoints(exam.ID, question.Point); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) GetByID(id string) (*models.Question, error) {
	question, err := s.questions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, models.ErrQuestionNotFound
	}
	return question, nil
}

func (s *QuestionService) ListByExam(examID string) ([]models.Question, error) {
	return s.questions.FindByExam(examID)
}

func (s *QuestionService) List() ([]models.Question, error) {
	return s.questions.FindAll()
}

// Update edits a question and keeps the exam total in step with any point
// change. Questions of active and completed exams are locked.
func (s *QuestionService) Update(id string, question *models.Question) (*models.Question, error) {
	existing, err := s.questions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, models.ErrQuestionNotFound
	}

	exam, err := s.exams.FindByID(existing.ExamID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, models.ErrExamNotFound
	}
	if !exam.Editable() {
		return nil, models.ErrExamQuestionsLocked
	}

	if question.Point < 1 {
		question.Point = 1
	}
	delta := question.Point - existing.Point
	question.BaseModel = existing.BaseModel
	question.ExamID = existing.ExamID
	if err := s.questions.Update(question); err != nil {
		return nil, err
	}

	if delta != 0 {
		if err := s.exams.AdjustTotalPoints(exam.ID, delta); err != nil {
			return nil, err
		}
	}
	return question, nil
}

func (s *QuestionService) Delete(id string) error {
	existing, err := s.questions.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return models.ErrQuestionNotFound
	}

	exam, err := s.exams.FindByID(existing.ExamID)
	if err != nil {
		return err
	}
	if exam == nil {
		return models.ErrExamNotFound
	}
	if !exam.Editable() {
		return models.ErrExamQuestionsLocked
	}

	if err := s.questions.Delete(id); err != nil {
		return err
	}
	return s.exams.AdjustTotalPoints(exam.ID, -existing.Point)
}
