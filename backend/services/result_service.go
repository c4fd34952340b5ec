package services

import (
	"examhub/backend/models"
	"examhub/backend/repository"
)

type ResultService struct {
	results repository.ResultRepository
	exams   repository.ExamRepository
}

func NewResultService(results repository.ResultRepository, exams repository.ExamRepository) *ResultService {
	return &ResultService{results: results, exams: exams}
}

func (s *ResultService) GetByID(id string) (*models.Result, error) {
	result, err := s.results.FindByID(id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, models.ErrResultNotFound
	}
	return result, nil
}

func (s *ResultService) List(opts repository.ResultListOptions) ([]models.Result, int64, error) {
	return s.results.List(opts)
}

func (s *ResultService) ListByExam(examID string) ([]models.Result, error) {
	exam, err := s.exams.FindByID(examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, models.ErrExamNotFound
	}
	return s.results.ListByExam(examID)
}

func (s *ResultService) ListByStudent(studentID string) ([]models.Result, error) {
	return s.results.ListByStudent(studentID)
}

func (s *ResultService) ListByClass(classID string) ([]models.Result, error) {
	return s.results.ListByClass(classID)
}

func (s *ResultService) ListBySubject(subjectID string) ([]models.Result, error) {
	return s.results.ListBySubject(subjectID)
}
