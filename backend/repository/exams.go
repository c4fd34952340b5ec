package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"examhub/backend/models"
)

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *models.Exam) error {
	return r.db.Create(exam).Error
}

func (r *examRepository) FindByID(id string) (*models.Exam, error) {
	var exam models.Exam
	err := r.db.Preload("Subject").Preload("Class").Preload("Teacher.User").
		First(&exam, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByIDWithQuestions(id string) (*models.Exam, error) {
	var exam models.Exam
	err := r.db.Preload("Subject").Preload("Class").Preload("Teacher.User").
		Preload("Questions").
		First(&exam, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) Updates(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Exam{}).Where("id = ?", id).Updates(fields).Error
}

// AdjustTotalPoints shifts total_points in the database, so concurrent
// question edits on one exam cannot lose each other's delta.
func (r *examRepository) AdjustTotalPoints(id string, delta int) error {
	return r.db.Model(&models.Exam{}).Where("id = ?", id).
		UpdateColumn("total_points", gorm.Expr("total_points + ?", delta)).Error
}

func (r *examRepository) Delete(id string) error {
	return r.db.Delete(&models.Exam{}, "id = ?", id).Error
}

func (r *examRepository) List(opts ExamListOptions) ([]models.Exam, int64, error) {
	query := r.db.Model(&models.Exam{})
	if opts.AuthorID != "" {
		query = query.Where("author_id = ?", opts.AuthorID)
	}
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.ExamType != "" {
		query = query.Where("exam_type = ?", opts.ExamType)
	}
	if opts.Search != "" {
		query = query.Where("title LIKE ?", "%"+opts.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var exams []models.Exam
	err := query.Preload("Subject").Preload("Class").Preload("Teacher.User").
		Order("created_at DESC").
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&exams).Error
	return exams, total, err
}

// ListWithResults returns a slim exam projection with every result and its
// student preloaded, for the results overview listing.
func (r *examRepository) ListWithResults(opts ListOptions) ([]models.Exam, int64, error) {
	var total int64
	if err := r.db.Model(&models.Exam{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var exams []models.Exam
	err := r.db.Model(&models.Exam{}).
		Select("id", "exam_type", "title", "created_at").
		Preload("Results.Student.User").
		Order("created_at DESC").
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&exams).Error
	return exams, total, err
}

// ListAvailableForClass returns exams a student of the given class can see:
// class exams plus entrance exams, published or active, inside their window.
func (r *examRepository) ListAvailableForClass(classID string, now time.Time) ([]models.Exam, error) {
	var exams []models.Exam
	query := r.db.Model(&models.Exam{}).
		Where("status IN ?", []models.ExamStatus{models.ExamStatusPublished, models.ExamStatusActive}).
		Where("start_date <= ? AND end_date >= ?", now, now)
	if classID != "" {
		query = query.Where("class_id = ? OR exam_type = ?", classID, models.ExamTypeEntrance)
	} else {
		query = query.Where("exam_type = ?", models.ExamTypeEntrance)
	}
	err := query.Preload("Subject").Preload("Class").Preload("Teacher.User").
		Order("start_date ASC").
		Find(&exams).Error
	return exams, err
}

func (r *examRepository) ListRecent(limit int, authorID string) ([]models.Exam, error) {
	var exams []models.Exam
	query := r.db.Model(&models.Exam{})
	if authorID != "" {
		query = query.Where("author_id = ?", authorID)
	}
	err := query.Preload("Subject").
		Order("created_at DESC").
		Limit(limit).
		Find(&exams).Error
	return exams, err
}

func (r *examRepository) Count(authorID string) (int64, error) {
	query := r.db.Model(&models.Exam{})
	if authorID != "" {
		query = query.Where("author_id = ?", authorID)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *models.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id string) (*models.Question, error) {
	var question models.Question
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByExam(examID string) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Where("exam_id = ?", examID).Order("created_at ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindAll() ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Order("created_at ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(question *models.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id string) error {
	return r.db.Delete(&models.Question{}, "id = ?", id).Error
}

func (r *questionRepository) DeleteByExam(examID string) error {
	return r.db.Delete(&models.Question{}, "exam_id = ?", examID).Error
}
