package repository

import (
	"errors"

	"gorm.io/gorm"

	"examhub/backend/models"
)

type classRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(class *models.Class) error {
	return r.db.Create(class).Error
}

func (r *classRepository) FindByID(id string) (*models.Class, error) {
	var class models.Class
	err := r.db.Preload("Teacher.User").First(&class, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) Updates(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Class{}).Where("id = ?", id).Updates(fields).Error
}

func (r *classRepository) Delete(id string) error {
	return r.db.Delete(&models.Class{}, "id = ?", id).Error
}

func (r *classRepository) List(opts ListOptions) ([]models.Class, int64, error) {
	query := r.db.Model(&models.Class{})
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classes []models.Class
	err := query.Order("created_at DESC").
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&classes).Error
	return classes, total, err
}

func (r *classRepository) AdjustStudentCount(id string, delta int) error {
	return r.db.Model(&models.Class{}).Where("id = ?", id).
		UpdateColumn("students_count", gorm.Expr("students_count + ?", delta)).Error
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(subject *models.Subject) error {
	return r.db.Create(subject).Error
}

func (r *subjectRepository) FindByID(id string) (*models.Subject, error) {
	var subject models.Subject
	err := r.db.Preload("Teacher.User").First(&subject, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) Updates(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Subject{}).Where("id = ?", id).Updates(fields).Error
}

func (r *subjectRepository) Delete(id string) error {
	return r.db.Delete(&models.Subject{}, "id = ?", id).Error
}

func (r *subjectRepository) List(opts ListOptions) ([]models.Subject, int64, error) {
	query := r.db.Model(&models.Subject{})
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.Where("name LIKE ? OR code LIKE ? OR description LIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subjects []models.Subject
	err := query.Preload("Teacher.User").
		Order("created_at DESC").
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&subjects).Error
	return subjects, total, err
}
