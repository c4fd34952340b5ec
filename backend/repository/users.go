package repository

import (
	"errors"

	"gorm.io/gorm"

	"examhub/backend/models"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(student *models.Student) error {
	return r.db.Create(student).Error
}

func (r *studentRepository) FindByID(id string) (*models.Student, error) {
	var student models.Student
	err := r.db.Preload("User").Preload("Class").First(&student, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByUserID(userID string) (*models.Student, error) {
	var student models.Student
	err := r.db.First(&student, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) Updates(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Student{}).Where("id = ?", id).Updates(fields).Error
}

func (r *studentRepository) Delete(id string) error {
	return r.db.Delete(&models.Student{}, "id = ?", id).Error
}

func (r *studentRepository) List(opts ListOptions, classID string) ([]models.Student, int64, error) {
	query := r.db.Model(&models.Student{})
	if classID != "" {
		query = query.Where("class_id = ?", classID)
	}
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.
			Joins("JOIN users ON users.id = students.user_id").
			Where("users.first_name LIKE ? OR users.last_name LIKE ? OR users.email LIKE ?",
				pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []models.Student
	err := query.Preload("User").Preload("Class").
		Order("created_at DESC").
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&students).Error
	return students, total, err
}

func (r *studentRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Student{}).Count(&total).Error
	return total, err
}

type teacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) Create(teacher *models.Teacher) error {
	return r.db.Create(teacher).Error
}

func (r *teacherRepository) FindByID(id string) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.Preload("User").First(&teacher, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) FindByUserID(userID string) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.First(&teacher, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) Updates(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Teacher{}).Where("id = ?", id).Updates(fields).Error
}

func (r *teacherRepository) Delete(id string) error {
	return r.db.Delete(&models.Teacher{}, "id = ?", id).Error
}

func (r *teacherRepository) List(opts ListOptions) ([]models.Teacher, int64, error) {
	query := r.db.Model(&models.Teacher{})
	if opts.Search != "" {
		query = query.Where("department LIKE ?", "%"+opts.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var teachers []models.Teacher
	err := query.Preload("User").
		Order("created_at DESC").
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&teachers).Error
	return teachers, total, err
}

func (r *teacherRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Teacher{}).Count(&total).Error
	return total, err
}
