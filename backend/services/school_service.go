package services

import (
	"examhub/backend/models"
	"examhub/backend/repository"
)

type StudentService struct {
	students repository.StudentRepository
	classes  repository.ClassRepository
}

func NewStudentService(students repository.StudentRepository, classes repository.ClassRepository) *StudentService {
	return &StudentService{students: students, classes: classes}
}

func (s *StudentService) GetByID(id string) (*models.Student, error) {
	student, err := s.students.FindByID(id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, models.ErrStudentNotFound
	}
	return student, nil
}

func (s *StudentService) GetByUserID(userID string) (*models.Student, error) {
	student, err := s.students.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, models.ErrStudentNotFound
	}
	return student, nil
}

func (s *StudentService) List(opts repository.ListOptions, classID string) ([]models.Student, int64, error) {
	return s.students.List(opts, classID)
}

// Update edits a student record. Moving between classes keeps both class
// counters in step.
func (s *StudentService) Update(id string, fields map[string]interface{}) (*models.Student, error) {
	student, err := s.students.FindByID(id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, models.ErrStudentNotFound
	}

	if raw, ok := fields["class_id"]; ok {
		newClassID, _ := raw.(string)
		oldClassID := ""
		if student.ClassID != nil {
			oldClassID = *student.ClassID
		}
		if newClassID != oldClassID {
			if oldClassID != "" {
				if err := s.classes.AdjustStudentCount(oldClassID, -1); err != nil {
					return nil, err
				}
			}
			if newClassID != "" {
				if err := s.classes.AdjustStudentCount(newClassID, 1); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := s.students.Updates(id, fields); err != nil {
		return nil, err
	}
	return s.students.FindByID(id)
}

func (s *StudentService) Delete(id string) error {
	student, err := s.students.FindByID(id)
	if err != nil {
		return err
	}
	if student == nil {
		return models.ErrStudentNotFound
	}
	if student.ClassID != nil {
		if err := s.classes.AdjustStudentCount(*student.ClassID, -1); err != nil {
			return err
		}
	}
	return s.students.Delete(id)
}

type TeacherService struct {
	teachers repository.TeacherRepository
}

func NewTeacherService(teachers repository.TeacherRepository) *TeacherService {
	return &TeacherService{teachers: teachers}
}

func (s *TeacherService) GetByID(id string) (*models.Teacher, error) {
	teacher, err := s.teachers.FindByID(id)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, models.ErrTeacherNotFound
	}
	return teacher, nil
}

func (s *TeacherService) GetByUserID(userID string) (*models.Teacher, error) {
	teacher, err := s.teachers.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, models.ErrTeacherNotFound
	}
	return teacher, nil
}

func (s *TeacherService) List(opts repository.ListOptions) ([]models.Teacher, int64, error) {
	return s.teachers.List(opts)
}

func (s *TeacherService) Update(id string, fields map[string]interface{}) (*models.Teacher, error) {
	teacher, err := s.teachers.FindByID(id)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, models.ErrTeacherNotFound
	}
	if err := s.teachers.Updates(id, fields); err != nil {
		return nil, err
	}
	return s.teachers.FindByID(id)
}

func (s *TeacherService) Delete(id string) error {
	teacher, err := s.teachers.FindByID(id)
	if err != nil {
		return err
	}
	if teacher == nil {
		return models.ErrTeacherNotFound
	}
	return s.teachers.Delete(id)
}

type ClassService struct {
	classes repository.ClassRepository
}

func NewClassService(classes repository.ClassRepository) *ClassService {
	return &ClassService{classes: classes}
}

func (s *ClassService) Create(class *models.Class) error {
	return s.classes.Create(class)
}

func (s *ClassService) GetByID(id string) (*models.Class, error) {
	class, err := s.classes.FindByID(id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, models.ErrClassNotFound
	}
	return class, nil
}

func (s *ClassService) List(opts repository.ListOptions) ([]models.Class, int64, error) {
	return s.classes.List(opts)
}

func (s *ClassService) Update(id string, fields map[string]interface{}) (*models.Class, error) {
	class, err := s.classes.FindByID(id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, models.ErrClassNotFound
	}
	if err := s.classes.Updates(id, fields); err != nil {
		return nil, err
	}
	return s.classes.FindByID(id)
}

func (s *ClassService) Delete(id string) error {
	class, err := s.classes.FindByID(id)
	if err != nil {
		return err
	}
	if class == nil {
		return models.ErrClassNotFound
	}
	return s.classes.Delete(id)
}

type SubjectService struct {
	subjects repository.SubjectRepository
}

func NewSubjectService(subjects repository.SubjectRepository) *SubjectService {
	return &SubjectService{subjects: subjects}
}

func (s *SubjectService) Create(subject *models.Subject) error {
	return s.subjects.Create(subject)
}

func (s *SubjectService) GetByID(id string) (*models.Subject, error) {
	subject, err := s.subjects.FindByID(id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, models.ErrSubjectNotFound
	}
	return subject, nil
}

func (s *SubjectService) List(opts repository.ListOptions) ([]models.Subject, int64, error) {
	return s.subjects.List(opts)
}

func (s *SubjectService) Update(id string, fields map[string]interface{}) (*models.Subject, error) {
	subject, err := s.subjects.FindByID(id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, models.ErrSubjectNotFound
	}
	if err := s.subjects.Updates(id, fields); err != nil {
		return nil, err
	}
	return s.subjects.FindByID(id)
}

func (s *SubjectService) Delete(id string) error {
	subject, err := s.subjects.FindByID(id)
	if err != nil {
		return err
	}
	if subject == nil {
		return models.ErrSubjectNotFound
	}
	return s.subjects.Delete(id)
}
