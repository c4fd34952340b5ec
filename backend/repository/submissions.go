package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"examhub/backend/models"
)

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *models.Submission) error {
	if err := r.db.Create(submission).Error; err != nil {
		if isDuplicateKey(err) {
			return models.ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

// isDuplicateKey covers both GORM's translated error and the raw driver
// message, which differs between postgres and sqlite.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func (r *submissionRepository) FindByID(id string) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.Preload("Exam").Preload("Student.User").Preload("Grader").
		First(&submission, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) Updates(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Submission{}).Where("id = ?", id).Updates(fields).Error
}

func (r *submissionRepository) ListByExam(examID string) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.Where("exam_id = ?", examID).
		Preload("Student.User").Preload("Grader").
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) ListByStudent(studentID string) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.Where("student_id = ?", studentID).
		Preload("Exam").
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) CountByExam(examID string) (int64, error) {
	var total int64
	err := r.db.Model(&models.Submission{}).Where("exam_id = ?", examID).Count(&total).Error
	return total, err
}

func (r *submissionRepository) CountGradedByExam(examID string) (int64, error) {
	var total int64
	err := r.db.Model(&models.Submission{}).
		Where("exam_id = ? AND status = ?", examID, models.SubmissionStatusGraded).
		Count(&total).Error
	return total, err
}

func (r *submissionRepository) AverageScoreByExam(examID string) (float64, error) {
	var avg *float64
	err := r.db.Model(&models.Submission{}).
		Where("exam_id = ? AND score IS NOT NULL", examID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *submissionRepository) ScoreBoundsByExam(examID string) (int, int, error) {
	var bounds struct {
		Highest *int
		Lowest  *int
	}
	err := r.db.Model(&models.Submission{}).
		Where("exam_id = ? AND score IS NOT NULL", examID).
		Select("MAX(score) AS highest, MIN(score) AS lowest").
		Scan(&bounds).Error
	if err != nil || bounds.Highest == nil || bounds.Lowest == nil {
		return 0, 0, err
	}
	return *bounds.Highest, *bounds.Lowest, nil
}

func (r *submissionRepository) CountByExamAuthor(authorID string) (int64, error) {
	var total int64
	err := r.db.Model(&models.Submission{}).
		Joins("JOIN exams ON exams.id = submissions.exam_id").
		Where("exams.author_id = ?", authorID).
		Count(&total).Error
	return total, err
}

func (r *submissionRepository) Count(studentID string) (int64, error) {
	query := r.db.Model(&models.Submission{})
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Upsert(result *models.Result) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "exam_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "total_points", "percentage", "grade", "remarks",
			"submitted_at", "graded_at", "updated_at",
		}),
	}).Create(result).Error
}

func (r *resultRepository) FindByID(id string) (*models.Result, error) {
	var result models.Result
	err := r.db.Preload("Exam.Subject").Preload("Student.User").Preload("Student.Class").
		First(&result, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindByExamAndStudent(examID, studentID string) (*models.Result, error) {
	var result models.Result
	err := r.db.First(&result, "exam_id = ? AND student_id = ?", examID, studentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) List(opts ResultListOptions) ([]models.Result, int64, error) {
	query := r.db.Model(&models.Result{})
	if opts.ExamID != "" {
		query = query.Where("exam_id = ?", opts.ExamID)
	}
	if opts.StudentID != "" {
		query = query.Where("student_id = ?", opts.StudentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []models.Result
	err := query.Preload("Exam.Subject").Preload("Student.User").Preload("Student.Class").
		Order("graded_at DESC").
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&results).Error
	return results, total, err
}

func (r *resultRepository) ListByExam(examID string) ([]models.Result, error) {
	var results []models.Result
	err := r.db.Where("exam_id = ?", examID).
		Preload("Student.User").Preload("Student.Class").
		Order("percentage DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) ListByStudent(studentID string) ([]models.Result, error) {
	var results []models.Result
	err := r.db.Where("student_id = ?", studentID).
		Preload("Exam.Subject").
		Order("graded_at DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) ListByClass(classID string) ([]models.Result, error) {
	var results []models.Result
	err := r.db.
		Joins("JOIN students ON students.id = results.student_id").
		Where("students.class_id = ?", classID).
		Preload("Exam.Subject").Preload("Student.User").
		Order("results.graded_at DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) ListBySubject(subjectID string) ([]models.Result, error) {
	var results []models.Result
	err := r.db.
		Joins("JOIN exams ON exams.id = results.exam_id").
		Where("exams.subject_id = ?", subjectID).
		Preload("Exam.Subject").Preload("Student.User").Preload("Student.Class").
		Order("results.graded_at DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) ListRecentByStudent(studentID string, limit int) ([]models.Result, error) {
	var results []models.Result
	err := r.db.Where("student_id = ?", studentID).
		Preload("Exam.Subject").
		Order("graded_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}

func (r *resultRepository) GradeDistributionByExam(examID string) ([]GradeCount, error) {
	var distribution []GradeCount
	err := r.db.Model(&models.Result{}).
		Where("exam_id = ?", examID).
		Select("grade, COUNT(grade) AS count").
		Group("grade").
		Scan(&distribution).Error
	return distribution, err
}

func (r *resultRepository) Count(studentID string) (int64, error) {
	query := r.db.Model(&models.Result{})
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}
