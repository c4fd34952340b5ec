package services

import (
	"examhub/backend/models"
	"examhub/backend/repository"
)

const dashboardRecentLimit = 5

type AdminDashboard struct {
	TotalStudents    int64         `json:"totalStudents"`
	TotalTeachers    int64         `json:"totalTeachers"`
	TotalExams       int64         `json:"totalExams"`
	TotalSubmissions int64         `json:"totalSubmissions"`
	RecentExams      []models.Exam `json:"recentExams"`
}

type TeacherDashboard struct {
	TotalExams       int64         `json:"totalExams"`
	TotalSubmissions int64         `json:"totalSubmissions"`
	RecentExams      []models.Exam `json:"recentExams"`
}

type StudentDashboard struct {
	TotalSubmissions int64           `json:"totalSubmissions"`
	TotalResults     int64           `json:"totalResults"`
	RecentResults    []models.Result `json:"recentResults"`
}

type ExamAnalytics struct {
	TotalSubmissions  int64                   `json:"totalSubmissions"`
	AverageScore      float64                 `json:"averageScore"`
	HighestScore      int                     `json:"highestScore"`
	LowestScore       int                     `json:"lowestScore"`
	GradeDistribution []repository.GradeCount `json:"gradeDistribution"`
}

type AnalyticsService struct {
	students    repository.StudentRepository
	teachers    repository.TeacherRepository
	exams       repository.ExamRepository
	submissions repository.SubmissionRepository
	results     repository.ResultRepository
}

func NewAnalyticsService(
	students repository.StudentRepository,
	teachers repository.TeacherRepository,
	exams repository.ExamRepository,
	submissions repository.SubmissionRepository,
	results repository.ResultRepository,
) *AnalyticsService {
	return &AnalyticsService{
		students:    students,
		teachers:    teachers,
		exams:       exams,
		submissions: submissions,
		results:     results,
	}
}

func (s *AnalyticsService) AdminDashboard() (*AdminDashboard, error) {
	totalStudents, err := s.students.Count()
	if err != nil {
		return nil, err
	}
	totalTeachers, err := s.teachers.Count()
	if err != nil {
		return nil, err
	}
	totalExams, err := s.exams.Count("")
	if err != nil {
		return nil, err
	}
	totalSubmissions, err := s.submissions.Count("")
	if err != nil {
		return nil, err
	}
	recent, err := s.exams.ListRecent(dashboardRecentLimit, "")
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalStudents:    totalStudents,
		TotalTeachers:    totalTeachers,
		TotalExams:       totalExams,
		TotalSubmissions: totalSubmissions,
		RecentExams:      recent,
	}, nil
}

// TeacherDashboard summarizes the exams authored by the teacher behind the
// given user account.
func (s *AnalyticsService) TeacherDashboard(userID string) (*TeacherDashboard, error) {
	teacher, err := s.teachers.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, models.ErrTeacherNotFound
	}

	totalExams, err := s.exams.Count(teacher.ID)
	if err != nil {
		return nil, err
	}
	totalSubmissions, err := s.submissions.CountByExamAuthor(teacher.ID)
	if err != nil {
		return nil, err
	}
	recent, err := s.exams.ListRecent(dashboardRecentLimit, teacher.ID)
	if err != nil {
		return nil, err
	}

	return &TeacherDashboard{
		TotalExams:       totalExams,
		TotalSubmissions: totalSubmissions,
		RecentExams:      recent,
	}, nil
}

func (s *AnalyticsService) StudentDashboard(userID string) (*StudentDashboard, error) {
	student, err := s.students.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, models.ErrStudentNotFound
	}

	totalSubmissions, err := s.submissions.Count(student.ID)
	if err != nil {
		return nil, err
	}
	totalResults, err := s.results.Count(student.ID)
	if err != nil {
		return nil, err
	}
	recent, err := s.results.ListRecentByStudent(student.ID, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}

	return &StudentDashboard{
		TotalSubmissions: totalSubmissions,
		TotalResults:     totalResults,
		RecentResults:    recent,
	}, nil
}

// ExamAnalytics reports score spread and grade distribution for one exam.
func (s *AnalyticsService) ExamAnalytics(examID string) (*ExamAnalytics, error) {
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
	average, err := s.submissions.AverageScoreByExam(examID)
	if err != nil {
		return nil, err
	}
	highest, lowest, err := s.submissions.ScoreBoundsByExam(examID)
	if err != nil {
		return nil, err
	}
	distribution, err := s.results.GradeDistributionByExam(examID)
	if err != nil {
		return nil, err
	}

	return &ExamAnalytics{
		TotalSubmissions:  total,
		AverageScore:      average,
		HighestScore:      highest,
		LowestScore:       lowest,
		GradeDistribution: distribution,
	}, nil
}
