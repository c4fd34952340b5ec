package routes

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"examhub/backend/config"
	"examhub/backend/controllers"
	"examhub/backend/middleware"
	"examhub/backend/repository"
	"examhub/backend/services"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	validate := validator.New()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	examRepo := repository.NewExamRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	resultRepo := repository.NewResultRepository(db)

	// Services
	clock := services.SystemClock{}
	authService := services.NewAuthService(userRepo, studentRepo, teacherRepo, classRepo, cfg)
	studentService := services.NewStudentService(studentRepo, classRepo)
	teacherService := services.NewTeacherService(teacherRepo)
	classService := services.NewClassService(classRepo)
	subjectService := services.NewSubjectService(subjectRepo)
	examService := services.NewExamService(examRepo, questionRepo, submissionRepo, studentRepo, clock)
	questionService := services.NewQuestionService(questionRepo, examRepo)
	gradingService := services.NewGradingService(submissionRepo, examRepo, resultRepo, clock)
	submissionService := services.NewSubmissionService(submissionRepo, examRepo, gradingService, clock, logger)
	resultService := services.NewResultService(resultRepo, examRepo)
	analyticsService := services.NewAnalyticsService(studentRepo, teacherRepo, examRepo, submissionRepo, resultRepo)

	// Controllers
	authController := controllers.NewAuthController(authService, validate)
	studentController := controllers.NewStudentController(studentService)
	teacherController := controllers.NewTeacherController(teacherService)
	classController := controllers.NewClassController(classService, validate)
	subjectController := controllers.NewSubjectController(subjectService, validate)
	examController := controllers.NewExamController(examService, teacherService, studentService, validate)
	questionController := controllers.NewQuestionController(questionService, validate)
	submissionController := controllers.NewSubmissionController(submissionService, gradingService, studentService, validate)
	resultController := controllers.NewResultController(resultService, studentService)
	analyticsController := controllers.NewAnalyticsController(analyticsService)

	// Operational endpoints
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Middleware
	auth := middleware.Authenticate(cfg, userRepo)
	adminOnly := middleware.AdminOnly()
	teacherOrAdmin := middleware.TeacherOrAdmin()
	studentOnly := middleware.StudentOnly()

	// Auth routes
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/refresh", authController.Refresh)
	app.Get("/api/auth/me", auth, authController.Me)

	// Student routes
	students := app.Group("/api/students", auth)
	students.Get("/", teacherOrAdmin, studentController.List)
	students.Get("/:id", studentController.Get)
	students.Put("/:id", adminOnly, studentController.Update)
	students.Delete("/:id", adminOnly, studentController.Delete)

	// Teacher routes
	teachers := app.Group("/api/teachers", auth)
	teachers.Get("/", teacherController.List)
	teachers.Get("/:id", teacherController.Get)
	teachers.Put("/:id", adminOnly, teacherController.Update)
	teachers.Delete("/:id", adminOnly, teacherController.Delete)

	// Class routes
	classes := app.Group("/api/classes", auth)
	classes.Get("/", classController.List)
	classes.Get("/:id", classController.Get)
	classes.Post("/", adminOnly, classController.Create)
	classes.Put("/:id", adminOnly, classController.Update)
	classes.Delete("/:id", adminOnly, classController.Delete)

	// Subject routes
	subjects := app.Group("/api/subjects", auth)
	subjects.Get("/", subjectController.List)
	subjects.Get("/:id", subjectController.Get)
	subjects.Post("/", adminOnly, subjectController.Create)
	subjects.Put("/:id", adminOnly, subjectController.Update)
	subjects.Delete("/:id", adminOnly, subjectController.Delete)

	// Exam routes
	exams := app.Group("/api/exams", auth)
	exams.Get("/", teacherOrAdmin, examController.List)
	exams.Get("/result/exams", examController.ListWithResults)
	exams.Get("/student/:studentId", examController.ForStudent)
	exams.Get("/:id", examController.Get)
	exams.Post("/", teacherOrAdmin, examController.Create)
	exams.Put("/:id", teacherOrAdmin, examController.Update)
	exams.Delete("/:id", teacherOrAdmin, examController.Delete)
	exams.Patch("/:id/status", teacherOrAdmin, examController.UpdateStatus)
	exams.Post("/:id/questions", teacherOrAdmin, examController.ReplaceQuestions)
	exams.Post("/:id/questions/import-csv", teacherOrAdmin, examController.ImportQuestionsCSV)
	exams.Get("/:id/statistics", teacherOrAdmin, examController.Statistics)

	// Question routes
	questions := app.Group("/api/questions", auth, teacherOrAdmin)
	questions.Post("/", questionController.Create)
	questions.Get("/", questionController.List)
	questions.Get("/:id", questionController.Get)
	questions.Put("/:id", questionController.Update)
	questions.Delete("/:id", questionController.Delete)

	// Submission routes
	submissions := app.Group("/api/submissions", auth)
	submissions.Post("/", studentOnly, submissionController.Submit)
	submissions.Get("/exam/:examId", teacherOrAdmin, submissionController.ListByExam)
	submissions.Post("/exam/:examId/bulk-grade", teacherOrAdmin, submissionController.BulkGrade)
	submissions.Get("/student/:studentId", submissionController.ListByStudent)
	submissions.Get("/:id", submissionController.Get)
	submissions.Post("/:id/grade", teacherOrAdmin, submissionController.Grade)
	submissions.Patch("/:id/violations", submissionController.UpdateViolations)

	// Result routes
	results := app.Group("/api/results", auth)
	results.Get("/", resultController.List)
	results.Get("/exam/:examId", teacherOrAdmin, resultController.ListByExam)
	results.Get("/student/:studentId", resultController.ListByStudent)
	results.Get("/class/:classId", teacherOrAdmin, resultController.ListByClass)
	results.Get("/subject/:subjectId", teacherOrAdmin, resultController.ListBySubject)
	results.Post("/report", teacherOrAdmin, resultController.GenerateReport)
	results.Post("/export/pdf", teacherOrAdmin, resultController.ExportPDF)
	results.Post("/export/csv", teacherOrAdmin, resultController.ExportCSV)
	results.Get("/:id", resultController.Get)

	// Analytics routes
	analytics := app.Group("/api/analytics", auth)
	analytics.Get("/dashboard/:role", analyticsController.Dashboard)
	analytics.Get("/exam/:examId", teacherOrAdmin, analyticsController.ExamAnalytics)
}
