package controllers

import (
	"github.com/gofiber/fiber/v2"

	"examhub/backend/middleware"
	"examhub/backend/models"
	"examhub/backend/repository"
	"examhub/backend/services"
	"examhub/backend/utils"
)

type ResultController struct {
	Results  *services.ResultService
	Students *services.StudentService
}

func NewResultController(results *services.ResultService, students *services.StudentService) *ResultController {
	return &ResultController{Results: results, Students: students}
}

func (rc *ResultController) List(c *fiber.Ctx) error {
	page, limit, offset := utils.GetPaginationParams(c)

	opts := repository.ResultListOptions{
		ListOptions: repository.ListOptions{Limit: limit, Offset: offset},
		ExamID:      c.Query("examId"),
		StudentID:   c.Query("studentId"),
	}

	// Students only ever see their own results
	user := middleware.CurrentUser(c)
	if user.Role == models.RoleStudent {
		student, err := rc.Students.GetByUserID(user.ID)
		if err != nil {
			return utils.ServiceError(c, err)
		}
		opts.StudentID = student.ID
	}

	results, total, err := rc.Results.List(opts)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Paginate(c, results, total, page, limit)
}

func (rc *ResultController) Get(c *fiber.Ctx) error {
	result, err := rc.Results.GetByID(c.Params("id"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, result)
}

func (rc *ResultController) ListByStudent(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	user := middleware.CurrentUser(c)
	if user.Role == models.RoleStudent {
		student, err := rc.Students.GetByUserID(user.ID)
		if err != nil {
			return utils.ServiceError(c, err)
		}
		if student.ID != studentID {
			return utils.Forbidden(c, "Unauthorized access")
		}
	}

	results, err := rc.Results.ListByStudent(studentID)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, results)
}

func (rc *ResultController) ListByExam(c *fiber.Ctx) error {
	results, err := rc.Results.ListByExam(c.Params("examId"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, results)
}

func (rc *ResultController) ListByClass(c *fiber.Ctx) error {
	results, err := rc.Results.ListByClass(c.Params("classId"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, results)
}

func (rc *ResultController) ListBySubject(c *fiber.Ctx) error {
	results, err := rc.Results.ListBySubject(c.Params("subjectId"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, results)
}

// Report generation and exports are acknowledged but not implemented yet.

func (rc *ResultController) GenerateReport(c *fiber.Ctx) error {
	return utils.SuccessMessage(c, fiber.StatusOK, "Report generated successfully", fiber.Map{})
}

func (rc *ResultController) ExportPDF(c *fiber.Ctx) error {
	return utils.SuccessMessage(c, fiber.StatusOK, "PDF export completed", nil)
}

func (rc *ResultController) ExportCSV(c *fiber.Ctx) error {
	return utils.SuccessMessage(c, fiber.StatusOK, "CSV export completed", nil)
}
