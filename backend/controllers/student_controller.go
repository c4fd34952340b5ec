package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"examhub/backend/repository"
	"examhub/backend/services"
	"examhub/backend/utils"
)

type StudentController struct {
	Students *services.StudentService
}

func NewStudentController(students *services.StudentService) *StudentController {
	return &StudentController{Students: students}
}

func (sc *StudentController) List(c *fiber.Ctx) error {
	page, limit, offset := utils.GetPaginationParams(c)
	opts := repository.ListOptions{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	students, total, err := sc.Students.List(opts, c.Query("classId"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Paginate(c, students, total, page, limit)
}

func (sc *StudentController) Get(c *fiber.Ctx) error {
	student, err := sc.Students.GetByID(c.Params("id"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, student)
}

func (sc *StudentController) Update(c *fiber.Ctx) error {
	type updateInput struct {
		ClassID     *string    `json:"classId"`
		DateOfBirth *time.Time `json:"dateOfBirth"`
		ParentEmail *string    `json:"parentEmail"`
	}

	var input updateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fields := map[string]interface{}{}
	setField(fields, "class_id", input.ClassID)
	setField(fields, "date_of_birth", input.DateOfBirth)
	setField(fields, "parent_email", input.ParentEmail)
	if len(fields) == 0 {
		return utils.BadRequest(c, "No fields to update")
	}

	student, err := sc.Students.Update(c.Params("id"), fields)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, student)
}

func (sc *StudentController) Delete(c *fiber.Ctx) error {
	if err := sc.Students.Delete(c.Params("id")); err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Student deleted successfully", nil)
}
