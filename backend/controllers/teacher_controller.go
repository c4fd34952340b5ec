package controllers

import (
	"github.com/gofiber/fiber/v2"

	"examhub/backend/repository"
	"examhub/backend/services"
	"examhub/backend/utils"
)

type TeacherController struct {
	Teachers *services.TeacherService
}

func NewTeacherController(teachers *services.TeacherService) *TeacherController {
	return &TeacherController{Teachers: teachers}
}

func (tc *TeacherController) List(c *fiber.Ctx) error {
	page, limit, offset := utils.GetPaginationParams(c)
	opts := repository.ListOptions{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	teachers, total, err := tc.Teachers.List(opts)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Paginate(c, teachers, total, page, limit)
}

func (tc *TeacherController) Get(c *fiber.Ctx) error {
	teacher, err := tc.Teachers.GetByID(c.Params("id"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, teacher)
}

func (tc *TeacherController) Update(c *fiber.Ctx) error {
	type updateInput struct {
		Department *string `json:"department"`
	}

	var input updateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fields := map[string]interface{}{}
	setField(fields, "department", input.Department)
	if len(fields) == 0 {
		return utils.BadRequest(c, "No fields to update")
	}

	teacher, err := tc.Teachers.Update(c.Params("id"), fields)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, teacher)
}

func (tc *TeacherController) Delete(c *fiber.Ctx) error {
	if err := tc.Teachers.Delete(c.Params("id")); err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Teacher deleted successfully", nil)
}
