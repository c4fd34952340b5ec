package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"examhub/backend/models"
	"examhub/backend/repository"
	"examhub/backend/services"
	"examhub/backend/utils"
)

type SubjectController struct {
	Subjects *services.SubjectService
	Validate *validator.Validate
}

func NewSubjectController(subjects *services.SubjectService, validate *validator.Validate) *SubjectController {
	return &SubjectController{Subjects: subjects, Validate: validate}
}

func (sc *SubjectController) Create(c *fiber.Ctx) error {
	var subject models.Subject
	if err := c.BodyParser(&subject); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := sc.Validate.Struct(subject); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	if err := sc.Subjects.Create(&subject); err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Created(c, subject)
}

func (sc *SubjectController) List(c *fiber.Ctx) error {
	page, limit, offset := utils.GetPaginationParams(c)
	opts := repository.ListOptions{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	subjects, total, err := sc.Subjects.List(opts)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Paginate(c, subjects, total, page, limit)
}

func (sc *SubjectController) Get(c *fiber.Ctx) error {
	subject, err := sc.Subjects.GetByID(c.Params("id"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, subject)
}

func (sc *SubjectController) Update(c *fiber.Ctx) error {
	type updateInput struct {
		Name        *string `json:"name"`
		Code        *string `json:"code"`
		Description *string `json:"description"`
		TeacherID   *string `json:"teacherId"`
		ClassName   *string `json:"class"`
	}

	var input updateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fields := map[string]interface{}{}
	setField(fields, "name", input.Name)
	setField(fields, "code", input.Code)
	setField(fields, "description", input.Description)
	setField(fields, "teacher_id", input.TeacherID)
	setField(fields, "class_name", input.ClassName)
	if len(fields) == 0 {
		return utils.BadRequest(c, "No fields to update")
	}

	subject, err := sc.Subjects.Update(c.Params("id"), fields)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, subject)
}

func (sc *SubjectController) Delete(c *fiber.Ctx) error {
	if err := sc.Subjects.Delete(c.Params("id")); err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Subject deleted successfully", nil)
}
