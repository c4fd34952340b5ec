package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"examhub/backend/models"
	"examhub/backend/repository"
	"examhub/backend/services"
	"examhub/backend/utils"
)

type ClassController struct {
	Classes  *services.ClassService
	Validate *validator.Validate
}

func NewClassController(classes *services.ClassService, validate *validator.Validate) *ClassController {
	return &ClassController{Classes: classes, Validate: validate}
}

func (cc *ClassController) Create(c *fiber.Ctx) error {
	var class models.Class
	if err := c.BodyParser(&class); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := cc.Validate.Struct(class); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	if err := cc.Classes.Create(&class); err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Created(c, class)
}

func (cc *ClassController) List(c *fiber.Ctx) error {
	page, limit, offset := utils.GetPaginationParams(c)
	opts := repository.ListOptions{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	classes, total, err := cc.Classes.List(opts)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Paginate(c, classes, total, page, limit)
}

func (cc *ClassController) Get(c *fiber.Ctx) error {
	class, err := cc.Classes.GetByID(c.Params("id"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, class)
}

func (cc *ClassController) Update(c *fiber.Ctx) error {
	type updateInput struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		TeacherID   *string `json:"teacherId"`
	}

	var input updateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fields := map[string]interface{}{}
	setField(fields, "name", input.Name)
	setField(fields, "description", input.Description)
	setField(fields, "teacher_id", input.TeacherID)
	if len(fields) == 0 {
		return utils.BadRequest(c, "No fields to update")
	}

	class, err := cc.Classes.Update(c.Params("id"), fields)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, class)
}

func (cc *ClassController) Delete(c *fiber.Ctx) error {
	if err := cc.Classes.Delete(c.Params("id")); err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Class deleted successfully", nil)
}
