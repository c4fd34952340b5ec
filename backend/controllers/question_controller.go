package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"examhub/backend/models"
	"examhub/backend/services"
	"examhub/backend/utils"
)

type QuestionController struct {
	Questions *services.QuestionService
	Validate  *validator.Validate
}

func NewQuestionController(questions *services.QuestionService, validate *validator.Validate) *QuestionController {
	return &QuestionController{Questions: questions, Validate: validate}
}

func (qc *QuestionController) Create(c *fiber.Ctx) error {
	var question models.Question
	if err := c.BodyParser(&question); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := qc.Validate.Struct(question); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	created, err := qc.Questions.Create(&question)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Created(c, created)
}

func (qc *QuestionController) List(c *fiber.Ctx) error {
	if examID := c.Query("examId"); examID != "" {
		questions, err := qc.Questions.ListByExam(examID)
		if err != nil {
			return utils.ServiceError(c, err)
		}
		return utils.Success(c, fiber.StatusOK, questions)
	}

	questions, err := qc.Questions.List()
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, questions)
}

func (qc *QuestionController) Get(c *fiber.Ctx) error {
	question, err := qc.Questions.GetByID(c.Params("id"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, question)
}

func (qc *QuestionController) Update(c *fiber.Ctx) error {
	var question models.Question
	if err := c.BodyParser(&question); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := qc.Validate.Struct(question); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	updated, err := qc.Questions.Update(c.Params("id"), &question)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, updated)
}

func (qc *QuestionController) Delete(c *fiber.Ctx) error {
	if err := qc.Questions.Delete(c.Params("id")); err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Question deleted successfully", nil)
}
