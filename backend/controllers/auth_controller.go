package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"examhub/backend/middleware"
	"examhub/backend/services"
	"examhub/backend/utils"
)

type AuthController struct {
	Auth     *services.AuthService
	Validate *validator.Validate
}

func NewAuthController(auth *services.AuthService, validate *validator.Validate) *AuthController {
	return &AuthController{Auth: auth, Validate: validate}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account plus the student or teacher record for its role
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.RegisterInput true "Registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ac.Validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	user, err := ac.Auth.Register(input)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Created(c, user)
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns access and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ac.Validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	user, tokens, err := ac.Auth.Login(input.Email, input.Password)
	if err != nil {
		return utils.ServiceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

func (ac *AuthController) Refresh(c *fiber.Ctx) error {
	type RefreshInput struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	var input RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ac.Validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	tokens, err := ac.Auth.Refresh(input.RefreshToken)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, tokens)
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	current, err := ac.Auth.CurrentUser(user.ID)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, current)
}

// validationDetails flattens validator errors into a field -> message map.
func validationDetails(err error) map[string]string {
	details := make(map[string]string)
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = "failed on " + fieldErr.Tag()
		}
		return details
	}
	details["body"] = err.Error()
	return details
}
