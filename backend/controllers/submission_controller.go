package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"examhub/backend/middleware"
	"examhub/backend/models"
	"examhub/backend/services"
	"examhub/backend/utils"
)

type SubmissionController struct {
	Submissions *services.SubmissionService
	Grading     *services.GradingService
	Students    *services.StudentService
	Validate    *validator.Validate
}

func NewSubmissionController(
	submissions *services.SubmissionService,
	grading *services.GradingService,
	students *services.StudentService,
	validate *validator.Validate,
) *SubmissionController {
	return &SubmissionController{
		Submissions: submissions,
		Grading:     grading,
		Students:    students,
		Validate:    validate,
	}
}

// Submit godoc
// @Summary Submit answers for an exam
// @Description Records the calling student's attempt; each student gets one attempt per exam
// @Tags submissions
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/submissions [post]
func (sc *SubmissionController) Submit(c *fiber.Ctx) error {
	type submitInput struct {
		ExamID  string           `json:"examId" validate:"required"`
		Answers models.AnswerMap `json:"answers"`
	}

	var input submitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := sc.Validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	user := middleware.CurrentUser(c)
	student, err := sc.Students.GetByUserID(user.ID)
	if err != nil {
		return utils.ServiceError(c, err)
	}

	submission, err := sc.Submissions.Submit(input.ExamID, student.ID, input.Answers)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, "Exam submitted successfully", submission)
}

func (sc *SubmissionController) Get(c *fiber.Ctx) error {
	submission, err := sc.Submissions.GetByID(c.Params("id"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, submission)
}

func (sc *SubmissionController) ListByExam(c *fiber.Ctx) error {
	includeAnswers := c.QueryBool("includeAnswers", false)
	submissions, err := sc.Submissions.ListByExam(c.Params("examId"), includeAnswers)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, submissions)
}

// ListByStudent returns a student's submissions. Students may only list
// their own.
func (sc *SubmissionController) ListByStudent(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	user := middleware.CurrentUser(c)
	if user.Role == models.RoleStudent {
		student, err := sc.Students.GetByUserID(user.ID)
		if err != nil {
			return utils.ServiceError(c, err)
		}
		if student.ID != studentID {
			return utils.Forbidden(c, "Unauthorized access")
		}
	}

	submissions, err := sc.Submissions.ListByStudent(studentID)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, submissions)
}

// Grade godoc
// @Summary Manually grade a submission
// @Description Records a score once; a graded submission cannot be regraded
// @Tags submissions
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/submissions/{id}/grade [post]
func (sc *SubmissionController) Grade(c *fiber.Ctx) error {
	type gradeInput struct {
		Score    int    `json:"score" validate:"min=0"`
		Feedback string `json:"feedback"`
	}

	var input gradeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := sc.Validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	user := middleware.CurrentUser(c)
	submission, err := sc.Grading.GradeSubmission(c.Params("id"), input.Score, input.Feedback, user.ID)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Submission graded successfully", submission)
}

// BulkGrade grades many submissions of one exam in a single call. Entries
// succeed or fail independently.
func (sc *SubmissionController) BulkGrade(c *fiber.Ctx) error {
	type bulkInput struct {
		Grades []services.BulkGradeEntry `json:"grades" validate:"required,min=1"`
	}

	var input bulkInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := sc.Validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	results := sc.Grading.BulkGrade(c.Params("examId"), input.Grades)
	return utils.Success(c, fiber.StatusOK, results)
}

// UpdateViolations overwrites a submission's proctoring violation count.
func (sc *SubmissionController) UpdateViolations(c *fiber.Ctx) error {
	type violationsInput struct {
		Violations int `json:"violations" validate:"min=0"`
	}

	var input violationsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := sc.Validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	submission, err := sc.Submissions.UpdateViolations(c.Params("id"), input.Violations)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, submission)
}
