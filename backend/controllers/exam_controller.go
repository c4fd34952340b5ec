package controllers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"examhub/backend/middleware"
	"examhub/backend/models"
	"examhub/backend/repository"
	"examhub/backend/services"
	"examhub/backend/utils"
)

type ExamController struct {
	Exams    *services.ExamService
	Teachers *services.TeacherService
	Students *services.StudentService
	Validate *validator.Validate
}

func NewExamController(
	exams *services.ExamService,
	teachers *services.TeacherService,
	students *services.StudentService,
	validate *validator.Validate,
) *ExamController {
	return &ExamController{
		Exams:    exams,
		Teachers: teachers,
		Students: students,
		Validate: validate,
	}
}

type createExamInput struct {
	FormData  models.Exam       `json:"formData"`
	Questions []models.Question `json:"questions"`
}

// Create godoc
// @Summary Create an exam with its questions
// @Tags exams
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/exams [post]
func (ec *ExamController) Create(c *fiber.Ctx) error {
	var input createExamInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ec.Validate.Struct(input.FormData); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	user := middleware.CurrentUser(c)
	if user.Role == models.RoleTeacher {
		teacher, err := ec.Teachers.GetByUserID(user.ID)
		if err != nil {
			return utils.ServiceError(c, err)
		}
		if input.FormData.AuthorID == nil || *input.FormData.AuthorID != teacher.ID {
			return utils.Forbidden(c, "Teachers can only create exams for themselves")
		}
	}

	exam, err := ec.Exams.Create(&input.FormData, input.Questions)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Created(c, exam)
}

func (ec *ExamController) List(c *fiber.Ctx) error {
	page, limit, offset := utils.GetPaginationParams(c)

	opts := repository.ExamListOptions{
		ListOptions: repository.ListOptions{
			Search: c.Query("search"),
			Limit:  limit,
			Offset: offset,
		},
		Status:   c.Query("status"),
		ExamType: c.Query("examType"),
	}

	// Teachers only see their own exams
	user := middleware.CurrentUser(c)
	if user.Role == models.RoleTeacher {
		teacher, err := ec.Teachers.GetByUserID(user.ID)
		if err != nil {
			return utils.ServiceError(c, err)
		}
		opts.AuthorID = teacher.ID
	}

	exams, total, err := ec.Exams.List(opts)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Paginate(c, exams, total, page, limit)
}

func (ec *ExamController) Get(c *fiber.Ctx) error {
	includeQuestions := c.QueryBool("includeQuestions", false)
	exam, err := ec.Exams.GetByID(c.Params("id"), includeQuestions)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, exam)
}

func (ec *ExamController) Update(c *fiber.Ctx) error {
	type updateInput struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		ExamType    *string    `json:"examType"`
		SubjectID   *string    `json:"subjectId"`
		ClassID     *string    `json:"classId"`
		Duration    *int       `json:"duration"`
		StartDate   *time.Time `json:"startDate"`
		EndDate     *time.Time `json:"endDate"`
	}

	var input updateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fields := map[string]interface{}{}
	setField(fields, "title", input.Title)
	setField(fields, "description", input.Description)
	setField(fields, "exam_type", input.ExamType)
	setField(fields, "subject_id", input.SubjectID)
	setField(fields, "class_id", input.ClassID)
	setField(fields, "duration", input.Duration)
	setField(fields, "start_date", input.StartDate)
	setField(fields, "end_date", input.EndDate)
	if len(fields) == 0 {
		return utils.BadRequest(c, "No fields to update")
	}

	exam, err := ec.Exams.Update(c.Params("id"), fields)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, exam)
}

func (ec *ExamController) Delete(c *fiber.Ctx) error {
	if err := ec.Exams.Delete(c.Params("id")); err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Exam deleted successfully", nil)
}

// UpdateStatus godoc
// @Summary Move an exam along its lifecycle
// @Description draft -> published -> active -> completed, with published allowed back to draft
// @Tags exams
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/exams/{id}/status [patch]
func (ec *ExamController) UpdateStatus(c *fiber.Ctx) error {
	type statusInput struct {
		Status models.ExamStatus `json:"status" validate:"required,oneof=draft published active completed"`
	}

	var input statusInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ec.Validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	exam, err := ec.Exams.UpdateStatus(c.Params("id"), input.Status)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, exam)
}

func (ec *ExamController) ReplaceQuestions(c *fiber.Ctx) error {
	type questionsInput struct {
		Questions []models.Question `json:"questions" validate:"required,min=1,dive"`
	}

	var input questionsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ec.Validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	exam, err := ec.Exams.ReplaceQuestions(c.Params("id"), input.Questions)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, exam)
}

// ImportQuestionsCSV replaces an exam's questions from an uploaded CSV file.
func (ec *ExamController) ImportQuestionsCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "Missing CSV file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.BadRequest(c, "Cannot open uploaded file")
	}
	defer file.Close()

	questions, err := utils.ParseQuestionsFromCSV(file)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	if len(questions) == 0 {
		return utils.BadRequest(c, "CSV contains no questions")
	}

	exam, err := ec.Exams.ReplaceQuestions(c.Params("id"), questions)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Questions imported successfully", exam)
}

func (ec *ExamController) Statistics(c *fiber.Ctx) error {
	stats, err := ec.Exams.Statistics(c.Params("id"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats)
}

// ForStudent lists the exams a student can currently take. Students may
// only query their own.
func (ec *ExamController) ForStudent(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	user := middleware.CurrentUser(c)
	if user.Role == models.RoleStudent {
		student, err := ec.Students.GetByUserID(user.ID)
		if err != nil {
			return utils.ServiceError(c, err)
		}
		if student.ID != studentID {
			return utils.Forbidden(c, "Unauthorized access")
		}
	}

	exams, err := ec.Exams.ListForStudent(studentID)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, exams)
}

// ListWithResults returns a slim exam listing with each exam's results,
// for the results overview screen.
func (ec *ExamController) ListWithResults(c *fiber.Ctx) error {
	page, limit, offset := utils.GetPaginationParams(c)

	exams, total, err := ec.Exams.ListWithResults(repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Paginate(c, exams, total, page, limit)
}
