package controllers

import (
	"github.com/gofiber/fiber/v2"

	"examhub/backend/middleware"
	"examhub/backend/models"
	"examhub/backend/services"
	"examhub/backend/utils"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics}
}

// Dashboard godoc
// @Summary Dashboard statistics for a role
// @Tags analytics
// @Produce json
// @Param role path string true "admin, teacher or student"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/analytics/dashboard/{role} [get]
func (ac *AnalyticsController) Dashboard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var (
		stats interface{}
		err   error
	)
	switch c.Params("role") {
	case models.RoleAdmin:
		stats, err = ac.Analytics.AdminDashboard()
	case models.RoleTeacher:
		stats, err = ac.Analytics.TeacherDashboard(user.ID)
	case models.RoleStudent:
		stats, err = ac.Analytics.StudentDashboard(user.ID)
	default:
		return utils.BadRequest(c, "Invalid role specified")
	}
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats)
}

func (ac *AnalyticsController) ExamAnalytics(c *fiber.Ctx) error {
	analytics, err := ac.Analytics.ExamAnalytics(c.Params("examId"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, analytics)
}
