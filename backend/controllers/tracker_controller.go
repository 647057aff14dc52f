package controllers

import (
	"github.com/gofiber/fiber/v2"

	"project/backend/config"
	"project/backend/models"
	"project/backend/services"
	"project/backend/store"
	"project/backend/utils"
)

type TrackerController struct {
	Store *store.Store
	Cfg   *config.Config
}

func NewTrackerController(st *store.Store, cfg *config.Config) *TrackerController {
	return &TrackerController{Store: st, Cfg: cfg}
}

// GetQuestions godoc
// @Summary List a category's questions grouped by day
// @Description Returns the ordered day groups plus the dashboard snapshot used to render the sheet page
// @Tags tracker
// @Produce json
// @Param category query string false "category tag, defaults to striver"
// @Success 200 {object} map[string]interface{}
// @Router /questions [get]
func (tc *TrackerController) GetQuestions(c *fiber.Ctx) error {
	category := models.ResolveCategory(c.Query("category"))

	questions, err := tc.Store.FindQuestions(category)
	if err != nil {
		return utils.InternalServerError(c, "Could not query questions")
	}

	dashboard, err := services.BuildDashboard(tc.Store, category)
	if err != nil {
		return utils.InternalServerError(c, "Could not build dashboard")
	}

	return c.JSON(fiber.Map{
		"category":      category,
		"days":          services.GroupQuestionsByDay(questions),
		"dashboard":     dashboard,
		"user_one_name": tc.Cfg.UserOneName,
		"user_two_name": tc.Cfg.UserTwoName,
	})
}

// GetDashboard godoc
// @Summary Get the dashboard snapshot for a category
// @Tags tracker
// @Produce json
// @Param category query string false "category tag, defaults to striver"
// @Success 200 {object} map[string]interface{}
// @Router /dashboard [get]
func (tc *TrackerController) GetDashboard(c *fiber.Ctx) error {
	category := models.ResolveCategory(c.Query("category"))

	dashboard, err := services.DashboardFor(tc.Store, category)
	if err != nil {
		return utils.InternalServerError(c, "Could not build dashboard")
	}

	return c.JSON(fiber.Map{
		"dashboard":     dashboard,
		"user_one_name": tc.Cfg.UserOneName,
		"user_two_name": tc.Cfg.UserTwoName,
		"category":      category,
	})
}

// GetContests godoc
// @Summary List contest entries with the contest dashboard
// @Tags tracker
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /contests [get]
func (tc *TrackerController) GetContests(c *fiber.Ctx) error {
	contests, err := tc.Store.ListContests()
	if err != nil {
		return utils.InternalServerError(c, "Could not query contests")
	}

	dashboard, err := services.BuildContestDashboard(tc.Store)
	if err != nil {
		return utils.InternalServerError(c, "Could not build dashboard")
	}

	return c.JSON(fiber.Map{
		"contests":      contests,
		"dashboard":     dashboard,
		"user_one_name": tc.Cfg.UserOneName,
		"user_two_name": tc.Cfg.UserTwoName,
		"category":      models.CategoryContest,
	})
}
