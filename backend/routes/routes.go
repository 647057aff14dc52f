package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"project/backend/config"
	"project/backend/controllers"
	"project/backend/realtime"
	"project/backend/store"
)

func SetupRoutes(app *fiber.App, st *store.Store, cfg *config.Config, rt *realtime.Handler) {
	// Read path: consumed by the page renderer, no broker involvement
	trackerController := controllers.NewTrackerController(st, cfg)
	app.Get("/api/questions", trackerController.GetQuestions)
	app.Get("/api/dashboard", trackerController.GetDashboard)
	app.Get("/api/contests", trackerController.GetContests)

	// Real-time channel
	app.Use("/ws", realtime.Upgrade)
	app.Get("/ws", websocket.New(rt.Serve))
}
