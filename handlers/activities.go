package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sportconnect-backend/middleware"
	"sportconnect-backend/services"
)

func SetupActivityRoutes(api fiber.Router, activityService *services.ActivityService, jwtSecret string) {
	activities := api.Group("/activities")

	// 🔐 Creator's own feed — must be registered before /activities/:id.
	activities.Get("/mine", middleware.RequireAuth(jwtSecret), activityService.ListMine)

	// 🔓 Public reads; a token, when present, personalises has_joined
	activities.Get("/", middleware.OptionalAuth(jwtSecret), activityService.ListActivities)
	activities.Get("/:id", middleware.OptionalAuth(jwtSecret), activityService.GetActivity)

	// 🔐 Writes
	activities.Post("/", middleware.RequireAuth(jwtSecret), activityService.CreateActivity)
	activities.Patch("/:id", middleware.RequireAuth(jwtSecret), activityService.UpdateActivity)
	activities.Delete("/:id", middleware.RequireAuth(jwtSecret), activityService.DeleteActivity)
}
