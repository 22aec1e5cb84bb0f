package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sportconnect-backend/middleware"
	"sportconnect-backend/services"
)

func SetupSportRoutes(api fiber.Router, sportService *services.SportService, jwtSecret string) {
	sports := api.Group("/sports")

	// 🔓 Public reads
	sports.Get("/", sportService.ListSports)
	sports.Get("/:id", sportService.GetSport)

	// 🔐 Writes need authentication only
	sports.Post("/", middleware.RequireAuth(jwtSecret), sportService.CreateSport)
	sports.Patch("/:id", middleware.RequireAuth(jwtSecret), sportService.UpdateSport)
	sports.Delete("/:id", middleware.RequireAuth(jwtSecret), sportService.DeleteSport)
}
