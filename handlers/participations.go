package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sportconnect-backend/middleware"
	"sportconnect-backend/services"
)

func SetupParticipationRoutes(api fiber.Router, participationService *services.ParticipationService, jwtSecret string) {
	// 🔐 Everything on the ledger needs authentication
	participations := api.Group("/participations", middleware.RequireAuth(jwtSecret))
	participations.Get("/", participationService.ListParticipations)
	participations.Post("/", participationService.CreateParticipation)
	participations.Delete("/:id", participationService.DeleteParticipation)
}
