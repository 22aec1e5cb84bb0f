package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sportconnect-backend/services"
)

func SetupAuthRoutes(api fiber.Router, authService *services.AuthService) {
	auth := api.Group("/auth")
	auth.Post("/register", authService.Register)
	auth.Post("/token", authService.IssueToken)
	auth.Post("/token/refresh", authService.RefreshToken)
}
