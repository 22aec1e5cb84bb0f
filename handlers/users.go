package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sportconnect-backend/middleware"
	"sportconnect-backend/services"
)

func SetupUserRoutes(api fiber.Router, userService *services.UserService) {
	secret := userService.Cfg.JWTSecret

	users := api.Group("/users", middleware.RequireAuth(secret))

	// Self profile — must be registered before /users/:id.
	users.Get("/me", userService.GetMe)
	users.Patch("/me", userService.UpdateMe)
	users.Delete("/me", userService.DeleteMe)

	// 🔒 Admin-only directory (profiles are not publicly browsable)
	users.Get("/", middleware.RequireAdmin(), userService.ListUsers)
	users.Get("/:id", middleware.RequireAdmin(), userService.GetUser)
}
