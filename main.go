package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"sportconnect-backend/config"
	"sportconnect-backend/handlers"
	"sportconnect-backend/models"
	"sportconnect-backend/services"
	"sportconnect-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, enough for profile photos
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Sport{},
		&models.Activity{},
		&models.Participation{},
		&models.RefreshToken{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if cfg.R2Configured() {
		if err := utils.InitR2(cfg); err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
	} else if err := utils.EnsureUploadDir(cfg.UploadDir); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	if err := services.EnsureAdminUser(db, cfg); err != nil {
		log.Fatal("failed to bootstrap admin user:", err)
	}
	if cfg.SeedDemo {
		if err := services.SeedDemo(db); err != nil {
			log.Fatal("failed to seed demo data:", err)
		}
	}

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db, cfg)
	sportService := services.NewSportService(db)
	activityService := services.NewActivityService(db)
	participationService := services.NewParticipationService(db)

	authService.StartTokenCleanup()

	api := app.Group("/api")
	handlers.SetupAuthRoutes(api, authService)
	handlers.SetupUserRoutes(api, userService)
	handlers.SetupSportRoutes(api, sportService, cfg.JWTSecret)
	handlers.SetupActivityRoutes(api, activityService, cfg.JWTSecret)
	handlers.SetupParticipationRoutes(api, participationService, cfg.JWTSecret)

	// Media is served by the app itself only outside production; behind a real
	// deployment the static-file infrastructure owns this path.
	if !cfg.IsProduction() && !cfg.R2Configured() {
		app.Static("/uploads", cfg.UploadDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Println("✅ Refresh token cleanup running (hourly)")
	log.Printf("✅ CORS configured for origins: %s", strings.Join(cfg.AllowedOrigins, ","))

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
