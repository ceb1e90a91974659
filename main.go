package main

import (
	"Shoebox/database"
	"Shoebox/internal/routers"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	server, err := InitializeServer()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseDatabase(server.DB)
	defer server.ThumbnailService.Close()

	server.JanitorService.StartCleanCycle()

	cfg := server.Configuration
	app := fiber.New(fiber.Config{
		BodyLimit:   cfg.Server.RequestConfig.SizeLimit * 1024 * 1024,
		Concurrency: cfg.Server.Concurrency * 1024,
		AppName:     "Shoebox",
	})

	app.Use(logger.New())
	app.Use(cors.New())
	routers.SetupRoutes(app, server)

	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
