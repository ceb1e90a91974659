package routers

import (
	"Shoebox/cmd"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func SetupSnapshotRouter(app *fiber.App, server *cmd.Server) {
	snapshotHandler := server.SnapshotHandler
	app.Post("/snapshots/export", snapshotHandler.Export)
	app.Post("/snapshots/import", snapshotHandler.Import)

	app.Use("/snapshots/progress", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/snapshots/progress", websocket.New(snapshotHandler.StreamProgress))
}
