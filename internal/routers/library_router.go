package routers

import (
	"Shoebox/cmd"

	"github.com/gofiber/fiber/v2"
)

func SetupLibraryRouter(app *fiber.App, server *cmd.Server) {
	libraryHandler := server.LibraryHandler
	app.Get("/library", libraryHandler.ListSnapshots)
	app.Get("/library/:id", libraryHandler.GetSnapshot)
	app.Get("/library/:id/download", libraryHandler.DownloadSnapshot)
	app.Post("/library/:id/restore", libraryHandler.RestoreSnapshot)
	app.Delete("/library/:id", libraryHandler.TrashSnapshot)
}
