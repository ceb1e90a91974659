package routers

import (
	"Shoebox/cmd"

	"github.com/gofiber/fiber/v2"
)

func SetupBlobRouter(app *fiber.App, server *cmd.Server) {
	blobHandler := server.BlobHandler
	app.Get("/blobs/:id", blobHandler.GetBlob)
}
