package routers

import (
	"Shoebox/cmd"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, server *cmd.Server) {
	SetupWorkspaceRouter(app, server)
	SetupSnapshotRouter(app, server)
	SetupLibraryRouter(app, server)
	SetupBlobRouter(app, server)
	SetupJanitorRouter(app, server)
}
