package routers

import (
	"Shoebox/cmd"

	"github.com/gofiber/fiber/v2"
)

func SetupWorkspaceRouter(app *fiber.App, server *cmd.Server) {
	workspaceHandler := server.WorkspaceHandler
	app.Post("/workspace", workspaceHandler.UploadWorkspace)
	app.Delete("/workspace", workspaceHandler.ResetWorkspace)
	app.Get("/workspace/tree", workspaceHandler.GetTree)
	app.Get("/workspace/files", workspaceHandler.ListFiles)
	app.Get("/workspace/nodes/*", workspaceHandler.GetNode)
	app.Patch("/workspace/files/*", workspaceHandler.ToggleDeleted)
}
