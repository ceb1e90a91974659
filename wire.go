//go:build wireinject
// +build wireinject

package main

import (
	"Shoebox/cmd"
	"Shoebox/database"
	"Shoebox/internal/config"
	"Shoebox/internal/handlers"
	"Shoebox/internal/repository"
	"Shoebox/internal/services"

	"github.com/google/wire"
)

func Provider() (*config.Configuration, error) {
	return config.LoadConfiguration("shoebox.yaml")
}

func InitializeServer() (*cmd.Server, error) {
	wire.Build(
		cmd.NewServer,
		database.SetupDatabase,
		repository.NewBlobRepository,
		repository.NewSnapshotRepository,
		services.NewLogService,
		services.NewWorkspaceService,
		services.NewIngestService,
		services.NewThumbnailService,
		services.NewSnapshotService,
		services.NewLibraryService,
		services.NewJanitorService,
		handlers.NewWorkspaceHandler,
		handlers.NewSnapshotHandler,
		handlers.NewLibraryHandler,
		handlers.NewBlobHandler,
		Provider,
	)
	return nil, nil
}
