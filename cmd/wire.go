package cmd

import (
	"Shoebox/internal/config"
	"Shoebox/internal/handlers"
	"Shoebox/internal/repository"
	"Shoebox/internal/services"

	"gorm.io/gorm"
)

type Server struct {
	Configuration    *config.Configuration
	DB               *gorm.DB
	LogService       services.LogService
	BlobRepository   repository.BlobRepository
	WorkspaceService services.WorkspaceService
	IngestService    services.IngestService
	ThumbnailService services.ThumbnailService
	SnapshotService  services.SnapshotService
	LibraryService   services.LibraryService
	JanitorService   *services.Janitor
	WorkspaceHandler *handlers.WorkspaceHandler
	SnapshotHandler  *handlers.SnapshotHandler
	LibraryHandler   *handlers.LibraryHandler
	BlobHandler      *handlers.BlobHandler
}

func NewServer(
	configuration *config.Configuration,
	db *gorm.DB,
	logService services.LogService,
	blobRepository repository.BlobRepository,
	workspaceService services.WorkspaceService,
	ingestService services.IngestService,
	thumbnailService services.ThumbnailService,
	snapshotService services.SnapshotService,
	libraryService services.LibraryService,
	janitorService *services.Janitor,
	workspaceHandler *handlers.WorkspaceHandler,
	snapshotHandler *handlers.SnapshotHandler,
	libraryHandler *handlers.LibraryHandler,
	blobHandler *handlers.BlobHandler,
) *Server {
	return &Server{
		Configuration:    configuration,
		DB:               db,
		LogService:       logService,
		BlobRepository:   blobRepository,
		WorkspaceService: workspaceService,
		IngestService:    ingestService,
		ThumbnailService: thumbnailService,
		SnapshotService:  snapshotService,
		LibraryService:   libraryService,
		JanitorService:   janitorService,
		WorkspaceHandler: workspaceHandler,
		SnapshotHandler:  snapshotHandler,
		LibraryHandler:   libraryHandler,
		BlobHandler:      blobHandler,
	}
}
