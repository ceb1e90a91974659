package handlers

import (
	"Shoebox/internal/config"
	"Shoebox/internal/mapper"
	"Shoebox/internal/models"
	"Shoebox/internal/services"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

// ExportProgress is streamed over the progress socket while an export
// runs.
type ExportProgress struct {
	Active    bool `json:"active"`
	Processed int  `json:"processed"`
	Total     int  `json:"total"`
}

type SnapshotHandler struct {
	workspaceService services.WorkspaceService
	snapshotService  services.SnapshotService
	libraryService   services.LibraryService
	logService       services.LogService
	configuration    *config.Configuration

	mu       sync.Mutex
	progress ExportProgress
}

func NewSnapshotHandler(
	workspaceService services.WorkspaceService,
	snapshotService services.SnapshotService,
	libraryService services.LibraryService,
	logService services.LogService,
	configuration *config.Configuration,
) *SnapshotHandler {
	return &SnapshotHandler{
		workspaceService: workspaceService,
		snapshotService:  snapshotService,
		libraryService:   libraryService,
		logService:       logService,
		configuration:    configuration,
	}
}

// Export serializes the active workspace into one .afm document, stores
// it in the library and returns it as a download. Only one export runs
// at a time; the gauge driving the progress socket lives here.
func (h *SnapshotHandler) Export(c *fiber.Ctx) error {
	name := c.Query("name", "workspace")

	if !h.beginExport() {
		return c.Status(http.StatusConflict).JSON(map[string]interface{}{"error": "an export is already running"})
	}
	defer h.endExport()

	var artifact []byte
	var thumbnailCount int
	err := h.workspaceService.WithTree(func(root *models.Node) error {
		thumbnailCount = h.snapshotService.CountViewableFiles(root)
		h.setTotal(thumbnailCount)
		data, err := h.snapshotService.Export(root, h.fileDone)
		if err != nil {
			return err
		}
		artifact = data
		return nil
	})
	if err != nil {
		if errors.Is(err, services.ErrNoWorkspace) {
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": err.Error()})
		}
		h.logService.Log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("snapshot export failed")
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "snapshot export failed"})
	}

	maxBytes := int64(h.configuration.Server.SnapshotConfig.MaxExportMB) * 1024 * 1024
	if maxBytes > 0 && int64(len(artifact)) > maxBytes {
		return c.Status(http.StatusRequestEntityTooLarge).JSON(map[string]interface{}{
			"error": "snapshot too large, export fewer folders",
		})
	}

	fileName := name + models.SnapshotExt
	record, err := h.libraryService.Record(name, artifact, thumbnailCount)
	if err != nil {
		h.logService.Log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("snapshot not recorded in library")
	} else {
		fileName = record.FileName
	}

	c.Set(fiber.HeaderContentType, "application/json")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Send(artifact)
}

// Import rebuilds a workspace from an uploaded snapshot, either as the
// raw request body or as a multipart "file" field.
func (h *SnapshotHandler) Import(c *fiber.Ctx) error {
	data := c.Body()
	if fileHeader, err := c.FormFile("file"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "unreadable snapshot upload"})
		}
		defer src.Close()
		data, err = io.ReadAll(src)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "unreadable snapshot upload"})
		}
	}
	if len(data) == 0 {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "empty snapshot"})
	}

	root, files, err := h.snapshotService.Import(data)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSnapshot) {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid snapshot"})
		}
		h.logService.Log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("snapshot import failed")
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "snapshot import failed"})
	}

	h.workspaceService.Load(root, files)
	return c.Status(http.StatusOK).JSON(mapper.ToNodeGetDTO(root))
}

// StreamProgress pushes the export gauge until the client goes away.
func (h *SnapshotHandler) StreamProgress(conn *websocket.Conn) {
	defer conn.Close()
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		if err := conn.WriteJSON(h.Progress()); err != nil {
			return
		}
	}
}

func (h *SnapshotHandler) Progress() ExportProgress {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.progress
}

func (h *SnapshotHandler) beginExport() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.progress.Active {
		return false
	}
	h.progress = ExportProgress{Active: true}
	return true
}

func (h *SnapshotHandler) endExport() {
	h.mu.Lock()
	h.progress.Active = false
	h.mu.Unlock()
}

func (h *SnapshotHandler) setTotal(total int) {
	h.mu.Lock()
	h.progress.Total = total
	h.mu.Unlock()
}

// fileDone is handed to the serializer as its per-file callback.
func (h *SnapshotHandler) fileDone() {
	h.mu.Lock()
	h.progress.Processed++
	h.mu.Unlock()
}
