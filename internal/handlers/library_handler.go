package handlers

import (
	"Shoebox/internal/mapper"
	"Shoebox/internal/services"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type LibraryHandler struct {
	libraryService   services.LibraryService
	snapshotService  services.SnapshotService
	workspaceService services.WorkspaceService
	logService       services.LogService
}

func NewLibraryHandler(
	libraryService services.LibraryService,
	snapshotService services.SnapshotService,
	workspaceService services.WorkspaceService,
	logService services.LogService,
) *LibraryHandler {
	return &LibraryHandler{
		libraryService:   libraryService,
		snapshotService:  snapshotService,
		workspaceService: workspaceService,
		logService:       logService,
	}
}

func (h *LibraryHandler) ListSnapshots(c *fiber.Ctx) error {
	records, err := h.libraryService.GetRecords()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(records)
}

func (h *LibraryHandler) GetSnapshot(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid snapshot ID"})
	}
	record, err := h.libraryService.GetRecordByID(uint(id))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "snapshot not found"})
	}
	return c.JSON(record)
}

func (h *LibraryHandler) DownloadSnapshot(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid snapshot ID"})
	}
	record, err := h.libraryService.GetRecordByID(uint(id))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "snapshot not found"})
	}
	artifact, err := h.libraryService.ReadArtifact(record)
	if err != nil {
		h.logService.Log.WithFields(logrus.Fields{
			"file_name": record.FileName,
			"error":     err.Error(),
		}).Error("snapshot artifact unavailable")
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "snapshot artifact unavailable"})
	}
	c.Set(fiber.HeaderContentType, "application/json")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", record.FileName))
	return c.Send(artifact)
}

// RestoreSnapshot loads a recorded snapshot back into the workspace,
// replacing whatever is active.
func (h *LibraryHandler) RestoreSnapshot(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid snapshot ID"})
	}
	record, err := h.libraryService.GetRecordByID(uint(id))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "snapshot not found"})
	}
	artifact, err := h.libraryService.ReadArtifact(record)
	if err != nil {
		h.logService.Log.WithFields(logrus.Fields{
			"file_name": record.FileName,
			"error":     err.Error(),
		}).Error("snapshot artifact unavailable")
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "snapshot artifact unavailable"})
	}

	root, files, err := h.snapshotService.Import(artifact)
	if err != nil {
		h.logService.Log.WithFields(logrus.Fields{
			"file_name": record.FileName,
			"error":     err.Error(),
		}).Error("recorded snapshot no longer restorable")
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "recorded snapshot no longer restorable"})
	}

	h.workspaceService.Load(root, files)
	return c.JSON(mapper.ToNodeGetDTO(root))
}

// TrashSnapshot soft deletes a record; the janitor purges it for good
// once retention runs out.
func (h *LibraryHandler) TrashSnapshot(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid snapshot ID"})
	}
	if err := h.libraryService.DeleteRecord(uint(id)); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.SendStatus(http.StatusNoContent)
}
