package handlers

import (
	"Shoebox/internal/mapper"
	"Shoebox/internal/services"
	"errors"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type WorkspaceHandler struct {
	workspaceService services.WorkspaceService
	ingestService    services.IngestService
	logService       services.LogService
}

func NewWorkspaceHandler(
	workspaceService services.WorkspaceService,
	ingestService services.IngestService,
	logService services.LogService,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		ingestService:    ingestService,
		logService:       logService,
	}
}

// UploadWorkspace replaces the active workspace with the uploaded
// directory. Browsers sending a directory put the relative path in each
// part's file name.
func (h *WorkspaceHandler) UploadWorkspace(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid multipart form"})
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "no files in upload"})
	}

	entries := make([]services.FileEntry, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		src, err := fileHeader.Open()
		if err != nil {
			h.logService.Log.WithFields(logrus.Fields{
				"file":  fileHeader.Filename,
				"error": err.Error(),
			}).Warn("skipping unreadable upload entry")
			continue
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			h.logService.Log.WithFields(logrus.Fields{
				"file":  fileHeader.Filename,
				"error": err.Error(),
			}).Warn("skipping unreadable upload entry")
			continue
		}
		entries = append(entries, services.FileEntry{
			RelPath:   fileHeader.Filename,
			Data:      data,
			MediaType: fileHeader.Header.Get("Content-Type"),
		})
	}

	root, files := h.ingestService.Build(entries)
	if len(files) == 0 {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "no image files in upload"})
	}
	h.workspaceService.Load(root, files)
	return c.Status(http.StatusCreated).JSON(mapper.ToNodeGetDTO(root))
}

func (h *WorkspaceHandler) GetTree(c *fiber.Ctx) error {
	root, err := h.workspaceService.Root()
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(mapper.ToNodeGetDTO(root))
}

func (h *WorkspaceHandler) ListFiles(c *fiber.Ctx) error {
	includeDeleted := c.Query("deleted", "true") != "false"
	files, err := h.workspaceService.Files(includeDeleted)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(mapper.ToNodeGetDTOs(files))
}

func (h *WorkspaceHandler) GetNode(c *fiber.Ctx) error {
	node, err := h.workspaceService.FindByPath(c.Params("*"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(mapper.ToNodeGetDTO(node))
}

func (h *WorkspaceHandler) ToggleDeleted(c *fiber.Ctx) error {
	node, err := h.workspaceService.ToggleDeleted(c.Params("*"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoWorkspace), errors.Is(err, services.ErrNodeNotFound):
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": err.Error()})
		case errors.Is(err, services.ErrNotFile):
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": err.Error()})
		default:
			return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
		}
	}
	return c.JSON(mapper.ToNodeGetDTO(node))
}

func (h *WorkspaceHandler) ResetWorkspace(c *fiber.Ctx) error {
	h.workspaceService.Reset()
	return c.SendStatus(http.StatusNoContent)
}
