package handlers

import (
	"Shoebox/internal/repository"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type BlobHandler struct {
	blobRepository repository.BlobRepository
}

func NewBlobHandler(blobRepository repository.BlobRepository) *BlobHandler {
	return &BlobHandler{blobRepository: blobRepository}
}

// GetBlob serves the displayable bytes behind a handle. Handles die
// with their tree, so a 404 here usually means the workspace moved on.
func (h *BlobHandler) GetBlob(c *fiber.Ctx) error {
	blob, ok := h.blobRepository.Get(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "blob released or unknown"})
	}
	c.Set(fiber.HeaderContentType, blob.MediaType)
	return c.Send(blob.Data)
}
