package services

import (
	"Shoebox/internal/helpers"
	"Shoebox/internal/models"
	"Shoebox/internal/repository"

	"github.com/sirupsen/logrus"
)

// FileEntry is one uploaded file: the folder-separated path relative to
// the chosen directory plus the raw bytes.
type FileEntry struct {
	RelPath   string
	Data      []byte
	MediaType string
}

type IngestService interface {
	Build(entries []FileEntry) (*models.Node, []*models.Node)
}

type IngestServiceImpl struct {
	blobRepository repository.BlobRepository
	logService     LogService
}

func NewIngestService(blobRepository repository.BlobRepository, logService LogService) IngestService {
	return &IngestServiceImpl{
		blobRepository: blobRepository,
		logService:     logService,
	}
}

// Build assembles a fresh tree from the entries in upload order.
// Dotfiles and entries without an image media type are dropped here and
// never reach the tree. Folder segments are reused across entries;
// file entries are never merged, a path uploaded twice yields two
// nodes. Every accepted file gets its displayable handle immediately.
func (s *IngestServiceImpl) Build(entries []FileEntry) (*models.Node, []*models.Node) {
	root := models.NewTree()
	files := make([]*models.Node, 0, len(entries))

	for _, entry := range entries {
		segments := helpers.SplitPath(entry.RelPath)
		if len(segments) == 0 {
			continue
		}
		name := segments[len(segments)-1]
		mediaType := entry.MediaType
		if mediaType == "" || mediaType == "application/octet-stream" {
			// clients that do not sniff send the generic default
			mediaType = helpers.MediaTypeForName(name)
		}
		if helpers.IsHiddenName(name) || !helpers.IsImageMediaType(mediaType) {
			s.logService.Log.WithFields(logrus.Fields{
				"path":       entry.RelPath,
				"media_type": mediaType,
			}).Debug("entry skipped during ingest")
			continue
		}

		parent := root
		for _, segment := range segments[:len(segments)-1] {
			folder := parent.FindChildFolder(segment)
			if folder == nil {
				folder = models.NewFolderNode(parent, segment)
				parent.AddChild(folder)
			}
			parent = folder
		}

		file := models.NewFileNode(parent, name, entry.Data, mediaType)
		file.BlobID = s.blobRepository.Create(entry.Data, mediaType)
		parent.AddChild(file)
		files = append(files, file)
	}

	return root, files
}
