package services

import (
	"Shoebox/internal/helpers"
	"Shoebox/internal/models"
	"Shoebox/internal/repository"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// ProgressFunc is called once per viewable file after its thumbnail
// attempt finishes, whether or not the attempt produced a thumbnail.
type ProgressFunc func()

// SnapshotService turns the workspace tree into a single portable JSON
// document and back. Export re-encodes every viewable file through the
// transcoder one at a time; import rebuilds a fully working tree from
// nothing but the document.
type SnapshotService interface {
	Export(root *models.Node, onProgress ProgressFunc) ([]byte, error)
	Import(data []byte) (*models.Node, []*models.Node, error)
	CountViewableFiles(root *models.Node) int
}

type SnapshotServiceImpl struct {
	thumbnailService ThumbnailService
	blobRepository   repository.BlobRepository
	logService       LogService
}

func NewSnapshotService(
	thumbnailService ThumbnailService,
	blobRepository repository.BlobRepository,
	logService LogService,
) SnapshotService {
	return &SnapshotServiceImpl{
		thumbnailService: thumbnailService,
		blobRepository:   blobRepository,
		logService:       logService,
	}
}

func (s *SnapshotServiceImpl) Export(root *models.Node, onProgress ProgressFunc) ([]byte, error) {
	doc, err := s.serializeNode(root, onProgress)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// serializeNode walks the tree parent-first. A file whose thumbnail
// attempt fails is kept in the document with no payload; only a dead
// transcoder aborts the whole export.
func (s *SnapshotServiceImpl) serializeNode(node *models.Node, onProgress ProgressFunc) (*models.SerializedNode, error) {
	doc := &models.SerializedNode{
		ID:        node.ID,
		Name:      node.Name,
		Path:      node.Path,
		Type:      node.Type,
		IsDeleted: node.IsDeleted,
		Children:  make([]*models.SerializedNode, 0, len(node.Children)),
	}

	if node.IsFile() && node.Data != nil {
		thumbnail, err := s.thumbnailService.Generate(node.Data)
		if err != nil {
			if errors.Is(err, ErrTranscoderClosed) {
				return nil, fmt.Errorf("serialize %q: %w", node.Path, err)
			}
			s.logService.Log.WithFields(logrus.Fields{
				"path":  node.Path,
				"error": err.Error(),
			}).Warn("thumbnail generation failed, keeping node without payload")
		}
		doc.ThumbnailData = thumbnail
		if onProgress != nil {
			onProgress()
		}
	}

	for _, child := range node.Children {
		childDoc, err := s.serializeNode(child, onProgress)
		if err != nil {
			return nil, err
		}
		doc.Children = append(doc.Children, childDoc)
	}
	return doc, nil
}

// Import parses and rebuilds in one pass. Any defect, from malformed
// JSON to a corrupt payload deep in the tree, fails the whole import;
// handles created before the failure are released again so a rejected
// document leaves no trace.
func (s *SnapshotServiceImpl) Import(data []byte) (*models.Node, []*models.Node, error) {
	var doc models.SerializedNode
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if doc.Type != models.NodeTypeFolder || doc.Path != "" {
		return nil, nil, fmt.Errorf("%w: root must be a folder with an empty path", ErrInvalidSnapshot)
	}

	files := make([]*models.Node, 0)
	root, err := s.buildNode(&doc, nil, &files)
	if err != nil {
		for _, file := range files {
			if file.BlobID != "" {
				s.blobRepository.Release(file.BlobID)
			}
		}
		return nil, nil, err
	}
	return root, files, nil
}

func (s *SnapshotServiceImpl) buildNode(doc *models.SerializedNode, parent *models.Node, files *[]*models.Node) (*models.Node, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: null node", ErrInvalidSnapshot)
	}
	switch doc.Type {
	case models.NodeTypeFile, models.NodeTypeFolder:
	default:
		return nil, fmt.Errorf("%w: unknown node type %q", ErrInvalidSnapshot, doc.Type)
	}
	if doc.Type == models.NodeTypeFile && len(doc.Children) > 0 {
		return nil, fmt.Errorf("%w: file node %q has children", ErrInvalidSnapshot, doc.Path)
	}

	node := &models.Node{
		ID:        doc.ID,
		Name:      doc.Name,
		Path:      doc.Path,
		Type:      doc.Type,
		IsDeleted: doc.IsDeleted,
		Parent:    parent,
		Children:  make([]*models.Node, 0, len(doc.Children)),
	}

	// A file without a payload stays in the tree but is not viewable
	// and gets no handle.
	if doc.Type == models.NodeTypeFile && doc.ThumbnailData != "" {
		mediaType, raw, err := helpers.DecodeDataURL(doc.ThumbnailData)
		if err != nil {
			return nil, fmt.Errorf("%w: thumbnail of %q: %v", ErrInvalidSnapshot, doc.Path, err)
		}
		node.Data = raw
		node.MediaType = mediaType
		node.BlobID = s.blobRepository.Create(raw, mediaType)
		*files = append(*files, node)
	}

	for _, childDoc := range doc.Children {
		child, err := s.buildNode(childDoc, node, files)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// CountViewableFiles reports how many transcodes a full export of root
// will attempt. Drives the progress total.
func (s *SnapshotServiceImpl) CountViewableFiles(root *models.Node) int {
	count := 0
	root.Walk(func(node *models.Node) {
		if node.IsFile() && node.Data != nil {
			count++
		}
	})
	return count
}
