package services

import (
	"Shoebox/internal/helpers"
	"Shoebox/internal/models"
	"Shoebox/internal/repository"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoWorkspace  = errors.New("no active workspace")
	ErrNodeNotFound = errors.New("node not found")
	ErrNotFile      = errors.New("only file nodes can be marked deleted")
)

// DeletionObserver is called after a file's deletion flag flips, with
// the node already updated.
type DeletionObserver func(node *models.Node)

// WorkspaceService owns the active tree. Loading a new tree or
// resetting releases every displayable handle of the old one, children
// before parents, so nothing keeps serving bytes for a workspace that
// no longer exists.
type WorkspaceService interface {
	Load(root *models.Node, files []*models.Node)
	Root() (*models.Node, error)
	Files(includeDeleted bool) ([]*models.Node, error)
	FileCount() int
	FindByPath(path string) (*models.Node, error)
	ToggleDeleted(path string) (*models.Node, error)
	Reset()
	Subscribe(observer DeletionObserver)
	WithTree(fn func(root *models.Node) error) error
}

type WorkspaceServiceImpl struct {
	blobRepository repository.BlobRepository
	logService     LogService

	mu        sync.RWMutex
	root      *models.Node
	files     []*models.Node
	observers []DeletionObserver
}

func NewWorkspaceService(blobRepository repository.BlobRepository, logService LogService) WorkspaceService {
	return &WorkspaceServiceImpl{
		blobRepository: blobRepository,
		logService:     logService,
	}
}

func (s *WorkspaceServiceImpl) Load(root *models.Node, files []*models.Node) {
	s.mu.Lock()
	old := s.root
	s.root = root
	s.files = files
	s.mu.Unlock()

	if old != nil {
		s.releaseTree(old)
	}
	s.logService.Log.WithFields(logrus.Fields{
		"files": len(files),
	}).Info("workspace loaded")
}

func (s *WorkspaceServiceImpl) Root() (*models.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.root == nil {
		return nil, ErrNoWorkspace
	}
	return s.root, nil
}

func (s *WorkspaceServiceImpl) Files(includeDeleted bool) ([]*models.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.root == nil {
		return nil, ErrNoWorkspace
	}
	files := make([]*models.Node, 0, len(s.files))
	for _, file := range s.files {
		if !includeDeleted && file.IsDeleted {
			continue
		}
		files = append(files, file)
	}
	return files, nil
}

func (s *WorkspaceServiceImpl) FileCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

func (s *WorkspaceServiceImpl) FindByPath(path string) (*models.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.root == nil {
		return nil, ErrNoWorkspace
	}
	node := s.root.FindByPath(helpers.SplitPath(path))
	if node == nil {
		return nil, ErrNodeNotFound
	}
	return node, nil
}

// ToggleDeleted flips the deletion flag of the file at path. Observers
// run after the lock is dropped, so they may call back into the service.
func (s *WorkspaceServiceImpl) ToggleDeleted(path string) (*models.Node, error) {
	node, observers, err := s.toggleLocked(path)
	if err != nil {
		return nil, err
	}
	for _, observer := range observers {
		observer(node)
	}
	s.logService.Log.WithFields(logrus.Fields{
		"path":    node.Path,
		"deleted": node.IsDeleted,
	}).Debug("deletion flag toggled")
	return node, nil
}

func (s *WorkspaceServiceImpl) toggleLocked(path string) (*models.Node, []DeletionObserver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == nil {
		return nil, nil, ErrNoWorkspace
	}
	node := s.root.FindByPath(helpers.SplitPath(path))
	if node == nil {
		return nil, nil, ErrNodeNotFound
	}
	if !node.IsFile() {
		return nil, nil, ErrNotFile
	}
	node.IsDeleted = !node.IsDeleted
	observers := make([]DeletionObserver, len(s.observers))
	copy(observers, s.observers)
	return node, observers, nil
}

func (s *WorkspaceServiceImpl) Reset() {
	s.mu.Lock()
	old := s.root
	s.root = nil
	s.files = nil
	s.mu.Unlock()

	if old != nil {
		s.releaseTree(old)
		s.logService.Log.Info("workspace cleared")
	}
}

func (s *WorkspaceServiceImpl) Subscribe(observer DeletionObserver) {
	s.mu.Lock()
	s.observers = append(s.observers, observer)
	s.mu.Unlock()
}

// WithTree runs fn against the current root under a read lock. Writers
// wait until fn returns, which keeps the tree stable for a whole export.
func (s *WorkspaceServiceImpl) WithTree(fn func(root *models.Node) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.root == nil {
		return ErrNoWorkspace
	}
	return fn(s.root)
}

// releaseTree releases handles bottom-up. Clearing BlobID keeps a
// second pass over the same node from releasing twice.
func (s *WorkspaceServiceImpl) releaseTree(node *models.Node) {
	for _, child := range node.Children {
		s.releaseTree(child)
	}
	if node.IsFile() && node.BlobID != "" {
		s.blobRepository.Release(node.BlobID)
		node.BlobID = ""
		node.Data = nil
	}
}
