package repository

import (
	"sync"

	"github.com/google/uuid"
)

// Blob is a displayable copy of a file's bytes, addressable by handle
// until the owning tree releases it.
type Blob struct {
	Data      []byte
	MediaType string
}

// BlobRepository holds the served blobs in memory. Handles are opaque;
// a released handle is gone for good and a later Release of the same
// handle is a no-op.
type BlobRepository interface {
	Create(data []byte, mediaType string) string
	Get(id string) (*Blob, bool)
	Release(id string) bool
	Len() int
}

type BlobRepositoryImpl struct {
	mu    sync.RWMutex
	blobs map[string]*Blob
}

func NewBlobRepository() BlobRepository {
	return &BlobRepositoryImpl{
		blobs: make(map[string]*Blob),
	}
}

func (r *BlobRepositoryImpl) Create(data []byte, mediaType string) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.blobs[id] = &Blob{Data: data, MediaType: mediaType}
	r.mu.Unlock()
	return id
}

func (r *BlobRepositoryImpl) Get(id string) (*Blob, bool) {
	r.mu.RLock()
	blob, ok := r.blobs[id]
	r.mu.RUnlock()
	return blob, ok
}

// Release drops the blob behind id and reports whether it existed.
func (r *BlobRepositoryImpl) Release(id string) bool {
	r.mu.Lock()
	_, ok := r.blobs[id]
	delete(r.blobs, id)
	r.mu.Unlock()
	return ok
}

func (r *BlobRepositoryImpl) Len() int {
	r.mu.RLock()
	n := len(r.blobs)
	r.mu.RUnlock()
	return n
}
