package services

import (
	"Shoebox/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngestService_BuildTree(t *testing.T) {
	blobRepo := repository.NewBlobRepository()
	ingest := NewIngestService(blobRepo, newTestLogService())

	root, files := ingest.Build([]FileEntry{
		{RelPath: "photos/a.png", Data: []byte{1}, MediaType: "image/png"},
		{RelPath: "photos/sub/b.png", Data: []byte{2}, MediaType: "image/png"},
	})

	assert.Len(t, files, 2)
	assert.Len(t, root.Children, 1)

	photos := root.Children[0]
	assert.Equal(t, "photos", photos.Name)
	assert.Equal(t, "photos", photos.Path)
	assert.Equal(t, "/photos", photos.ID)
	assert.True(t, photos.IsFolder())
	assert.Len(t, photos.Children, 2)

	a := photos.Children[0]
	assert.Equal(t, "a.png", a.Name)
	assert.Equal(t, "photos/a.png", a.Path)
	assert.Equal(t, "photos/a.png", a.ID)
	assert.True(t, a.IsFile())

	sub := photos.Children[1]
	assert.Equal(t, "sub", sub.Name)
	assert.True(t, sub.IsFolder())
	assert.Len(t, sub.Children, 1)
	assert.Equal(t, "photos/sub/b.png", sub.Children[0].Path)

	// accumulator keeps upload order
	assert.Same(t, a, files[0])
	assert.Same(t, sub.Children[0], files[1])
}

func TestIngestService_FolderReuse(t *testing.T) {
	blobRepo := repository.NewBlobRepository()
	ingest := NewIngestService(blobRepo, newTestLogService())

	root, files := ingest.Build([]FileEntry{
		{RelPath: "photos/a.png", Data: []byte{1}, MediaType: "image/png"},
		{RelPath: "photos/b.png", Data: []byte{2}, MediaType: "image/png"},
	})

	assert.Len(t, files, 2)
	assert.Len(t, root.Children, 1)
	assert.Len(t, root.Children[0].Children, 2)
}

func TestIngestService_SkipsHiddenAndNonImages(t *testing.T) {
	blobRepo := repository.NewBlobRepository()
	ingest := NewIngestService(blobRepo, newTestLogService())

	root, files := ingest.Build([]FileEntry{
		{RelPath: "photos/.DS_Store", Data: []byte{1}, MediaType: "application/octet-stream"},
		{RelPath: "photos/.hidden.png", Data: []byte{1}, MediaType: "image/png"},
		{RelPath: "photos/readme.txt", Data: []byte{1}, MediaType: "text/plain"},
		{RelPath: "photos/movie.mp4", Data: []byte{1}, MediaType: "video/mp4"},
		{RelPath: "photos/keep.png", Data: []byte{1}, MediaType: "image/png"},
		{RelPath: "", Data: []byte{1}, MediaType: "image/png"},
	})

	assert.Len(t, files, 1)
	assert.Equal(t, "photos/keep.png", files[0].Path)
	// the folder was still created once, nothing else leaked in
	assert.Len(t, root.Children, 1)
	assert.Len(t, root.Children[0].Children, 1)
	// skipped entries never got handles
	assert.Equal(t, 1, blobRepo.Len())
}

func TestIngestService_MediaTypeFallback(t *testing.T) {
	blobRepo := repository.NewBlobRepository()
	ingest := NewIngestService(blobRepo, newTestLogService())

	_, files := ingest.Build([]FileEntry{
		{RelPath: "a.png", Data: []byte{1}},
		{RelPath: "b.jpg", Data: []byte{1}, MediaType: "application/octet-stream"},
		{RelPath: "c.unknownext", Data: []byte{1}},
	})

	assert.Len(t, files, 2)
	assert.Equal(t, "image/png", files[0].MediaType)
	assert.Equal(t, "image/jpeg", files[1].MediaType)
}

func TestIngestService_EagerHandles(t *testing.T) {
	blobRepo := repository.NewBlobRepository()
	ingest := NewIngestService(blobRepo, newTestLogService())

	_, files := ingest.Build([]FileEntry{
		{RelPath: "a.png", Data: []byte{1, 2, 3}, MediaType: "image/png"},
	})

	assert.Len(t, files, 1)
	blob, ok := blobRepo.Get(files[0].BlobID)
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, blob.Data)
	assert.Equal(t, "image/png", blob.MediaType)
}

func TestIngestService_DuplicatePathsKept(t *testing.T) {
	blobRepo := repository.NewBlobRepository()
	ingest := NewIngestService(blobRepo, newTestLogService())

	root, files := ingest.Build([]FileEntry{
		{RelPath: "photos/a.png", Data: []byte{1}, MediaType: "image/png"},
		{RelPath: "photos/a.png", Data: []byte{2}, MediaType: "image/png"},
	})

	// files never merge; both entries survive with the same identifier
	assert.Len(t, files, 2)
	assert.Len(t, root.Children[0].Children, 2)
	assert.Equal(t, files[0].ID, files[1].ID)
	assert.NotEqual(t, files[0].BlobID, files[1].BlobID)
}

func TestIngestService_EmptyUpload(t *testing.T) {
	blobRepo := repository.NewBlobRepository()
	ingest := NewIngestService(blobRepo, newTestLogService())

	root, files := ingest.Build(nil)

	assert.NotNil(t, root)
	assert.Empty(t, files)
	assert.Empty(t, root.Children)
}
