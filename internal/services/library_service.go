package services

import (
	"Shoebox/internal/config"
	"Shoebox/internal/helpers"
	"Shoebox/internal/models"
	"Shoebox/internal/repository"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LibraryService keeps the catalog of exported snapshots. Rows live in
// the database, the .afm artifacts under the configured library path.
type LibraryService interface {
	Record(name string, artifact []byte, fileCount int) (*models.SnapshotRecord, error)
	GetRecords() ([]models.SnapshotRecord, error)
	GetRecordByID(id uint) (*models.SnapshotRecord, error)
	ReadArtifact(record *models.SnapshotRecord) ([]byte, error)
	DeleteRecord(id uint) error
	GetTrashedBefore(cutoff time.Time) ([]models.SnapshotRecord, error)
	Purge(record *models.SnapshotRecord) error
}

type libraryServiceImpl struct {
	snapshotRepository repository.SnapshotRepository
	configuration      *config.Configuration
	logService         LogService
}

func NewLibraryService(
	snapshotRepository repository.SnapshotRepository,
	configuration *config.Configuration,
	logService LogService,
) LibraryService {
	return &libraryServiceImpl{
		snapshotRepository: snapshotRepository,
		configuration:      configuration,
		logService:         logService,
	}
}

// Record writes the artifact to the library and catalogs it. The file
// lands before the row; if the row fails the file is removed again.
func (s *libraryServiceImpl) Record(name string, artifact []byte, fileCount int) (*models.SnapshotRecord, error) {
	if name == "" {
		name = "workspace"
	}
	fileName := fmt.Sprintf("%s-%s-%s%s",
		slugifyName(name),
		time.Now().UTC().Format("20060102-150405"),
		uuid.NewString()[:8],
		models.SnapshotExt,
	)
	path := filepath.Join(s.configuration.Library.Path, fileName)
	if err := helpers.WriteFileAtomic(path, artifact); err != nil {
		return nil, fmt.Errorf("write snapshot artifact: %w", err)
	}

	record := &models.SnapshotRecord{
		Name:      name,
		FileName:  fileName,
		FileCount: fileCount,
		Size:      int64(len(artifact)),
		SHA256:    helpers.SHA256Hex(artifact),
	}
	if err := s.snapshotRepository.Create(record); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("create snapshot record: %w", err)
	}

	s.logService.Log.WithFields(logrus.Fields{
		"file_name": fileName,
		"size":      record.Size,
	}).Info("snapshot recorded in library")
	return record, nil
}

func (s *libraryServiceImpl) GetRecords() ([]models.SnapshotRecord, error) {
	return s.snapshotRepository.FindAll()
}

func (s *libraryServiceImpl) GetRecordByID(id uint) (*models.SnapshotRecord, error) {
	return s.snapshotRepository.FindByID(id)
}

// ReadArtifact loads the stored document and checks it against the
// recorded digest before handing it out.
func (s *libraryServiceImpl) ReadArtifact(record *models.SnapshotRecord) ([]byte, error) {
	path := filepath.Join(s.configuration.Library.Path, record.FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot artifact: %w", err)
	}
	if record.SHA256 != "" && helpers.SHA256Hex(data) != record.SHA256 {
		return nil, fmt.Errorf("snapshot artifact %s does not match its recorded digest", record.FileName)
	}
	return data, nil
}

func (s *libraryServiceImpl) DeleteRecord(id uint) error {
	return s.snapshotRepository.Delete(id)
}

func (s *libraryServiceImpl) GetTrashedBefore(cutoff time.Time) ([]models.SnapshotRecord, error) {
	return s.snapshotRepository.FindDeletedBefore(cutoff)
}

// Purge removes the artifact and the row for good. A missing artifact
// is not an error, the row alone may have survived a manual cleanup.
func (s *libraryServiceImpl) Purge(record *models.SnapshotRecord) error {
	path := filepath.Join(s.configuration.Library.Path, record.FileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove snapshot artifact: %w", err)
	}
	return s.snapshotRepository.HardDelete(record)
}

func slugifyName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "workspace"
	}
	return slug
}
