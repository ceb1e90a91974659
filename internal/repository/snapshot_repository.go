package repository

import (
	"Shoebox/internal/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SnapshotRepository interface {
	GenericRepository[models.SnapshotRecord]
	FindByFileName(fileName string) (*models.SnapshotRecord, error)
	FindDeleted() ([]models.SnapshotRecord, error)
	FindDeletedBefore(cutoff time.Time) ([]models.SnapshotRecord, error)
	HardDelete(record *models.SnapshotRecord) error
}

type SnapshotRepositoryImpl struct {
	GenericRepository[models.SnapshotRecord]
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &SnapshotRepositoryImpl{
		GenericRepository: NewGenericRepository[models.SnapshotRecord](db),
		db:                db,
	}
}

func (r *SnapshotRepositoryImpl) FindByFileName(fileName string) (*models.SnapshotRecord, error) {
	var record models.SnapshotRecord
	err := r.db.Where("file_name = ?", fileName).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *SnapshotRepositoryImpl) FindDeleted() ([]models.SnapshotRecord, error) {
	var records []models.SnapshotRecord
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *SnapshotRepositoryImpl) FindDeletedBefore(cutoff time.Time) ([]models.SnapshotRecord, error) {
	var records []models.SnapshotRecord
	err := r.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *SnapshotRepositoryImpl) HardDelete(record *models.SnapshotRecord) error {
	return r.db.Unscoped().Delete(record).Error
}
