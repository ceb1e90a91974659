package models

// SnapshotRecord is the catalog row for one exported snapshot kept in
// the library. The JSON artifact itself lives on disk under the library
// path; FileName is its name there.
type SnapshotRecord struct {
	BaseModel
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	FileName  string `gorm:"type:varchar(255);not null;unique" json:"file_name"`
	FileCount int    `gorm:"default:0" json:"file_count"`
	Size      int64  `gorm:"default:0" json:"size"`
	SHA256    string `gorm:"type:char(64)" json:"sha256,omitempty"`
}
