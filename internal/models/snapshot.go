package models

// SnapshotExt is the file extension of exported workspace snapshots.
const SnapshotExt = ".afm"

// SerializedNode is one entry of the portable snapshot document. The
// document is a single JSON tree: metadata copied verbatim from the
// workspace nodes, plus an inline thumbnail per viewable file. A file
// whose thumbnail could not be produced is kept with ThumbnailData
// empty so the tree shape survives the failure.
type SerializedNode struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Path          string            `json:"path"`
	Type          NodeType          `json:"type"`
	IsDeleted     bool              `json:"isDeleted"`
	Children      []*SerializedNode `json:"children"`
	ThumbnailData string            `json:"thumbnailData,omitempty"`
}
