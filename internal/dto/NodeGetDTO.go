package dto

type NodeGetDTO struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Path      string        `json:"path"`
	Type      string        `json:"type"`
	IsDeleted bool          `json:"is_deleted"`
	MediaType string        `json:"media_type,omitempty"`
	Size      int64         `json:"size,omitempty"`
	BlobURL   string        `json:"blob_url,omitempty"`
	Children  []*NodeGetDTO `json:"children,omitempty"`
}
