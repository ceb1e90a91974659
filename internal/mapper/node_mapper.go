package mapper

import (
	"Shoebox/internal/dto"
	"Shoebox/internal/models"
)

// ToNodeGetDTO converts a tree node and everything below it. A node is
// viewable only while it still holds bytes and a live handle; BlobURL
// stays empty otherwise.
func ToNodeGetDTO(node *models.Node) *dto.NodeGetDTO {
	childrenDTOs := make([]*dto.NodeGetDTO, 0, len(node.Children))
	for _, child := range node.Children {
		childrenDTOs = append(childrenDTOs, ToNodeGetDTO(child))
	}

	nodeDTO := &dto.NodeGetDTO{
		ID:        node.ID,
		Name:      node.Name,
		Path:      node.Path,
		Type:      string(node.Type),
		IsDeleted: node.IsDeleted,
		MediaType: node.MediaType,
		Size:      int64(len(node.Data)),
		Children:  childrenDTOs,
	}
	if node.BlobID != "" {
		nodeDTO.BlobURL = "/blobs/" + node.BlobID
	}
	return nodeDTO
}

// ToNodeGetDTOs converts a flat list without descending into children.
func ToNodeGetDTOs(nodes []*models.Node) []*dto.NodeGetDTO {
	nodeDTOs := make([]*dto.NodeGetDTO, 0, len(nodes))
	for _, node := range nodes {
		nodeDTO := ToNodeGetDTO(node)
		nodeDTO.Children = nil
		nodeDTOs = append(nodeDTOs, nodeDTO)
	}
	return nodeDTOs
}
