package models

type NodeType string

const (
	NodeTypeFile   NodeType = "file"
	NodeTypeFolder NodeType = "folder"
)

// Node is one entry of the in-memory workspace tree. The tree is built
// fresh on every ingest or import and never touches the database; the
// identifier is derived from the parent path once and then kept stable
// for the node's whole life, including across export and import.
type Node struct {
	ID        string
	Name      string
	Path      string
	Type      NodeType
	IsDeleted bool
	Parent    *Node
	Children  []*Node

	// File nodes only. Data holds the raw source bytes when the node is
	// independently viewable; BlobID points at the served copy owned by
	// the tree.
	Data      []byte
	MediaType string
	BlobID    string
}

// NewTree returns an empty workspace root. The root is a folder whose
// name, path and id are all empty.
func NewTree() *Node {
	return &Node{
		Type:     NodeTypeFolder,
		Children: make([]*Node, 0),
	}
}

// NewFolderNode creates a folder under parent without attaching it.
func NewFolderNode(parent *Node, name string) *Node {
	return &Node{
		ID:       NodeIDFor(parent, name),
		Name:     name,
		Path:     NodePathFor(parent, name),
		Type:     NodeTypeFolder,
		Parent:   parent,
		Children: make([]*Node, 0),
	}
}

// NewFileNode creates a file under parent without attaching it.
func NewFileNode(parent *Node, name string, data []byte, mediaType string) *Node {
	return &Node{
		ID:        NodeIDFor(parent, name),
		Name:      name,
		Path:      NodePathFor(parent, name),
		Type:      NodeTypeFile,
		Parent:    parent,
		Children:  make([]*Node, 0),
		Data:      data,
		MediaType: mediaType,
	}
}

// NodePathFor computes the tree path of a child of parent. Children of
// the root are addressed by bare name.
func NodePathFor(parent *Node, name string) string {
	if parent == nil || parent.Path == "" {
		return name
	}
	return parent.Path + "/" + name
}

// NodeIDFor computes the stable identifier of a child of parent. The
// separator is always present, so top-level identifiers carry a leading
// slash. Irregular, but frozen: identifiers round-trip through
// snapshots byte for byte.
func NodeIDFor(parent *Node, name string) string {
	if parent == nil {
		return "/" + name
	}
	return parent.Path + "/" + name
}

func (n *Node) IsFile() bool {
	return n.Type == NodeTypeFile
}

func (n *Node) IsFolder() bool {
	return n.Type == NodeTypeFolder
}

// AddChild appends child to n preserving insertion order.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// FindChildFolder returns the direct child folder with the given name,
// or nil. File children never match, so a file and a folder sharing a
// name do not collide during ingestion.
func (n *Node) FindChildFolder(name string) *Node {
	for _, child := range n.Children {
		if child.IsFolder() && child.Name == name {
			return child
		}
	}
	return nil
}

// FindByPath descends the tree by path segments and returns the node at
// the given path, or nil. The empty path addresses n itself.
func (n *Node) FindByPath(segments []string) *Node {
	current := n
	for _, segment := range segments {
		var next *Node
		for _, child := range current.Children {
			if child.Name == segment {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// Walk visits n and all descendants pre-order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}
