package models

// FolderNode is one node in the mailbox folder tree. Trees are rebuilt
// wholesale from the document collection and never mutated in place; every
// node owns its children outright and holds no back-reference to its parent.
type FolderNode struct {
	// Name is the single path segment this node represents. The root node
	// has an empty name.
	Name string `json:"name"`

	// Path is the full slash-joined address from the root, empty for the
	// root itself.
	Path string `json:"path"`

	// Children maps child segment name to child node.
	Children map[string]*FolderNode `json:"children"`

	// Documents are the records whose folder path resolves exactly to this
	// node, newest first.
	Documents []Document `json:"documents"`
}

// ColumnItemKind discriminates the entries of a browse column.
type ColumnItemKind string

const (
	ColumnItemFolder   ColumnItemKind = "folder"
	ColumnItemDocument ColumnItemKind = "document"
)

// ColumnItem is one entry in a Navigator column: either a folder node or a
// leaf document, as an explicit tagged union.
type ColumnItem struct {
	Kind     ColumnItemKind `json:"kind"`
	Folder   *FolderNode    `json:"folder,omitempty"`
	Document *Document      `json:"document,omitempty"`
}
