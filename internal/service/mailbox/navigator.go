package mailbox

import (
	"strings"

	"papertrail/internal/domain/models"
)

// Navigator tracks the currently selected folder path and document for
// multi-column (Finder-style) browsing. It holds selection state only; the
// tree it navigates is supplied per call so the view always derives from
// the latest collection.
type Navigator struct {
	selectedPath       []string
	selectedDocumentID string
}

// NewNavigator creates a navigator at the root with nothing selected.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// SelectedPath returns the segment list from root to the selected folder.
func (n *Navigator) SelectedPath() []string {
	return n.selectedPath
}

// SelectedDocumentID returns the selected document's ID, or "" when no
// document preview is open.
func (n *Navigator) SelectedDocumentID() string {
	return n.selectedDocumentID
}

// SelectPath moves the selection to the folder named by the slash-joined
// path and closes any open document preview. An empty path selects the
// root.
func (n *Navigator) SelectPath(path string) {
	n.selectedPath = splitPath(path)
	n.selectedDocumentID = ""
}

// SelectDocument toggles the document selection: selecting the already
// selected ID closes the preview, a different ID replaces it. The folder
// selection is untouched.
func (n *Navigator) SelectDocument(id string) {
	if n.selectedDocumentID == id {
		n.selectedDocumentID = ""
		return
	}
	n.selectedDocumentID = id
}

// BreadcrumbClick truncates the selection to the clicked breadcrumb:
// index -1 resets to the root, index >= 0 keeps the first index+1
// segments. Any open preview closes.
func (n *Navigator) BreadcrumbClick(index int) {
	n.selectedDocumentID = ""
	if index < 0 {
		n.selectedPath = nil
		return
	}
	if index+1 < len(n.selectedPath) {
		n.selectedPath = n.selectedPath[:index+1]
	}
}

// Columns derives one browse column per prefix of the selected path,
// including the empty prefix for the root. Each column lists the prefix
// node's child folders (lexicographic) followed by its documents (newest
// first). A prefix that no longer resolves — e.g. after a deletion emptied
// a branch — yields an empty column rather than an error.
func (n *Navigator) Columns(root *models.FolderNode) [][]models.ColumnItem {
	columns := make([][]models.ColumnItem, 0, len(n.selectedPath)+1)
	for i := 0; i <= len(n.selectedPath); i++ {
		node := NodeAt(root, n.selectedPath[:i])
		columns = append(columns, columnItems(node))
	}
	return columns
}

func columnItems(node *models.FolderNode) []models.ColumnItem {
	if node == nil {
		return []models.ColumnItem{}
	}

	children := SortedChildren(node)
	items := make([]models.ColumnItem, 0, len(children)+len(node.Documents))
	for _, child := range children {
		items = append(items, models.ColumnItem{Kind: models.ColumnItemFolder, Folder: child})
	}
	for i := range node.Documents {
		items = append(items, models.ColumnItem{Kind: models.ColumnItemDocument, Document: &node.Documents[i]})
	}
	return items
}

func splitPath(path string) []string {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
