package mailbox

import (
	"sort"
	"strings"

	"papertrail/internal/domain/models"
)

// BuildTree transforms a flat document collection into a rooted folder
// tree. It is a pure function, rebuilt wholesale on every collection
// change rather than patched: for each document, its folder path is split
// into trimmed segments, nodes are created along the walk, and the record
// attaches to the node the last segment reaches. Malformed paths were
// normalized to "Uncategorized" upstream, so there is no error path.
//
// Documents within a node end up ordered by creation time, newest first,
// independent of input order.
func BuildTree(documents []models.Document) *models.FolderNode {
	root := &models.FolderNode{
		Children: make(map[string]*models.FolderNode),
	}

	for _, doc := range documents {
		segments := doc.PathSegments()
		node := root
		for i, segment := range segments {
			child, ok := node.Children[segment]
			if !ok {
				child = &models.FolderNode{
					Name:     segment,
					Path:     strings.Join(segments[:i+1], "/"),
					Children: make(map[string]*models.FolderNode),
				}
				node.Children[segment] = child
			}
			node = child
		}
		node.Documents = append(node.Documents, doc)
	}

	sortDocuments(root)
	return root
}

// sortDocuments orders every node's documents newest first, breaking ties
// by ID for determinism.
func sortDocuments(node *models.FolderNode) {
	sort.SliceStable(node.Documents, func(i, j int) bool {
		a, b := node.Documents[i], node.Documents[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	for _, child := range node.Children {
		sortDocuments(child)
	}
}

// NodeAt walks the tree from root by the given segments. A missing
// segment yields nil, not an error; an empty path yields the root.
func NodeAt(root *models.FolderNode, path []string) *models.FolderNode {
	node := root
	for _, segment := range path {
		child, ok := node.Children[segment]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// SortedChildren returns a node's children ordered lexicographically by
// segment name, for stable rendering.
func SortedChildren(node *models.FolderNode) []*models.FolderNode {
	children := make([]*models.FolderNode, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, child)
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})
	return children
}
