// Package treepath reconstructs filesystem paths from tree positions.
// Nodes carry only a name (fsmodel.FileRecord.Name); the absolute path
// of any node is the scan root joined with the names of every node
// between the root and it.
package treepath

import (
	"path/filepath"
	"strings"

	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

// Of returns the absolute path of n, given the absolute path of the
// tree's root.
func Of(root string, n *store.Node) string {
	var parts []string
	for cur := n; cur != nil && cur.Parent() != nil; cur = cur.Parent() {
		parts = append(parts, nameOf(cur))
	}
	if len(parts) == 0 {
		return root
	}
	// parts was built leaf-to-root; reverse it.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return filepath.Join(root, filepath.Join(parts...))
}

// Find walks down from root, matching path components against node
// names, and returns the node at target (which must lie under
// rootPath), or nil if no such node exists.
func Find(rootPath string, root *store.Node, target string) *store.Node {
	rel, err := filepath.Rel(rootPath, target)
	if err != nil {
		return nil
	}
	if rel == "." {
		return root
	}
	if strings.HasPrefix(rel, "..") {
		return nil
	}

	cur := root
	for _, component := range strings.Split(rel, string(filepath.Separator)) {
		if component == "" {
			continue
		}
		next := childNamed(cur, component)
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func childNamed(n *store.Node, name string) *store.Node {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if nameOf(c) == name {
			return c
		}
	}
	return nil
}

func nameOf(n *store.Node) string {
	return n.Data.(*fsmodel.VizBlock).File.Name
}
