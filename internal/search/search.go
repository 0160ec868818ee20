// Package search implements highlighting and search over a scanned
// tree: ancestor/descendant/extension highlight sets, and a
// query-matching search that supports a literal case-insensitive
// substring mode or a compiled regular expression.
package search

import (
	"regexp"
	"strings"

	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

// Flags controls how Search matches and which node kinds participate.
type Flags struct {
	UseRegex    bool
	SearchFiles bool
	SearchDirs  bool
}

// HighlightAncestors walks n's parent chain and appends every
// ancestor, n included, to the returned set.
func HighlightAncestors(n *store.Node) []*store.Node {
	var out []*store.Node
	for cur := n; cur != nil; cur = cur.Parent() {
		out = append(out, cur)
	}
	return out
}

// HighlightDescendants walks the leaves under n and appends those that
// pass filter.
func HighlightDescendants(n *store.Node, filter fsmodel.VisibilityFilter) []*store.Node {
	var out []*store.Node
	store.Leaves(n, func(leaf *store.Node) {
		if filter.Accepts(dataOf(leaf).File) {
			out = append(out, leaf)
		}
	})
	return out
}

// HighlightExtensions walks every leaf under root and appends those
// whose extension matches ext.
func HighlightExtensions(root *store.Node, ext string, filter fsmodel.VisibilityFilter) []*store.Node {
	var out []*store.Node
	store.Leaves(root, func(leaf *store.Node) {
		data := dataOf(leaf)
		if !filter.Accepts(data.File) {
			return
		}
		if data.File.Extension == ext {
			out = append(out, leaf)
		}
	})
	return out
}

// Search iterates every node under root, returning those whose name
// matches query under flags. A fresh call never sees state left over
// from a previous one — the caller is responsible for clearing any
// highlight set it maintains between queries.
func Search(root *store.Node, query string, filter fsmodel.VisibilityFilter, flags Flags) ([]*store.Node, error) {
	var matcher func(name string) bool

	if flags.UseRegex {
		re, err := regexp.Compile(query)
		if err != nil {
			return nil, err
		}
		matcher = re.MatchString
	} else {
		needle := strings.ToLower(query)
		matcher = func(name string) bool {
			return strings.Contains(strings.ToLower(name), needle)
		}
	}

	var out []*store.Node
	store.PreOrder(root, func(n *store.Node) bool {
		data := dataOf(n)

		switch data.File.Kind {
		case fsmodel.Directory:
			if !flags.SearchDirs {
				return true
			}
		case fsmodel.Regular:
			if !flags.SearchFiles {
				return true
			}
		}

		if !filter.Accepts(data.File) {
			return true
		}

		// Name already carries the full basename (extension included)
		// for both files and directories, matching what scan.Scanner
		// and treepath store and resolve against.
		if matcher(data.File.Name) {
			out = append(out, n)
		}
		return true
	})

	return out, nil
}

func dataOf(n *store.Node) *fsmodel.VizBlock {
	return n.Data.(*fsmodel.VizBlock)
}
