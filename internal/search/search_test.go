package search

import (
	"testing"

	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

func buildTree() *store.Tree {
	tree := store.NewTree(&fsmodel.VizBlock{
		File: fsmodel.FileRecord{Name: "root", Kind: fsmodel.Directory},
	})
	root := tree.Root()

	docs := root.AppendChild(&fsmodel.VizBlock{
		File: fsmodel.FileRecord{Name: "docs", Kind: fsmodel.Directory},
	})
	docs.AppendChild(&fsmodel.VizBlock{
		File: fsmodel.FileRecord{Name: "readme.md", Extension: "md", SizeBytes: 10, Kind: fsmodel.Regular},
	})
	docs.AppendChild(&fsmodel.VizBlock{
		File: fsmodel.FileRecord{Name: "notes.txt", Extension: "txt", SizeBytes: 5, Kind: fsmodel.Regular},
	})
	root.AppendChild(&fsmodel.VizBlock{
		File: fsmodel.FileRecord{Name: "main.go", Extension: "go", SizeBytes: 200, Kind: fsmodel.Regular},
	})

	return tree
}

func names(nodes []*store.Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Data.(*fsmodel.VizBlock).File.Name)
	}
	return out
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func TestHighlightAncestors(t *testing.T) {
	tree := buildTree()
	docs := tree.Root().FirstChild()
	readme := docs.FirstChild()

	got := names(HighlightAncestors(readme))
	want := []string{"readme.md", "docs", "root"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("expected ancestor chain %v, got %v", want, got)
		}
	}
}

func TestHighlightDescendants(t *testing.T) {
	tree := buildTree()
	docs := tree.Root().FirstChild()

	got := names(HighlightDescendants(docs, fsmodel.VisibilityFilter{}))
	if !contains(got, "readme.md") || !contains(got, "notes.txt") {
		t.Fatalf("expected readme.md and notes.txt among descendants, got %v", got)
	}
}

func TestHighlightDescendantsRespectsFilter(t *testing.T) {
	tree := buildTree()
	docs := tree.Root().FirstChild()

	got := names(HighlightDescendants(docs, fsmodel.VisibilityFilter{MinSizeBytes: 8}))
	if contains(got, "notes.txt") {
		t.Fatalf("expected notes.txt (5 bytes) to be filtered out, got %v", got)
	}
	if !contains(got, "readme.md") {
		t.Fatalf("expected readme.md (10 bytes) to survive the filter")
	}
}

func TestHighlightExtensions(t *testing.T) {
	tree := buildTree()
	got := names(HighlightExtensions(tree.Root(), "go", fsmodel.VisibilityFilter{}))
	if len(got) != 1 || got[0] != "main.go" {
		t.Fatalf("expected only main.go, got %v", got)
	}
}

func TestSearchSubstringCaseInsensitive(t *testing.T) {
	tree := buildTree()
	got, err := Search(tree.Root(), "READ", fsmodel.VisibilityFilter{}, Flags{SearchFiles: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(names(got)) != 1 || got[0].Data.(*fsmodel.VizBlock).File.Name != "readme.md" {
		t.Fatalf("expected only readme.md to match, got %v", names(got))
	}
}

func TestSearchRegex(t *testing.T) {
	tree := buildTree()
	got, err := Search(tree.Root(), `^main\.go$`, fsmodel.VisibilityFilter{}, Flags{UseRegex: true, SearchFiles: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 1 || got[0].Data.(*fsmodel.VizBlock).File.Name != "main.go" {
		t.Fatalf("expected only main.go to match, got %v", names(got))
	}
}

func TestSearchInvalidRegexSurfacesError(t *testing.T) {
	tree := buildTree()
	_, err := Search(tree.Root(), "(unclosed", fsmodel.VisibilityFilter{}, Flags{UseRegex: true, SearchFiles: true})
	if err == nil {
		t.Fatalf("expected an error for an invalid regular expression")
	}
}

func TestSearchDirsOptIn(t *testing.T) {
	tree := buildTree()

	got, err := Search(tree.Root(), "docs", fsmodel.VisibilityFilter{}, Flags{SearchFiles: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no directory matches without SearchDirs, got %v", names(got))
	}

	got, err = Search(tree.Root(), "docs", fsmodel.VisibilityFilter{}, Flags{SearchDirs: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 1 || got[0].Data.(*fsmodel.VizBlock).File.Name != "docs" {
		t.Fatalf("expected docs to match with SearchDirs enabled, got %v", names(got))
	}
}

func TestSearchDoesNotAccumulateAcrossCalls(t *testing.T) {
	tree := buildTree()

	first, err := Search(tree.Root(), "main", fsmodel.VisibilityFilter{}, Flags{SearchFiles: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	second, err := Search(tree.Root(), "readme", fsmodel.VisibilityFilter{}, Flags{SearchFiles: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected each independent call to return only its own match, got %v and %v", names(first), names(second))
	}
}
