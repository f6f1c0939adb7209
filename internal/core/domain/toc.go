package domain

import "fmt"

// TocEntry is one heading in a rendered locale.
type TocEntry struct {
	// ID is "heading-N", N being the heading's position in the document.
	ID    string `json:"id"`
	Level int    `json:"level"`
	Title string `json:"title"`
}

// HeadingID returns the anchor id of the n-th heading (zero-based).
func HeadingID(n int) string {
	return fmt.Sprintf("heading-%d", n)
}

// TocTree is the flat, document-ordered list of headings of one locale.
type TocTree []TocEntry

// TocNode is a heading with the headings nested beneath it.
type TocNode struct {
	Entry    TocEntry   `json:"entry"`
	Children []*TocNode `json:"children,omitempty"`
}

// Nested arranges the flat list into a tree. A heading becomes a child of
// the closest preceding heading with a smaller level.
func (t TocTree) Nested() []*TocNode {
	var roots []*TocNode
	var stack []*TocNode

	for _, entry := range t {
		node := &TocNode{Entry: entry}
		for len(stack) > 0 && stack[len(stack)-1].Entry.Level >= entry.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots
}
