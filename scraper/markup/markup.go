// Package markup is a small tree-query layer over goquery. It lets callers
// describe which nodes they need by tag, class and attribute predicate
// without touching selector strings or the parser directly.
package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Predicate tests an attribute value.
type Predicate func(value string) bool

// HasPrefix matches attribute values starting with prefix.
func HasPrefix(prefix string) Predicate {
	return func(v string) bool { return strings.HasPrefix(v, prefix) }
}

// Equals matches one exact attribute value.
func Equals(want string) Predicate {
	return func(v string) bool { return v == want }
}

// Present matches any value, so only the attribute's presence counts.
func Present() Predicate {
	return func(string) bool { return true }
}

// Node is a matched element, or an empty match when nothing was found.
// Queries on an empty node return empty nodes.
type Node struct {
	sel *goquery.Selection
}

// Parse builds a document tree from HTML text.
func Parse(html string) (*Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("markup: parse: %w", err)
	}
	return &Node{sel: doc.Selection}, nil
}

// Exists reports whether the node matched anything.
func (n *Node) Exists() bool { return n != nil && n.sel != nil && n.sel.Length() > 0 }

// FindAll returns every descendant with the given tag carrying class. An
// empty class matches any element of that tag.
func (n *Node) FindAll(tag, class string) []*Node {
	if !n.Exists() {
		return nil
	}
	var out []*Node
	n.sel.Find(selector(tag, class)).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Node{sel: s})
	})
	return out
}

// Find returns the first descendant matching tag and class.
func (n *Node) Find(tag, class string) *Node {
	if !n.Exists() {
		return &Node{}
	}
	return &Node{sel: n.sel.Find(selector(tag, class)).First()}
}

// FindByAttr returns the first descendant with the given tag whose attr
// satisfies pred.
func (n *Node) FindByAttr(tag, attr string, pred Predicate) *Node {
	all := n.FindAllByAttr(tag, attr, pred)
	if len(all) == 0 {
		return &Node{}
	}
	return all[0]
}

// FindAllByAttr returns every descendant with the given tag whose attr
// satisfies pred, in document order.
func (n *Node) FindAllByAttr(tag, attr string, pred Predicate) []*Node {
	if !n.Exists() {
		return nil
	}
	var out []*Node
	n.sel.Find(tag).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr(attr); ok && pred(v) {
			out = append(out, &Node{sel: s})
		}
	})
	return out
}

// Text returns the node's concatenated text with surrounding whitespace trimmed.
func (n *Node) Text() string {
	if !n.Exists() {
		return ""
	}
	return strings.TrimSpace(n.sel.Text())
}

// Attr returns an attribute value of the node.
func (n *Node) Attr(name string) (string, bool) {
	if !n.Exists() {
		return "", false
	}
	return n.sel.Attr(name)
}

func selector(tag, class string) string {
	if class == "" {
		return tag
	}
	return tag + "." + class
}
