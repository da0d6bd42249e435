package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseDocument parses an HTML document and returns its <html> element.
// The parser synthesises html, head and body when they are missing, so the
// returned node is never nil on success.
func ParseDocument(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	if root := findElement(doc, atom.Html); root != nil {
		return root, nil
	}
	return doc, nil
}

// FromMarkup converts an HTML node into a tree.
//
// Elements become nodes labelled with their tag name. Text becomes a node
// labelled with its trimmed content, unless the trimmed content is empty,
// in which case it is dropped and FromMarkup returns nil. Comments follow
// the text rule unless disabled with WithComments(false). Elements are
// never dropped, even when every child is. A document node is converted
// through its first element child.
func FromMarkup(n *html.Node, opts ...MarkupOption) *domain.Node {
	cfg := markupConfig{comments: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if n != nil && n.Type == html.DocumentNode {
		n = findElement(n, 0)
	}
	if n == nil {
		return nil
	}
	return cfg.convert(n)
}

func (c markupConfig) convert(n *html.Node) *domain.Node {
	switch n.Type {
	case html.ElementNode:
		node := domain.NewNode(n.Data)
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if converted := c.convert(child); converted != nil {
				node.AddChild(converted)
			}
		}
		return node
	case html.TextNode:
		return textLeaf(n.Data)
	case html.CommentNode:
		if c.comments {
			return textLeaf(n.Data)
		}
	}
	return nil
}

func textLeaf(s string) *domain.Node {
	text := strings.TrimSpace(s)
	if text == "" {
		return nil
	}
	return domain.NewNode(text)
}

// findElement returns the first element below n (depth-first) whose atom is a,
// or the first element of any kind when a is zero.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && (a == 0 || n.DataAtom == a) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
