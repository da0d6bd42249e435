package domain

import (
	"fmt"
	"strings"
)

// Style selects how branch prefixes are laid out.
type Style string

const (
	// StyleClassic indents each level by four spaces and replaces the last
	// four columns of the indent with the branch glyph. Ancestor
	// continuation lines are not drawn.
	StyleClassic Style = "classic"

	// StyleGuides draws a "│" guide for every ancestor that still has
	// siblings below it, like the tree(1) command.
	StyleGuides Style = "guides"
)

// Branch glyphs and the indent unit shared by every style.
const (
	GlyphBranch = "├── "
	GlyphLast   = "└── "
	GlyphGuide  = "│   "
	IndentUnit  = "    "
)

// ParseStyle converts a user supplied style name. The empty string maps to
// StyleClassic.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleClassic:
		return StyleClassic, nil
	case StyleGuides:
		return StyleGuides, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
	}
}

// RenderOption configures Render.
type RenderOption func(*renderConfig)

type renderConfig struct {
	style Style
}

// WithStyle selects the prefix layout. Unknown styles fall back to classic.
func WithStyle(style Style) RenderOption {
	return func(c *renderConfig) {
		c.style = style
	}
}

// Render produces the multi-line diagram rooted at n.
// The root's content is printed bare; every descendant gets a branch prefix.
// Lines are joined with "\n" and there is no trailing newline.
func (n *Node) Render(opts ...RenderOption) string {
	cfg := renderConfig{style: StyleClassic}
	for _, opt := range opts {
		opt(&cfg)
	}

	var sb strings.Builder
	sb.WriteString(n.Content)
	switch cfg.style {
	case StyleGuides:
		for i, c := range n.children {
			c.renderGuides(&sb, "", i == len(n.children)-1)
		}
	default:
		for i, c := range n.children {
			c.renderClassic(&sb, 1, i == len(n.children)-1)
		}
	}
	return sb.String()
}

// String renders n in the classic style.
func (n *Node) String() string {
	return n.Render()
}

func (n *Node) renderClassic(sb *strings.Builder, level int, last bool) {
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(IndentUnit, level-1))
	sb.WriteString(glyph(last))
	sb.WriteString(n.Content)

	for i, c := range n.children {
		c.renderClassic(sb, level+1, i == len(n.children)-1)
	}
}

func (n *Node) renderGuides(sb *strings.Builder, prefix string, last bool) {
	sb.WriteByte('\n')
	sb.WriteString(prefix)
	sb.WriteString(glyph(last))
	sb.WriteString(n.Content)

	childPrefix := prefix + GlyphGuide
	if last {
		childPrefix = prefix + IndentUnit
	}
	for i, c := range n.children {
		c.renderGuides(sb, childPrefix, i == len(n.children)-1)
	}
}

func glyph(last bool) string {
	if last {
		return GlyphLast
	}
	return GlyphBranch
}
