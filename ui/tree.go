// Package ui provides box-drawing helpers for the plain-text summary.
package ui

import (
	"strings"
	"unicode/utf8"
)

// Tree connectors
const (
	TreeBranch     = "├── "
	TreeLastBranch = "└── "
	TreeContinue   = "│   " // parent has more siblings below
	TreeIndent     = "    " // parent was last
)

// Box borders
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxVertical    = "│"
	BoxHorizontal  = "─"
	BoxTeeRight    = "├"
	BoxTeeLeft     = "┤"
)

// minBoxWidth fits the two borders, their padding and an ellipsis
const minBoxWidth = 8

// TreePrefixBuilder builds tree prefixes from depth and sibling positions
type TreePrefixBuilder struct{}

// BuildPrefix generates the prefix for a node at depth. parentIsLast[i]
// tells whether the ancestor at depth i+1 was the last of its siblings.
func (TreePrefixBuilder) BuildPrefix(depth int, isLast bool, parentIsLast []bool) string {
	if depth <= 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < depth-1; i++ {
		if i < len(parentIsLast) && parentIsLast[i] {
			b.WriteString(TreeIndent)
		} else {
			b.WriteString(TreeContinue)
		}
	}

	if isLast {
		b.WriteString(TreeLastBranch)
	} else {
		b.WriteString(TreeBranch)
	}
	return b.String()
}

// BuildTreePrefix is a shorthand for TreePrefixBuilder.BuildPrefix
func BuildTreePrefix(depth int, isLast bool, parentIsLast []bool) string {
	return TreePrefixBuilder{}.BuildPrefix(depth, isLast, parentIsLast)
}

// BuildBoxHeader creates a box top border, a title line and a separator.
// The box widens to fit the title.
func BuildBoxHeader(title string, width int) string {
	width = max(width, utf8.RuneCountInString(title)+4, minBoxWidth)

	header := BoxTopLeft + strings.Repeat(BoxHorizontal, width-2) + BoxTopRight + "\n"
	header += BuildBoxLine(title, width)
	header += BoxTeeRight + strings.Repeat(BoxHorizontal, width-2) + BoxTeeLeft + "\n"
	return header
}

// BuildBoxFooter creates a box bottom border
func BuildBoxFooter(width int) string {
	width = max(width, minBoxWidth)
	return BoxBottomLeft + strings.Repeat(BoxHorizontal, width-2) + BoxBottomRight + "\n"
}

// BuildBoxLine creates a content line; content that does not fit is truncated with "..."
func BuildBoxLine(content string, width int) string {
	width = max(width, minBoxWidth)
	maxContentLen := width - 4 // "│ " and " │"

	runes := []rune(content)
	if len(runes) > maxContentLen {
		content = string(runes[:maxContentLen-3]) + "..."
		runes = []rune(content)
	}

	padding := maxContentLen - len(runes)
	return BoxVertical + " " + content + strings.Repeat(" ", padding+1) + BoxVertical + "\n"
}
