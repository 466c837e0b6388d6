package output

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	treeBranch = "├── "
	treeLast   = "└── "
	treePipe   = "│   "
	treeBlank  = "    "

	// noteColumn aligns notes after file names.
	noteColumn = 36
)

type treeNode struct {
	name     string
	note     string
	children map[string]*treeNode
}

func (n *treeNode) child(name string) *treeNode {
	if n.children == nil {
		n.children = make(map[string]*treeNode)
	}
	c, ok := n.children[name]
	if !ok {
		c = &treeNode{name: name}
		n.children[name] = c
	}
	return c
}

// sortedChildren returns directories first, then files, each alphabetically.
func (n *treeNode) sortedChildren() []*treeNode {
	out := make([]*treeNode, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := len(out[i].children) > 0, len(out[j].children) > 0
		if di != dj {
			return di
		}
		return out[i].name < out[j].name
	})
	return out
}

// RenderFileTree renders the files written under root. files maps paths
// relative to root to a short note shown next to the file name.
func RenderFileTree(root string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	top := &treeNode{name: root}
	for path, note := range files {
		node := top
		for _, part := range strings.Split(filepath.ToSlash(path), "/") {
			node = node.child(part)
		}
		node.note = note
	}

	var sb strings.Builder
	sb.WriteString(StyleSummary.Render(strings.TrimSuffix(root, "/") + "/"))
	sb.WriteString("\n")
	writeTree(&sb, top, "")
	return sb.String()
}

func writeTree(sb *strings.Builder, node *treeNode, indent string) {
	children := node.sortedChildren()
	for i, c := range children {
		last := i == len(children)-1

		connector, nextIndent := treeBranch, indent+treePipe
		if last {
			connector, nextIndent = treeLast, indent+treeBlank
		}

		line := indent + connector + c.name
		if len(c.children) > 0 {
			line += "/"
		}
		sb.WriteString(StyleDim.Render(indent+connector) + strings.TrimPrefix(line, indent+connector))
		if c.note != "" {
			pad := noteColumn - len([]rune(line))
			if pad < 2 {
				pad = 2
			}
			sb.WriteString(strings.Repeat(" ", pad))
			sb.WriteString(StyleDim.Render(c.note))
		}
		sb.WriteString("\n")

		writeTree(sb, c, nextIndent)
	}
}
