package render

import (
	"sort"
	"strings"
)

// treeNode is one directory or file in the listing.
type treeNode struct {
	name     string
	isDir    bool
	children map[string]*treeNode
}

func newTreeNode(name string, isDir bool) *treeNode {
	return &treeNode{name: name, isDir: isDir, children: make(map[string]*treeNode)}
}

// Tree renders relative paths as an indented directory listing. Directories
// carry a trailing slash and sort before files at the same level; entries
// are otherwise lexicographic. Separators are normalized to "/".
func Tree(paths []string) string {
	root := newTreeNode("", true)
	for _, p := range paths {
		p = strings.ReplaceAll(p, "\\", "/")
		segments := strings.Split(p, "/")
		node := root
		for i, seg := range segments {
			if seg == "" {
				continue
			}
			isDir := i < len(segments)-1
			child, ok := node.children[seg]
			if !ok {
				child = newTreeNode(seg, isDir)
				node.children[seg] = child
			} else if isDir {
				// A path like "a" followed by "a/b" upgrades a to a directory.
				child.isDir = true
			}
			node = child
		}
	}

	var sb strings.Builder
	writeTree(&sb, root, 0)
	return strings.TrimSuffix(sb.String(), "\n")
}

func writeTree(sb *strings.Builder, node *treeNode, depth int) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := node.children[names[i]], node.children[names[j]]
		if a.isDir != b.isDir {
			return a.isDir
		}
		return a.name < b.name
	})

	for _, name := range names {
		child := node.children[name]
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(child.name)
		if child.isDir {
			sb.WriteString("/")
		}
		sb.WriteString("\n")
		writeTree(sb, child, depth+1)
	}
}
