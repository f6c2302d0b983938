package barrel

import (
	"sort"
	"strings"

	"autobarrel/pkg/discovery"
)

type treeNode struct {
	name     string
	children map[string]*treeNode
	isDir    bool
}

// RenderTree draws the candidate files as a tree under rootName.
// Directories come first, then files, each sorted case-insensitively.
func RenderTree(rootName string, files []discovery.CandidateFile) string {
	root := &treeNode{name: rootName, isDir: true, children: map[string]*treeNode{}}
	for _, f := range files {
		node := root
		parts := strings.Split(f.RelativePath, "/")
		for i, part := range parts {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{name: part, isDir: i < len(parts)-1, children: map[string]*treeNode{}}
				node.children[part] = child
			}
			node = child
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimSuffix(rootName, "/"))
	sb.WriteString("/\n")
	renderTreeRecursively(&sb, root, "")
	return sb.String()
}

func renderTreeRecursively(sb *strings.Builder, node *treeNode, prefix string) {
	entries := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		entries = append(entries, child)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir != entries[j].isDir {
			return entries[i].isDir
		}
		return strings.ToLower(entries[i].name) < strings.ToLower(entries[j].name)
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(entry.name)
		if entry.isDir {
			sb.WriteString("/\n")
			renderTreeRecursively(sb, entry, prefix+extension)
			continue
		}
		sb.WriteString("\n")
	}
}
