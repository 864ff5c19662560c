package tree

import "strings"

const (
	markerExpanded  = "▼"
	markerCollapsed = "▶"
	indentUnit      = "    "
)

// Row is one visible line of the tree view.
type Row struct {
	Text  string
	Node  *Node
	Addr  Address
	Depth int
}

// Flatten walks node in pre-order and returns a row for it and for every
// descendant reachable through expanded nodes. addr is node's own address;
// descendants get addr extended by one index per level.
func Flatten(node *Node, addr Address) []Row {
	if node == nil {
		return nil
	}
	var rows []Row
	flattenNode(node, addr, 0, &rows)
	return rows
}

func flattenNode(node *Node, addr Address, depth int, rows *[]Row) {
	*rows = append(*rows, Row{
		Text:  rowText(node, len(addr) == 0, depth),
		Node:  node,
		Addr:  addr,
		Depth: depth,
	})

	if !node.Expanded {
		return
	}
	for i, child := range node.Children {
		flattenNode(child, addr.Child(i), depth+1, rows)
	}
}

func rowText(node *Node, isRoot bool, depth int) string {
	marker := markerCollapsed
	if node.Expanded {
		marker = markerExpanded
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(indentUnit, depth))
	sb.WriteString(marker)
	sb.WriteString(" ")
	if isRoot {
		sb.WriteString(node.Path)
	} else {
		sb.WriteString(node.Name)
	}
	if node.IsSymlink() {
		target := node.LinkTarget
		if target == "" {
			target = "???"
		}
		sb.WriteString(" -> ")
		sb.WriteString(target)
	}
	return sb.String()
}

// IndexOf returns the position of the row with the given address, or -1.
func IndexOf(rows []Row, addr Address) int {
	for i, row := range rows {
		if row.Addr.Equal(addr) {
			return i
		}
	}
	return -1
}
