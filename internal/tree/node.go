// Package tree holds the lazily loaded directory tree the browser navigates,
// the index-path addresses used to point into it, and the flattening of its
// visible part into display rows.
package tree

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/tormodhaugland/treecd/internal/debug"
	"github.com/tormodhaugland/treecd/internal/fs"
)

// LinkStatus classifies a node with respect to symbolic links.
type LinkStatus int

const (
	LinkNormal LinkStatus = iota // not a symlink, or a symlink to a non-directory
	LinkOK                       // symlink resolving to a directory
	LinkBroken                   // symlink whose target cannot be resolved
)

func (s LinkStatus) String() string {
	switch s {
	case LinkNormal:
		return "normal"
	case LinkOK:
		return "symlink"
	case LinkBroken:
		return "broken symlink"
	default:
		return "unknown"
	}
}

// Node is one directory in the tree.
type Node struct {
	Name       string  // final path component; the root shows its path
	Path       string  // absolute path, fixed at creation
	Expanded   bool    // children are shown
	Loaded     bool    // Children reflects a completed full read
	Children   []*Node // directories only, sorted by name
	Link       LinkStatus
	LinkTarget string // raw readlink result, empty unless a symlink

	fsys fs.FS
}

// New creates a node for path. Symlink resolution failures never surface:
// an unreadable path is treated as a plain directory.
func New(fsys fs.FS, path string) *Node {
	path = filepath.Clean(path)

	name := filepath.Base(path)
	if name == string(filepath.Separator) || name == "." {
		name = path
	}

	n := &Node{
		Name: name,
		Path: path,
		fsys: fsys,
	}
	n.resolveLink()
	return n
}

func (n *Node) resolveLink() {
	info, err := n.fsys.Lstat(n.Path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return
	}

	if target, err := n.fsys.Readlink(n.Path); err == nil {
		n.LinkTarget = target
	}

	resolved, err := n.fsys.Stat(n.Path)
	switch {
	case err != nil:
		n.Link = LinkBroken
	case resolved.IsDir():
		n.Link = LinkOK
	default:
		n.Link = LinkNormal
	}
}

// IsSymlink reports whether the node was created from a symbolic link.
func (n *Node) IsSymlink() bool {
	return n.Link != LinkNormal || n.LinkTarget != ""
}

// LoadChildren reads the directory once. Read failures leave the node
// loaded with no children. Children kept by an earlier LoadOnly survive
// with their state.
func (n *Node) LoadChildren() {
	if n.Loaded {
		return
	}
	children := n.readChildren(nil)
	for i, child := range children {
		if prev, _ := n.Child(child.Name); prev != nil {
			children[i] = prev
		}
	}
	n.Children = children
	n.Loaded = true
}

// LoadOnly reads the directory but keeps only the children lying on the way
// to target. The node stays unloaded so a later LoadChildren rescans it.
// It reports whether such a child was found.
func (n *Node) LoadOnly(target string) bool {
	n.Children = n.readChildren(func(child *Node) bool {
		return fs.HasPathPrefix(target, child.Path)
	})
	n.Loaded = false
	return len(n.Children) > 0
}

func (n *Node) readChildren(keep func(*Node) bool) []*Node {
	entries, err := n.fsys.ReadDir(n.Path)
	if err != nil {
		debug.Log("read %s: %v", n.Path, err)
		return []*Node{}
	}

	children := make([]*Node, 0, len(entries))
	for _, entry := range entries {
		childPath := filepath.Join(n.Path, entry.Name())
		if !fs.IsDir(n.fsys, childPath) {
			continue
		}
		child := New(n.fsys, childPath)
		if keep != nil && !keep(child) {
			continue
		}
		children = append(children, child)
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})
	return children
}

// CollapseAll collapses the node and every descendant. Loaded children are
// kept so expanding again does not touch the filesystem.
func (n *Node) CollapseAll() {
	n.Expanded = false
	for _, child := range n.Children {
		child.CollapseAll()
	}
}

// Child returns the child with the given name and its index.
func (n *Node) Child(name string) (*Node, int) {
	for i, child := range n.Children {
		if child.Name == name {
			return child, i
		}
	}
	return nil, -1
}
