// Package nav implements focus movement over the directory tree: startup
// priming of the working directory, expand/collapse, type-ahead search and
// keeping the focused row inside the scroll window.
package nav

import (
	"path/filepath"
	"time"

	"github.com/tormodhaugland/treecd/internal/debug"
	"github.com/tormodhaugland/treecd/internal/fs"
	"github.com/tormodhaugland/treecd/internal/tree"
)

// DefaultSearchTimeout is the pause after which type-ahead starts over.
const DefaultSearchTimeout = 1000 * time.Millisecond

// Navigator owns the tree and the focus address into it. It is not safe for
// concurrent use; all calls happen on the event loop.
type Navigator struct {
	root   *tree.Node
	focus  tree.Address
	offset int

	search        []rune
	lastKey       time.Time
	searchTimeout time.Duration
	now           func() time.Time
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithSearchTimeout overrides DefaultSearchTimeout.
func WithSearchTimeout(d time.Duration) Option {
	return func(n *Navigator) {
		if d > 0 {
			n.searchTimeout = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(n *Navigator) {
		n.now = now
	}
}

// New builds the tree rooted at root and primes it so that cwd is focused
// and visible. Each ancestor between root and cwd is read once and keeps
// only the child leading towards cwd; the parent of cwd and cwd itself get
// full loads so their contents are visible.
func New(fsys fs.FS, root, cwd string, opts ...Option) *Navigator {
	n := &Navigator{
		root:          tree.New(fsys, root),
		searchTimeout: DefaultSearchTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}

	start := n.now()
	n.prime(filepath.Clean(cwd))
	debug.LogTiming("prime "+cwd, n.now().Sub(start))
	return n
}

func (n *Navigator) prime(cwd string) {
	n.root.Expanded = true

	chain := fs.Ancestors(n.root.Path, cwd)
	if chain == nil {
		debug.Log("working directory %s is outside %s", cwd, n.root.Path)
	}

	node := n.root
	focus := tree.Address{}
	for depth := 1; depth < len(chain); depth++ {
		target := chain[depth]
		idx := -1

		if depth == len(chain)-1 {
			node.LoadChildren()
			for i, child := range node.Children {
				if fs.HasPathPrefix(target, child.Path) {
					idx = i
					break
				}
			}
		} else if node.LoadOnly(target) {
			idx = 0
		}

		if idx < 0 {
			debug.Log("prime: %s not found under %s", target, node.Path)
			break
		}
		node = node.Children[idx]
		node.Expanded = true
		focus = focus.Child(idx)
	}

	node.LoadChildren()
	n.focus = focus
	n.offset = 0
}

// Root returns the tree root.
func (n *Navigator) Root() *tree.Node { return n.root }

// Focus returns a copy of the current focus address.
func (n *Navigator) Focus() tree.Address {
	return append(tree.Address{}, n.focus...)
}

// Offset returns the index of the topmost visible row.
func (n *Navigator) Offset() int { return n.offset }

// SearchBuffer returns the accumulated type-ahead query.
func (n *Navigator) SearchBuffer() string { return string(n.search) }

// Rows flattens the whole visible tree.
func (n *Navigator) Rows() []tree.Row {
	return tree.Flatten(n.root, tree.Address{})
}

// Focused resolves the focus address, or returns nil if it went stale.
func (n *Navigator) Focused() *tree.Node {
	node, ok := n.root.Resolve(n.focus)
	if !ok {
		return nil
	}
	return node
}

// SelectedPath is the path of the focused directory.
func (n *Navigator) SelectedPath() string {
	if node := n.Focused(); node != nil {
		return node.Path
	}
	return ""
}

// MoveFocus moves the focus delta rows up (negative) or down, clamped to
// the visible rows.
func (n *Navigator) MoveFocus(delta int) {
	rows := n.Rows()
	pos := tree.IndexOf(rows, n.focus)
	if pos < 0 {
		return
	}

	next := pos + delta
	if next < 0 {
		next = 0
	}
	if next > len(rows)-1 {
		next = len(rows) - 1
	}
	n.focus = rows[next].Addr
}

// MoveToTop focuses the first row.
func (n *Navigator) MoveToTop() {
	n.MoveFocus(-len(n.Rows()))
}

// MoveToBottom focuses the last row.
func (n *Navigator) MoveToBottom() {
	n.MoveFocus(len(n.Rows()))
}

// ExpandFocused shows the focused directory's children, reading it first
// if it has not been fully loaded.
func (n *Navigator) ExpandFocused() {
	node := n.Focused()
	if node == nil {
		return
	}
	node.Expanded = true
	node.LoadChildren()
}

// CollapseOrAscend collapses the focused subtree, or moves focus to the
// parent when it is already collapsed and completes the parent's listing.
// At the root the move is a no-op.
func (n *Navigator) CollapseOrAscend() {
	node := n.Focused()
	if node == nil {
		return
	}
	if node.Expanded {
		node.CollapseAll()
		return
	}
	parent, ok := n.focus.Parent()
	if !ok {
		return
	}
	n.focus = parent
	// Primed ancestors hold only the child on the way to the start
	// directory until they are read in full.
	if node := n.Focused(); node != nil {
		node.LoadChildren()
	}
}

// SyncScroll keeps the focused row inside a window of height rows, leaving
// room for the border and a two-row bottom margin.
func (n *Navigator) SyncScroll(height int) {
	pos := tree.IndexOf(n.Rows(), n.focus)
	if pos < 0 {
		return
	}

	usable := height - 3
	if usable < 0 {
		usable = 0
	}

	if pos < n.offset {
		n.offset = pos
	} else if pos >= n.offset+usable {
		n.offset = pos - usable
		if n.offset < 0 {
			n.offset = 0
		}
	}
}
