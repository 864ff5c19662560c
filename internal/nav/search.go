package nav

import (
	"strings"
	"unicode"

	"github.com/tormodhaugland/treecd/internal/tree"
)

type candidate struct {
	name string
	addr tree.Address
}

// JumpToChar extends the type-ahead query with r and focuses the first
// entry whose name starts with it. Candidates are the visible rows of the
// focused subtree, then the focused node's siblings. A pause longer than
// the search timeout starts a new query. It reports whether focus moved to
// a match; on a miss the focus stays and the query is kept.
func (n *Navigator) JumpToChar(r rune) bool {
	now := n.now()
	if !n.lastKey.IsZero() && now.Sub(n.lastKey) > n.searchTimeout {
		n.search = n.search[:0]
	}
	n.search = append(n.search, unicode.ToLower(r))
	n.lastKey = now

	query := string(n.search)
	for _, c := range n.candidates() {
		if strings.HasPrefix(strings.ToLower(c.name), query) {
			n.focus = c.addr
			return true
		}
	}
	return false
}

func (n *Navigator) candidates() []candidate {
	focused := n.Focused()
	if focused == nil {
		return nil
	}

	var out []candidate
	for _, row := range tree.Flatten(focused, n.Focus()) {
		out = append(out, candidate{name: row.Node.Name, addr: row.Addr})
	}

	parentAddr, ok := n.focus.Parent()
	if !ok {
		return out
	}
	parent, ok := n.root.Resolve(parentAddr)
	if !ok {
		return out
	}
	self, _ := n.focus.Last()
	for i, sibling := range parent.Children {
		if i == self {
			continue
		}
		out = append(out, candidate{name: sibling.Name, addr: parentAddr.Child(i)})
	}
	return out
}
