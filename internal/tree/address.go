package tree

import (
	"strconv"
	"strings"
)

// Address locates a node by child indices from the root: the empty address
// is the root, [2 0] is root.Children[2].Children[0]. Addresses are values;
// they stay meaningful only until the tree's shape changes.
type Address []int

// Child returns a new address one level below a.
func (a Address) Child(i int) Address {
	out := make(Address, len(a)+1)
	copy(out, a)
	out[len(a)] = i
	return out
}

// Parent returns the address one level up. The root has no parent.
func (a Address) Parent() (Address, bool) {
	if len(a) == 0 {
		return a, false
	}
	return append(Address(nil), a[:len(a)-1]...), true
}

// Last returns the final index, if any.
func (a Address) Last() (int, bool) {
	if len(a) == 0 {
		return 0, false
	}
	return a[len(a)-1], true
}

func (a Address) Equal(b Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (a Address) String() string {
	parts := make([]string, len(a))
	for i, idx := range a {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Resolve walks addr from n. It reports false when an index is out of range.
func (n *Node) Resolve(addr Address) (*Node, bool) {
	node := n
	for _, i := range addr {
		if i < 0 || i >= len(node.Children) {
			return nil, false
		}
		node = node.Children[i]
	}
	return node, true
}
