package ast

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// AncestorChain returns the root-to-deepest path of nodes whose spans contain
// the given position. The result is empty when the position lies outside the
// root. At each level the first containing child is taken; sibling spans do
// not overlap, so there is never more than one.
func AncestorChain(root *Node, position protocol.Position) []*Node {
	if root == nil || !root.ContainsPosition(position) {
		return nil
	}

	chain := []*Node{root}
	current := root
	for {
		var next *Node
		for _, child := range current.Children {
			if child.ContainsPosition(position) {
				next = child
				break
			}
		}
		if next == nil {
			return chain
		}
		chain = append(chain, next)
		current = next
	}
}

// FindDeepestMatch scans an ancestor chain from the deepest node upward and
// returns the first one satisfying test, or nil. This yields the innermost
// enclosing construct when several ancestors match.
func FindDeepestMatch(chain []*Node, test func(*Node) bool) *Node {
	for i := len(chain) - 1; i >= 0; i-- {
		if test(chain[i]) {
			return chain[i]
		}
	}
	return nil
}
