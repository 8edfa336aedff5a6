package mdast

import "iter"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the AST starting at root.
// If walkFunc returns a non-nil error, the walk stops immediately and
// returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// All yields every node under root in pre-order, root first.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		walkSeq(root, yield)
	}
}

func walkSeq(node *Node, yield func(*Node) bool) bool {
	if node == nil {
		return true
	}
	if !yield(node) {
		return false
	}
	for child := node.FirstChild; child != nil; child = child.Next {
		if !walkSeq(child, yield) {
			return false
		}
	}
	return true
}

// FindAll returns all nodes matching the predicate.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node
	for node := range All(root) {
		if predicate(node) {
			result = append(result, node)
		}
	}
	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	for node := range All(root) {
		if predicate(node) {
			return node
		}
	}
	return nil
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}

// Innermost returns the deepest node whose span contains offset.
func Innermost(root *Node, offset int) *Node {
	if root == nil || !root.Span.Contains(offset) {
		return nil
	}
	for child := root.FirstChild; child != nil; child = child.Next {
		if found := Innermost(child, offset); found != nil {
			return found
		}
	}
	return root
}
