// Package visit dispatches visitors over a snapshot's AST.
//
// A visitor selects nodes with Filter and handles them with Visit. While
// visiting it records edits and diagnostics on a Context; nothing is applied
// until the traversal is over. Returning Halt, or calling Context.Halt,
// ends the traversal and freezes the context.
package visit

import (
	"github.com/yaklabco/mdsplice/pkg/mdast"
)

// Action tells the traversal what to do after visiting a node.
type Action int

const (
	// Continue descends into the node's children.
	Continue Action = iota

	// SkipChildren moves on to the node's next sibling.
	SkipChildren

	// Halt ends the traversal.
	Halt
)

func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case SkipChildren:
		return "skip-children"
	case Halt:
		return "halt"
	default:
		return "unknown"
	}
}

// Visitor handles the nodes it selects.
type Visitor interface {
	Filter(node *mdast.Node) bool
	Visit(node *mdast.Node, ctx *Context) (Action, error)
}

// Namer is implemented by visitors that identify themselves in
// diagnostics and logs.
type Namer interface {
	Name() string
}

// Funcs adapts plain functions to the Visitor interface. A nil FilterFunc
// matches every node; a nil VisitFunc continues.
type Funcs struct {
	VisitorName string
	FilterFunc  func(node *mdast.Node) bool
	VisitFunc   func(node *mdast.Node, ctx *Context) (Action, error)
}

// Name implements Namer.
func (f Funcs) Name() string {
	return f.VisitorName
}

// Filter implements Visitor.
func (f Funcs) Filter(node *mdast.Node) bool {
	return f.FilterFunc == nil || f.FilterFunc(node)
}

// Visit implements Visitor.
func (f Funcs) Visit(node *mdast.Node, ctx *Context) (Action, error) {
	if f.VisitFunc == nil {
		return Continue, nil
	}
	return f.VisitFunc(node, ctx)
}

// Kinds returns a filter matching any of the given node kinds.
func Kinds(kinds ...mdast.NodeKind) func(*mdast.Node) bool {
	return func(node *mdast.Node) bool {
		for _, kind := range kinds {
			if node.Kind == kind {
				return true
			}
		}
		return false
	}
}

// NameOf returns the visitor's name, or fallback when it has none.
func NameOf(v Visitor, fallback string) string {
	if named, ok := v.(Namer); ok && named.Name() != "" {
		return named.Name()
	}
	return fallback
}

// Traverse walks root depth-first in pre-order. Nodes that pass the filter
// are visited; descent into children happens whether or not the node
// matched, unless the visitor returned SkipChildren. The walk stops as soon
// as the context is halted, and a visitor error stops it and is returned
// unchanged.
func Traverse(root *mdast.Node, v Visitor, ctx *Context) error {
	_, err := walk(root, v, ctx)
	return err
}

func walk(node *mdast.Node, v Visitor, ctx *Context) (bool, error) {
	if node == nil || ctx.Halted() {
		return true, nil
	}

	descend := true
	if v.Filter(node) {
		action, err := v.Visit(node, ctx)
		if err != nil {
			return true, err
		}
		switch action {
		case Halt:
			ctx.Halt()
		case SkipChildren:
			descend = false
		case Continue:
		}
	}
	if ctx.Halted() {
		return true, nil
	}

	if descend {
		for child := node.FirstChild; child != nil; child = child.Next {
			if stop, err := walk(child, v, ctx); stop || err != nil {
				return true, err
			}
		}
	}
	return false, nil
}
