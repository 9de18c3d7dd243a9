package ast

import "fmt"

// Walk traverses the tree rooted at node in depth-first order, calling fn for
// each node before its children. If fn returns false the children of that
// node are skipped.
//
// Children are visited in source order: a lambda's argument type before its
// result, a call's function before its argument, statements before the value
// of an in-block.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case Identifier:
	case Lambda:
		Walk(n.ArgumentType, fn)
		Walk(n.Result, fn)
	case Call:
		Walk(n.Func, fn)
		Walk(n.Argument, fn)
	case In:
		for _, s := range n.Statements {
			Walk(s, fn)
		}
		Walk(n.Value, fn)
	case Let:
		Walk(n.Value, fn)
	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", node))
	}
}
