// Package ast defines the abstract syntax tree of the lambda calculus.
//
// The tree is made of two closed sum types:
//   - Expression: Identifier, Lambda, Call, In
//   - Statement: Let
//
// Both are sealed interfaces; only this package can add variants, so a type
// switch over the variants listed here is exhaustive. Nodes are plain values
// and are never modified after the parser builds them.
package ast

// NodeType identifies the variant of a node.
type NodeType string

// Node types.
const (
	NodeIdentifier NodeType = "identifier"
	NodeLambda     NodeType = "lambda"
	NodeCall       NodeType = "call"
	NodeIn         NodeType = "in"
	NodeLet        NodeType = "let"
)

// Node is implemented by every Expression and Statement.
type Node interface {
	Type() NodeType
}

// Expression is one of Identifier, Lambda, Call or In.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a Let.
type Statement interface {
	Node
	statementNode()
}

// Identifier is a variable reference.
type Identifier struct {
	Name string
}

// Lambda is a typed abstraction: \Argument : ArgumentType . Result
type Lambda struct {
	Argument     string
	ArgumentType Expression
	Result       Expression
}

// Call applies Func to Argument. Chains of application nest to the left, so
// f a b is Call{Call{f, a}, b}.
type Call struct {
	Func     Expression
	Argument Expression
}

// In evaluates Value in the scope of Statements. It always holds at least
// one statement.
type In struct {
	Statements []Statement
	Value      Expression
}

// Let binds Name to Value.
type Let struct {
	Name  string
	Value Expression
}

func (Identifier) Type() NodeType { return NodeIdentifier }
func (Lambda) Type() NodeType     { return NodeLambda }
func (Call) Type() NodeType       { return NodeCall }
func (In) Type() NodeType         { return NodeIn }
func (Let) Type() NodeType        { return NodeLet }

func (Identifier) expressionNode() {}
func (Lambda) expressionNode()     {}
func (Call) expressionNode()       {}
func (In) expressionNode()         {}

func (Let) statementNode() {}

// Apply folds args onto fn as left-nested calls.
func Apply(fn Expression, args ...Expression) Expression {
	for _, arg := range args {
		fn = Call{Func: fn, Argument: arg}
	}
	return fn
}
