package search

import "fmt"

// Kind identifies the variant of a predicate node.
type Kind int

const (
	KindField Kind = iota
	KindLiteral
	KindNot
	KindAnd
	KindOr
	KindEquals
	KindNotEquals

	// Representable but never compiled.
	KindArithmetic
	KindRelational
	KindConditional
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "FieldAccess"
	case KindLiteral:
		return "Literal"
	case KindNot:
		return "Not"
	case KindAnd:
		return "AndAlso"
	case KindOr:
		return "OrElse"
	case KindEquals:
		return "Equal"
	case KindNotEquals:
		return "NotEqual"
	case KindArithmetic:
		return "Arithmetic"
	case KindRelational:
		return "Relational"
	case KindConditional:
		return "Conditional"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a predicate expression node. The set of implementations is closed.
type Node interface {
	Kind() Kind
	isNode()
}

// Field references a schema field by its programmatic or query name.
type Field struct {
	Name string
}

func (Field) Kind() Kind { return KindField }
func (Field) isNode()    {}

// Literal holds a constant operand: string, bool, integer or float.
type Literal struct {
	Value any
}

func (Literal) Kind() Kind { return KindLiteral }
func (Literal) isNode()    {}

type Not struct {
	Operand Node
}

func (Not) Kind() Kind { return KindNot }
func (Not) isNode()    {}

type And struct {
	Left  Node
	Right Node
}

func (And) Kind() Kind { return KindAnd }
func (And) isNode()    {}

type Or struct {
	Left  Node
	Right Node
}

func (Or) Kind() Kind { return KindOr }
func (Or) isNode()    {}

type Equals struct {
	Left  Node
	Right Node
}

func (Equals) Kind() Kind { return KindEquals }
func (Equals) isNode()    {}

type NotEquals struct {
	Left  Node
	Right Node
}

func (NotEquals) Kind() Kind { return KindNotEquals }
func (NotEquals) isNode()    {}

// Arithmetic is an operator such as + or * applied to two operands.
type Arithmetic struct {
	Op    string
	Left  Node
	Right Node
}

func (Arithmetic) Kind() Kind { return KindArithmetic }
func (Arithmetic) isNode()    {}

// Relational is an ordering comparison: <, <=, > or >=.
type Relational struct {
	Op    string
	Left  Node
	Right Node
}

func (Relational) Kind() Kind { return KindRelational }
func (Relational) isNode()    {}

// Conditional is a ternary cond ? then : else.
type Conditional struct {
	Cond Node
	Then Node
	Else Node
}

func (Conditional) Kind() Kind { return KindConditional }
func (Conditional) isNode()    {}
