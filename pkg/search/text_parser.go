package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	predicateLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Keyword", Pattern: `(?i)\b(AND|OR|NOT)\b`},
		{Name: "Boolean", Pattern: `(?i)\b(TRUE|FALSE)\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Number", Pattern: `\d+(\.\d+)?([eE][-+]?\d+)?`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Operator", Pattern: `==|!=|<>|<=|>=|&&|\|\||[-+*/=<>!]`},
		{Name: "Paren", Pattern: `[()]`},
		{Name: "whitespace", Pattern: `\s+`},
	})

	predicateParser = participle.MustBuild[textOr](
		participle.Lexer(predicateLexer),
		participle.Unquote("String"),
		participle.CaseInsensitive("Keyword", "Boolean"),
	)
)

// ParseText parses a textual predicate such as
//
//	(self or nsfw) and not author = "spez"
//
// Identifiers become Field nodes and numbers may carry a leading minus.
// Parentheses group clauses only; an operand such as (self) = 1 is a syntax
// error. Relational and arithmetic operators are accepted so that Compile can
// reject them with a precise error.
func ParseText(input string) (Node, error) {
	expr, err := predicateParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("search: parse %q: %w", input, err)
	}
	return expr.toNode()
}

type textOr struct {
	And []*textAnd `parser:"@@ ( ( 'OR' | '||' ) @@ )*"`
}

func (e *textOr) toNode() (Node, error) {
	nodes := make([]Node, 0, len(e.And))
	for _, a := range e.And {
		n, err := a.toNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return AnyOf(nodes...), nil
}

type textAnd struct {
	Terms []*textUnary `parser:"@@ ( ( 'AND' | '&&' ) @@ )*"`
}

func (a *textAnd) toNode() (Node, error) {
	nodes := make([]Node, 0, len(a.Terms))
	for _, t := range a.Terms {
		n, err := t.toNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return AllOf(nodes...), nil
}

type textUnary struct {
	Not        *textUnary      `parser:"  ( 'NOT' | '!' ) @@"`
	Group      *textOr         `parser:"| '(' @@ ')'"`
	Comparison *textComparison `parser:"| @@"`
}

func (u *textUnary) toNode() (Node, error) {
	switch {
	case u.Not != nil:
		n, err := u.Not.toNode()
		if err != nil {
			return nil, err
		}
		return Not{Operand: n}, nil
	case u.Group != nil:
		return u.Group.toNode()
	default:
		return u.Comparison.toNode()
	}
}

type textComparison struct {
	Left *textArith       `parser:"@@"`
	Tail *textCompareTail `parser:"@@?"`
}

type textCompareTail struct {
	Op    string     `parser:"@( '==' | '=' | '!=' | '<>' | '<=' | '>=' | '<' | '>' )"`
	Right *textArith `parser:"@@"`
}

func (c *textComparison) toNode() (Node, error) {
	left, err := c.Left.toNode()
	if err != nil {
		return nil, err
	}
	if c.Tail == nil {
		return left, nil
	}
	right, err := c.Tail.Right.toNode()
	if err != nil {
		return nil, err
	}
	switch c.Tail.Op {
	case "=", "==":
		return Equals{Left: left, Right: right}, nil
	case "!=", "<>":
		return NotEquals{Left: left, Right: right}, nil
	default:
		return Relational{Op: c.Tail.Op, Left: left, Right: right}, nil
	}
}

type textArith struct {
	Head *textOperand     `parser:"@@"`
	Tail []*textArithTail `parser:"@@*"`
}

type textArithTail struct {
	Op      string       `parser:"@( '+' | '-' | '*' | '/' )"`
	Operand *textOperand `parser:"@@"`
}

func (a *textArith) toNode() (Node, error) {
	acc, err := a.Head.toNode()
	if err != nil {
		return nil, err
	}
	for _, t := range a.Tail {
		rhs, err := t.Operand.toNode()
		if err != nil {
			return nil, err
		}
		acc = Arithmetic{Op: t.Op, Left: acc, Right: rhs}
	}
	return acc, nil
}

type textOperand struct {
	Boolean *string `parser:"  @Boolean"`
	Field   *string `parser:"| @Ident"`
	Number  *string `parser:"| @( '-'? Number )"`
	String  *string `parser:"| @String"`
}

func (o *textOperand) toNode() (Node, error) {
	switch {
	case o.Boolean != nil:
		return Literal{Value: strings.EqualFold(*o.Boolean, "true")}, nil
	case o.Field != nil:
		return Field{Name: *o.Field}, nil
	case o.Number != nil:
		if i, err := strconv.ParseInt(*o.Number, 10, 64); err == nil {
			return Literal{Value: i}, nil
		}
		f, err := strconv.ParseFloat(*o.Number, 64)
		if err != nil {
			return nil, fmt.Errorf("search: invalid number %q: %w", *o.Number, err)
		}
		return Literal{Value: f}, nil
	case o.String != nil:
		return Literal{Value: *o.String}, nil
	default:
		return nil, fmt.Errorf("search: empty operand")
	}
}
