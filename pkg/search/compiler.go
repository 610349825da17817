package search

import (
	"fmt"
	"strconv"
	"strings"
)

// Compiler translates predicate trees into the backend's query grammar:
//
//	query := term | not | and | or
//	not   := "NOT(+" query "+)"
//	and   := "(+" query "+AND+" query "+)"
//	or    := "(+" query "+OR+" query "+)"
//	term  := fieldname ":" value
//
// A Compiler holds no mutable state and is safe for concurrent use.
type Compiler struct {
	schema *Schema
}

// NewCompiler returns a compiler resolving fields against schema.
// A nil schema selects RedditSchema.
func NewCompiler(schema *Schema) *Compiler {
	if schema == nil {
		schema = RedditSchema()
	}
	return &Compiler{schema: schema}
}

// Schema returns the field table the compiler resolves against.
func (c *Compiler) Schema() *Schema { return c.schema }

var defaultCompiler = NewCompiler(nil)

// Compile compiles expr against RedditSchema.
func Compile(expr Node) (string, error) {
	return defaultCompiler.Compile(expr)
}

// Compile returns the query string for expr. On error no partial output is returned.
func (c *Compiler) Compile(expr Node) (string, error) {
	p, err := c.linearize(expr)
	if err != nil {
		return "", err
	}
	return p.assemble()
}

type role int

const (
	// rolePredicate nodes must evaluate to a clause.
	rolePredicate role = iota
	// roleOperand nodes are one side of a comparison.
	roleOperand
)

type task struct {
	node Node
	role role
}

// plan is the linearizer output: leaf tokens and rules in traversal order.
type plan struct {
	leaves []string
	rules  []FormatRule
}

func (p *plan) pushRule(k Kind) {
	r, _ := RuleFor(k)
	p.rules = append(p.rules, r)
}

// linearize walks the tree with an explicit work stack so nesting depth is
// bounded by memory, not by the goroutine stack.
func (c *Compiler) linearize(root Node) (*plan, error) {
	p := &plan{}
	work := []task{{node: root, role: rolePredicate}}

	for len(work) > 0 {
		t := work[len(work)-1]
		work = work[:len(work)-1]
		if t.node == nil {
			return nil, &CompileError{Err: ErrNilExpression}
		}

		var err error
		switch n := t.node.(type) {
		case Field:
			fd, ok := c.schema.Lookup(n.Name)
			if !ok {
				return nil, compileErr(ErrUnknownField, n, "")
			}
			if t.role == rolePredicate && fd.Kind != BoolValue {
				return nil, compileErr(ErrNotPredicate, n, fd.Kind.String()+" field used as a clause")
			}
			p.pushRule(KindField)
			p.leaves = append(p.leaves, fd.QueryName)
			if fd.Kind == BoolValue {
				p.leaves = append(p.leaves, "1")
			}

		case Literal:
			if t.role == rolePredicate {
				return nil, compileErr(ErrNotPredicate, n, "literal used as a clause")
			}
			p.leaves = append(p.leaves, literalText(n.Value))

		case Not:
			p.pushRule(KindNot)
			work = append(work, task{node: n.Operand, role: rolePredicate})

		case And:
			work, err = c.pushLogical(work, n, n.Left, n.Right)
			p.pushRule(KindAnd)

		case Or:
			work, err = c.pushLogical(work, n, n.Left, n.Right)
			p.pushRule(KindOr)

		case Equals:
			work, err = c.pushComparison(work, n, n.Left, n.Right)

		case NotEquals:
			p.pushRule(KindNotEquals)
			work, err = c.pushComparison(work, n, n.Left, n.Right)

		case Arithmetic, Relational, Conditional:
			return nil, compileErr(ErrUnsupportedExpression, n, "")

		default:
			return nil, compileErr(ErrUnsupportedExpression, n, fmt.Sprintf("%T", n))
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// pushLogical queues both operands of an AND/OR. A field operand is pushed
// last so it is linearized first.
func (c *Compiler) pushLogical(work []task, n, left, right Node) ([]task, error) {
	if left == nil || right == nil {
		return nil, &CompileError{Err: ErrNilExpression, Kind: n.Kind()}
	}
	lf, lok := left.(Field)
	rf, rok := right.(Field)
	if lok && rok {
		lb, err := c.isFlag(lf)
		if err != nil {
			return nil, err
		}
		rb, err := c.isFlag(rf)
		if err != nil {
			return nil, err
		}
		if !lb || !rb {
			return nil, compileErr(ErrFieldToField, n, lf.Name+" and "+rf.Name)
		}
	}

	if rok && !lok {
		work = append(work, task{node: left, role: rolePredicate}, task{node: right, role: rolePredicate})
	} else {
		work = append(work, task{node: right, role: rolePredicate}, task{node: left, role: rolePredicate})
	}
	return work, nil
}

// pushComparison queues the operands of an equality test: the literal first,
// then the field so the field's MemberAccess rule sees name then value.
// Literals compared against boolean fields are dropped; those always
// compile to field:1.
func (c *Compiler) pushComparison(work []task, n, left, right Node) ([]task, error) {
	if left == nil || right == nil {
		return nil, &CompileError{Err: ErrNilExpression, Kind: n.Kind()}
	}
	lf, lok := left.(Field)
	rf, rok := right.(Field)
	switch {
	case lok && rok:
		return nil, compileErr(ErrFieldToField, n, lf.Name+" and "+rf.Name)
	case !lok && !rok:
		for _, side := range []Node{left, right} {
			if unsupportedKind(side.Kind()) {
				return nil, compileErr(ErrUnsupportedExpression, side, "")
			}
		}
		return nil, compileErr(ErrMissingField, n, "")
	}

	field, other := lf, right
	if rok {
		field, other = rf, left
	}
	switch k := other.Kind(); {
	case k == KindLiteral:
	case unsupportedKind(k):
		return nil, compileErr(ErrUnsupportedExpression, other, "")
	default:
		return nil, compileErr(ErrUnsupportedExpression, other, "comparison operand must be a literal")
	}

	fd, ok := c.schema.Lookup(field.Name)
	if !ok {
		return nil, compileErr(ErrUnknownField, field, "")
	}
	if fd.Kind != BoolValue {
		work = append(work, task{node: other, role: roleOperand})
	}
	return append(work, task{node: field, role: roleOperand}), nil
}

func (c *Compiler) isFlag(f Field) (bool, error) {
	fd, ok := c.schema.Lookup(f.Name)
	if !ok {
		return false, compileErr(ErrUnknownField, f, "")
	}
	return fd.Kind == BoolValue, nil
}

func unsupportedKind(k Kind) bool {
	return k == KindArithmetic || k == KindRelational || k == KindConditional
}

// assemble resolves the rule stack bottom-up into a single query string.
func (p *plan) assemble() (string, error) {
	leaves := p.leaves
	rules := p.rules
	var compounds []string

	for len(rules) > 0 {
		r := rules[len(rules)-1]
		rules = rules[:len(rules)-1]

		src := &leaves
		if r.Source == CompoundSource {
			src = &compounds
		}
		if len(*src) < r.Arity {
			return "", &CompileError{
				Err:    ErrInconsistentPlan,
				Detail: fmt.Sprintf("%s needs %d operands, %d available", r.Name, r.Arity, len(*src)),
			}
		}

		args := make([]string, r.Arity)
		for i := range args {
			last := len(*src) - 1
			args[i] = (*src)[last]
			*src = (*src)[:last]
		}
		compounds = append(compounds, r.apply(args))
	}

	if len(compounds) != 1 || len(leaves) != 0 {
		return "", &CompileError{
			Err:    ErrInconsistentPlan,
			Detail: fmt.Sprintf("%d clauses and %d leaf values left over", len(compounds), len(leaves)),
		}
	}
	return compounds[0], nil
}

func literalText(v any) string {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case float32:
		s = strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		s = strconv.FormatFloat(x, 'g', -1, 64)
	default:
		s = fmt.Sprint(x)
	}
	return strings.ReplaceAll(s, `"`, "")
}
