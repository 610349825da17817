package search

import (
	"strconv"
	"strings"
)

// OperandSource says which stack a FormatRule draws its operands from.
type OperandSource int

const (
	// LeafSource operands are raw field names and literal values.
	LeafSource OperandSource = iota
	// CompoundSource operands are previously assembled clauses.
	CompoundSource
)

// FormatRule is a composition step. Pattern slots {0}, {1}, ... are filled in
// the order operands are popped.
type FormatRule struct {
	Name    string
	Pattern string
	Arity   int
	Source  OperandSource
}

// RuleFor returns the composition rule emitted for nodes of kind k.
// Equality has no rule of its own: the field's MemberAccess rule shapes the term.
func RuleFor(k Kind) (FormatRule, bool) {
	switch k {
	case KindNot, KindNotEquals:
		return FormatRule{Name: "Not", Pattern: "NOT(+{0}+)", Arity: 1, Source: CompoundSource}, true
	case KindAnd:
		return FormatRule{Name: "AndAlso", Pattern: "(+{0}+AND+{1}+)", Arity: 2, Source: CompoundSource}, true
	case KindOr:
		return FormatRule{Name: "OrElse", Pattern: "(+{0}+OR+{1}+)", Arity: 2, Source: CompoundSource}, true
	case KindField:
		return FormatRule{Name: "MemberAccess", Pattern: "{1}:{0}", Arity: 2, Source: LeafSource}, true
	default:
		return FormatRule{}, false
	}
}

// apply substitutes args into the pattern in a single pass, so slot markers
// inside argument values are never expanded.
func (r FormatRule) apply(args []string) string {
	var b strings.Builder
	p := r.Pattern
	for len(p) > 0 {
		open := strings.IndexByte(p, '{')
		if open < 0 {
			b.WriteString(p)
			break
		}
		end := strings.IndexByte(p[open:], '}')
		if end < 0 {
			b.WriteString(p)
			break
		}
		end += open
		i, err := strconv.Atoi(p[open+1 : end])
		if err != nil || i < 0 || i >= len(args) {
			b.WriteString(p[:end+1])
			p = p[end+1:]
			continue
		}
		b.WriteString(p[:open])
		b.WriteString(args[i])
		p = p[end+1:]
	}
	return b.String()
}
