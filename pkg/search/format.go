package search

import (
	"fmt"
	"strconv"
)

// Format renders a predicate in the syntax accepted by ParseText.
func Format(n Node) string {
	return format(n, 0)
}

const (
	precOr = iota + 1
	precAnd
	precNot
	precCompare
	precArith
)

func format(n Node, parent int) string {
	switch e := n.(type) {
	case nil:
		return "<nil>"
	case Field:
		return e.Name
	case Literal:
		return formatLiteral(e.Value)
	case Not:
		return "NOT " + format(e.Operand, precNot)
	case And:
		return wrap(format(e.Left, precAnd)+" AND "+format(e.Right, precAnd+1), precAnd, parent)
	case Or:
		return wrap(format(e.Left, precOr)+" OR "+format(e.Right, precOr+1), precOr, parent)
	case Equals:
		return wrap(format(e.Left, precCompare+1)+" = "+format(e.Right, precCompare+1), precCompare, parent)
	case NotEquals:
		return wrap(format(e.Left, precCompare+1)+" != "+format(e.Right, precCompare+1), precCompare, parent)
	case Relational:
		return wrap(format(e.Left, precCompare+1)+" "+e.Op+" "+format(e.Right, precCompare+1), precCompare, parent)
	case Arithmetic:
		return wrap(format(e.Left, precArith)+" "+e.Op+" "+format(e.Right, precArith+1), precArith, parent)
	case Conditional:
		return "(" + format(e.Cond, 0) + " ? " + format(e.Then, 0) + " : " + format(e.Else, 0) + ")"
	default:
		return fmt.Sprintf("<%T>", n)
	}
}

func wrap(s string, prec, parent int) string {
	if parent > prec {
		return "(" + s + ")"
	}
	return s
}

func formatLiteral(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	default:
		return fmt.Sprint(x)
	}
}
