package search

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNilExpression         = errors.New("search: nil expression")
	ErrUnsupportedExpression = errors.New("search: unsupported expression kind")
	ErrFieldToField          = errors.New("search: cannot compare field to field")
	ErrUnknownField          = errors.New("search: unknown field")
	ErrNotPredicate          = errors.New("search: expression is not a predicate")
	ErrMissingField          = errors.New("search: comparison has no field operand")
	// ErrInconsistentPlan means the linearizer emitted a plan the assembler
	// could not reduce to a single query. It indicates a compiler defect.
	ErrInconsistentPlan = errors.New("search: inconsistent compilation plan")
)

// CompileError describes why a predicate could not be compiled.
type CompileError struct {
	Err    error
	Kind   Kind
	Field  string
	Detail string
}

func (e *CompileError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(e.Err.Error())
	switch {
	case e.Field != "":
		fmt.Fprintf(&b, ": %s", e.Field)
	case errors.Is(e.Err, ErrUnsupportedExpression), errors.Is(e.Err, ErrNotPredicate):
		fmt.Fprintf(&b, ": %s", e.Kind)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	return b.String()
}

func (e *CompileError) Unwrap() error { return e.Err }

func compileErr(err error, n Node, detail string) *CompileError {
	ce := &CompileError{Err: err, Detail: detail}
	if n != nil {
		ce.Kind = n.Kind()
		if f, ok := n.(Field); ok {
			ce.Field = f.Name
		}
	}
	return ce
}
