// Package search compiles boolean predicates over Reddit's advanced-search
// fields into the query string the search endpoint expects.
//
// Predicates are trees of Field, Literal, Not, And, Or, Equals and NotEquals
// nodes. They can be built directly, with the helpers in this package, or
// parsed from text:
//
//	expr := search.AllOf(
//	    search.AnyOf(search.F("IsSelf"), search.F("IsNSFW")),
//	    search.Negate(search.Is("Author", "spez")),
//	)
//	q, err := search.Compile(expr)
//	// q == "(+(+self:1+OR+nsfw:1+)+AND+NOT(+author:spez+)+)"
//
// Compilation runs in two passes. The linearizer walks the tree with an
// explicit stack, recording leaf tokens and FormatRules; the assembler then
// pops the rules and substitutes operands bottom-up. Neither pass recurses.
//
// Boolean fields always compile to "name:1", whatever literal they are
// compared against. Relational, arithmetic and conditional nodes have no
// representation in the grammar and fail with ErrUnsupportedExpression.
package search
