package search

// F references a field by name.
func F(name string) Field { return Field{Name: name} }

func Str(s string) Literal   { return Literal{Value: s} }
func Num(n float64) Literal  { return Literal{Value: n} }
func Int(n int64) Literal    { return Literal{Value: n} }
func Bool(b bool) Literal    { return Literal{Value: b} }
func Negate(n Node) Not      { return Not{Operand: n} }
func Eq(l, r Node) Equals    { return Equals{Left: l, Right: r} }
func Ne(l, r Node) NotEquals { return NotEquals{Left: l, Right: r} }

// Is tests a string field for an exact value.
func Is(field, value string) Equals { return Eq(F(field), Str(value)) }

// AllOf left-folds nodes into nested And. It returns nil for no nodes.
func AllOf(nodes ...Node) Node {
	return fold(nodes, func(l, r Node) Node { return And{Left: l, Right: r} })
}

// AnyOf left-folds nodes into nested Or. It returns nil for no nodes.
func AnyOf(nodes ...Node) Node {
	return fold(nodes, func(l, r Node) Node { return Or{Left: l, Right: r} })
}

func fold(nodes []Node, join func(l, r Node) Node) Node {
	if len(nodes) == 0 {
		return nil
	}
	acc := nodes[0]
	for _, n := range nodes[1:] {
		acc = join(acc, n)
	}
	return acc
}
