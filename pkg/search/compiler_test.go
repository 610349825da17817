package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		expr     Node
		expected string
	}{
		{
			name:     "field equals literal",
			expr:     Eq(F("Author"), Str("spez")),
			expected: "author:spez",
		},
		{
			name:     "literal on the left",
			expr:     Eq(Str("golang"), F("Subreddit")),
			expected: "subreddit:golang",
		},
		{
			name:     "field not equals literal",
			expr:     Ne(F("Author"), Str("spez")),
			expected: "NOT(+author:spez+)",
		},
		{
			name:     "quotes are stripped from literals",
			expr:     Eq(F("Title"), Str(`"hello"`)),
			expected: "title:hello",
		},
		{
			name:     "numeric literal",
			expr:     Eq(F("Site"), Num(1.5)),
			expected: "site:1.5",
		},
		{
			name:     "bare boolean field",
			expr:     F("IsNSFW"),
			expected: "nsfw:1",
		},
		{
			name:     "boolean field compared to true",
			expr:     Eq(F("IsSelf"), Bool(true)),
			expected: "self:1",
		},
		{
			name:     "boolean field compared to false still emits 1",
			expr:     Eq(F("IsSelf"), Bool(false)),
			expected: "self:1",
		},
		{
			name:     "boolean field not equal",
			expr:     Ne(Bool(true), F("IsSelf")),
			expected: "NOT(+self:1+)",
		},
		{
			name:     "negated boolean field",
			expr:     Negate(F("IsNSFW")),
			expected: "NOT(+nsfw:1+)",
		},
		{
			name:     "and of two flags",
			expr:     And{Left: F("IsNSFW"), Right: F("IsSelf")},
			expected: "(+nsfw:1+AND+self:1+)",
		},
		{
			name:     "or of two flags",
			expr:     Or{Left: F("IsSelf"), Right: F("IsNSFW")},
			expected: "(+self:1+OR+nsfw:1+)",
		},
		{
			name:     "query names resolve too",
			expr:     And{Left: F("nsfw"), Right: Eq(F("subreddit"), Str("pics"))},
			expected: "(+nsfw:1+AND+subreddit:pics+)",
		},
		{
			name:     "field operand is placed first",
			expr:     And{Left: Is("Author", "spez"), Right: F("IsSelf")},
			expected: "(+self:1+AND+author:spez+)",
		},
		{
			name: "nested groups mirror the tree",
			expr: And{
				Left:  Or{Left: F("IsSelf"), Right: F("IsNSFW")},
				Right: Negate(Is("Author", "spez")),
			},
			expected: "(+(+self:1+OR+nsfw:1+)+AND+NOT(+author:spez+)+)",
		},
		{
			name: "right nested compound",
			expr: Or{
				Left:  Is("Subreddit", "golang"),
				Right: And{Left: Is("Flair", "news"), Right: Ne(F("Site"), Str("youtube.com"))},
			},
			expected: "(+subreddit:golang+OR+(+flair:news+AND+NOT(+site:youtube.com+)+)+)",
		},
		{
			name:     "double negation",
			expr:     Negate(Negate(Is("Title", "go"))),
			expected: "NOT(+NOT(+title:go+)+)",
		},
		{
			name:     "slot markers inside values are not expanded",
			expr:     Is("Title", "{0}{1}"),
			expected: "title:{0}{1}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		expr    Node
		wantErr error
		wantMsg string
	}{
		{
			name:    "nil expression",
			expr:    nil,
			wantErr: ErrNilExpression,
		},
		{
			name:    "field compared to field",
			expr:    Eq(F("Author"), F("Title")),
			wantErr: ErrFieldToField,
			wantMsg: "Author and Title",
		},
		{
			name:    "field not equal to field",
			expr:    Ne(F("Author"), F("IsSelf")),
			wantErr: ErrFieldToField,
		},
		{
			name:    "and of two string fields",
			expr:    And{Left: F("Author"), Right: F("Title")},
			wantErr: ErrFieldToField,
		},
		{
			name:    "arithmetic operand",
			expr:    Eq(F("Title"), Arithmetic{Op: "+", Left: Str("a"), Right: Str("b")}),
			wantErr: ErrUnsupportedExpression,
			wantMsg: "Arithmetic",
		},
		{
			name:    "relational comparison",
			expr:    And{Left: F("IsSelf"), Right: Relational{Op: ">", Left: F("Title"), Right: Int(3)}},
			wantErr: ErrUnsupportedExpression,
			wantMsg: "Relational",
		},
		{
			name:    "conditional",
			expr:    Conditional{Cond: F("IsSelf"), Then: F("IsNSFW"), Else: F("IsSelf")},
			wantErr: ErrUnsupportedExpression,
			wantMsg: "Conditional",
		},
		{
			name:    "unknown field",
			expr:    Is("Score", "10"),
			wantErr: ErrUnknownField,
			wantMsg: "Score",
		},
		{
			name:    "unknown bare field",
			expr:    Negate(F("IsPinned")),
			wantErr: ErrUnknownField,
		},
		{
			name:    "string field used as clause",
			expr:    Or{Left: F("Author"), Right: Negate(F("IsSelf"))},
			wantErr: ErrNotPredicate,
		},
		{
			name:    "literal used as clause",
			expr:    And{Left: Bool(true), Right: F("IsSelf")},
			wantErr: ErrNotPredicate,
		},
		{
			name:    "comparison of two literals",
			expr:    Eq(Str("a"), Str("b")),
			wantErr: ErrMissingField,
		},
		{
			name:    "comparison against a clause",
			expr:    Eq(F("Title"), Negate(F("IsSelf"))),
			wantErr: ErrUnsupportedExpression,
		},
		{
			name:    "nil child",
			expr:    And{Left: F("IsSelf")},
			wantErr: ErrNilExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.expr)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.ErrorIs(t, err, tt.wantErr)

			var ce *CompileError
			require.True(t, errors.As(err, &ce))
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestCompile_DeepNesting(t *testing.T) {
	const depth = 5000

	var expr Node = F("IsSelf")
	for i := 0; i < depth; i++ {
		expr = Negate(expr)
	}
	got, err := Compile(expr)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("NOT(+", depth)+"self:1"+strings.Repeat("+)", depth), got)

	terms := make([]Node, depth)
	for i := range terms {
		terms[i] = Is("Subreddit", "golang")
	}
	got, err = Compile(AnyOf(terms...))
	require.NoError(t, err)
	assert.Equal(t, depth, strings.Count(got, "subreddit:golang"))
	assert.Equal(t, depth-1, strings.Count(got, "+OR+"))
	assert.True(t, strings.HasPrefix(got, strings.Repeat("(+", depth-1)+"subreddit:golang+OR+"))
}

func TestCompile_Deterministic(t *testing.T) {
	expr := AllOf(
		AnyOf(F("IsSelf"), F("IsNSFW")),
		Negate(Is("Author", "spez")),
		Ne(F("Flair"), Str("meta")),
	)
	want, err := Compile(expr)
	require.NoError(t, err)

	again, err := Compile(expr)
	require.NoError(t, err)
	assert.Equal(t, want, again)

	var g errgroup.Group
	results := make([]string, 64)
	for i := range results {
		g.Go(func() error {
			q, err := Compile(expr)
			results[i] = q
			return err
		})
	}
	require.NoError(t, g.Wait())
	for _, q := range results {
		assert.Equal(t, want, q)
	}
}

func TestCompiler_CustomSchema(t *testing.T) {
	schema, err := NewSchema(
		FieldDescriptor{Name: "FieldA", Kind: StringValue},
		FieldDescriptor{Name: "FieldB", QueryName: "b", Kind: StringValue},
		FieldDescriptor{Name: "IsX", Kind: BoolValue},
		FieldDescriptor{Name: "IsY", Kind: BoolValue},
	)
	require.NoError(t, err)
	c := NewCompiler(schema)

	got, err := c.Compile(Eq(F("FieldA"), Str("v")))
	require.NoError(t, err)
	assert.Equal(t, "fielda:v", got)

	got, err = c.Compile(Ne(F("FieldA"), Str("v")))
	require.NoError(t, err)
	assert.Equal(t, "NOT(+fielda:v+)", got)

	got, err = c.Compile(And{Left: F("IsX"), Right: F("IsY")})
	require.NoError(t, err)
	assert.Equal(t, "(+x:1+AND+y:1+)", got)

	got, err = c.Compile(Negate(F("IsX")))
	require.NoError(t, err)
	assert.Equal(t, "NOT(+x:1+)", got)

	got, err = c.Compile(And{
		Left:  Or{Left: F("IsX"), Right: F("IsY")},
		Right: Negate(Eq(F("FieldA"), Str("v"))),
	})
	require.NoError(t, err)
	assert.Equal(t, "(+(+x:1+OR+y:1+)+AND+NOT(+fielda:v+)+)", got)

	got, err = c.Compile(Eq(F("FieldB"), Int(42)))
	require.NoError(t, err)
	assert.Equal(t, "b:42", got)

	_, err = c.Compile(Eq(F("FieldA"), F("FieldB")))
	assert.ErrorIs(t, err, ErrFieldToField)

	_, err = c.Compile(Eq(F("Author"), Str("spez")))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestPlanAssemble_Inconsistent(t *testing.T) {
	notRule, _ := RuleFor(KindNot)
	memberRule, _ := RuleFor(KindField)

	p := &plan{rules: []FormatRule{notRule}}
	_, err := p.assemble()
	assert.ErrorIs(t, err, ErrInconsistentPlan)

	p = &plan{leaves: []string{"author", "spez", "extra"}, rules: []FormatRule{memberRule}}
	_, err = p.assemble()
	assert.ErrorIs(t, err, ErrInconsistentPlan)

	p = &plan{}
	_, err = p.assemble()
	assert.ErrorIs(t, err, ErrInconsistentPlan)
}

func TestRuleFor(t *testing.T) {
	r, ok := RuleFor(KindNotEquals)
	require.True(t, ok)
	assert.Equal(t, "NOT(+{0}+)", r.Pattern)
	assert.Equal(t, CompoundSource, r.Source)

	r, ok = RuleFor(KindField)
	require.True(t, ok)
	assert.Equal(t, LeafSource, r.Source)
	assert.Equal(t, "author:spez", r.apply([]string{"spez", "author"}))

	_, ok = RuleFor(KindEquals)
	assert.False(t, ok)
	_, ok = RuleFor(KindArithmetic)
	assert.False(t, ok)
}
