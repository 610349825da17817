package search

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValueKind is the type of value a field holds.
type ValueKind int

const (
	StringValue ValueKind = iota
	BoolValue
	NumericValue
)

func (v ValueKind) String() string {
	switch v {
	case StringValue:
		return "string"
	case BoolValue:
		return "boolean"
	case NumericValue:
		return "numeric"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(v))
	}
}

// boolFlagPrefix marks boolean fields such as IsNSFW; it is dropped from the query name.
const boolFlagPrefix = "Is"

// FieldDescriptor maps a field's programmatic name to the name the backend expects.
type FieldDescriptor struct {
	Name      string
	QueryName string
	Kind      ValueKind
}

// Schema is a read-only field table. Build it once with NewSchema and share it freely.
type Schema struct {
	fields []FieldDescriptor
	index  map[string]int
}

// NewSchema builds a schema from the given descriptors. Descriptors without a
// QueryName get one derived from Name.
func NewSchema(fields ...FieldDescriptor) (*Schema, error) {
	s := &Schema{
		fields: make([]FieldDescriptor, 0, len(fields)),
		index:  make(map[string]int, 2*len(fields)),
	}
	for _, fd := range fields {
		if strings.TrimSpace(fd.Name) == "" {
			return nil, errors.New("search: field name cannot be empty")
		}
		if fd.QueryName == "" {
			fd.QueryName = deriveQueryName(fd.Name, fd.Kind)
		}
		pos := len(s.fields)
		for _, key := range []string{fd.Name, fd.QueryName} {
			if prev, ok := s.index[key]; ok && prev != pos {
				return nil, fmt.Errorf("search: duplicate field %q", key)
			}
			s.index[key] = pos
		}
		s.fields = append(s.fields, fd)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(fields ...FieldDescriptor) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup resolves a field by programmatic name or query name.
func (s *Schema) Lookup(name string) (FieldDescriptor, bool) {
	if s == nil {
		return FieldDescriptor{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return FieldDescriptor{}, false
	}
	return s.fields[i], true
}

// Fields returns a copy of the registered descriptors in registration order.
func (s *Schema) Fields() []FieldDescriptor {
	if s == nil {
		return nil
	}
	out := make([]FieldDescriptor, len(s.fields))
	copy(out, s.fields)
	return out
}

func deriveQueryName(name string, kind ValueKind) string {
	if kind == BoolValue && strings.HasPrefix(name, boolFlagPrefix) {
		rest := name[len(boolFlagPrefix):]
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsUpper(r) {
			name = rest
		}
	}
	return strings.ToLower(name)
}

var redditSchema = MustSchema(
	FieldDescriptor{Name: "Author", Kind: StringValue},
	FieldDescriptor{Name: "Flair", Kind: StringValue},
	FieldDescriptor{Name: "IsNSFW", Kind: BoolValue},
	FieldDescriptor{Name: "IsSelf", Kind: BoolValue},
	FieldDescriptor{Name: "SelfText", Kind: StringValue},
	FieldDescriptor{Name: "Site", Kind: StringValue},
	FieldDescriptor{Name: "Subreddit", Kind: StringValue},
	FieldDescriptor{Name: "Title", Kind: StringValue},
	FieldDescriptor{Name: "Url", Kind: StringValue},
)

// RedditSchema returns the field table for Reddit's advanced search syntax.
func RedditSchema() *Schema { return redditSchema }
