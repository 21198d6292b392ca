package query

import "bytes"

// Term is an exact term in a named field. Equality is exact byte equality;
// two terms with identical bytes in different fields are distinct.
type Term struct {
	Field string
	Bytes []byte
}

// NewTerm creates a Term from a field name and term text.
func NewTerm(field, text string) Term {
	return Term{Field: field, Bytes: []byte(text)}
}

// Equal reports whether two terms have the same field and the same bytes.
func (t Term) Equal(o Term) bool {
	return t.Field == o.Field && bytes.Equal(t.Bytes, o.Bytes)
}

// Text returns the term bytes as a string.
func (t Term) Text() string {
	return string(t.Bytes)
}

func (t Term) String() string {
	return t.Field + ":" + string(t.Bytes)
}
