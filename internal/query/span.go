package query

// SpanTermQuery matches a single term with position information.
type SpanTermQuery struct {
	Term  Term
	Boost float32
}

func (q *SpanTermQuery) Type() QueryType { return QueryTypeSpanTerm }
func (q *SpanTermQuery) spanQuery()      {}

// SpanNearQuery matches clauses occurring within Slop positions of each
// other, optionally in order.
type SpanNearQuery struct {
	Clauses []SpanQuery
	Slop    int
	InOrder bool
	Boost   float32
}

func (q *SpanNearQuery) Type() QueryType { return QueryTypeSpanNear }
func (q *SpanNearQuery) spanQuery()      {}

// SpanOrQuery matches any of its clauses.
type SpanOrQuery struct {
	Clauses []SpanQuery
	Boost   float32
}

func (q *SpanOrQuery) Type() QueryType { return QueryTypeSpanOr }
func (q *SpanOrQuery) spanQuery()      {}

// SpanNotQuery matches Include spans that do not overlap Exclude spans.
// Only the include side contributes to highlighting; exclusion happens
// downstream at match time.
type SpanNotQuery struct {
	Include SpanQuery
	Exclude SpanQuery
	Boost   float32
}

func (q *SpanNotQuery) Type() QueryType { return QueryTypeSpanNot }
func (q *SpanNotQuery) spanQuery()      {}

// SpanMultiQuery wraps a non-span multi-term query (prefix, wildcard, fuzzy,
// regexp) so it can participate in span composition.
type SpanMultiQuery struct {
	Wrapped Query
	Boost   float32
}

func (q *SpanMultiQuery) Type() QueryType { return QueryTypeSpanMulti }
func (q *SpanMultiQuery) spanQuery()      {}

// SpanFirstQuery matches its clause only when the span ends within the first
// End positions of the field. It is transparent to flattening: only the
// match clause contributes.
type SpanFirstQuery struct {
	Match SpanQuery
	End   int
	Boost float32
}

func (q *SpanFirstQuery) Type() QueryType { return QueryTypeSpanFirst }
func (q *SpanFirstQuery) spanQuery()      {}
