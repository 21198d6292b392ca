package query

// QueryType identifies the kind of query node.
type QueryType int

const (
	QueryTypeTerm QueryType = iota
	QueryTypePhrase
	QueryTypeBoolean
	QueryTypeDisjunctionMax
	QueryTypeConstantScore
	QueryTypeFiltered
	QueryTypeMultiPhrase
	QueryTypeMultiPhrasePrefix
	QueryTypeSpanTerm
	QueryTypeSpanNear
	QueryTypeSpanOr
	QueryTypeSpanNot
	QueryTypeSpanMulti
	QueryTypeSpanFirst
	QueryTypeFuzzy
	QueryTypeRegexp
	QueryTypeWildcard
	QueryTypePrefix
	QueryTypeCommonTerms
	QueryTypeTermRange
	QueryTypeMatchAll
	QueryTypeMatchNone
)

// Query is the interface for all query AST nodes. The variants defined in
// this package form the known set; any other implementation is treated as an
// unknown node by the flattener and is offered to the host's extension hook
// before falling back to rewrite.
type Query interface {
	Type() QueryType
}

// SpanQuery marks the variants whose matches carry position information and
// that compose under positional constraints (near/or/not). The set is
// closed: only this package can implement it.
type SpanQuery interface {
	Query
	spanQuery()
}

// Boolean limits.
const (
	MaxBooleanClauses = 1024
	MaxBooleanDepth   = 10
)

// Phrase limits.
const (
	MaxPhraseLength = 50
	MaxPhraseSlop   = 100
)

// Fuzzy limits.
const (
	MaxFuzzyDistance   = 2
	MinFuzzyTermLength = 3
)

// Expansion limits.
const MaxTermsExpanded = 1000
