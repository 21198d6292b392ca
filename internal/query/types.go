package query

import (
	"GoHighlight/internal/automaton"
)

// TermQuery matches documents containing the exact term.
type TermQuery struct {
	Term  Term
	Boost float32
}

func (q *TermQuery) Type() QueryType { return QueryTypeTerm }

// BooleanOp defines the boolean occurrence of a clause.
type BooleanOp int

const (
	BooleanMust    BooleanOp = iota // AND
	BooleanShould                   // OR
	BooleanMustNot                  // NOT (prohibited)
)

// BooleanClause is a single clause within a BooleanQuery.
type BooleanClause struct {
	Occur BooleanOp
	Query Query
}

// Prohibited reports whether the clause is negated. Prohibited subtrees are
// never traversed during flattening.
func (c BooleanClause) Prohibited() bool { return c.Occur == BooleanMustNot }

// BooleanQuery combines sub-queries with boolean logic.
type BooleanQuery struct {
	Clauses            []BooleanClause
	MinimumShouldMatch int
	Boost              float32
}

func (q *BooleanQuery) Type() QueryType { return QueryTypeBoolean }

// DisjunctionMaxQuery scores with the maximum of its disjuncts.
type DisjunctionMaxQuery struct {
	Disjuncts  []Query
	TieBreaker float32
	Boost      float32
}

func (q *DisjunctionMaxQuery) Type() QueryType { return QueryTypeDisjunctionMax }

// ConstantScoreQuery wraps a query and scores every match identically.
// Query may be nil when the node wraps only a filter.
type ConstantScoreQuery struct {
	Query Query
	Boost float32
}

func (q *ConstantScoreQuery) Type() QueryType { return QueryTypeConstantScore }

// FilteredQuery combines a scoring query with a non-scoring filter.
// Only Query participates in highlighting; Filter is never flattened.
type FilteredQuery struct {
	Query  Query
	Filter Query
	Boost  float32
}

func (q *FilteredQuery) Type() QueryType { return QueryTypeFiltered }

// PhraseQuery matches terms appearing in exact sequence within one field.
type PhraseQuery struct {
	Terms []Term
	Slop  int
	Boost float32
}

func (q *PhraseQuery) Type() QueryType { return QueryTypePhrase }

// MultiPhraseQuery is a phrase where each position may match any of several
// alternative terms.
type MultiPhraseQuery struct {
	Positions [][]Term
	Slop      int
	Boost     float32
}

func (q *MultiPhraseQuery) Type() QueryType { return QueryTypeMultiPhrase }

// MultiPhrasePrefixQuery is a multi-valued phrase whose last position
// matches by prefix rather than exactly.
type MultiPhrasePrefixQuery struct {
	Field     string
	Positions [][]Term
	Slop      int
	Boost     float32
}

func (q *MultiPhrasePrefixQuery) Type() QueryType { return QueryTypeMultiPhrasePrefix }

// PrefixQuery matches terms starting with the given prefix.
type PrefixQuery struct {
	Field  string
	Prefix string
	Boost  float32
}

func (q *PrefixQuery) Type() QueryType { return QueryTypePrefix }

// WildcardQuery matches terms using wildcard patterns (* and ?).
// Automaton is compiled once at construction.
type WildcardQuery struct {
	Field     string
	Pattern   string
	Boost     float32
	Automaton automaton.Automaton
}

// NewWildcardQuery compiles the pattern and returns the query node.
func NewWildcardQuery(field, pattern string, boost float32) (*WildcardQuery, error) {
	a, err := automaton.NewWildcardAutomaton([]byte(pattern))
	if err != nil {
		return nil, err
	}
	return &WildcardQuery{Field: field, Pattern: pattern, Boost: boost, Automaton: a}, nil
}

func (q *WildcardQuery) Type() QueryType { return QueryTypeWildcard }

// RegexpQuery matches terms matching a regular expression.
// Automaton is compiled once at construction.
type RegexpQuery struct {
	Field     string
	Pattern   string
	Boost     float32
	Automaton automaton.Automaton
}

// NewRegexpQuery compiles the pattern and returns the query node.
func NewRegexpQuery(field, pattern string, boost float32) (*RegexpQuery, error) {
	a, err := automaton.NewRegexpAutomaton(pattern)
	if err != nil {
		return nil, err
	}
	return &RegexpQuery{Field: field, Pattern: pattern, Boost: boost, Automaton: a}, nil
}

func (q *RegexpQuery) Type() QueryType { return QueryTypeRegexp }

// FuzzyQuery matches terms within an edit distance of the query term.
// The first PrefixLength bytes must match exactly.
type FuzzyQuery struct {
	Term           Term
	MaxEdits       int
	PrefixLength   int
	Transpositions bool
	Boost          float32
}

func (q *FuzzyQuery) Type() QueryType { return QueryTypeFuzzy }

// CommonTermsQuery splits its terms into high- and low-frequency classes at
// rewrite time and combines the classes with different occurrence semantics.
type CommonTermsQuery struct {
	Terms           []Term
	HighFreqOccur   BooleanOp
	LowFreqOccur    BooleanOp
	CutoffFrequency float32
	Boost           float32
}

func (q *CommonTermsQuery) Type() QueryType { return QueryTypeCommonTerms }

// TermRangeQuery matches terms lexically between Lower and Upper. It has no
// native flattening; it resolves through the rewrite capability, bounded by
// MaxExpansions.
type TermRangeQuery struct {
	Field         string
	Lower         string
	Upper         string
	IncludeLower  bool
	IncludeUpper  bool
	MaxExpansions int
	Boost         float32
}

func (q *TermRangeQuery) Type() QueryType { return QueryTypeTermRange }

// WithTermLimit returns a copy of the query bounded to at most max expanded
// terms. Returns the receiver unchanged when the bound is already in place,
// which is what terminates the rewrite loop for rewriters that return their
// input unmodified.
func (q *TermRangeQuery) WithTermLimit(max int) Query {
	if q.MaxExpansions == max {
		return q
	}
	c := *q
	c.MaxExpansions = max
	return &c
}

// MatchAllQuery matches all documents.
type MatchAllQuery struct {
	Boost float32
}

func (q *MatchAllQuery) Type() QueryType { return QueryTypeMatchAll }

// MatchNoneQuery matches no documents.
type MatchNoneQuery struct{}

func (q *MatchNoneQuery) Type() QueryType { return QueryTypeMatchNone }
