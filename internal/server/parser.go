package server

import (
	"encoding/json"
	"fmt"

	"GoHighlight/internal/query"
)

// nodeJSON is the wire form of a query tree node. Fields are a superset of
// all variants; which ones matter depends on type.
type nodeJSON struct {
	Type  string   `json:"type"`
	Boost *float32 `json:"boost"`

	Field string   `json:"field"`
	Value string   `json:"value"`
	Terms []string `json:"terms"`
	Slop  int      `json:"slop"`

	Clauses   []clauseJSON      `json:"clauses"`
	Queries   []json.RawMessage `json:"queries"`
	Query     json.RawMessage   `json:"query"`
	Positions [][]string        `json:"positions"`

	Lower         string `json:"lower"`
	Upper         string `json:"upper"`
	IncludeLower  bool   `json:"include_lower"`
	IncludeUpper  bool   `json:"include_upper"`
	MaxExpansions int    `json:"max_expansions"`

	MaxEdits       *int  `json:"max_edits"`
	PrefixLength   int   `json:"prefix_length"`
	Transpositions *bool `json:"transpositions"`

	CutoffFrequency float32 `json:"cutoff_frequency"`
	HighFreqOccur   string  `json:"high_freq_occur"`
	LowFreqOccur    string  `json:"low_freq_occur"`

	InOrder bool            `json:"in_order"`
	End     int             `json:"end"`
	Include json.RawMessage `json:"include"`
	Exclude json.RawMessage `json:"exclude"`
}

type clauseJSON struct {
	Occur string          `json:"occur"`
	Query json.RawMessage `json:"query"`
}

// ParseQuery decodes a JSON query tree into the query AST. Boost defaults
// to 1 when absent. This is a thin decoding layer: it validates shape, not
// search semantics.
func ParseQuery(data []byte) (query.Query, error) {
	var n nodeJSON
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("invalid query node: %w", err)
	}

	boost := float32(1)
	if n.Boost != nil {
		boost = *n.Boost
	}

	switch n.Type {
	case "term":
		return &query.TermQuery{Term: query.NewTerm(n.Field, n.Value), Boost: boost}, nil

	case "phrase":
		terms := make([]query.Term, len(n.Terms))
		for i, t := range n.Terms {
			terms[i] = query.NewTerm(n.Field, t)
		}
		return &query.PhraseQuery{Terms: terms, Slop: n.Slop, Boost: boost}, nil

	case "multi_phrase":
		return &query.MultiPhraseQuery{
			Positions: parsePositions(n.Field, n.Positions),
			Slop:      n.Slop,
			Boost:     boost,
		}, nil

	case "multi_phrase_prefix":
		return &query.MultiPhrasePrefixQuery{
			Field:     n.Field,
			Positions: parsePositions(n.Field, n.Positions),
			Slop:      n.Slop,
			Boost:     boost,
		}, nil

	case "bool":
		clauses := make([]query.BooleanClause, len(n.Clauses))
		for i, c := range n.Clauses {
			occur, err := parseOccur(c.Occur)
			if err != nil {
				return nil, err
			}
			sub, err := ParseQuery(c.Query)
			if err != nil {
				return nil, err
			}
			clauses[i] = query.BooleanClause{Occur: occur, Query: sub}
		}
		return &query.BooleanQuery{Clauses: clauses, Boost: boost}, nil

	case "dis_max":
		disjuncts := make([]query.Query, len(n.Queries))
		for i, raw := range n.Queries {
			sub, err := ParseQuery(raw)
			if err != nil {
				return nil, err
			}
			disjuncts[i] = sub
		}
		return &query.DisjunctionMaxQuery{Disjuncts: disjuncts, Boost: boost}, nil

	case "constant_score":
		sub, err := parseChild(n.Query, n.Type)
		if err != nil {
			return nil, err
		}
		return &query.ConstantScoreQuery{Query: sub, Boost: boost}, nil

	case "filtered":
		sub, err := parseChild(n.Query, n.Type)
		if err != nil {
			return nil, err
		}
		return &query.FilteredQuery{Query: sub, Boost: boost}, nil

	case "prefix":
		return &query.PrefixQuery{Field: n.Field, Prefix: n.Value, Boost: boost}, nil

	case "wildcard":
		return query.NewWildcardQuery(n.Field, n.Value, boost)

	case "regexp":
		return query.NewRegexpQuery(n.Field, n.Value, boost)

	case "fuzzy":
		transpositions := true
		if n.Transpositions != nil {
			transpositions = *n.Transpositions
		}
		// Absent defaults to 2; an explicit 0 is a legitimate request for a
		// plain term match.
		maxEdits := 2
		if n.MaxEdits != nil {
			maxEdits = *n.MaxEdits
		}
		return &query.FuzzyQuery{
			Term:           query.NewTerm(n.Field, n.Value),
			MaxEdits:       maxEdits,
			PrefixLength:   n.PrefixLength,
			Transpositions: transpositions,
			Boost:          boost,
		}, nil

	case "term_range":
		return &query.TermRangeQuery{
			Field:         n.Field,
			Lower:         n.Lower,
			Upper:         n.Upper,
			IncludeLower:  n.IncludeLower,
			IncludeUpper:  n.IncludeUpper,
			MaxExpansions: n.MaxExpansions,
			Boost:         boost,
		}, nil

	case "common_terms":
		highOccur, err := parseOccur(defaultOccur(n.HighFreqOccur, "should"))
		if err != nil {
			return nil, err
		}
		lowOccur, err := parseOccur(defaultOccur(n.LowFreqOccur, "must"))
		if err != nil {
			return nil, err
		}
		terms := make([]query.Term, len(n.Terms))
		for i, t := range n.Terms {
			terms[i] = query.NewTerm(n.Field, t)
		}
		return &query.CommonTermsQuery{
			Terms:           terms,
			HighFreqOccur:   highOccur,
			LowFreqOccur:    lowOccur,
			CutoffFrequency: n.CutoffFrequency,
			Boost:           boost,
		}, nil

	case "match_all":
		return &query.MatchAllQuery{Boost: boost}, nil

	case "match_none":
		return &query.MatchNoneQuery{}, nil

	case "span_term":
		return &query.SpanTermQuery{Term: query.NewTerm(n.Field, n.Value), Boost: boost}, nil

	case "span_near":
		clauses, err := parseSpanList(n.Queries)
		if err != nil {
			return nil, err
		}
		return &query.SpanNearQuery{Clauses: clauses, Slop: n.Slop, InOrder: n.InOrder, Boost: boost}, nil

	case "span_or":
		clauses, err := parseSpanList(n.Queries)
		if err != nil {
			return nil, err
		}
		return &query.SpanOrQuery{Clauses: clauses, Boost: boost}, nil

	case "span_not":
		include, err := parseSpan(n.Include)
		if err != nil {
			return nil, err
		}
		exclude, err := parseSpan(n.Exclude)
		if err != nil {
			return nil, err
		}
		return &query.SpanNotQuery{Include: include, Exclude: exclude, Boost: boost}, nil

	case "span_first":
		match, err := parseSpan(n.Query)
		if err != nil {
			return nil, err
		}
		return &query.SpanFirstQuery{Match: match, End: n.End, Boost: boost}, nil

	case "span_multi":
		sub, err := parseChild(n.Query, n.Type)
		if err != nil {
			return nil, err
		}
		return &query.SpanMultiQuery{Wrapped: sub, Boost: boost}, nil

	case "":
		return nil, fmt.Errorf("query node is missing a type")

	default:
		return nil, fmt.Errorf("unknown query type %q", n.Type)
	}
}

func parseChild(raw json.RawMessage, parent string) (query.Query, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s query requires a nested query", parent)
	}
	return ParseQuery(raw)
}

func parseSpan(raw json.RawMessage) (query.SpanQuery, error) {
	q, err := ParseQuery(raw)
	if err != nil {
		return nil, err
	}
	sq, ok := q.(query.SpanQuery)
	if !ok {
		return nil, fmt.Errorf("expected a span query, got %T", q)
	}
	return sq, nil
}

func parseSpanList(raws []json.RawMessage) ([]query.SpanQuery, error) {
	clauses := make([]query.SpanQuery, len(raws))
	for i, raw := range raws {
		sq, err := parseSpan(raw)
		if err != nil {
			return nil, err
		}
		clauses[i] = sq
	}
	return clauses, nil
}

func parseOccur(s string) (query.BooleanOp, error) {
	switch s {
	case "must":
		return query.BooleanMust, nil
	case "should":
		return query.BooleanShould, nil
	case "must_not":
		return query.BooleanMustNot, nil
	default:
		return 0, fmt.Errorf("unknown occur %q", s)
	}
}

func defaultOccur(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func parsePositions(field string, positions [][]string) [][]query.Term {
	out := make([][]query.Term, len(positions))
	for i, terms := range positions {
		out[i] = make([]query.Term, len(terms))
		for j, t := range terms {
			out[i][j] = query.NewTerm(field, t)
		}
	}
	return out
}
