package flatten

import (
	"GoHighlight/internal/automaton"
	"GoHighlight/internal/query"
)

// Callback consumes the linear stream of highlight-relevant primitives
// produced by flattening a query tree.
//
// The source argument on term events is nil when the term came directly from
// the query containing it, and non-nil when the term came from a rewritten
// query, in which case it is the query that was rewritten.
type Callback interface {
	// FlattenedTerm is called once per query containing the term and
	// returns a correlation id for the emission. Span term events use the id
	// to tie the term to its boundary event.
	FlattenedTerm(term query.Term, boost float32, source query.Query) int

	// FlattenedAutomaton is called with each new automaton. The flattener
	// only lets the first copy of any duplicate automaton through. Automata
	// have no usable identity of their own, so source carries a hash of
	// their origin instead.
	FlattenedAutomaton(a automaton.Automaton, boost float32, source uint32)

	// StartPhrase marks the start of a phrase with the given number of
	// positions. Phrase events are only emitted for non-empty phrases.
	StartPhrase(positionCount int, boost float32)

	// StartPhrasePosition marks a position matching any of termCount terms.
	StartPhrasePosition(termCount int)

	EndPhrasePosition()

	// EndPhrase marks the end of a phrase. The phrase's weight lives here,
	// not on the individual terms, which are emitted with boost zero.
	EndPhrase(field string, slop int, boost float32)

	// EndSpanTermQuery marks the span term whose term event returned source.
	EndSpanTermQuery(q *query.SpanTermQuery, source int)

	StartSpanNearQuery(q *query.SpanNearQuery)
	EndSpanNearQuery(q *query.SpanNearQuery)

	StartSpanOrQuery(q *query.SpanOrQuery)
	EndSpanOrQuery(q *query.SpanOrQuery)

	StartSpanMultiQuery(q *query.SpanMultiQuery)
	EndSpanMultiQuery(q *query.SpanMultiQuery)
}
