// Package testutil provides a recording flatten.Callback and small fakes
// shared by tests and benchmarks.
package testutil

import (
	"GoHighlight/internal/automaton"
	"GoHighlight/internal/flatten"
	"GoHighlight/internal/query"
)

// Event kinds recorded by RecordingCallback.
const (
	KindTerm                = "term"
	KindAutomaton           = "automaton"
	KindStartPhrase         = "startPhrase"
	KindStartPhrasePosition = "startPhrasePosition"
	KindEndPhrasePosition   = "endPhrasePosition"
	KindEndPhrase           = "endPhrase"
	KindEndSpanTerm         = "endSpanTerm"
	KindStartSpanNear       = "startSpanNear"
	KindEndSpanNear         = "endSpanNear"
	KindStartSpanOr         = "startSpanOr"
	KindEndSpanOr           = "endSpanOr"
	KindStartSpanMulti      = "startSpanMulti"
	KindEndSpanMulti        = "endSpanMulti"
)

// Event is one recorded callback invocation.
type Event struct {
	Kind            string
	Term            query.Term
	Boost           float32
	Source          query.Query
	Automaton       automaton.Automaton
	AutomatonSource uint32
	PositionCount   int
	TermCount       int
	Field           string
	Slop            int
	CorrelationID   int
}

// RecordingCallback records every flatten event in order and hands out
// sequential correlation ids for term events.
type RecordingCallback struct {
	Events []Event
	nextID int
}

var _ flatten.Callback = (*RecordingCallback)(nil)

func (c *RecordingCallback) FlattenedTerm(term query.Term, boost float32, source query.Query) int {
	id := c.nextID
	c.nextID++
	c.Events = append(c.Events, Event{
		Kind: KindTerm, Term: term, Boost: boost, Source: source, CorrelationID: id,
	})
	return id
}

func (c *RecordingCallback) FlattenedAutomaton(a automaton.Automaton, boost float32, source uint32) {
	c.Events = append(c.Events, Event{
		Kind: KindAutomaton, Automaton: a, Boost: boost, AutomatonSource: source,
	})
}

func (c *RecordingCallback) StartPhrase(positionCount int, boost float32) {
	c.Events = append(c.Events, Event{Kind: KindStartPhrase, PositionCount: positionCount, Boost: boost})
}

func (c *RecordingCallback) StartPhrasePosition(termCount int) {
	c.Events = append(c.Events, Event{Kind: KindStartPhrasePosition, TermCount: termCount})
}

func (c *RecordingCallback) EndPhrasePosition() {
	c.Events = append(c.Events, Event{Kind: KindEndPhrasePosition})
}

func (c *RecordingCallback) EndPhrase(field string, slop int, boost float32) {
	c.Events = append(c.Events, Event{Kind: KindEndPhrase, Field: field, Slop: slop, Boost: boost})
}

func (c *RecordingCallback) EndSpanTermQuery(q *query.SpanTermQuery, source int) {
	c.Events = append(c.Events, Event{Kind: KindEndSpanTerm, Term: q.Term, CorrelationID: source})
}

func (c *RecordingCallback) StartSpanNearQuery(q *query.SpanNearQuery) {
	c.Events = append(c.Events, Event{Kind: KindStartSpanNear, Slop: q.Slop})
}

func (c *RecordingCallback) EndSpanNearQuery(q *query.SpanNearQuery) {
	c.Events = append(c.Events, Event{Kind: KindEndSpanNear})
}

func (c *RecordingCallback) StartSpanOrQuery(q *query.SpanOrQuery) {
	c.Events = append(c.Events, Event{Kind: KindStartSpanOr})
}

func (c *RecordingCallback) EndSpanOrQuery(q *query.SpanOrQuery) {
	c.Events = append(c.Events, Event{Kind: KindEndSpanOr})
}

func (c *RecordingCallback) StartSpanMultiQuery(q *query.SpanMultiQuery) {
	c.Events = append(c.Events, Event{Kind: KindStartSpanMulti})
}

func (c *RecordingCallback) EndSpanMultiQuery(q *query.SpanMultiQuery) {
	c.Events = append(c.Events, Event{Kind: KindEndSpanMulti})
}

// Kinds returns the kinds of all recorded events in order.
func (c *RecordingCallback) Kinds() []string {
	kinds := make([]string, len(c.Events))
	for i, e := range c.Events {
		kinds[i] = e.Kind
	}
	return kinds
}

// TermEvents returns only the term events.
func (c *RecordingCallback) TermEvents() []Event {
	return c.byKind(KindTerm)
}

// AutomatonEvents returns only the automaton events.
func (c *RecordingCallback) AutomatonEvents() []Event {
	return c.byKind(KindAutomaton)
}

func (c *RecordingCallback) byKind(kind string) []Event {
	var out []Event
	for _, e := range c.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// TermTexts returns the text of every emitted term event, in order.
func (c *RecordingCallback) TermTexts() []string {
	var out []string
	for _, e := range c.TermEvents() {
		out = append(out, e.Term.Text())
	}
	return out
}
