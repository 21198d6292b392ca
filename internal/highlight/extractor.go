// Package highlight consumes the flattened event stream and turns it into
// highlighted fragments of document text.
package highlight

import (
	"GoHighlight/internal/automaton"
	"GoHighlight/internal/flatten"
	"GoHighlight/internal/query"
)

// SpanTermWeight is the weight assigned to terms that arrive through span
// queries. Span structure is positional, not score-bearing, so every span
// term highlights with the same weight.
const SpanTermWeight = 1

// WeightedTerm is an exact term to highlight, with its accumulated weight.
type WeightedTerm struct {
	Term   query.Term
	Weight float32
}

// WeightedAutomaton is a pattern acceptor to run over document tokens.
// Automata carry no field of their own; they match tokens in whatever field
// is being highlighted.
type WeightedAutomaton struct {
	Automaton automaton.Automaton
	Weight    float32
}

// Extractor reduces the flattened event stream to the term and automaton
// lists a highlighter needs. Phrase weight arrives on the closing phrase
// event and span weight is structural, so terms emitted with weight zero
// stay pending until the event that owns their weight closes.
//
// An Extractor is single-use and not safe for concurrent callbacks, same as
// the session that feeds it.
type Extractor struct {
	terms    []WeightedTerm
	automata []WeightedAutomaton

	phraseTermStart int
	phraseAutoStart int
}

var _ flatten.Callback = (*Extractor)(nil)

func (e *Extractor) FlattenedTerm(term query.Term, boost float32, _ query.Query) int {
	id := len(e.terms)
	e.terms = append(e.terms, WeightedTerm{Term: term, Weight: boost})
	return id
}

func (e *Extractor) FlattenedAutomaton(a automaton.Automaton, boost float32, _ uint32) {
	e.automata = append(e.automata, WeightedAutomaton{Automaton: a, Weight: boost})
}

func (e *Extractor) StartPhrase(int, float32) {
	e.phraseTermStart = len(e.terms)
	e.phraseAutoStart = len(e.automata)
}

func (e *Extractor) StartPhrasePosition(int) {}
func (e *Extractor) EndPhrasePosition()     {}

// EndPhrase distributes the phrase weight over everything the phrase
// emitted. Position structure is dropped: each phrase term highlights
// independently.
func (e *Extractor) EndPhrase(_ string, _ int, boost float32) {
	for i := e.phraseTermStart; i < len(e.terms); i++ {
		if e.terms[i].Weight == 0 {
			e.terms[i].Weight = boost
		}
	}
	for i := e.phraseAutoStart; i < len(e.automata); i++ {
		if e.automata[i].Weight == 0 {
			e.automata[i].Weight = boost
		}
	}
}

func (e *Extractor) EndSpanTermQuery(_ *query.SpanTermQuery, source int) {
	if e.terms[source].Weight == 0 {
		e.terms[source].Weight = SpanTermWeight
	}
}

func (e *Extractor) StartSpanNearQuery(*query.SpanNearQuery)   {}
func (e *Extractor) EndSpanNearQuery(*query.SpanNearQuery)     {}
func (e *Extractor) StartSpanOrQuery(*query.SpanOrQuery)       {}
func (e *Extractor) EndSpanOrQuery(*query.SpanOrQuery)         {}
func (e *Extractor) StartSpanMultiQuery(*query.SpanMultiQuery) {}
func (e *Extractor) EndSpanMultiQuery(*query.SpanMultiQuery)   {}

// Terms returns every term event seen, in emission order.
func (e *Extractor) Terms() []WeightedTerm { return e.terms }

// Automata returns every automaton event seen, in emission order.
func (e *Extractor) Automata() []WeightedAutomaton { return e.automata }

// TermWeights collapses the term list for one field into a lookup table,
// keeping the highest weight for terms emitted more than once.
func (e *Extractor) TermWeights(field string) map[string]float32 {
	weights := make(map[string]float32)
	for _, wt := range e.terms {
		if wt.Term.Field != field {
			continue
		}
		text := wt.Term.Text()
		if w, ok := weights[text]; !ok || wt.Weight > w {
			weights[text] = wt.Weight
		}
	}
	return weights
}
