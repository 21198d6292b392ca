package highlight

import (
	"sort"
	"sync"

	"GoHighlight/internal/analysis"
	"GoHighlight/internal/query"
)

// Dictionary is an in-memory field-to-terms dictionary with document
// frequencies. It implements query.Rewriter for the variants that have no
// native flattening: term ranges expand into bounded SHOULD lists and
// common-terms queries split into frequency classes. Queries it does not
// understand come back unchanged, which the flattener treats as "no
// progress" and skips.
type Dictionary struct {
	mu     sync.RWMutex
	fields map[string]*fieldTerms
}

type fieldTerms struct {
	freqs    map[string]int
	sorted   []string
	docCount int
}

func NewDictionary() *Dictionary {
	return &Dictionary{fields: make(map[string]*fieldTerms)}
}

// Add records a term with an explicit document frequency, replacing any
// previous frequency.
func (d *Dictionary) Add(field, term string, docFreq int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.field(field).add(term, docFreq)
}

// IndexTokens folds one document's tokens for a field into the dictionary,
// counting each distinct term once.
func (d *Dictionary) IndexTokens(field string, tokens []analysis.Token) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ft := d.field(field)
	ft.docCount++
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if _, dup := seen[tok.Term]; dup {
			continue
		}
		seen[tok.Term] = struct{}{}
		ft.add(tok.Term, ft.freqs[tok.Term]+1)
	}
}

// DocFreq returns the recorded document frequency for a term, zero if
// unknown.
func (d *Dictionary) DocFreq(field, term string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ft, ok := d.fields[field]
	if !ok {
		return 0
	}
	return ft.freqs[term]
}

func (d *Dictionary) field(name string) *fieldTerms {
	ft, ok := d.fields[name]
	if !ok {
		ft = &fieldTerms{freqs: make(map[string]int)}
		d.fields[name] = ft
	}
	return ft
}

func (ft *fieldTerms) add(term string, docFreq int) {
	if _, known := ft.freqs[term]; !known {
		i := sort.SearchStrings(ft.sorted, term)
		ft.sorted = append(ft.sorted, "")
		copy(ft.sorted[i+1:], ft.sorted[i:])
		ft.sorted[i] = term
	}
	ft.freqs[term] = docFreq
}

// Rewrite resolves term ranges and common-terms queries against the
// dictionary. Everything else is returned as-is.
func (d *Dictionary) Rewrite(q query.Query) (query.Query, error) {
	switch v := q.(type) {
	case *query.TermRangeQuery:
		return d.expandRange(v), nil
	case *query.CommonTermsQuery:
		return d.splitCommonTerms(v), nil
	default:
		return q, nil
	}
}

func (d *Dictionary) expandRange(v *query.TermRangeQuery) query.Query {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ft, ok := d.fields[v.Field]
	if !ok {
		return &query.MatchNoneQuery{}
	}

	i := 0
	if v.Lower != "" {
		i = sort.SearchStrings(ft.sorted, v.Lower)
		if !v.IncludeLower && i < len(ft.sorted) && ft.sorted[i] == v.Lower {
			i++
		}
	}

	var clauses []query.BooleanClause
	for ; i < len(ft.sorted); i++ {
		term := ft.sorted[i]
		if v.Upper != "" {
			if term > v.Upper || (term == v.Upper && !v.IncludeUpper) {
				break
			}
		}
		if v.MaxExpansions > 0 && len(clauses) == v.MaxExpansions {
			break
		}
		clauses = append(clauses, query.BooleanClause{
			Occur: query.BooleanShould,
			Query: &query.TermQuery{Term: query.NewTerm(v.Field, term), Boost: 1},
		})
	}
	if len(clauses) == 0 {
		return &query.MatchNoneQuery{}
	}
	return &query.BooleanQuery{Clauses: clauses, Boost: v.Boost}
}

// splitCommonTerms partitions the query's terms at the cutoff frequency. A
// cutoff below one is a ratio of the field's document count; one or above
// is an absolute document frequency.
func (d *Dictionary) splitCommonTerms(v *query.CommonTermsQuery) query.Query {
	if len(v.Terms) == 0 {
		return &query.MatchNoneQuery{}
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var high, low []query.BooleanClause
	for _, t := range v.Terms {
		freq := 0
		if ft, ok := d.fields[t.Field]; ok {
			freq = ft.freqs[t.Text()]
		}
		cutoff := v.CutoffFrequency
		if cutoff < 1 {
			if ft, ok := d.fields[t.Field]; ok {
				cutoff *= float32(ft.docCount)
			}
		}
		clause := query.BooleanClause{Query: &query.TermQuery{Term: t, Boost: 1}}
		if float32(freq) >= cutoff {
			clause.Occur = v.HighFreqOccur
			high = append(high, clause)
		} else {
			clause.Occur = v.LowFreqOccur
			low = append(low, clause)
		}
	}

	switch {
	case len(low) == 0:
		return &query.BooleanQuery{Clauses: high, Boost: v.Boost}
	case len(high) == 0:
		return &query.BooleanQuery{Clauses: low, Boost: v.Boost}
	default:
		return &query.BooleanQuery{
			Boost: v.Boost,
			Clauses: []query.BooleanClause{
				{Occur: query.BooleanShould, Query: &query.BooleanQuery{Clauses: high, Boost: 1}},
				{Occur: query.BooleanMust, Query: &query.BooleanQuery{Clauses: low, Boost: 1}},
			},
		}
	}
}
