package flatten

import (
	"fmt"

	"GoHighlight/internal/automaton"
	"GoHighlight/internal/query"
)

// flattenPrefixBytes emits the prefix automaton for the given bytes unless
// an equal prefix was already emitted this session. Prefixes dedup by byte
// value, not by node: two distinct prefix nodes with the same bytes produce
// one automaton.
func (s *Session) flattenPrefixBytes(prefix []byte, boost float32, sourceOverride query.Query) {
	key := dedupKey{kind: dedupPrefix, key: string(prefix)}
	if !s.markSent(key) {
		return
	}
	a := automaton.NewPrefixAutomaton(prefix)
	s.cb.FlattenedAutomaton(a, boost, sourceHash(sourceOverride, key))
}

// flattenWildcard emits the node's precompiled automaton, dedup'd by the
// pattern bytes.
func (s *Session) flattenWildcard(v *query.WildcardQuery, pathBoost float32, sourceOverride query.Query) error {
	if v.Automaton == nil {
		return nil
	}
	key := dedupKey{kind: dedupWildcard, key: v.Pattern}
	if !s.markSent(key) {
		return nil
	}
	s.cb.FlattenedAutomaton(v.Automaton, pathBoost*v.Boost, sourceHash(sourceOverride, key))
	return nil
}

// flattenRegexp emits the node's precompiled automaton. Regexp automata are
// not safely comparable by value, so the dedup key is node identity.
func (s *Session) flattenRegexp(v *query.RegexpQuery, pathBoost float32, sourceOverride query.Query) error {
	if v.Automaton == nil {
		return nil
	}
	key := dedupKey{kind: dedupRegexp, key: fmt.Sprintf("%p", v)}
	if !s.markSent(key) {
		return nil
	}
	s.cb.FlattenedAutomaton(v.Automaton, pathBoost*v.Boost, sourceHash(sourceOverride, key))
	return nil
}

// flattenFuzzy builds a Levenshtein automaton over the suffix beyond the
// fixed prefix. A fuzzy query with no edit budget, or whose required prefix
// covers the whole term, degrades to an exact term event; this is a
// mandatory short-circuit, not an optimization.
func (s *Session) flattenFuzzy(v *query.FuzzyQuery, pathBoost float32, sourceOverride query.Query) error {
	boost := pathBoost * v.Boost
	if v.MaxEdits <= 0 {
		s.cb.FlattenedTerm(v.Term, boost, sourceOverride)
		return nil
	}
	term := v.Term.Bytes
	prefixLen := v.PrefixLength
	if prefixLen < 0 {
		prefixLen = 0
	}
	if prefixLen >= len(term) {
		s.cb.FlattenedTerm(v.Term, boost, sourceOverride)
		return nil
	}

	key := fuzzyKey(v)
	if !s.markSent(key) {
		return nil
	}

	maxEdits := v.MaxEdits
	if maxEdits > automaton.MaxEditDistance {
		maxEdits = automaton.MaxEditDistance
	}
	suffix := term[prefixLen:]
	var (
		lev automaton.Automaton
		err error
	)
	if v.Transpositions {
		lev, err = automaton.NewDamerauAutomaton(suffix, maxEdits)
	} else {
		lev, err = automaton.NewLevenshteinAutomaton(suffix, maxEdits)
	}
	if err != nil {
		// Unbuildable edit budget contributes nothing; the clamp above makes
		// this unreachable in practice.
		return nil
	}
	a := automaton.Concat(term[:prefixLen], lev)
	s.cb.FlattenedAutomaton(a, boost, sourceHash(sourceOverride, key))
	return nil
}

// flattenCommonTerms rewrites the hybrid term-selection query and, when
// configured, strips the optional high-frequency clause. The rewrite is
// expected to produce {SHOULD boolean, MUST boolean} in that order; any
// deviation from that exact shape flattens the full rewritten result. The
// shape match is structural, not semantic: if the rewrite ever swaps the
// clause order the wrong half gets dropped.
func (s *Session) flattenCommonTerms(v *query.CommonTermsQuery, pathBoost float32, sourceOverride query.Query) error {
	rewritten, err := s.rewrite(v)
	if err != nil {
		return err
	}
	if rewritten == query.Query(v) {
		// No progress possible.
		return nil
	}
	if !s.f.removeHighFrequencyTerms {
		return s.Flatten(rewritten, pathBoost, sourceOverride)
	}
	bq, ok := rewritten.(*query.BooleanQuery)
	if !ok {
		// A term query or something more exotic.
		return s.Flatten(rewritten, pathBoost, sourceOverride)
	}
	if len(bq.Clauses) != 2 {
		// Just a list of terms.
		return s.flattenBoolean(bq, pathBoost, sourceOverride)
	}
	if bq.Clauses[0].Occur != query.BooleanShould || bq.Clauses[1].Occur != query.BooleanMust {
		return s.flattenBoolean(bq, pathBoost, sourceOverride)
	}
	_, highIsBool := bq.Clauses[0].Query.(*query.BooleanQuery)
	lowFreq, lowIsBool := bq.Clauses[1].Query.(*query.BooleanQuery)
	if !highIsBool || !lowIsBool {
		return s.flattenBoolean(bq, pathBoost, sourceOverride)
	}
	return s.flattenBoolean(lowFreq, pathBoost, sourceOverride)
}
