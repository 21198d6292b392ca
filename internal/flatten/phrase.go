package flatten

import (
	"GoHighlight/internal/query"
)

func (s *Session) flattenPhrase(v *query.PhraseQuery, pathBoost float32, sourceOverride query.Query) error {
	boost := pathBoost * v.Boost
	if len(v.Terms) == 0 {
		// A phrase with no terms emits nothing, not even boundary events.
		return nil
	}
	if s.f.phraseAsTerms {
		for _, t := range v.Terms {
			s.cb.FlattenedTerm(t, boost, sourceOverride)
		}
		return nil
	}
	s.cb.StartPhrase(len(v.Terms), boost)
	for _, t := range v.Terms {
		s.cb.StartPhrasePosition(1)
		s.cb.FlattenedTerm(t, 0, sourceOverride)
		s.cb.EndPhrasePosition()
	}
	s.cb.EndPhrase(v.Terms[0].Field, v.Slop, boost)
	return nil
}

func (s *Session) flattenMultiPhrase(v *query.MultiPhraseQuery, pathBoost float32, sourceOverride query.Query) error {
	boost := pathBoost * v.Boost
	if len(v.Positions) == 0 {
		return nil
	}
	if s.f.phraseAsTerms {
		for _, terms := range v.Positions {
			for _, t := range terms {
				s.cb.FlattenedTerm(t, boost, sourceOverride)
			}
		}
		return nil
	}
	s.cb.StartPhrase(len(v.Positions), boost)
	var field string
	seen := false
	for _, terms := range v.Positions {
		s.cb.StartPhrasePosition(len(terms))
		for _, t := range terms {
			s.cb.FlattenedTerm(t, 0, sourceOverride)
			field = t.Field
			seen = true
		}
		s.cb.EndPhrasePosition()
	}
	// If every position was empty there is no field to report, so EndPhrase
	// is suppressed rather than emitted with an undefined field.
	if seen {
		s.cb.EndPhrase(field, v.Slop, boost)
	}
	return nil
}

// flattenMultiPhrasePrefix handles the multi-valued phrase whose last
// position matches by prefix: every position but the last flattens like a
// multi-phrase position, and the last position's terms go through the prefix
// automaton path.
func (s *Session) flattenMultiPhrasePrefix(v *query.MultiPhrasePrefixQuery, pathBoost float32, sourceOverride query.Query) error {
	boost := pathBoost * v.Boost
	if len(v.Positions) == 0 {
		return nil
	}
	last := len(v.Positions) - 1
	if s.f.phraseAsTerms {
		for _, terms := range v.Positions[:last] {
			for _, t := range terms {
				s.cb.FlattenedTerm(t, boost, sourceOverride)
			}
		}
		for _, t := range v.Positions[last] {
			s.flattenPrefixBytes(t.Bytes, boost, sourceOverride)
		}
		return nil
	}
	s.cb.StartPhrase(len(v.Positions), boost)
	for _, terms := range v.Positions[:last] {
		s.cb.StartPhrasePosition(len(terms))
		for _, t := range terms {
			s.cb.FlattenedTerm(t, 0, sourceOverride)
		}
		s.cb.EndPhrasePosition()
	}
	s.cb.StartPhrasePosition(len(v.Positions[last]))
	for _, t := range v.Positions[last] {
		s.flattenPrefixBytes(t.Bytes, 0, sourceOverride)
	}
	s.cb.EndPhrasePosition()
	s.cb.EndPhrase(v.Field, v.Slop, boost)
	return nil
}
