package flatten

import (
	"GoHighlight/internal/query"
)

// flattenSpan dispatches over the span family. Span queries communicate
// their weight structurally through boundary events, so span terms are
// emitted with boost zero. Boundary markers are always balanced, even for
// empty clause lists.
func (s *Session) flattenSpan(v query.SpanQuery, pathBoost float32, sourceOverride query.Query) (bool, error) {
	switch q := v.(type) {
	case *query.SpanTermQuery:
		source := s.cb.FlattenedTerm(q.Term, 0, sourceOverride)
		s.cb.EndSpanTermQuery(q, source)
		return true, nil

	case *query.SpanFirstQuery:
		// Position checks are transparent: only the match clause
		// contributes, with accumulated boost.
		return s.flattenSpan(q.Match, pathBoost*q.Boost, sourceOverride)

	case *query.SpanNearQuery:
		pathBoost *= q.Boost
		s.cb.StartSpanNearQuery(q)
		for _, c := range q.Clauses {
			if _, err := s.flattenSpan(c, pathBoost, sourceOverride); err != nil {
				return true, err
			}
		}
		s.cb.EndSpanNearQuery(q)
		return true, nil

	case *query.SpanNotQuery:
		// The exclude side is never visited; matches are excluded
		// downstream, not during flattening.
		return s.flattenSpan(q.Include, pathBoost*q.Boost, sourceOverride)

	case *query.SpanOrQuery:
		pathBoost *= q.Boost
		s.cb.StartSpanOrQuery(q)
		for _, c := range q.Clauses {
			if _, err := s.flattenSpan(c, pathBoost, sourceOverride); err != nil {
				return true, err
			}
		}
		s.cb.EndSpanOrQuery(q)
		return true, nil

	case *query.SpanMultiQuery:
		pathBoost *= q.Boost
		s.cb.StartSpanMultiQuery(q)
		if err := s.Flatten(q.Wrapped, pathBoost, sourceOverride); err != nil {
			return true, err
		}
		s.cb.EndSpanMultiQuery(q)
		return true, nil
	}
	return false, nil
}
