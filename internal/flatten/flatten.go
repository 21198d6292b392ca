// Package flatten walks an arbitrarily nested query tree and emits a linear
// stream of highlight-relevant primitives to a Callback: exact terms with
// accumulated weights, phrase structures, and finite-state pattern automata.
// The consumer is responsible for locating matching spans in document text.
package flatten

import (
	"GoHighlight/internal/query"
)

// UnknownHook lets a host handle additional query-node variants before the
// flattener falls back to generic rewrite. It reports whether it handled the
// node. Hooks may recurse through the Session.
type UnknownHook func(s *Session, q query.Query, pathBoost float32, sourceOverride query.Query) (bool, error)

// Flattener flattens query trees. It is immutable after construction and
// safe to share; each Flatten call runs in its own Session.
type Flattener struct {
	maxMultiTermQueryTerms   int
	phraseAsTerms            bool
	removeHighFrequencyTerms bool
	unknown                  UnknownHook
}

// New creates a Flattener with the given options.
func New(opts Options) *Flattener {
	if opts.MaxMultiTermQueryTerms <= 0 {
		opts.MaxMultiTermQueryTerms = DefaultMaxMultiTermQueryTerms
	}
	return &Flattener{
		maxMultiTermQueryTerms:   opts.MaxMultiTermQueryTerms,
		phraseAsTerms:            opts.PhraseAsTerms,
		removeHighFrequencyTerms: !opts.KeepCommonTermsHighFrequency,
		unknown:                  opts.Unknown,
	}
}

// Flatten walks q depth-first and delivers flattened primitives to cb. The
// rewriter resolves lazy and composite nodes; it may be nil, in which case
// such nodes contribute nothing. The only error Flatten itself produces is
// *RewriteError; hook errors pass through unchanged.
func (f *Flattener) Flatten(q query.Query, rewriter query.Rewriter, cb Callback) error {
	s := &Session{
		f:        f,
		rewriter: rewriter,
		cb:       cb,
		sent:     make(map[dedupKey]struct{}),
	}
	return s.Flatten(q, 1, nil)
}

// Flatten dispatches one node. pathBoost is the product of all boosts above
// the node, multiplied in root-to-leaf order; sourceOverride is non-nil when
// the node replaced a rewritten ancestor.
func (s *Session) Flatten(q query.Query, pathBoost float32, sourceOverride query.Query) error {
	switch v := q.(type) {
	case *query.TermQuery:
		s.cb.FlattenedTerm(v.Term, pathBoost*v.Boost, sourceOverride)
		return nil
	case *query.PhraseQuery:
		return s.flattenPhrase(v, pathBoost, sourceOverride)
	case *query.BooleanQuery:
		return s.flattenBoolean(v, pathBoost, sourceOverride)
	case *query.DisjunctionMaxQuery:
		return s.flattenDisjunctionMax(v, pathBoost, sourceOverride)
	case *query.ConstantScoreQuery:
		if v.Query == nil {
			return nil
		}
		return s.Flatten(v.Query, pathBoost*v.Boost, sourceOverride)
	case *query.FilteredQuery:
		// The filter side never contributes to highlighting.
		if v.Query == nil {
			return nil
		}
		return s.Flatten(v.Query, pathBoost*v.Boost, sourceOverride)
	case *query.MultiPhraseQuery:
		return s.flattenMultiPhrase(v, pathBoost, sourceOverride)
	case *query.MultiPhrasePrefixQuery:
		return s.flattenMultiPhrasePrefix(v, pathBoost, sourceOverride)
	case query.SpanQuery:
		handled, err := s.flattenSpan(v, pathBoost, sourceOverride)
		if err != nil || handled {
			return err
		}
		return s.flattenUnknown(q, pathBoost, sourceOverride)
	case *query.FuzzyQuery:
		return s.flattenFuzzy(v, pathBoost, sourceOverride)
	case *query.RegexpQuery:
		return s.flattenRegexp(v, pathBoost, sourceOverride)
	case *query.WildcardQuery:
		return s.flattenWildcard(v, pathBoost, sourceOverride)
	case *query.PrefixQuery:
		s.flattenPrefixBytes([]byte(v.Prefix), pathBoost*v.Boost, sourceOverride)
		return nil
	case *query.CommonTermsQuery:
		return s.flattenCommonTerms(v, pathBoost, sourceOverride)
	default:
		return s.flattenUnknown(q, pathBoost, sourceOverride)
	}
}

func (s *Session) flattenBoolean(v *query.BooleanQuery, pathBoost float32, sourceOverride query.Query) error {
	boost := pathBoost * v.Boost
	for _, c := range v.Clauses {
		if c.Prohibited() {
			// The prohibited subtree is never visited.
			continue
		}
		if err := s.Flatten(c.Query, boost, sourceOverride); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) flattenDisjunctionMax(v *query.DisjunctionMaxQuery, pathBoost float32, sourceOverride query.Query) error {
	boost := pathBoost * v.Boost
	for _, d := range v.Disjuncts {
		if err := s.Flatten(d, boost, sourceOverride); err != nil {
			return err
		}
	}
	return nil
}

// flattenUnknown offers the node to the host's extension hook, then submits
// it to the rewrite bridge. A node whose rewrite makes no progress
// contributes nothing.
func (s *Session) flattenUnknown(q query.Query, pathBoost float32, sourceOverride query.Query) error {
	if s.f.unknown != nil {
		handled, err := s.f.unknown(s, q, pathBoost, sourceOverride)
		if err != nil || handled {
			return err
		}
	}
	rewritten, err := s.rewriteBounded(q)
	if err != nil {
		return err
	}
	if rewritten == q {
		return nil
	}
	// Rewrite once, then flatten again: the rewritten query may have a
	// dedicated handler. The original node becomes the provenance tag.
	return s.Flatten(rewritten, pathBoost, q)
}

// rewriteBounded installs the top-N term bound on variants that support it,
// then invokes the rewrite capability.
func (s *Session) rewriteBounded(q query.Query) (query.Query, error) {
	return s.rewrite(query.WithTermLimit(q, s.f.maxMultiTermQueryTerms))
}

func (s *Session) rewrite(q query.Query) (query.Query, error) {
	if s.rewriter == nil {
		return q, nil
	}
	rewritten, err := s.rewriter.Rewrite(q)
	if err != nil {
		return nil, &RewriteError{Err: err}
	}
	return rewritten, nil
}
