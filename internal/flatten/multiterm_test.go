package flatten_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoHighlight/internal/automaton"
	"GoHighlight/internal/flatten"
	"GoHighlight/internal/query"
	"GoHighlight/internal/testutil"
)

func assertAccepts(t *testing.T, a automaton.Automaton, inputs ...string) {
	t.Helper()
	for _, s := range inputs {
		assert.True(t, automaton.Run(a, []byte(s)), "automaton should accept %q", s)
	}
}

func assertRejects(t *testing.T, a automaton.Automaton, inputs ...string) {
	t.Helper()
	for _, s := range inputs {
		assert.False(t, automaton.Run(a, []byte(s)), "automaton should reject %q", s)
	}
}

func TestPrefixQueryEmitsAutomaton(t *testing.T) {
	f := flatten.New(flatten.DefaultOptions())
	cb := &testutil.RecordingCallback{}

	require.NoError(t, f.Flatten(&query.PrefixQuery{Field: "f", Prefix: "hel", Boost: 2}, nil, cb))

	autos := cb.AutomatonEvents()
	require.Len(t, autos, 1)
	assert.Equal(t, float32(2), autos[0].Boost)
	assertAccepts(t, autos[0].Automaton, "hel", "hello", "helmet")
	assertRejects(t, autos[0].Automaton, "he", "world")
}

func TestWildcardDedupByPatternBytes(t *testing.T) {
	// Two distinct node instances with the same byte pattern emit exactly
	// one automaton across the session.
	q1, err := query.NewWildcardQuery("f", "h*o", 1)
	require.NoError(t, err)
	q2, err := query.NewWildcardQuery("f", "h*o", 1)
	require.NoError(t, err)

	root := &query.BooleanQuery{
		Boost: 1,
		Clauses: []query.BooleanClause{
			{Occur: query.BooleanShould, Query: q1},
			{Occur: query.BooleanShould, Query: q2},
		},
	}

	f := flatten.New(flatten.DefaultOptions())
	cb := &testutil.RecordingCallback{}
	require.NoError(t, f.Flatten(root, nil, cb))

	require.Len(t, cb.AutomatonEvents(), 1)
	assertAccepts(t, cb.AutomatonEvents()[0].Automaton, "ho", "hello")
}

func TestDedupCacheIsPerSession(t *testing.T) {
	q := &query.PrefixQuery{Field: "f", Prefix: "ab", Boost: 1}
	f := flatten.New(flatten.DefaultOptions())

	for i := 0; i < 2; i++ {
		cb := &testutil.RecordingCallback{}
		require.NoError(t, f.Flatten(q, nil, cb))
		assert.Len(t, cb.AutomatonEvents(), 1, "fresh session must emit again")
	}
}

func TestRegexpDedupByNodeIdentity(t *testing.T) {
	q1, err := query.NewRegexpQuery("f", "colou?r", 1)
	require.NoError(t, err)
	q2, err := query.NewRegexpQuery("f", "colou?r", 1)
	require.NoError(t, err)

	t.Run("same node twice emits once", func(t *testing.T) {
		root := &query.BooleanQuery{
			Boost: 1,
			Clauses: []query.BooleanClause{
				{Occur: query.BooleanShould, Query: q1},
				{Occur: query.BooleanShould, Query: q1},
			},
		}
		cb := &testutil.RecordingCallback{}
		require.NoError(t, flatten.New(flatten.DefaultOptions()).Flatten(root, nil, cb))
		assert.Len(t, cb.AutomatonEvents(), 1)
	})

	t.Run("distinct nodes with equal patterns emit twice", func(t *testing.T) {
		root := &query.BooleanQuery{
			Boost: 1,
			Clauses: []query.BooleanClause{
				{Occur: query.BooleanShould, Query: q1},
				{Occur: query.BooleanShould, Query: q2},
			},
		}
		cb := &testutil.RecordingCallback{}
		require.NoError(t, flatten.New(flatten.DefaultOptions()).Flatten(root, nil, cb))
		assert.Len(t, cb.AutomatonEvents(), 2)
	})
}

func TestFuzzyDegradesToTerm(t *testing.T) {
	f := flatten.New(flatten.DefaultOptions())

	t.Run("zero edit budget", func(t *testing.T) {
		cb := &testutil.RecordingCallback{}
		q := &query.FuzzyQuery{Term: query.NewTerm("f", "hello"), MaxEdits: 0, Boost: 2}
		require.NoError(t, f.Flatten(q, nil, cb))

		assert.Empty(t, cb.AutomatonEvents())
		require.Len(t, cb.TermEvents(), 1)
		assert.Equal(t, "hello", cb.TermEvents()[0].Term.Text())
		assert.Equal(t, float32(2), cb.TermEvents()[0].Boost)
	})

	t.Run("prefix covers whole term", func(t *testing.T) {
		cb := &testutil.RecordingCallback{}
		q := &query.FuzzyQuery{Term: query.NewTerm("f", "hi"), MaxEdits: 1, PrefixLength: 5, Boost: 1}
		require.NoError(t, f.Flatten(q, nil, cb))

		assert.Empty(t, cb.AutomatonEvents())
		require.Len(t, cb.TermEvents(), 1)
	})
}

func TestFuzzyBuildsPrefixedLevenshtein(t *testing.T) {
	f := flatten.New(flatten.DefaultOptions())
	cb := &testutil.RecordingCallback{}

	q := &query.FuzzyQuery{
		Term:         query.NewTerm("f", "hello"),
		MaxEdits:     1,
		PrefixLength: 2,
		Boost:        3,
	}
	require.NoError(t, f.Flatten(q, nil, cb))

	autos := cb.AutomatonEvents()
	require.Len(t, autos, 1)
	assert.Equal(t, float32(3), autos[0].Boost)
	assertAccepts(t, autos[0].Automaton, "hello", "helo", "helio")
	assertRejects(t, autos[0].Automaton, "jello", "world")
}

func TestFuzzyEditDistanceClamped(t *testing.T) {
	f := flatten.New(flatten.DefaultOptions())
	cb := &testutil.RecordingCallback{}

	// MaxEdits beyond the supported bound clamps instead of failing.
	q := &query.FuzzyQuery{Term: query.NewTerm("f", "abcdef"), MaxEdits: 9, Boost: 1}
	require.NoError(t, f.Flatten(q, nil, cb))

	autos := cb.AutomatonEvents()
	require.Len(t, autos, 1)
	assertAccepts(t, autos[0].Automaton, "abcdef", "abcdyz")
	assertRejects(t, autos[0].Automaton, "xyzdef")
}

func TestFuzzyDedupByCompositeKey(t *testing.T) {
	f := flatten.New(flatten.DefaultOptions())

	mk := func(maxEdits, prefixLen int) *query.FuzzyQuery {
		return &query.FuzzyQuery{
			Term:         query.NewTerm("f", "hello"),
			MaxEdits:     maxEdits,
			PrefixLength: prefixLen,
			Boost:        1,
		}
	}

	t.Run("equal composite keys dedup", func(t *testing.T) {
		cb := &testutil.RecordingCallback{}
		root := &query.BooleanQuery{Boost: 1, Clauses: []query.BooleanClause{
			{Occur: query.BooleanShould, Query: mk(1, 1)},
			{Occur: query.BooleanShould, Query: mk(1, 1)},
		}}
		require.NoError(t, f.Flatten(root, nil, cb))
		assert.Len(t, cb.AutomatonEvents(), 1)
	})

	t.Run("different prefix length is a different key", func(t *testing.T) {
		cb := &testutil.RecordingCallback{}
		root := &query.BooleanQuery{Boost: 1, Clauses: []query.BooleanClause{
			{Occur: query.BooleanShould, Query: mk(1, 1)},
			{Occur: query.BooleanShould, Query: mk(1, 2)},
		}}
		require.NoError(t, f.Flatten(root, nil, cb))
		assert.Len(t, cb.AutomatonEvents(), 2)
	})
}

func TestAutomatonSourceIsStable(t *testing.T) {
	f := flatten.New(flatten.DefaultOptions())
	q := &query.PrefixQuery{Field: "f", Prefix: "sta", Boost: 1}

	var sources []uint32
	for i := 0; i < 2; i++ {
		cb := &testutil.RecordingCallback{}
		require.NoError(t, f.Flatten(q, nil, cb))
		require.Len(t, cb.AutomatonEvents(), 1)
		sources = append(sources, cb.AutomatonEvents()[0].AutomatonSource)
	}
	assert.Equal(t, sources[0], sources[1])

	cb := &testutil.RecordingCallback{}
	require.NoError(t, f.Flatten(&query.PrefixQuery{Field: "f", Prefix: "oth", Boost: 1}, nil, cb))
	assert.NotEqual(t, sources[0], cb.AutomatonEvents()[0].AutomatonSource)
}

func TestCommonTermsHeuristic(t *testing.T) {
	newCommon := func() *query.CommonTermsQuery {
		return &query.CommonTermsQuery{
			Terms: []query.Term{
				query.NewTerm("f", "the"),
				query.NewTerm("f", "walrus"),
			},
			HighFreqOccur: query.BooleanShould,
			LowFreqOccur:  query.BooleanMust,
			Boost:         1,
		}
	}

	twoClauseShape := func() query.Query {
		return &query.BooleanQuery{
			Boost: 1,
			Clauses: []query.BooleanClause{
				{Occur: query.BooleanShould, Query: &query.BooleanQuery{
					Boost: 1,
					Clauses: []query.BooleanClause{
						{Occur: query.BooleanShould, Query: term("f", "the", 1)},
					},
				}},
				{Occur: query.BooleanMust, Query: &query.BooleanQuery{
					Boost: 1,
					Clauses: []query.BooleanClause{
						{Occur: query.BooleanMust, Query: term("f", "walrus", 1)},
					},
				}},
			},
		}
	}

	t.Run("expected shape drops high frequency clause", func(t *testing.T) {
		rewriter := query.RewriterFunc(func(q query.Query) (query.Query, error) {
			return twoClauseShape(), nil
		})
		cb := &testutil.RecordingCallback{}
		require.NoError(t, flatten.New(flatten.DefaultOptions()).Flatten(newCommon(), rewriter, cb))
		assert.Equal(t, []string{"walrus"}, cb.TermTexts())
	})

	t.Run("zero options drop the high frequency clause too", func(t *testing.T) {
		rewriter := query.RewriterFunc(func(q query.Query) (query.Query, error) {
			return twoClauseShape(), nil
		})
		cb := &testutil.RecordingCallback{}
		require.NoError(t, flatten.New(flatten.Options{}).Flatten(newCommon(), rewriter, cb))
		assert.Equal(t, []string{"walrus"}, cb.TermTexts())
	})

	t.Run("removal disabled keeps everything", func(t *testing.T) {
		opts := flatten.DefaultOptions()
		opts.KeepCommonTermsHighFrequency = true
		rewriter := query.RewriterFunc(func(q query.Query) (query.Query, error) {
			return twoClauseShape(), nil
		})
		cb := &testutil.RecordingCallback{}
		require.NoError(t, flatten.New(opts).Flatten(newCommon(), rewriter, cb))
		assert.Equal(t, []string{"the", "walrus"}, cb.TermTexts())
	})

	t.Run("swapped occurs fall back to full result", func(t *testing.T) {
		rewriter := query.RewriterFunc(func(q query.Query) (query.Query, error) {
			shape := twoClauseShape().(*query.BooleanQuery)
			shape.Clauses[0].Occur = query.BooleanMust
			shape.Clauses[1].Occur = query.BooleanShould
			return shape, nil
		})
		cb := &testutil.RecordingCallback{}
		require.NoError(t, flatten.New(flatten.DefaultOptions()).Flatten(newCommon(), rewriter, cb))
		assert.Equal(t, []string{"the", "walrus"}, cb.TermTexts())
	})

	t.Run("three clauses fall back to full result", func(t *testing.T) {
		rewriter := query.RewriterFunc(func(q query.Query) (query.Query, error) {
			shape := twoClauseShape().(*query.BooleanQuery)
			shape.Clauses = append(shape.Clauses, query.BooleanClause{
				Occur: query.BooleanShould, Query: term("f", "extra", 1),
			})
			return shape, nil
		})
		cb := &testutil.RecordingCallback{}
		require.NoError(t, flatten.New(flatten.DefaultOptions()).Flatten(newCommon(), rewriter, cb))
		assert.Equal(t, []string{"the", "walrus", "extra"}, cb.TermTexts())
	})

	t.Run("non-boolean sub-clauses fall back to full result", func(t *testing.T) {
		rewriter := query.RewriterFunc(func(q query.Query) (query.Query, error) {
			return &query.BooleanQuery{
				Boost: 1,
				Clauses: []query.BooleanClause{
					{Occur: query.BooleanShould, Query: term("f", "the", 1)},
					{Occur: query.BooleanMust, Query: term("f", "walrus", 1)},
				},
			}, nil
		})
		cb := &testutil.RecordingCallback{}
		require.NoError(t, flatten.New(flatten.DefaultOptions()).Flatten(newCommon(), rewriter, cb))
		assert.Equal(t, []string{"the", "walrus"}, cb.TermTexts())
	})

	t.Run("rewriter returning input contributes nothing", func(t *testing.T) {
		rewriter := query.RewriterFunc(func(q query.Query) (query.Query, error) { return q, nil })
		cb := &testutil.RecordingCallback{}
		require.NoError(t, flatten.New(flatten.DefaultOptions()).Flatten(newCommon(), rewriter, cb))
		assert.Empty(t, cb.Events)
	})
}
