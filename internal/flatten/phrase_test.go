package flatten_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoHighlight/internal/flatten"
	"GoHighlight/internal/query"
	"GoHighlight/internal/testutil"
)

func phrase(field string, boost float32, slop int, words ...string) *query.PhraseQuery {
	q := &query.PhraseQuery{Slop: slop, Boost: boost}
	for _, w := range words {
		q.Terms = append(q.Terms, query.NewTerm(field, w))
	}
	return q
}

func TestPhraseEvents(t *testing.T) {
	f := flatten.New(flatten.DefaultOptions())
	cb := &testutil.RecordingCallback{}

	require.NoError(t, f.Flatten(phrase("body", 2, 1, "quick", "brown", "fox"), nil, cb))

	assert.Equal(t, []string{
		testutil.KindStartPhrase,
		testutil.KindStartPhrasePosition, testutil.KindTerm, testutil.KindEndPhrasePosition,
		testutil.KindStartPhrasePosition, testutil.KindTerm, testutil.KindEndPhrasePosition,
		testutil.KindStartPhrasePosition, testutil.KindTerm, testutil.KindEndPhrasePosition,
		testutil.KindEndPhrase,
	}, cb.Kinds())

	start := cb.Events[0]
	assert.Equal(t, 3, start.PositionCount)
	assert.Equal(t, float32(2), start.Boost)

	// The phrase's weight lives on the boundary events only.
	for _, e := range cb.TermEvents() {
		assert.Equal(t, float32(0), e.Boost)
	}

	end := cb.Events[len(cb.Events)-1]
	assert.Equal(t, "body", end.Field)
	assert.Equal(t, 1, end.Slop)
	assert.Equal(t, float32(2), end.Boost)
}

func TestPhraseAsTerms(t *testing.T) {
	opts := flatten.DefaultOptions()
	opts.PhraseAsTerms = true
	f := flatten.New(opts)
	cb := &testutil.RecordingCallback{}

	require.NoError(t, f.Flatten(phrase("body", 3, 0, "quick", "fox"), nil, cb))

	// No boundary events; every term carries the full phrase boost.
	assert.Equal(t, []string{testutil.KindTerm, testutil.KindTerm}, cb.Kinds())
	for _, e := range cb.TermEvents() {
		assert.Equal(t, float32(3), e.Boost)
	}
}

func TestEmptyPhraseEmitsNothing(t *testing.T) {
	for _, asTerms := range []bool{false, true} {
		opts := flatten.DefaultOptions()
		opts.PhraseAsTerms = asTerms
		f := flatten.New(opts)
		cb := &testutil.RecordingCallback{}

		require.NoError(t, f.Flatten(&query.PhraseQuery{Boost: 1}, nil, cb))
		assert.Empty(t, cb.Events)
	}
}

func TestMultiPhraseEvents(t *testing.T) {
	f := flatten.New(flatten.DefaultOptions())
	cb := &testutil.RecordingCallback{}

	root := &query.MultiPhraseQuery{
		Boost: 1,
		Slop:  2,
		Positions: [][]query.Term{
			{query.NewTerm("body", "quick"), query.NewTerm("body", "fast")},
			{query.NewTerm("body", "fox")},
		},
	}
	require.NoError(t, f.Flatten(root, nil, cb))

	assert.Equal(t, []string{
		testutil.KindStartPhrase,
		testutil.KindStartPhrasePosition, testutil.KindTerm, testutil.KindTerm, testutil.KindEndPhrasePosition,
		testutil.KindStartPhrasePosition, testutil.KindTerm, testutil.KindEndPhrasePosition,
		testutil.KindEndPhrase,
	}, cb.Kinds())

	assert.Equal(t, 2, cb.Events[0].PositionCount)
	assert.Equal(t, 2, cb.Events[1].TermCount)
	assert.Equal(t, "body", cb.Events[len(cb.Events)-1].Field)
}

func TestMultiPhraseAllPositionsEmptySuppressesEndPhrase(t *testing.T) {
	f := flatten.New(flatten.DefaultOptions())
	cb := &testutil.RecordingCallback{}

	root := &query.MultiPhraseQuery{
		Boost:     1,
		Positions: [][]query.Term{{}, {}},
	}
	require.NoError(t, f.Flatten(root, nil, cb))

	// There is no term to take the field from, so the phrase is left open
	// rather than closed with an undefined field.
	assert.Equal(t, []string{
		testutil.KindStartPhrase,
		testutil.KindStartPhrasePosition, testutil.KindEndPhrasePosition,
		testutil.KindStartPhrasePosition, testutil.KindEndPhrasePosition,
	}, cb.Kinds())
}

func TestMultiPhraseNoPositionsEmitsNothing(t *testing.T) {
	f := flatten.New(flatten.DefaultOptions())
	cb := &testutil.RecordingCallback{}

	require.NoError(t, f.Flatten(&query.MultiPhraseQuery{Boost: 1}, nil, cb))
	assert.Empty(t, cb.Events)
}

func TestMultiPhrasePrefixLastPositionUsesPrefixAutomaton(t *testing.T) {
	f := flatten.New(flatten.DefaultOptions())
	cb := &testutil.RecordingCallback{}

	root := &query.MultiPhrasePrefixQuery{
		Field: "body",
		Boost: 1,
		Positions: [][]query.Term{
			{query.NewTerm("body", "quick")},
			{query.NewTerm("body", "fo")},
		},
	}
	require.NoError(t, f.Flatten(root, nil, cb))

	assert.Equal(t, []string{
		testutil.KindStartPhrase,
		testutil.KindStartPhrasePosition, testutil.KindTerm, testutil.KindEndPhrasePosition,
		testutil.KindStartPhrasePosition, testutil.KindAutomaton, testutil.KindEndPhrasePosition,
		testutil.KindEndPhrase,
	}, cb.Kinds())

	autos := cb.AutomatonEvents()
	require.Len(t, autos, 1)
	assertAccepts(t, autos[0].Automaton, "fox", "fo", "forest")
	assertRejects(t, autos[0].Automaton, "f", "box")
}
