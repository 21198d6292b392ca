package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoHighlight/internal/query"
)

func TestParseQueryTerm(t *testing.T) {
	q, err := ParseQuery([]byte(`{"type":"term","field":"body","value":"walrus"}`))
	require.NoError(t, err)

	tq, ok := q.(*query.TermQuery)
	require.True(t, ok)
	assert.Equal(t, "body", tq.Term.Field)
	assert.Equal(t, "walrus", tq.Term.Text())
	assert.Equal(t, float32(1), tq.Boost, "absent boost defaults to 1")
}

func TestParseQueryExplicitBoost(t *testing.T) {
	q, err := ParseQuery([]byte(`{"type":"term","field":"body","value":"walrus","boost":2.5}`))
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), q.(*query.TermQuery).Boost)
}

func TestParseQueryBool(t *testing.T) {
	data := `{
		"type": "bool",
		"clauses": [
			{"occur": "must", "query": {"type": "term", "field": "body", "value": "walrus"}},
			{"occur": "should", "query": {"type": "prefix", "field": "body", "value": "kel"}},
			{"occur": "must_not", "query": {"type": "term", "field": "body", "value": "squid"}}
		]
	}`
	q, err := ParseQuery([]byte(data))
	require.NoError(t, err)

	bq := q.(*query.BooleanQuery)
	require.Len(t, bq.Clauses, 3)
	assert.Equal(t, query.BooleanMust, bq.Clauses[0].Occur)
	assert.Equal(t, query.BooleanShould, bq.Clauses[1].Occur)
	assert.True(t, bq.Clauses[2].Prohibited())
	assert.IsType(t, &query.PrefixQuery{}, bq.Clauses[1].Query)
}

func TestParseQueryPhrase(t *testing.T) {
	q, err := ParseQuery([]byte(`{"type":"phrase","field":"body","terms":["big","walrus"],"slop":1}`))
	require.NoError(t, err)

	pq := q.(*query.PhraseQuery)
	require.Len(t, pq.Terms, 2)
	assert.Equal(t, "big", pq.Terms[0].Text())
	assert.Equal(t, 1, pq.Slop)
}

func TestParseQueryMultiPhrasePrefix(t *testing.T) {
	data := `{"type":"multi_phrase_prefix","field":"body","positions":[["big","large"],["wal"]]}`
	q, err := ParseQuery([]byte(data))
	require.NoError(t, err)

	mp := q.(*query.MultiPhrasePrefixQuery)
	require.Len(t, mp.Positions, 2)
	assert.Len(t, mp.Positions[0], 2)
	assert.Equal(t, "body", mp.Positions[1][0].Field)
}

func TestParseQueryFuzzyDefaults(t *testing.T) {
	q, err := ParseQuery([]byte(`{"type":"fuzzy","field":"body","value":"walrus"}`))
	require.NoError(t, err)

	fq := q.(*query.FuzzyQuery)
	assert.Equal(t, 2, fq.MaxEdits)
	assert.True(t, fq.Transpositions)
}

func TestParseQueryFuzzyExplicitZeroEdits(t *testing.T) {
	q, err := ParseQuery([]byte(`{"type":"fuzzy","field":"body","value":"walrus","max_edits":0}`))
	require.NoError(t, err)
	assert.Equal(t, 0, q.(*query.FuzzyQuery).MaxEdits)
}

func TestParseQueryWildcardCompiles(t *testing.T) {
	q, err := ParseQuery([]byte(`{"type":"wildcard","field":"body","value":"wal*us"}`))
	require.NoError(t, err)
	assert.NotNil(t, q.(*query.WildcardQuery).Automaton)
}

func TestParseQueryRegexpRejectsBadPattern(t *testing.T) {
	_, err := ParseQuery([]byte(`{"type":"regexp","field":"body","value":"walru("}`))
	assert.Error(t, err)
}

func TestParseQuerySpanNear(t *testing.T) {
	data := `{
		"type": "span_near", "slop": 2, "in_order": true,
		"queries": [
			{"type": "span_term", "field": "body", "value": "big"},
			{"type": "span_term", "field": "body", "value": "walrus"}
		]
	}`
	q, err := ParseQuery([]byte(data))
	require.NoError(t, err)

	sn := q.(*query.SpanNearQuery)
	require.Len(t, sn.Clauses, 2)
	assert.True(t, sn.InOrder)
}

func TestParseQuerySpanNearRejectsNonSpanClause(t *testing.T) {
	data := `{
		"type": "span_near",
		"queries": [{"type": "term", "field": "body", "value": "walrus"}]
	}`
	_, err := ParseQuery([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "span")
}

func TestParseQuerySpanNot(t *testing.T) {
	data := `{
		"type": "span_not",
		"include": {"type": "span_term", "field": "body", "value": "walrus"},
		"exclude": {"type": "span_term", "field": "body", "value": "squid"}
	}`
	q, err := ParseQuery([]byte(data))
	require.NoError(t, err)
	assert.IsType(t, &query.SpanNotQuery{}, q)
}

func TestParseQueryCommonTermsOccurDefaults(t *testing.T) {
	data := `{"type":"common_terms","field":"body","terms":["the","walrus"],"cutoff_frequency":10}`
	q, err := ParseQuery([]byte(data))
	require.NoError(t, err)

	ct := q.(*query.CommonTermsQuery)
	assert.Equal(t, query.BooleanShould, ct.HighFreqOccur)
	assert.Equal(t, query.BooleanMust, ct.LowFreqOccur)
}

func TestParseQueryErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing type", `{"field":"body","value":"x"}`},
		{"unknown type", `{"type":"geo_shape"}`},
		{"bad occur", `{"type":"bool","clauses":[{"occur":"maybe","query":{"type":"match_all"}}]}`},
		{"constant_score without child", `{"type":"constant_score"}`},
		{"malformed json", `{"type":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
