package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"GoHighlight/internal/config"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h, err := NewHandler(config.Default(), zap.NewNop())
	require.NoError(t, err)
	return NewRouter(h)
}

func postHighlight(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/highlight", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type highlightResponse struct {
	TookMs    int64 `json:"took_ms"`
	Documents []struct {
		ID     string `json:"id"`
		Fields map[string][]struct {
			Text  string  `json:"text"`
			Score float32 `json:"score"`
		} `json:"fields"`
	} `json:"documents"`
}

func TestHighlightEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"query": {"type": "term", "field": "body", "value": "walrus"},
		"documents": [
			{"id": "1", "fields": {"body": "The walrus swims in kelp."}},
			{"id": "2", "fields": {"body": "No marine mammals here."}}
		]
	}`
	rec := postHighlight(t, router, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp highlightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Documents, 2)

	frags := resp.Documents[0].Fields["body"]
	require.Len(t, frags, 1)
	assert.Contains(t, frags[0].Text, "<em>walrus</em>")

	assert.Empty(t, resp.Documents[1].Fields)
	assert.Equal(t, "2", resp.Documents[1].ID)
}

func TestHighlightEndpointTermRangeUsesDocumentDictionary(t *testing.T) {
	router := newTestRouter(t)

	// The range resolves against terms present in the submitted documents.
	body := `{
		"query": {"type": "term_range", "field": "body", "lower": "b", "upper": "c", "include_lower": true, "include_upper": true, "max_expansions": 10},
		"documents": [
			{"id": "1", "fields": {"body": "apple banana cherry date"}}
		]
	}`
	rec := postHighlight(t, router, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp highlightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	frags := resp.Documents[0].Fields["body"]
	require.Len(t, frags, 1)
	assert.Contains(t, frags[0].Text, "<em>banana</em>")
	assert.NotContains(t, frags[0].Text, "<em>apple</em>")
	assert.NotContains(t, frags[0].Text, "<em>cherry</em>")
}

func TestHighlightEndpointOptionsOverride(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"query": {"type": "term", "field": "body", "value": "walrus"},
		"documents": [{"id": "1", "fields": {"body": "a walrus"}}],
		"options": {"pre_tag": "[", "post_tag": "]"}
	}`
	rec := postHighlight(t, router, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp highlightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Documents[0].Fields["body"][0].Text, "[walrus]")
}

func TestHighlightEndpointPrefixQuery(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"query": {"type": "prefix", "field": "body", "value": "wal"},
		"documents": [{"id": "1", "fields": {"body": "walrus and walnut but not whale"}}]
	}`
	rec := postHighlight(t, router, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp highlightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	text := resp.Documents[0].Fields["body"][0].Text
	assert.Contains(t, text, "<em>walrus</em>")
	assert.Contains(t, text, "<em>walnut</em>")
	assert.NotContains(t, text, "<em>whale</em>")
}

func TestHighlightEndpointBadRequests(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{{`},
		{"missing query", `{"documents": [{"id": "1", "fields": {"body": "text"}}]}`},
		{"missing documents", `{"query": {"type": "match_all"}}`},
		{"unknown query type", `{"query": {"type": "geo_shape"}, "documents": [{"id": "1", "fields": {"body": "x"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postHighlight(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var errResp struct {
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.NotEmpty(t, errResp.Error.Message)
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
