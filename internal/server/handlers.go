// Package server exposes the query flattening and highlighting pipeline
// over a thin HTTP surface.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"GoHighlight/internal/analysis"
	"GoHighlight/internal/config"
	"GoHighlight/internal/flatten"
	"GoHighlight/internal/highlight"
)

// Handler holds HTTP handlers for the highlight API.
type Handler struct {
	cfg      config.Config
	analyzer analysis.Analyzer
	logger   *zap.Logger
}

// NewHandler creates a Handler using the analyzer named in the config.
func NewHandler(cfg config.Config, logger *zap.Logger) (*Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	analyzer, err := analysis.NewRegistry().Get(cfg.Highlight.Analyzer)
	if err != nil {
		return nil, err
	}
	return &Handler{cfg: cfg, analyzer: analyzer, logger: logger}, nil
}

// NewRouter builds the chi router with the standard middleware stack.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metricsMiddleware())

	r.Get("/health", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/highlight", h.handleHighlight)
	return r
}

type highlightRequest struct {
	Query     json.RawMessage `json:"query"`
	Documents []documentJSON  `json:"documents"`
	Options   optionsJSON     `json:"options"`
}

type documentJSON struct {
	ID     string            `json:"id"`
	Fields map[string]string `json:"fields"`
}

// optionsJSON overrides the configured defaults per request. Pointers
// distinguish "absent" from zero values.
type optionsJSON struct {
	PhraseAsTerms  *bool   `json:"phrase_as_terms"`
	RemoveHighFreq *bool   `json:"remove_high_freq_from_common_terms"`
	PreTag         *string `json:"pre_tag"`
	PostTag        *string `json:"post_tag"`
	FragmentSize   *int    `json:"fragment_size"`
	MaxFragments   *int    `json:"max_fragments"`
}

type fragmentJSON struct {
	Text  string  `json:"text"`
	Score float32 `json:"score"`
}

type documentResultJSON struct {
	ID     string                    `json:"id"`
	Fields map[string][]fragmentJSON `json:"fields"`
}

func (h *Handler) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Query) == 0 {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, "documents are required")
		return
	}

	q, err := ParseQuery(req.Query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()

	// The request's own documents back the term dictionary, so range and
	// common-terms queries resolve against the content being highlighted.
	dict := highlight.NewDictionary()
	for _, doc := range req.Documents {
		for field, text := range doc.Fields {
			dict.IndexTokens(field, h.analyzer.Analyze(text))
		}
	}

	flattener := flatten.New(h.flattenOptions(req.Options))
	ex := &highlight.Extractor{}
	if err := flattener.Flatten(q, dict, ex); err != nil {
		var rwErr *flatten.RewriteError
		if errors.As(err, &rwErr) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	highlighter := highlight.New(h.analyzer, h.highlightOptions(req.Options))

	results := make([]documentResultJSON, len(req.Documents))
	g, ctx := errgroup.WithContext(r.Context())
	for i, doc := range req.Documents {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fields := make(map[string][]fragmentJSON)
			for name, text := range doc.Fields {
				frags := highlighter.Highlight(name, text, ex)
				if len(frags) == 0 {
					continue
				}
				out := make([]fragmentJSON, len(frags))
				for j, f := range frags {
					out[j] = fragmentJSON{Text: f.Text, Score: f.Score}
				}
				fields[name] = out
			}
			results[i] = documentResultJSON{ID: doc.ID, Fields: fields}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	took := time.Since(start)
	highlightDocuments.Add(float64(len(req.Documents)))
	h.logger.Debug("highlight request",
		zap.Int("documents", len(req.Documents)),
		zap.Int("terms", len(ex.Terms())),
		zap.Int("automata", len(ex.Automata())),
		zap.Duration("took", took),
	)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"took_ms":   took.Milliseconds(),
		"documents": results,
	})
}

func (h *Handler) flattenOptions(o optionsJSON) flatten.Options {
	opts := flatten.Options{
		MaxMultiTermQueryTerms:       h.cfg.Flatten.MaxMultiTermQueryTerms,
		PhraseAsTerms:                h.cfg.Flatten.PhraseAsTerms,
		KeepCommonTermsHighFrequency: h.cfg.Flatten.KeepCommonTermsHighFreq,
	}
	if o.PhraseAsTerms != nil {
		opts.PhraseAsTerms = *o.PhraseAsTerms
	}
	if o.RemoveHighFreq != nil {
		opts.KeepCommonTermsHighFrequency = !*o.RemoveHighFreq
	}
	return opts
}

func (h *Handler) highlightOptions(o optionsJSON) highlight.Options {
	opts := highlight.Options{
		PreTag:       h.cfg.Highlight.PreTag,
		PostTag:      h.cfg.Highlight.PostTag,
		FragmentSize: h.cfg.Highlight.FragmentSize,
		MaxFragments: h.cfg.Highlight.MaxFragments,
	}
	if o.PreTag != nil {
		opts.PreTag = *o.PreTag
	}
	if o.PostTag != nil {
		opts.PostTag = *o.PostTag
	}
	if o.FragmentSize != nil {
		opts.FragmentSize = *o.FragmentSize
	}
	if o.MaxFragments != nil {
		opts.MaxFragments = *o.MaxFragments
	}
	return opts
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"message": message,
		},
	})
}
