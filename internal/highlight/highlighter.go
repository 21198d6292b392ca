package highlight

import (
	"sort"
	"strings"
	"unicode/utf8"

	"GoHighlight/internal/analysis"
	"GoHighlight/internal/automaton"
)

// Fragment is one highlighted snippet of a field, with byte offsets into
// the original text.
type Fragment struct {
	Text      string
	Score     float32
	StartByte int
	EndByte   int
}

// Options control fragment rendering.
type Options struct {
	PreTag       string
	PostTag      string
	FragmentSize int
	MaxFragments int
}

func DefaultOptions() Options {
	return Options{
		PreTag:       "<em>",
		PostTag:      "</em>",
		FragmentSize: 100,
		MaxFragments: 5,
	}
}

// Highlighter locates flattened terms and automata in document text and
// renders the best-scoring fragments.
type Highlighter struct {
	analyzer analysis.Analyzer
	opts     Options
}

func New(analyzer analysis.Analyzer, opts Options) *Highlighter {
	if opts.FragmentSize <= 0 {
		opts.FragmentSize = DefaultOptions().FragmentSize
	}
	if opts.MaxFragments <= 0 {
		opts.MaxFragments = DefaultOptions().MaxFragments
	}
	return &Highlighter{analyzer: analyzer, opts: opts}
}

type match struct {
	tok    analysis.Token
	weight float32
}

// Highlight tokenizes text, finds tokens matching the extracted terms and
// automata, and returns up to MaxFragments fragments ordered by position.
// A fragment scores the sum of the weights of the matches it contains.
func (h *Highlighter) Highlight(field, text string, ex *Extractor) []Fragment {
	ms := h.matches(field, text, ex)
	if len(ms) == 0 {
		return nil
	}

	frags := h.fragment(text, ms)
	sort.SliceStable(frags, func(i, j int) bool { return frags[i].Score > frags[j].Score })
	if len(frags) > h.opts.MaxFragments {
		frags = frags[:h.opts.MaxFragments]
	}
	sort.Slice(frags, func(i, j int) bool { return frags[i].StartByte < frags[j].StartByte })
	return frags
}

func (h *Highlighter) matches(field, text string, ex *Extractor) []match {
	weights := ex.TermWeights(field)
	automata := ex.Automata()

	var ms []match
	for _, tok := range h.analyzer.Analyze(text) {
		w, ok := weights[tok.Term]
		if !ok {
			for _, wa := range automata {
				if automaton.Run(wa.Automaton, []byte(tok.Term)) {
					w, ok = wa.Weight, true
					break
				}
			}
		}
		if ok {
			ms = append(ms, match{tok: tok, weight: w})
		}
	}
	return ms
}

// fragment groups matches into windows of roughly FragmentSize bytes. Each
// window starts a little before its first match so the reader gets context,
// and grows past its nominal end rather than splitting a match.
func (h *Highlighter) fragment(text string, ms []match) []Fragment {
	var frags []Fragment
	for i := 0; i < len(ms); {
		start := ms[i].tok.StartByte - h.opts.FragmentSize/4
		if start < 0 {
			start = 0
		}
		start = runeFloor(text, start)
		end := start + h.opts.FragmentSize
		if end > len(text) {
			end = len(text)
		}
		end = runeFloor(text, end)

		j := i
		var score float32
		for j < len(ms) && ms[j].tok.StartByte < end {
			if ms[j].tok.EndByte > end {
				end = ms[j].tok.EndByte
			}
			score += ms[j].weight
			j++
		}

		frags = append(frags, Fragment{
			Text:      h.render(text, start, end, ms[i:j]),
			Score:     score,
			StartByte: start,
			EndByte:   end,
		})
		i = j
	}
	return frags
}

func (h *Highlighter) render(text string, start, end int, ms []match) string {
	var b strings.Builder
	prev := start
	for _, m := range ms {
		b.WriteString(text[prev:m.tok.StartByte])
		b.WriteString(h.opts.PreTag)
		b.WriteString(text[m.tok.StartByte:m.tok.EndByte])
		b.WriteString(h.opts.PostTag)
		prev = m.tok.EndByte
	}
	b.WriteString(text[prev:end])
	return b.String()
}

// runeFloor moves i back to the nearest rune boundary at or before it.
func runeFloor(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
