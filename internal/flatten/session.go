package flatten

import (
	"fmt"
	"hash/fnv"
	"io"

	"GoHighlight/internal/query"
)

// dedupKind distinguishes the key derivation per automaton-producing
// variant.
type dedupKind uint8

const (
	dedupPrefix   dedupKind = iota // key: prefix bytes
	dedupWildcard                  // key: pattern bytes
	dedupRegexp                    // key: node identity
	dedupFuzzy                     // key: {term, maxEdits, transpositions, prefixLength}
)

// dedupKey identifies one logical automaton source within a session.
type dedupKey struct {
	kind dedupKind
	key  string
}

// Session is the per-Flatten-call state: the dedup cache plus the rewriter
// and callback for this walk. Sessions are never reused across calls; stale
// dedup entries would silently suppress automata for an unrelated query.
// Not safe for concurrent use.
type Session struct {
	f        *Flattener
	rewriter query.Rewriter
	cb       Callback
	sent     map[dedupKey]struct{}
}

// Callback returns the sink events are delivered to.
func (s *Session) Callback() Callback { return s.cb }

// Rewriter returns the rewrite capability for this walk. May be nil.
func (s *Session) Rewriter() query.Rewriter { return s.rewriter }

// markSent records the key and reports whether this was its first
// occurrence in the session.
func (s *Session) markSent(key dedupKey) bool {
	if _, seen := s.sent[key]; seen {
		return false
	}
	s.sent[key] = struct{}{}
	return true
}

func fuzzyKey(q *query.FuzzyQuery) dedupKey {
	return dedupKey{
		kind: dedupFuzzy,
		key: fmt.Sprintf("%s\x00%d\x00%t\x00%d",
			q.Term.Bytes, q.MaxEdits, q.Transpositions, q.PrefixLength),
	}
}

// sourceHash derives the provenance tag for an automaton emission: the hash
// of the source override when present, otherwise of the dedup key itself.
func sourceHash(override query.Query, key dedupKey) uint32 {
	h := fnv.New32a()
	if override != nil {
		fmt.Fprintf(h, "%p", override)
	} else {
		h.Write([]byte{byte(key.kind)})
		io.WriteString(h, key.key)
	}
	return h.Sum32()
}
