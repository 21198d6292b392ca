package query

// Rewriter resolves lazy and composite query nodes into primitive,
// immediately-flattenable form using index statistics. Implementations may
// perform index lookups and may fail with I/O-class errors; callers do not
// retry. A rewriter that cannot make progress must return its input
// unchanged.
type Rewriter interface {
	Rewrite(q Query) (Query, error)
}

// RewriterFunc adapts a function to the Rewriter interface.
type RewriterFunc func(q Query) (Query, error)

func (f RewriterFunc) Rewrite(q Query) (Query, error) { return f(q) }

// Rewritable is implemented by multi-term query variants whose rewrite
// fan-out can be bounded to the top N matched terms.
type Rewritable interface {
	Query
	WithTermLimit(max int) Query
}

// WithTermLimit bounds the rewrite fan-out of q to at most max terms if the
// variant supports it, returning a new node value. Queries without a bound
// are returned unchanged.
func WithTermLimit(q Query, max int) Query {
	if r, ok := q.(Rewritable); ok {
		return r.WithTermLimit(max)
	}
	return q
}
