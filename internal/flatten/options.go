package flatten

// DefaultMaxMultiTermQueryTerms bounds how many terms a multi-term query may
// rewrite into.
const DefaultMaxMultiTermQueryTerms = 1000

// Options configures a Flattener. All fields are fixed at construction.
type Options struct {
	// MaxMultiTermQueryTerms bounds rewrite fan-out for multi-term queries.
	// Zero or negative means DefaultMaxMultiTermQueryTerms.
	MaxMultiTermQueryTerms int

	// PhraseAsTerms emits every term of a phrase as an independent weighted
	// term instead of phrase boundary events. Use when the consumer does not
	// need positional semantics.
	PhraseAsTerms bool

	// KeepCommonTermsHighFrequency retains the optional high-frequency
	// clause when a common-terms query rewrites into the expected two-clause
	// shape. The zero value drops it, which is the stock behavior.
	KeepCommonTermsHighFrequency bool

	// Unknown is an optional hook offered every node the flattener does not
	// recognize, before the node falls back to generic rewrite.
	Unknown UnknownHook
}

// DefaultOptions returns Options matching the stock flattener behavior. The
// zero Options value behaves identically; this form just makes the term
// bound explicit.
func DefaultOptions() Options {
	return Options{
		MaxMultiTermQueryTerms: DefaultMaxMultiTermQueryTerms,
	}
}
