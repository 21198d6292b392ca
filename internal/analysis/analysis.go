// Package analysis tokenizes document text so highlighters can line up
// query terms with byte ranges in the original content.
package analysis

// Token is a single term with its position and the byte range it
// occupies in the source text. Offsets always index the original,
// un-normalized input so callers can slice snippets out of it.
type Token struct {
	Term      string
	Position  int
	StartByte int
	EndByte   int
}

// Analyzer turns field text into a token stream. Implementations are
// stateless and safe for concurrent use.
type Analyzer interface {
	Analyze(text string) []Token
}
