package analysis

import "strings"

// WhitespaceAnalyzer splits on whitespace with no normalization. Useful
// for fields indexed verbatim, where case and punctuation carry meaning.
type WhitespaceAnalyzer struct{}

func NewWhitespaceAnalyzer() *WhitespaceAnalyzer {
	return &WhitespaceAnalyzer{}
}

func (a *WhitespaceAnalyzer) Analyze(text string) []Token {
	fields := strings.Fields(text)
	tokens := make([]Token, 0, len(fields))

	searchFrom := 0
	for pos, f := range fields {
		idx := strings.Index(text[searchFrom:], f)
		start := searchFrom + idx
		end := start + len(f)

		tokens = append(tokens, Token{
			Term:      f,
			Position:  pos,
			StartByte: start,
			EndByte:   end,
		})
		searchFrom = end
	}

	return tokens
}
