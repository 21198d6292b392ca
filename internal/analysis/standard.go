package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// StandardAnalyzer splits on Unicode word boundaries and lowercases
// terms, keeping byte offsets into the original text. It matches what
// most indexing pipelines do, so highlighted terms line up with the
// terms a query was flattened against.
type StandardAnalyzer struct{}

func NewStandardAnalyzer() *StandardAnalyzer {
	return &StandardAnalyzer{}
}

func (a *StandardAnalyzer) Analyze(text string) []Token {
	var tokens []Token
	pos := 0
	i := 0

	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isWordRune(r) {
			i += size
			continue
		}

		start := i
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if !isWordRune(r) {
				break
			}
			i += size
		}

		tokens = append(tokens, Token{
			Term:      strings.ToLower(text[start:i]),
			Position:  pos,
			StartByte: start,
			EndByte:   i,
		})
		pos++
	}

	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
