package analysis

// KeywordAnalyzer emits the whole input as one token. Fields analyzed
// this way highlight all-or-nothing.
type KeywordAnalyzer struct{}

func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

func (a *KeywordAnalyzer) Analyze(text string) []Token {
	if text == "" {
		return nil
	}
	return []Token{{Term: text, StartByte: 0, EndByte: len(text)}}
}
