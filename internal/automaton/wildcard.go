package automaton

import "errors"

// Wildcard pattern limits.
const MaxWildcardPatternLength = 256

var ErrWildcardPatternTooLong = errors.New("wildcard pattern exceeds maximum length")

// NewWildcardAutomaton compiles a wildcard pattern into a DFA.
// Supports '*' (zero or more characters) and '?' (exactly one character).
func NewWildcardAutomaton(pattern []byte) (*DFA, error) {
	if len(pattern) > MaxWildcardPatternLength {
		return nil, ErrWildcardPatternTooLong
	}
	return subsetConstruct(buildWildcardNFA(pattern))
}

func buildWildcardNFA(pattern []byte) *nfa {
	n := &nfa{}
	current := n.add()

	for _, ch := range pattern {
		next := n.add()

		switch ch {
		case '*':
			// ε-transition to skip the star plus a self-loop on any byte.
			n.addEpsilon(current, next)
			n.addRange(next, 0, 0xFF, next)
			current = next
		case '?':
			// Any single byte advances.
			n.addRange(current, 0, 0xFF, next)
			current = next
		default:
			// Exact byte match.
			n.addByte(current, ch, next)
			current = next
		}
	}

	n.states[current].accepting = true
	return n
}
