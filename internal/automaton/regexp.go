package automaton

import (
	"fmt"
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// NewRegexpAutomaton compiles a regular expression into a DFA. Matching is
// byte-oriented over whole terms: the pattern is implicitly anchored at both
// ends, the way term-level regexp queries behave. Supported syntax is the
// usual literals, classes, '.', grouping, alternation and repetition, with
// (?i) literals matching every case variant of each rune; boundary
// assertions are not supported and non-ASCII character classes are clamped
// to their ASCII intersection.
func NewRegexpAutomaton(pattern string) (*DFA, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, err
	}
	re = re.Simplify()

	n := &nfa{}
	start := n.add()
	end, err := addRegexp(n, re, start)
	if err != nil {
		return nil, err
	}
	n.states[end].accepting = true
	return subsetConstruct(n)
}

// addRuneBytes wires the UTF-8 encoding of r as a byte chain between two
// existing states.
func addRuneBytes(n *nfa, from int, r rune, to int) {
	var buf [utf8.UTFMax]byte
	size := utf8.EncodeRune(buf[:], r)
	cur := from
	for i := 0; i < size-1; i++ {
		next := n.add()
		n.addByte(cur, buf[i], next)
		cur = next
	}
	n.addByte(cur, buf[size-1], to)
}

// addRegexp wires the expression into the NFA starting at from and returns
// the state reached after matching it.
func addRegexp(n *nfa, re *syntax.Regexp, from int) (int, error) {
	switch re.Op {
	case syntax.OpEmptyMatch, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpBeginLine, syntax.OpEndLine:
		// Anchors are no-ops: the automaton always matches whole terms.
		return from, nil

	case syntax.OpLiteral:
		cur := from
		for _, r := range re.Rune {
			next := n.add()
			addRuneBytes(n, cur, r, next)
			if re.Flags&syntax.FoldCase != 0 {
				for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
					addRuneBytes(n, cur, f, next)
				}
			}
			cur = next
		}
		return cur, nil

	case syntax.OpCharClass:
		to := n.add()
		for i := 0; i+1 < len(re.Rune); i += 2 {
			lo, hi := re.Rune[i], re.Rune[i+1]
			if lo > 0x7F {
				continue
			}
			if hi > 0x7F {
				hi = 0x7F
			}
			n.addRange(from, byte(lo), byte(hi), to)
		}
		return to, nil

	case syntax.OpAnyChar:
		to := n.add()
		n.addRange(from, 0, 0xFF, to)
		return to, nil

	case syntax.OpAnyCharNotNL:
		to := n.add()
		n.addRange(from, 0, '\n'-1, to)
		n.addRange(from, '\n'+1, 0xFF, to)
		return to, nil

	case syntax.OpConcat:
		cur := from
		for _, sub := range re.Sub {
			next, err := addRegexp(n, sub, cur)
			if err != nil {
				return 0, err
			}
			cur = next
		}
		return cur, nil

	case syntax.OpAlternate:
		to := n.add()
		for _, sub := range re.Sub {
			end, err := addRegexp(n, sub, from)
			if err != nil {
				return 0, err
			}
			n.addEpsilon(end, to)
		}
		return to, nil

	case syntax.OpCapture:
		return addRegexp(n, re.Sub[0], from)

	case syntax.OpStar:
		body := n.add()
		n.addEpsilon(from, body)
		end, err := addRegexp(n, re.Sub[0], body)
		if err != nil {
			return 0, err
		}
		n.addEpsilon(end, body)
		to := n.add()
		n.addEpsilon(body, to)
		return to, nil

	case syntax.OpPlus:
		body := n.add()
		n.addEpsilon(from, body)
		end, err := addRegexp(n, re.Sub[0], body)
		if err != nil {
			return 0, err
		}
		n.addEpsilon(end, body)
		to := n.add()
		n.addEpsilon(end, to)
		return to, nil

	case syntax.OpQuest:
		end, err := addRegexp(n, re.Sub[0], from)
		if err != nil {
			return 0, err
		}
		to := n.add()
		n.addEpsilon(end, to)
		n.addEpsilon(from, to)
		return to, nil

	case syntax.OpNoMatch:
		// Unconnected state: nothing reaches it.
		return n.add(), nil

	default:
		return 0, fmt.Errorf("unsupported regexp construct %v", re.Op)
	}
}
