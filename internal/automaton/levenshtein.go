package automaton

import "errors"

// Levenshtein automaton limits.
const MaxEditDistance = 2

var ErrEditDistanceTooLarge = errors.New("edit distance exceeds maximum of 2")

// LevenshteinAutomaton accepts strings within edit distance ≤ maxDist of the
// target. The classic (position, editsUsed) NFA is compiled through subset
// construction, so every reachable edit path stays in the frontier. A greedy
// single-state stepper would drop paths: for target "abc" at distance 1 the
// input "acc" only accepts through the substitution path, which a
// furthest-position heuristic discards in favor of a deletion path that
// later dies. Damerau mode adds pending-transposition NFA states so an
// adjacent swap costs a single edit.
//
// Supports edit distance ≤ 2 only. Higher distances produce exponential
// state counts.
type LevenshteinAutomaton struct {
	dfa *DFA
}

// NewLevenshteinAutomaton creates an automaton accepting strings within the
// given edit distance of the target.
func NewLevenshteinAutomaton(target []byte, maxDist int) (*LevenshteinAutomaton, error) {
	return newLevenshtein(target, maxDist, false)
}

// NewDamerauAutomaton is like NewLevenshteinAutomaton but counts a
// transposition of two adjacent bytes as a single edit.
func NewDamerauAutomaton(target []byte, maxDist int) (*LevenshteinAutomaton, error) {
	return newLevenshtein(target, maxDist, true)
}

func newLevenshtein(target []byte, maxDist int, transpositions bool) (*LevenshteinAutomaton, error) {
	if maxDist < 0 || maxDist > MaxEditDistance {
		return nil, ErrEditDistanceTooLarge
	}
	dfa, err := subsetConstruct(levenshteinNFA(target, maxDist, transpositions))
	if err != nil {
		return nil, err
	}
	return &LevenshteinAutomaton{dfa: dfa}, nil
}

// levenshteinNFA lays out one NFA state per (position, editsUsed) pair,
// position 0..len(target), edits 0..maxDist, with id pos*(maxDist+1)+edits
// so the start pair (0,0) is NFA state 0. From (pos, e):
//
//	match:        target[pos]  → (pos+1, e)
//	insertion:    any byte     → (pos,   e+1)
//	substitution: any byte     → (pos+1, e+1)
//	deletion:     ε            → (pos+1, e+1)
//
// A pair is accepting when the rest of the target fits in the remaining
// budget. Damerau mode appends a parallel band of pending states: consuming
// target[pos+1] pays one edit and enters pending(pos, e+1), which completes
// the swap on target[pos] into (pos+2, e+1). A pending state needs no
// accepting flag or fallback edges: any input reaching it also reaches
// (pos+2, e+1) through the deletion-then-match path, which the subset
// frontier carries alongside it.
func levenshteinNFA(target []byte, maxDist int, transpositions bool) *nfa {
	n := &nfa{}
	w := maxDist + 1
	id := func(pos, edits int) int { return pos*w + edits }
	band := (len(target) + 1) * w
	pendingID := func(pos, edits int) int { return band + pos*w + edits }

	total := band
	if transpositions {
		total *= 2
	}
	for i := 0; i < total; i++ {
		n.add()
	}

	for pos := 0; pos <= len(target); pos++ {
		for edits := 0; edits <= maxDist; edits++ {
			from := id(pos, edits)
			if len(target)-pos <= maxDist-edits {
				n.states[from].accepting = true
			}
			if pos < len(target) {
				n.addByte(from, target[pos], id(pos+1, edits))
			}
			if edits < maxDist {
				n.addRange(from, 0, 255, id(pos, edits+1))
				if pos < len(target) {
					n.addRange(from, 0, 255, id(pos+1, edits+1))
					n.addEpsilon(from, id(pos+1, edits+1))
				}
				if transpositions && pos+1 < len(target) && target[pos] != target[pos+1] {
					n.addByte(from, target[pos+1], pendingID(pos, edits+1))
					n.addByte(pendingID(pos, edits+1), target[pos], id(pos+2, edits+1))
				}
			}
		}
	}
	return n
}

func (a *LevenshteinAutomaton) Start() State {
	return a.dfa.Start()
}

func (a *LevenshteinAutomaton) Step(state State, b byte) State {
	return a.dfa.Step(state, b)
}

func (a *LevenshteinAutomaton) IsAccept(state State) bool {
	return a.dfa.IsAccept(state)
}

func (a *LevenshteinAutomaton) CanMatch(state State) bool {
	return a.dfa.CanMatch(state)
}
