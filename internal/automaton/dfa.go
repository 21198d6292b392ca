package automaton

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// MaxDFAStates bounds subset construction. Patterns that blow past it fail
// to compile instead of exhausting memory.
const MaxDFAStates = 10000

var ErrDFAStateLimitExceeded = errors.New("DFA state limit exceeded during construction")

// DFA is a dense table-backed automaton produced by subset construction.
// Wildcard and regexp patterns both compile to this representation.
type DFA struct {
	// transitions[state][byte] = next state
	transitions [][]State
	accepting   []bool
}

func (a *DFA) Start() State {
	return 1 // State 1 is start; 0 is dead.
}

func (a *DFA) Step(state State, b byte) State {
	if state == DeadState || int(state) >= len(a.transitions) {
		return DeadState
	}
	return a.transitions[state][b]
}

func (a *DFA) IsAccept(state State) bool {
	if state == DeadState || int(state) >= len(a.accepting) {
		return false
	}
	return a.accepting[state]
}

func (a *DFA) CanMatch(state State) bool {
	return state != DeadState
}

// --- NFA representation shared by the wildcard and regexp compilers ---

type nfaState struct {
	transitions [256][]int // byte → set of next states
	epsilon     []int      // ε-transitions
	accepting   bool
}

type nfa struct {
	states []*nfaState
}

func newNFAState() *nfaState {
	return &nfaState{}
}

// add appends a fresh state and returns its id.
func (n *nfa) add() int {
	n.states = append(n.states, newNFAState())
	return len(n.states) - 1
}

func (n *nfa) addEpsilon(from, to int) {
	n.states[from].epsilon = append(n.states[from].epsilon, to)
}

func (n *nfa) addByte(from int, b byte, to int) {
	n.states[from].transitions[b] = append(n.states[from].transitions[b], to)
}

func (n *nfa) addRange(from int, lo, hi byte, to int) {
	for b := int(lo); b <= int(hi); b++ {
		n.addByte(from, byte(b), to)
	}
}

// subsetConstruct converts an NFA to a DFA using the subset construction
// algorithm. Returns an error if the DFA exceeds MaxDFAStates.
func subsetConstruct(n *nfa) (*DFA, error) {
	type stateSet map[int]bool

	epsilonClosure := func(states stateSet) stateSet {
		closure := make(stateSet)
		stack := make([]int, 0, len(states))
		for s := range states {
			closure[s] = true
			stack = append(stack, s)
		}
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, eps := range n.states[s].epsilon {
				if !closure[eps] {
					closure[eps] = true
					stack = append(stack, eps)
				}
			}
		}
		return closure
	}

	// Canonical key: sorted state ids. Exact, unlike a bare hash.
	setKey := func(s stateSet) string {
		ids := make([]int, 0, len(s))
		for k := range s {
			ids = append(ids, k)
		}
		sort.Ints(ids)
		var sb strings.Builder
		for _, id := range ids {
			sb.WriteString(strconv.Itoa(id))
			sb.WriteByte(',')
		}
		return sb.String()
	}

	isAccepting := func(s stateSet) bool {
		for k := range s {
			if n.states[k].accepting {
				return true
			}
		}
		return false
	}

	// DFA state 0 = dead, state 1 = start
	dfa := &DFA{
		transitions: [][]State{make([]State, 256)}, // dead state
		accepting:   []bool{false},
	}

	startSet := epsilonClosure(stateSet{0: true})
	dfa.transitions = append(dfa.transitions, make([]State, 256))
	dfa.accepting = append(dfa.accepting, isAccepting(startSet))

	setToID := map[string]State{setKey(startSet): 1}
	queue := []stateSet{startSet}
	queueIDs := []State{1}

	for len(queue) > 0 {
		currentSet := queue[0]
		currentID := queueIDs[0]
		queue = queue[1:]
		queueIDs = queueIDs[1:]

		for b := 0; b < 256; b++ {
			nextSet := make(stateSet)
			for s := range currentSet {
				for _, target := range n.states[s].transitions[b] {
					nextSet[target] = true
				}
			}

			if len(nextSet) == 0 {
				dfa.transitions[currentID][b] = DeadState
				continue
			}

			nextSet = epsilonClosure(nextSet)
			key := setKey(nextSet)

			if id, exists := setToID[key]; exists {
				dfa.transitions[currentID][b] = id
			} else {
				newID := State(len(dfa.transitions))
				if int(newID) >= MaxDFAStates {
					return nil, ErrDFAStateLimitExceeded
				}
				setToID[key] = newID
				dfa.transitions = append(dfa.transitions, make([]State, 256))
				dfa.accepting = append(dfa.accepting, isAccepting(nextSet))
				dfa.transitions[currentID][b] = newID
				queue = append(queue, nextSet)
				queueIDs = append(queueIDs, newID)
			}
		}
	}

	return dfa, nil
}
