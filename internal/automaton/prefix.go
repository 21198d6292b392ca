package automaton

// PrefixAutomaton accepts all strings starting with a given prefix. It is
// the concatenation of an exact-string acceptor for the prefix with an
// accept-any-suffix acceptor, fused into one state machine.
//
// States: 1..len(prefix)+1, where the last state accepts and loops on any
// byte. An empty prefix accepts everything.
type PrefixAutomaton struct {
	prefix []byte
}

// NewPrefixAutomaton creates an automaton that accepts strings with the given prefix.
func NewPrefixAutomaton(prefix []byte) *PrefixAutomaton {
	return &PrefixAutomaton{prefix: prefix}
}

func (a *PrefixAutomaton) Start() State {
	return 1 // State 1 is the start; DeadState (0) is dead.
}

func (a *PrefixAutomaton) Step(state State, b byte) State {
	if state == DeadState {
		return DeadState
	}
	pos := int(state) - 1 // state 1 = position 0
	if pos < len(a.prefix) {
		if b == a.prefix[pos] {
			return State(pos + 2) // advance to next state
		}
		return DeadState
	}
	// Past prefix: accept any byte, stay in accepting state.
	return state
}

func (a *PrefixAutomaton) IsAccept(state State) bool {
	if state == DeadState {
		return false
	}
	return int(state)-1 >= len(a.prefix)
}

func (a *PrefixAutomaton) CanMatch(state State) bool {
	return state != DeadState
}
