package automaton

// State represents a state in a deterministic finite automaton.
type State uint32

// DeadState is the sink state from which no accepting state is reachable.
const DeadState State = 0

// Automaton is the core interface for all DFA-based pattern matching.
// Prefix, wildcard, regexp and fuzzy patterns compile to acceptors behind
// this interface so the highlighter can run any of them over candidate
// terms the same way.
//
// Properties:
//   - Deterministic: single transition per (state, input)
//   - Finite: bounded state count
//   - No ε-transitions
type Automaton interface {
	// Start returns the initial state.
	Start() State

	// Step returns the next state for the given input byte.
	// Returns DeadState if no transition exists.
	Step(state State, b byte) State

	// IsAccept returns true if the state is an accepting state.
	IsAccept(state State) bool

	// CanMatch returns true if any accepting state is reachable from this
	// state. Used for pruning.
	CanMatch(state State) bool
}

// Run feeds input through the automaton byte by byte and reports whether it
// ends in an accepting state.
func Run(a Automaton, input []byte) bool {
	state := a.Start()
	for _, b := range input {
		state = a.Step(state, b)
		if state == DeadState {
			return false
		}
	}
	return a.IsAccept(state)
}
