package flatten

// RewriteError wraps an I/O-class failure from the rewrite capability. It is
// the only error kind the flattener produces of its own accord; it is
// surfaced synchronously out of the top-level Flatten call, never retried.
type RewriteError struct {
	Err error
}

func (e *RewriteError) Error() string {
	return "query rewrite failed: " + e.Err.Error()
}

func (e *RewriteError) Unwrap() error {
	return e.Err
}
