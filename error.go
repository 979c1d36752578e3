package sqlbuilder

// PreconditionError is returned when a call is made with arguments the
// builder cannot accept, such as a sub-query without an alias. The call that
// fails leaves the builder untouched.
type PreconditionError struct {
	Op, Msg    string
	Underlying error
}

func (e *PreconditionError) Error() string {
	return e.Op + ": " + e.Msg
}

func (e *PreconditionError) Unwrap() error {
	return e.Underlying
}
