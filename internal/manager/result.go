package manager

// Result is delivered to every callback. Err is nil on success; on failure
// Message is the human-readable text to show and Kind tags the cause.
type Result[T any] struct {
	Value   T
	Message string
	Err     error
	Kind    ErrorKind
}

// OK reports whether the operation succeeded
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Callback receives the outcome of an asynchronous operation. It runs on the
// goroutine that pumps the dispatcher, or synchronously on the caller's
// goroutine when the operation fails before being queued.
type Callback[T any] func(Result[T])

func (c Callback[T]) deliver(r Result[T]) {
	if c != nil {
		c(r)
	}
}

func succeed[T any](v T, message string) Result[T] {
	return Result[T]{Value: v, Message: message}
}

// fail builds a failure result whose message is prefix followed by the
// explanation of err
func fail[T any](err error, prefix string) Result[T] {
	p := Explain(err)
	msg := p.Error()
	if prefix != "" && p.Kind != KindValidation {
		msg = prefix + ": " + msg
	}
	return Result[T]{Message: msg, Err: err, Kind: p.Kind}
}
