package httpclient

// Future is the pending result of an asynchronous fetch.
// It resolves exactly once; Wait may be called any number of times.
type Future struct {
	done chan struct{}
	body string
	err  error
}

// Go runs fn on a new goroutine and returns a Future for its result.
func Go(fn func() (string, error)) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.body, f.err = fn()
	}()
	return f
}

// Completed returns an already-resolved Future.
func Completed(body string, err error) *Future {
	f := &Future{done: make(chan struct{}), body: body, err: err}
	close(f.done)
	return f
}

// Done returns a channel that is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the fetch completes and returns its body or error.
func (f *Future) Wait() (string, error) {
	<-f.done
	return f.body, f.err
}
