// Package result holds the success/failure wrapper returned by command and
// query handlers. Expected business-rule rejections travel as a Failure, not
// as a panic.
package result

type Result[T any] struct {
	value T
	err   error
}

func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure wraps err. A nil err is an internal contract breach.
func Failure[T any](err error) Result[T] {
	if err == nil {
		panic("result: Failure called with nil error")
	}
	return Result[T]{err: err}
}

// Of converts a Go (value, error) pair.
func Of[T any](value T, err error) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(value)
}

func (r Result[T]) IsSuccess() bool { return r.err == nil }
func (r Result[T]) IsFailure() bool { return r.err != nil }

// Value is the zero value of T on failure.
func (r Result[T]) Value() T { return r.value }

func (r Result[T]) Err() error { return r.err }

// Error is the failure message, empty on success.
func (r Result[T]) Error() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Unwrap returns the (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}
