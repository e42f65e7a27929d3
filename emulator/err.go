package emulator

import "github.com/cogwork/cogvm/translate"

var f = translate.From

// ErrRuntime wraps an execution fault with its source position.
type ErrRuntime struct {
	LineNo int
	Pc     int
	Err    error
}

func (e *ErrRuntime) Error() string {
	return f("line %d pc %d %v", e.LineNo, e.Pc, e.Err)
}

func (e *ErrRuntime) Unwrap() error {
	return e.Err
}

// ErrConfig reports a configured define that would not parse.
type ErrConfig struct {
	Name string
	Err  error
}

func (e *ErrConfig) Error() string {
	return f("define %v: %v", e.Name, e.Err)
}

func (e *ErrConfig) Unwrap() error {
	return e.Err
}
