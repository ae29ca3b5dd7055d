// Package errorsx provides error helpers used throughout the module.
package errorsx

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"
)

func callers() []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[:n]
}

type stacked struct {
	cause error
	stack []uintptr
}

func (t stacked) Error() string {
	return t.cause.Error()
}

func (t stacked) Unwrap() error {
	return t.cause
}

func (t stacked) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, t.cause.Error())
			frames := runtime.CallersFrames(t.stack)
			for {
				frame, more := frames.Next()
				fmt.Fprintf(s, "\n%s\n\t%s:%d", frame.Function, frame.File, frame.Line)
				if !more {
					break
				}
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, t.Error())
	case 'q':
		fmt.Fprintf(s, "%q", t.Error())
	}
}

type wrapped struct {
	cause error
	msg   string
	stack []uintptr
}

func (t wrapped) Error() string {
	return t.msg + ": " + t.cause.Error()
}

func (t wrapped) Unwrap() error {
	return t.cause
}

// New error with a stack captured at the call site.
func New(msg string) error {
	return stacked{cause: errors.New(msg), stack: callers()}
}

// Errorf formats an error with a stack captured at the call site.
func Errorf(format string, args ...any) error {
	return stacked{cause: fmt.Errorf(format, args...), stack: callers()}
}

// WithStack annotates err with a stack, nil errors pass through.
func WithStack(err error) error {
	if err == nil {
		return nil
	}

	return stacked{cause: err, stack: callers()}
}

// Wrap err with a message, nil errors pass through.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}

	return wrapped{cause: err, msg: msg, stack: callers()}
}

// Wrapf err with a formatted message, nil errors pass through.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return wrapped{cause: err, msg: fmt.Sprintf(format, args...), stack: callers()}
}

// Compact returns the first error from the given set, if any.
func Compact(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

// Is variadic form of errors.Is.
func Is(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// Ignore returns nil when err matches any of the targets.
func Ignore(err error, targets ...error) error {
	if Is(err, targets...) {
		return nil
	}

	return err
}

// Log an error when one occurred.
func Log(err error) {
	if err == nil {
		return
	}

	log.Output(2, err.Error())
}

// LogErr logs and returns the provided error.
func LogErr(err error) error {
	if err == nil {
		return nil
	}

	log.Output(2, err.Error())
	return err
}

// Must panics when err is non nil.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}

// Zero discards the error returning the zero value in its place.
func Zero[T any](v T, err error) (zero T) {
	if err != nil {
		return zero
	}

	return v
}

// Timeout errors expose the stdlib timeout behaviour.
type Timeout interface {
	error
	Timeout() bool
}

type timeout struct {
	cause error
	d     time.Duration
}

func (t timeout) Error() string {
	return fmt.Sprintf("%s - timed out after %s", t.cause.Error(), t.d)
}

func (t timeout) Unwrap() error {
	return t.cause
}

func (t timeout) Timeout() bool {
	return true
}

// Timedout marks err as a timeout that occurred after the given duration.
func Timedout(err error, d time.Duration) error {
	if err == nil {
		return nil
	}

	return timeout{cause: err, d: d}
}

// StdlibTimeout converts stdlib timeouts and the given targets into a Timeout.
func StdlibTimeout(err error, d time.Duration, targets ...error) error {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) || Is(err, targets...) {
		return Timedout(err, d)
	}

	return err
}
