// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import (
	"errors"
	"strings"
)

// ErrorKind classifies engine errors.
type ErrorKind uint8

const (
	InvalidArgument ErrorKind = iota + 1
	NotCallable
	OutOfRange
	EmptyPrecondition
	StructuralMismatch
	DepthExceeded
	Unsupported
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case NotCallable:
		return "not callable"
	case OutOfRange:
		return "out of range"
	case EmptyPrecondition:
		return "empty container"
	case StructuralMismatch:
		return "structural mismatch"
	case DepthExceeded:
		return "call depth exceeded"
	case Unsupported:
		return "unsupported"
	}
	return "unknown error"
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrInvalidArgument    = errors.New("sigma: invalid argument")
	ErrNotCallable        = errors.New("sigma: not callable")
	ErrOutOfRange         = errors.New("sigma: out of range")
	ErrEmpty              = errors.New("sigma: empty container")
	ErrStructuralMismatch = errors.New("sigma: structural mismatch")
	ErrDepthExceeded      = errors.New("sigma: call depth exceeded")
	ErrUnsupported        = errors.New("sigma: unsupported")
)

var kindSentinels = map[ErrorKind]error{
	InvalidArgument:    ErrInvalidArgument,
	NotCallable:        ErrNotCallable,
	OutOfRange:         ErrOutOfRange,
	EmptyPrecondition:  ErrEmpty,
	StructuralMismatch: ErrStructuralMismatch,
	DepthExceeded:      ErrDepthExceeded,
	Unsupported:        ErrUnsupported,
}

// Error is raised synchronously by containers and combinators.
// Op names the failing operation; Detail carries the expected parameter
// signature for argument errors, e.g. "C,A,[X]".
type Error struct {
	Kind   ErrorKind
	Op     string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("sigma: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteByte(')')
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func newError(kind ErrorKind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// ParamError reports a wrong argument shape. Natives use it to reject
// their arguments before any mutation or suspension.
func ParamError(op, signature string) error {
	return newError(InvalidArgument, op, signature)
}

// KindOf returns the ErrorKind of err, or 0 if err is not an engine error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
