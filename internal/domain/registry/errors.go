package registry

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure. Handlers translate kinds to HTTP
// status codes at the transport boundary; nothing below that layer knows
// about HTTP.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindDuplicate
)

// Error is the tagged failure returned by domain and application operations.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Duplicatef(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Msg: fmt.Sprintf(format, args...)}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf extracts the failure kind from err. Untagged errors are internal.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
