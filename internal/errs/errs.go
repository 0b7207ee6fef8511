// Package errs classifies errors into stable kinds used across layers for
// exit-code mapping and user-facing hints.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies the failure class of an error.
type Kind int

const (
	// KindUnknown is the zero value for unclassified errors.
	KindUnknown Kind = iota

	// KindUserInput indicates a bad argument, missing selection,
	// out-of-range pick, or unrecognized resource reference.
	KindUserInput

	// KindNotFound indicates a missing local cache or an empty match set.
	KindNotFound

	// KindAuthRequired indicates no usable token is persisted.
	KindAuthRequired

	// KindReauthRequired indicates the refresh token was rejected or a
	// required scope was never granted; a fresh login is needed.
	KindReauthRequired

	// KindScopeMissing indicates the remote rejected the call for lack of
	// a scope the current token does not carry.
	KindScopeMissing

	// KindRemoteFailure indicates a non-success HTTP response.
	KindRemoteFailure

	// KindTransport indicates a network-level failure.
	KindTransport

	// KindReadOnlyTarget indicates a playlist chosen for a write is not
	// writable by the signed-in user.
	KindReadOnlyTarget

	// KindDecodeFailure indicates a JSON shape mismatch or truncated file.
	KindDecodeFailure
)

// Error carries a Kind and an optional user-facing hint around a cause.
type Error struct {
	Kind Kind
	Hint string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "error"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error from a message.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Err: errors.New(msg)}
}

// Newf builds a classified error from a format string.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies an existing error. A nil err returns nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// WithHint classifies an error and attaches a one-line hint.
func WithHint(kind Kind, err error, hint string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Hint: hint, Err: err}
}

// KindOf reports the Kind of the innermost classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HintOf returns the hint carried by err's chain, or "".
func HintOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Hint
	}
	return ""
}

// Exit codes reported by the CLI boundary.
const (
	ExitOK     = 0
	ExitUser   = 1
	ExitAuth   = 2
	ExitRemote = 3
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case KindAuthRequired, KindReauthRequired, KindScopeMissing:
		return ExitAuth
	case KindRemoteFailure, KindTransport:
		return ExitRemote
	default:
		return ExitUser
	}
}
