package errorsx

import (
	"errors"
	"fmt"
)

// ReasonedError wraps an error with a reason code.
type ReasonedError struct {
	Err    error
	Reason ReasonCode
}

func (e ReasonedError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return e.Err.Error()
}

func (e ReasonedError) Unwrap() error {
	return e.Err
}

// Wrap attaches a reason code to an error. It is a no-op for nil and for
// errors that already carry a reason, so the innermost reason wins.
func Wrap(err error, reason ReasonCode) error {
	if err == nil {
		return nil
	}
	var re ReasonedError
	if errors.As(err, &re) {
		return err
	}
	return ReasonedError{Err: err, Reason: reason}
}

// Wrapf prefixes err with a formatted context and attaches reason, as in
// Wrapf(err, ReasonConnect, "connect %s", target).
func Wrapf(err error, reason ReasonCode, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err), reason)
}

// Reason extracts a reason code from an error, if present.
func Reason(err error) ReasonCode {
	var re ReasonedError
	if err != nil && errors.As(err, &re) {
		return re.Reason
	}
	return ReasonUnknown
}

// HasReason returns true if err contains the given reason code.
func HasReason(err error, reason ReasonCode) bool {
	return Reason(err) == reason
}

// UserMessage renders err as the single line shown to an end user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := fixedMessages[Reason(err)]; ok {
		return msg
	}
	return "Error: " + err.Error()
}
