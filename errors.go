// Package proc provides result-typed process execution with a closed error
// taxonomy. See doc.go for an overview.
package proc

import (
	"fmt"
	"time"
)

// Kind identifies the category of a process failure.
// Kinds are string-based for debuggability and natural JSON serialization.
type Kind string

const (
	// KindNotFound indicates the command or file to execute does not exist.
	KindNotFound Kind = "PROCESS_NOT_FOUND"

	// KindPermissionDenied indicates the command exists but access to it
	// was denied by the operating system.
	KindPermissionDenied Kind = "PERMISSION_DENIED"

	// KindTimeout indicates the process exceeded its time limit.
	KindTimeout Kind = "PROCESS_TIMEOUT"

	// KindKilled indicates the process was terminated by a signal.
	KindKilled Kind = "PROCESS_KILLED"

	// KindNonZeroExit indicates the process ran to completion but
	// returned a non-zero exit status.
	KindNonZeroExit Kind = "NON_ZERO_EXIT"

	// KindInvalidArgument indicates caller-supplied arguments were
	// rejected before execution. It is emitted by the wrappers, never by
	// the classifier.
	KindInvalidArgument Kind = "INVALID_ARGUMENT"

	// KindSpawn indicates a process-creation-level failure that does not
	// match a more specific category.
	KindSpawn Kind = "SPAWN_ERROR"

	// KindMaxBufferExceeded indicates captured output exceeded the
	// configured size ceiling.
	KindMaxBufferExceeded Kind = "MAX_BUFFER_EXCEEDED"

	// KindUnknown is the fallback when no other kind applies.
	KindUnknown Kind = "UNKNOWN"
)

// fallbackMessage is substituted when a structured failure carries no
// message of its own. An explicitly empty message is kept as-is.
const fallbackMessage = "Unknown error"

// Error is implemented by every failure value this package returns.
//
// Error extends the standard error interface with the failure kind, the
// command line that was being executed, and compatibility with the
// standard library's errors.As and errors.Unwrap. Callers are expected to
// branch on Kind (or match a concrete variant with errors.As), never on
// the shape of the wrapped cause.
type Error interface {
	error

	// Kind returns the failure category.
	Kind() Kind

	// Message returns the human-readable error message.
	Message() string

	// CmdLine returns the command and arguments that were being executed.
	// Both are zero-valued if they were not known at classification time.
	CmdLine() (cmd string, args []string)

	// Unwrap returns the raw underlying failure, preserved for
	// diagnostics only. Returns nil if there is none.
	Unwrap() error
}

// base carries the fields shared by every variant. Variants embed it and
// add their own fields; construction happens through package functions so
// every instance is immutable after creation.
type base struct {
	kind    Kind
	message string
	cmd     string
	args    []string
	cause   error
}

// Error returns the string representation of the failure.
// Format: "[KIND] message" or "[KIND] message: cause" if a cause is present.
func (b *base) Error() string {
	if b.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", b.kind, b.message, b.cause)
	}
	return fmt.Sprintf("[%s] %s", b.kind, b.message)
}

// Kind returns the failure category.
func (b *base) Kind() Kind {
	return b.kind
}

// Message returns the error message.
func (b *base) Message() string {
	return b.message
}

// CmdLine returns the command and arguments being executed.
func (b *base) CmdLine() (string, []string) {
	return b.cmd, b.args
}

// Unwrap returns the raw underlying failure.
func (b *base) Unwrap() error {
	return b.cause
}

// NotFoundError reports that the command or file does not exist.
type NotFoundError struct {
	base
}

// PermissionError reports that access to the command was denied.
type PermissionError struct {
	base
}

// TimeoutError reports that the process exceeded its time limit.
type TimeoutError struct {
	base

	// Timeout is the configured limit, if one was known. Zero otherwise.
	Timeout time.Duration
}

// KilledError reports that the process was terminated by a signal.
type KilledError struct {
	base

	// Signal is the name of the terminating signal (e.g. "SIGKILL").
	Signal string

	// Killed is always true. It exists so serialized errors carry an
	// explicit marker alongside the signal name.
	Killed bool
}

// ExitError reports that the process completed with a non-zero status.
type ExitError struct {
	base

	// ExitCode is the status the process returned.
	ExitCode int

	// Stdout is the captured standard output, when available.
	Stdout string

	// Stderr is the captured standard error, when available.
	Stderr string
}

// InvalidArgumentError reports that caller-supplied arguments were
// rejected before any process was started.
type InvalidArgumentError struct {
	base
}

// SpawnError reports a process-creation-level failure.
type SpawnError struct {
	base

	// Errno is the name of the underlying OS error code, when known.
	Errno string
}

// MaxBufferError reports that captured output exceeded the configured
// size ceiling.
type MaxBufferError struct {
	base
}

// UnknownError is the fallback variant for failures no other kind matches.
type UnknownError struct {
	base
}

func newBase(kind Kind, message, cmd string, args []string, cause error) base {
	return base{
		kind:    kind,
		message: message,
		cmd:     cmd,
		args:    args,
		cause:   cause,
	}
}

func newNotFoundError(message, cmd string, args []string, cause error) *NotFoundError {
	return &NotFoundError{base: newBase(KindNotFound, message, cmd, args, cause)}
}

func newPermissionError(message, cmd string, args []string, cause error) *PermissionError {
	return &PermissionError{base: newBase(KindPermissionDenied, message, cmd, args, cause)}
}

func newTimeoutError(message, cmd string, args []string, timeout time.Duration, cause error) *TimeoutError {
	return &TimeoutError{
		base:    newBase(KindTimeout, message, cmd, args, cause),
		Timeout: timeout,
	}
}

func newKilledError(message, cmd string, args []string, signal string, cause error) *KilledError {
	return &KilledError{
		base:   newBase(KindKilled, message, cmd, args, cause),
		Signal: signal,
		Killed: true,
	}
}

func newExitError(cmd string, args []string, code int, stdout, stderr string, cause error) *ExitError {
	return &ExitError{
		base:     newBase(KindNonZeroExit, fmt.Sprintf("command failed with exit code %d", code), cmd, args, cause),
		ExitCode: code,
		Stdout:   stdout,
		Stderr:   stderr,
	}
}

func newInvalidArgumentError(message, cmd string, args []string) *InvalidArgumentError {
	return &InvalidArgumentError{base: newBase(KindInvalidArgument, message, cmd, args, nil)}
}

func newSpawnError(message, cmd string, args []string, errno string, cause error) *SpawnError {
	return &SpawnError{
		base:  newBase(KindSpawn, message, cmd, args, cause),
		Errno: errno,
	}
}

func newMaxBufferError(message, cmd string, args []string, cause error) *MaxBufferError {
	return &MaxBufferError{base: newBase(KindMaxBufferExceeded, message, cmd, args, cause)}
}

func newUnknownError(message, cmd string, args []string, cause error) *UnknownError {
	return &UnknownError{base: newBase(KindUnknown, message, cmd, args, cause)}
}
