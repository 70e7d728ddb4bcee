package proc

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	osexec "os/exec"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// failureShape holds the optional fields defensively extracted from an
// opaque raw failure before the precedence cascade runs. Extraction is
// decoupled from classification so the cascade operates on plain values.
type failureShape struct {
	// signal is the name of the terminating signal, if the process died
	// to one (e.g. "SIGKILL").
	signal string

	// errno is the name of the underlying OS error code, if one is
	// present anywhere in the chain (e.g. "ENOENT").
	errno string

	// notFound and permission are set when the chain matches the
	// stdlib's portable sentinels, which cover conditions an errno
	// alone may not (e.g. exec.ErrNotFound from PATH lookup).
	notFound   bool
	permission bool

	// timedOut is set when the chain carries a deadline expiry.
	timedOut bool

	// spawn is set for process-creation-level failures (lookup or start
	// errors, as opposed to failures of a process that ran).
	spawn bool

	// status is the numeric exit status, if the process ran and exited.
	status *int
}

// probe extracts the optional fields of an opaque failure. It is pure,
// never panics, and treats every field as absent unless the chain
// positively provides it.
func probe(raw error) failureShape {
	var shape failureShape
	if raw == nil {
		return shape
	}

	var exitErr *osexec.ExitError
	if stderrors.As(raw, &exitErr) && exitErr.ProcessState != nil {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			shape.signal = unix.SignalName(ws.Signal())
		}
		if code := exitErr.ExitCode(); code >= 0 {
			shape.status = &code
		}
	}

	var execErr *osexec.Error
	if stderrors.As(raw, &execErr) {
		shape.spawn = true
	}
	var pathErr *fs.PathError
	if stderrors.As(raw, &pathErr) {
		shape.spawn = true
	}

	var errno syscall.Errno
	if stderrors.As(raw, &errno) {
		shape.errno = unix.ErrnoName(errno)
	}

	shape.notFound = stderrors.Is(raw, fs.ErrNotExist) || stderrors.Is(raw, osexec.ErrNotFound)
	shape.permission = stderrors.Is(raw, fs.ErrPermission)
	shape.timedOut = stderrors.Is(raw, context.DeadlineExceeded)

	return shape
}

// Classify maps any raw failure to exactly one Error variant. It is
// total and deterministic: it performs no I/O, never panics, and never
// returns nil. The command and argument list are carried onto the
// resulting error when known; pass zero values when they are not.
//
// The precedence cascade is fixed. The first matching rule wins and
// later rules are not evaluated:
//
//  1. terminating signal present        -> KilledError
//  2. "no such entity" condition        -> NotFoundError
//  3. access denied condition           -> PermissionError
//  4. timed out condition               -> TimeoutError
//  5. process-creation-level failure    -> SpawnError
//  6. non-zero numeric exit status      -> ExitError (streams attached by
//     wrappers, not here)
//  7. message substring rules           -> MaxBufferError, TimeoutError,
//     or SpawnError
//  8. fallback                          -> UnknownError
func Classify(raw error, cmd string, args []string) Error {
	if raw == nil {
		return newUnknownError("<nil>", cmd, args, nil)
	}

	shape := probe(raw)
	msg := raw.Error()

	switch {
	case shape.signal != "":
		return newKilledError(msg, cmd, args, shape.signal, raw)
	case shape.errno == "ENOENT" || shape.notFound:
		return newNotFoundError(msg, cmd, args, raw)
	case shape.errno == "EACCES" || shape.errno == "EPERM" || shape.permission:
		return newPermissionError(msg, cmd, args, raw)
	case shape.errno == "ETIMEDOUT" || shape.timedOut:
		return newTimeoutError(msg, cmd, args, 0, raw)
	case shape.spawn:
		return newSpawnError(msg, cmd, args, shape.errno, raw)
	case shape.status != nil && *shape.status != 0:
		return newExitError(cmd, args, *shape.status, "", "", raw)
	}

	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "buffer exceeded") || strings.Contains(lower, "maxbuffer"):
		return newMaxBufferError(msg, cmd, args, raw)
	case strings.Contains(lower, "timed out") || strings.Contains(lower, "deadline exceeded"):
		return newTimeoutError(msg, cmd, args, 0, raw)
	case strings.Contains(lower, "spawn") || strings.Contains(lower, "fork/exec"):
		return newSpawnError(msg, cmd, args, "", raw)
	}

	return newUnknownError(msg, cmd, args, raw)
}

// classifyKilled builds the failure for a process known to have died to
// a signal when no raw error object exists to classify. The message
// substitution rule applies: with no underlying failure to describe, the
// message is the fallback literal.
func classifyKilled(cmd string, args []string, signal string, cause error) *KilledError {
	msg := fallbackMessage
	if cause != nil {
		msg = cause.Error()
	} else if signal != "" {
		msg = fmt.Sprintf("process killed with signal %s", signal)
	}
	return newKilledError(msg, cmd, args, signal, cause)
}
