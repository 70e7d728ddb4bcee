package proc

import (
	"context"
	stderrors "errors"
	"fmt"
	osexec "os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// shellPath is the interpreter used for shell-text execution.
const shellPath = "/bin/sh"

// SpawnSyncOutput is the structured outcome of a successful SpawnSync.
type SpawnSyncOutput struct {
	// Stdout is the raw captured standard output.
	Stdout []byte

	// Stderr is the raw captured standard error.
	Stderr []byte

	// Status is the exit status code, or nil if the process was
	// terminated by a signal.
	Status *int

	// Signal is the name of the terminating signal, or empty if the
	// process exited normally.
	Signal string

	// Pid is the operating system process ID.
	Pid int
}

// RunSync executes a shell command, blocking until it completes, and
// returns the captured standard output as text. The command string is
// interpreted by /bin/sh.
//
// A process that completes with a non-zero status yields an ExitError
// carrying the captured stdout and stderr; every other failure is routed
// through Classify.
func RunSync(command string, opts ...Option) Result[string] {
	if command == "" {
		return Err[string](newInvalidArgumentError("command must not be empty", command, nil))
	}
	return runTextSync(command, nil, shellPath, []string{"-c", command}, opts)
}

// RunFileSync executes a file directly with the given arguments,
// blocking until it completes, and returns the captured standard output
// as text. No shell is involved.
func RunFileSync(file string, args []string, opts ...Option) Result[string] {
	if file == "" {
		return Err[string](newInvalidArgumentError("file must not be empty", file, args))
	}
	return runTextSync(file, args, file, args, opts)
}

// runTextSync is the blocking path behind RunSync and RunFileSync.
func runTextSync(cmdName string, cmdArgs []string, execName string, execArgs []string, opts []Option) Result[string] {
	res := runCombined(cmdName, cmdArgs, execName, execArgs, newOptions(opts))
	if res.IsErr() {
		return Err[string](res.Error())
	}
	return Ok(res.Value().Stdout)
}

// runCombined executes a command to completion with both streams
// captured. It is shared by the blocking wrappers and, behind a
// goroutine, by the deferred ones. cmdName and cmdArgs identify the
// invocation for error reporting; execName and execArgs are what
// actually runs.
func runCombined(cmdName string, cmdArgs []string, execName string, execArgs []string, o *options) Result[Output] {
	ctx, cancel := o.execContext()
	defer cancel()

	cmd := osexec.CommandContext(ctx, execName, execArgs...)
	o.apply(cmd)

	stdout := newCaptureBuffer(o.maxOutput)
	stderr := newCaptureBuffer(o.maxOutput)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()

	if stdout.Exceeded() || stderr.Exceeded() {
		return Err[Output](Classify(errMaxOutput, cmdName, cmdArgs))
	}
	if runErr != nil {
		return Err[Output](syncFailure(ctx, o, cmdName, cmdArgs, runErr, stdout.String(), stderr.String()))
	}
	return Ok(Output{Stdout: stdout.String(), Stderr: stderr.String()})
}

// timeoutFailure builds the raw failure presented when a run exceeds its
// time limit, whether the limit came from WithTimeout or from a deadline
// on a caller-supplied context. The limit is zero in the latter case.
func timeoutFailure(limit time.Duration) error {
	if limit > 0 {
		return fmt.Errorf("command timed out after %s: %w", limit, context.DeadlineExceeded)
	}
	return fmt.Errorf("command timed out: %w", context.DeadlineExceeded)
}

// syncFailure normalizes a blocking run's failure. A plain non-zero exit
// with captured output becomes an ExitError directly, so the streams
// survive in the error; everything else goes through the classifier.
func syncFailure(ctx context.Context, o *options, cmdName string, cmdArgs []string, runErr error, stdout, stderr string) Error {
	// A deadline expiry is a timeout no matter where the deadline came
	// from; the kill it triggers must not classify as a signal death.
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		raw := timeoutFailure(o.timeout)
		return newTimeoutError(raw.Error(), cmdName, cmdArgs, o.timeout, raw)
	}

	var exitErr *osexec.ExitError
	if stderrors.As(runErr, &exitErr) && exitErr.ExitCode() > 0 && stdout != "" {
		return newExitError(cmdName, cmdArgs, exitErr.ExitCode(), stdout, stderr, runErr)
	}

	return Classify(runErr, cmdName, cmdArgs)
}

// SpawnSync starts a process directly, blocks until it terminates, and
// returns its full structured outcome. Unlike RunSync it inspects the
// raw outcome itself for three independent failure signals, in order: an
// embedded execution error, a non-zero exit status, and a terminating
// signal. Only when none are present is the result Ok.
func SpawnSync(command string, args []string, opts ...Option) Result[SpawnSyncOutput] {
	if command == "" {
		return Err[SpawnSyncOutput](newInvalidArgumentError("command must not be empty", command, args))
	}

	o := newOptions(opts)
	ctx, cancel := o.execContext()
	defer cancel()

	cmd := osexec.CommandContext(ctx, command, args...)
	o.apply(cmd)

	stdout := newCaptureBuffer(o.maxOutput)
	stderr := newCaptureBuffer(o.maxOutput)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()

	if stdout.Exceeded() || stderr.Exceeded() {
		return Err[SpawnSyncOutput](Classify(errMaxOutput, command, args))
	}

	var status *int
	var signal string
	var pid int
	if ps := cmd.ProcessState; ps != nil {
		pid = ps.Pid()
		if code := ps.ExitCode(); code >= 0 {
			status = &code
		}
		if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			signal = unix.SignalName(ws.Signal())
		}
	}

	var exitErr *osexec.ExitError
	ran := stderrors.As(runErr, &exitErr)
	timedOut := stderrors.Is(ctx.Err(), context.DeadlineExceeded)

	switch {
	case runErr != nil && (!ran || timedOut):
		if timedOut {
			raw := timeoutFailure(o.timeout)
			return Err[SpawnSyncOutput](newTimeoutError(raw.Error(), command, args, o.timeout, raw))
		}
		return Err[SpawnSyncOutput](Classify(runErr, command, args))
	case status != nil && *status != 0:
		return Err[SpawnSyncOutput](newExitError(command, args, *status, stdout.String(), stderr.String(), runErr))
	case signal != "":
		return Err[SpawnSyncOutput](classifyKilled(command, args, signal, runErr))
	}

	return Ok(SpawnSyncOutput{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
		Status: status,
		Signal: signal,
		Pid:    pid,
	})
}
