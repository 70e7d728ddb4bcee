package proc

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	osexec "os/exec"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

// Process is the handle to a process started by Spawn or Fork. It exposes
// the process's error notification channel, its optional stream capture
// futures, and termination signaling. Termination itself is observed
// through WaitForExit.
//
// The handle's three deferred outcomes (stdout capture, stderr capture,
// termination) are independent and may settle in any order; callers
// needing all of them should await them concurrently and conventionally
// await termination last.
type Process struct {
	// ID uniquely identifies this spawn, for correlation in caller logs.
	ID string

	cmdName  string
	execArgs []string
	opts     *options

	osCmd   *osexec.Cmd
	pid     int
	started chan struct{}
	exited  chan struct{}
	errCh   chan error
	state   exitState

	stdoutF *Future[string]
	stderrF *Future[string]
}

// exitState is the terminal outcome recorded before exited is closed.
type exitState struct {
	status *int
	signal string

	// procErr is a process-creation-level or plumbing failure, as
	// opposed to a clean termination. It takes precedence over status
	// and signal when the termination outcome is classified.
	procErr error

	// waitErr is the raw error from waiting, kept as the diagnostic
	// cause on classified termination failures.
	waitErr error
}

func newProcess(cmdName string, args []string, o *options) *Process {
	p := &Process{
		ID:       uuid.New().String(),
		cmdName:  cmdName,
		execArgs: args,
		opts:     o,
		started:  make(chan struct{}),
		exited:   make(chan struct{}),
		errCh:    make(chan error, 1),
	}
	if o.captureStdout {
		p.stdoutF = newFuture[string]()
	}
	if o.captureStderr {
		p.stderrF = newFuture[string]()
	}
	return p
}

// Spawn starts a process directly and returns its handle. The handle
// exists once the OS start has succeeded; failures after that point
// arrive asynchronously through the handle's error channel and the
// termination outcome. A start failure returns a classified Err, since
// no handle exists to return.
//
// Stream capture is opt-in via WithCaptureStdout and WithCaptureStderr;
// the corresponding futures settle with the concatenated decoded text
// once the stream ends.
func Spawn(command string, args []string, opts ...Option) Result[*Process] {
	if command == "" {
		return Err[*Process](newInvalidArgumentError("command must not be empty", command, args))
	}

	p := newProcess(command, args, newOptions(opts))
	if err := p.start(command); err != nil {
		return Err[*Process](Classify(err, command, args))
	}
	return Ok(p)
}

// Fork starts a duplicate of the current executable with the given
// arguments. It resolves Ok with the handle immediately; failures to
// start surface only through the handle's error channel and the
// termination outcome, never through the returned result. Callers that
// need early-failure detection must subscribe to Err or await
// WaitForExit.
func Fork(args []string, opts ...Option) Result[*Process] {
	p := newProcess("", args, newOptions(opts))
	go func() {
		exe, err := os.Executable()
		if err != nil {
			p.failStart(err)
			return
		}
		p.cmdName = exe
		if err := p.start(exe); err != nil {
			p.failStart(err)
		}
	}()
	return Ok(p)
}

// start builds the command, wires up the capture pipes, and launches the
// process. On success the waiter goroutine owns the rest of the
// lifecycle.
func (p *Process) start(execName string) error {
	ctx, cancel := p.opts.execContext()

	cmd := osexec.CommandContext(ctx, execName, p.execArgs...)
	p.opts.apply(cmd)

	var stdoutR, stdoutW, stderrR, stderrW *os.File
	closeAll := func() {
		for _, f := range []*os.File{stdoutR, stdoutW, stderrR, stderrW} {
			if f != nil {
				f.Close()
			}
		}
	}

	var err error
	if p.stdoutF != nil {
		if stdoutR, stdoutW, err = os.Pipe(); err != nil {
			cancel()
			return err
		}
		cmd.Stdout = stdoutW
	}
	if p.stderrF != nil {
		if stderrR, stderrW, err = os.Pipe(); err != nil {
			cancel()
			closeAll()
			return err
		}
		cmd.Stderr = stderrW
	}

	if err := cmd.Start(); err != nil {
		cancel()
		closeAll()
		return err
	}

	// The child holds the write ends now.
	if stdoutW != nil {
		stdoutW.Close()
	}
	if stderrW != nil {
		stderrW.Close()
	}

	p.osCmd = cmd
	p.pid = cmd.Process.Pid
	close(p.started)

	var wg sync.WaitGroup
	if p.stdoutF != nil {
		wg.Add(1)
		go p.capture(stdoutR, p.stdoutF, &wg)
	}
	if p.stderrF != nil {
		wg.Add(1)
		go p.capture(stderrR, p.stderrF, &wg)
	}

	go p.waitLoop(ctx, cmd, cancel, &wg)
	return nil
}

// failStart records a start failure: the error notification fires, both
// capture futures fail, and the termination outcome short-circuits to a
// classified failure.
func (p *Process) failStart(err error) {
	p.notify(err)
	if p.stdoutF != nil {
		p.stdoutF.resolve(Err[string](Classify(err, p.cmdName, p.execArgs)))
	}
	if p.stderrF != nil {
		p.stderrF.resolve(Err[string](Classify(err, p.cmdName, p.execArgs)))
	}
	p.state = exitState{procErr: err, waitErr: err}
	close(p.started)
	close(p.exited)
}

// capture accumulates one stream and settles its future at end-of-data.
// The pipelines for the two streams are independent of each other and of
// the termination outcome.
func (p *Process) capture(r *os.File, f *Future[string], wg *sync.WaitGroup) {
	defer wg.Done()

	buf := newCaptureBuffer(p.opts.maxOutput)
	_, err := io.Copy(buf, r)
	r.Close()

	switch {
	case buf.Exceeded():
		f.resolve(Err[string](Classify(errMaxOutput, p.cmdName, p.execArgs)))
	case err != nil:
		f.resolve(Err[string](Classify(err, p.cmdName, p.execArgs)))
	default:
		f.resolve(Ok(buf.String()))
	}
}

// waitLoop waits for the captures to drain and the process to terminate,
// then records the terminal outcome exactly once.
func (p *Process) waitLoop(ctx context.Context, cmd *osexec.Cmd, cancel func(), wg *sync.WaitGroup) {
	wg.Wait()
	waitErr := cmd.Wait()
	cancel()

	st := exitState{waitErr: waitErr}
	if ps := cmd.ProcessState; ps != nil {
		if code := ps.ExitCode(); code >= 0 {
			st.status = &code
		}
		if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			st.signal = unix.SignalName(ws.Signal())
		}
	}

	var exitErr *osexec.ExitError
	switch {
	case waitErr != nil && stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		// A deadline kill reads as a signal death from the wait status;
		// the termination outcome must report the timeout instead.
		raw := timeoutFailure(p.opts.timeout)
		st.procErr = raw
		p.notify(raw)
	case waitErr != nil && !stderrors.As(waitErr, &exitErr):
		st.procErr = waitErr
		p.notify(waitErr)
	}

	p.state = st
	close(p.exited)
}

// notify delivers an error notification without blocking. The channel is
// buffered so the first notification is retained even with no subscriber;
// later ones are dropped.
func (p *Process) notify(err error) {
	select {
	case p.errCh <- err:
	default:
	}
}

// Pid returns the operating system process ID, or 0 if the process never
// started.
func (p *Process) Pid() int {
	<-p.started
	return p.pid
}

// Err returns the handle's error notification channel. It delivers at
// most one process-creation-level failure; a clean termination (even a
// non-zero exit) produces no notification.
func (p *Process) Err() <-chan error {
	return p.errCh
}

// Exited returns a channel that is closed once the process has
// terminated (or failed to start). WaitForExit provides the classified
// outcome.
func (p *Process) Exited() <-chan struct{} {
	return p.exited
}

// Stdout returns the standard output capture future, or nil unless the
// process was spawned with WithCaptureStdout.
func (p *Process) Stdout() *Future[string] {
	return p.stdoutF
}

// Stderr returns the standard error capture future, or nil unless the
// process was spawned with WithCaptureStderr.
func (p *Process) Stderr() *Future[string] {
	return p.stderrF
}

// Signal sends a signal to the process. The resulting death classifies
// as KindKilled when observed through WaitForExit.
func (p *Process) Signal(sig os.Signal) error {
	<-p.started
	if p.osCmd == nil {
		return p.state.procErr
	}
	return p.osCmd.Process.Signal(sig)
}

// Kill terminates the process immediately.
func (p *Process) Kill() error {
	<-p.started
	if p.osCmd == nil {
		return p.state.procErr
	}
	return p.osCmd.Process.Kill()
}
