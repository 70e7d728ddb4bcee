package proc

// ExitStatus is the termination outcome of a process that was not
// otherwise a failure: an exit code, or nothing if the process was
// terminated by a signal.
type ExitStatus struct {
	// Code is the exit status, or nil if the process died to a signal.
	Code *int

	// Signal is the terminating signal name, or empty if the process
	// exited normally.
	Signal string
}

// WaitForExit observes a process handle's termination and returns a
// future settling with exactly one of four outcomes:
//
//   - a process-creation-level failure was reported on the handle: the
//     future fails with that failure classified. This branch takes
//     precedence over the termination branches.
//   - the process terminated with a non-zero status: the future fails
//     with an ExitError carrying the code. No captured streams are
//     available at this layer.
//   - the process was terminated by a signal: the future fails with a
//     KilledError carrying the signal.
//   - otherwise the future succeeds with the code and signal of a normal
//     exit.
func WaitForExit(p *Process) *Future[ExitStatus] {
	f := newFuture[ExitStatus]()
	go func() {
		<-p.exited
		st := p.state

		switch {
		case st.procErr != nil:
			f.resolve(Err[ExitStatus](Classify(st.procErr, p.cmdName, p.execArgs)))
		case st.status != nil && *st.status != 0:
			f.resolve(Err[ExitStatus](newExitError(p.cmdName, p.execArgs, *st.status, "", "", st.waitErr)))
		case st.signal != "":
			f.resolve(Err[ExitStatus](classifyKilled(p.cmdName, p.execArgs, st.signal, st.waitErr)))
		default:
			f.resolve(Ok(ExitStatus{Code: st.status, Signal: st.signal}))
		}
	}()
	return f
}
