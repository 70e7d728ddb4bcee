package proc

// Output is the combined-stream result of a completed command: both
// captured streams decoded as text.
type Output struct {
	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error.
	Stderr string
}

// Run executes a shell command without blocking the caller and returns a
// future that settles with the combined captured output once the command
// completes. The command string is interpreted by /bin/sh.
//
// Failure normalization mirrors RunSync: a non-zero exit with captured
// output becomes an ExitError carrying the streams; everything else is
// routed through Classify.
func Run(command string, opts ...Option) *Future[Output] {
	if command == "" {
		return resolved(Err[Output](newInvalidArgumentError("command must not be empty", command, nil)))
	}

	o := newOptions(opts)
	f := newFuture[Output]()
	go func() {
		f.resolve(runCombined(command, nil, shellPath, []string{"-c", command}, o))
	}()
	return f
}

// RunFile executes a file directly with the given arguments without
// blocking the caller and returns a future that settles with the
// combined captured output once the command completes. No shell is
// involved.
func RunFile(file string, args []string, opts ...Option) *Future[Output] {
	if file == "" {
		return resolved(Err[Output](newInvalidArgumentError("file must not be empty", file, args)))
	}

	o := newOptions(opts)
	f := newFuture[Output]()
	go func() {
		f.resolve(runCombined(file, args, file, args, o))
	}()
	return f
}
