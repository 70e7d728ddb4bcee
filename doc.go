// Package proc provides process execution with explicit, result-typed
// error handling.
//
// Every operation returns a Result (or a Future resolving to one)
// instead of a bare error: success and failure are structurally
// distinct, and every failure is one of a closed set of nine kinds. The
// heart of the package is Classify, which maps any raw failure from the
// operating system's process primitives to exactly one variant through a
// fixed precedence cascade. The wrappers around it never panic and never
// leak an unclassified error.
//
// # Running Commands
//
// RunSync executes a shell command and blocks until it completes:
//
//	res := proc.RunSync("echo Hello World")
//	if res.IsErr() {
//	    log.Fatal(res.Error())
//	}
//	fmt.Println(strings.TrimSpace(res.Value())) // "Hello World"
//
// RunFileSync executes a file directly, with no shell in between:
//
//	res := proc.RunFileSync("/usr/bin/git", []string{"status"})
//
// The asynchronous flavors return futures that settle once the command
// completes:
//
//	f := proc.Run("sleep 1 && echo done")
//	// ... do other work ...
//	res := f.Await()
//
// # Error Handling
//
// Failures carry a Kind and, per kind, structured fields. Callers branch
// on the kind or match a concrete variant:
//
//	res := proc.RunSync("exit 3")
//	var exitErr *proc.ExitError
//	if proc.As(res.Error(), &exitErr) {
//	    fmt.Println(exitErr.ExitCode) // 3
//	    fmt.Println(exitErr.Stderr)   // captured diagnostics
//	}
//
//	switch proc.GetKind(res.Error()) {
//	case proc.KindNotFound:
//	    // command does not exist
//	case proc.KindTimeout:
//	    // worth retrying; see also proc.IsRetryable
//	}
//
// A command that fails with a non-zero status keeps its captured stdout
// and stderr on the ExitError, so diagnostics survive the failure path.
//
// # Options
//
// All wrappers accept functional options:
//
//	res := proc.RunSync("make build",
//	    proc.WithDir("/src/app"),
//	    proc.WithInheritEnv(),
//	    proc.WithTimeout(5*time.Minute),
//	)
//
// WithMaxOutput caps captured output; a breach surfaces as a
// KindMaxBufferExceeded failure. WithDisableColors sets the common
// color-disabling environment variables for tools that respect them.
//
// # Low-Level Spawning
//
// Spawn starts a process and returns a handle without waiting for
// termination. Stream capture is opt-in, and each capture future is
// independent of the termination outcome:
//
//	res := proc.Spawn("sh", []string{"-c", "echo out; echo err >&2"},
//	    proc.WithCaptureStdout(),
//	    proc.WithCaptureStderr(),
//	)
//	if res.IsErr() {
//	    log.Fatal(res.Error())
//	}
//	p := res.Value()
//
//	stdout := p.Stdout().Await()
//	stderr := p.Stderr().Await()
//	exit := proc.WaitForExit(p).Await()
//
// Fork starts a duplicate of the current executable. It always returns
// Ok immediately; a failure to start surfaces only on the handle's error
// channel and through WaitForExit:
//
//	res := proc.Fork([]string{"--worker"})
//	p := res.Value()
//	select {
//	case err := <-p.Err():
//	    // process never started
//	case <-p.Exited():
//	    // ran to termination; classify via WaitForExit
//	}
//
// # Concurrency
//
// Each invocation is fully independent; the package keeps no state
// between calls. Futures settle exactly once, and awaiting a settled
// future returns the same outcome every time. There is no cancellation
// token: to abort a running process, signal it through the handle and
// observe the resulting KindKilled outcome.
package proc
