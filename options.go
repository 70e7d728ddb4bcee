package proc

import (
	"context"
	"io"
	"os"
	osexec "os/exec"
	"time"
)

// defaultMaxOutput is the capture ceiling applied when the caller does
// not set one. Generous so that only opted-in limits bite.
const defaultMaxOutput = 200 << 20 // 200 MiB

// options holds the per-call execution settings. Every wrapper builds a
// fresh options value, so nothing carries over between invocations.
type options struct {
	ctx           context.Context
	dir           string
	env           map[string]string
	inheritEnv    bool
	disableColors bool
	stdin         io.Reader
	timeout       time.Duration
	maxOutput     int
	captureStdout bool
	captureStderr bool
}

func newOptions(opts []Option) *options {
	o := &options{
		ctx:       context.Background(),
		env:       make(map[string]string),
		maxOutput: defaultMaxOutput,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a single wrapper invocation.
type Option func(*options)

// WithDir sets the working directory for the command.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithEnv sets environment variables for the command. When combined with
// WithInheritEnv, these override inherited variables of the same name.
func WithEnv(env map[string]string) Option {
	return func(o *options) {
		for k, v := range env {
			o.env[k] = v
		}
	}
}

// WithInheritEnv passes the parent process's environment through to the
// command.
func WithInheritEnv() Option {
	return func(o *options) {
		o.inheritEnv = true
	}
}

// WithDisableColors disables color output by setting common
// color-disabling environment variables (NO_COLOR=1, TERM=dumb, and
// friends).
func WithDisableColors() Option {
	return func(o *options) {
		o.disableColors = true
	}
}

// WithStdin supplies the command's standard input.
func WithStdin(r io.Reader) Option {
	return func(o *options) {
		o.stdin = r
	}
}

// WithTimeout limits how long the command may run. A breach surfaces as
// a KindTimeout failure.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithMaxOutput caps the number of bytes captured per stream. A breach
// surfaces as a KindMaxBufferExceeded failure.
func WithMaxOutput(bytes int) Option {
	return func(o *options) {
		o.maxOutput = bytes
	}
}

// WithContext sets the context for the command. The command is killed if
// the context is canceled; a deadline expiry classifies as KindTimeout.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithCaptureStdout makes Spawn accumulate the child's standard output
// and expose it as a capture future on the handle. Ignored by the other
// wrappers, which always capture.
func WithCaptureStdout() Option {
	return func(o *options) {
		o.captureStdout = true
	}
}

// WithCaptureStderr makes Spawn accumulate the child's standard error
// and expose it as a capture future on the handle. Ignored by the other
// wrappers, which always capture.
func WithCaptureStderr() Option {
	return func(o *options) {
		o.captureStderr = true
	}
}

// effectiveEnv merges the configured variables with the color-disabling
// set when enabled.
func (o *options) effectiveEnv() map[string]string {
	env := make(map[string]string, len(o.env))
	for k, v := range o.env {
		env[k] = v
	}
	if o.disableColors {
		env["NO_COLOR"] = "1"
		env["TERM"] = "dumb"
		env["CLICOLOR"] = "0"
		env["CLICOLOR_FORCE"] = "0"
		env["FORCE_COLOR"] = "0"
	}
	return env
}

// apply copies the directory, environment, and stdin settings onto cmd.
func (o *options) apply(cmd *osexec.Cmd) {
	if o.dir != "" {
		cmd.Dir = o.dir
	}
	if o.inheritEnv {
		cmd.Env = os.Environ()
	}
	for k, v := range o.effectiveEnv() {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	if o.stdin != nil {
		cmd.Stdin = o.stdin
	}
}

// execContext returns the context the command should run under, applying
// the configured timeout when one is set. The cancel func must be called
// once the command has finished.
func (o *options) execContext() (context.Context, context.CancelFunc) {
	if o.timeout > 0 {
		return context.WithTimeout(o.ctx, o.timeout)
	}
	return context.WithCancel(o.ctx)
}
