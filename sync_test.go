package proc

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunSync(t *testing.T) {
	res := RunSync("echo Hello World")
	require.True(t, res.IsOk())
	require.Equal(t, "Hello World", strings.TrimSpace(res.Value()))
}

func TestRunSync_NonZeroExit(t *testing.T) {
	res := RunSync("exit 1")
	require.True(t, res.IsErr())

	var exitErr *ExitError
	require.True(t, As(res.Error(), &exitErr))
	require.Equal(t, 1, exitErr.ExitCode)
}

func TestRunSync_NonZeroExitKeepsOutput(t *testing.T) {
	res := RunSync("echo partial result; echo diagnostics >&2; exit 2")
	require.True(t, res.IsErr())

	var exitErr *ExitError
	require.True(t, As(res.Error(), &exitErr))
	require.Equal(t, 2, exitErr.ExitCode)
	require.Equal(t, "partial result", strings.TrimSpace(exitErr.Stdout))
	require.Equal(t, "diagnostics", strings.TrimSpace(exitErr.Stderr))
}

func TestRunSync_EmptyCommand(t *testing.T) {
	res := RunSync("")
	require.True(t, res.IsErr())
	require.Equal(t, KindInvalidArgument, res.Error().Kind())
}

func TestRunSync_Timeout(t *testing.T) {
	res := RunSync("sleep 1", WithTimeout(50*time.Millisecond))
	require.True(t, res.IsErr())
	require.Equal(t, KindTimeout, res.Error().Kind())

	var timeoutErr *TimeoutError
	require.True(t, As(res.Error(), &timeoutErr))
	require.Equal(t, 50*time.Millisecond, timeoutErr.Timeout)
}

func TestRunSync_ContextDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res := RunSync("sleep 1", WithContext(ctx))
	require.True(t, res.IsErr())
	require.Equal(t, KindTimeout, res.Error().Kind())

	var timeoutErr *TimeoutError
	require.True(t, As(res.Error(), &timeoutErr))
	require.Zero(t, timeoutErr.Timeout)
}

func TestRunSync_MaxOutput(t *testing.T) {
	res := RunSync("head -c 4096 /dev/zero", WithMaxOutput(128))
	require.True(t, res.IsErr())
	require.Equal(t, KindMaxBufferExceeded, res.Error().Kind())
}

func TestRunSync_Env(t *testing.T) {
	res := RunSync("echo $PROC_TEST_VAR", WithEnv(map[string]string{
		"PROC_TEST_VAR": "injected",
	}))
	require.True(t, res.IsOk())
	require.Equal(t, "injected", strings.TrimSpace(res.Value()))
}

func TestRunSync_Dir(t *testing.T) {
	res := RunSync("pwd", WithDir("/tmp"))
	require.True(t, res.IsOk())
	require.Contains(t, res.Value(), "/tmp")
}

func TestRunSync_DisableColors(t *testing.T) {
	res := RunSync("echo $NO_COLOR", WithDisableColors())
	require.True(t, res.IsOk())
	require.Equal(t, "1", strings.TrimSpace(res.Value()))
}

func TestRunSync_Stdin(t *testing.T) {
	res := RunSync("cat", WithStdin(strings.NewReader("piped through")))
	require.True(t, res.IsOk())
	require.Equal(t, "piped through", res.Value())
}

func TestRunFileSync(t *testing.T) {
	res := RunFileSync("echo", []string{"direct"})
	require.True(t, res.IsOk())
	require.Equal(t, "direct", strings.TrimSpace(res.Value()))
}

func TestRunFileSync_NotFound(t *testing.T) {
	res := RunFileSync("/does/not/exist", nil)
	require.True(t, res.IsErr())
	require.Equal(t, KindNotFound, res.Error().Kind())

	var notFoundErr *NotFoundError
	require.True(t, As(res.Error(), &notFoundErr))
}

func TestRunFileSync_EmptyFile(t *testing.T) {
	res := RunFileSync("", nil)
	require.True(t, res.IsErr())
	require.Equal(t, KindInvalidArgument, res.Error().Kind())
}

func TestSpawnSync(t *testing.T) {
	res := SpawnSync("echo", []string{"low level"})
	require.True(t, res.IsOk())

	out := res.Value()
	require.Equal(t, "low level", strings.TrimSpace(string(out.Stdout)))
	require.NotNil(t, out.Status)
	require.Equal(t, 0, *out.Status)
	require.Empty(t, out.Signal)
	require.NotZero(t, out.Pid)
}

func TestSpawnSync_NonZeroExit(t *testing.T) {
	res := SpawnSync("sh", []string{"-c", "echo captured; exit 4"})
	require.True(t, res.IsErr())

	var exitErr *ExitError
	require.True(t, As(res.Error(), &exitErr))
	require.Equal(t, 4, exitErr.ExitCode)
	require.Equal(t, "captured", strings.TrimSpace(exitErr.Stdout))
}

func TestSpawnSync_Signal(t *testing.T) {
	res := SpawnSync("sh", []string{"-c", "kill -TERM $$"})
	require.True(t, res.IsErr())

	var killedErr *KilledError
	require.True(t, As(res.Error(), &killedErr))
	require.Equal(t, "SIGTERM", killedErr.Signal)
}

func TestSpawnSync_ContextDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res := SpawnSync("sleep", []string{"1"}, WithContext(ctx))
	require.True(t, res.IsErr())
	require.Equal(t, KindTimeout, res.Error().Kind())
}

func TestSpawnSync_NotFound(t *testing.T) {
	res := SpawnSync("/does/not/exist", nil)
	require.True(t, res.IsErr())
	require.Equal(t, KindNotFound, res.Error().Kind())
}
