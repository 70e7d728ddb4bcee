package proc

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpawn_CaptureBothStreams(t *testing.T) {
	res := Spawn("sh", []string{"-c", "echo stdout; echo stderr >&2"},
		WithCaptureStdout(),
		WithCaptureStderr(),
	)
	require.True(t, res.IsOk())
	p := res.Value()
	require.NotEmpty(t, p.ID)
	require.NotZero(t, p.Pid())

	// The capture pipelines are independent; await order must not matter.
	stderrRes := p.Stderr().Await()
	stdoutRes := p.Stdout().Await()
	require.True(t, stdoutRes.IsOk())
	require.True(t, stderrRes.IsOk())
	require.Equal(t, "stdout", strings.TrimSpace(stdoutRes.Value()))
	require.Equal(t, "stderr", strings.TrimSpace(stderrRes.Value()))

	exit := WaitForExit(p).Await()
	require.True(t, exit.IsOk())
	require.NotNil(t, exit.Value().Code)
	require.Equal(t, 0, *exit.Value().Code)
}

func TestSpawn_NoCaptureByDefault(t *testing.T) {
	res := Spawn("true", nil)
	require.True(t, res.IsOk())
	p := res.Value()
	require.Nil(t, p.Stdout())
	require.Nil(t, p.Stderr())

	exit := WaitForExit(p).Await()
	require.True(t, exit.IsOk())
}

func TestSpawn_StartFailure(t *testing.T) {
	res := Spawn("/does/not/exist", nil)
	require.True(t, res.IsErr())
	require.Equal(t, KindNotFound, res.Error().Kind())
}

func TestSpawn_EmptyCommand(t *testing.T) {
	res := Spawn("", nil)
	require.True(t, res.IsErr())
	require.Equal(t, KindInvalidArgument, res.Error().Kind())
}

func TestSpawn_NoErrorNotificationOnCleanExit(t *testing.T) {
	res := Spawn("true", nil)
	require.True(t, res.IsOk())
	p := res.Value()

	<-p.Exited()
	select {
	case err := <-p.Err():
		t.Fatalf("unexpected error notification: %v", err)
	default:
	}
}

func TestSpawn_KillObservedAsKilled(t *testing.T) {
	res := Spawn("sleep", []string{"30"})
	require.True(t, res.IsOk())
	p := res.Value()

	require.NoError(t, p.Kill())

	exit := WaitForExit(p).Await()
	require.True(t, exit.IsErr())

	var killedErr *KilledError
	require.True(t, As(exit.Error(), &killedErr))
	require.Equal(t, "SIGKILL", killedErr.Signal)
}

func TestSpawn_MaxOutputOnCapture(t *testing.T) {
	res := Spawn("head", []string{"-c", "4096", "/dev/zero"},
		WithCaptureStdout(),
		WithMaxOutput(128),
	)
	require.True(t, res.IsOk())
	p := res.Value()

	captured := p.Stdout().Await()
	require.True(t, captured.IsErr())
	require.Equal(t, KindMaxBufferExceeded, captured.Error().Kind())
}

func TestFork(t *testing.T) {
	res := Fork([]string{"-test.run=TestHelperProcess", "--", "echo", "from fork"},
		WithInheritEnv(),
		WithEnv(map[string]string{"GO_WANT_HELPER_PROCESS": "1"}),
		WithCaptureStdout(),
	)

	// Fork resolves Ok before the OS start has completed; failures would
	// surface on the handle, not here.
	require.True(t, res.IsOk())
	p := res.Value()
	require.NotEmpty(t, p.ID)

	stdout := p.Stdout().Await()
	require.True(t, stdout.IsOk())
	require.Equal(t, "from fork", strings.TrimSpace(stdout.Value()))

	exit := WaitForExit(p).Await()
	require.True(t, exit.IsOk())
	require.NotNil(t, exit.Value().Code)
	require.Equal(t, 0, *exit.Value().Code)
}

func TestFork_StartFailure(t *testing.T) {
	// An unusable working directory makes the OS start fail after Fork
	// has already resolved Ok.
	res := Fork(nil,
		WithDir("/does/not/exist"),
		WithCaptureStdout(),
		WithCaptureStderr(),
	)
	require.True(t, res.IsOk())
	p := res.Value()

	// The failure fires the notification, fails both capture futures, and
	// takes precedence over any termination outcome.
	require.Error(t, <-p.Err())

	stdoutRes := p.Stdout().Await()
	require.True(t, stdoutRes.IsErr())
	require.Equal(t, KindNotFound, stdoutRes.Error().Kind())

	stderrRes := p.Stderr().Await()
	require.True(t, stderrRes.IsErr())
	require.Equal(t, KindNotFound, stderrRes.Error().Kind())

	exit := WaitForExit(p).Await()
	require.True(t, exit.IsErr())
	require.Equal(t, KindNotFound, exit.Error().Kind())

	require.Zero(t, p.Pid())
	require.Error(t, p.Kill())
}

// TestHelperProcess is not a real test: Fork re-executes the test binary,
// and this is the entry point the forked copy runs.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) > 0 && args[0] == "echo" {
		fmt.Println(strings.Join(args[1:], " "))
	}
	os.Exit(0)
}
