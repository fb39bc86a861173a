package ffmpeg

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExecutor() *Executor {
	e := NewExecutor()
	e.KillGrace = 100 * time.Millisecond
	return e
}

func TestRunCompleted(t *testing.T) {
	res, err := testExecutor().Run(context.Background(), "true", nil)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, res.State)
	assert.Equal(t, 0, res.ExitCode)
}

func TestRunFailedCapturesStderr(t *testing.T) {
	res, err := testExecutor().Run(context.Background(), "sh",
		[]string{"-c", "echo boom >&2; exit 3"})
	require.ErrorIs(t, err, ErrTranscodeFailed)
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.StderrTail, "boom")
}

func TestRunStderrTailIsBounded(t *testing.T) {
	// Emit well over the limit; only the tail may survive.
	script := "i=0; while [ $i -lt 200 ]; do echo line-$i-0123456789 >&2; i=$((i+1)); done; echo final-line >&2; exit 1"
	res, err := testExecutor().Run(context.Background(), "sh", []string{"-c", script})
	require.ErrorIs(t, err, ErrTranscodeFailed)
	assert.LessOrEqual(t, len(res.StderrTail), StderrTailLimit)
	assert.Contains(t, res.StderrTail, "final-line")
	assert.NotContains(t, res.StderrTail, "line-0-")
}

func TestRunSpawnFailed(t *testing.T) {
	res, err := testExecutor().Run(context.Background(), "/nonexistent/transcoder-bin", nil)
	require.ErrorIs(t, err, ErrSpawnFailed)
	assert.Equal(t, StateSpawnFailed, res.State)
}

func TestRunTimeoutKillsProcess(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	res, err := testExecutor().Run(ctx, "sleep", []string{"30"})
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, StateTimedOut, res.State)
	// Terminated within a small grace window, not after the full sleep.
	assert.Less(t, elapsed, 5*time.Second)
}

func TestRunCancelIsNotTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	res, err := testExecutor().Run(ctx, "sleep", []string{"30"})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Equal(t, StateTimedOut, res.State)
}

func TestTail(t *testing.T) {
	assert.Equal(t, "short", tail("short", 1000))
	long := strings.Repeat("x", 500) + "\n" + strings.Repeat("y", 100)
	got := tail(long, 150)
	assert.LessOrEqual(t, len(got), 150)
	assert.Equal(t, strings.Repeat("y", 100), got)
}
