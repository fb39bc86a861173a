package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/subburnd/subburnd/internal/log"
	"github.com/subburnd/subburnd/internal/procgroup"
)

// StderrTailLimit bounds the diagnostic excerpt carried in a Result so a
// chatty transcoder cannot inflate error payloads.
const StderrTailLimit = 1000

// State is the terminal state of one transcoder invocation.
type State string

const (
	StateCompleted   State = "completed"
	StateFailed      State = "failed"
	StateTimedOut    State = "timed-out"
	StateSpawnFailed State = "spawn-failed"
)

// Result captures the outcome of running the transcoder.
type Result struct {
	State      State
	ExitCode   int
	StderrTail string
}

// Runner runs a transcoder command to completion under a context bound.
// The pipeline depends on this interface so tests can substitute the
// process spawn.
type Runner interface {
	Run(ctx context.Context, bin string, args []string) (*Result, error)
}

// Executor is the production Runner. It starts the transcoder in its own
// process group and reaps the whole group when the context expires, so no
// child survives a timeout or a dropped client connection.
type Executor struct {
	// KillGrace is how long the group gets between SIGTERM and SIGKILL.
	KillGrace time.Duration

	logger zerolog.Logger
}

// NewExecutor returns an Executor with the default kill escalation window.
func NewExecutor() *Executor {
	return &Executor{
		KillGrace: 3 * time.Second,
		logger:    log.WithComponent("ffmpeg"),
	}
}

// Run executes bin with args and waits for it, bounded by ctx. The returned
// Result is never nil. The error wraps ErrSpawnFailed, ErrTimeout or
// ErrTranscodeFailed for the non-success states, or ctx.Err() when the
// caller cancelled.
func (e *Executor) Run(ctx context.Context, bin string, args []string) (*Result, error) {
	logger := log.WithContext(ctx, e.logger)

	cmd := exec.Command(bin, args...)
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf
	procgroup.Set(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		logger.Error().Err(err).Str("bin", bin).Msg("transcoder spawn failed")
		return &Result{State: StateSpawnFailed, ExitCode: -1},
			fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var waitErr error
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		pid := cmd.Process.Pid
		logger.Warn().
			Int("pid", pid).
			Dur("elapsed", time.Since(start)).
			Msg("context expired, killing transcoder process group")
		if err := procgroup.KillGroup(pid, e.KillGrace, 10*time.Second); err != nil {
			logger.Error().Err(err).Int("pid", pid).Msg("failed to reap transcoder process group")
		}
		<-done // release the Wait goroutine

		res := &Result{
			State:      StateTimedOut,
			ExitCode:   exitCode(cmd),
			StderrTail: tail(stderrBuf.String(), StderrTailLimit),
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return res, fmt.Errorf("%w after %s", ErrTimeout, time.Since(start).Round(time.Second))
		}
		// Client went away; not a timeout, surface the cancellation as-is.
		return res, ctx.Err()
	}

	code := exitCode(cmd)
	if waitErr != nil {
		logger.Warn().
			Int("exit_code", code).
			Dur("elapsed", time.Since(start)).
			Msg("transcoder exited non-zero")
		return &Result{
			State:      StateFailed,
			ExitCode:   code,
			StderrTail: tail(stderrBuf.String(), StderrTailLimit),
		}, fmt.Errorf("%w: exit status %d", ErrTranscodeFailed, code)
	}

	logger.Debug().
		Dur("elapsed", time.Since(start)).
		Msg("transcoder completed")
	return &Result{State: StateCompleted, ExitCode: 0}, nil
}

func exitCode(cmd *exec.Cmd) int {
	if cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}

// tail returns the last n bytes of s, cutting at the start of a line where
// possible so the excerpt stays readable.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[len(s)-n:]
	if i := bytes.IndexByte([]byte(s), '\n'); i >= 0 && i+1 < len(s) {
		s = s[i+1:]
	}
	return s
}
