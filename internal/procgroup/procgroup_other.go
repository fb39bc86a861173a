//go:build !linux

package procgroup

import (
	"os"
	"os/exec"
	"time"

	"github.com/subburnd/subburnd/internal/log"
)

func set(cmd *exec.Cmd) {
	// Group handling is Linux-specific; elsewhere only the root process is
	// managed.
}

func killGroup(pid int, grace, timeout time.Duration) error {
	if pid <= 0 {
		return nil
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}

	log.L().Debug().Int("pid", pid).Msg("interrupting root process (non-linux fallback)")
	_ = proc.Signal(os.Interrupt)

	done := make(chan struct{})
	go func() {
		_, _ = proc.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(grace):
		_ = proc.Kill()
	}

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return ErrKillFailed
	}
}
