// Package procgroup spawns child processes in their own process group and
// reaps the whole group, so helper processes forked by ffmpeg cannot outlive
// a timed-out or cancelled transcode.
package procgroup

import (
	"errors"
	"os/exec"
	"time"
)

// ErrKillFailed is returned when the process group is still alive after the
// SIGKILL escalation window.
var ErrKillFailed = errors.New("kill operation failed")

// Set configures the command to start in a new process group. It must be
// called before cmd.Start for KillGroup to work as a group reaper.
func Set(cmd *exec.Cmd) {
	set(cmd)
}

// KillGroup terminates the process group led by pid: SIGTERM, a grace
// period, then SIGKILL. The process must have been spawned via Set.
func KillGroup(pid int, grace, timeout time.Duration) error {
	return killGroup(pid, grace, timeout)
}
