// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
)

// TranscoderChecker verifies the ffmpeg binary resolves to an executable.
// The service can accept traffic only if it can actually spawn the tool.
type TranscoderChecker struct {
	bin string
}

// NewTranscoderChecker creates a checker for the configured ffmpeg binary.
func NewTranscoderChecker(bin string) *TranscoderChecker {
	return &TranscoderChecker{bin: bin}
}

func (c *TranscoderChecker) Name() string { return "transcoder" }

func (c *TranscoderChecker) Check(_ context.Context) CheckResult {
	path, err := exec.LookPath(c.bin)
	if err != nil {
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  "transcoder binary not found",
		}
	}
	return CheckResult{Status: StatusHealthy, Message: path}
}

// ScratchChecker verifies the scratch directory is writable.
type ScratchChecker struct {
	dir string
}

// NewScratchChecker creates a checker for the scratch directory.
func NewScratchChecker(dir string) *ScratchChecker {
	return &ScratchChecker{dir: dir}
}

func (c *ScratchChecker) Name() string { return "scratch" }

func (c *ScratchChecker) Check(_ context.Context) CheckResult {
	probe := filepath.Join(c.dir, ".ready_probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  "scratch directory is not writable",
		}
	}
	_ = os.Remove(probe)
	return CheckResult{Status: StatusHealthy}
}
