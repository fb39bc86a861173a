// Package validation performs pre-flight checks before the servers start.
package validation

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/subburnd/subburnd/internal/config"
	"github.com/subburnd/subburnd/internal/log"
)

// PerformStartupChecks validates the environment and dependencies before
// starting the server. Failing fast here beats serving 500s later.
func PerformStartupChecks(cfg config.AppConfig) error {
	logger := log.WithComponent("startup-check")
	logger.Info().Msg("running pre-flight startup checks")

	if err := checkScratchDir(logger, cfg.ScratchDir); err != nil {
		return fmt.Errorf("scratch directory check failed: %w", err)
	}

	if err := checkTranscoder(logger, cfg.FFmpegBin); err != nil {
		return fmt.Errorf("transcoder check failed: %w", err)
	}

	logger.Info().Msg("all startup checks passed")
	return nil
}

func checkScratchDir(logger zerolog.Logger, path string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	testFile := filepath.Join(path, ".write_test")
	if err := os.WriteFile(testFile, []byte("ok"), 0o600); err != nil {
		return fmt.Errorf("directory is not writable: %s (error: %v)", path, err)
	}
	_ = os.Remove(testFile)

	logger.Info().Str("path", path).Msg("scratch directory is writable")
	return nil
}

func checkTranscoder(logger zerolog.Logger, bin string) error {
	path, err := exec.LookPath(bin)
	if err != nil {
		return fmt.Errorf("transcoder binary %q not found: %w", bin, err)
	}

	logger.Info().Str("bin", path).Msg("transcoder binary resolved")
	return nil
}
