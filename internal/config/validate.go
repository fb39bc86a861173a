package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Validate checks the configuration for values that would make the service
// unusable. It is called by the loader; startup fails fast on any error.
func (c AppConfig) Validate() error {
	if err := validateListen("listen address", c.ListenAddr); err != nil {
		return err
	}
	if c.MetricsListen != "" {
		if err := validateListen("metrics listen address", c.MetricsListen); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.ScratchDir) == "" {
		return fmt.Errorf("scratch directory must not be empty")
	}
	if strings.TrimSpace(c.FFmpegBin) == "" {
		return fmt.Errorf("ffmpeg binary must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("transcode timeout must be positive, got %v", c.Timeout)
	}
	if strings.TrimSpace(c.VideoCodec) == "" {
		return fmt.Errorf("video codec must not be empty")
	}
	if c.CRF > 51 {
		return fmt.Errorf("crf must be at most 51, got %d", c.CRF)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max concurrent transcodes must be at least 1, got %d", c.MaxConcurrent)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.SweepInterval <= 0 || c.SweepMaxAge <= 0 {
		return fmt.Errorf("sweep interval and max age must be positive")
	}
	return nil
}

func validateListen(what, addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", what, addr, err)
	}
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 0 || portNum > 65535 {
		return fmt.Errorf("invalid port %q in %s %q", port, what, addr)
	}
	return nil
}
