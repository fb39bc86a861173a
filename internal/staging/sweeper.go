package staging

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/subburnd/subburnd/internal/metrics"
)

// Sweep removes regular files in the scratch directory whose modification
// time is older than maxAge. It is the second line of defense behind the
// per-request cleanup: if the process dies mid-request, the leaked files
// age out here. Returns the number of files removed.
func (s *Store) Sweep(maxAge time.Duration) int {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		s.logger.Warn().Err(err).Msg("sweep: cannot read scratch dir")
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.root, e.Name())
		if err := os.Remove(path); err != nil {
			if !os.IsNotExist(err) {
				s.logger.Warn().Err(err).Str("path", path).Msg("sweep: remove failed")
			}
			continue
		}
		removed++
		metrics.SweepDeletions.Inc()
		s.logger.Info().
			Str("event", "sweep.removed").
			Str("path", path).
			Time("mod_time", info.ModTime()).
			Msg("removed stale scratch file")
	}
	return removed
}

// RunSweeper runs Sweep every interval until ctx is cancelled.
func (s *Store) RunSweeper(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", interval).
		Dur("max_age", maxAge).
		Msg("scratch sweeper running")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(maxAge)
		}
	}
}
