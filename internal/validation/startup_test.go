package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subburnd/subburnd/internal/config"
)

func TestPerformStartupChecks(t *testing.T) {
	cfg := config.AppConfig{
		ScratchDir: t.TempDir(),
		FFmpegBin:  "sh", // stand-in binary that exists everywhere
	}
	require.NoError(t, PerformStartupChecks(cfg))
}

func TestStartupChecksMissingTranscoder(t *testing.T) {
	cfg := config.AppConfig{
		ScratchDir: t.TempDir(),
		FFmpegBin:  "definitely-not-a-binary-xyz",
	}
	err := PerformStartupChecks(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcoder")
}

func TestStartupChecksBadScratchDir(t *testing.T) {
	cfg := config.AppConfig{
		ScratchDir: "/proc/no-such-place",
		FFmpegBin:  "sh",
	}
	err := PerformStartupChecks(cfg)
	assert.Error(t, err)
}
