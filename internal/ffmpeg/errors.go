package ffmpeg

import "errors"

var (
	// ErrSpawnFailed means the transcoder process could not be started at
	// all (missing binary, permissions). An infrastructure problem, not a
	// media problem.
	ErrSpawnFailed = errors.New("transcoder could not be started")

	// ErrTimeout means the transcoder exceeded its wall-clock bound and was
	// force-terminated.
	ErrTimeout = errors.New("transcoder exceeded time limit")

	// ErrTranscodeFailed means the transcoder ran and exited non-zero.
	ErrTranscodeFailed = errors.New("transcoder failed")
)
