// Package pipeline implements the request-scoped subtitle burn-in flow:
// stage the uploads, synthesize the transcoder command, run it under a
// wall-clock bound, validate the output, and clean up every scratch file
// no matter which way the request ends.
package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/subburnd/subburnd/internal/config"
	"github.com/subburnd/subburnd/internal/ffmpeg"
	"github.com/subburnd/subburnd/internal/log"
	"github.com/subburnd/subburnd/internal/metrics"
	"github.com/subburnd/subburnd/internal/staging"
)

// Options carries the per-request knobs a caller may override.
type Options struct {
	// Style overrides the configured force_style string. Empty keeps the
	// configured default.
	Style string
}

// Output is a successful result: a readable transcoded file on scratch
// storage. The caller streams it and then calls Close, which removes the
// file. Close is idempotent.
type Output struct {
	Path string
	Size int64

	store *staging.Store
	done  bool
}

// Open returns a reader over the produced file.
func (o *Output) Open() (io.ReadCloser, error) {
	return os.Open(o.Path)
}

// Close removes the output file from scratch storage.
func (o *Output) Close() {
	if o.done {
		return
	}
	o.done = true
	if o.store != nil {
		o.store.Remove(o.Path)
		return
	}
	_ = os.Remove(o.Path)
}

// Pipeline executes burn requests. It holds no per-request state; the only
// shared members are the scratch store, the runner and the admission
// semaphore, so invocations are safe to run concurrently.
type Pipeline struct {
	cfg    config.AppConfig
	store  *staging.Store
	runner ffmpeg.Runner
	sem    chan struct{}
	logger zerolog.Logger
}

// New creates a Pipeline bounded to cfg.MaxConcurrent parallel transcodes.
func New(cfg config.AppConfig, store *staging.Store, runner ffmpeg.Runner) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		store:  store,
		runner: runner,
		sem:    make(chan struct{}, cfg.MaxConcurrent),
		logger: log.WithComponent("pipeline"),
	}
}

// Burn runs the full pipeline for one request. Both streams must be
// non-empty. On success the returned Output references the produced file;
// on failure the error is always a *Error and every staged file is gone.
func (p *Pipeline) Burn(ctx context.Context, video, subtitles io.Reader, opts Options) (*Output, error) {
	logger := log.WithContext(ctx, p.logger)
	start := time.Now()

	if video == nil || subtitles == nil {
		metrics.IncOutcome("client_error")
		return nil, clientInputErr("video and subtitle uploads are both required", nil)
	}

	// Admission: wait briefly for a transcode slot, then push back. Each
	// transcode saturates cores for minutes; unbounded concurrency would
	// take the host down under load.
	admission := time.NewTimer(p.cfg.AdmissionWait)
	defer admission.Stop()
	select {
	case p.sem <- struct{}{}:
		defer func() { <-p.sem }()
	case <-admission.C:
		logger.Warn().Msg("no transcode slot available within admission window")
		metrics.IncOutcome("rejected")
		return nil, busyErr()
	case <-ctx.Done():
		metrics.IncOutcome("canceled")
		return nil, infraErr("request cancelled", ctx.Err())
	}

	metrics.BurnInFlight.Inc()
	defer metrics.BurnInFlight.Dec()
	defer func() {
		metrics.BurnDuration.Observe(time.Since(start).Seconds())
	}()

	// Staging. All three paths are opaque and unique to this request; the
	// deferred remove is the single cleanup point for the staged inputs.
	stagedVideo, err := p.store.Stage(video, staging.KindVideo)
	if err != nil {
		return nil, p.stagingError("video", err)
	}
	defer p.store.Remove(stagedVideo.Path)

	stagedSubs, err := p.store.Stage(subtitles, staging.KindSubtitles)
	if err != nil {
		return nil, p.stagingError("subtitle", err)
	}
	defer p.store.Remove(stagedSubs.Path)

	outputPath := p.store.Allocate(staging.KindOutput)

	style := p.cfg.Style
	if opts.Style != "" {
		style = opts.Style
	}
	args := ffmpeg.BuildBurnArgs(ffmpeg.Job{
		VideoPath:    stagedVideo.Path,
		SubtitlePath: stagedSubs.Path,
		OutputPath:   outputPath,
		VideoCodec:   p.cfg.VideoCodec,
		Preset:       p.cfg.Preset,
		CRF:          p.cfg.CRF,
		Style:        style,
	})

	logger.Info().
		Str("event", "burn.start").
		Int64("video_bytes", stagedVideo.Size).
		Int64("subtitle_bytes", stagedSubs.Size).
		Dur("timeout", p.cfg.Timeout).
		Msg("starting transcode")

	runCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	result, runErr := p.runner.Run(runCtx, p.cfg.FFmpegBin, args)
	if runErr != nil {
		p.store.Remove(outputPath)
		return nil, p.executionError(logger, result, runErr)
	}

	// The transcoder exiting zero is not proof of a usable file; verify
	// independently before declaring success.
	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		p.store.Remove(outputPath)
		logger.Error().
			Str("event", "burn.no_output").
			Int("exit_code", result.ExitCode).
			Msg("transcoder exited zero but produced no output")
		metrics.IncOutcome("no_output")
		return nil, transcodeErr("transcoder produced no output", result.ExitCode, result.StderrTail, err)
	}

	logger.Info().
		Str("event", "burn.done").
		Int64("output_bytes", info.Size()).
		Dur("elapsed", time.Since(start)).
		Msg("transcode completed")
	metrics.IncOutcome("success")
	metrics.BytesProduced.Add(float64(info.Size()))

	return &Output{Path: outputPath, Size: info.Size(), store: p.store}, nil
}

func (p *Pipeline) stagingError(which string, err error) *Error {
	if errors.Is(err, staging.ErrEmptyUpload) {
		metrics.IncOutcome("client_error")
		return clientInputErr(which+" upload is empty", err)
	}
	p.logger.Error().Err(err).Str("upload", which).Msg("staging failed")
	metrics.IncOutcome("infra_error")
	return infraErr("could not store upload", err)
}

func (p *Pipeline) executionError(logger zerolog.Logger, result *ffmpeg.Result, runErr error) *Error {
	switch {
	case errors.Is(runErr, ffmpeg.ErrTimeout):
		logger.Warn().
			Str("event", "burn.timeout").
			Dur("limit", p.cfg.Timeout).
			Msg("transcode timed out")
		metrics.IncOutcome("timeout")
		return timeoutErr(runErr)

	case errors.Is(runErr, context.Canceled):
		logger.Info().Str("event", "burn.canceled").Msg("request cancelled mid-transcode")
		metrics.IncOutcome("canceled")
		return infraErr("request cancelled", runErr)

	case errors.Is(runErr, ffmpeg.ErrSpawnFailed):
		logger.Error().Err(runErr).Str("event", "burn.spawn_failed").Msg("transcoder spawn failed")
		metrics.IncOutcome("spawn_failed")
		return infraErr("transcoder unavailable", runErr)

	default:
		logger.Warn().
			Str("event", "burn.failed").
			Int("exit_code", result.ExitCode).
			Str("stderr_tail", result.StderrTail).
			Msg("transcode failed")
		metrics.IncOutcome("transcode_failed")
		return transcodeErr("transcoding failed", result.ExitCode, result.StderrTail, runErr)
	}
}
