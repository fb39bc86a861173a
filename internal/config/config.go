// Package config loads the immutable application configuration.
//
// Precedence is ENV > file > defaults. The resulting AppConfig is built
// once at process start and passed by value into the components that
// need it; nothing reads the environment after startup.
package config

import (
	"time"
)

// AppConfig is the complete runtime configuration of the service.
type AppConfig struct {
	// Server
	ListenAddr    string // API listen address
	MetricsListen string // Prometheus listen address; empty disables metrics server

	// Transcoding
	ScratchDir string        // writable directory for staged uploads and outputs
	FFmpegBin  string        // ffmpeg binary path or name resolved via PATH
	Timeout    time.Duration // wall-clock bound per transcode
	VideoCodec string        // encoder passed to -c:v
	Preset     string        // encoder preset passed to -preset
	CRF        int           // constant rate factor; negative means unset
	Style      string        // default force_style string for the subtitles filter

	// Admission control
	MaxConcurrent  int           // concurrent transcode ceiling
	AdmissionWait  time.Duration // how long a request waits for a transcode slot
	MaxUploadBytes int64         // per-request multipart size limit
	RateLimitRPM   int           // burn endpoint requests per minute per IP; 0 disables

	// Scratch sweeper
	SweepInterval time.Duration // how often the background sweep runs
	SweepMaxAge   time.Duration // scratch files older than this are removed

	// Logging
	LogLevel   string
	LogService string

	// Build metadata, injected by the loader
	Version string
}

// ServerConfig holds HTTP server tuning for the daemon.
type ServerConfig struct {
	ListenAddr      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxHeaderBytes  int
}

// Server derives the HTTP server settings. Read and write timeouts must
// outlast the transcode bound: the upload is consumed and the result
// written inside a single request.
func (c AppConfig) Server() ServerConfig {
	grace := 2 * time.Minute
	return ServerConfig{
		ListenAddr:      c.ListenAddr,
		ReadTimeout:     c.Timeout + grace,
		WriteTimeout:    c.Timeout + grace,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		MaxHeaderBytes:  1 << 20,
	}
}
