package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration file shape. Every field is
// a pointer so the loader can tell "absent" from "zero".
type FileConfig struct {
	Listen        *string `yaml:"listen"`
	MetricsListen *string `yaml:"metricsListen"`

	ScratchDir *string `yaml:"scratchDir"`
	FFmpegBin  *string `yaml:"ffmpegBin"`
	Timeout    *string `yaml:"timeout"`
	VideoCodec *string `yaml:"videoCodec"`
	Preset     *string `yaml:"preset"`
	CRF        *int    `yaml:"crf"`
	Style      *string `yaml:"style"`

	MaxConcurrent  *int    `yaml:"maxConcurrent"`
	AdmissionWait  *string `yaml:"admissionWait"`
	MaxUploadBytes *int64  `yaml:"maxUploadBytes"`
	RateLimitRPM   *int    `yaml:"rateLimitRPM"`

	SweepInterval *string `yaml:"sweepInterval"`
	SweepMaxAge   *string `yaml:"sweepMaxAge"`

	LogLevel   *string `yaml:"logLevel"`
	LogService *string `yaml:"logService"`
}

// Loader handles configuration loading with precedence ENV > file > defaults.
type Loader struct {
	configPath string
	version    string
}

// NewLoader creates a new configuration loader.
func NewLoader(configPath, version string) *Loader {
	return &Loader{configPath: configPath, version: version}
}

// Load builds the AppConfig: defaults first, then the optional YAML file,
// then environment overrides, then validation.
func (l *Loader) Load() (AppConfig, error) {
	cfg := defaults()
	cfg.Version = l.version

	if l.configPath != "" {
		fileCfg, err := loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		mergeFile(&cfg, fileCfg)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string) (*FileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &fc, nil
}

func mergeFile(cfg *AppConfig, fc *FileConfig) {
	setString(&cfg.ListenAddr, fc.Listen)
	setString(&cfg.MetricsListen, fc.MetricsListen)
	setString(&cfg.ScratchDir, fc.ScratchDir)
	setString(&cfg.FFmpegBin, fc.FFmpegBin)
	setDuration(&cfg.Timeout, fc.Timeout)
	setString(&cfg.VideoCodec, fc.VideoCodec)
	setString(&cfg.Preset, fc.Preset)
	setInt(&cfg.CRF, fc.CRF)
	setString(&cfg.Style, fc.Style)
	setInt(&cfg.MaxConcurrent, fc.MaxConcurrent)
	setDuration(&cfg.AdmissionWait, fc.AdmissionWait)
	setInt64(&cfg.MaxUploadBytes, fc.MaxUploadBytes)
	setInt(&cfg.RateLimitRPM, fc.RateLimitRPM)
	setDuration(&cfg.SweepInterval, fc.SweepInterval)
	setDuration(&cfg.SweepMaxAge, fc.SweepMaxAge)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogService, fc.LogService)
}

func applyEnv(cfg *AppConfig) {
	cfg.ListenAddr = ParseString("SUBBURN_LISTEN", cfg.ListenAddr)
	cfg.MetricsListen = ParseString("SUBBURN_METRICS_LISTEN", cfg.MetricsListen)
	cfg.ScratchDir = ParseString("SUBBURN_SCRATCH_DIR", cfg.ScratchDir)
	cfg.FFmpegBin = ParseString("SUBBURN_FFMPEG_BIN", cfg.FFmpegBin)
	cfg.Timeout = ParseDuration("SUBBURN_TIMEOUT", cfg.Timeout)
	cfg.VideoCodec = ParseString("SUBBURN_VIDEO_CODEC", cfg.VideoCodec)
	cfg.Preset = ParseString("SUBBURN_PRESET", cfg.Preset)
	cfg.CRF = ParseInt("SUBBURN_CRF", cfg.CRF)
	cfg.Style = ParseString("SUBBURN_STYLE", cfg.Style)
	cfg.MaxConcurrent = ParseInt("SUBBURN_MAX_CONCURRENT", cfg.MaxConcurrent)
	cfg.AdmissionWait = ParseDuration("SUBBURN_ADMISSION_WAIT", cfg.AdmissionWait)
	cfg.MaxUploadBytes = ParseInt64("SUBBURN_MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.RateLimitRPM = ParseInt("SUBBURN_RATE_LIMIT_RPM", cfg.RateLimitRPM)
	cfg.SweepInterval = ParseDuration("SUBBURN_SWEEP_INTERVAL", cfg.SweepInterval)
	cfg.SweepMaxAge = ParseDuration("SUBBURN_SWEEP_MAX_AGE", cfg.SweepMaxAge)
	cfg.LogLevel = ParseString("SUBBURN_LOG_LEVEL", cfg.LogLevel)
	cfg.LogService = ParseString("SUBBURN_LOG_SERVICE", cfg.LogService)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setInt64(dst *int64, src *int64) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *string) {
	if src == nil {
		return
	}
	if d, err := time.ParseDuration(*src); err == nil {
		*dst = d
	}
}
