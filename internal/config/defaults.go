package config

import "time"

// DefaultStyle mirrors the styling the service has always applied when the
// caller does not supply an override: white text with a black outline.
const DefaultStyle = "FontSize=24,PrimaryColour=&Hffffff&,OutlineColour=&H000000&,Outline=2"

func defaults() AppConfig {
	return AppConfig{
		ListenAddr:    ":8080",
		MetricsListen: "",

		ScratchDir: "/tmp/subburn",
		FFmpegBin:  "ffmpeg",
		Timeout:    900 * time.Second,
		VideoCodec: "libx264",
		Preset:     "fast",
		CRF:        -1,
		Style:      DefaultStyle,

		MaxConcurrent:  2,
		AdmissionWait:  5 * time.Second,
		MaxUploadBytes: 2 << 30, // 2 GiB
		RateLimitRPM:   0,

		SweepInterval: 10 * time.Minute,
		SweepMaxAge:   2 * time.Hour,

		LogLevel:   "info",
		LogService: "subburnd",
	}
}
