package ffmpeg

import "strconv"

// Job describes one subtitle burn-in invocation. All paths are opaque
// staged paths; nothing here ever derives from a client-supplied name.
type Job struct {
	VideoPath    string
	SubtitlePath string
	OutputPath   string

	// Encode knobs. The video stream is re-encoded (burning happens in the
	// frame pixels); audio is always stream-copied.
	VideoCodec string
	Preset     string
	CRF        int // negative leaves rate control to the encoder default

	// Style is an ASS force_style override passed through to the subtitles
	// filter, e.g. "FontSize=24,PrimaryColour=&Hffffff&". Empty omits it.
	Style string
}

// BuildBurnArgs constructs the complete ffmpeg argument vector for a burn
// job. Arguments stay a discrete list end to end; no shell is involved.
//
// -y is unconditional: the output path is freshly allocated per request and
// never pre-exists with meaningful content.
func BuildBurnArgs(job Job) []string {
	vf := "subtitles=filename=" + EscapeFilterPath(job.SubtitlePath)
	if job.Style != "" {
		vf += ":force_style=" + quoteFilterValue(job.Style)
	}

	args := []string{
		"-y",
		"-nostdin",
		"-hide_banner",
		"-loglevel", "error",
		"-i", job.VideoPath,
		"-vf", vf,
		"-c:a", "copy",
		"-c:v", job.VideoCodec,
	}
	if job.Preset != "" {
		args = append(args, "-preset", job.Preset)
	}
	if job.CRF >= 0 {
		args = append(args, "-crf", strconv.Itoa(job.CRF))
	}
	args = append(args,
		"-movflags", "+faststart", // moov atom first, playable while streaming
		job.OutputPath,
	)
	return args
}
