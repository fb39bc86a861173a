// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/subburnd/subburnd/internal/log"
	"github.com/subburnd/subburnd/internal/pipeline"
)

// memoryThreshold is how much of a multipart body stays in memory before
// spilling to temp files. Uploads are typically far larger.
const memoryThreshold = 32 << 20

// downloadName is the filename suggested to the client for the result.
const downloadName = "video_with_subs.mp4"

// handleHome reports service identity and the available endpoints.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "subburnd",
		"version": s.cfg.Version,
		"endpoints": map[string]string{
			"burn":   "POST /burn-subtitles (multipart fields: video, srt; optional: style)",
			"health": "GET /healthz",
			"ready":  "GET /readyz",
		},
	})
}

// handleBurn accepts a video and a subtitle file, burns the subtitles in
// and streams the result back.
func (s *Server) handleBurn(w http.ResponseWriter, r *http.Request) {
	logger := log.WithContext(r.Context(), s.logger)

	if s.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	}

	if err := r.ParseMultipartForm(memoryThreshold); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: "upload exceeds the size limit",
			})
			return
		}
		writeBadRequest(w, "request must be multipart/form-data with video and srt files")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	video, _, err := r.FormFile("video")
	if err != nil {
		writeBadRequest(w, "missing file field: video")
		return
	}
	defer func() { _ = video.Close() }()

	subs, _, err := r.FormFile("srt")
	if err != nil {
		writeBadRequest(w, "missing file field: srt")
		return
	}
	defer func() { _ = subs.Close() }()

	opts := pipeline.Options{Style: r.FormValue("style")}

	out, err := s.burner.Burn(r.Context(), video, subs, opts)
	if err != nil {
		writePipelineError(w, r, err)
		return
	}
	defer out.Close()

	f, err := out.Open()
	if err != nil {
		logger.Error().Err(err).Msg("produced file vanished before streaming")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	defer func() { _ = f.Close() }()

	setDownloadHeaders(w, downloadName, out.Size)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		// Headers are gone; all we can do is log the broken transfer.
		logger.Warn().Err(err).Msg("result stream aborted")
	}
}
