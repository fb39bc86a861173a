// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/subburnd/subburnd/internal/log"
	"github.com/subburnd/subburnd/internal/pipeline"
)

// errorResponse is the JSON body for every failed request.
type errorResponse struct {
	Error    string `json:"error"`
	Detail   string `json:"detail,omitempty"`
	ExitCode *int   `json:"exitCode,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeBadRequest writes a 400 response with the given message
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// writePipelineError maps a burn failure onto the HTTP surface. Messages
// and bounded stderr excerpts cross the boundary; wrapped causes never do.
func writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	var perr *pipeline.Error
	if !errors.As(err, &perr) {
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().Err(err).Msg("burn failed with unclassified error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	switch perr.Kind {
	case pipeline.KindClientInput:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: perr.Message})
	case pipeline.KindBusy:
		w.Header().Set("Retry-After", "30")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: perr.Message})
	case pipeline.KindTimeout:
		writeJSON(w, http.StatusRequestTimeout, errorResponse{Error: perr.Message})
	case pipeline.KindTranscode:
		code := perr.ExitCode
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:    perr.Message,
			Detail:   perr.Detail,
			ExitCode: &code,
		})
	default:
		// Infrastructure: full cause goes to the log, a generic message
		// to the caller.
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().Err(perr).Msg("burn failed on infrastructure")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: perr.Message})
	}
}

// setDownloadHeaders sets appropriate headers for streaming a produced file
func setDownloadHeaders(w http.ResponseWriter, name string, size int64) {
	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
}
