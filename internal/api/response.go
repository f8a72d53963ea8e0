package api

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"codeberg.org/snonux/gospeltts/internal/store"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteError writes an error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Detail: message})
}

// WriteJSON writes the data structure as JSON.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteAudio writes an MP3 artifact, as a download when attachment is set
// and for in-page playback otherwise.
func WriteAudio(w http.ResponseWriter, artifact *store.Artifact, attachment bool) {
	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}

	if v := mime.FormatMediaType(disposition, map[string]string{"filename": artifact.FileName()}); v != "" {
		disposition = v
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.Header().Set("Content-Disposition", disposition)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Data)
}
