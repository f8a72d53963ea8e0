package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"codeberg.org/snonux/gospeltts/internal/language"
	"codeberg.org/snonux/gospeltts/internal/pipeline"
	"codeberg.org/snonux/gospeltts/internal/processor"
	"codeberg.org/snonux/gospeltts/internal/recognition"
	"codeberg.org/snonux/gospeltts/internal/source"
	"codeberg.org/snonux/gospeltts/internal/store"
	"codeberg.org/snonux/gospeltts/internal/sweep"
	"codeberg.org/snonux/gospeltts/internal/verse"
)

// Service is what the handlers need from the submission processor.
type Service interface {
	Submit(ctx context.Context, s processor.Submission) (*processor.Result, error)
	StartSession() (sweep.Report, error)
	Store() *store.Store
}

// Handler serves the form endpoints.
type Handler struct {
	svc    Service
	verses verse.Provider
	now    func() time.Time
	logger zerolog.Logger
}

// NewHandler creates a handler.
func NewHandler(svc Service, verses verse.Provider, logger zerolog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		verses: verses,
		now:    time.Now,
		logger: logger,
	}
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Defaults are the initial form values.
type Defaults struct {
	SourceLanguage    string `json:"source_language"`
	TargetLanguage    string `json:"target_language"`
	Accent            string `json:"accent"`
	Preset            string `json:"preset"`
	UseCustomText     bool   `json:"use_custom_text"`
	DisplayOutputText bool   `json:"display_output_text"`
}

// OptionsResponse carries everything the form needs to render.
type OptionsResponse struct {
	Languages  []language.Language `json:"languages"`
	Accents    []language.Accent   `json:"accents"`
	Presets    []verse.Verse       `json:"presets"`
	DailyVerse verse.Daily         `json:"daily_verse"`
	Defaults   Defaults            `json:"defaults"`
	Swept      int                 `json:"swept"`
}

// HandleOptions is the page load. It sweeps expired audio and returns the
// form tables.
func (h *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.StartSession()
	if err != nil {
		h.logger.Warn().Err(err).Msg("sweep on page load incomplete")
	}

	WriteJSON(w, http.StatusOK, OptionsResponse{
		Languages:  language.Languages(),
		Accents:    language.Accents(),
		Presets:    verse.Presets(),
		DailyVerse: verse.DailyVerse(h.now()),
		Defaults: Defaults{
			SourceLanguage: language.DefaultCode,
			TargetLanguage: language.DefaultCode,
			Accent:         language.DefaultAccent,
			Preset:         verse.DefaultPreset().Reference,
			UseCustomText:  true,
		},
		Swept: len(report.Deleted),
	})
}

// VerseResponse is a found verse.
type VerseResponse struct {
	Reference   string `json:"reference"`
	Text        string `json:"text"`
	Translation string `json:"translation_name,omitempty"`
	Formatted   string `json:"formatted"`
}

// HandleVerse looks up ?reference= for the search box preview.
func (h *Handler) HandleVerse(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(r.URL.Query().Get("reference"))
	if ref == "" {
		WriteError(w, http.StatusBadRequest, "Please enter a verse reference.")
		return
	}

	v, err := h.verses.Lookup(r.Context(), ref)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, VerseResponse{
		Reference:   v.Reference,
		Text:        v.Text,
		Translation: v.Translation,
		Formatted:   v.Formatted(),
	})
}

// ConvertResponse is a finished conversion.
type ConvertResponse struct {
	FileName    string    `json:"file_name"`
	AudioURL    string    `json:"audio_url"`
	DownloadURL string    `json:"download_url"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	Source      string    `json:"source"`
	SourceText  string    `json:"source_text"`
	OutputText  string    `json:"output_text,omitempty"`
	ShareURL    string    `json:"share_url"`
}

// HandleConvert runs one submission.
func (h *Handler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	req, err := ParseConvertRequest(r)
	if err != nil {
		if httpErr, ok := IsHTTPError(err); ok {
			WriteError(w, httpErr.Status, httpErr.Message)
			return
		}
		WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	sub := processor.Submission{
		Source: source.Input{
			VerseReference: req.VerseReference,
			UseCustomText:  req.CustomTextEnabled(),
			CustomText:     req.CustomText,
			Preset:         req.Preset,
			VoiceFilename:  req.VoiceFilename,
		},
		SourceLanguage:    req.SourceLanguage,
		TargetLanguage:    req.TargetLanguage,
		Accent:            req.Accent,
		DisplayOutputText: req.DisplayOutputText,
	}
	if len(req.Voice) > 0 {
		sub.Source.Voice = bytes.NewReader(req.Voice)
	}

	result, err := h.svc.Submit(r.Context(), sub)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	audioURL := "/v1/audio/" + url.PathEscape(result.Artifact.Name)
	WriteJSON(w, http.StatusOK, ConvertResponse{
		FileName:    result.DownloadName,
		AudioURL:    audioURL,
		DownloadURL: audioURL + "?download=1",
		Size:        result.Artifact.Size,
		CreatedAt:   result.Artifact.CreatedAt,
		Source:      string(result.SourceKind),
		SourceText:  result.SourceText,
		OutputText:  result.TranslatedText,
		ShareURL:    result.ShareURL,
	})
}

// HandleAudio serves a stored artifact for playback, or as a download when
// ?download is truthy.
func (h *Handler) HandleAudio(w http.ResponseWriter, r *http.Request) {
	name, err := audioName(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid audio name")
		return
	}

	artifact, err := h.svc.Store().Get(name)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			WriteError(w, http.StatusNotFound, "Audio not found")
		case errors.Is(err, store.ErrInvalidName):
			WriteError(w, http.StatusBadRequest, "Invalid audio name")
		default:
			h.logger.Error().Err(err).Str("name", name).Msg("failed to read audio")
			WriteError(w, http.StatusInternalServerError, "Error reading file")
		}
		return
	}

	download, _ := strconv.ParseBool(r.URL.Query().Get("download"))
	WriteAudio(w, artifact, download)
}

// audioName returns the artifact name from the path. chi matches on RawPath
// when the client escaped reserved characters such as "," or ";", and then
// leaves the parameter escaped.
func audioName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			return "", err
		}
		name = unescaped
	}
	return strings.TrimSuffix(name, store.Extension), nil
}

// writeFailure maps the error taxonomy to status codes and the messages
// the form shows.
func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	status, message := failure(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Int("status", status).Msg("request failed")
	}
	WriteError(w, status, message)
}

func failure(err error) (int, string) {
	switch {
	case errors.Is(err, processor.ErrEmptyInput):
		return http.StatusBadRequest, "Please enter text to convert."
	case errors.Is(err, verse.ErrNotFound):
		return http.StatusNotFound, "Verse not found. Please enter a valid reference."
	case errors.Is(err, verse.ErrUnavailable):
		return http.StatusBadGateway, "The verse service is unavailable. Please try again later."
	case errors.Is(err, recognition.ErrNotUnderstood):
		return http.StatusUnprocessableEntity, "Sorry, I could not understand the audio."
	case errors.Is(err, recognition.ErrUnavailable):
		return http.StatusBadGateway, "Sorry, there was an error with the speech recognition service."
	case errors.Is(err, pipeline.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "The request timed out. Please try again."
	case errors.Is(err, pipeline.ErrTranslation):
		return http.StatusBadGateway, "Translation failed. Please try again."
	case errors.Is(err, pipeline.ErrSynthesis):
		return http.StatusBadGateway, "Speech synthesis failed. Please try again."
	case errors.Is(err, pipeline.ErrPersistence):
		detail := strings.TrimPrefix(err.Error(), pipeline.ErrPersistence.Error()+": ")
		return http.StatusInternalServerError, "Error saving file: " + detail
	}
	return http.StatusInternalServerError, "Internal server error"
}
