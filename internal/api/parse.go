package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vmihailenco/msgpack/v5"
)

// maxUploadBytes bounds request bodies including voice recordings.
const maxUploadBytes = 32 << 20

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ConvertRequest is the submitted form.
type ConvertRequest struct {
	VerseReference string `json:"verse_reference" msgpack:"verse_reference" validate:"max=100"`
	// UseCustomText defaults to true when omitted.
	UseCustomText     *bool  `json:"use_custom_text" msgpack:"use_custom_text"`
	CustomText        string `json:"custom_text" msgpack:"custom_text" validate:"max=5000"`
	Preset            string `json:"preset" msgpack:"preset" validate:"max=100"`
	SourceLanguage    string `json:"source_language" msgpack:"source_language" validate:"max=32"`
	TargetLanguage    string `json:"target_language" msgpack:"target_language" validate:"max=32"`
	Accent            string `json:"accent" msgpack:"accent" validate:"max=32"`
	DisplayOutputText bool   `json:"display_output_text" msgpack:"display_output_text"`
	// Voice is a recording to transcribe; base64 in JSON.
	Voice         []byte `json:"voice,omitempty" msgpack:"voice,omitempty"`
	VoiceFilename string `json:"voice_filename,omitempty" msgpack:"voice_filename,omitempty" validate:"max=255"`
}

// CustomTextEnabled reports the custom text toggle, on unless turned off.
func (c *ConvertRequest) CustomTextEnabled() bool {
	return c.UseCustomText == nil || *c.UseCustomText
}

var validate = validator.New()

// ParseConvertRequest decodes and validates a ConvertRequest from the HTTP
// request based on its Content-Type.
func ParseConvertRequest(r *http.Request) (*ConvertRequest, error) {
	var req ConvertRequest

	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}

	switch strings.ToLower(mediaType) {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, &HTTPError{Status: http.StatusBadRequest, Message: "Invalid request body"}
		}
	case "application/msgpack", "application/x-msgpack":
		if err := msgpack.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, &HTTPError{Status: http.StatusBadRequest, Message: "Invalid request body"}
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, &HTTPError{Status: http.StatusBadRequest, Message: "Invalid multipart form"}
		}
		if err := readForm(r, &req); err != nil {
			return nil, err
		}
		if err := readVoice(r, &req); err != nil {
			return nil, err
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, &HTTPError{Status: http.StatusBadRequest, Message: "Invalid form"}
		}
		if err := readForm(r, &req); err != nil {
			return nil, err
		}
	default:
		return nil, &HTTPError{Status: http.StatusUnsupportedMediaType, Message: "Unsupported content type"}
	}

	if err := validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &HTTPError{Status: http.StatusBadRequest, Message: verrs[0].Field() + " is too long"}
		}
		return nil, &HTTPError{Status: http.StatusBadRequest, Message: "Invalid request"}
	}

	return &req, nil
}

func readForm(r *http.Request, req *ConvertRequest) error {
	req.VerseReference = r.FormValue("verse_reference")
	req.CustomText = r.FormValue("custom_text")
	req.Preset = r.FormValue("preset")
	req.SourceLanguage = r.FormValue("source_language")
	req.TargetLanguage = r.FormValue("target_language")
	req.Accent = r.FormValue("accent")

	if v, ok := formValue(r, "use_custom_text"); ok {
		b, err := formBool(v)
		if err != nil {
			return &HTTPError{Status: http.StatusBadRequest, Message: "use_custom_text must be a boolean"}
		}
		req.UseCustomText = &b
	}
	if v, ok := formValue(r, "display_output_text"); ok {
		b, err := formBool(v)
		if err != nil {
			return &HTTPError{Status: http.StatusBadRequest, Message: "display_output_text must be a boolean"}
		}
		req.DisplayOutputText = b
	}
	return nil
}

func readVoice(r *http.Request, req *ConvertRequest) error {
	file, header, err := r.FormFile("voice")
	if errors.Is(err, http.ErrMissingFile) {
		return nil
	}
	if err != nil {
		return &HTTPError{Status: http.StatusBadRequest, Message: "Invalid file upload"}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return &HTTPError{Status: http.StatusBadRequest, Message: "Invalid file upload"}
	}
	if len(data) == 0 {
		return nil
	}

	req.Voice = data
	req.VoiceFilename = header.Filename
	return nil
}

func formValue(r *http.Request, key string) (string, bool) {
	if r.Form == nil {
		return "", false
	}
	vs, ok := r.Form[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// formBool accepts HTML checkbox values as well as strconv booleans.
func formBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return strconv.ParseBool(v)
}

// IsHTTPError checks whether an error is an *HTTPError.
func IsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
