package recognition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrNotUnderstood indicates the audio contained no recognizable speech.
var ErrNotUnderstood = errors.New("could not understand the audio")

// ErrUnavailable indicates the recognition service could not be used.
var ErrUnavailable = errors.New("speech recognition service unavailable")

// Recognizer turns a voice recording into text.
type Recognizer interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error)
}

// Config holds transcription settings.
type Config struct {
	APIKey  string
	BaseURL string // overrides the OpenAI endpoint, used in tests
	Model   string
}

// WhisperRecognizer implements Recognizer with OpenAI Whisper.
type WhisperRecognizer struct {
	apiKey string
	model  string
	client *openai.Client
}

var _ Recognizer = (*WhisperRecognizer)(nil)

// NewWhisperRecognizer creates a recognizer. It holds no per-request state.
func NewWhisperRecognizer(cfg Config) *WhisperRecognizer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}

	return &WhisperRecognizer{
		apiKey: cfg.APIKey,
		model:  model,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

// Transcribe uploads the recording and returns the recognized text.
func (r *WhisperRecognizer) Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error) {
	if r.apiKey == "" {
		return "", fmt.Errorf("%w: OpenAI API key not found", ErrUnavailable)
	}
	if filename == "" {
		filename = "recording.webm"
	}

	req := openai.AudioRequest{
		Model:    r.model,
		FilePath: filename,
		Reader:   audio,
		Language: whisperLanguage(language),
	}

	resp, err := r.client.CreateTranscription(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusBadRequest {
			return "", fmt.Errorf("%w: %v", ErrNotUnderstood, err)
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrNotUnderstood
	}

	return text, nil
}

// whisperLanguage reduces a table code like "zh-cn" to ISO-639-1.
func whisperLanguage(code string) string {
	if i := strings.IndexByte(code, '-'); i > 0 {
		return code[:i]
	}
	return code
}
