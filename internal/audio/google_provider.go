package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"codeberg.org/snonux/gospeltts/internal/language"
)

// maxChunkLength is the longest text the speech endpoint accepts per request.
const maxChunkLength = 100

// GoogleProvider implements Provider with the Google translate speech endpoint.
type GoogleProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewGoogleProvider creates a Google speech provider.
func NewGoogleProvider(config *Config) *GoogleProvider {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &GoogleProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(config.GoogleBaseURL, "/"),
	}
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable always succeeds; the endpoint needs no credentials.
func (p *GoogleProvider) IsAvailable() error {
	return nil
}

// Synthesize requests speech chunk by chunk and concatenates the MP3 frames.
func (p *GoogleProvider) Synthesize(ctx context.Context, text, lang, accent string) ([]byte, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	tld := language.DefaultAccent
	if language.SupportsAccent(lang) && accent != "" {
		tld = accent
	}

	chunks := chunkText(text, maxChunkLength)
	var out bytes.Buffer
	for i, chunk := range chunks {
		data, err := p.fetchChunk(ctx, chunk, lang, tld, i, len(chunks))
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		out.Write(data)
	}

	if out.Len() == 0 {
		return nil, fmt.Errorf("no audio data received from Google")
	}

	return out.Bytes(), nil
}

func (p *GoogleProvider) endpoint(tld string) string {
	if p.baseURL != "" {
		return p.baseURL
	}
	return "https://translate.google." + tld
}

func (p *GoogleProvider) fetchChunk(ctx context.Context, chunk, lang, tld string, idx, total int) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", chunk)
	q.Set("tl", language.GoogleCode(lang))
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))
	q.Set("client", "tw-ob")
	q.Set("ttsspeed", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint(tld)+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "https://translate.google."+tld+"/")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("speech service returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// chunkText splits text on whitespace into pieces of at most max runes.
// Words longer than max are split mid-word.
func chunkText(text string, max int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > max {
			flush()
			chunks = append(chunks, string(runes[:max]))
			runes = runes[max:]
		}
		if len(runes) == 0 {
			continue
		}

		need := len(runes)
		if currentLen > 0 {
			need++
		}
		if currentLen+need > max {
			flush()
			need = len(runes)
		}
		if currentLen > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(string(runes))
		currentLen += need
	}
	flush()

	return chunks
}
