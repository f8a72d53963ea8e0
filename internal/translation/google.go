package translation

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"codeberg.org/snonux/gospeltts/internal/language"
)

const defaultGoogleBaseURL = "https://translate.googleapis.com"

// GoogleTranslator calls the public Google translate endpoint.
type GoogleTranslator struct {
	httpClient *http.Client
	baseURL    string
}

// NewGoogleTranslator creates a translator. An empty baseURL selects the
// public endpoint.
func NewGoogleTranslator(baseURL string, timeout time.Duration) *GoogleTranslator {
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &GoogleTranslator{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the provider name
func (g *GoogleTranslator) Name() string {
	return "google"
}

// Translate translates text. The response is a nested JSON array whose first
// element lists [translated, original, ...] segments.
func (g *GoogleTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", language.GoogleCode(from))
	q.Set("tl", language.GoogleCode(to))
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/translate_a/single?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read translate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate service returned status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("invalid translate response")
	}

	var sb strings.Builder
	for _, seg := range gjson.GetBytes(body, "0.#.0").Array() {
		sb.WriteString(seg.String())
	}

	translated := strings.TrimSpace(sb.String())
	if translated == "" {
		return "", fmt.Errorf("no translation returned")
	}

	return translated, nil
}
