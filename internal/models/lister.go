package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Catalog groups model IDs by what gospeltts can use them for.
type Catalog struct {
	Speech        []string
	Transcription []string
	Chat          []string
}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. baseURL may be empty.
func NewLister(apiKey, baseURL string) *Lister {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Fetch lists the models available to the API key.
func (l *Lister) Fetch(ctx context.Context) (*Catalog, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .gospeltts.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, m := range models.Models {
		ids = append(ids, m.ID)
	}
	return Categorize(ids), nil
}

// Categorize sorts model IDs into speech, transcription and chat models.
// Other models are dropped.
func Categorize(ids []string) *Catalog {
	c := &Catalog{}
	for _, id := range ids {
		switch {
		case strings.Contains(id, "whisper") || strings.Contains(id, "transcribe"):
			c.Transcription = append(c.Transcription, id)
		case strings.Contains(id, "tts"):
			c.Speech = append(c.Speech, id)
		case strings.Contains(id, "gpt") || strings.Contains(id, "chat"):
			c.Chat = append(c.Chat, id)
		}
	}
	sort.Strings(c.Speech)
	sort.Strings(c.Transcription)
	sort.Strings(c.Chat)
	return c
}

// ListAvailableModels prints the catalog to out.
func (l *Lister) ListAvailableModels(ctx context.Context, out io.Writer) error {
	c, err := l.Fetch(ctx)
	if err != nil {
		return err
	}
	c.Print(out)
	return nil
}

// Print writes the catalog in sections.
func (c *Catalog) Print(out io.Writer) {
	fmt.Fprintln(out, "Available OpenAI Models:")
	printSection(out, "Text-to-Speech Models (audio.openai_model):", c.Speech)
	printSection(out, "Transcription Models (recognition.model):", c.Transcription)

	// Chat lists are long; the gpt-4 family is what translation uses.
	chat := c.Chat
	hidden := 0
	if len(chat) > 10 {
		var relevant []string
		for _, m := range chat {
			if strings.Contains(m, "gpt-4") {
				relevant = append(relevant, m)
			}
		}
		hidden = len(chat) - len(relevant)
		chat = relevant
	}
	printSection(out, "Chat Models (translation.openai_model):", chat)
	if hidden > 0 {
		fmt.Fprintf(out, "  ... and %d more models\n", hidden)
	}
}

func printSection(out io.Writer, title string, ids []string) {
	fmt.Fprintf(out, "\n%s\n", title)
	if len(ids) == 0 {
		fmt.Fprintln(out, "  none found")
		return
	}
	for _, id := range ids {
		fmt.Fprintf(out, "  %s\n", id)
	}
}
