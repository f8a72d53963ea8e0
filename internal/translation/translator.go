package translation

import (
	"context"
	"fmt"
	"time"
)

// Translator translates text from one language code to another.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
	Name() string
}

// Config selects and configures a translation provider.
type Config struct {
	Provider string // "google", "openai" or "gemini"
	Timeout  time.Duration

	GoogleBaseURL string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	GeminiKey   string
	GeminiModel string
}

// DefaultConfig returns the keyless Google configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:    "google",
		Timeout:     30 * time.Second,
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.0-flash",
	}
}

// NewTranslator creates the translator named by config.Provider.
func NewTranslator(ctx context.Context, config *Config) (Translator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case "", "google":
		return NewGoogleTranslator(config.GoogleBaseURL, config.Timeout), nil
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAITranslator(config.OpenAIKey, config.OpenAIBaseURL, config.OpenAIModel), nil
	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiTranslator(ctx, config.GeminiKey, config.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
}

func prompt(text, from, to string) string {
	return fmt.Sprintf("Translate the following text from the language with code '%s' to the language with code '%s'. "+
		"Respond with only the translation, nothing else.\n\n%s", from, to, text)
}
