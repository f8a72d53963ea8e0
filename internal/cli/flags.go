package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// Global flags
	CfgFile             string
	OutputDir           string
	MaxAgeDays          int
	Timeout             time.Duration
	TranslationProvider string
	AudioProvider       string
	VerseEndpoint       string
	LogLevel            string
	LogFormat           string

	// OpenAI flags
	OpenAIModel string
	OpenAIVoice string
	OpenAISpeed float64

	// serve flags
	Listen       string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// convert flags
	SourceLanguage    string
	TargetLanguage    string
	Accent            string
	Verse             string
	Preset            string
	VoiceFile         string
	BatchFile         string
	DisplayOutputText bool
	NoCustomText      bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		OutputDir:           "temp",
		MaxAgeDays:          7,
		Timeout:             30 * time.Second,
		TranslationProvider: "google",
		AudioProvider:       "google",
		VerseEndpoint:       "https://bible-api.com",
		LogLevel:            "info",
		OpenAIModel:         "gpt-4o-mini-tts",
		OpenAIVoice:         "alloy",
		OpenAISpeed:         1.0,
		Listen:              "0.0.0.0:8501",
		ReadTimeout:         30 * time.Second,
		WriteTimeout:        120 * time.Second,
		SourceLanguage:      "English",
		TargetLanguage:      "English",
		Accent:              "Default",
	}
}
