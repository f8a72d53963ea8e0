package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"codeberg.org/snonux/gospeltts/internal/audio"
	"codeberg.org/snonux/gospeltts/internal/recognition"
	"codeberg.org/snonux/gospeltts/internal/translation"
	"codeberg.org/snonux/gospeltts/internal/verse"
)

// Config is the resolved configuration of one run.
type Config struct {
	OutputDir   string
	MaxAgeDays  int
	Timeout     time.Duration
	Translation translation.Config
	Audio       audio.Config
	Recognition recognition.Config
	Verse       verse.Config
	Server      ServerConfig
	Logging     LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Listen       string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoggingConfig holds logger settings. An empty Format lets the command
// pick its own default.
type LoggingConfig struct {
	Level  string
	Format string
}

func setDefaults() {
	viper.SetDefault("output.directory", "temp")
	viper.SetDefault("retention.max_age_days", 7)
	viper.SetDefault("timeouts.external", 30*time.Second)
	viper.SetDefault("translation.provider", "google")
	viper.SetDefault("translation.openai_model", "gpt-4o-mini")
	viper.SetDefault("translation.gemini_model", "gemini-2.0-flash")
	viper.SetDefault("audio.provider", "google")
	viper.SetDefault("audio.openai_model", "gpt-4o-mini-tts")
	viper.SetDefault("audio.openai_voice", "alloy")
	viper.SetDefault("audio.openai_speed", 1.0)
	viper.SetDefault("recognition.model", "whisper-1")
	viper.SetDefault("verse.endpoint", verse.DefaultEndpoint)
	viper.SetDefault("server.listen", "0.0.0.0:8501")
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 120*time.Second)
	viper.SetDefault("logging.level", "info")
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if err := LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}

		// Search config in home directory with name ".gospeltts" (without extension)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gospeltts")
	}

	// Environment variables
	viper.SetEnvPrefix("GOSPELTTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// LoadDotEnv loads KEY=value files into the environment. Missing files are
// skipped and variables already set are kept.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig reads the resolved configuration from viper.
func LoadConfig() *Config {
	timeout := viper.GetDuration("timeouts.external")
	openAIKey := GetOpenAIKey()

	return &Config{
		OutputDir:  viper.GetString("output.directory"),
		MaxAgeDays: viper.GetInt("retention.max_age_days"),
		Timeout:    timeout,
		Translation: translation.Config{
			Provider:    viper.GetString("translation.provider"),
			Timeout:     timeout,
			OpenAIKey:   openAIKey,
			OpenAIModel: viper.GetString("translation.openai_model"),
			GeminiKey:   GetGeminiKey(),
			GeminiModel: viper.GetString("translation.gemini_model"),
		},
		Audio: audio.Config{
			Provider:    viper.GetString("audio.provider"),
			Timeout:     timeout,
			OpenAIKey:   openAIKey,
			OpenAIModel: viper.GetString("audio.openai_model"),
			OpenAIVoice: viper.GetString("audio.openai_voice"),
			OpenAISpeed: viper.GetFloat64("audio.openai_speed"),
		},
		Recognition: recognition.Config{
			APIKey: openAIKey,
			Model:  viper.GetString("recognition.model"),
		},
		Verse: verse.Config{
			Endpoint: viper.GetString("verse.endpoint"),
			Timeout:  timeout,
		},
		Server: ServerConfig{
			Listen:       viper.GetString("server.listen"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		},
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini.api_key")
}
