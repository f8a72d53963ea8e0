package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/gospeltts/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gospeltts",
		Short: "Gospel text to speech",
		Long: `gospeltts turns Bible verses, typed text or a voice recording into
spoken audio in another language.

It looks verses up on bible-api.com, translates them and synthesizes MP3
audio with a choice of English accents.

Examples:
  gospeltts serve                                 # Serve the web form on :8501
  gospeltts convert --verse "John 3:16" --to es   # Convert one verse to Spanish
  gospeltts convert --batch verses.txt --to fr    # Convert every line of a file
  gospeltts sweep                                 # Delete audio older than 7 days`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()

	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.gospeltts.yaml)")
	pf.StringVarP(&flags.OutputDir, "output", "o", flags.OutputDir, "Working directory for generated audio")
	pf.IntVar(&flags.MaxAgeDays, "max-age-days", flags.MaxAgeDays, "Delete audio older than this many days")
	pf.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout for each external service call")
	pf.StringVar(&flags.TranslationProvider, "translation-provider", flags.TranslationProvider, "Translation service: google, openai or gemini")
	pf.StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "Speech synthesis service: google or openai")
	pf.StringVar(&flags.VerseEndpoint, "verse-endpoint", flags.VerseEndpoint, "bible-api compatible verse lookup endpoint")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.LogFormat, "log-format", "", "Log format (json, text; default text, json for serve)")

	// OpenAI flags
	pf.StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	pf.StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, fable, onyx, nova, sage, shimmer")
	pf.Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	bindings := []struct {
		key  string
		flag string
	}{
		{"output.directory", "output"},
		{"retention.max_age_days", "max-age-days"},
		{"timeouts.external", "timeout"},
		{"translation.provider", "translation-provider"},
		{"audio.provider", "audio-provider"},
		{"verse.endpoint", "verse-endpoint"},
		{"logging.level", "log-level"},
		{"logging.format", "log-format"},
		{"audio.openai_model", "openai-model"},
		{"audio.openai_voice", "openai-voice"},
		{"audio.openai_speed", "openai-speed"},
	}

	for _, b := range bindings {
		flag := cmd.PersistentFlags().Lookup(b.flag)
		if flag == nil {
			continue
		}
		_ = viper.BindPFlag(b.key, flag)
	}
}

// CreateServeCommand creates the command serving the web form.
func CreateServeCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion form over HTTP",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVar(&flags.Listen, "listen", flags.Listen, "Server listen address")
	cmd.Flags().DurationVar(&flags.ReadTimeout, "read-timeout", flags.ReadTimeout, "HTTP read timeout")
	cmd.Flags().DurationVar(&flags.WriteTimeout, "write-timeout", flags.WriteTimeout, "HTTP write timeout")

	_ = viper.BindPFlag("server.listen", cmd.Flags().Lookup("listen"))
	_ = viper.BindPFlag("server.read_timeout", cmd.Flags().Lookup("read-timeout"))
	_ = viper.BindPFlag("server.write_timeout", cmd.Flags().Lookup("write-timeout"))

	return cmd
}

// CreateConvertCommand creates the command converting one text or a batch.
func CreateConvertCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [text]",
		Short: "Convert a verse, text, recording or batch file to audio",
		Long: `Convert resolves the text the same way the form does: a verse search
wins, then a voice recording, then the typed text, and with
--no-custom-text the selected preset verse.

Batch files hold one entry per line. "@John 3:16" looks a verse up,
anything else is converted as typed, and "= <language>" at the end of a
line overrides the output language.`,
		Args: cobra.MaximumNArgs(1),
	}

	f := cmd.Flags()
	f.StringVar(&flags.SourceLanguage, "from", flags.SourceLanguage, "Input language name or code")
	f.StringVar(&flags.TargetLanguage, "to", flags.TargetLanguage, "Output language name or code")
	f.StringVar(&flags.Accent, "accent", flags.Accent, "English accent name or domain (e.g. \"United Kingdom\" or co.uk)")
	f.StringVar(&flags.Verse, "verse", "", "Verse reference to look up (e.g. \"John 3:16\")")
	f.StringVar(&flags.Preset, "preset", "", "Preset verse to use with --no-custom-text")
	f.StringVar(&flags.VoiceFile, "voice", "", "Recording to transcribe")
	f.StringVar(&flags.BatchFile, "batch", "", "Process entries from file (one per line)")
	f.BoolVar(&flags.DisplayOutputText, "display-output-text", false, "Print the translated text")
	f.BoolVar(&flags.NoCustomText, "no-custom-text", false, "Use the preset verse instead of custom text")

	return cmd
}

// CreateSweepCommand creates the command running one retention sweep.
func CreateSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete generated audio older than --max-age-days",
		Args:  cobra.NoArgs,
	}
}

// CreateVerseCommand creates the command looking up one verse.
func CreateVerseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verse <reference>",
		Short: "Look up a Bible verse",
		Args:  cobra.MinimumNArgs(1),
	}
}

// CreateModelsCommand creates the command listing OpenAI models.
func CreateModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available OpenAI models for the current API key",
		Args:  cobra.NoArgs,
	}
}

// CreateArchiveCommand creates the command archiving the working directory.
func CreateArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Move the working directory to an archive with a timestamp",
		Args:  cobra.NoArgs,
	}
}
