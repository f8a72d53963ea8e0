package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"codeberg.org/snonux/gospeltts/internal/cli"
	"codeberg.org/snonux/gospeltts/internal/processor"
	"codeberg.org/snonux/gospeltts/internal/source"
)

func runConvert(ctx context.Context, cfg *cli.Config, flags *cli.Flags, args []string, out io.Writer) error {
	logger := cli.NewLogger(cfg.Logging, "text", os.Stderr)

	a, err := newApp(ctx, cfg, afero.NewOsFs(), out, logger)
	if err != nil {
		return err
	}

	if _, err := a.processor.StartSession(); err != nil {
		logger.Warn().Err(err).Msg("Retention sweep failed")
	}

	sub := processor.Submission{
		Source: source.Input{
			VerseReference: flags.Verse,
			UseCustomText:  !flags.NoCustomText,
			Preset:         flags.Preset,
			Language:       flags.SourceLanguage,
		},
		SourceLanguage:    flags.SourceLanguage,
		TargetLanguage:    flags.TargetLanguage,
		Accent:            flags.Accent,
		DisplayOutputText: flags.DisplayOutputText,
	}

	if flags.BatchFile != "" {
		report, err := a.processor.ProcessBatch(ctx, flags.BatchFile, sub)
		if err != nil {
			return err
		}
		if report.Failed > 0 {
			return fmt.Errorf("%d of %d entries failed", report.Failed, report.Total)
		}
		return nil
	}

	if len(args) > 0 {
		sub.Source.CustomText = args[0]
	}

	if flags.VoiceFile != "" {
		f, err := os.Open(flags.VoiceFile)
		if err != nil {
			return fmt.Errorf("failed to open recording: %w", err)
		}
		defer f.Close()
		sub.Source.Voice = f
		sub.Source.VoiceFilename = filepath.Base(flags.VoiceFile)
	}

	result, err := a.processor.Submit(ctx, sub)
	if err != nil {
		return err
	}

	printResult(out, result)
	return nil
}

func printResult(out io.Writer, result *processor.Result) {
	fmt.Fprintf(out, "Source (%s): %s\n", result.SourceKind, result.SourceText)
	if result.TranslatedText != "" {
		fmt.Fprintf(out, "Output text: %s\n", result.TranslatedText)
	}
	fmt.Fprintf(out, "Saved: %s (%d bytes)\n", result.Artifact.Path, result.Artifact.Size)
	fmt.Fprintf(out, "Share on WhatsApp: %s\n", result.ShareURL)
}
