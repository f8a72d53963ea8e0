package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"codeberg.org/snonux/gospeltts/internal/audio"
	"codeberg.org/snonux/gospeltts/internal/cli"
	"codeberg.org/snonux/gospeltts/internal/pipeline"
	"codeberg.org/snonux/gospeltts/internal/processor"
	"codeberg.org/snonux/gospeltts/internal/recognition"
	"codeberg.org/snonux/gospeltts/internal/source"
	"codeberg.org/snonux/gospeltts/internal/store"
	"codeberg.org/snonux/gospeltts/internal/sweep"
	"codeberg.org/snonux/gospeltts/internal/translation"
	"codeberg.org/snonux/gospeltts/internal/verse"
)

// app is the wired component graph shared by the subcommands.
type app struct {
	store     *store.Store
	verses    *verse.Client
	processor *processor.Processor
}

func newApp(ctx context.Context, cfg *cli.Config, fs afero.Fs, out io.Writer, logger zerolog.Logger) (*app, error) {
	translator, err := translation.NewTranslator(ctx, &cfg.Translation)
	if err != nil {
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}

	synthesizer, err := audio.NewProvider(&cfg.Audio)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio provider: %w", err)
	}
	if err := synthesizer.IsAvailable(); err != nil {
		return nil, fmt.Errorf("audio provider %s unavailable: %w", synthesizer.Name(), err)
	}

	st := store.New(fs, cfg.OutputDir)
	verses := verse.NewClient(cfg.Verse, logger)

	// Without a key the recognizer reports ErrUnavailable per recording
	// instead of failing startup; text and verses still work.
	recognizer := recognition.NewWhisperRecognizer(cfg.Recognition)

	proc := processor.NewProcessor(
		source.NewResolver(verses, recognizer, cfg.Timeout, logger),
		pipeline.New(translator, synthesizer, st, cfg.Timeout, logger),
		sweep.New(st, logger),
		processor.Options{MaxAgeDays: cfg.MaxAgeDays, Fs: fs, Out: out},
		logger,
	)

	logger.Debug().
		Str("translator", translator.Name()).
		Str("audio", synthesizer.Name()).
		Str("dir", cfg.OutputDir).
		Msg("components ready")

	return &app{store: st, verses: verses, processor: proc}, nil
}
