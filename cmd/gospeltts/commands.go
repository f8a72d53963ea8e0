package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"

	"codeberg.org/snonux/gospeltts/internal/archive"
	"codeberg.org/snonux/gospeltts/internal/cli"
	"codeberg.org/snonux/gospeltts/internal/models"
	"codeberg.org/snonux/gospeltts/internal/store"
	"codeberg.org/snonux/gospeltts/internal/sweep"
	"codeberg.org/snonux/gospeltts/internal/verse"
)

func runSweep(cfg *cli.Config, out io.Writer) error {
	logger := cli.NewLogger(cfg.Logging, "text", os.Stderr)

	report, err := sweep.New(store.NewOS(cfg.OutputDir), logger).Sweep(cfg.MaxAgeDays)
	if err != nil {
		return err
	}

	for _, name := range report.Deleted {
		fmt.Fprintf(out, "Deleted %s\n", name)
	}
	fmt.Fprintf(out, "Scanned %d, deleted %d, failed %d\n", report.Scanned, len(report.Deleted), len(report.Failed))
	return nil
}

func runVerse(ctx context.Context, cfg *cli.Config, args []string, out io.Writer) error {
	logger := cli.NewLogger(cfg.Logging, "text", os.Stderr)

	v, err := verse.NewClient(cfg.Verse, logger).Lookup(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Fprintln(out, v.Formatted())
	return nil
}

func runModels(ctx context.Context, out io.Writer) error {
	apiKey := cli.GetOpenAIKey()
	if apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY or openai.api_key in the config file")
	}
	return models.NewLister(apiKey, "").ListAvailableModels(ctx, out)
}

func runArchive(cfg *cli.Config, out io.Writer) error {
	dest, err := archive.ArchiveDir(afero.NewOsFs(), cfg.OutputDir, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Archived %s to %s\n", cfg.OutputDir, dest)
	return nil
}
