package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"codeberg.org/snonux/gospeltts/internal/batch"
	"codeberg.org/snonux/gospeltts/internal/language"
	"codeberg.org/snonux/gospeltts/internal/pipeline"
	"codeberg.org/snonux/gospeltts/internal/source"
	"codeberg.org/snonux/gospeltts/internal/store"
	"codeberg.org/snonux/gospeltts/internal/sweep"
)

// ErrEmptyInput is returned when a submission resolves to no text.
var ErrEmptyInput = errors.New("please enter text to convert")

// shareBase is the WhatsApp share endpoint.
const shareBase = "https://api.whatsapp.com/send?text="

// Submission is one press of the Convert action.
type Submission struct {
	Source source.Input
	// Languages and accent accept display names or codes.
	SourceLanguage    string
	TargetLanguage    string
	Accent            string
	DisplayOutputText bool
}

// Result is what the form shows after a successful conversion.
type Result struct {
	Artifact   *store.Artifact
	SourceText string
	SourceKind source.Kind
	// TranslatedText is only set when output text display was requested.
	TranslatedText string
	ShareURL       string
	DownloadName   string
}

// Options configure a Processor.
type Options struct {
	MaxAgeDays int
	// Fs is used to read batch files. Defaults to the OS filesystem.
	Fs afero.Fs
	// Out receives batch progress. Defaults to io.Discard.
	Out io.Writer
}

// Processor handles submissions
type Processor struct {
	mu         sync.Mutex
	resolver   *source.Resolver
	pipeline   *pipeline.Pipeline
	sweeper    *sweep.Sweeper
	maxAgeDays int
	fs         afero.Fs
	out        io.Writer
	logger     zerolog.Logger
}

// NewProcessor creates a new submission processor
func NewProcessor(resolver *source.Resolver, pipe *pipeline.Pipeline, sweeper *sweep.Sweeper, opts Options, logger zerolog.Logger) *Processor {
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = sweep.DefaultMaxAgeDays
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Processor{
		resolver:   resolver,
		pipeline:   pipe,
		sweeper:    sweeper,
		maxAgeDays: opts.MaxAgeDays,
		fs:         opts.Fs,
		out:        opts.Out,
		logger:     logger.With().Str("component", "processor").Logger(),
	}
}

// Store returns the artifact store conversions are written to.
func (p *Processor) Store() *store.Store {
	return p.pipeline.Store()
}

// StartSession runs the retention sweep that accompanies every page load.
func (p *Processor) StartSession() (sweep.Report, error) {
	report, err := p.sweeper.Sweep(p.maxAgeDays)
	if err != nil {
		p.logger.Warn().Err(err).Int("failed", len(report.Failed)).Msg("sweep incomplete")
	}
	return report, err
}

// Submit resolves and converts one submission. It blocks until the
// conversion finishes; concurrent calls wait their turn.
func (p *Processor) Submit(ctx context.Context, s Submission) (*Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	from := language.Code(s.SourceLanguage)
	to := language.Code(s.TargetLanguage)
	accent := language.AccentTLD(s.Accent)

	in := s.Source
	if in.Language == "" {
		in.Language = from
	}

	resolved, err := p.resolver.ResolveKind(ctx, in)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resolved.Text) == "" {
		return nil, ErrEmptyInput
	}

	artifact, translated, err := p.pipeline.Convert(ctx, pipeline.TextRequest{
		RawText:        resolved.Text,
		SourceLanguage: from,
		TargetLanguage: to,
		Accent:         accent,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Artifact:     artifact,
		SourceText:   resolved.Text,
		SourceKind:   resolved.Kind,
		ShareURL:     ShareURL(translated),
		DownloadName: artifact.FileName(),
	}
	if s.DisplayOutputText {
		result.TranslatedText = translated
	}

	p.logger.Info().
		Str("source", string(resolved.Kind)).
		Str("to", to).
		Str("file", artifact.FileName()).
		Msg("conversion complete")

	return result, nil
}

// ShareURL builds the WhatsApp share link for text.
func ShareURL(text string) string {
	return shareBase + url.QueryEscape(text)
}

// BatchReport summarizes a batch run.
type BatchReport struct {
	Total     int
	Processed int
	Failed    int
	Results   []*Result
}

// ProcessBatch converts every entry of a batch file using base for the
// languages, accent and display settings. A failed entry is reported and
// the batch continues.
func (p *Processor) ProcessBatch(ctx context.Context, path string, base Submission) (*BatchReport, error) {
	entries, err := batch.ReadBatchFile(p.fs, path)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("batch file %s has no entries", path)
	}

	report := &BatchReport{Total: len(entries)}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		sub := base
		sub.Source = source.Input{VerseReference: entry.Reference}
		if entry.Reference == "" {
			sub.Source.UseCustomText = true
			sub.Source.CustomText = entry.Text
		}
		if entry.TargetLanguage != "" {
			sub.TargetLanguage = entry.TargetLanguage
		}

		label := entry.Text
		if entry.Reference != "" {
			label = "@" + entry.Reference
		}
		fmt.Fprintf(p.out, "\nProcessing %d/%d: %s\n", i+1, len(entries), label)

		result, err := p.Submit(ctx, sub)
		if err != nil {
			fmt.Fprintf(p.out, "  Error: %v\n", err)
			p.logger.Error().Err(err).Str("entry", label).Msg("batch entry failed")
			report.Failed++
			continue
		}

		fmt.Fprintf(p.out, "  Saved %s\n", result.Artifact.Path)
		if result.TranslatedText != "" {
			fmt.Fprintf(p.out, "  Output text: %s\n", result.TranslatedText)
		}
		report.Processed++
		report.Results = append(report.Results, result)
	}

	fmt.Fprintf(p.out, "\n=== Batch Processing Summary ===\n")
	fmt.Fprintf(p.out, "Total entries: %d\n", report.Total)
	fmt.Fprintf(p.out, "Processed: %d\n", report.Processed)
	if report.Failed > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", report.Failed)
	}
	fmt.Fprintf(p.out, "================================\n")

	return report, nil
}
