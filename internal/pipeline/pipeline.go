package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"codeberg.org/snonux/gospeltts/internal/audio"
	"codeberg.org/snonux/gospeltts/internal/store"
	"codeberg.org/snonux/gospeltts/internal/translation"
)

var (
	// ErrInvalidRequest indicates a TextRequest failed validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTranslation indicates the translation call failed.
	ErrTranslation = errors.New("translation failed")
	// ErrSynthesis indicates the speech synthesis call failed.
	ErrSynthesis = errors.New("speech synthesis failed")
	// ErrPersistence indicates the audio could not be saved.
	ErrPersistence = errors.New("error saving file")
)

// DefaultTimeout bounds each external call.
const DefaultTimeout = 30 * time.Second

// Pipeline orchestrates translation, synthesis and persistence.
type Pipeline struct {
	translator  translation.Translator
	synthesizer audio.Provider
	store       *store.Store
	validate    *validator.Validate
	timeout     time.Duration
	logger      zerolog.Logger
}

// New creates a pipeline. timeout applies to each external call; zero uses
// DefaultTimeout.
func New(translator translation.Translator, synthesizer audio.Provider, st *store.Store, timeout time.Duration, logger zerolog.Logger) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{
		translator:  translator,
		synthesizer: synthesizer,
		store:       st,
		validate:    newValidator(),
		timeout:     timeout,
		logger:      logger.With().Str("component", "pipeline").Logger(),
	}
}

// Store returns the artifact store the pipeline writes to.
func (p *Pipeline) Store() *store.Store {
	return p.store
}

// Convert runs one request to completion. On success it returns the stored
// artifact and the translated text. On any failure both are withheld.
func (p *Pipeline) Convert(ctx context.Context, req TextRequest) (*store.Artifact, string, error) {
	if err := p.validate.Struct(req); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	log := p.logger.With().
		Str("from", req.SourceLanguage).
		Str("to", req.TargetLanguage).
		Str("accent", req.Accent).
		Logger()

	translated, err := p.translate(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("translator", p.translator.Name()).Msg("translation failed")
		return nil, "", fmt.Errorf("%w: %w", ErrTranslation, err)
	}
	log.Debug().Str("translated", translated).Msg("translated text")

	name := SanitizeFileName(req.RawText)

	data, err := p.synthesize(ctx, translated, req)
	if err != nil {
		log.Error().Err(err).Str("provider", p.synthesizer.Name()).Msg("speech synthesis failed")
		return nil, "", fmt.Errorf("%w: %w", ErrSynthesis, err)
	}

	artifact, err := p.store.Put(name, data)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("failed to save audio")
		return nil, "", fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	log.Info().Str("file", artifact.Path).Int64("bytes", artifact.Size).Msg("audio saved")
	return artifact, translated, nil
}

func (p *Pipeline) translate(ctx context.Context, req TextRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.translator.Translate(ctx, req.RawText, req.SourceLanguage, req.TargetLanguage)
}

func (p *Pipeline) synthesize(ctx context.Context, text string, req TextRequest) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.synthesizer.Synthesize(ctx, text, req.TargetLanguage, req.Accent)
}
