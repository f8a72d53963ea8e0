package source

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/gospeltts/internal/recognition"
	"codeberg.org/snonux/gospeltts/internal/verse"
)

// Kind names the source a text was resolved from.
type Kind string

const (
	KindVerse  Kind = "verse"
	KindVoice  Kind = "voice"
	KindCustom Kind = "custom"
	KindPreset Kind = "preset"
)

// Input is everything the form offers as a text source.
type Input struct {
	// VerseReference is the free-text verse search. Blank after trimming
	// counts as no search.
	VerseReference string
	// UseCustomText selects voice or typed text over the preset.
	UseCustomText bool
	// Voice is an optional recording to transcribe.
	Voice         io.Reader
	VoiceFilename string
	CustomText    string
	// Preset is the selected preset reference; empty selects the default.
	Preset string
	// Language is the spoken language of the recording.
	Language string
}

// Resolution is the resolved text and where it came from.
type Resolution struct {
	Text string
	Kind Kind
}

// Resolver resolves Input to source text.
type Resolver struct {
	verses     verse.Provider
	recognizer recognition.Recognizer
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewResolver creates a resolver. recognizer may be nil, in which case
// recordings fail with recognition.ErrUnavailable.
func NewResolver(verses verse.Provider, recognizer recognition.Recognizer, timeout time.Duration, logger zerolog.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Resolver{
		verses:     verses,
		recognizer: recognizer,
		timeout:    timeout,
		logger:     logger.With().Str("component", "source").Logger(),
	}
}

// Resolve returns the source text for in. The text may be empty when the
// user typed nothing; rejecting empty input is up to the caller.
func (r *Resolver) Resolve(ctx context.Context, in Input) (string, error) {
	res, err := r.ResolveKind(ctx, in)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// ResolveKind is Resolve that also reports which source won.
func (r *Resolver) ResolveKind(ctx context.Context, in Input) (Resolution, error) {
	if ref := strings.TrimSpace(in.VerseReference); ref != "" {
		text, err := r.lookup(ctx, ref)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Text: text, Kind: KindVerse}, nil
	}

	if in.UseCustomText {
		if in.Voice != nil {
			text, err := r.transcribe(ctx, in)
			if err != nil {
				return Resolution{}, err
			}
			return Resolution{Text: text, Kind: KindVoice}, nil
		}
		return Resolution{Text: in.CustomText, Kind: KindCustom}, nil
	}

	p := verse.DefaultPreset()
	if in.Preset != "" {
		var err error
		if p, err = verse.Preset(in.Preset); err != nil {
			return Resolution{}, err
		}
	}
	return Resolution{Text: p.Text, Kind: KindPreset}, nil
}

func (r *Resolver) lookup(ctx context.Context, ref string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	v, err := r.verses.Lookup(ctx, ref)
	if err != nil {
		r.logger.Warn().Err(err).Str("reference", ref).Msg("verse lookup failed")
		return "", err
	}
	r.logger.Debug().Str("reference", v.Reference).Msg("verse found")
	return v.Formatted(), nil
}

func (r *Resolver) transcribe(ctx context.Context, in Input) (string, error) {
	if r.recognizer == nil {
		return "", fmt.Errorf("%w: no recognizer configured", recognition.ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := r.recognizer.Transcribe(ctx, in.Voice, in.VoiceFilename, in.Language)
	if err != nil {
		r.logger.Warn().Err(err).Msg("transcription failed")
		return "", err
	}
	return text, nil
}
