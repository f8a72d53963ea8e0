package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"codeberg.org/snonux/gospeltts/internal/verse"
)

// MockTranslator mocks translation service
type MockTranslator struct {
	mu           sync.Mutex
	Translations map[string]string
	Errors       map[string]error
	Err          error
	Calls        []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := fmt.Sprintf("Translate: %s (%s->%s)", text, fromLang, toLang)
	m.Calls = append(m.Calls, call)

	if m.Err != nil {
		return "", m.Err
	}
	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("mock translation of %s", text), nil
}

// Name returns the provider name
func (m *MockTranslator) Name() string {
	return "mock"
}

// CallCount returns how many translations were requested.
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockSynthesizer mocks a speech synthesis provider
type MockSynthesizer struct {
	mu    sync.Mutex
	Audio []byte
	Err   error
	Calls []string
}

// Synthesize mocks speech synthesis
func (m *MockSynthesizer) Synthesize(ctx context.Context, text, language, accent string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, fmt.Sprintf("TTS: %s (lang=%s, accent=%s)", text, language, accent))

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Audio != nil {
		return m.Audio, nil
	}
	return GenerateAudioData(), nil
}

// Name returns the provider name
func (m *MockSynthesizer) Name() string {
	return "mock"
}

// IsAvailable always succeeds
func (m *MockSynthesizer) IsAvailable() error {
	return nil
}

// CallCount returns how many syntheses were requested.
func (m *MockSynthesizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockRecognizer mocks speech recognition
type MockRecognizer struct {
	Text  string
	Err   error
	Calls int
	Audio []byte
}

// Transcribe mocks transcription
func (m *MockRecognizer) Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error) {
	m.Calls++
	if audio != nil {
		m.Audio, _ = io.ReadAll(audio)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// MockVerseProvider mocks verse lookups
type MockVerseProvider struct {
	Verses map[string]string
	Err    error
	Calls  []string
}

// Lookup returns the configured verse or verse.ErrNotFound
func (m *MockVerseProvider) Lookup(ctx context.Context, reference string) (*verse.Verse, error) {
	ref := strings.TrimSpace(reference)
	m.Calls = append(m.Calls, ref)
	if m.Err != nil {
		return nil, m.Err
	}
	text, ok := m.Verses[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", verse.ErrNotFound, ref)
	}
	return &verse.Verse{Reference: ref, Text: text}, nil
}

// GenerateAudioData generates mock audio data
func GenerateAudioData() []byte {
	// Simple mock MP3 header
	return []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
}
