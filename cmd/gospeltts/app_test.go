package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"codeberg.org/snonux/gospeltts/internal/audio"
	"codeberg.org/snonux/gospeltts/internal/cli"
	"codeberg.org/snonux/gospeltts/internal/processor"
	"codeberg.org/snonux/gospeltts/internal/source"
	"codeberg.org/snonux/gospeltts/internal/store"
	"codeberg.org/snonux/gospeltts/internal/translation"
	"codeberg.org/snonux/gospeltts/internal/verse"
)

func testConfig(dir string) *cli.Config {
	return &cli.Config{
		OutputDir:   dir,
		MaxAgeDays:  7,
		Timeout:     5 * time.Second,
		Translation: translation.Config{Provider: "google", Timeout: 5 * time.Second},
		Audio:       audio.Config{Provider: "google", Timeout: 5 * time.Second},
		Verse:       verse.Config{Timeout: 5 * time.Second},
		Logging:     cli.LoggingConfig{Level: "error"},
	}
}

func TestNewApp_Defaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	a, err := newApp(context.Background(), testConfig("temp"), fs, &bytes.Buffer{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	if a.store.Dir() != "temp" {
		t.Errorf("store dir = %q, want %q", a.store.Dir(), "temp")
	}
	if a.processor.Store() != a.store {
		t.Error("processor does not share the app store")
	}
}

func TestNewApp_ProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*cli.Config)
	}{
		{"openai audio without key", func(c *cli.Config) { c.Audio.Provider = "openai" }},
		{"openai translation without key", func(c *cli.Config) { c.Translation.Provider = "openai" }},
		{"unknown audio provider", func(c *cli.Config) { c.Audio.Provider = "espeak" }},
		{"unknown translation provider", func(c *cli.Config) { c.Translation.Provider = "deepl" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("temp")
			tt.mutate(cfg)
			if _, err := newApp(context.Background(), cfg, afero.NewMemMapFs(), &bytes.Buffer{}, zerolog.Nop()); err == nil {
				t.Error("newApp() expected error")
			}
		})
	}
}

func TestRunVerse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/John 3:16" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reference":"John 3:16","text":"For God so loved the world\n"}`))
	}))
	defer server.Close()

	cfg := testConfig(t.TempDir())
	cfg.Verse.Endpoint = server.URL

	var out bytes.Buffer
	if err := runVerse(context.Background(), cfg, []string{"John", "3:16"}, &out); err != nil {
		t.Fatalf("runVerse() error = %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "John 3:16: For God so loved the world" {
		t.Errorf("output = %q", got)
	}

	if err := runVerse(context.Background(), cfg, []string{"Hezekiah", "1:1"}, &out); err == nil {
		t.Error("runVerse() expected error for unknown verse")
	}
}

func TestRunSweep(t *testing.T) {
	dir := t.TempDir()
	st := store.NewOS(dir)
	if _, err := st.Put("old", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Put("new", []byte("new")); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-8 * 24 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, "old.mp3"), past, past); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runSweep(testConfig(dir), &out); err != nil {
		t.Fatalf("runSweep() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "old.mp3")); !os.IsNotExist(err) {
		t.Error("old.mp3 should have been deleted")
	}
	if _, err := os.Stat(filepath.Join(dir, "new.mp3")); err != nil {
		t.Errorf("new.mp3 should remain: %v", err)
	}
	if !strings.Contains(out.String(), "deleted 1") {
		t.Errorf("summary missing from output: %q", out.String())
	}
}

func TestRunArchive(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "temp")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runArchive(testConfig(dir), &out); err != nil {
		t.Fatalf("runArchive() error = %v", err)
	}
	if !strings.Contains(out.String(), filepath.Join(root, "archive")) {
		t.Errorf("output = %q", out.String())
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("working directory should have been moved")
	}
}

func TestRunModels_NoKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if err := runModels(context.Background(), &bytes.Buffer{}); err == nil {
		t.Error("runModels() expected error without API key")
	}
}

func TestPrintResult(t *testing.T) {
	result := &processor.Result{
		Artifact:       &store.Artifact{Name: "Hola", Path: "temp/Hola.mp3", Size: 42},
		SourceText:     "Hello",
		SourceKind:     source.KindCustom,
		TranslatedText: "Hola",
		ShareURL:       processor.ShareURL("Hola"),
	}

	var out bytes.Buffer
	printResult(&out, result)

	for _, want := range []string{
		"Source (custom): Hello",
		"Output text: Hola",
		"Saved: temp/Hola.mp3 (42 bytes)",
		"https://api.whatsapp.com/send?text=Hola",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
