package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"OutputDir", flags.OutputDir, "temp"},
		{"MaxAgeDays", flags.MaxAgeDays, 7},
		{"Timeout", flags.Timeout, 30 * time.Second},
		{"TranslationProvider", flags.TranslationProvider, "google"},
		{"AudioProvider", flags.AudioProvider, "google"},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini-tts"},
		{"OpenAISpeed", flags.OpenAISpeed, 1.0},
		{"Listen", flags.Listen, "0.0.0.0:8501"},
		{"SourceLanguage", flags.SourceLanguage, "English"},
		{"Accent", flags.Accent, "Default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"DisplayOutputText", flags.DisplayOutputText},
		{"NoCustomText", flags.NoCustomText},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	for name, value := range map[string]string{
		"CfgFile":   flags.CfgFile,
		"LogFormat": flags.LogFormat,
		"Verse":     flags.Verse,
		"BatchFile": flags.BatchFile,
		"VoiceFile": flags.VoiceFile,
	} {
		if value != "" {
			t.Errorf("%s = %q, want empty", name, value)
		}
	}
}
