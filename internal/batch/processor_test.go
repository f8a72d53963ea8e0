package batch

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Entry
	}{
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
		{
			name:    "only whitespace",
			content: "   \n\t\r\n   ",
			want:    nil,
		},
		{
			name: "custom text",
			content: `The Lord is my shepherd
Jesus wept`,
			want: []Entry{
				{Text: "The Lord is my shepherd"},
				{Text: "Jesus wept"},
			},
		},
		{
			name: "verse references",
			content: `@John 3:16
@ Psalm 23:1 `,
			want: []Entry{
				{Reference: "John 3:16"},
				{Reference: "Psalm 23:1"},
			},
		},
		{
			name: "language overrides",
			content: `@John 3:16 = Spanish
Jesus wept = fr
Amen = zh-CN`,
			want: []Entry{
				{Reference: "John 3:16", TargetLanguage: "es"},
				{Text: "Jesus wept", TargetLanguage: "fr"},
				{Text: "Amen", TargetLanguage: "zh-cn"},
			},
		},
		{
			name:    "equals that is not a language stays in the text",
			content: `1 + 1 = 2`,
			want:    []Entry{{Text: "1 + 1 = 2"}},
		},
		{
			name: "comments and blank lines",
			content: `
# morning verses

@Matthew 28:19

`,
			want: []Entry{{Reference: "Matthew 28:19"}},
		},
		{
			name:    "windows line endings",
			content: "Jesus wept\r\n@John 11:35\r\n",
			want: []Entry{
				{Text: "Jesus wept"},
				{Reference: "John 11:35"},
			},
		},
		{
			name:    "bare marker and bare override are skipped",
			content: "@\n= es\n@ = fr",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "verses.txt", []byte("@John 3:16\nHallelujah = Swahili\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadBatchFile(fs, "verses.txt")
	if err != nil {
		t.Fatalf("ReadBatchFile() error = %v", err)
	}

	want := []Entry{
		{Reference: "John 3:16"},
		{Text: "Hallelujah", TargetLanguage: "sw"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadBatchFile() = %#v, want %#v", got, want)
	}
}

func TestReadBatchFile_Missing(t *testing.T) {
	if _, err := ReadBatchFile(afero.NewMemMapFs(), "missing.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
