package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"codeberg.org/snonux/gospeltts/internal/language"
)

// Entry is one line of a batch file
type Entry struct {
	// Text is custom text to convert. Empty when Reference is set.
	Text string
	// Reference is a verse reference to look up
	Reference string
	// TargetLanguage overrides the batch target language when set
	TargetLanguage string
}

// ReadBatchFile reads entries from a batch file.
// Supports formats:
// - Custom text: "The Lord is my shepherd"
// - Verse reference: "@John 3:16"
// - Either with an output language: "@John 3:16 = Spanish" or "Jesus wept = fr"
func ReadBatchFile(fs afero.Fs, filename string) ([]Entry, error) {
	f, err := fs.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads entries line by line. Blank lines and lines starting with
// '#' are skipped.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, ok := parseLine(line)
		if ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}

func parseLine(line string) (Entry, bool) {
	var entry Entry

	// A trailing "= <language>" only counts when it names a known language,
	// so text containing '=' stays intact.
	if i := strings.LastIndex(line, "="); i >= 0 {
		lang := strings.TrimSpace(line[i+1:])
		if code, ok := language.Lookup(lang); ok {
			entry.TargetLanguage = code
			line = strings.TrimSpace(line[:i])
		}
	}

	if ref, ok := strings.CutPrefix(line, "@"); ok {
		entry.Reference = strings.TrimSpace(ref)
		return entry, entry.Reference != ""
	}

	entry.Text = line
	return entry, line != ""
}
