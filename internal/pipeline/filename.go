package pipeline

import "strings"

// FallbackFileName is used when no usable characters remain.
const FallbackFileName = "audio"

// maxFileNameRunes bounds how much of the source text names the file.
const maxFileNameRunes = 20

// strippedChars are removed from file names.
const strippedChars = `\/*?:"<>|` + "\r\n"

// SanitizeFileName derives an artifact name from the first 20 characters of
// text with filesystem-hostile characters removed. It never returns "".
func SanitizeFileName(text string) string {
	runes := []rune(text)
	if len(runes) > maxFileNameRunes {
		runes = runes[:maxFileNameRunes]
	}

	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedChars, r) {
			return -1
		}
		return r
	}, string(runes))

	if name == "" {
		return FallbackFileName
	}
	return name
}
