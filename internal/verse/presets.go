package verse

import (
	"fmt"
	"time"
)

// dailyVerse is shown on every page load next to today's date.
const dailyVerse = "Psalm 118:24: This is the day the Lord has made; let us rejoice and be glad in it."

var presets = []Verse{
	{
		Reference: "John 3:16",
		Text:      "For God so loved the world that he gave his one and only Son, that whoever believes in him shall not perish but have eternal life.",
	},
	{
		Reference: "Psalm 23:1",
		Text:      "The Lord is my shepherd, I lack nothing.",
	},
	{
		Reference: "Matthew 28:19",
		Text:      "Therefore go and make disciples of all nations, baptizing them in the name of the Father and of the Son and of the Holy Spirit.",
	},
}

// Presets returns the selectable preset verses in display order.
func Presets() []Verse {
	out := make([]Verse, len(presets))
	copy(out, presets)
	return out
}

// Preset returns the preset verse with the given reference.
func Preset(reference string) (Verse, error) {
	for _, p := range presets {
		if p.Reference == reference {
			return p, nil
		}
	}
	return Verse{}, fmt.Errorf("unknown preset verse: %q", reference)
}

// DefaultPreset is the first preset, selected when none is chosen.
func DefaultPreset() Verse {
	return presets[0]
}

// Daily is the verse of the day.
type Daily struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// DailyVerse returns the verse of the day for now.
func DailyVerse(now time.Time) Daily {
	return Daily{Date: now.Format("2006-01-02"), Text: dailyVerse}
}
