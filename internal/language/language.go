package language

import "strings"

// DefaultCode is used when a language name or code is not recognized.
const DefaultCode = "en"

// DefaultAccent is the top-level domain used when no accent is selected.
const DefaultAccent = "com"

// Language is a selectable input or output language.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Accent selects a regional pronunciation variant for English speech.
// TLD is the Google domain suffix that serves that variant.
type Accent struct {
	Name   string `json:"name"`
	TLD    string `json:"tld"`
	Region string `json:"-"`
}

var languages = []Language{
	{"English", "en"},
	{"Hindi", "hi"},
	{"Bengali", "bn"},
	{"Korean", "ko"},
	{"Chinese", "zh-cn"},
	{"Japanese", "ja"},
	{"Spanish", "es"},
	{"Portuguese", "pt"},
	{"Swahili", "sw"},
	{"Amharic", "am"},
	{"Hausa", "ha"},
	{"Afrikaans", "af"},
	{"Arabic", "ar"},
	{"French", "fr"},
}

var accents = []Accent{
	{"Default", "com", ""},
	{"India", "co.in", "Indian"},
	{"United Kingdom", "co.uk", "British"},
	{"United States", "com", "American"},
	{"Canada", "ca", "Canadian"},
	{"Australia", "com.au", "Australian"},
	{"Ireland", "ie", "Irish"},
	{"South Africa", "co.za", "South African"},
}

// Languages returns the language table in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Accents returns the accent table in display order.
func Accents() []Accent {
	out := make([]Accent, len(accents))
	copy(out, accents)
	return out
}

// Codes returns every supported language code.
func Codes() []string {
	codes := make([]string, 0, len(languages))
	for _, l := range languages {
		codes = append(codes, l.Code)
	}
	return codes
}

// AccentTLDs returns the distinct accent domains.
func AccentTLDs() []string {
	seen := make(map[string]bool)
	var tlds []string
	for _, a := range accents {
		if !seen[a.TLD] {
			seen[a.TLD] = true
			tlds = append(tlds, a.TLD)
		}
	}
	return tlds
}

// Code resolves a display name ("Spanish") or a code ("es") to a code.
// Unknown values fall back to DefaultCode.
func Code(nameOrCode string) string {
	if code, ok := Lookup(nameOrCode); ok {
		return code
	}
	return DefaultCode
}

// Lookup is Code without the fallback.
func Lookup(nameOrCode string) (string, bool) {
	v := strings.TrimSpace(nameOrCode)
	for _, l := range languages {
		if strings.EqualFold(l.Name, v) || strings.EqualFold(l.Code, v) {
			return l.Code, true
		}
	}
	return "", false
}

// Name returns the display name for a code, or the code itself if unknown.
func Name(code string) string {
	for _, l := range languages {
		if strings.EqualFold(l.Code, code) {
			return l.Name
		}
	}
	return code
}

// AccentTLD resolves an accent display name or domain to its domain.
// Unknown values fall back to DefaultAccent.
func AccentTLD(nameOrTLD string) string {
	v := strings.TrimSpace(nameOrTLD)
	for _, a := range accents {
		if strings.EqualFold(a.Name, v) || strings.EqualFold(a.TLD, v) {
			return a.TLD
		}
	}
	return DefaultAccent
}

// AccentRegion returns the adjective describing an accent domain
// ("co.uk" -> "British"); empty for the default accent.
func AccentRegion(tld string) string {
	if tld == DefaultAccent {
		return ""
	}
	for _, a := range accents {
		if a.TLD == tld {
			return a.Region
		}
	}
	return ""
}

// SupportsAccent reports whether regional accents apply to a spoken language.
// Only English has dialect variants in this system.
func SupportsAccent(code string) bool {
	return strings.EqualFold(code, "en")
}

// GoogleCode converts a table code to the casing Google endpoints expect.
func GoogleCode(code string) string {
	if strings.EqualFold(code, "zh-cn") {
		return "zh-CN"
	}
	return code
}
