// Package audio synthesizes MP3 speech from text. The default provider uses
// the Google translate speech endpoint, where English accents are selected by
// the regional Google domain; the OpenAI provider expresses language and
// accent as voice instructions.
package audio
