// Package translation translates text between the supported languages. The
// default provider is the keyless Google translate endpoint; OpenAI and
// Gemini chat models can be selected instead.
package translation
