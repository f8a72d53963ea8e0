// Package models lists the OpenAI models usable for speech, transcription
// and translation with the configured API key.
package models
