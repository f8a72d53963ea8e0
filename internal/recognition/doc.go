// Package recognition transcribes dictated speech into text using the
// OpenAI transcription API.
package recognition
